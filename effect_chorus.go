// effect_chorus.go - dual modulated delay taps

package main

// Chorus feeds two delay lines from the input, each read at base-delay ±
// an LFO-modulated depth; the wet signal is the mean of the two delayed
// taps (spec.md §4.C).
type Chorus struct {
	effectBase
	lineA, lineB *DelayLine
	lfo          *LFO
	baseDelay    float32
	depth        float32
	mix          float32
}

// NewChorus builds a chorus with the given base delay (ms), depth (ms),
// LFO rate (Hz) and dry/wet mix [0,1].
func NewChorus(state *DSPState, baseMs, depthMs, rateHz, mix float32) *Chorus {
	fs := state.SampleRate
	lineLen := msToSamples(baseMs+depthMs+2, fs)
	return &Chorus{
		effectBase: newEffectBase(EffectChorus),
		lineA:      NewDelayLine(lineLen),
		lineB:      NewDelayLine(lineLen),
		lfo:        NewLFO(LFOSine, rateHz, 1, 0, fs),
		baseDelay:  baseMs * fs / 1000,
		depth:      depthMs * fs / 1000,
		mix:        clampf(mix, 0, 1),
	}
}

// SetParams updates base delay (ms), depth (ms), rate (Hz) and mix.
func (c *Chorus) SetParams(baseMs, depthMs, rateHz, mix, sampleRate float32) {
	c.baseDelay = baseMs * sampleRate / 1000
	c.depth = depthMs * sampleRate / 1000
	c.lfo.SetFreq(rateHz, sampleRate)
	c.mix = clampf(mix, 0, 1)
}

func (c *Chorus) Process(in, out []float32, n int) {
	if c.passthrough() {
		copyBlock(in, out, n)
		return
	}
	for i := 0; i < n; i++ {
		x := in[i]
		c.lineA.WriteSample(x)
		c.lineB.WriteSample(x)
		lfoVal := c.lfo.Next()
		dA := c.baseDelay + lfoVal*c.depth
		dB := c.baseDelay - lfoVal*c.depth
		wet := (c.lineA.ReadLinear(dA) + c.lineB.ReadLinear(dB)) * 0.5
		out[i] = x + (wet-x)*c.mix
	}
}

func (c *Chorus) Reset() {
	c.lineA.Reset()
	c.lineB.Reset()
}
