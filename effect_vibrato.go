// effect_vibrato.go - pitch modulation via LFO-swept delay read

package main

// Vibrato reads a delay line at an LFO-modulated delay with cubic
// interpolation (spec.md §4.C).
type Vibrato struct {
	effectBase
	delay     *DelayLine
	lfo       *LFO
	baseDelay float32
	depth     float32
}

// NewVibrato builds a vibrato with the given base delay (ms), depth (ms)
// and LFO rate (Hz).
func NewVibrato(state *DSPState, baseMs, depthMs, rateHz float32) *Vibrato {
	fs := state.SampleRate
	maxDelaySamples := msToSamples(baseMs+depthMs+2, fs)
	return &Vibrato{
		effectBase: newEffectBase(EffectVibrato),
		delay:      NewDelayLine(maxDelaySamples),
		lfo:        NewLFO(LFOSine, rateHz, 1, 0, fs),
		baseDelay:  baseMs * fs / 1000,
		depth:      depthMs * fs / 1000,
	}
}

// SetParams updates base delay (ms), depth (ms) and LFO rate (Hz).
func (v *Vibrato) SetParams(baseMs, depthMs, rateHz, sampleRate float32) {
	v.baseDelay = baseMs * sampleRate / 1000
	v.depth = depthMs * sampleRate / 1000
	v.lfo.SetFreq(rateHz, sampleRate)
}

func (v *Vibrato) Process(in, out []float32, n int) {
	if v.passthrough() {
		copyBlock(in, out, n)
		return
	}
	for i := 0; i < n; i++ {
		v.delay.WriteSample(in[i])
		d := v.baseDelay + v.lfo.Next()*v.depth
		out[i] = v.delay.ReadCubic(d)
	}
}

func (v *Vibrato) Reset() {
	v.delay.Reset()
}
