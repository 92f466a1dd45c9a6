// effect_flanger.go - short modulated delay with feedback

package main

// Flanger is a single delay line with a short base delay modulated by an
// LFO, with a feedback path from the delayed sample back into the write
// (spec.md §4.C). Read-before-write per spec.md §9(ii).
type Flanger struct {
	effectBase
	line      *DelayLine
	lfo       *LFO
	baseDelay float32
	depth     float32
	feedback  float32
	mix       float32
}

// NewFlanger builds a flanger with base delay (ms), depth (ms), LFO rate
// (Hz), feedback [0,0.95] and dry/wet mix [0,1].
func NewFlanger(state *DSPState, baseMs, depthMs, rateHz, feedback, mix float32) *Flanger {
	fs := state.SampleRate
	lineLen := msToSamples(baseMs+depthMs+2, fs)
	return &Flanger{
		effectBase: newEffectBase(EffectFlanger),
		line:       NewDelayLine(lineLen),
		lfo:        NewLFO(LFOSine, rateHz, 1, 0, fs),
		baseDelay:  baseMs * fs / 1000,
		depth:      depthMs * fs / 1000,
		feedback:   clampf(feedback, 0, 0.95),
		mix:        clampf(mix, 0, 1),
	}
}

// SetParams updates base delay (ms), depth (ms), rate (Hz), feedback and mix.
func (f *Flanger) SetParams(baseMs, depthMs, rateHz, feedback, mix, sampleRate float32) {
	f.baseDelay = baseMs * sampleRate / 1000
	f.depth = depthMs * sampleRate / 1000
	f.lfo.SetFreq(rateHz, sampleRate)
	f.feedback = clampf(feedback, 0, 0.95)
	f.mix = clampf(mix, 0, 1)
}

func (f *Flanger) Process(in, out []float32, n int) {
	if f.passthrough() {
		copyBlock(in, out, n)
		return
	}
	for i := 0; i < n; i++ {
		x := in[i]
		d := f.baseDelay + f.lfo.Next()*f.depth
		tap := f.line.ReadLinear(d)
		f.line.WriteSample(x + tap*f.feedback)
		out[i] = x + (tap-x)*f.mix
	}
}

func (f *Flanger) Reset() {
	f.line.Reset()
}
