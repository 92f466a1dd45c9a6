// effect_reverb.go - parallel comb-bank reverb

package main

// reverbTapsMs are the 8 coprime delay times (ms) spec.md §4.C specifies.
var reverbTapsMs = [8]float32{29.7, 37.1, 41.1, 43.7, 5.0, 1.7, 4.1, 2.3}

// Reverb sums 8 parallel delays at coprime short times, each through a
// damping lowpass, scaled by decay, mixed dry/wet (spec.md §4.C).
type Reverb struct {
	effectBase
	lines [8]*DelayLine
	damps [8]*OnePole
	taps  [8]float32
	decay float32
	mix   float32
}

// NewReverb builds a reverb with the given decay [0,1), damping cutoff
// (Hz) and dry/wet mix [0,1].
func NewReverb(state *DSPState, decay, dampHz, mix float32) *Reverb {
	fs := state.SampleRate
	r := &Reverb{
		effectBase: newEffectBase(EffectReverb),
		decay:      clampf(decay, 0, 0.99),
		mix:        clampf(mix, 0, 1),
	}
	for i, ms := range reverbTapsMs {
		samples := msToSamples(ms, fs)
		r.taps[i] = float32(samples)
		r.lines[i] = NewDelayLine(samples + 4)
		r.damps[i] = NewOnePole(dampHz, fs, false)
	}
	return r
}

// SetParams updates decay, damping cutoff (Hz) and mix.
func (r *Reverb) SetParams(decay, dampHz, mix, sampleRate float32) {
	r.decay = clampf(decay, 0, 0.99)
	r.mix = clampf(mix, 0, 1)
	for _, d := range r.damps {
		d.SetCutoff(dampHz, sampleRate)
	}
}

func (r *Reverb) Process(in, out []float32, n int) {
	if r.passthrough() {
		copyBlock(in, out, n)
		return
	}
	decay := r.decay
	for i := 0; i < n; i++ {
		x := in[i]
		var sum float32
		for t := 0; t < 8; t++ {
			tap := r.lines[t].ReadLinear(r.taps[t])
			damped := r.damps[t].Step(tap)
			r.lines[t].WriteSample(x + damped*decay)
			sum += damped
		}
		wet := sum * (1.0 / 8.0)
		out[i] = x + (wet-x)*r.mix
	}
}

func (r *Reverb) Reset() {
	for i := range r.lines {
		r.lines[i].Reset()
		r.damps[i].Reset()
	}
}
