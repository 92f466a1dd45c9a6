// effect_wah.go - envelope-followed bandpass filter

package main

import "sync/atomic"

// wahParams bundles the sensitivity and Q a SetParams call publishes as a
// single atomic swap (SPEC_FULL.md §7).
type wahParams struct {
	sensitivity float32
	q           float32
}

// Wah is a bandpass filter whose center frequency tracks the input
// envelope: centerHz = 400 + env·sensitivity·2000 (spec.md §4.C). The
// filter coefficients are recomputed every sample since the center
// frequency is continuously modulated; transcendental functions are
// permitted on the audio thread (SPEC_FULL.md §7).
type Wah struct {
	effectBase

	env        *EnvelopeDetector
	filter     *Biquad
	params     atomic.Pointer[wahParams]
	sampleRate float32
}

// NewWah builds a wah with the given envelope attack/release (ms) and Q.
func NewWah(state *DSPState, sensitivity, q, attackMs, releaseMs float32) *Wah {
	w := &Wah{
		effectBase: newEffectBase(EffectWah),
		env:        NewEnvelopeDetector(attackMs, releaseMs, state.SampleRate, EnvelopePeak),
		filter:     NewBiquad(BiquadBandpass, 400, q, 0, state.SampleRate),
		sampleRate: state.SampleRate,
	}
	w.params.Store(&wahParams{sensitivity: sensitivity, q: q})
	return w
}

// SetParams updates sensitivity, Q and envelope times.
func (w *Wah) SetParams(sensitivity, q, attackMs, releaseMs float32) {
	w.params.Store(&wahParams{sensitivity: sensitivity, q: q})
	w.env.SetTimes(attackMs, releaseMs, w.sampleRate)
}

func (w *Wah) Process(in, out []float32, n int) {
	if w.passthrough() {
		copyBlock(in, out, n)
		return
	}
	p := w.params.Load()
	for i := 0; i < n; i++ {
		x := in[i]
		envLevel := w.env.Step(x)
		centerHz := 400 + envLevel*p.sensitivity*2000
		w.filter.SetParams(BiquadBandpass, centerHz, p.q, 0, w.sampleRate)
		w.filter.Process(in[i:i+1], out[i:i+1], 1)
	}
}

func (w *Wah) Reset() {
	w.env.Reset()
	w.filter.Reset()
}
