// dsp_onepole.go - first-order IIR lowpass/highpass

package main

import (
	"math"
	"sync/atomic"
)

// OnePole is a single-pole lowpass or highpass filter, block-processed.
// The design coefficient is recomputed only on SetCutoff and published
// through an atomic so a concurrent Process call never reads a torn value
// (SPEC_FULL.md §7); state persists across blocks and is flushed when it
// decays into denormal range.
type OnePole struct {
	xBits      atomic.Uint32 // design coefficient exp(-2*pi*fc/fs), float32 bits
	y1         float32       // filter state
	xPrev      float32       // previous input, used by the highpass form
	isHighpass bool
}

// NewOnePole builds a one-pole filter at cutoffHz for the given sample
// rate. cutoffHz is clamped to (0, sampleRate/2) per spec.
func NewOnePole(cutoffHz, sampleRate float32, isHighpass bool) *OnePole {
	f := &OnePole{isHighpass: isHighpass}
	f.SetCutoff(cutoffHz, sampleRate)
	return f
}

// SetCutoff recomputes the design coefficient. Safe to call from the
// control thread; the caller is responsible for the synchronisation
// discipline described in SPEC_FULL.md §7.
func (f *OnePole) SetCutoff(cutoffHz, sampleRate float32) {
	cutoffHz = clampf(cutoffHz, minFilterHz, sampleRate/2-1)
	coeff := float32(math.Exp(-2 * math.Pi * float64(cutoffHz) / float64(sampleRate)))
	f.xBits.Store(float32bits(coeff))
}

// Process filters in into out (n frames). in and out may alias.
func (f *OnePole) Process(in, out []float32, n int) {
	y := f.y1
	x := float32frombits(f.xBits.Load())
	if f.isHighpass {
		scale := (1 + x) / 2
		xPrev := f.xPrev
		for i := 0; i < n; i++ {
			sample := in[i]
			y = scale*(sample-xPrev) + x*y
			xPrev = sample
			out[i] = y
		}
		f.xPrev = xPrev
	} else {
		for i := 0; i < n; i++ {
			y = (1-x)*in[i] + x*y
			out[i] = y
		}
	}
	f.y1 = denormalFlush(y)
}

// Step filters a single sample, for effects that need per-sample access
// inside a feedback loop (e.g. Delay's damping path).
func (f *OnePole) Step(in float32) float32 {
	x := float32frombits(f.xBits.Load())
	var out float32
	if f.isHighpass {
		scale := (1 + x) / 2
		out = scale*(in-f.xPrev) + x*f.y1
		f.xPrev = in
	} else {
		out = (1-x)*in + x*f.y1
	}
	f.y1 = denormalFlush(out)
	return out
}

// Reset zeroes filter state.
func (f *OnePole) Reset() {
	f.y1 = 0
	f.xPrev = 0
}
