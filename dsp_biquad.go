// dsp_biquad.go - transposed-direct-form-II biquad, RBJ cookbook coefficients

package main

import (
	"math"
	"sync/atomic"
)

// BiquadType selects which RBJ cookbook formula builds the coefficients.
type BiquadType int

const (
	BiquadLowpass BiquadType = iota
	BiquadHighpass
	BiquadBandpass
	BiquadNotch
	BiquadPeak
	BiquadLowShelf
	BiquadHighShelf
)

// biquadCoeffs is the immutable set of five normalised coefficients a
// SetParams call publishes. Swapping the whole struct through an atomic
// pointer means Process always sees either the old set or the new one,
// never a torn mix of the two (SPEC_FULL.md §7).
type biquadCoeffs struct {
	b0, b1, b2 float32
	a1, a2     float32
}

// Biquad is a two-pole two-zero IIR section in transposed direct form II.
// Coefficients are recomputed only on SetParams and published atomically;
// z1/z2 persist across blocks, start at zero, and are touched only by
// Process, which a single caller ever drives for a given instance.
type Biquad struct {
	coeffs atomic.Pointer[biquadCoeffs]
	z1, z2 float32
}

// NewBiquad builds a biquad of the given type. freqHz and Q are clamped to
// safe ranges per spec.md §4.B; gainDb is only used by Peak/LowShelf/HighShelf.
func NewBiquad(t BiquadType, freqHz, q, gainDb, sampleRate float32) *Biquad {
	bq := &Biquad{}
	bq.SetParams(t, freqHz, q, gainDb, sampleRate)
	return bq
}

// SetParams recomputes the five normalised coefficients and publishes them
// as one atomic store. Invalid Q/freq values are clamped rather than
// propagated, per the DSP primitives' "never fail at runtime" contract.
func (bq *Biquad) SetParams(t BiquadType, freqHz, q, gainDb, sampleRate float32) {
	freqHz = clampf(freqHz, minFilterHz, sampleRate/2-1)
	q = clampf(q, 0.01, maxQ)

	w0 := 2 * math.Pi * float64(freqHz) / float64(sampleRate)
	cosW0, sinW0 := math.Cos(w0), math.Sin(w0)
	alpha := sinW0 / (2 * float64(q))
	A := math.Pow(10, float64(gainDb)/40)

	var b0, b1, b2, a0, a1, a2 float64

	switch t {
	case BiquadLowpass:
		b0 = (1 - cosW0) / 2
		b1 = 1 - cosW0
		b2 = (1 - cosW0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case BiquadHighpass:
		b0 = (1 + cosW0) / 2
		b1 = -(1 + cosW0)
		b2 = (1 + cosW0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case BiquadBandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case BiquadNotch:
		b0 = 1
		b1 = -2 * cosW0
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case BiquadPeak:
		b0 = 1 + alpha*A
		b1 = -2 * cosW0
		b2 = 1 - alpha*A
		a0 = 1 + alpha/A
		a1 = -2 * cosW0
		a2 = 1 - alpha/A
	case BiquadLowShelf:
		sqrtA := math.Sqrt(A)
		beta := 2 * sqrtA * alpha
		b0 = A * ((A + 1) - (A-1)*cosW0 + beta)
		b1 = 2 * A * ((A - 1) - (A+1)*cosW0)
		b2 = A * ((A + 1) - (A-1)*cosW0 - beta)
		a0 = (A + 1) + (A-1)*cosW0 + beta
		a1 = -2 * ((A - 1) + (A+1)*cosW0)
		a2 = (A + 1) + (A-1)*cosW0 - beta
	case BiquadHighShelf:
		sqrtA := math.Sqrt(A)
		beta := 2 * sqrtA * alpha
		b0 = A * ((A + 1) + (A-1)*cosW0 + beta)
		b1 = -2 * A * ((A - 1) + (A+1)*cosW0)
		b2 = A * ((A + 1) + (A-1)*cosW0 - beta)
		a0 = (A + 1) - (A-1)*cosW0 + beta
		a1 = 2 * ((A - 1) - (A+1)*cosW0)
		a2 = (A + 1) - (A-1)*cosW0 - beta
	}

	if a0 == 0 {
		a0 = 1
	}
	bq.coeffs.Store(&biquadCoeffs{
		b0: float32(b0 / a0),
		b1: float32(b1 / a0),
		b2: float32(b2 / a0),
		a1: float32(a1 / a0),
		a2: float32(a2 / a0),
	})
}

// Process filters in into out (n frames) using transposed direct form II.
// in and out may alias.
func (bq *Biquad) Process(in, out []float32, n int) {
	c := bq.coeffs.Load()
	b0, b1, b2, a1, a2 := c.b0, c.b1, c.b2, c.a1, c.a2
	z1, z2 := bq.z1, bq.z2
	for i := 0; i < n; i++ {
		x := in[i]
		y := b0*x + z1
		z1 = b1*x - a1*y + z2
		z2 = b2*x - a2*y
		out[i] = y
	}
	bq.z1 = denormalFlush(z1)
	bq.z2 = denormalFlush(z2)
}

// Reset clears filter state.
func (bq *Biquad) Reset() {
	bq.z1, bq.z2 = 0, 0
}
