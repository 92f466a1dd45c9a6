// effect_fuzz.go - DC bias injection into a high-drive waveshaper

package main

import "sync/atomic"

// fuzzParams bundles the DC bias and output gain a SetParams call
// publishes as a single atomic swap (SPEC_FULL.md §7).
type fuzzParams struct {
	bias       float32
	outputGain float32
}

// Fuzz injects a DC bias before a high-drive waveshaper, producing an
// asymmetric clip (spec.md §4.C): the bias shifts positive and negative
// excursions to different points on the same symmetric curve.
type Fuzz struct {
	effectBase

	shaper atomic.Pointer[WaveshaperTable]
	params atomic.Pointer[fuzzParams]
}

// NewFuzz builds a fuzz stage with the given drive, DC bias and output
// gain (dB).
func NewFuzz(drive, bias, outputGainDb float32) *Fuzz {
	f := &Fuzz{effectBase: newEffectBase(EffectFuzz)}
	f.shaper.Store(NewWaveshaperTable(ClipHard, drive, 1))
	f.params.Store(&fuzzParams{bias: bias, outputGain: dbToLinear(outputGainDb)})
	return f
}

// SetParams rebuilds the waveshaper table for a new drive and updates bias
// and output gain.
func (f *Fuzz) SetParams(drive, bias, outputGainDb float32) {
	f.shaper.Store(NewWaveshaperTable(ClipHard, drive, 1))
	f.params.Store(&fuzzParams{bias: bias, outputGain: dbToLinear(outputGainDb)})
}

func (f *Fuzz) Process(in, out []float32, n int) {
	if f.passthrough() {
		copyBlock(in, out, n)
		return
	}
	shaper, p := f.shaper.Load(), f.params.Load()
	for i := 0; i < n; i++ {
		out[i] = shaper.Sample(in[i]+p.bias) * p.outputGain
	}
}

func (f *Fuzz) Reset() {}
