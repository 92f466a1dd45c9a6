// effect_distortion.go - highpass, drive, hard clip, 3-band tone stack, output gain

package main

import "sync/atomic"

// Distortion: input highpass → drive → waveshaper → 3-band tone stack
// (low-shelf, peak, high-shelf) → output gain (spec.md §4.C).
type Distortion struct {
	effectBase

	hpf        *OnePole
	shaper     atomic.Pointer[WaveshaperTable]
	low        *Biquad
	mid        *Biquad
	high       *Biquad
	outputBits atomic.Uint32
}

// NewDistortion builds a distortion stage with the given drive and
// three-band tone-stack gains (dB).
func NewDistortion(state *DSPState, drive, lowDb, midDb, highDb, outputGainDb float32) *Distortion {
	fs := state.SampleRate
	d := &Distortion{
		effectBase: newEffectBase(EffectDistortion),
		hpf:        NewOnePole(100, fs, true),
		low:        NewBiquad(BiquadLowShelf, 150, 0.707, lowDb, fs),
		mid:        NewBiquad(BiquadPeak, 900, 1.0, midDb, fs),
		high:       NewBiquad(BiquadHighShelf, 3000, 0.707, highDb, fs),
	}
	d.shaper.Store(NewWaveshaperTable(ClipHard, drive, 1))
	d.outputBits.Store(float32bits(dbToLinear(outputGainDb)))
	return d
}

// SetParams rebuilds the waveshaper table and tone-stack coefficients.
func (d *Distortion) SetParams(drive, lowDb, midDb, highDb, outputGainDb, sampleRate float32) {
	d.shaper.Store(NewWaveshaperTable(ClipHard, drive, 1))
	d.low.SetParams(BiquadLowShelf, 150, 0.707, lowDb, sampleRate)
	d.mid.SetParams(BiquadPeak, 900, 1.0, midDb, sampleRate)
	d.high.SetParams(BiquadHighShelf, 3000, 0.707, highDb, sampleRate)
	d.outputBits.Store(float32bits(dbToLinear(outputGainDb)))
}

func (d *Distortion) Process(in, out []float32, n int) {
	if d.passthrough() {
		copyBlock(in, out, n)
		return
	}
	d.hpf.Process(in, out, n)
	shaper := d.shaper.Load()
	for i := 0; i < n; i++ {
		out[i] = shaper.Sample(out[i])
	}
	d.low.Process(out, out, n)
	d.mid.Process(out, out, n)
	d.high.Process(out, out, n)
	gain := float32frombits(d.outputBits.Load())
	for i := 0; i < n; i++ {
		out[i] *= gain
	}
}

func (d *Distortion) Reset() {
	d.hpf.Reset()
	d.low.Reset()
	d.mid.Reset()
	d.high.Reset()
}
