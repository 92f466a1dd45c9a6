// effect_overdrive.go - highpass, drive, soft-tanh clip, tone, output gain

package main

import "sync/atomic"

// Overdrive: input highpass → drive gain → waveshaper (soft-tanh) → tone
// (one-pole LPF) → output gain (spec.md §4.C).
type Overdrive struct {
	effectBase

	hpf        *OnePole
	shaper     atomic.Pointer[WaveshaperTable]
	tone       *OnePole
	outputBits atomic.Uint32
}

// NewOverdrive builds an overdrive stage. drive scales the signal before
// the waveshaper table; toneHz sets the post-clip lowpass; outputGainDb
// sets the final gain.
func NewOverdrive(state *DSPState, drive, toneHz, outputGainDb float32) *Overdrive {
	fs := state.SampleRate
	o := &Overdrive{
		effectBase: newEffectBase(EffectOverdrive),
		hpf:        NewOnePole(80, fs, true),
		tone:       NewOnePole(toneHz, fs, false),
	}
	o.shaper.Store(NewWaveshaperTable(ClipTanh, drive, 1))
	o.outputBits.Store(float32bits(dbToLinear(outputGainDb)))
	return o
}

// SetParams rebuilds the waveshaper table (control-thread-only work per
// spec.md §4.G) and updates the tone/output stages. The new table is
// published with a single atomic store, so Process never sees a partially
// built table (SPEC_FULL.md §7).
func (o *Overdrive) SetParams(drive, toneHz, outputGainDb, sampleRate float32) {
	o.shaper.Store(NewWaveshaperTable(ClipTanh, drive, 1))
	o.tone.SetCutoff(toneHz, sampleRate)
	o.outputBits.Store(float32bits(dbToLinear(outputGainDb)))
}

func (o *Overdrive) Process(in, out []float32, n int) {
	if o.passthrough() {
		copyBlock(in, out, n)
		return
	}
	o.hpf.Process(in, out, n)
	shaper := o.shaper.Load()
	gain := float32frombits(o.outputBits.Load())
	for i := 0; i < n; i++ {
		out[i] = shaper.Sample(out[i])
	}
	o.tone.Process(out, out, n)
	for i := 0; i < n; i++ {
		out[i] *= gain
	}
}

func (o *Overdrive) Reset() {
	o.hpf.Reset()
	o.tone.Reset()
}
