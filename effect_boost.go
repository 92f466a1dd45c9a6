// effect_boost.go - single linear gain stage

package main

import "sync/atomic"

// Boost applies a single linear gain. Gain is stored behind an atomic so
// the audio thread never observes a torn write (a single float32 fits in
// an atomic.Uint32, where the multi-field coefficient bundles of the other
// effects are swapped whole through an atomic.Pointer).
type Boost struct {
	effectBase
	gainBits atomic.Uint32
}

// NewBoost builds a boost stage at the given linear gain.
func NewBoost(gainLinear float32) *Boost {
	b := &Boost{effectBase: newEffectBase(EffectBoost)}
	b.SetGain(gainLinear)
	return b
}

// SetGain updates the linear gain.
func (b *Boost) SetGain(gainLinear float32) {
	b.gainBits.Store(float32bits(gainLinear))
}

// SetGainDb updates the gain from a dB value.
func (b *Boost) SetGainDb(db float32) {
	b.SetGain(dbToLinear(db))
}

func (b *Boost) Process(in, out []float32, n int) {
	if b.passthrough() {
		copyBlock(in, out, n)
		return
	}
	gain := float32frombits(b.gainBits.Load())
	for i := 0; i < n; i++ {
		out[i] = in[i] * gain
	}
}

func (b *Boost) Reset() {}
