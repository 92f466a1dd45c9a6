// effect_eq3band.go - fixed-band tone control

package main

// EQ3Band cascades a low-shelf @200Hz, a peak @1kHz and a high-shelf
// @5kHz (spec.md §4.C). Each Biquad publishes its own coefficients
// atomically, so the chain needs no lock of its own around SetGains.
type EQ3Band struct {
	effectBase

	low  *Biquad
	mid  *Biquad
	high *Biquad
}

// NewEQ3Band builds the three-band EQ with the given gains in dB.
func NewEQ3Band(state *DSPState, lowDb, midDb, highDb float32) *EQ3Band {
	fs := state.SampleRate
	return &EQ3Band{
		effectBase: newEffectBase(EffectEQ3Band),
		low:        NewBiquad(BiquadLowShelf, 200, 0.707, lowDb, fs),
		mid:        NewBiquad(BiquadPeak, 1000, 1.0, midDb, fs),
		high:       NewBiquad(BiquadHighShelf, 5000, 0.707, highDb, fs),
	}
}

// SetGains updates the three band gains (dB) without reallocating filters.
func (e *EQ3Band) SetGains(lowDb, midDb, highDb, sampleRate float32) {
	e.low.SetParams(BiquadLowShelf, 200, 0.707, lowDb, sampleRate)
	e.mid.SetParams(BiquadPeak, 1000, 1.0, midDb, sampleRate)
	e.high.SetParams(BiquadHighShelf, 5000, 0.707, highDb, sampleRate)
}

func (e *EQ3Band) Process(in, out []float32, n int) {
	if e.passthrough() {
		copyBlock(in, out, n)
		return
	}
	e.low.Process(in, out, n)
	e.mid.Process(out, out, n)
	e.high.Process(out, out, n)
}

func (e *EQ3Band) Reset() {
	e.low.Reset()
	e.mid.Reset()
	e.high.Reset()
}
