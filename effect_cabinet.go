// effect_cabinet.go - three-biquad cabinet simulation

package main

// CabinetType selects one of the fixed coefficient sets modelling a
// particular speaker/cabinet voicing.
type CabinetType int

const (
	CabinetModern CabinetType = iota
	CabinetVintage
	CabinetModernMetal
)

type cabinetVoicing struct {
	resonanceHz, resonanceDb float32
	presenceHz, presenceDb   float32
	rolloffHz                float32
}

var cabinetVoicings = map[CabinetType]cabinetVoicing{
	CabinetModern:      {resonanceHz: 120, resonanceDb: 3, presenceHz: 2500, presenceDb: 4, rolloffHz: 5500},
	CabinetVintage:     {resonanceHz: 100, resonanceDb: 5, presenceHz: 1800, presenceDb: 2, rolloffHz: 4500},
	CabinetModernMetal: {resonanceHz: 150, resonanceDb: 2, presenceHz: 3200, presenceDb: 6, rolloffHz: 6500},
}

// Cabinet approximates a speaker cabinet's frequency response with three
// fixed biquads: low-frequency resonance (peak), mid presence (peak) and
// high-frequency roll-off (LPF) (spec.md §4.C). Discrete cabinet types
// select different coefficient sets in place of full impulse-response
// convolution (SPEC_FULL.md §11 design note). Each Biquad publishes its
// own coefficients atomically, so SetType needs no lock of its own.
type Cabinet struct {
	effectBase

	resonance *Biquad
	presence  *Biquad
	rolloff   *Biquad
	kind      CabinetType
}

// NewCabinet builds a cabinet simulation of the given voicing.
func NewCabinet(state *DSPState, kind CabinetType) *Cabinet {
	v := cabinetVoicings[kind]
	fs := state.SampleRate
	return &Cabinet{
		effectBase: newEffectBase(EffectCabinet),
		resonance:  NewBiquad(BiquadPeak, v.resonanceHz, 1.2, v.resonanceDb, fs),
		presence:   NewBiquad(BiquadPeak, v.presenceHz, 1.2, v.presenceDb, fs),
		rolloff:    NewBiquad(BiquadLowpass, v.rolloffHz, 0.707, 0, fs),
		kind:       kind,
	}
}

// SetType switches the cabinet voicing, rebuilding the three biquads.
func (c *Cabinet) SetType(kind CabinetType, sampleRate float32) {
	v := cabinetVoicings[kind]
	c.kind = kind
	c.resonance.SetParams(BiquadPeak, v.resonanceHz, 1.2, v.resonanceDb, sampleRate)
	c.presence.SetParams(BiquadPeak, v.presenceHz, 1.2, v.presenceDb, sampleRate)
	c.rolloff.SetParams(BiquadLowpass, v.rolloffHz, 0.707, 0, sampleRate)
}

func (c *Cabinet) Process(in, out []float32, n int) {
	if c.passthrough() {
		copyBlock(in, out, n)
		return
	}
	c.resonance.Process(in, out, n)
	c.presence.Process(out, out, n)
	c.rolloff.Process(out, out, n)
}

func (c *Cabinet) Reset() {
	c.resonance.Reset()
	c.presence.Reset()
	c.rolloff.Reset()
}
