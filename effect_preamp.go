// effect_preamp.go - tube-table preamp stage with sag simulation

package main

import "sync/atomic"

// preampParams bundles the gain-staging and sag controls a SetParams call
// publishes as a single atomic swap (SPEC_FULL.md §7).
type preampParams struct {
	preGain    float32 // drive * inputGain
	sagAmount  float32
	sagCoeff   float32
	outputGain float32
}

// Preamp: input HPF → drive×inputGain → tube-table nonlinearity → 3-band
// tone stack → sag simulation → output gain (spec.md §4.C). Sag models
// the supply voltage dipping under signal load: it integrates toward
// (1 − sagAmount·envelope) with a one-pole time constant of sagTimeMs.
// That time constant is set directly by sagTimeMs and does not scale
// with sagAmount.
type Preamp struct {
	effectBase

	hpf  *OnePole
	tube atomic.Pointer[TubeTable]
	low  *Biquad
	mid  *Biquad
	high *Biquad
	env  *EnvelopeDetector

	params   atomic.Pointer[preampParams]
	sagState float32
}

// NewPreamp builds a preamp stage with the given tube, drive, input gain,
// 3-band tone gains (dB), sag amount [0,1], sag time (ms) and output gain
// (dB).
func NewPreamp(state *DSPState, tube TubeParams, drive, inputGain, lowDb, midDb, highDb, sagAmount, sagTimeMs, outputGainDb float32) *Preamp {
	fs := state.SampleRate
	p := &Preamp{
		effectBase: newEffectBase(EffectPreamp),
		hpf:        NewOnePole(60, fs, true),
		low:        NewBiquad(BiquadLowShelf, 150, 0.707, lowDb, fs),
		mid:        NewBiquad(BiquadPeak, 800, 1.0, midDb, fs),
		high:       NewBiquad(BiquadHighShelf, 4000, 0.707, highDb, fs),
		env:        NewEnvelopeDetector(5, 50, fs, EnvelopeRMS),
		sagState:   1,
	}
	p.tube.Store(NewTubeTable(tube, drive))
	p.params.Store(&preampParams{
		preGain:    drive * inputGain,
		sagAmount:  clampf(sagAmount, 0, 1),
		sagCoeff:   timeCoeff(sagTimeMs, fs),
		outputGain: dbToLinear(outputGainDb),
	})
	return p
}

// SetParams rebuilds the tube table for a new drive/tube and updates the
// tone stack, sag and gain controls.
func (p *Preamp) SetParams(tube TubeParams, drive, inputGain, lowDb, midDb, highDb, sagAmount, sagTimeMs, outputGainDb, sampleRate float32) {
	p.tube.Store(NewTubeTable(tube, drive))
	p.low.SetParams(BiquadLowShelf, 150, 0.707, lowDb, sampleRate)
	p.mid.SetParams(BiquadPeak, 800, 1.0, midDb, sampleRate)
	p.high.SetParams(BiquadHighShelf, 4000, 0.707, highDb, sampleRate)
	p.params.Store(&preampParams{
		preGain:    drive * inputGain,
		sagAmount:  clampf(sagAmount, 0, 1),
		sagCoeff:   timeCoeff(sagTimeMs, sampleRate),
		outputGain: dbToLinear(outputGainDb),
	})
}

func (p *Preamp) Process(in, out []float32, n int) {
	if p.passthrough() {
		copyBlock(in, out, n)
		return
	}
	p.hpf.Process(in, out, n)

	tube, params := p.tube.Load(), p.params.Load()
	preGain := params.preGain
	for i := 0; i < n; i++ {
		out[i] = tube.Sample(out[i] * preGain)
	}

	p.low.Process(out, out, n)
	p.mid.Process(out, out, n)
	p.high.Process(out, out, n)

	sagAmount, sagCoeff := params.sagAmount, params.sagCoeff
	sagState := p.sagState
	gain := params.outputGain
	for i := 0; i < n; i++ {
		envLevel := p.env.Step(out[i])
		sagTarget := 1 - sagAmount*envLevel
		sagState += (sagTarget - sagState) * sagCoeff
		out[i] *= sagState * gain
	}
	p.sagState = denormalFlush(sagState)
}

func (p *Preamp) Reset() {
	p.hpf.Reset()
	p.low.Reset()
	p.mid.Reset()
	p.high.Reset()
	p.env.Reset()
	p.sagState = 1
}
