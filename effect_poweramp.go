// effect_poweramp.go - tube-table power stage with supply-sag simulation

package main

import "sync/atomic"

// powerampParams bundles the drive/supply/sag/gain controls a SetParams
// call publishes as a single atomic swap (SPEC_FULL.md §7).
type powerampParams struct {
	drive      float32
	supply     float32
	sagAmt     float32
	sagCoeff   float32
	outputGain float32
}

// Poweramp: drive → tube-table nonlinearity → sag model → output gain
// (spec.md §4.C). The sag state integrates toward (supply − sagAmount·|x|)
// with a one-pole time constant of sagTimeMs, directly on |x| rather than
// a smoothed envelope (distinguishing it from Preamp's sag, which tracks
// an RMS envelope).
type Poweramp struct {
	effectBase

	tube   atomic.Pointer[TubeTable]
	params atomic.Pointer[powerampParams]

	sagState float32
}

// NewPoweramp builds a power-amp stage with the given tube, drive, supply
// voltage (normalised, typically 1.0), sag amount, sag time (ms) and
// output gain (dB).
func NewPoweramp(state *DSPState, tube TubeParams, drive, supply, sagAmount, sagTimeMs, outputGainDb float32) *Poweramp {
	p := &Poweramp{
		effectBase: newEffectBase(EffectPoweramp),
		sagState:   supply,
	}
	p.tube.Store(NewTubeTable(tube, drive))
	p.params.Store(&powerampParams{
		drive:      drive,
		supply:     supply,
		sagAmt:     clampf(sagAmount, 0, 1),
		sagCoeff:   timeCoeff(sagTimeMs, state.SampleRate),
		outputGain: dbToLinear(outputGainDb),
	})
	return p
}

// SetParams rebuilds the tube table for a new drive/tube and updates the
// sag and gain controls.
func (p *Poweramp) SetParams(tube TubeParams, drive, supply, sagAmount, sagTimeMs, outputGainDb, sampleRate float32) {
	p.tube.Store(NewTubeTable(tube, drive))
	p.params.Store(&powerampParams{
		drive:      drive,
		supply:     supply,
		sagAmt:     clampf(sagAmount, 0, 1),
		sagCoeff:   timeCoeff(sagTimeMs, sampleRate),
		outputGain: dbToLinear(outputGainDb),
	})
}

func (p *Poweramp) Process(in, out []float32, n int) {
	if p.passthrough() {
		copyBlock(in, out, n)
		return
	}
	tube, params := p.tube.Load(), p.params.Load()
	drive := params.drive
	supply, sagAmt, sagCoeff := params.supply, params.sagAmt, params.sagCoeff
	sagState := p.sagState
	gain := params.outputGain
	for i := 0; i < n; i++ {
		x := in[i] * drive
		target := supply - sagAmt*abs32(x)
		sagState += (target - sagState) * sagCoeff
		out[i] = tube.Sample(x*sagState) * gain
	}
	p.sagState = denormalFlush(sagState)
}

func (p *Poweramp) Reset() {
	p.sagState = p.params.Load().supply
}
