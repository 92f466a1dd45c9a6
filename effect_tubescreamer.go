// effect_tubescreamer.go - highpass, mid-boost, soft clip, output gain

package main

import "sync/atomic"

// TubeScreamer: highpass → mid-band peak EQ boost → drive → soft-clip →
// output gain (spec.md §4.C).
type TubeScreamer struct {
	effectBase

	hpf        *OnePole
	midBoost   *Biquad
	shaper     atomic.Pointer[WaveshaperTable]
	outputBits atomic.Uint32
}

// NewTubeScreamer builds a tube-screamer stage.
func NewTubeScreamer(state *DSPState, midGainDb, drive, outputGainDb float32) *TubeScreamer {
	fs := state.SampleRate
	t := &TubeScreamer{
		effectBase: newEffectBase(EffectTubeScreamer),
		hpf:        NewOnePole(720, fs, true),
		midBoost:   NewBiquad(BiquadPeak, 720, 0.7, midGainDb, fs),
	}
	t.shaper.Store(NewWaveshaperTable(ClipTanh, drive, 1))
	t.outputBits.Store(float32bits(dbToLinear(outputGainDb)))
	return t
}

// SetParams rebuilds the waveshaper table and updates the mid-boost and
// output gain.
func (t *TubeScreamer) SetParams(midGainDb, drive, outputGainDb, sampleRate float32) {
	t.midBoost.SetParams(BiquadPeak, 720, 0.7, midGainDb, sampleRate)
	t.shaper.Store(NewWaveshaperTable(ClipTanh, drive, 1))
	t.outputBits.Store(float32bits(dbToLinear(outputGainDb)))
}

func (t *TubeScreamer) Process(in, out []float32, n int) {
	if t.passthrough() {
		copyBlock(in, out, n)
		return
	}
	t.hpf.Process(in, out, n)
	t.midBoost.Process(out, out, n)
	shaper, gain := t.shaper.Load(), float32frombits(t.outputBits.Load())
	for i := 0; i < n; i++ {
		out[i] = shaper.Sample(out[i]) * gain
	}
}

func (t *TubeScreamer) Reset() {
	t.hpf.Reset()
	t.midBoost.Reset()
}
