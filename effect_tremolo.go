// effect_tremolo.go - amplitude modulation by an LFO

package main

// Tremolo multiplies the signal by (1 - depth + lfo·depth) (spec.md §4.C).
type Tremolo struct {
	effectBase
	lfo   *LFO
	depth float32
}

// NewTremolo builds a tremolo with the given LFO rate (Hz) and depth [0,1].
func NewTremolo(state *DSPState, rateHz, depth float32) *Tremolo {
	return &Tremolo{
		effectBase: newEffectBase(EffectTremolo),
		lfo:        NewLFO(LFOSine, rateHz, 1, 0, state.SampleRate),
		depth:      clampf(depth, 0, 1),
	}
}

// SetParams updates rate and depth.
func (t *Tremolo) SetParams(rateHz, depth, sampleRate float32) {
	t.lfo.SetFreq(rateHz, sampleRate)
	t.depth = clampf(depth, 0, 1)
}

func (t *Tremolo) Process(in, out []float32, n int) {
	if t.passthrough() {
		copyBlock(in, out, n)
		return
	}
	depth := t.depth
	for i := 0; i < n; i++ {
		mod := 1 - depth + t.lfo.Next()*depth
		out[i] = in[i] * mod
	}
}

func (t *Tremolo) Reset() {}
