// effect_phaser.go - cascaded LFO-modulated allpass stages

package main

// Phaser cascades N first-order allpasses whose shared coefficient is
// g = 0.5 + lfo·depth·0.4 (spec.md §4.C), then mixes the cascade's output
// with the dry signal.
type Phaser struct {
	effectBase
	stages []*AllPass1
	lfo    *LFO
	depth  float32
	mix    float32

	coeffBuf []float32
	stageBuf []float32
}

// NewPhaser builds a phaser with the given stage count, LFO rate (Hz),
// modulation depth [0,1] and dry/wet mix [0,1].
func NewPhaser(state *DSPState, stageCount int, rateHz, depth, mix float32) *Phaser {
	if stageCount < 1 {
		stageCount = 4
	}
	p := &Phaser{
		effectBase: newEffectBase(EffectPhaser),
		stages:     make([]*AllPass1, stageCount),
		lfo:        NewLFO(LFOSine, rateHz, 1, 0, state.SampleRate),
		depth:      clampf(depth, 0, 1),
		mix:        clampf(mix, 0, 1),
		coeffBuf:   make([]float32, state.BlockSize),
		stageBuf:   make([]float32, state.BlockSize),
	}
	for i := range p.stages {
		p.stages[i] = NewAllPass1(0.5)
	}
	return p
}

// SetParams updates rate (Hz), depth and mix.
func (p *Phaser) SetParams(rateHz, depth, mix, sampleRate float32) {
	p.lfo.SetFreq(rateHz, sampleRate)
	p.depth = clampf(depth, 0, 1)
	p.mix = clampf(mix, 0, 1)
}

func (p *Phaser) Process(in, out []float32, n int) {
	if p.passthrough() {
		copyBlock(in, out, n)
		return
	}
	coeffs := p.coeffBuf[:n]
	for i := 0; i < n; i++ {
		coeffs[i] = 0.5 + p.lfo.Next()*p.depth*0.4
	}

	stage := p.stageBuf[:n]
	p.stages[0].ProcessModulated(in, coeffs, stage, n)
	for i := 1; i < len(p.stages); i++ {
		p.stages[i].ProcessModulated(stage, coeffs, stage, n)
	}

	mix := p.mix
	for i := 0; i < n; i++ {
		out[i] = in[i] + (stage[i]-in[i])*mix
	}
}

func (p *Phaser) Reset() {
	for _, s := range p.stages {
		s.Reset()
	}
}
