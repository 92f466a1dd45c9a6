// effect_compressor.go - soft-knee dynamics processor

package main

import "sync/atomic"

// compressorParams bundles the gain-computer and smoothing controls a
// SetParams call publishes as one atomic swap (SPEC_FULL.md §7).
type compressorParams struct {
	thresholdDb   float32
	ratio         float32
	makeupDb      float32
	kneeDb        float32
	smoothAttack  float32
	smoothRelease float32
}

// Compressor implements peak/RMS envelope → dB → soft-knee gain reduction
// → asymmetric smoothing → linear gain × makeup (spec.md §4.C).
type Compressor struct {
	effectBase

	env    *EnvelopeDetector
	params atomic.Pointer[compressorParams]

	gainState float32
	targetBuf []float32
}

// NewCompressor builds a compressor with the given threshold (dB), ratio
// (N:1, N≥1), makeup gain (dB), knee width (dB) and attack/release (ms).
func NewCompressor(state *DSPState, thresholdDb, ratio, makeupDb, kneeDb, attackMs, releaseMs float32) *Compressor {
	c := &Compressor{
		effectBase: newEffectBase(EffectCompressor),
		env:        NewEnvelopeDetector(attackMs, releaseMs, state.SampleRate, EnvelopePeak),
		gainState:  1,
		targetBuf:  make([]float32, state.BlockSize),
	}
	c.SetParams(thresholdDb, ratio, makeupDb, kneeDb, attackMs, releaseMs, state.SampleRate)
	return c
}

// SetParams updates the compressor's controls.
func (c *Compressor) SetParams(thresholdDb, ratio, makeupDb, kneeDb, attackMs, releaseMs, sampleRate float32) {
	if ratio < 1 {
		ratio = 1
	}
	if kneeDb < 0 {
		kneeDb = 0
	}
	c.env.SetTimes(attackMs, releaseMs, sampleRate)
	c.params.Store(&compressorParams{
		thresholdDb:   thresholdDb,
		ratio:         ratio,
		makeupDb:      makeupDb,
		kneeDb:        kneeDb,
		smoothAttack:  timeCoeff(attackMs, sampleRate),
		smoothRelease: timeCoeff(releaseMs, sampleRate),
	})
}

func (c *Compressor) Process(in, out []float32, n int) {
	if c.passthrough() {
		copyBlock(in, out, n)
		return
	}
	p := c.params.Load()
	makeup := dbToLinear(p.makeupDb)

	if len(c.targetBuf) < n {
		c.targetBuf = make([]float32, n)
	}
	target := c.targetBuf[:n]
	for i := 0; i < n; i++ {
		envLevel := c.env.Step(in[i])
		xDb := linearToDb(envLevel)
		targetDb := gainComputer(xDb, p.thresholdDb, p.kneeDb, p.ratio)
		target[i] = dbToLinear(targetDb - xDb)
	}

	applyGainSmoothing(out[:n], target, &c.gainState, p.smoothAttack, p.smoothRelease, n)
	for i := 0; i < n; i++ {
		out[i] *= in[i] * makeup
	}
}

// gainComputer applies the soft-knee static curve to an input level in dB,
// returning the output level in dB.
func gainComputer(xDb, t, knee, ratio float32) float32 {
	if knee <= 0 {
		if xDb <= t {
			return xDb
		}
		return t + (xDb-t)/ratio
	}
	lower := t - knee/2
	upper := t + knee/2
	switch {
	case xDb < lower:
		return xDb
	case xDb > upper:
		return t + (xDb-t)/ratio
	default:
		delta := xDb - lower
		return xDb + (1/ratio-1)*(delta*delta)/(2*knee)
	}
}

func (c *Compressor) Reset() {
	c.env.Reset()
	c.gainState = 1
}
