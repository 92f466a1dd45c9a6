// effect_noisegate.go - envelope-driven gate with OPEN/HOLD/CLOSED states

package main

import "sync/atomic"

type gateState int

const (
	gateOpen gateState = iota
	gateHold
	gateClosed
)

// noiseGateParams bundles the threshold and hold length a SetParams call
// publishes as a single atomic swap (SPEC_FULL.md §7).
type noiseGateParams struct {
	thresholdDb float32
	holdSamples int
}

// NoiseGate attenuates signal below a threshold, holding the gate open for
// holdMs after the last above-threshold sample before closing with an
// asymptotic 0.99/sample decay (spec.md §4.C state machine).
type NoiseGate struct {
	effectBase

	env    *EnvelopeDetector
	params atomic.Pointer[noiseGateParams]

	state       gateState
	holdCounter int
	attenuation float32
}

// NewNoiseGate builds a gate at the given threshold (dB), attack/release
// (ms, envelope tracking) and hold (ms).
func NewNoiseGate(state *DSPState, thresholdDb, attackMs, releaseMs, holdMs float32) *NoiseGate {
	g := &NoiseGate{
		effectBase:  newEffectBase(EffectNoiseGate),
		env:         NewEnvelopeDetector(attackMs, releaseMs, state.SampleRate, EnvelopePeak),
		attenuation: 1,
	}
	g.params.Store(&noiseGateParams{thresholdDb: thresholdDb, holdSamples: msToSamples(holdMs, state.SampleRate)})
	return g
}

// SetParams updates threshold/attack/release/hold. Safe to call from the
// control thread while the audio thread is mid-chain: the new threshold
// and hold length are published as one atomic pointer swap, so Process
// always sees a complete, consistent set (SPEC_FULL.md §7).
func (g *NoiseGate) SetParams(thresholdDb, attackMs, releaseMs, holdMs, sampleRate float32) {
	g.env.SetTimes(attackMs, releaseMs, sampleRate)
	g.params.Store(&noiseGateParams{thresholdDb: thresholdDb, holdSamples: msToSamples(holdMs, sampleRate)})
}

func (g *NoiseGate) Process(in, out []float32, n int) {
	if g.passthrough() {
		copyBlock(in, out, n)
		return
	}
	p := g.params.Load()
	thresholdLin := dbToLinear(p.thresholdDb)
	for i := 0; i < n; i++ {
		x := in[i]
		envLevel := g.env.Step(x)

		if envLevel > thresholdLin {
			g.state = gateOpen
			g.attenuation = 1
			g.holdCounter = p.holdSamples
		} else {
			switch g.state {
			case gateOpen:
				g.state = gateHold
				g.holdCounter = p.holdSamples
			case gateHold:
				if g.holdCounter > 0 {
					g.holdCounter--
				}
				if g.holdCounter <= 0 {
					g.state = gateClosed
				}
			case gateClosed:
				g.attenuation *= 0.99
			}
		}
		out[i] = x * g.attenuation
	}
}

func (g *NoiseGate) Reset() {
	g.env.Reset()
	g.state = gateOpen
	g.holdCounter = 0
	g.attenuation = 1
}
