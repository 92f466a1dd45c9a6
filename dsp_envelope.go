// dsp_envelope.go - peak/RMS envelope follower

package main

import (
	"math"
	"sync/atomic"
)

// EnvelopeMode selects whether the detector follows |x| or x².
type EnvelopeMode int

const (
	EnvelopePeak EnvelopeMode = iota
	EnvelopeRMS
)

// envelopeCoeffs bundles the attack/release coefficients a SetTimes call
// publishes as a single atomic swap, so Step/Process never read a torn mix
// of old and new values (SPEC_FULL.md §7).
type envelopeCoeffs struct {
	attack, release float32
}

// EnvelopeDetector is a one-pole asymmetric envelope follower: it rises
// with the attack coefficient when the instantaneous target exceeds the
// current envelope, and falls with the release coefficient otherwise.
type EnvelopeDetector struct {
	env    float32
	coeffs atomic.Pointer[envelopeCoeffs]
	mode   EnvelopeMode
}

// NewEnvelopeDetector builds a detector with the given attack/release
// times in milliseconds (floored at 0.001ms) at the given sample rate.
func NewEnvelopeDetector(attackMs, releaseMs, sampleRate float32, mode EnvelopeMode) *EnvelopeDetector {
	ed := &EnvelopeDetector{mode: mode}
	ed.SetTimes(attackMs, releaseMs, sampleRate)
	return ed
}

// SetTimes recomputes the attack/release coefficients.
func (ed *EnvelopeDetector) SetTimes(attackMs, releaseMs, sampleRate float32) {
	ed.coeffs.Store(&envelopeCoeffs{
		attack:  timeCoeff(attackMs, sampleRate),
		release: timeCoeff(releaseMs, sampleRate),
	})
}

func timeCoeff(ms, sampleRate float32) float32 {
	if ms < 0.001 {
		ms = 0.001
	}
	return float32(1 - math.Exp(-1/(float64(ms)*1e-3*float64(sampleRate))))
}

// Process follows the input block, writing the envelope magnitude (not dB)
// into out. In RMS mode the square-law target is sqrt'd on read-out.
func (ed *EnvelopeDetector) Process(in, out []float32, n int) {
	c := ed.coeffs.Load()
	env := ed.env
	for i := 0; i < n; i++ {
		x := in[i]
		var target float32
		if ed.mode == EnvelopeRMS {
			target = x * x
		} else {
			target = abs32(x)
		}
		if target > env {
			env += (target - env) * c.attack
		} else {
			env += (target - env) * c.release
		}
		if ed.mode == EnvelopeRMS {
			out[i] = float32(math.Sqrt(float64(env)))
		} else {
			out[i] = env
		}
	}
	ed.env = denormalFlush(env)
}

// Level returns the current envelope value without advancing state (for
// effects that need a scalar reading, e.g. Wah's filter-cutoff tracker).
func (ed *EnvelopeDetector) Level() float32 {
	if ed.mode == EnvelopeRMS {
		return float32(math.Sqrt(float64(ed.env)))
	}
	return ed.env
}

// Step advances the detector by exactly one sample and returns the new
// envelope reading.
func (ed *EnvelopeDetector) Step(x float32) float32 {
	c := ed.coeffs.Load()
	var target float32
	if ed.mode == EnvelopeRMS {
		target = x * x
	} else {
		target = abs32(x)
	}
	if target > ed.env {
		ed.env += (target - ed.env) * c.attack
	} else {
		ed.env += (target - ed.env) * c.release
	}
	ed.env = denormalFlush(ed.env)
	return ed.Level()
}

// Reset zeroes the envelope state.
func (ed *EnvelopeDetector) Reset() {
	ed.env = 0
}

// applyGainSmoothing runs an asymmetric one-pole smoother over a target
// gain-reduction sequence, carrying state across blocks via *state.
func applyGainSmoothing(currentGain []float32, targetGain []float32, state *float32, attackCoeff, releaseCoeff float32, n int) {
	s := *state
	for i := 0; i < n; i++ {
		t := targetGain[i]
		if t < s {
			s += (t - s) * attackCoeff
		} else {
			s += (t - s) * releaseCoeff
		}
		currentGain[i] = s
	}
	*state = denormalFlush(s)
}
