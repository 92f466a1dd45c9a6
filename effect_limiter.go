// effect_limiter.go - hard-kneed output-protection limiter

package main

import "sync/atomic"

// effectTypeLimiter is not part of the stable 20(+1)-tag set a chain user
// can Add/Find/persist — the Limiter is not user-addable, it is the
// chain's own implicit terminal stage (SPEC_FULL.md §5.D). It gets a
// distinct, out-of-range tag purely so Type()/String() report something
// meaningful in diagnostics.
const effectTypeLimiter EffectType = -1

// Limiter is a hard-kneed compressor variant used only as the chain's
// always-last output-protection stage, distinct from the user-facing
// Compressor (spec.md §3's "terminal limiter", supplemented from
// original_source's Limiter/limiter_* — SPEC_FULL.md §5.C/§5.D). It drives
// gain reduction with a fast peak envelope, an effectively infinite ratio
// above its ceiling, and a final hard clamp as an absolute safety net.
type Limiter struct {
	env          *EnvelopeDetector
	ceilingBits  atomic.Uint32
	smoothAttack float32
	smoothRel    float32
	gainState    float32
	enabled      bool
}

// NewLimiter builds a limiter at the given ceiling (dB, typically ~-0.3)
// with a fast attack and moderate release.
func NewLimiter(state *DSPState, ceilingDb float32) *Limiter {
	fs := state.SampleRate
	l := &Limiter{
		env:       NewEnvelopeDetector(0.5, 50, fs, EnvelopePeak),
		gainState: 1,
		enabled:   true,
	}
	l.ceilingBits.Store(float32bits(ceilingDb))
	l.smoothAttack = timeCoeff(0.5, fs)
	l.smoothRel = timeCoeff(50, fs)
	return l
}

// SetCeiling updates the limiting ceiling in dB.
func (l *Limiter) SetCeiling(ceilingDb float32) {
	l.ceilingBits.Store(float32bits(ceilingDb))
}

func (l *Limiter) SetEnabled(enabled bool) { l.enabled = enabled }
func (l *Limiter) SetBypass(bool)          {}
func (l *Limiter) Enabled() bool           { return l.enabled }
func (l *Limiter) Bypassed() bool          { return false }
func (l *Limiter) Type() EffectType        { return effectTypeLimiter }

func (l *Limiter) Process(in, out []float32, n int) {
	if !l.enabled {
		copyBlock(in, out, n)
		return
	}
	ceiling := dbToLinear(float32frombits(l.ceilingBits.Load()))
	gainState := l.gainState
	for i := 0; i < n; i++ {
		x := in[i]
		envLevel := l.env.Step(x)
		var target float32 = 1
		if envLevel > ceiling && envLevel > 0 {
			target = ceiling / envLevel
		}
		if target < gainState {
			gainState += (target - gainState) * l.smoothAttack
		} else {
			gainState += (target - gainState) * l.smoothRel
		}
		out[i] = clampf(x*gainState, -1, 1)
	}
	l.gainState = denormalFlush(gainState)
}

func (l *Limiter) Reset() {
	l.env.Reset()
	l.gainState = 1
}
