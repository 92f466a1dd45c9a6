// effect.go - the uniform Effect contract and the shared base embedded by
// every concrete effect. Tagged-variant dispatch via interface (design note
// in SPEC_FULL.md §5.C): a single virtual Process call per effect rather
// than the teacher's registers-and-function-pointer style chip dispatch.

package main

// EffectType is the stable tag identifying an effect kind, used by the
// chain's Find, by presets, and by the persisted chain format.
type EffectType int

const (
	EffectNoiseGate EffectType = iota
	EffectCompressor
	EffectOverdrive
	EffectDistortion
	EffectFuzz
	EffectBoost
	EffectTubeScreamer
	EffectChorus
	EffectFlanger
	EffectPhaser
	EffectTremolo
	EffectVibrato
	EffectDelay
	EffectReverb
	EffectWah
	EffectEQ3Band
	EffectEQParametric
	EffectPreamp
	EffectPoweramp
	EffectCabinet
	// EffectClipper is supplemented beyond spec.md's 20-entry table,
	// grounded in original_source's standalone Clipper/clipper_* effect:
	// raw waveshaping without Overdrive's tone stage attached.
	EffectClipper
	effectTypeCount
)

var effectTypeNames = [effectTypeCount]string{
	"NoiseGate", "Compressor", "Overdrive", "Distortion", "Fuzz", "Boost",
	"TubeScreamer", "Chorus", "Flanger", "Phaser", "Tremolo", "Vibrato",
	"Delay", "Reverb", "Wah", "EQ3Band", "EQParametric", "Preamp",
	"Poweramp", "Cabinet", "Clipper",
}

// String renders the stable tag name used in the persisted chain format.
func (t EffectType) String() string {
	if t == effectTypeLimiter {
		return "Limiter"
	}
	if t < 0 || t >= effectTypeCount {
		return "Unknown"
	}
	return effectTypeNames[t]
}

// effectTypeByName resolves a persisted tag name back to an EffectType.
// Returns ok=false for an unrecognized name (a configuration error per
// SPEC_FULL.md §9, surfaced to the caller rather than panicking).
func effectTypeByName(name string) (EffectType, bool) {
	for i, n := range effectTypeNames {
		if n == name {
			return EffectType(i), true
		}
	}
	return 0, false
}

// Effect is the uniform contract every chain member satisfies.
type Effect interface {
	// Process transforms in into out over n frames. If disabled or
	// bypassed it copies in to out. Must not allocate or block.
	Process(in, out []float32, n int)
	SetEnabled(enabled bool)
	SetBypass(bypass bool)
	Enabled() bool
	Bypassed() bool
	// Reset zeros internal state.
	Reset()
	Type() EffectType
}

// effectBase holds the enabled/bypass flags and type tag shared by every
// concrete effect, plus the passthrough helper used whenever an effect is
// disabled or bypassed.
type effectBase struct {
	typ     EffectType
	enabled bool
	bypass  bool
}

func newEffectBase(typ EffectType) effectBase {
	return effectBase{typ: typ, enabled: true}
}

func (b *effectBase) SetEnabled(enabled bool) { b.enabled = enabled }
func (b *effectBase) SetBypass(bypass bool)   { b.bypass = bypass }
func (b *effectBase) Enabled() bool           { return b.enabled }
func (b *effectBase) Bypassed() bool          { return b.bypass }
func (b *effectBase) Type() EffectType        { return b.typ }

// passthrough reports whether the effect should skip its transform this
// call, per the uniform contract (I2): disabled or bypassed means copy.
func (b *effectBase) passthrough() bool {
	return !b.enabled || b.bypass
}

func copyBlock(in, out []float32, n int) {
	if n <= 0 {
		return
	}
	if &in[0] == &out[0] {
		return
	}
	copy(out[:n], in[:n])
}
