// presets.go - named canonical chains (spec.md §4.F)
//
// Preset wiring is table-driven Go data rather than a string-keyed
// dispatch: each step names an effect type and a configure closure that
// applies that effect's typed setters, so adding a tenth preset is a data
// change, not new control flow (SPEC_FULL.md §5.F).

package main

import "fmt"

type presetStep struct {
	typ       EffectType
	configure func(e Effect, fs float32)
}

type preset struct {
	name  string
	steps []presetStep
}

var presets = []preset{
	{
		name: "clean",
		steps: []presetStep{
			{EffectEQ3Band, func(e Effect, fs float32) { e.(*EQ3Band).SetGains(1, 0, 1, fs) }},
			{EffectCabinet, func(e Effect, fs float32) { e.(*Cabinet).SetType(CabinetVintage, fs) }},
		},
	},
	{
		name: "crunch",
		steps: []presetStep{
			{EffectNoiseGate, func(e Effect, fs float32) { e.(*NoiseGate).SetParams(-45, 1, 40, 8, fs) }},
			{EffectOverdrive, func(e Effect, fs float32) { e.(*Overdrive).SetParams(3, 3500, 2, fs) }},
			{EffectEQ3Band, func(e Effect, fs float32) { e.(*EQ3Band).SetGains(0, 2, 1, fs) }},
			{EffectCabinet, func(e Effect, fs float32) { e.(*Cabinet).SetType(CabinetVintage, fs) }},
		},
	},
	{
		name: "lead",
		steps: []presetStep{
			{EffectNoiseGate, func(e Effect, fs float32) { e.(*NoiseGate).SetParams(-50, 1, 40, 12, fs) }},
			{EffectTubeScreamer, func(e Effect, fs float32) { e.(*TubeScreamer).SetParams(8, 5, 2, fs) }},
			{EffectDistortion, func(e Effect, fs float32) { e.(*Distortion).SetParams(10, -1, 3, 2, -4, fs) }},
			{EffectDelay, func(e Effect, fs float32) { e.(*Delay).SetParams(380, 0.25, 5000, 0.2, fs) }},
			{EffectCabinet, func(e Effect, fs float32) { e.(*Cabinet).SetType(CabinetModern, fs) }},
		},
	},
	{
		name: "metal",
		steps: []presetStep{
			{EffectNoiseGate, func(e Effect, fs float32) { e.(*NoiseGate).SetParams(-35, 0.5, 30, 6, fs) }},
			{EffectDistortion, func(e Effect, fs float32) { e.(*Distortion).SetParams(16, -2, 4, 3, -6, fs) }},
			{EffectPreamp, func(e Effect, fs float32) {
				e.(*Preamp).SetParams(findTubeParams("12AX7"), 8, 1.4, -2, 1, 2, 0.4, 4, -3, fs)
			}},
			{EffectPoweramp, func(e Effect, fs float32) {
				e.(*Poweramp).SetParams(findTubeParams("6L6CG"), 3, 1, 0.35, 8, 0, fs)
			}},
			{EffectCabinet, func(e Effect, fs float32) { e.(*Cabinet).SetType(CabinetModernMetal, fs) }},
			{EffectEQ3Band, func(e Effect, fs float32) { e.(*EQ3Band).SetGains(2, -1, 3, fs) }},
		},
	},
	{
		name: "fuzz",
		steps: []presetStep{
			{EffectNoiseGate, func(e Effect, fs float32) { e.(*NoiseGate).SetParams(-40, 1, 50, 10, fs) }},
			{EffectFuzz, func(e Effect, fs float32) { e.(*Fuzz).SetParams(18, 0.4, -8) }},
			{EffectCabinet, func(e Effect, fs float32) { e.(*Cabinet).SetType(CabinetVintage, fs) }},
		},
	},
	{
		name: "ambient",
		steps: []presetStep{
			{EffectChorus, func(e Effect, fs float32) { e.(*Chorus).SetParams(18, 6, 0.5, 0.4, fs) }},
			{EffectDelay, func(e Effect, fs float32) { e.(*Delay).SetParams(650, 0.45, 3500, 0.4, fs) }},
			{EffectReverb, func(e Effect, fs float32) { e.(*Reverb).SetParams(0.7, 4000, 0.5, fs) }},
		},
	},
	{
		name: "blues",
		steps: []presetStep{
			{EffectOverdrive, func(e Effect, fs float32) { e.(*Overdrive).SetParams(2.5, 2800, 1, fs) }},
			{EffectTremolo, func(e Effect, fs float32) { e.(*Tremolo).SetParams(4.5, 0.35, fs) }},
			{EffectReverb, func(e Effect, fs float32) { e.(*Reverb).SetParams(0.3, 6000, 0.25, fs) }},
			{EffectCabinet, func(e Effect, fs float32) { e.(*Cabinet).SetType(CabinetVintage, fs) }},
		},
	},
	{
		name: "shoegaze",
		steps: []presetStep{
			{EffectFuzz, func(e Effect, fs float32) { e.(*Fuzz).SetParams(10, 0.2, -5) }},
			{EffectFlanger, func(e Effect, fs float32) { e.(*Flanger).SetParams(3, 2, 0.25, 0.4, 0.5, fs) }},
			{EffectReverb, func(e Effect, fs float32) { e.(*Reverb).SetParams(0.8, 3500, 0.6, fs) }},
		},
	},
	{
		name: "funk",
		steps: []presetStep{
			{EffectCompressor, func(e Effect, fs float32) { e.(*Compressor).SetParams(-18, 5, 4, 3, 3, 80, fs) }},
			{EffectWah, func(e Effect, fs float32) { e.(*Wah).SetParams(1.2, 2.5, 8, 120) }},
			{EffectEQ3Band, func(e Effect, fs float32) { e.(*EQ3Band).SetGains(1, 3, 0, fs) }},
		},
	},
}

// LoadPreset clears the chain and adds effects with preset parameters
// (spec.md §4.F). Unknown preset names are a configuration error.
func LoadPreset(chain *EffectChain, state *DSPState, name string) error {
	for _, p := range presets {
		if p.name != name {
			continue
		}
		chain.Clear()
		for _, step := range p.steps {
			eff, err := chain.Add(step.typ)
			if err != nil {
				return err
			}
			step.configure(eff, state.SampleRate)
		}
		return nil
	}
	return fmt.Errorf("ampcore: unknown preset %q", name)
}

// PresetNames lists the available preset names in declaration order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}
