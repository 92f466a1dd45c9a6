// presets_test.go - named preset loading, including the metal scenario's
// exact 6-effect ordering

package main

import "testing"

func TestLoadPreset_Metal_EffectOrder(t *testing.T) {
	state := newTestState(t)
	chain := NewEffectChain(state)
	if err := LoadPreset(chain, state, "metal"); err != nil {
		t.Fatalf("LoadPreset(metal): %v", err)
	}
	want := []EffectType{
		EffectNoiseGate, EffectDistortion, EffectPreamp,
		EffectPoweramp, EffectCabinet, EffectEQ3Band,
	}
	effects := chain.Effects()
	if len(effects) != len(want) {
		t.Fatalf("metal preset has %d effects, want %d", len(effects), len(want))
	}
	for i, typ := range want {
		if effects[i].Type() != typ {
			t.Errorf("metal preset effect %d = %v, want %v", i, effects[i].Type(), typ)
		}
	}
}

func TestLoadPreset_UnknownNameFails(t *testing.T) {
	state := newTestState(t)
	chain := NewEffectChain(state)
	if err := LoadPreset(chain, state, "does-not-exist"); err == nil {
		t.Fatal("LoadPreset with an unknown name should fail")
	}
}

func TestLoadPreset_ClearsExistingChain(t *testing.T) {
	state := newTestState(t)
	chain := NewEffectChain(state)
	chain.Add(EffectWah)
	if err := LoadPreset(chain, state, "clean"); err != nil {
		t.Fatalf("LoadPreset(clean): %v", err)
	}
	if chain.Find(EffectWah) != nil {
		t.Fatal("LoadPreset should clear effects left over from before it ran")
	}
}

func TestPresetNames_MatchesTable(t *testing.T) {
	names := PresetNames()
	if len(names) != len(presets) {
		t.Fatalf("PresetNames() returned %d names, want %d", len(names), len(presets))
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{"clean", "crunch", "lead", "metal", "fuzz", "ambient", "blues", "shoegaze", "funk"} {
		if !seen[want] {
			t.Errorf("PresetNames() missing %q", want)
		}
	}
}

func TestAllPresets_LoadWithoutError(t *testing.T) {
	state := newTestState(t)
	for _, name := range PresetNames() {
		chain := NewEffectChain(state)
		if err := LoadPreset(chain, state, name); err != nil {
			t.Errorf("LoadPreset(%q): %v", name, err)
			continue
		}
		// Every loaded preset must process a block without panicking.
		in := make([]float32, state.BlockSize)
		out := make([]float32, state.BlockSize)
		chain.Process(in, out, state.BlockSize)
	}
}
