// persist_test.go - SaveChain/LoadChain round trip

package main

import (
	"strings"
	"testing"
)

func TestSaveLoadChain_RoundTripsTopology(t *testing.T) {
	state := newTestState(t)
	chain := NewEffectChain(state)
	b, _ := chain.Add(EffectBoost)
	b.(*Boost).SetGain(2)
	d, _ := chain.Add(EffectDelay)
	d.SetBypass(true)
	chain.Add(EffectEQ3Band)

	var buf strings.Builder
	if err := SaveChain(chain, &buf); err != nil {
		t.Fatalf("SaveChain: %v", err)
	}

	loaded := NewEffectChain(state)
	if err := LoadChain(loaded, state, strings.NewReader(buf.String())); err != nil {
		t.Fatalf("LoadChain: %v", err)
	}

	effects := loaded.Effects()
	if len(effects) != 3 {
		t.Fatalf("loaded chain has %d effects, want 3", len(effects))
	}
	if effects[0].Type() != EffectBoost {
		t.Errorf("effects[0].Type() = %v, want Boost", effects[0].Type())
	}
	if !effects[1].Bypassed() {
		t.Error("effects[1] (Delay) should have loaded as bypassed")
	}
	if effects[2].Type() != EffectEQ3Band {
		t.Errorf("effects[2].Type() = %v, want EQ3Band", effects[2].Type())
	}

	boostGain := float32frombits(effects[0].(*Boost).gainBits.Load())
	if boostGain < 1.99 || boostGain > 2.01 {
		t.Errorf("loaded Boost gain = %v, want ~2.0 (param comment round trip)", boostGain)
	}
}

func TestLoadChain_UnknownTypeFails(t *testing.T) {
	state := newTestState(t)
	chain := NewEffectChain(state)
	err := LoadChain(chain, state, strings.NewReader("NotARealEffect 1 0\n"))
	if err == nil {
		t.Fatal("LoadChain should fail on an unrecognized effect type")
	}
}

func TestLoadChain_MalformedLineFails(t *testing.T) {
	state := newTestState(t)
	chain := NewEffectChain(state)
	err := LoadChain(chain, state, strings.NewReader("Boost 1\n"))
	if err == nil {
		t.Fatal("LoadChain should fail on a line missing a field")
	}
}

func TestLoadChain_IgnoresUnrecognizedCommentLines(t *testing.T) {
	state := newTestState(t)
	chain := NewEffectChain(state)
	input := "Boost 1 0\n# not key=value garbage\n"
	if err := LoadChain(chain, state, strings.NewReader(input)); err != nil {
		t.Fatalf("LoadChain with a non key=value comment: %v", err)
	}
	if chain.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", chain.Count())
	}
}
