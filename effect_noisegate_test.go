// effect_noisegate_test.go - attack/hold/decay timing scenario

package main

import "testing"

// TestNoiseGate_HoldsOpenThenDecays exercises the OPEN -> HOLD -> CLOSED
// state machine: a loud burst opens the gate, then once the signal drops
// below threshold the gate must stay open for holdMs before its
// attenuation starts decaying.
func TestNoiseGate_HoldsOpenThenDecays(t *testing.T) {
	const fs = 48000
	state := &DSPState{SampleRate: fs}
	g := NewNoiseGate(state, -20, 1, 1, 50) // -20dB threshold, 50ms hold

	loud := make([]float32, 512)
	for i := range loud {
		loud[i] = 0.5 // well above -20dB (~0.1)
	}
	out := make([]float32, len(loud))
	g.Process(loud, out, len(loud))
	if g.state != gateOpen {
		t.Fatalf("after a loud burst, state = %v, want gateOpen", g.state)
	}

	// Drop below threshold; the gate should move to HOLD and stay fully
	// open (attenuation == 1) for the whole hold window.
	holdSamples := msToSamples(50, fs)
	quiet := make([]float32, holdSamples-1)
	quietOut := make([]float32, len(quiet))
	g.Process(quiet, quietOut, len(quiet))
	if g.attenuation != 1 {
		t.Fatalf("attenuation during hold window = %v, want 1 (gate must not have started closing yet)", g.attenuation)
	}

	// Push a few samples past the hold window: the gate should now be
	// decaying (CLOSED state, attenuation < 1).
	more := make([]float32, 100)
	moreOut := make([]float32, len(more))
	g.Process(more, moreOut, len(more))
	if g.attenuation >= 1 {
		t.Fatalf("attenuation after the hold window elapsed = %v, want < 1 (gate should be decaying)", g.attenuation)
	}
}

func TestNoiseGate_DisabledIsPassthrough(t *testing.T) {
	state := &DSPState{SampleRate: 48000}
	g := NewNoiseGate(state, -20, 1, 1, 50)
	g.SetEnabled(false)
	in := []float32{0.01, 0.02, -0.03}
	out := make([]float32, len(in))
	g.Process(in, out, len(in))
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d: disabled gate changed signal: in=%v out=%v", i, in[i], out[i])
		}
	}
}

func TestNoiseGate_Reset(t *testing.T) {
	state := &DSPState{SampleRate: 48000}
	g := NewNoiseGate(state, -20, 1, 1, 50)
	loud := make([]float32, 256)
	for i := range loud {
		loud[i] = 0.5
	}
	out := make([]float32, len(loud))
	g.Process(loud, out, len(loud))
	g.Reset()
	if g.state != gateOpen || g.attenuation != 1 || g.holdCounter != 0 {
		t.Fatalf("after Reset: state=%v attenuation=%v holdCounter=%v, want gateOpen/1/0", g.state, g.attenuation, g.holdCounter)
	}
}
