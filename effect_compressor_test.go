// effect_compressor_test.go - steady-state makeup-gain-only scenario

package main

import (
	"math"
	"testing"
)

// TestCompressor_BelowThresholdIsMakeupGainOnly feeds a constant tone well
// under the threshold; once the envelope and gain-smoothing states settle,
// the only thing applied to the signal should be the makeup gain.
func TestCompressor_BelowThresholdIsMakeupGainOnly(t *testing.T) {
	const fs = 48000
	state := &DSPState{SampleRate: fs}
	c := NewCompressor(state, -10, 4, 6, 0, 5, 50)

	n := 20000
	in := make([]float32, n)
	for i := range in {
		in[i] = 0.05 // well below -10dB (~0.316)
	}
	out := make([]float32, n)
	c.Process(in, out, n)

	makeup := dbToLinear(6)
	want := 0.05 * makeup
	got := out[n-1]
	if math.Abs(float64(got-want)) > 0.01 {
		t.Errorf("settled compressor output = %v, want ~%v (makeup gain only, no reduction)", got, want)
	}
}

func TestCompressor_AboveThresholdReducesGain(t *testing.T) {
	const fs = 48000
	state := &DSPState{SampleRate: fs}
	c := NewCompressor(state, -10, 4, 0, 0, 1, 10)

	n := 20000
	in := make([]float32, n)
	for i := range in {
		in[i] = 0.9 // well above -10dB
	}
	out := make([]float32, n)
	c.Process(in, out, n)

	// 4:1 compression above threshold must reduce the settled output
	// below the uncompressed input level.
	if out[n-1] >= in[n-1] {
		t.Errorf("settled compressed output = %v, want < input %v", out[n-1], in[n-1])
	}
}

func TestCompressor_GainComputer_KneeContinuity(t *testing.T) {
	below := gainComputer(-13, -10, 6, 4) // lower knee edge
	if math.Abs(float64(below-(-13))) > 0.01 {
		t.Errorf("gainComputer at lower knee edge = %v, want ~-13 (identity below the knee)", below)
	}
}

func TestCompressor_BypassIsExactPassthrough(t *testing.T) {
	state := &DSPState{SampleRate: 48000}
	c := NewCompressor(state, -10, 4, 6, 2, 5, 50)
	c.SetBypass(true)
	in := []float32{0.9, -0.9, 0.1}
	out := make([]float32, len(in))
	c.Process(in, out, len(in))
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d: bypassed compressor changed signal: in=%v out=%v", i, in[i], out[i])
		}
	}
}
