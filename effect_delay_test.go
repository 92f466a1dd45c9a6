// effect_delay_test.go - echo spacing and feedback attenuation scenario

package main

import (
	"math"
	"testing"
)

// TestDelay_ImpulseEchoAppearsAtDelayTime feeds a single impulse and checks
// that the wet signal's first strong echo appears at the configured delay,
// attenuated by feedback, rather than at some other offset.
func TestDelay_ImpulseEchoAppearsAtDelayTime(t *testing.T) {
	const fs = 48000
	state := &DSPState{SampleRate: fs}
	timeMs := float32(10) // 480 samples
	d := NewDelay(state, timeMs, 0.5, 20000, 1.0)

	n := 2000
	in := make([]float32, n)
	in[0] = 1
	out := make([]float32, n)
	d.Process(in, out, n)

	delaySamples := int(timeMs * fs / 1000)
	// The wet-only mix (mix=1.0) should be ~silent before the delay time
	// and show the echo at/after it.
	for i := 0; i < delaySamples-2; i++ {
		if math.Abs(float64(out[i])) > 0.05 {
			t.Fatalf("sample %d (before delay time %d): out=%v, want ~0", i, delaySamples, out[i])
		}
	}
	peak := float32(0)
	for i := delaySamples - 2; i < delaySamples+4 && i < n; i++ {
		if math.Abs(float64(out[i])) > math.Abs(float64(peak)) {
			peak = out[i]
		}
	}
	if math.Abs(float64(peak)) < 0.1 {
		t.Fatalf("no echo found near delay time %d, peak=%v", delaySamples, peak)
	}
}

func TestDelay_FeedbackDecaysOverRepeats(t *testing.T) {
	const fs = 48000
	state := &DSPState{SampleRate: fs}
	d := NewDelay(state, 5, 0.5, 20000, 1.0) // short delay, plenty of repeats in a small block

	n := 48000
	in := make([]float32, n)
	in[0] = 1
	out := make([]float32, n)
	d.Process(in, out, n)

	delaySamples := int(5 * float32(fs) / 1000)
	// Peak magnitude of each successive repeat should shrink. Each
	// round trip through the line is delaySamples+1 samples (one sample
	// of read-before-write latency compounds every repeat), so the n-th
	// repeat lands near n*(delaySamples+1), not n*delaySamples.
	var prevPeak float32 = 2
	for rep := 1; rep <= 5; rep++ {
		center := rep * (delaySamples + 1)
		if center+3 >= n {
			break
		}
		peak := float32(0)
		for i := center - 3; i <= center+3; i++ {
			if math.Abs(float64(out[i])) > math.Abs(float64(peak)) {
				peak = out[i]
			}
		}
		if math.Abs(float64(peak)) >= math.Abs(float64(prevPeak)) {
			t.Fatalf("repeat %d: peak=%v did not decay relative to previous peak %v", rep, peak, prevPeak)
		}
		prevPeak = peak
	}
}

func TestDelay_BypassIsExactPassthrough(t *testing.T) {
	state := &DSPState{SampleRate: 48000}
	d := NewDelay(state, 300, 0.4, 4000, 0.3)
	d.SetBypass(true)
	in := []float32{0.1, -0.2, 0.3, -0.4}
	out := make([]float32, len(in))
	d.Process(in, out, len(in))
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d: bypassed delay changed signal: in=%v out=%v", i, in[i], out[i])
		}
	}
}

func TestDelay_Reset(t *testing.T) {
	state := &DSPState{SampleRate: 48000}
	d := NewDelay(state, 100, 0.5, 4000, 1.0)
	in := make([]float32, 512)
	in[0] = 1
	out := make([]float32, 512)
	d.Process(in, out, len(in))
	d.Reset()
	silent := make([]float32, 64)
	tail := make([]float32, 64)
	d.Process(silent, tail, len(silent))
	for i, v := range tail {
		if v != 0 {
			t.Fatalf("sample %d after Reset: out=%v, want 0 (no residual echo)", i, v)
		}
	}
}
