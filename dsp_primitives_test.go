// dsp_primitives_test.go - unit tests for the DSP primitives layer

package main

import (
	"math"
	"testing"
)

// ============================================================================
// OnePole
// ============================================================================

func TestOnePole_Lowpass_DCGainIsUnity(t *testing.T) {
	f := NewOnePole(200, 48000, false)
	in := make([]float32, 4096)
	out := make([]float32, 4096)
	for i := range in {
		in[i] = 1
	}
	f.Process(in, out, len(in))
	if got := out[len(out)-1]; got < 0.99 || got > 1.01 {
		t.Errorf("settled lowpass output = %v, want ~1.0", got)
	}
}

func TestOnePole_Step_MatchesProcess(t *testing.T) {
	a := NewOnePole(800, 44100, false)
	b := NewOnePole(800, 44100, false)
	in := []float32{0.5, -0.3, 0.9, -0.9, 0.1}
	out := make([]float32, len(in))
	a.Process(in, out, len(in))
	for i, x := range in {
		got := b.Step(x)
		if math.Abs(float64(got-out[i])) > 1e-6 {
			t.Errorf("Step(%v) = %v, want %v (from Process)", x, got, out[i])
		}
	}
}

func TestOnePole_Reset(t *testing.T) {
	f := NewOnePole(500, 48000, false)
	f.Step(1)
	f.Step(1)
	f.Reset()
	if f.y1 != 0 || f.xPrev != 0 {
		t.Errorf("Reset left state y1=%v xPrev=%v, want zero", f.y1, f.xPrev)
	}
}

// ============================================================================
// Biquad
// ============================================================================

func TestBiquad_Lowpass_IsStableUnderImpulse(t *testing.T) {
	bq := NewBiquad(BiquadLowpass, 1000, 0.707, 0, 48000)
	in := make([]float32, 8192)
	in[0] = 1
	out := make([]float32, len(in))
	bq.Process(in, out, len(in))
	for i, y := range out {
		if math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
			t.Fatalf("output[%d] = %v, filter diverged", i, y)
		}
		if y > 4 || y < -4 {
			t.Fatalf("output[%d] = %v, exceeds a sane bound for a unity-gain filter's impulse response", i, y)
		}
	}
}

func TestBiquad_Peak_ZeroGainIsTransparent(t *testing.T) {
	bq := NewBiquad(BiquadPeak, 1000, 1, 0, 48000)
	in := []float32{0.2, -0.5, 0.8, 1.0, -1.0}
	out := make([]float32, len(in))
	bq.Process(in, out, len(in))
	for i := range in {
		if math.Abs(float64(in[i]-out[i])) > 1e-4 {
			t.Errorf("0dB peak filter sample %d: in=%v out=%v, want near-identity", i, in[i], out[i])
		}
	}
}

// ============================================================================
// EnvelopeDetector
// ============================================================================

func TestEnvelopeDetector_PeakRisesTowardConstantInput(t *testing.T) {
	ed := NewEnvelopeDetector(5, 50, 48000, EnvelopePeak)
	var last float32
	for i := 0; i < 10000; i++ {
		last = ed.Step(1)
	}
	if last < 0.99 {
		t.Errorf("envelope after 10000 samples of constant 1.0 input = %v, want close to 1.0", last)
	}
}

func TestEnvelopeDetector_MonotonicRiseOnAttack(t *testing.T) {
	ed := NewEnvelopeDetector(10, 10, 48000, EnvelopePeak)
	prev := float32(-1)
	for i := 0; i < 500; i++ {
		cur := ed.Step(1)
		if cur < prev {
			t.Fatalf("sample %d: envelope decreased from %v to %v during attack", i, prev, cur)
		}
		prev = cur
	}
}

func TestEnvelopeDetector_RMSNonNegative(t *testing.T) {
	ed := NewEnvelopeDetector(5, 50, 48000, EnvelopeRMS)
	for i := 0; i < 1000; i++ {
		v := ed.Step(float32(math.Sin(float64(i) * 0.3)))
		if v < 0 {
			t.Fatalf("sample %d: RMS envelope = %v, want non-negative", i, v)
		}
	}
}

// ============================================================================
// DelayLine
// ============================================================================

func TestDelayLine_ReadLinear_ExactIntegerDelay(t *testing.T) {
	dl := NewDelayLine(256)
	for i := 0; i < 256; i++ {
		dl.WriteSample(float32(i))
	}
	// The most recently written sample is 255; reading back 10 samples
	// should recover sample 245.
	got := dl.ReadLinear(10)
	if math.Abs(float64(got-245)) > 1e-3 {
		t.Errorf("ReadLinear(10) = %v, want 245", got)
	}
}

func TestDelayLine_ReadLinear_Interpolates(t *testing.T) {
	dl := NewDelayLine(64)
	for i := 0; i < 10; i++ {
		dl.WriteSample(float32(i))
	}
	got := dl.ReadLinear(0.5)
	want := float32(8.5) // halfway between samples 8 and 9
	if math.Abs(float64(got-want)) > 1e-3 {
		t.Errorf("ReadLinear(0.5) = %v, want %v", got, want)
	}
}

func TestDelayLine_ReadBeyondCapacityClamps(t *testing.T) {
	dl := NewDelayLine(16)
	for i := 0; i < 16; i++ {
		dl.WriteSample(float32(i))
	}
	// Should not panic, and should clamp to the line's usable range.
	_ = dl.ReadLinear(1000)
}

func TestDelayLine_Reset(t *testing.T) {
	dl := NewDelayLine(8)
	dl.WriteSample(1)
	dl.Reset()
	for i := 0; i < 8; i++ {
		if got := dl.ReadLinear(float32(i)); got != 0 {
			t.Errorf("ReadLinear(%d) after Reset = %v, want 0", i, got)
		}
	}
}

// ============================================================================
// WaveshaperTable
// ============================================================================

func TestWaveshaperTable_ZeroInputIsZeroOutput(t *testing.T) {
	for kind := ClipHard; kind <= ClipCubicSoft; kind++ {
		tbl := NewWaveshaperTable(kind, 1, 1)
		got := tbl.Sample(0)
		if math.Abs(float64(got)) > 1e-3 {
			t.Errorf("kind %v: Sample(0) = %v, want ~0", kind, got)
		}
	}
}

func TestWaveshaperTable_HardClipSaturates(t *testing.T) {
	tbl := NewWaveshaperTable(ClipHard, 1, 1)
	got := tbl.Sample(100)
	if got < 0.9 || got > 1.1 {
		t.Errorf("hard clip at large positive input = %v, want ~1.0", got)
	}
}

// ============================================================================
// Tube model
// ============================================================================

func TestKorenPlateCurrent_NeverNegative(t *testing.T) {
	p := findTubeParams("12AX7")
	for _, vg := range []float64{-5, -1, 0, 0.5, 1, 5} {
		if i := korenPlateCurrent(p, vg); i < 0 {
			t.Errorf("korenPlateCurrent(%v) = %v, want >= 0", vg, i)
		}
	}
}

func TestTubeTable_ZeroInputNearZero(t *testing.T) {
	p := findTubeParams("6L6CG")
	tbl := NewTubeTable(p, 1)
	got := tbl.Sample(0)
	if math.Abs(float64(got)) > 0.2 {
		t.Errorf("TubeTable.Sample(0) = %v, want close to 0", got)
	}
}

func TestFindTubeParams_AllPresetsResolve(t *testing.T) {
	for _, name := range []string{"6DJ8", "6L6CG", "12AX7", "12AU7", "6550", "KT88"} {
		p := findTubeParams(name)
		if p.Name != name {
			t.Errorf("findTubeParams(%q).Name = %q", name, p.Name)
		}
	}
}

// ============================================================================
// ScratchArena
// ============================================================================

func TestScratchArena_TakeReleaseRoundTrip(t *testing.T) {
	a, err := NewScratchArena(128, 4)
	if err != nil {
		t.Fatalf("NewScratchArena: %v", err)
	}
	b1 := a.Take(64)
	b2 := a.Take(64)
	if len(b1) != 64 || len(b2) != 64 {
		t.Fatalf("Take returned wrong lengths: %d, %d", len(b1), len(b2))
	}
	a.Release(2)
	// Arena should be reusable after a full release.
	b3 := a.Take(128)
	if len(b3) != 128 {
		t.Errorf("Take(128) after release = len %d, want 128", len(b3))
	}
}

func TestScratchArena_ExhaustionPanics(t *testing.T) {
	a, err := NewScratchArena(32, 1)
	if err != nil {
		t.Fatalf("NewScratchArena: %v", err)
	}
	a.Take(32)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic when the arena's depth is exceeded")
		}
	}()
	a.Take(32)
}

func TestNewScratchArena_RejectsNonPositiveArgs(t *testing.T) {
	if _, err := NewScratchArena(0, 4); err == nil {
		t.Error("expected an error for blockSize=0")
	}
	if _, err := NewScratchArena(64, 0); err == nil {
		t.Error("expected an error for depth=0")
	}
}

// ============================================================================
// constants helpers
// ============================================================================

func TestDbToLinearRoundTrip(t *testing.T) {
	for _, db := range []float32{-60, -20, -6, 0, 6, 20} {
		lin := dbToLinear(db)
		back := linearToDb(lin)
		if math.Abs(float64(back-db)) > 1e-3 {
			t.Errorf("dB round trip: %v -> %v -> %v", db, lin, back)
		}
	}
}

func TestClampf(t *testing.T) {
	if got := clampf(5, 0, 1); got != 1 {
		t.Errorf("clampf(5, 0, 1) = %v, want 1", got)
	}
	if got := clampf(-5, 0, 1); got != 0 {
		t.Errorf("clampf(-5, 0, 1) = %v, want 0", got)
	}
	if got := clampf(0.5, 0, 1); got != 0.5 {
		t.Errorf("clampf(0.5, 0, 1) = %v, want 0.5", got)
	}
}
