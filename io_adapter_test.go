// io_adapter_test.go - channel downmix/upmix and silence-on-failure scenario

package main

import "testing"

func TestDownmix_Mono(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	out := make([]float32, 3)
	downmix(in, 1, out, 3)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d: downmix(mono) = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestDownmix_Stereo_Averages(t *testing.T) {
	in := []float32{1, -1, 0.5, 0.5}
	out := make([]float32, 2)
	downmix(in, 2, out, 2)
	if out[0] != 0 {
		t.Errorf("downmix(stereo)[0] = %v, want 0 (1 + -1 averaged)", out[0])
	}
	if out[1] != 0.5 {
		t.Errorf("downmix(stereo)[1] = %v, want 0.5", out[1])
	}
}

// Inverted stereo (L = -R) must downmix to exact silence, the scenario
// named for this adapter.
func TestDownmix_InvertedStereoIsSilence(t *testing.T) {
	in := []float32{0.8, -0.8, -0.3, 0.3, 1, -1}
	out := make([]float32, 3)
	downmix(in, 2, out, 3)
	for i, v := range out {
		if v != 0 {
			t.Errorf("sample %d: downmix(inverted stereo) = %v, want 0", i, v)
		}
	}
}

func TestDownmix_ZeroChannelsIsSilence(t *testing.T) {
	in := []float32{1, 2, 3}
	out := []float32{9, 9, 9}
	downmix(in, 0, out, 3)
	for i, v := range out {
		if v != 0 {
			t.Errorf("sample %d: downmix(0 channels) = %v, want 0", i, v)
		}
	}
}

func TestUpmix_Mono(t *testing.T) {
	mono := []float32{0.4, -0.2}
	out := make([]float32, 2)
	upmix(mono, out, 1, 2)
	for i := range mono {
		if out[i] != mono[i] {
			t.Errorf("sample %d: upmix(mono) = %v, want %v", i, out[i], mono[i])
		}
	}
}

func TestUpmix_Stereo_DuplicatesAndZerosExtras(t *testing.T) {
	mono := []float32{0.6}
	out := make([]float32, 4) // 4 channels
	upmix(mono, out, 4, 1)
	if out[0] != 0.6 || out[1] != 0.6 {
		t.Fatalf("upmix(4ch)[0:2] = %v, want [0.6 0.6]", out[:2])
	}
	if out[2] != 0 || out[3] != 0 {
		t.Fatalf("upmix(4ch)[2:4] = %v, want [0 0]", out[2:4])
	}
}

func TestIOAdapter_ProcessRoundTripsMono(t *testing.T) {
	state, err := NewDSPState(48000, 64)
	if err != nil {
		t.Fatalf("NewDSPState: %v", err)
	}
	chain := NewEffectChain(state)
	adapter := NewIOAdapter(chain, state)

	n := 32
	hostIn := make([]float32, n*2)
	for i := 0; i < n; i++ {
		hostIn[i*2] = 0.2
		hostIn[i*2+1] = 0.2
	}
	hostOut := make([]float32, n*2)
	adapter.Process(hostIn, 2, hostOut, 2, n)

	for i := 0; i < n; i++ {
		if diff := hostOut[i*2] - 0.2; diff > 1e-3 || diff < -1e-3 {
			t.Fatalf("frame %d left = %v, want ~0.2", i, hostOut[i*2])
		}
	}
}
