// dsp_state.go - process-wide realtime state shared by every effect and the chain

package main

import "fmt"

// DSPState is the process-wide realtime context (spec.md §3 DSPState):
// sample rate, the maximum block size any Process call will receive, and
// the scratch arena backing the chain's ping-pong buffers and the I/O
// adapter's deinterleave/upmix buffers. Individual effects do not draw
// from this arena; each owns its private working buffers, allocated once
// in its constructor (SPEC_FULL.md §11 design note).
type DSPState struct {
	SampleRate float32
	BlockSize  int
	Arena      *ScratchArena
}

// NewDSPState builds the shared realtime context. Scratch allocation
// failure here is a resource error (spec.md §7): fatal at init time,
// never attempted again, and it is undefined to start a stream without a
// successfully constructed DSPState.
func NewDSPState(sampleRate float32, blockSize int) (*DSPState, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("ampcore: sample rate must be positive, got %v", sampleRate)
	}
	arena, err := NewScratchArena(blockSize, 16)
	if err != nil {
		return nil, fmt.Errorf("ampcore: building DSP state: %w", err)
	}
	return &DSPState{
		SampleRate: sampleRate,
		BlockSize:  blockSize,
		Arena:      arena,
	}, nil
}
