//go:build !headless

// backend_portaudio.go - full duplex capture+playback backend
//
// Grounded in the retrieval pack's gordonklaus/portaudio usage pattern
// (OpenDefaultStream with a func(in, out []float32) callback): this is
// the backend that actually drives a chain from a live instrument input,
// which oto's playback-only API cannot do (SPEC_FULL.md §3, §8).

package main

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioBackend owns a duplex stream and pushes every callback's input
// block through an IOAdapter into the output block.
type PortAudioBackend struct {
	stream  *portaudio.Stream
	adapter *IOAdapter

	// interleaved scratch, preallocated once at open time so the callback
	// never allocates (spec.md §5 audio-thread discipline).
	interleavedIn  []float32
	interleavedOut []float32
	inChannels     int
	outChannels    int
}

// OpenPortAudioBackend opens the default input/output devices at
// sampleRate with the given per-callback frame count, wired to adapter.
// Channel counts are negotiated as min(desired, device.max) per spec.md
// §6; float32 format is required, and failure to open at this format is
// fatal at open time, matching the host API contract.
func OpenPortAudioBackend(adapter *IOAdapter, sampleRate float64, framesPerBuffer int) (*PortAudioBackend, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("ampcore: portaudio init: %w", err)
	}

	inDev, err := portaudio.DefaultInputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("ampcore: default input device: %w", err)
	}
	outDev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("ampcore: default output device: %w", err)
	}

	inChannels := minInt(2, inDev.MaxInputChannels)
	outChannels := minInt(2, outDev.MaxOutputChannels)
	if inChannels < 1 {
		inChannels = 1
	}
	if outChannels < 1 {
		outChannels = 1
	}

	b := &PortAudioBackend{
		adapter:        adapter,
		inChannels:     inChannels,
		outChannels:    outChannels,
		interleavedIn:  make([]float32, framesPerBuffer*inChannels),
		interleavedOut: make([]float32, framesPerBuffer*outChannels),
	}

	params := portaudio.LowLatencyParameters(inDev, outDev)
	params.Input.Channels = inChannels
	params.Output.Channels = outChannels
	params.SampleRate = sampleRate
	params.FramesPerBuffer = framesPerBuffer

	stream, err := portaudio.OpenStream(params, b.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("ampcore: open stream: %w", err)
	}
	b.stream = stream
	return b, nil
}

func (b *PortAudioBackend) callback(in, out [][]float32) {
	n := 0
	if len(out) > 0 {
		n = len(out[0])
	}
	inChannels, outChannels := b.inChannels, b.outChannels

	interleavedIn := b.interleavedIn
	if cap(interleavedIn) < n*inChannels {
		n = cap(interleavedIn) / inChannels
	}
	interleavedIn = interleavedIn[:n*inChannels]
	for i := 0; i < n; i++ {
		for c := 0; c < len(in) && c < inChannels; c++ {
			interleavedIn[i*inChannels+c] = in[c][i]
		}
	}
	interleavedOut := b.interleavedOut[:n*outChannels]

	b.adapter.Process(interleavedIn, inChannels, interleavedOut, outChannels, n)

	for i := 0; i < n; i++ {
		for c := 0; c < len(out) && c < outChannels; c++ {
			out[c][i] = interleavedOut[i*outChannels+c]
		}
	}
}

// Start begins the stream. It forwards directly to portaudio, so calling
// it on a stream that is already running returns portaudio's error rather
// than being a no-op.
func (b *PortAudioBackend) Start() error {
	return b.stream.Start()
}

// Stop halts the stream. It forwards directly to portaudio, so calling it
// on a stream that is already stopped returns portaudio's error.
func (b *PortAudioBackend) Stop() error {
	return b.stream.Stop()
}

// Close releases the stream and terminates the portaudio library.
func (b *PortAudioBackend) Close() error {
	err := b.stream.Close()
	portaudio.Terminate()
	return err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
