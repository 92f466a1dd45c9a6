//go:build !headless

// backend_oto.go - playback-only backend built on oto/v3
//
// Adapted from the teacher's audio_backend_oto.go: same atomic-pointer
// lock-free Read() hot path and pre-allocated sample buffer, retargeted
// from a SoundChip's ring-buffer synthesis output to an EffectChain fed by
// an InputRing (spec.md §6 host audio API, realised concretely per
// SPEC_FULL.md §8). oto has no capture side, so this backend is for
// playback-only use — monitoring a chain driven by a synthetic or
// file-sourced input ring rather than a live instrument; backend_portaudio.go
// is the full-duplex path for that.

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer drives an EffectChain through oto's playback-only API.
type OtoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	chain     atomic.Pointer[EffectChain] // lock-free Read() hot path
	input     *InputRing
	sampleBuf []float32
	mono      []float32
	started   bool
	mutex     sync.Mutex // setup/control operations only
}

// NewOtoPlayer opens an oto context at the given sample rate for mono
// float32 playback.
func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-ready

	return &OtoPlayer{ctx: ctx}, nil
}

// SetupPlayer wires the player to chain (processed every Read) and input
// (the mono sample source, since oto itself cannot capture).
func (op *OtoPlayer) SetupPlayer(chain *EffectChain, input *InputRing) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.chain.Store(chain)
	op.input = input
	op.player = op.ctx.NewPlayer(op)
	op.sampleBuf = make([]float32, 4096)
	op.mono = make([]float32, 4096)
}

// Read satisfies io.Reader for oto's pull model: pulls numSamples mono
// frames from the input ring, runs them through the chain, and encodes the
// result as little-endian float32 bytes. op.mutex is not taken on this
// path — chain is read via the atomic pointer; the input ring's own mutex
// is held while samples are pulled from it.
func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	chain := op.chain.Load()
	if chain == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	numSamples := len(p) / 4
	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]float32, numSamples)
		op.mono = make([]float32, numSamples)
	}
	mono := op.mono[:numSamples]
	out := op.sampleBuf[:numSamples]

	if op.input != nil {
		op.input.Read(mono)
	} else {
		for i := range mono {
			mono[i] = 0
		}
	}
	chain.Process(mono, out, numSamples)

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&out[0]))[:len(p)])
	return len(p), nil
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.started && op.player != nil {
		op.player.Close()
		op.started = false
	}
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}

// InputRing is a single-producer single-consumer ring buffer of mono
// samples, feeding the oto backend's Read in place of live capture.
type InputRing struct {
	mu   sync.Mutex
	buf  []float32
	r, w int
	full bool
}

// NewInputRing allocates a ring of the given capacity in samples.
func NewInputRing(capacity int) *InputRing {
	if capacity < 1 {
		capacity = 1
	}
	return &InputRing{buf: make([]float32, capacity)}
}

// Write enqueues samples, dropping the oldest data if the ring is full
// (the audio thread must never block on a slow producer).
func (r *InputRing) Write(samples []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range samples {
		r.buf[r.w] = s
		r.w = (r.w + 1) % len(r.buf)
		if r.full {
			r.r = (r.r + 1) % len(r.buf)
		}
		if r.w == r.r {
			r.full = true
		}
	}
}

// Read fills out with available samples, zero-filling the rest on underrun.
func (r *InputRing) Read(out []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range out {
		if r.r == r.w && !r.full {
			out[i] = 0
			continue
		}
		out[i] = r.buf[r.r]
		r.r = (r.r + 1) % len(r.buf)
		r.full = false
	}
}
