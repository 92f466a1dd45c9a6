// io_adapter.go - host-interleaved buffer <-> mono chain adapter
//
// Grounded in original_source/src/portaudio_handler.c's callback: same
// channel-count branching (downmix/upmix) and the same silence-on-failure
// guard when a scratch buffer cannot be obtained (spec.md §4.E).

package main

// IOAdapter converts a host's interleaved input buffer to the chain's
// mono processing format and the chain's mono output back to the host's
// interleaved output buffer.
type IOAdapter struct {
	chain *EffectChain
	arena *ScratchArena
}

// NewIOAdapter builds an adapter around the given chain, drawing its own
// deinterleave/mono scratch buffers from the chain's DSPState arena.
func NewIOAdapter(chain *EffectChain, state *DSPState) *IOAdapter {
	return &IOAdapter{chain: chain, arena: state.Arena}
}

// Process runs one block: deinterleave+downmix hostIn (hostInputChannels
// channels) to mono, runs the chain, upmixes to hostOut
// (hostOutputChannels channels). Never allocates, logs or blocks; any
// failure to obtain scratch emits silence and returns normally (spec.md
// §4.E, §7 "Runtime audio error").
func (a *IOAdapter) Process(hostIn []float32, hostInputChannels int, hostOut []float32, hostOutputChannels int, n int) {
	if n > a.arena.BlockSize() {
		n = a.arena.BlockSize()
	}
	mono, ok := a.safeTake(n)
	if !ok {
		silence(hostOut, hostOutputChannels, n)
		return
	}
	defer a.arena.Release(1)

	downmix(hostIn, hostInputChannels, mono, n)

	wetMono, ok := a.safeTake(n)
	if !ok {
		silence(hostOut, hostOutputChannels, n)
		return
	}
	defer a.arena.Release(1)

	a.chain.Process(mono, wetMono, n)
	upmix(wetMono, hostOut, hostOutputChannels, n)
}

// safeTake wraps arena.Take with the panic-to-bool translation the
// adapter's "never panic on the audio thread" contract requires: a
// genuinely exhausted arena is a configuration bug, not something the
// callback should propagate as a crash.
func (a *IOAdapter) safeTake(n int) (buf []float32, ok bool) {
	defer func() {
		if recover() != nil {
			buf, ok = nil, false
		}
	}()
	return a.arena.Take(n), true
}

// downmix implements spec.md §4.E's rule: 0 channels → silence, 1 channel
// → passthrough, ≥2 channels → 0.5·(L+R) of the first two channels.
func downmix(hostIn []float32, channels int, mono []float32, n int) {
	switch {
	case channels <= 0:
		for i := 0; i < n; i++ {
			mono[i] = 0
		}
	case channels == 1:
		for i := 0; i < n; i++ {
			mono[i] = hostIn[i]
		}
	default:
		for i := 0; i < n; i++ {
			base := i * channels
			mono[i] = 0.5 * (hostIn[base] + hostIn[base+1])
		}
	}
}

// upmix implements spec.md §4.E's rule: ≥2 channels → duplicate mono into
// channels 0 and 1, zero the rest; 1 channel → passthrough.
func upmix(mono []float32, hostOut []float32, channels int, n int) {
	switch {
	case channels <= 0:
		return
	case channels == 1:
		for i := 0; i < n; i++ {
			hostOut[i] = mono[i]
		}
	default:
		for i := 0; i < n; i++ {
			base := i * channels
			hostOut[base] = mono[i]
			hostOut[base+1] = mono[i]
			for c := 2; c < channels; c++ {
				hostOut[base+c] = 0
			}
		}
	}
}

func silence(hostOut []float32, channels int, n int) {
	for i := 0; i < n*channels; i++ {
		hostOut[i] = 0
	}
}
