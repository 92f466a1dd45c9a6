// effect_chain.go - ordered effect list, ping-pong block processing

package main

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// EffectHandle identifies one effect within a chain for Remove/Move. It is
// the effect instance itself: handles stay valid across chain mutations
// because mutation rebuilds the node list but never the effects it holds.
type EffectHandle = Effect

type effectNode struct {
	effect Effect
	next   *effectNode
}

// EffectChain is an ordered, immutable singly-linked list of effects
// reachable from an atomically-swapped head pointer (spec.md §4.D,
// generalising the coefficient-bundle atomic-pointer-swap option of §5 to
// the whole list structure): the audio thread always does a single atomic
// load and then walks plain pointers with no lock, while the control
// thread serialises Add/Remove/Move/Clear against each other with mu and
// publishes a freshly-built list on each mutation.
type EffectChain struct {
	state *DSPState

	mu      sync.Mutex // serializes control-thread mutations against each other
	head    atomic.Pointer[effectNode]
	limiter *Limiter
}

// NewEffectChain builds an empty chain with an implicit terminal Limiter
// (spec.md §3 "the terminal limiter enforces it at the output", made
// concrete per SPEC_FULL.md §5.D).
func NewEffectChain(state *DSPState) *EffectChain {
	return &EffectChain{
		state:   state,
		limiter: NewLimiter(state, -0.3),
	}
}

// Add constructs a new effect of the given type with default parameters
// at the tail and returns its handle. Fails only on an unknown type
// (spec.md §4.D).
func (c *EffectChain) Add(typ EffectType) (EffectHandle, error) {
	eff, err := newEffectDefault(typ, c.state)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	nodes := c.snapshotLocked()
	nodes = append(nodes, eff)
	c.publishLocked(nodes)
	return eff, nil
}

// Remove unlinks the effect identified by handle. O(n).
func (c *EffectChain) Remove(handle EffectHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	nodes := c.snapshotLocked()
	out := nodes[:0]
	for _, e := range nodes {
		if e != handle {
			out = append(out, e)
		}
	}
	c.publishLocked(out)
}

// Move unlinks the effect then reinserts it at position (0 = head). An
// out-of-range position clamps to the nearest end.
func (c *EffectChain) Move(handle EffectHandle, position int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	nodes := c.snapshotLocked()
	filtered := nodes[:0]
	for _, e := range nodes {
		if e != handle {
			filtered = append(filtered, e)
		}
	}
	if position < 0 {
		position = 0
	}
	if position > len(filtered) {
		position = len(filtered)
	}
	result := make([]Effect, 0, len(filtered)+1)
	result = append(result, filtered[:position]...)
	result = append(result, handle)
	result = append(result, filtered[position:]...)
	c.publishLocked(result)
}

// Find returns the first effect of the given type, or nil if none.
func (c *EffectChain) Find(typ EffectType) EffectHandle {
	for n := c.head.Load(); n != nil; n = n.next {
		if n.effect.Type() == typ {
			return n.effect
		}
	}
	return nil
}

// Clear destroys all effects in order. Idempotent (I6): clearing an
// already-empty chain is a no-op.
func (c *EffectChain) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head.Store(nil)
}

// Count reports the number of user-visible effects (excluding the
// implicit Limiter).
func (c *EffectChain) Count() int {
	n := 0
	for node := c.head.Load(); node != nil; node = node.next {
		n++
	}
	return n
}

// Effects returns the ordered list of user-visible effect handles.
func (c *EffectChain) Effects() []EffectHandle {
	var out []EffectHandle
	for node := c.head.Load(); node != nil; node = node.next {
		out = append(out, node.effect)
	}
	return out
}

func (c *EffectChain) snapshotLocked() []Effect {
	var nodes []Effect
	for node := c.head.Load(); node != nil; node = node.next {
		nodes = append(nodes, node.effect)
	}
	return nodes
}

func (c *EffectChain) publishLocked(effects []Effect) {
	var head, tail *effectNode
	for _, e := range effects {
		n := &effectNode{effect: e}
		if head == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
	}
	c.head.Store(head)
}

// Process walks the chain: if empty, copies in to out; otherwise seeds
// bufA with in, walks the list processing each effect into the other
// ping-pong buffer, and copies the final result into out. Disabled or
// bypassed effects still participate in the rotation (their own Process
// copies through). in and out may alias (I7): the input is copied into
// scratch before any write touches out. The implicit Limiter always runs
// last, directly into out.
func (c *EffectChain) Process(in, out []float32, n int) {
	arena := c.state.Arena
	if n > arena.BlockSize() {
		n = arena.BlockSize()
	}
	bufA := arena.Take(n)
	bufB := arena.Take(n)
	defer arena.Release(2)

	head := c.head.Load()
	var result []float32
	if head == nil {
		copy(bufA[:n], in[:n])
		result = bufA
	} else {
		copy(bufA[:n], in[:n])
		src, dst := bufA, bufB
		for node := head; node != nil; node = node.next {
			node.effect.Process(src[:n], dst[:n], n)
			src, dst = dst, src
		}
		result = src
	}

	c.limiter.Process(result[:n], out[:n], n)
}

// ResetAll zeroes every effect's internal state, including the Limiter.
func (c *EffectChain) ResetAll() {
	for node := c.head.Load(); node != nil; node = node.next {
		node.effect.Reset()
	}
	c.limiter.Reset()
}

func newEffectDefault(typ EffectType, state *DSPState) (Effect, error) {
	switch typ {
	case EffectNoiseGate:
		return NewNoiseGate(state, -40, 1, 50, 10), nil
	case EffectCompressor:
		return NewCompressor(state, -20, 4, 0, 0, 5, 100), nil
	case EffectOverdrive:
		return NewOverdrive(state, 4, 3000, 0), nil
	case EffectDistortion:
		return NewDistortion(state, 8, 0, 0, 0, -3), nil
	case EffectFuzz:
		return NewFuzz(12, 0.3, -6), nil
	case EffectBoost:
		return NewBoost(1), nil
	case EffectTubeScreamer:
		return NewTubeScreamer(state, 6, 3, 0), nil
	case EffectChorus:
		return NewChorus(state, 15, 5, 0.8, 0.5), nil
	case EffectFlanger:
		return NewFlanger(state, 2, 1.5, 0.3, 0.5, 0.5), nil
	case EffectPhaser:
		return NewPhaser(state, 4, 0.5, 0.8, 0.5), nil
	case EffectTremolo:
		return NewTremolo(state, 5, 0.5), nil
	case EffectVibrato:
		return NewVibrato(state, 5, 2, 5), nil
	case EffectDelay:
		return NewDelay(state, 500, 0.35, 4000, 0.35), nil
	case EffectReverb:
		return NewReverb(state, 0.5, 5000, 0.3), nil
	case EffectWah:
		return NewWah(state, 1.0, 2.0, 10, 150), nil
	case EffectEQ3Band:
		return NewEQ3Band(state, 0, 0, 0), nil
	case EffectEQParametric:
		return NewEQParametric(state, [4]ParametricBand{
			{FreqHz: 120, Q: 1, GainDb: 0},
			{FreqHz: 500, Q: 1, GainDb: 0},
			{FreqHz: 2000, Q: 1, GainDb: 0},
			{FreqHz: 6000, Q: 1, GainDb: 0},
		}), nil
	case EffectPreamp:
		return NewPreamp(state, findTubeParams("12AX7"), 4, 1, 0, 0, 0, 0.3, 5, -6), nil
	case EffectPoweramp:
		return NewPoweramp(state, findTubeParams("6L6CG"), 2, 1, 0.3, 10, 0), nil
	case EffectCabinet:
		return NewCabinet(state, CabinetModern), nil
	case EffectClipper:
		return NewClipper(ClipTanh, 2, 0), nil
	default:
		return nil, fmt.Errorf("ampcore: unknown effect type %v", typ)
	}
}
