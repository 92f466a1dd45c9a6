// effect_clipper.go - standalone memoryless waveshaper

package main

import "sync/atomic"

// Clipper exposes a raw ClipperType waveshaper directly, with no tone
// stage attached — supplemented beyond spec.md's table, grounded in
// original_source's standalone Clipper effect (SPEC_FULL.md §5.C).
type Clipper struct {
	effectBase

	shaper     atomic.Pointer[WaveshaperTable]
	kind       ClipperType
	outputBits atomic.Uint32
}

// NewClipper builds a clipper of the given curve, drive and output gain
// (dB).
func NewClipper(kind ClipperType, drive, outputGainDb float32) *Clipper {
	c := &Clipper{effectBase: newEffectBase(EffectClipper), kind: kind}
	c.shaper.Store(NewWaveshaperTable(kind, drive, 1))
	c.outputBits.Store(float32bits(dbToLinear(outputGainDb)))
	return c
}

// SetParams rebuilds the waveshaper table for a new curve/drive.
func (c *Clipper) SetParams(kind ClipperType, drive, outputGainDb float32) {
	c.shaper.Store(NewWaveshaperTable(kind, drive, 1))
	c.kind = kind
	c.outputBits.Store(float32bits(dbToLinear(outputGainDb)))
}

func (c *Clipper) Process(in, out []float32, n int) {
	if c.passthrough() {
		copyBlock(in, out, n)
		return
	}
	shaper, gain := c.shaper.Load(), float32frombits(c.outputBits.Load())
	for i := 0; i < n; i++ {
		out[i] = shaper.Sample(in[i]) * gain
	}
}

func (c *Clipper) Reset() {}
