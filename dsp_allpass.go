// dsp_allpass.go - first-order allpass filter, used by Phaser

package main

// AllPass1 is the first-order allpass section:
//
//	y[n] = -g*x[n] + x[n-1] + g*y[n-1]
//
// g may be modulated per sample (e.g. by an LFO), which is why Process
// takes a coefficient slice rather than a single scalar.
type AllPass1 struct {
	g     float32
	xPrev float32
	yPrev float32
}

// NewAllPass1 builds an allpass stage with the given (clamped) coefficient.
func NewAllPass1(g float32) *AllPass1 {
	return &AllPass1{g: clampf(g, -0.999, 0.999)}
}

// SetCoeff updates the static coefficient used by Process.
func (ap *AllPass1) SetCoeff(g float32) {
	ap.g = clampf(g, -0.999, 0.999)
}

// Process runs the allpass with a fixed coefficient.
func (ap *AllPass1) Process(in, out []float32, n int) {
	g, xPrev, yPrev := ap.g, ap.xPrev, ap.yPrev
	for i := 0; i < n; i++ {
		x := in[i]
		y := -g*x + xPrev + g*yPrev
		out[i] = y
		xPrev = x
		yPrev = y
	}
	ap.xPrev = xPrev
	ap.yPrev = denormalFlush(yPrev)
}

// ProcessModulated runs the allpass with a per-sample coefficient (e.g. an
// LFO-driven phaser stage). coeffs must have at least n entries.
func (ap *AllPass1) ProcessModulated(in, coeffs, out []float32, n int) {
	xPrev, yPrev := ap.xPrev, ap.yPrev
	for i := 0; i < n; i++ {
		g := clampf(coeffs[i], -0.999, 0.999)
		x := in[i]
		y := -g*x + xPrev + g*yPrev
		out[i] = y
		xPrev = x
		yPrev = y
	}
	ap.xPrev = xPrev
	ap.yPrev = denormalFlush(yPrev)
}

// Reset clears filter state.
func (ap *AllPass1) Reset() {
	ap.xPrev, ap.yPrev = 0, 0
}
