// dsp_interp.go - scalar and block interpolation primitives

package main

// lerpScalar linearly interpolates between a and b at fraction t in [0,1].
func lerpScalar(a, b, t float32) float32 {
	return a + (b-a)*t
}

// crossfade is a lerp by another name, kept distinct for call-site clarity
// in effects that mix dry/wet signals.
func crossfade(dry, wet []float32, mix float32, out []float32, n int) {
	for i := 0; i < n; i++ {
		out[i] = dry[i] + (wet[i]-dry[i])*mix
	}
}

// cubicInterpScalar is 4-point Catmull-Rom-style interpolation using
// samples at relative indices (-1, 0, 1, 2) and fractional position t
// between y0 and y1.
func cubicInterpScalar(ym1, y0, y1, y2, t float32) float32 {
	a0 := -0.5*ym1 + 1.5*y0 - 1.5*y1 + 0.5*y2
	a1 := ym1 - 2.5*y0 + 2*y1 - 0.5*y2
	a2 := -0.5*ym1 + 0.5*y1
	a3 := y0
	return ((a0*t+a1)*t+a2)*t + a3
}
