// dsp_lut.go - precomputed sine/tanh lookup tables shared by the LFO and the
// waveshaper/tube-table builders. Adapted from the teacher's register-chip
// oscillator tables in audio_lut.go: same index-scaling and linear-
// interpolation technique, generalised for this package's LFO and
// waveshaper needs rather than a fixed four-channel synth chip.

package main

import "math"

const (
	sinLUTSize  = 8192           // ~0.00077 radian resolution
	sinLUTMask  = sinLUTSize - 1 // mask for fast modulo
	tanhLUTSize = 4096
	tanhLUTMin  = float32(-4.0)
	tanhLUTMax  = float32(4.0)
)

const (
	sinLUTScale  = float32(sinLUTSize) / twoPi
	tanhLUTScale = float32(tanhLUTSize-1) / (tanhLUTMax - tanhLUTMin)
)

// sinLUT holds precomputed sine values for phase [0, 2π); index mapping is
// phase * sinLUTScale.
var sinLUT [sinLUTSize]float32

// tanhLUT holds precomputed tanh values for input [-4, 4].
var tanhLUT [tanhLUTSize]float32

func init() {
	for i := 0; i < sinLUTSize; i++ {
		phase := float64(i) * 2 * math.Pi / float64(sinLUTSize)
		sinLUT[i] = float32(math.Sin(phase))
	}
	for i := 0; i < tanhLUTSize; i++ {
		x := float64(tanhLUTMin) + float64(i)*float64(tanhLUTMax-tanhLUTMin)/float64(tanhLUTSize-1)
		tanhLUT[i] = float32(math.Tanh(x))
	}
}

// fastSin returns sin(phase) via lookup table with linear interpolation.
// phase is in radians and may be any finite value; it is wrapped to [0, 2π).
func fastSin(phase float32) float32 {
	if phase < 0 {
		phase -= float32(int(phase/twoPi)-1) * twoPi
	} else if phase >= twoPi {
		phase -= float32(int(phase/twoPi)) * twoPi
	}

	indexF := phase * sinLUTScale
	index := int(indexF)
	frac := indexF - float32(index)

	index &= sinLUTMask
	nextIndex := (index + 1) & sinLUTMask
	return sinLUT[index] + frac*(sinLUT[nextIndex]-sinLUT[index])
}

// fastTanh returns tanh(x) via lookup table with linear interpolation.
// Inputs at or beyond ±4 return exactly ±1; tanh(±4) is about ±0.99933, so
// the clamp steps the output by less than 0.001.
func fastTanh(x float32) float32 {
	if x <= tanhLUTMin {
		return -1.0
	}
	if x >= tanhLUTMax {
		return 1.0
	}

	indexF := (x - tanhLUTMin) * tanhLUTScale
	index := int(indexF)
	frac := indexF - float32(index)

	if index >= tanhLUTSize-1 {
		return tanhLUT[tanhLUTSize-1]
	}
	return tanhLUT[index] + frac*(tanhLUT[index+1]-tanhLUT[index])
}
