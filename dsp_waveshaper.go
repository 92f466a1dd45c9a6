// dsp_waveshaper.go - static nonlinearity lookup tables for the distortion
// family (Overdrive, Distortion, Fuzz, TubeScreamer). Built once per
// parameter change on the control thread; Process only ever indexes the
// table, never evaluates math on the audio thread.

package main

import "math"

// ClipperType selects the waveshaper curve baked into a WaveshaperTable.
type ClipperType int

const (
	ClipHard ClipperType = iota
	ClipTanh
	ClipArctan
	ClipSigmoid
	ClipCubicSoft
)

const (
	shaperLUTSize = 4096
	shaperLUTMin  = float32(-4.0)
	shaperLUTMax  = float32(4.0)
)

// WaveshaperTable is a precomputed, driven, output-scaled static
// nonlinearity indexed over [-4, 4] with linear interpolation between
// entries and hard clamping to the table's output range beyond it.
type WaveshaperTable struct {
	table [shaperLUTSize]float32
	scale float32
}

// NewWaveshaperTable builds a table for the given curve, pre-gain (applied
// before the nonlinearity) and post-gain (applied to the result).
func NewWaveshaperTable(kind ClipperType, drive, outputGain float32) *WaveshaperTable {
	wt := &WaveshaperTable{
		scale: float32(shaperLUTSize-1) / (shaperLUTMax - shaperLUTMin),
	}
	for i := 0; i < shaperLUTSize; i++ {
		x := float64(shaperLUTMin) + float64(i)*float64(shaperLUTMax-shaperLUTMin)/float64(shaperLUTSize-1)
		x *= float64(drive)
		wt.table[i] = float32(shapeSample(kind, x)) * outputGain
	}
	return wt
}

func shapeSample(kind ClipperType, x float64) float64 {
	switch kind {
	case ClipHard:
		if x > 1 {
			return 1
		}
		if x < -1 {
			return -1
		}
		return x
	case ClipTanh:
		return float64(fastTanh(float32(x)))
	case ClipArctan:
		const k = 2.0 / math.Pi
		return k * math.Atan(x)
	case ClipSigmoid:
		return 2/(1+math.Exp(-2*x)) - 1
	case ClipCubicSoft:
		if x > 1 {
			return 2.0 / 3.0
		}
		if x < -1 {
			return -2.0 / 3.0
		}
		return x - (x*x*x)/3
	default:
		return x
	}
}

// Process applies the table to a block via lookup and linear interpolation.
func (wt *WaveshaperTable) Process(in, out []float32, n int) {
	for i := 0; i < n; i++ {
		out[i] = wt.Sample(in[i])
	}
}

// Sample applies the table to a single value.
func (wt *WaveshaperTable) Sample(x float32) float32 {
	if x <= shaperLUTMin {
		return wt.table[0]
	}
	if x >= shaperLUTMax {
		return wt.table[shaperLUTSize-1]
	}
	indexF := (x - shaperLUTMin) * wt.scale
	index := int(indexF)
	frac := indexF - float32(index)
	if index >= shaperLUTSize-1 {
		return wt.table[shaperLUTSize-1]
	}
	return wt.table[index] + frac*(wt.table[index+1]-wt.table[index])
}
