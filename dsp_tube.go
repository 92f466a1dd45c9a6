// dsp_tube.go - Koren triode/pentode static-curve tables for Preamp/Poweramp

package main

import "math"

// TubeClass selects the Koren model variant baked into a TubeTable.
type TubeClass int

const (
	TubeTriode TubeClass = iota
	TubePentode
)

// TubeParams are the Koren-model parameters for one tube type, used both
// to build a TubeTable and as the published data in tube_presets.go.
// Field names follow the Koren triode equation directly: mu is the
// amplification factor, K and A shape the knee, Kg1 scales the pentode
// screen-current term, Rp is plate resistance, BiasV is the DC grid bias
// folded into the grid-voltage axis before evaluation.
type TubeParams struct {
	Name  string
	Class TubeClass
	Mu    float64
	K     float64
	A     float64
	KG1   float64
	Rp    float64
	BiasV float64
}

const (
	tubeLUTSize = 4096
	tubeLUTMin  = float32(-1.0)
	tubeLUTMax  = float32(1.0)
)

// TubeTable is a precomputed static transfer curve for a tube stage driven
// by a normalised grid-voltage signal in [-1, 1], producing a normalised
// plate-current response in [0, 1]: plate current is floored at zero, so
// the table never outputs a negative value.
type TubeTable struct {
	table [tubeLUTSize]float32
	scale float32
}

// NewTubeTable builds a table for the given tube parameters and drive. The
// input signal is scaled by drive and offset by BiasV before the Koren
// curve is applied; the result is normalised by the curve's value at full
// positive drive (or by 1 when that value is zero), so the table maps
// [-1,1] onto [0,1]. Every entry whose biased grid voltage is at or below
// zero is 0.
func NewTubeTable(p TubeParams, drive float32) *TubeTable {
	tt := &TubeTable{
		scale: float32(tubeLUTSize-1) / (tubeLUTMax - tubeLUTMin),
	}
	norm := korenPlateCurrent(p, float64(drive))
	if norm <= 0 {
		norm = 1
	}
	for i := 0; i < tubeLUTSize; i++ {
		x := float64(tubeLUTMin) + float64(i)*float64(tubeLUTMax-tubeLUTMin)/float64(tubeLUTSize-1)
		x *= float64(drive)
		tt.table[i] = float32(korenPlateCurrent(p, x) / norm)
	}
	return tt
}

// korenPlateCurrent evaluates spec.md's Koren plate-current formula:
//
//	vgs = vg + BiasV
//	I   = (mu+1)*vgs / (Rp + K*(mu+1)*(vgs + sqrt(vgs^2 + A))), floored at 0
//
// Pentode tubes multiply the triode result by (1 + Kg1*vgs).
func korenPlateCurrent(p TubeParams, vg float64) float64 {
	vgs := vg + p.BiasV
	denom := p.Rp + p.K*(p.Mu+1)*(vgs+math.Sqrt(vgs*vgs+p.A))
	if denom == 0 {
		return 0
	}
	ip := (p.Mu + 1) * vgs / denom
	if ip < 0 {
		ip = 0
	}
	if p.Class == TubePentode {
		ip *= 1 + p.KG1*vgs
	}
	return ip
}

// Process applies the table to a block.
func (tt *TubeTable) Process(in, out []float32, n int) {
	for i := 0; i < n; i++ {
		out[i] = tt.Sample(in[i])
	}
}

// Sample applies the table to a single value.
func (tt *TubeTable) Sample(x float32) float32 {
	if x <= tubeLUTMin {
		return tt.table[0]
	}
	if x >= tubeLUTMax {
		return tt.table[tubeLUTSize-1]
	}
	indexF := (x - tubeLUTMin) * tt.scale
	index := int(indexF)
	frac := indexF - float32(index)
	if index >= tubeLUTSize-1 {
		return tt.table[tubeLUTSize-1]
	}
	return tt.table[index] + frac*(tt.table[index+1]-tt.table[index])
}
