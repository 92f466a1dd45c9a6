// dsp_lfo.go - low-frequency oscillator, modulation source for time-based effects

package main

import "math/rand"

// LFOWaveform selects the oscillator shape.
type LFOWaveform int

const (
	LFOSine LFOWaveform = iota
	LFOTriangle
	LFOSaw
	LFOSquare
	LFONoise
)

// LFO generates a modulation signal. phase wraps modulo 1 every sample,
// except Noise, which re-randomises without advancing phase. Frequency
// changes take effect immediately and preserve phase continuity.
type LFO struct {
	phase    float32
	phaseInc float32
	amp      float32
	dc       float32
	waveform LFOWaveform
	rng      *rand.Rand
}

// NewLFO builds an LFO of the given waveform, frequency, amplitude and DC
// offset at the given sample rate.
func NewLFO(waveform LFOWaveform, freqHz, amp, dc, sampleRate float32) *LFO {
	l := &LFO{
		amp:      amp,
		dc:       dc,
		waveform: waveform,
		rng:      rand.New(rand.NewSource(1)),
	}
	l.SetFreq(freqHz, sampleRate)
	return l
}

// SetFreq updates the phase increment without resetting phase.
func (l *LFO) SetFreq(freqHz, sampleRate float32) {
	l.phaseInc = freqHz / sampleRate
}

func (l *LFO) nextRaw() float32 {
	var raw float32
	switch l.waveform {
	case LFOSine:
		raw = fastSin(l.phase * twoPi)
	case LFOTriangle:
		raw = 1 - 4*abs32(l.phase-0.5)
	case LFOSaw:
		raw = 2*l.phase - 1
	case LFOSquare:
		if l.phase < 0.5 {
			raw = 1
		} else {
			raw = -1
		}
	case LFONoise:
		raw = l.rng.Float32()*2 - 1
		return raw // noise does not advance phase
	}
	l.phase += l.phaseInc
	if l.phase >= 1 {
		l.phase -= float32(int(l.phase))
	} else if l.phase < 0 {
		l.phase += float32(int(-l.phase) + 1)
	}
	return raw
}

// Process fills out with n samples of value = waveform(phase)*amp + dc.
func (l *LFO) Process(out []float32, n int) {
	for i := 0; i < n; i++ {
		out[i] = l.nextRaw()*l.amp + l.dc
	}
}

// Next returns a single modulation sample, for effects that need
// per-sample access (e.g. Phaser's per-sample allpass coefficient).
func (l *LFO) Next() float32 {
	return l.nextRaw()*l.amp + l.dc
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
