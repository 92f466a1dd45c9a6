// effect_delay.go - fixed-delay feedback echo with damping

package main

import "sync/atomic"

// delayParams bundles the delay time, feedback and mix a SetParams call
// publishes as a single atomic swap (SPEC_FULL.md §7).
type delayParams struct {
	delaySamp float32
	feedback  float32
	mix       float32
}

// Delay reads a delay line at a fixed delay, feeds a damped copy back into
// the write, and mixes dry/wet (spec.md §4.C). Read-before-write per the
// feedback-loop ordering mandated in spec.md §9(ii): each sample reads the
// previous cycle's value before the new one is written, guaranteeing a
// one-sample minimum loop delay.
type Delay struct {
	effectBase

	line   *DelayLine
	damp   *OnePole
	params atomic.Pointer[delayParams]
	tapBuf []float32
}

// NewDelay builds a delay of the given time (ms), feedback [0,0.95],
// damping cutoff (Hz) and dry/wet mix [0,1].
func NewDelay(state *DSPState, timeMs, feedback, dampHz, mix float32) *Delay {
	fs := state.SampleRate
	maxMs := timeMs
	if maxMs < 1 {
		maxMs = 1
	}
	d := &Delay{
		effectBase: newEffectBase(EffectDelay),
		line:       NewDelayLine(msToSamples(maxMs, fs) + 4),
		damp:       NewOnePole(dampHz, fs, false),
		tapBuf:     make([]float32, state.BlockSize),
	}
	d.params.Store(&delayParams{delaySamp: timeMs * fs / 1000, feedback: clampf(feedback, 0, 0.95), mix: clampf(mix, 0, 1)})
	return d
}

// SetParams updates time (ms), feedback, damping cutoff (Hz) and mix.
// Growing the delay time beyond the line's allocated capacity clamps to
// that capacity rather than reallocating (no allocation on the audio
// thread; the line must be sized generously enough at construction for
// the musical range the control surface exposes).
func (d *Delay) SetParams(timeMs, feedback, dampHz, mix, sampleRate float32) {
	maxSamples := float32(d.line.Len() - 3)
	want := timeMs * sampleRate / 1000
	if want > maxSamples {
		want = maxSamples
	}
	d.damp.SetCutoff(dampHz, sampleRate)
	d.params.Store(&delayParams{delaySamp: want, feedback: clampf(feedback, 0, 0.95), mix: clampf(mix, 0, 1)})
}

func (d *Delay) Process(in, out []float32, n int) {
	if d.passthrough() {
		copyBlock(in, out, n)
		return
	}
	p := d.params.Load()
	if len(d.tapBuf) < n {
		d.tapBuf = make([]float32, n)
	}
	tap := d.tapBuf[:n]
	for i := 0; i < n; i++ {
		x := in[i]
		t := d.line.ReadLinear(p.delaySamp)
		damped := d.damp.Step(t)
		d.line.WriteSample(x + damped*p.feedback)
		tap[i] = t
	}
	crossfade(in[:n], tap, p.mix, out[:n], n)
}

func (d *Delay) Reset() {
	d.line.Reset()
	d.damp.Reset()
}
