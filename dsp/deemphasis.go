package dsp

import "math"

// Deemphasis is a first-order RC low-pass used to undo FM broadcast's
// pre-emphasis, grounded on the reference decoder's LowPassFilterRC:
// a1 = -exp(-1/(tau*sampleRate)), b0 = 1+a1, Direct Form 2.
type Deemphasis struct {
	a1, b0 float64
	z1     float64
}

// NewDeemphasis builds a de-emphasis filter with time constant tauMicros
// microseconds at the given sample rate. tauMicros == 0 disables the
// filter (Process becomes a no-op identity).
func NewDeemphasis(tauMicros, sampleRate float64) *Deemphasis {
	if tauMicros <= 0 {
		return &Deemphasis{a1: 0, b0: 1}
	}
	tau := tauMicros * 1e-6
	a1 := -math.Exp(-1 / (tau * sampleRate))
	return &Deemphasis{a1: a1, b0: 1 + a1}
}

// Process filters samples in place.
func (d *Deemphasis) Process(samples []float64) {
	for i, x := range samples {
		y := d.b0*x - d.a1*d.z1
		samples[i] = y
		d.z1 = y
	}
}

// DCBlocker is a 2nd-order Butterworth high-pass built via the matched-Z
// transform from a continuous-domain pole prototype, normalized to unity
// gain at Nyquist, grounded on the reference decoder's HighPassFilterIir.
type DCBlocker struct {
	b0, b1, b2, a1, a2 float64
	z1i, z2i           float64
	z1o, z2o           float64
}

// NewDCBlocker builds a high-pass filter with the given cutoff frequency.
func NewDCBlocker(cutoff, sampleRate float64) *DCBlocker {
	wc := 2 * math.Pi * cutoff / sampleRate
	// Butterworth poles wc*exp(+-j*3pi/4) mapped by z = exp(s); the double
	// zero at s = 0 maps to z = 1.
	r := math.Exp(-wc / math.Sqrt2)
	a1 := -2 * r * math.Cos(wc/math.Sqrt2)
	a2 := r * r
	norm := (1 - a1 + a2) / 4 // unity gain at z = -1

	b0 := 1 * norm
	b1 := -2 * norm
	b2 := 1 * norm

	return &DCBlocker{b0: b0, b1: b1, b2: b2, a1: a1, a2: a2}
}

// Process filters samples in place.
func (d *DCBlocker) Process(samples []float64) {
	for i, x := range samples {
		y := d.b0*x + d.b1*d.z1i + d.b2*d.z2i - d.a1*d.z1o - d.a2*d.z2o
		d.z2i = d.z1i
		d.z1i = x
		d.z2o = d.z1o
		d.z1o = y
		samples[i] = y
	}
}
