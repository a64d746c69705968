package dsp

import "math"

// ComplexAGC implements the Tisserand-Berviller simple AGC law on complex
// I/Q samples: gain adapts toward driving the output magnitude squared to
// 1, with a hard ceiling and a reset to the initial gain whenever the gain
// becomes non-finite (e.g. after a NaN input sample).
type ComplexAGC struct {
	gain     float64
	maxGain  float64
	rate     float64
	initGain float64
}

// NewComplexAGC builds an IF AGC with the given adaptation rate and gain
// ceiling.
func NewComplexAGC(rate, maxGain float64) *ComplexAGC {
	return &ComplexAGC{gain: 1, initGain: 1, maxGain: maxGain, rate: rate}
}

// Process applies the AGC in place to samples, returning the RMS input
// level observed (useful for the decoder's IF-level reporting).
func (a *ComplexAGC) Process(samples []complex64) (rms float64) {
	var sumSq float64
	for i, x := range samples {
		re, im := float64(real(x)), float64(imag(x))
		sumSq += re*re + im*im
		y := complex(re*a.gain, im*a.gain)
		samples[i] = complex64(y)
		mag2 := real(y)*real(y) + imag(y)*imag(y)
		a.gain *= 1 + a.rate*(1-mag2)
		if a.gain > a.maxGain {
			a.gain = a.maxGain
		}
		if !isFinite(a.gain) {
			a.gain = a.initGain
		}
	}
	if len(samples) > 0 {
		rms = math.Sqrt(sumSq / float64(len(samples)))
	}
	return rms
}

// Gain returns the current gain value.
func (a *ComplexAGC) Gain() float64 { return a.gain }

// RealAGC implements the same law on real-valued audio samples, with an
// additional fixed output-level multiplier matching the reference AF AGC.
type RealAGC struct {
	gain      float64
	maxGain   float64
	rate      float64
	reference float64
	initGain  float64
}

// NewRealAGC builds an AF AGC with the given adaptation rate, reference
// output level and gain ceiling.
func NewRealAGC(rate, reference, maxGain float64) *RealAGC {
	return &RealAGC{gain: 1, initGain: 1, rate: rate, reference: reference, maxGain: maxGain}
}

// Process applies the AGC in place.
func (a *RealAGC) Process(samples []float64) {
	for i, x := range samples {
		y := x * a.gain
		samples[i] = y * a.reference
		a.gain *= 1 + a.rate*(1-y*y)
		if a.gain > a.maxGain {
			a.gain = a.maxGain
		}
		if !isFinite(a.gain) {
			a.gain = a.initGain
		}
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
