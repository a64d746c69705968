package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestComplexAGCConvergesTowardUnitMagnitude(t *testing.T) {
	agc := NewComplexAGC(0.01, 1000.0)
	samples := make([]complex64, 4000)
	for i := range samples {
		samples[i] = complex(0.01, 0) // far below target magnitude 1.0
	}
	agc.Process(samples)

	tailMag := math.Hypot(float64(real(samples[len(samples)-1])), float64(imag(samples[len(samples)-1])))
	assert.InDelta(t, 1.0, tailMag, 0.2, "AGC should drive a constant input toward unit magnitude")
}

func TestComplexAGCGainNeverExceedsCeiling(t *testing.T) {
	agc := NewComplexAGC(0.5, 10.0)
	samples := make([]complex64, 1000)
	for i := range samples {
		samples[i] = complex(1e-6, 0)
	}
	agc.Process(samples)
	assert.LessOrEqual(t, agc.Gain(), 10.0)
}

func TestComplexAGCRecoversFromNonFiniteGain(t *testing.T) {
	agc := NewComplexAGC(1e9, 1000.0)
	samples := []complex64{0, 0, 0, 1, complex(float32(math.NaN()), 0)}
	agc.Process(samples)
	assert.True(t, isFinite(agc.Gain()), "AGC must reset rather than latch a non-finite gain")
}

// TestComplexAGCGainStaysFiniteAndBounded runs the AGC over randomized
// signal magnitudes, including bursts of silence, and checks that the gain
// it settles on is always finite and never exceeds the configured ceiling.
func TestComplexAGCGainStaysFiniteAndBounded(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		maxGain := rapid.Float64Range(1, 1000).Draw(tt, "maxGain")
		rate := rapid.Float64Range(0.0001, 1.0).Draw(tt, "rate")
		n := rapid.IntRange(1, 2000).Draw(tt, "n")

		agc := NewComplexAGC(rate, maxGain)
		samples := make([]complex64, n)
		for i := range samples {
			mag := rapid.Float64Range(0, 10).Draw(tt, "mag")
			samples[i] = complex(float32(mag), 0)
		}
		agc.Process(samples)

		assert.True(tt, isFinite(agc.Gain()), "AGC gain must stay finite across arbitrary input magnitudes")
		assert.LessOrEqual(tt, agc.Gain(), maxGain+1e-9)
		for _, s := range samples {
			assert.True(tt, isFinite(float64(real(s))) && isFinite(float64(imag(s))),
				"AGC output samples must stay finite")
		}
	})
}

func TestRealAGCAppliesReferenceScale(t *testing.T) {
	agc := NewRealAGC(0, 0.5, 10.0) // rate 0: gain stays fixed at 1
	samples := []float64{1, 1, 1}
	agc.Process(samples)
	for _, v := range samples {
		assert.InDelta(t, 0.5, v, 1e-9)
	}
}
