package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRationalResamplerOutputLengthMatchesRatio(t *testing.T) {
	r := NewRationalResampler(384000, 48000, 33, 32)
	src := make([]float64, 384000) // 1 second at input rate
	for i := range src {
		src[i] = 1
	}
	var out []float64
	out = r.Process(out, src)

	assert.InDelta(t, 48000, len(out), 48000*0.01, "one second of input should resample to ~one second of output")
}

func TestRationalResamplerSplitInputMatchesSingleBlock(t *testing.T) {
	r1 := NewRationalResampler(384000, 48000, 33, 32)
	r2 := NewRationalResampler(384000, 48000, 33, 32)

	src := make([]float64, 3840)
	for i := range src {
		src[i] = float64(i%7) - 3
	}

	var whole []float64
	whole = r1.Process(whole, src)

	var split []float64
	split = r2.Process(split, src[:1000])
	split = r2.Process(split, src[1000:])

	require.InDelta(t, len(whole), len(split), 2, "splitting the input shouldn't change the output length by more than rounding")
}

func TestComplexResamplerKeepsIQRailsInLockstep(t *testing.T) {
	c := NewComplexResampler(384000, 48000, 33, 32)
	src := make([]complex64, 3840)
	for i := range src {
		src[i] = complex(float32(i%5), float32(-(i % 3)))
	}
	var out []complex64
	assert.NotPanics(t, func() {
		out = c.Process(out, src)
	})
	assert.NotEmpty(t, out)
}

// TestRationalResamplerOutputLengthScalesWithRatio checks that, for a range
// of ratios and input lengths, the number of samples produced tracks
// len(src)*ratio within one interpolation-table period of rounding slop.
func TestRationalResamplerOutputLengthScalesWithRatio(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		inputRate := rapid.Float64Range(8000, 400000).Draw(tt, "inputRate")
		outputRate := rapid.Float64Range(8000, 400000).Draw(tt, "outputRate")
		n := rapid.IntRange(100, 5000).Draw(tt, "n")

		r := NewRationalResampler(inputRate, outputRate, 33, 32)
		src := make([]float64, n)
		for i := range src {
			src[i] = float64(i%7) - 3
		}
		var out []float64
		out = r.Process(out, src)

		ratio := outputRate / inputRate
		want := float64(n) * ratio
		assert.InDelta(tt, want, float64(len(out)), want*0.02+4,
			"output length should track input length scaled by outputRate/inputRate")
	})
}
