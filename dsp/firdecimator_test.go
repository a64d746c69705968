package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFIRDecimatorDecimatesByFactor(t *testing.T) {
	coeff := DesignLowpassFIR(16, 10000, 100000)
	d := NewFIRDecimator(coeff, 4)

	src := make([]complex64, 400)
	for i := range src {
		src[i] = complex(1, 0)
	}
	var out []complex64
	out = d.Process(out, src)

	assert.InDelta(t, float64(len(src))/4, float64(len(out)), 2,
		"decimation factor 4 should cut sample count roughly fourfold")
}

func TestFIRDecimatorGroupDelayMatchesCoefficientLength(t *testing.T) {
	coeff := DesignLowpassFIR(32, 5000, 48000)
	d := NewFIRDecimator(coeff, 1)
	require.Equal(t, 16, d.GroupDelay())
}

func TestFIRDecimatorPassesDCUnattenuated(t *testing.T) {
	coeff := DesignLowpassFIR(64, 10000, 48000)
	d := NewFIRDecimator(coeff, 1)

	src := make([]complex64, 512)
	for i := range src {
		src[i] = complex(1, 0)
	}
	var out []complex64
	out = d.Process(out, src)
	require.NotEmpty(t, out)

	last := out[len(out)-1]
	assert.InDelta(t, 1.0, real(last), 0.05, "a unity-gain low-pass must pass DC at ~1.0")
	assert.InDelta(t, 0.0, imag(last), 0.05)
}

func TestFIRAudioFilterPassesDCUnattenuated(t *testing.T) {
	coeff := DesignLowpassFIR(128, 1000, 48000)
	f := NewFIRAudioFilter(coeff)

	n := 2048
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 1 // DC: well within passband
	}
	out := f.Process(samples)
	assert.InDelta(t, 1.0, out[n-1], 0.05)
}

// TestFIRDecimatorDecimationPhaseCarriesAcrossCalls guards the invariant
// documented on FIRDecimator: splitting a stream into arbitrarily many
// Process calls must not change which samples get emitted or their values,
// since the decimation phase (and filter history) must carry across calls
// exactly as it would across an unbroken stream.
func TestFIRDecimatorDecimationPhaseCarriesAcrossCalls(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		coeff := DesignLowpassFIR(16, 10000, 100000)
		decim := rapid.IntRange(1, 5).Draw(tt, "decim")
		total := rapid.IntRange(1, 200).Draw(tt, "total")

		src := make([]complex64, total)
		for i := range src {
			src[i] = complex(float32(i%7)-3, float32(i%5)-2)
		}

		whole := NewFIRDecimator(coeff, decim)
		want := whole.Process(nil, src)

		split := NewFIRDecimator(coeff, decim)
		var got []complex64
		pos := 0
		for pos < total {
			n := rapid.IntRange(1, total-pos).Draw(tt, "chunk")
			got = split.Process(got, src[pos:pos+n])
			pos += n
		}

		require.Equal(tt, len(want), len(got))
		for i := range want {
			assert.InDelta(tt, real(want[i]), real(got[i]), 1e-6)
			assert.InDelta(tt, imag(want[i]), imag(got[i]), 1e-6)
		}
	})
}
