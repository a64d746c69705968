package decode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func synthesizeAMTone(n int, sampleRateIF, carrierOffset, audioFreq float64) []complex64 {
	out := make([]complex64, n)
	for i := range out {
		t := float64(i) / sampleRateIF
		mod := 0.5 + 0.5*math.Sin(2*math.Pi*audioFreq*t)
		phase := 2 * math.Pi * carrierOffset * t
		out[i] = complex(float32(mod*math.Cos(phase)), float32(mod*math.Sin(phase)))
	}
	return out
}

func newTestAMConfig(mode Mode) AMConfig {
	return AMConfig{
		Mode:           mode,
		SampleRateIF:   384000,
		SampleRatePCM:  48000,
		Bandwidth:      5000,
		DeemphasisTime: 100,
	}
}

func TestAMDecoderDemodulatesAmplitude(t *testing.T) {
	d := NewAMDecoder(newTestAMConfig(ModeAM))
	src := synthesizeAMTone(16384, 384000, 0, 1000)
	audio := d.Process(src)
	assert.NotEmpty(t, audio)
	assert.False(t, d.Stereo())
}

func TestAMDecoderDSBRunsWithoutPanicking(t *testing.T) {
	d := NewAMDecoder(newTestAMConfig(ModeDSB))
	src := synthesizeAMTone(16384, 384000, 0, 1000)
	assert.NotPanics(t, func() { d.Process(src) })
}

func TestAMDecoderSSBModesShiftFilterShiftWithoutPanicking(t *testing.T) {
	for _, m := range []Mode{ModeUSB, ModeLSB, ModeCW, ModeWSPR} {
		cfg := newTestAMConfig(m)
		if m == ModeCW {
			cfg.Bandwidth = 500
		} else if m == ModeWSPR {
			cfg.Bandwidth = 200
		}
		d := NewAMDecoder(cfg)
		src := synthesizeAMTone(16384, 384000, 1000, 400)
		assert.NotPanics(t, func() { d.Process(src) }, "mode %s should run without panicking", m)
	}
}

func TestAMDecoderCWAndWSPRUseTighterAFAGC(t *testing.T) {
	cw := NewAMDecoder(newTestAMConfig(ModeCW))
	wspr := NewAMDecoder(newTestAMConfig(ModeWSPR))
	am := NewAMDecoder(newTestAMConfig(ModeAM))
	assert.NotEqual(t, cw.afAGC, am.afAGC, "CW/WSPR must use distinct AF AGC parameters from AM/DSB")
	assert.NotEqual(t, wspr.afAGC, am.afAGC, "CW/WSPR must use distinct AF AGC parameters from AM/DSB")
}
