package decode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthesizeMonoFM(n int, audioFreq float64) []complex64 {
	out := make([]complex64, n)
	phase := 0.0
	const deviation = 30000.0
	for i := range out {
		t := float64(i) / SampleRateIF
		audio := math.Sin(2 * math.Pi * audioFreq * t)
		phase += 2 * math.Pi * deviation * audio / SampleRateIF
		out[i] = complex(float32(math.Cos(phase)), float32(math.Sin(phase)))
	}
	return out
}

func TestFMDecoderMonoProducesAudio(t *testing.T) {
	d := NewFMDecoder(FMConfig{FilterEnable: true, Stereo: false, DeemphasisMicro: 75})
	src := synthesizeMonoFM(int(SampleRateIF*0.05), 1000)
	audio := d.Process(src)
	assert.NotEmpty(t, audio, "mono FM decode should produce audio samples")
	assert.False(t, d.Stereo())
}

func TestFMDecoderStereoProducesInterleavedOutput(t *testing.T) {
	d := NewFMDecoder(FMConfig{FilterEnable: true, Stereo: true, DeemphasisMicro: 75})
	require.True(t, d.Stereo())

	src := synthesizeMonoFM(int(SampleRateIF*0.05), 1000)
	audio := d.Process(src)
	assert.Equal(t, 0, len(audio)%2, "stereo output must be interleaved L/R pairs")
}

func TestFMDecoderUnlockedStereoFallsBackToMonoSide(t *testing.T) {
	d := NewFMDecoder(FMConfig{FilterEnable: true, Stereo: true, DeemphasisMicro: 75})
	src := synthesizeMonoFM(512, 1000) // far too short to acquire pilot lock
	audio := d.Process(src)
	assert.False(t, d.StereoDetected(), "pilot lock should not occur within one short block")
	assert.Equal(t, 0, len(audio)%2)
}

func TestFMDecoderMultipathStagesAreOptional(t *testing.T) {
	plain := NewFMDecoder(FMConfig{FilterEnable: true, Stereo: false})
	withEq := NewFMDecoder(FMConfig{FilterEnable: true, Stereo: false, MultipathStages: 2})

	src := synthesizeMonoFM(4096, 1000)
	assert.NotPanics(t, func() { plain.Process(src) })
	assert.NotPanics(t, func() { withEq.Process(src) })
}
