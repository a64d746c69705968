package decode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNBFMDecoderProducesMonoAudio(t *testing.T) {
	const sampleRateIF = 384000.0
	d := NewNBFMDecoder(NBFMConfig{
		SampleRateIF:   sampleRateIF,
		SampleRatePCM:  48000.0,
		Deviation:      2500,
		AudioBandwidth: 3000,
	})
	assert.False(t, d.Stereo())

	src := make([]complex64, 8192)
	phase := 0.0
	for i := range src {
		t := float64(i) / sampleRateIF
		audio := math.Sin(2 * math.Pi * 800 * t)
		phase += 2 * math.Pi * 2000 * audio / sampleRateIF
		src[i] = complex(float32(math.Cos(phase)), float32(math.Sin(phase)))
	}

	audio := d.Process(src)
	assert.NotEmpty(t, audio)
}
