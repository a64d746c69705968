package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzradio/fmradion/decode"
)

func TestNewDecoderBuildsEveryMode(t *testing.T) {
	modes := []decode.Mode{
		decode.ModeFM, decode.ModeNBFM, decode.ModeAM, decode.ModeDSB,
		decode.ModeUSB, decode.ModeLSB, decode.ModeCW, decode.ModeWSPR,
	}
	for _, m := range modes {
		d, err := NewDecoder(Config{Mode: m, Stereo: true}, 384000)
		require.NoError(t, err, "mode %v should build without error", m)
		assert.NotNil(t, d)
	}
}

func TestNewDecoderRejectsUnknownMode(t *testing.T) {
	_, err := NewDecoder(Config{Mode: decode.Mode(99)}, 384000)
	assert.Error(t, err)
}

func TestNewDecoderFMRespectsMonoOverride(t *testing.T) {
	d, err := NewDecoder(Config{Mode: decode.ModeFM, Stereo: true, Mono: true}, 384000)
	require.NoError(t, err)
	assert.False(t, d.Stereo(), "Mono:true must override Stereo:true")
}
