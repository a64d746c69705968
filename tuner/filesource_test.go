package tuner

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzradio/fmradion/buffer"
)

func encodeIQ(samples []complex64) []byte {
	buf := make([]byte, len(samples)*8)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(real(s)))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(imag(s)))
	}
	return buf
}

func TestFileSourceDecodesInterleavedIQ(t *testing.T) {
	samples := []complex64{complex(0.5, -0.25), complex(1, 1)}
	r := bytes.NewReader(encodeIQ(samples))
	src := NewFileSource(r, 384000, 0, 1)

	out := buffer.NewQueue[[]complex64]()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := src.Start(ctx, out)
	require.NoError(t, err)

	var got []complex64
	for {
		block, ok := out.Pull()
		if !ok {
			break
		}
		got = append(got, block...)
	}
	require.Len(t, got, 2)
	assert.InDelta(t, 0.5, real(got[0]), 1e-6)
	assert.InDelta(t, -0.25, imag(got[0]), 1e-6)
	assert.InDelta(t, 1.0, real(got[1]), 1e-6)
}

func TestFileSourceReportsSampleRateAndFrequency(t *testing.T) {
	src := NewFileSource(bytes.NewReader(nil), 48000, 100000000, 4096)
	assert.Equal(t, uint(48000), src.SampleRate())
	assert.EqualValues(t, 100000000, src.Frequency())
	assert.False(t, src.IsLowIF())
}
