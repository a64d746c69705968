package sink

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawFloat32RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w := NewRawFloat32(&buf)
	ok, err := w.Write([]float64{0.5, -0.25})
	require.True(t, ok)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.Len(t, buf.Bytes(), 8)
	v0 := math.Float32frombits(binary.LittleEndian.Uint32(buf.Bytes()[0:4]))
	v1 := math.Float32frombits(binary.LittleEndian.Uint32(buf.Bytes()[4:8]))
	assert.InDelta(t, 0.5, v0, 1e-6)
	assert.InDelta(t, -0.25, v1, 1e-6)
}

func TestRawS16LEClampsOutOfRangeSamples(t *testing.T) {
	var buf bytes.Buffer
	w := NewRawS16LE(&buf)
	ok, err := w.Write([]float64{2.0, -2.0})
	require.True(t, ok)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	v0 := int16(binary.LittleEndian.Uint16(buf.Bytes()[0:2]))
	v1 := int16(binary.LittleEndian.Uint16(buf.Bytes()[2:4]))
	assert.Equal(t, int16(32767), v0)
	assert.Equal(t, int16(-32768), v1)
}
