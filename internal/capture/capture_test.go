package capture

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	blocks := [][]complex64{
		{complex(1, -1), complex(0.5, 0.25)},
		{complex(-2, 3)},
	}
	for _, b := range blocks {
		require.NoError(t, w.WriteBlock(b))
	}
	require.NoError(t, w.Close())

	r, err := NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, (2+1)*8, len(got), "each complex64 sample round-trips as 8 bytes")
}
