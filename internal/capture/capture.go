// Package capture implements a compressed raw-I/Q recording format (the
// fmradion command has no flag that uses it), supplementing the reference decoder's FileSource playback feature
// with a compressed capture counterpart for offline multipath/PLL
// analysis.
package capture

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Writer compresses interleaved little-endian float32 I/Q pairs with zstd
// as they're captured.
type Writer struct {
	enc *zstd.Encoder
	buf []byte
}

// NewWriter wraps w with a zstd encoder at the default compression level.
func NewWriter(w io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &Writer{enc: enc}, nil
}

// WriteBlock appends one block of I/Q samples to the capture.
func (w *Writer) WriteBlock(samples []complex64) error {
	if cap(w.buf) < len(samples)*8 {
		w.buf = make([]byte, len(samples)*8)
	}
	buf := w.buf[:len(samples)*8]
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(real(s)))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(imag(s)))
	}
	_, err := w.enc.Write(buf)
	return err
}

// Close flushes and closes the zstd stream.
func (w *Writer) Close() error {
	return w.enc.Close()
}

// Reader decompresses a capture written by Writer back into an I/Q stream,
// for use as a tuner.FileSource's underlying reader.
type Reader struct {
	dec *zstd.Decoder
}

// NewReader wraps r with a zstd decoder.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &Reader{dec: dec}, nil
}

// Read implements io.Reader so *Reader can be used directly as the byte
// source for tuner.NewFileSource.
func (r *Reader) Read(p []byte) (int, error) {
	return r.dec.Read(p)
}

// Close releases the decoder.
func (r *Reader) Close() error {
	r.dec.Close()
	return nil
}
