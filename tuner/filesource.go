package tuner

import (
	"context"
	"encoding/binary"
	"io"
	"math"

	"github.com/hzradio/fmradion/buffer"
	"hz.tools/rf"
)

// FileSource reads interleaved little-endian float32 I/Q pairs from a file
// or pipe, standing in for the reference decoder's FileSource device
// backend. It is the tuner used by offline tests and by the command's
// "file" tuner type.
type FileSource struct {
	r          io.Reader
	sampleRate uint
	freq       rf.Hz
	blockLen   int
	err        error
	stop       chan struct{}
}

// NewFileSource builds a file-backed tuner. blockLen is the number of I/Q
// samples read per Queue.Push call.
func NewFileSource(r io.Reader, sampleRate uint, freq rf.Hz, blockLen int) *FileSource {
	if blockLen <= 0 {
		blockLen = 4096
	}
	return &FileSource{r: r, sampleRate: sampleRate, freq: freq, blockLen: blockLen, stop: make(chan struct{})}
}

// Configure is a no-op for FileSource: sample rate and frequency are fixed
// at construction since they describe the file's contents, not a device.
func (f *FileSource) Configure(config string) error { return nil }

// Start reads blocks until EOF, ctx cancellation, or Stop.
func (f *FileSource) Start(ctx context.Context, out *buffer.Queue[[]complex64]) error {
	raw := make([]byte, f.blockLen*8)
	for {
		select {
		case <-ctx.Done():
			out.PushEnd()
			return ctx.Err()
		case <-f.stop:
			out.PushEnd()
			return nil
		default:
		}

		n, err := io.ReadFull(f.r, raw)
		if n > 0 {
			samples := make([]complex64, n/8)
			for i := range samples {
				re := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8:]))
				im := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8+4:]))
				samples[i] = complex(re, im)
			}
			out.Push(samples)
		}
		if err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				f.err = err
			}
			out.PushEnd()
			return f.err
		}
	}
}

// Stop requests the read loop exit at its next iteration boundary.
func (f *FileSource) Stop() error {
	close(f.stop)
	return nil
}

// SampleRate reports the configured sample rate.
func (f *FileSource) SampleRate() uint { return f.sampleRate }

// Frequency reports the configured nominal centre frequency.
func (f *FileSource) Frequency() rf.Hz { return f.freq }

// IsLowIF is always false for a file capture.
func (f *FileSource) IsLowIF() bool { return false }

// Err returns the first I/O error encountered, if any.
func (f *FileSource) Err() error { return f.err }
