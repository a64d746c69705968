// Package tuner defines the interface the decode pipeline uses to receive
// I/Q sample blocks from a hardware or file front-end, and the concrete
// backends that implement it.
package tuner

import (
	"context"

	"github.com/hzradio/fmradion/buffer"
	"hz.tools/rf"
)

// Tuner produces a stream of I/Q sample blocks at a fixed sample rate and
// nominal centre frequency until ctx is cancelled or the underlying device
// signals end-of-stream.
type Tuner interface {
	// Configure applies a "-c" style key/value configuration string.
	Configure(config string) error

	// Start begins producing sample blocks into out, returning once the
	// stream has ended (PushEnd will have been called on out) or ctx is
	// cancelled. It does not block the caller from reading out
	// concurrently.
	Start(ctx context.Context, out *buffer.Queue[[]complex64]) error

	// Stop requests the tuner wind down; Start will then return.
	Stop() error

	// SampleRate reports the IF sample rate in Hz.
	SampleRate() uint

	// Frequency reports the nominal centre frequency.
	Frequency() rf.Hz

	// IsLowIF reports whether the device delivers a low-IF stream that
	// needs an Fs/4 downconversion stage before filtering.
	IsLowIF() bool

	// Err returns the first error encountered by the tuner, if any.
	Err() error
}
