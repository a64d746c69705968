package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/hzradio/fmradion/buffer"
	"github.com/hzradio/fmradion/decode"
	"github.com/hzradio/fmradion/dsp"
	"github.com/hzradio/fmradion/sink"
	"github.com/hzradio/fmradion/tuner"
)

// slowConsumerDepthSeconds is the queue depth, in units of one second's
// worth of IF samples, past which the driver logs a one-shot slow-consumer
// warning, matching the distilled spec's overflow-warning requirement.
const slowConsumerDepthSeconds = 10

// Stats reports the decoder's running signal-quality metrics for a status
// display (the --status TUI).
type Stats struct {
	IFRMS         float64
	BasebandLevel float64
	TuningOffset  float64
	PilotLevel    float64
	StereoLocked  bool
	MultipathErr  float64
}

// Driver coordinates the tuner-ingest and decode goroutines (the decode
// loop writes to the sink itself) and owns the single Decoder instance for
// the run.
type Driver struct {
	Tuner   tuner.Tuner
	Decoder decode.Decoder
	Sink    sink.Writer
	Logger  *log.Logger

	OnPPS   func(sampleIndex uint64)
	OnStats func(Stats)
}

// Run blocks until the tuner's stream ends, ctx is cancelled, or a fatal
// error occurs. The first produced audio block is discarded to let
// filters and resamplers pass their warm-up transient, matching the
// reference decoder's treatment of initial silence.
func (d *Driver) Run(ctx context.Context) error {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}

	iq := buffer.NewQueue[[]complex64]()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("tuner goroutine panicked", "panic", r)
			}
		}()
		return d.Tuner.Start(ctx, iq)
	})

	g.Go(func() error {
		return d.decodeLoop(ctx, iq, logger)
	})

	return g.Wait()
}

func (d *Driver) decodeLoop(ctx context.Context, iq *buffer.Queue[[]complex64], logger *log.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline: DSP invariant violation: %v", r)
			logger.Error("decode loop aborted", "err", err)
		}
	}()

	sampleRate := float64(d.Tuner.SampleRate())
	warnThreshold := int(slowConsumerDepthSeconds * sampleRate)
	warned := false
	first := true
	var sampleIndex uint64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		block, ok := iq.Pull()
		if !ok {
			if d.Sink != nil {
				return d.Sink.Close()
			}
			return nil
		}

		// Queued samples, estimated from the block count and this block's length.
		if depth := iq.QueueSize() * len(block); depth > warnThreshold && !warned {
			logger.Warn("source buffer depth exceeds threshold, decode loop cannot keep up", "depth", depth)
			warned = true
		}

		audio := d.Decoder.Process(block)
		sampleIndex += uint64(len(block))

		if fm, ok := d.Decoder.(ppsSource); ok {
			for _, ev := range fm.TakePPSEvents() {
				if d.OnPPS != nil {
					d.OnPPS(ev.SampleIndex)
				}
			}
		}

		if d.OnStats != nil {
			if sr, ok := d.Decoder.(statsSource); ok {
				d.OnStats(Stats{
					IFRMS:         sr.IFRMS(),
					BasebandLevel: sr.BasebandLevel(),
					TuningOffset:  sr.TuningOffset(),
					PilotLevel:    sr.PilotLevel(),
					StereoLocked:  sr.StereoDetected(),
				})
			}
		}

		if first {
			first = false
			continue
		}

		if d.Sink != nil {
			if ok, err := d.Sink.Write(audio); !ok {
				logger.Error("sink write failed", "err", err)
				continue
			}
		}
	}
}

// ppsSource is implemented by decoders (only FMDecoder, in stereo mode)
// that can emit PPS events.
type ppsSource interface {
	TakePPSEvents() []dsp.PPSEvent
}

// statsSource is implemented by decoders (only FMDecoder) that expose
// live signal-quality metrics for a status display.
type statsSource interface {
	StereoDetected() bool
	TuningOffset() float64
	BasebandLevel() float64
	IFRMS() float64
	PilotLevel() float64
}
