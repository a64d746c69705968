// Package hamlib wraps a Hamlib-controlled receiver (tuned over rigctld or
// a direct rig backend) as a tuner.Tuner. Hamlib only controls frequency,
// mode and gain; the actual I/Q stream for such a receiver arrives over a
// separate audio or network path, which the caller supplies as an
// io.Reader wrapped by tuner.FileSource-style framing. HamlibTuner's job is
// purely the rig-control half of that pairing: set frequency, read back
// signal strength, and release the rig cleanly on Stop.
package hamlib

import (
	"context"
	"fmt"

	"github.com/hzradio/fmradion/buffer"
	"github.com/hzradio/fmradion/config"
	"github.com/xylo04/goHamlib"
	"hz.tools/rf"
)

// Tuner controls a Hamlib rig and multiplexes its I/Q delivery (supplied
// separately, e.g. over a sound-card input) into the pipeline's buffer.
type Tuner struct {
	rig        goHamlib.Rig
	freq       rf.Hz
	sampleRate uint
	source     IQSource
	err        error
}

// IQSource is the raw sample stream a Hamlib-controlled rig delivers
// alongside its control path (typically a sound-card capture or a network
// IQ stream); Tuner only manages tuning, and forwards this source's
// blocks once the rig is configured.
type IQSource interface {
	Start(ctx context.Context, out *buffer.Queue[[]complex64]) error
	Stop() error
}

// New builds a Hamlib-controlled tuner for the given rig model and device
// path, forwarding I/Q blocks from source once the rig is tuned.
func New(rigModel int, devicePath string, sampleRate uint, source IQSource) (*Tuner, error) {
	rig := goHamlib.NewRig(rigModel)
	if err := rig.Open(devicePath); err != nil {
		return nil, fmt.Errorf("hamlib: open rig: %w", err)
	}
	return &Tuner{rig: rig, sampleRate: sampleRate, source: source}, nil
}

// Configure accepts "freq=<Hz>" and any other rig-specific keys via the
// shared key/value config-string parser.
func (t *Tuner) Configure(cfg string) error {
	kv := config.ParseKV(cfg)
	if v, ok := kv["freq"]; ok {
		var hz int64
		if _, err := fmt.Sscanf(v, "%d", &hz); err != nil {
			return fmt.Errorf("hamlib: bad freq %q: %w", v, err)
		}
		if err := t.rig.SetFreq(float64(hz)); err != nil {
			return fmt.Errorf("hamlib: set freq: %w", err)
		}
		t.freq = rf.Hz(hz)
	}
	return nil
}

// Start forwards blocks from the paired IQSource. It does not touch the
// rig; the frequency is set by Configure.
func (t *Tuner) Start(ctx context.Context, out *buffer.Queue[[]complex64]) error {
	if err := t.source.Start(ctx, out); err != nil {
		t.err = err
		return err
	}
	return nil
}

// Stop releases the paired source and closes the rig handle.
func (t *Tuner) Stop() error {
	_ = t.source.Stop()
	return t.rig.Close()
}

// SampleRate reports the IF sample rate of the paired I/Q source.
func (t *Tuner) SampleRate() uint { return t.sampleRate }

// Frequency reports the last frequency set via Configure.
func (t *Tuner) Frequency() rf.Hz { return t.freq }

// IsLowIF is false: Hamlib-controlled front-ends are assumed to deliver
// baseband-centred I/Q.
func (t *Tuner) IsLowIF() bool { return false }

// Err returns the first error encountered.
func (t *Tuner) Err() error { return t.err }
