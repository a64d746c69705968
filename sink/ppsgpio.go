package sink

import (
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// PPSGPIO drives a GPIO line high briefly whenever told to, giving an
// embedded deployment a hardware time-sync pulse matching a PPS event.
// This has no counterpart in the reference decoder (whose PPS output is a
// text file only); it supplements that feature for field deployments that
// need a hardware-timed pulse, not just a log line.
type PPSGPIO struct {
	line      *gpiocdev.Line
	pulseTime time.Duration
	err       error
}

// NewPPSGPIO requests line offset on chip (e.g. "gpiochip0") as an output,
// initially low.
func NewPPSGPIO(chip string, offset int, pulseTime time.Duration) (*PPSGPIO, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	return &PPSGPIO{line: line, pulseTime: pulseTime}, nil
}

// Strobe raises the line, holds it for pulseTime, then lowers it. Intended
// to be called from the pipeline driver when a PPSEvent is observed, not
// from the audio Write path.
func (p *PPSGPIO) Strobe() {
	if err := p.line.SetValue(1); err != nil {
		p.err = err
		return
	}
	time.Sleep(p.pulseTime)
	if err := p.line.SetValue(0); err != nil {
		p.err = err
	}
}

// Close releases the GPIO line.
func (p *PPSGPIO) Close() error {
	return p.line.Close()
}

// Err returns the first error encountered.
func (p *PPSGPIO) Err() error { return p.err }
