// Package pipeline drives the three-goroutine receiver loop: a tuner
// goroutine producing IF blocks, the decode loop consuming them and
// producing audio blocks, and an optional sink goroutine consuming those.
package pipeline

import "github.com/hzradio/fmradion/decode"

// Config selects the receiver's operating mode and shared parameters,
// grounded on the reference decoder's command-line-driven configuration.
type Config struct {
	Mode             decode.Mode
	Stereo           bool
	DeemphasisMicro  float64
	PilotShift       bool
	MultipathStages  int
	Mono             bool
}
