package pipeline

import (
	"fmt"

	"github.com/hzradio/fmradion/decode"
)

// NewDecoder builds the decoder named by cfg.Mode, wired to the given IF
// sample rate (and 48 kHz PCM, matching every mode's reference constants).
// The FM decoder ignores ifSampleRate and always runs at decode.SampleRateIF.
func NewDecoder(cfg Config, ifSampleRate float64) (decode.Decoder, error) {
	switch cfg.Mode {
	case decode.ModeFM:
		return decode.NewFMDecoder(decode.FMConfig{
			FilterEnable:    true,
			Stereo:          cfg.Stereo && !cfg.Mono,
			DeemphasisMicro: cfg.DeemphasisMicro,
			PilotShift:      cfg.PilotShift,
			MultipathStages: cfg.MultipathStages,
		}), nil
	case decode.ModeNBFM:
		return decode.NewNBFMDecoder(decode.NBFMConfig{
			SampleRateIF:   ifSampleRate,
			SampleRatePCM:  48000,
			Deviation:      2500,
			AudioBandwidth: 3000,
		}), nil
	case decode.ModeAM, decode.ModeDSB, decode.ModeUSB, decode.ModeLSB, decode.ModeCW, decode.ModeWSPR:
		bw := 5000.0
		switch cfg.Mode {
		case decode.ModeUSB, decode.ModeLSB:
			bw = 3000
		case decode.ModeCW:
			bw = 500
		case decode.ModeWSPR:
			bw = 200
		}
		return decode.NewAMDecoder(decode.AMConfig{
			Mode:           cfg.Mode,
			SampleRateIF:   ifSampleRate,
			SampleRatePCM:  48000,
			Bandwidth:      bw,
			DeemphasisTime: 100,
		}), nil
	default:
		return nil, fmt.Errorf("pipeline: unsupported mode %v", cfg.Mode)
	}
}
