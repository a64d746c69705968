package decode

import (
	"math"

	"github.com/hzradio/fmradion/dsp"
)

// AMConfig configures the amplitude-family decoder.
type AMConfig struct {
	Mode           Mode // ModeAM, ModeDSB, ModeUSB, ModeLSB, ModeCW, ModeWSPR
	SampleRateIF   float64
	SampleRatePCM  float64
	Bandwidth      float64 // half-bandwidth of the demodulated audio
	DeemphasisTime float64 // microseconds, reference decoder uses 100us
}

// AMDecoder demodulates AM, DSB, USB, LSB, CW and WSPR, grounded on the
// reference decoder's AmDecode: mode-specific pre-filter chain (direct for
// AM/DSB, shift-filter-shift for SSB/CW/WSPR), shared IF-RMS measurement
// and IF AGC, magnitude or real-part demodulation depending on mode,
// DC-block, mode-dependent AF AGC, de-emphasis, resampling.
type AMDecoder struct {
	cfg AMConfig

	preFilter   *dsp.FIRDecimator
	shiftUp     *dsp.FineTuner
	shiftDown   *dsp.FineTuner
	ifAGC       *dsp.ComplexAGC
	dcBlock     *dsp.DCBlocker
	afAGC       *dsp.RealAGC
	deemph      *dsp.Deemphasis
	resampler   *dsp.RationalResampler

	basebandLevel float64
	ifRMS         float64

	scratchShifted  []complex64
	scratchFiltered []complex64
	scratchBaseband []float64
}

// NewAMDecoder builds a decoder for one of the amplitude-family modes.
func NewAMDecoder(cfg AMConfig) *AMDecoder {
	d := &AMDecoder{cfg: cfg}

	switch cfg.Mode {
	case ModeAM, ModeDSB:
		coeff := dsp.DesignLowpassFIR(128, cfg.Bandwidth, cfg.SampleRateIF)
		d.preFilter = dsp.NewFIRDecimator(coeff, 1)
	case ModeUSB, ModeLSB, ModeWSPR:
		coeff := dsp.DesignLowpassFIR(128, cfg.Bandwidth, cfg.SampleRateIF)
		d.preFilter = dsp.NewFIRDecimator(coeff, 1)
		d.shiftDown = dsp.NewFineTuner(int(cfg.SampleRateIF), -1500)
		d.shiftUp = dsp.NewFineTuner(int(cfg.SampleRateIF), 1500)
	case ModeCW:
		coeff := dsp.DesignLowpassFIR(128, cfg.Bandwidth, cfg.SampleRateIF)
		d.preFilter = dsp.NewFIRDecimator(coeff, 1)
		d.shiftUp = dsp.NewFineTuner(int(cfg.SampleRateIF), 500)
	}

	rate, maxGain := 0.0003, 1000000.0
	if cfg.Mode == ModeCW || cfg.Mode == ModeWSPR {
		rate = 0.0006
	}
	d.ifAGC = dsp.NewComplexAGC(rate, maxGain)

	dcCutoff := 60.0
	d.dcBlock = dsp.NewDCBlocker(dcCutoff, cfg.SampleRateIF)

	afRate, afRef := 0.001, 0.6
	if cfg.Mode == ModeCW || cfg.Mode == ModeWSPR {
		afRate, afRef = 0.00125, 0.24
	} else if cfg.Mode == ModeUSB || cfg.Mode == ModeLSB {
		afRate, afRef = 0.001, 0.24
	}
	d.afAGC = dsp.NewRealAGC(afRate, afRef, 1.5)

	d.deemph = dsp.NewDeemphasis(cfg.DeemphasisTime, cfg.SampleRateIF)
	d.resampler = dsp.NewRationalResampler(cfg.SampleRateIF, cfg.SampleRatePCM, 33, 32)

	return d
}

// Stereo is always false for the amplitude-family modes.
func (d *AMDecoder) Stereo() bool { return false }

// BasebandLevel returns the RMS baseband signal level.
func (d *AMDecoder) BasebandLevel() float64 { return d.basebandLevel }

// IFRMS returns the RMS IF level of the most recently processed block.
func (d *AMDecoder) IFRMS() float64 { return d.ifRMS }

// Process runs one IF sample block through the configured mode's chain.
func (d *AMDecoder) Process(samplesIn []complex64) []float64 {
	iq := samplesIn

	switch d.cfg.Mode {
	case ModeUSB, ModeWSPR:
		if cap(d.scratchShifted) < len(iq) {
			d.scratchShifted = make([]complex64, len(iq))
		}
		shifted := d.scratchShifted[:len(iq)]
		d.shiftDown.Process(shifted, iq)
		d.scratchFiltered = d.preFilter.Process(d.scratchFiltered[:0], shifted)
		d.shiftUp.Process(d.scratchFiltered, d.scratchFiltered)
		iq = d.scratchFiltered
	case ModeLSB:
		if cap(d.scratchShifted) < len(iq) {
			d.scratchShifted = make([]complex64, len(iq))
		}
		shifted := d.scratchShifted[:len(iq)]
		d.shiftUp.Process(shifted, iq) // reuse up-shifter as the LSB up-shift
		d.scratchFiltered = d.preFilter.Process(d.scratchFiltered[:0], shifted)
		d.shiftDown.Process(d.scratchFiltered, d.scratchFiltered)
		iq = d.scratchFiltered
	case ModeCW:
		d.scratchFiltered = d.preFilter.Process(d.scratchFiltered[:0], iq)
		d.shiftUp.Process(d.scratchFiltered, d.scratchFiltered)
		iq = d.scratchFiltered
	default: // AM, DSB
		d.scratchFiltered = d.preFilter.Process(d.scratchFiltered[:0], iq)
		iq = d.scratchFiltered
	}

	iqBuf := make([]complex64, len(iq))
	copy(iqBuf, iq)
	d.ifRMS = d.ifAGC.Process(iqBuf)

	if cap(d.scratchBaseband) < len(iqBuf) {
		d.scratchBaseband = make([]float64, len(iqBuf))
	}
	baseband := d.scratchBaseband[:len(iqBuf)]
	if d.cfg.Mode == ModeAM {
		for i, s := range iqBuf {
			baseband[i] = math.Hypot(float64(real(s)), float64(imag(s)))
		}
	} else {
		for i, s := range iqBuf {
			baseband[i] = float64(real(s))
		}
	}

	var sumSq float64
	for _, v := range baseband {
		sumSq += v * v
	}
	if len(baseband) > 0 {
		d.basebandLevel = 0.95*d.basebandLevel + 0.05*math.Sqrt(sumSq/float64(len(baseband)))
	}

	d.dcBlock.Process(baseband)
	d.afAGC.Process(baseband)
	d.deemph.Process(baseband)

	return d.resampler.Process(nil, baseband)
}
