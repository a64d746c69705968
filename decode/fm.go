package decode

import (
	"math"

	"github.com/hzradio/fmradion/dsp"
)

// Broadcast FM constants, grounded on the reference decoder's FmDecode.h.
const (
	SampleRateIF   = 384000.0
	SampleRatePCM  = 48000.0
	FreqDeviation  = 75000.0
	BandwidthPCM   = 15000.0
	PilotFreq      = 19000.0
	DeemphasisEU   = 50.0
	DeemphasisNA   = 75.0
)

// FMConfig configures a wide-band FM decoder.
type FMConfig struct {
	FilterEnable    bool
	Stereo          bool
	DeemphasisMicro float64 // 0 disables
	PilotShift      bool
	MultipathStages int
}

// FMDecoder is the complete wide-band FM demodulator: IF pre-filter, IF
// AGC, phase discriminator, pilot PLL + stereo matrixing, multipath
// equalizer, de-emphasis/DC-block and resampling to 48 kHz, grounded on
// the reference decoder's FmDecode class.
type FMDecoder struct {
	cfg FMConfig

	preFilter  *dsp.FIRDecimator
	ifAGC      *dsp.ComplexAGC
	multipath  *dsp.MultipathFilter
	discrim    *dsp.PhaseDiscriminator
	pilotPLL   *dsp.PilotPLL
	pilotCutM  *dsp.FIRAudioFilter
	pilotCutS  *dsp.FIRAudioFilter
	dcBlockM   *dsp.DCBlocker
	dcBlockS   *dsp.DCBlocker
	deemphM    *dsp.Deemphasis
	deemphS    *dsp.Deemphasis
	resamplerM *dsp.RationalResampler
	resamplerS *dsp.RationalResampler

	stereoDetected bool
	basebandMean   float64
	basebandLevel  float64
	ifRMS          float64

	scratchFiltered []complex64
	scratchBaseband []float64
	scratchStereo   []float64
	scratchRef      []float64
	scratchMono     []float64
	scratchRightRaw []float64
}

// NewFMDecoder builds a wide-band FM decoder.
func NewFMDecoder(cfg FMConfig) *FMDecoder {
	d := &FMDecoder{cfg: cfg}

	coeff := dsp.DesignLowpassFIR(128, FreqDeviation+BandwidthPCM, SampleRateIF)
	d.preFilter = dsp.NewFIRDecimator(coeff, 1)

	d.ifAGC = dsp.NewComplexAGC(0.0003, 1000000.0)
	d.discrim = dsp.NewPhaseDiscriminator(FreqDeviation / SampleRateIF)

	if cfg.Stereo {
		d.pilotPLL = dsp.NewPilotPLL(SampleRateIF)
		d.pilotPLL.SetPilotShift(cfg.PilotShift)
		pilotCutCoeff := dsp.DesignLowpassFIR(64, BandwidthPCM, SampleRateIF)
		d.pilotCutM = dsp.NewFIRAudioFilter(pilotCutCoeff)
		d.pilotCutS = dsp.NewFIRAudioFilter(pilotCutCoeff)
	}

	if cfg.MultipathStages > 0 {
		d.multipath = dsp.NewMultipathFilter(cfg.MultipathStages)
	}

	d.dcBlockM = dsp.NewDCBlocker(30, SampleRatePCM)
	d.dcBlockS = dsp.NewDCBlocker(30, SampleRatePCM)
	d.deemphM = dsp.NewDeemphasis(cfg.DeemphasisMicro, SampleRatePCM)
	d.deemphS = dsp.NewDeemphasis(cfg.DeemphasisMicro, SampleRatePCM)

	d.resamplerM = dsp.NewRationalResampler(SampleRateIF, SampleRatePCM, 33, 32)
	if cfg.Stereo {
		d.resamplerS = dsp.NewRationalResampler(SampleRateIF, SampleRatePCM, 33, 32)
	}

	return d
}

// Stereo reports whether this decoder is configured for stereo output.
func (d *FMDecoder) Stereo() bool { return d.cfg.Stereo }

// StereoDetected reports whether a pilot tone was detected in the most
// recently processed block.
func (d *FMDecoder) StereoDetected() bool { return d.stereoDetected }

// TuningOffset returns the actual frequency offset in Hz relative to the
// receiver LO, estimated from the discriminator's DC component.
func (d *FMDecoder) TuningOffset() float64 { return d.basebandMean * FreqDeviation }

// BasebandLevel returns the RMS baseband signal level (nominal 0.707).
func (d *FMDecoder) BasebandLevel() float64 { return d.basebandLevel }

// IFRMS returns the RMS IF level, smoothed across blocks by an exponential
// moving average (weight 0.05 for each new block).
func (d *FMDecoder) IFRMS() float64 { return d.ifRMS }

// PilotLevel returns the pilot PLL's current amplitude estimate.
func (d *FMDecoder) PilotLevel() float64 {
	if d.pilotPLL == nil {
		return 0
	}
	return d.pilotPLL.PilotLevel()
}

// TakePPSEvents returns PPS events produced by the most recent Process
// call.
func (d *FMDecoder) TakePPSEvents() []dsp.PPSEvent {
	if d.pilotPLL == nil {
		return nil
	}
	return d.pilotPLL.TakePPSEvents()
}

// Process runs one IF sample block through the full FM chain, returning
// audio samples (interleaved L/R if Stereo()).
func (d *FMDecoder) Process(samplesIn []complex64) []float64 {
	iq := samplesIn
	if d.cfg.FilterEnable {
		d.scratchFiltered = d.preFilter.Process(d.scratchFiltered[:0], samplesIn)
		iq = d.scratchFiltered
	}

	iqBuf := make([]complex64, len(iq))
	copy(iqBuf, iq)
	rms := d.ifAGC.Process(iqBuf)
	d.ifRMS = 0.95*d.ifRMS + 0.05*rms

	if d.multipath != nil {
		d.multipath.Process(iqBuf)
	}

	if cap(d.scratchBaseband) < len(iqBuf) {
		d.scratchBaseband = make([]float64, len(iqBuf))
	}
	baseband := d.scratchBaseband[:len(iqBuf)]
	d.discrim.Process(baseband, iqBuf)

	var sum float64
	var sumSq float64
	for _, v := range baseband {
		sum += v
		sumSq += v * v
	}
	if len(baseband) > 0 {
		mean := sum / float64(len(baseband))
		d.basebandMean = 0.95*d.basebandMean + 0.05*mean
		d.basebandLevel = 0.95*d.basebandLevel + 0.05*math.Sqrt(sumSq/float64(len(baseband)))
	}

	if !d.cfg.Stereo {
		mono := d.resamplerM.Process(nil, baseband)
		d.dcBlockM.Process(mono)
		d.deemphM.Process(mono)
		return mono
	}

	if cap(d.scratchRef) < len(baseband) {
		d.scratchRef = make([]float64, len(baseband))
	}
	ref := d.scratchRef[:len(baseband)]
	d.pilotPLL.Process(ref, baseband)
	d.stereoDetected = d.pilotPLL.Locked()

	if cap(d.scratchStereo) < len(baseband) {
		d.scratchStereo = make([]float64, len(baseband))
	}
	stereo := d.scratchStereo[:len(baseband)]
	for i := range baseband {
		stereo[i] = baseband[i] * ref[i] * 1.17
	}
	d.pilotCutM.Process(baseband)
	d.pilotCutS.Process(stereo)

	mono := d.resamplerM.Process(nil, baseband)
	var side []float64
	if d.stereoDetected {
		side = d.resamplerS.Process(nil, stereo)
	} else {
		side = make([]float64, len(mono))
	}

	d.dcBlockM.Process(mono)
	d.dcBlockS.Process(side)
	d.deemphM.Process(mono)
	d.deemphS.Process(side)

	n := len(mono)
	if len(side) < n {
		n = len(side)
	}
	out := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		out[2*i] = mono[i] + side[i]
		out[2*i+1] = mono[i] - side[i]
	}
	return out
}
