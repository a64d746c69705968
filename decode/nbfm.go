package decode

import (
	"math"

	"github.com/hzradio/fmradion/dsp"
)

// NBFMDecoder demodulates narrow-band FM (e.g. ham/PMR voice channels),
// grounded on the reference decoder's NbfmDecode: filter, measure IF RMS,
// IF AGC, phase discriminator, baseband-level EMA, audio FIR, fixed gain
// trim, mono output only (no stereo, no pilot, no multipath).
type NBFMDecoder struct {
	sampleRateIF  float64
	sampleRatePCM float64
	deviation     float64

	preFilter   *dsp.FIRDecimator
	ifAGC       *dsp.ComplexAGC
	discrim     *dsp.PhaseDiscriminator
	audioFilter *dsp.FIRAudioFilter
	resampler   *dsp.RationalResampler

	basebandLevel float64
	ifRMS         float64

	scratchFiltered []complex64
	scratchBaseband []float64
}

// NBFMConfig configures a narrow-band FM decoder.
type NBFMConfig struct {
	SampleRateIF   float64
	SampleRatePCM  float64
	Deviation      float64 // full-scale deviation, e.g. 2500 Hz
	AudioBandwidth float64 // e.g. 3000 Hz
}

// NewNBFMDecoder builds a narrow-band FM decoder.
func NewNBFMDecoder(cfg NBFMConfig) *NBFMDecoder {
	d := &NBFMDecoder{
		sampleRateIF:  cfg.SampleRateIF,
		sampleRatePCM: cfg.SampleRatePCM,
		deviation:     cfg.Deviation,
	}
	coeff := dsp.DesignLowpassFIR(96, cfg.Deviation+cfg.AudioBandwidth, cfg.SampleRateIF)
	d.preFilter = dsp.NewFIRDecimator(coeff, 1)
	d.ifAGC = dsp.NewComplexAGC(0.0003, 1000000.0)
	d.discrim = dsp.NewPhaseDiscriminator(cfg.Deviation / cfg.SampleRateIF)
	audioCoeff := dsp.DesignLowpassFIR(64, cfg.AudioBandwidth, cfg.SampleRateIF)
	d.audioFilter = dsp.NewFIRAudioFilter(audioCoeff)
	d.resampler = dsp.NewRationalResampler(cfg.SampleRateIF, cfg.SampleRatePCM, 33, 32)
	return d
}

// Stereo is always false for NBFM.
func (d *NBFMDecoder) Stereo() bool { return false }

// BasebandLevel returns the RMS baseband signal level.
func (d *NBFMDecoder) BasebandLevel() float64 { return d.basebandLevel }

// IFRMS returns the RMS IF level, smoothed across blocks by an exponential
// moving average (weight 0.05 for each new block).
func (d *NBFMDecoder) IFRMS() float64 { return d.ifRMS }

// Process runs one IF sample block through the NBFM chain.
func (d *NBFMDecoder) Process(samplesIn []complex64) []float64 {
	d.scratchFiltered = d.preFilter.Process(d.scratchFiltered[:0], samplesIn)

	iqBuf := make([]complex64, len(d.scratchFiltered))
	copy(iqBuf, d.scratchFiltered)
	rms := d.ifAGC.Process(iqBuf)
	d.ifRMS = 0.95*d.ifRMS + 0.05*rms

	if cap(d.scratchBaseband) < len(iqBuf) {
		d.scratchBaseband = make([]float64, len(iqBuf))
	}
	baseband := d.scratchBaseband[:len(iqBuf)]
	d.discrim.Process(baseband, iqBuf)

	var sumSq float64
	for _, v := range baseband {
		sumSq += v * v
	}
	if len(baseband) > 0 {
		d.basebandLevel = 0.95*d.basebandLevel + 0.05*math.Sqrt(sumSq/float64(len(baseband)))
	}

	d.audioFilter.Process(baseband)
	const gainTrim = 0.7079457843841380 // 10^(-3/20), matching NbfmDecode's fixed trim
	for i := range baseband {
		baseband[i] *= gainTrim
	}

	return d.resampler.Process(nil, baseband)
}
