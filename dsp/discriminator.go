package dsp

// PhaseDiscriminator recovers the instantaneous frequency of an FM signal
// as the angle of the conjugate product of successive I/Q samples, scaled
// so that a full-deviation tone maps to +-1.0. Samples whose magnitude is
// (numerically) zero are treated as a small nonzero placeholder, matching
// the reference implementation's guard against atan2(0,0).
type PhaseDiscriminator struct {
	freqScale float64
	last      complex128
	haveLast  bool
}

// NewPhaseDiscriminator builds a discriminator for a signal with maximum
// frequency deviation maxFreqDev (in units of the sample rate, i.e.
// maxFreqDev = deviation/sampleRate).
func NewPhaseDiscriminator(maxFreqDev float64) *PhaseDiscriminator {
	return &PhaseDiscriminator{freqScale: 1 / (2 * pi * maxFreqDev)}
}

const pi = 3.14159265358979323846

// Process writes the discriminated audio for src into dst (len(dst) ==
// len(src) required).
func (p *PhaseDiscriminator) Process(dst []float64, src []complex64) {
	for i, s := range src {
		cur := complex128(s)
		if real(cur) == 0 && imag(cur) == 0 {
			cur = complex(1e-10, 0)
		}
		if !p.haveLast {
			p.last = cur
			p.haveLast = true
		}
		prod := cur * complexConj(p.last)
		dst[i] = fastAtan2(imag(prod), real(prod)) * p.freqScale
		p.last = cur
	}
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
