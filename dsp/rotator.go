package dsp

// QuarterRateRotator implements the branchless Fs/4 downconversion trick:
// multiplying a sample stream by exp(-j*2*pi*n/4) cycles through the four
// values {1, -j, -1, j}, each of which only swaps and/or negates the real
// and imaginary parts, so no trigonometry or multiplication is needed per
// sample.
type QuarterRateRotator struct {
	phase int // 0..3
	up    bool
}

// NewQuarterRateRotator creates a rotator. up selects upconversion
// (multiply by exp(+j*2*pi*n/4)) instead of the default downconversion.
func NewQuarterRateRotator(up bool) *QuarterRateRotator {
	return &QuarterRateRotator{up: up}
}

// Process rotates src into dst, which may alias src.
func (r *QuarterRateRotator) Process(dst, src []complex64) {
	if r.up {
		r.processUp(dst, src)
		return
	}
	for i, s := range src {
		re, im := real(s), imag(s)
		switch r.phase {
		case 0:
			dst[i] = complex(re, im)
		case 1:
			dst[i] = complex(im, -re)
		case 2:
			dst[i] = complex(-re, -im)
		case 3:
			dst[i] = complex(-im, re)
		}
		r.phase = (r.phase + 1) & 3
	}
}

func (r *QuarterRateRotator) processUp(dst, src []complex64) {
	for i, s := range src {
		re, im := real(s), imag(s)
		switch r.phase {
		case 0:
			dst[i] = complex(re, im)
		case 1:
			dst[i] = complex(-im, re)
		case 2:
			dst[i] = complex(-re, -im)
		case 3:
			dst[i] = complex(im, -re)
		}
		r.phase = (r.phase + 1) & 3
	}
}

// Reset returns the rotator to its initial phase, so the next sample is
// rotated as if by a freshly constructed rotator.
func (r *QuarterRateRotator) Reset() {
	r.phase = 0
}
