package dsp

// FIRDecimator is a symmetric-tap FIR low-pass filter with an optional
// integer decimation factor, operating on complex I/Q samples. It keeps a
// ring buffer of the last len(coeff) input samples (zero before the first
// input, so output starts with the first sample) so that filter state
// carries across calls to Process exactly as it would across an unbroken
// stream.
type FIRDecimator struct {
	coeff   []float32
	decim   int
	history []complex64 // ring buffer, length len(coeff)
	pos     int
	phase   int // decimation phase, carried across Process calls
}

// NewFIRDecimator builds a decimator from coeff (symmetric, i.e.
// coeff[k] == coeff[len(coeff)-1-k]) and decimation factor decim (>=1).
func NewFIRDecimator(coeff []float32, decim int) *FIRDecimator {
	if decim < 1 {
		decim = 1
	}
	return &FIRDecimator{
		coeff:   coeff,
		decim:   decim,
		history: make([]complex64, len(coeff)),
	}
}

// GroupDelay returns the filter's group delay in input samples.
func (d *FIRDecimator) GroupDelay() int {
	return (len(d.coeff) - 1) / 2
}

// Process filters src and appends every decim-th output sample to dst
// (reusing dst's backing array when it has capacity), returning the
// extended slice.
func (d *FIRDecimator) Process(dst []complex64, src []complex64) []complex64 {
	m := len(d.coeff)
	half := m / 2
	symmetric := m%2 == 1
	for _, x := range src {
		d.history[d.pos] = x
		d.pos++
		if d.pos == m {
			d.pos = 0
		}
		if d.phase%d.decim == 0 {
			var acc complex64
			if symmetric {
				for k := 0; k < half; k++ {
					a := d.history[(d.pos+k)%m]
					b := d.history[(d.pos+m-1-k)%m]
					acc += complex(d.coeff[k], 0) * (a + b)
				}
				acc += complex(d.coeff[half], 0) * d.history[(d.pos+half)%m]
			} else {
				for k := 0; k < m; k++ {
					acc += complex(d.coeff[k], 0) * d.history[(d.pos+k)%m]
				}
			}
			dst = append(dst, acc)
		}
		d.phase++
		if d.phase == d.decim {
			d.phase = 0
		}
	}
	return dst
}
