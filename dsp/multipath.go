package dsp

// MultipathFilter is a complex-coefficient adaptive FIR equalizer driven by
// a constant-modulus LMS update, used to cancel multipath-induced
// reflections in the post-AGC IF signal before discrimination. The filter
// has 4*stages+1 taps; the tap at index 3*stages+1 is the reference tap and
// is re-pinned to a real value after every coefficient update.
type MultipathFilter struct {
	stages  int
	refTap  int
	coeff   []complex128
	history []complex64
	pos     int
	filled  int
	n       uint64
	errMag  float64
}

// NewMultipathFilter builds an equalizer with the given stage count
// (0 disables the filter entirely; callers should simply not construct one
// in that case).
func NewMultipathFilter(stages int) *MultipathFilter {
	l := 4*stages + 1
	c := make([]complex128, l)
	ref := 3*stages + 1
	c[ref] = complex(1, 0)
	return &MultipathFilter{
		stages:  stages,
		refTap:  ref,
		coeff:   c,
		history: make([]complex64, l),
	}
}

// Error returns the most recent constant-modulus error magnitude.
func (m *MultipathFilter) Error() float64 { return m.errMag }

// Coefficients returns the current tap weights (read-only view).
func (m *MultipathFilter) Coefficients() []complex128 { return m.coeff }

// Process filters samples in place through the adaptive FIR and updates
// coefficients every 4th sample via the constant-modulus-algorithm error.
func (m *MultipathFilter) Process(samples []complex64) {
	l := len(m.coeff)
	for idx, x := range samples {
		m.history[m.pos] = x
		m.pos++
		if m.pos == l {
			m.pos = 0
		}
		if m.filled < l {
			m.filled++
		}

		var y complex128
		if m.filled == l {
			for k := 0; k < l; k++ {
				y += m.coeff[k] * complex128(m.history[(m.pos+k)%l])
			}
		} else {
			y = complex128(x)
		}
		samples[idx] = complex64(y)

		if m.filled == l && m.n&0x03 == 0 {
			const alpha = 0.004
			step := alpha / float64(l)
			mag2 := real(y)*real(y) + imag(y)*imag(y)
			m.errMag = 1 - mag2
			for k := 0; k < l; k++ {
				xk := complex128(m.history[(m.pos+k)%l])
				m.coeff[k] += complex(step*m.errMag, 0) * y * cmplxConjCoeff(xk)
			}
			m.coeff[m.refTap] = complex(real(m.coeff[m.refTap]), 0)
		}
		m.n++
	}
}

func cmplxConjCoeff(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
