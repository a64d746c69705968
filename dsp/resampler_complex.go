package dsp

// ComplexResampler runs two RationalResampler instances in lockstep, one
// over the real part and one over the imaginary part of an I/Q stream.
// Because both share identical configuration and receive identical input
// lengths every call, their output lengths are guaranteed to agree; a
// mismatch indicates a broken invariant elsewhere and is a programmer
// error, not a recoverable condition.
type ComplexResampler struct {
	i, q *RationalResampler
	ibuf []float64
	qbuf []float64
}

// NewComplexResampler builds a lockstep I/Q resampler.
func NewComplexResampler(inputRate, outputRate float64, taps, phases int) *ComplexResampler {
	return &ComplexResampler{
		i: NewRationalResampler(inputRate, outputRate, taps, phases),
		q: NewRationalResampler(inputRate, outputRate, taps, phases),
	}
}

// Latency reports the group delay in input samples (same for both rails).
func (c *ComplexResampler) Latency() int {
	return c.i.Latency()
}

// Process resamples src and appends the result to dst.
func (c *ComplexResampler) Process(dst []complex64, src []complex64) []complex64 {
	c.ibuf = c.ibuf[:0]
	c.qbuf = c.qbuf[:0]
	for _, s := range src {
		c.ibuf = append(c.ibuf, float64(real(s)))
		c.qbuf = append(c.qbuf, float64(imag(s)))
	}
	outI := c.i.Process(nil, c.ibuf)
	outQ := c.q.Process(nil, c.qbuf)
	if len(outI) != len(outQ) {
		panic("dsp: complex resampler I/Q rails desynchronized")
	}
	for k := range outI {
		dst = append(dst, complex(float32(outI[k]), float32(outQ[k])))
	}
	return dst
}
