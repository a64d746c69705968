package dsp

// RationalResampler converts between arbitrary input and output sample
// rates using linear-phase polyphase interpolation followed by rational
// decimation, tracking a fractional phase accumulator across calls so an
// arbitrarily split input stream resamples identically to one delivered in
// a single block. This is an original design: the reference decoder wraps
// a third-party C++ resampling library (r8b::CDSPResampler) that has no Go
// port, so only the architectural contract — arbitrary ratio,
// MaxInputLength, and (for I/Q) two instances that must agree sample-for-
// sample — is reproduced here, not any internal algorithm of r8b.
type RationalResampler struct {
	ratio   float64 // outputRate / inputRate
	taps    int
	coeff   []float32 // Lanczos-windowed sinc interpolation prototype, oversampled by phases
	phases  int
	history []float64 // zero before the first input
	pos     int
	accum   float64 // input samples until the next output is due; an output is emitted while it is below 1
}

// MaxInputLength bounds how many input samples a single Process call
// should be given, matching the reference resampler's documented limit so
// callers can size their block pipeline identically.
const MaxInputLength = 65536

// NewRationalResampler builds a resampler for the given rate ratio. taps
// sets the interpolation filter length (use an odd number, e.g. 33);
// phases sets the polyphase table's sub-sample resolution.
func NewRationalResampler(inputRate, outputRate float64, taps, phases int) *RationalResampler {
	if taps%2 == 0 {
		taps++
	}
	r := &RationalResampler{
		ratio:   outputRate / inputRate,
		taps:    taps,
		phases:  phases,
		history: make([]float64, taps),
	}
	r.buildTable()
	return r
}

func (r *RationalResampler) buildTable() {
	n := r.taps * r.phases
	cutoff := 0.5
	if r.ratio < 1 {
		cutoff *= r.ratio
	}
	r.coeff = DesignLowpassFIR(n-1, cutoff, float64(r.phases))
}

// Latency reports the resampler's group delay in input samples.
func (r *RationalResampler) Latency() int {
	return (r.taps / 2)
}

// Process resamples src (real-valued) and appends the result to dst.
func (r *RationalResampler) Process(dst []float64, src []float64) []float64 {
	for _, x := range src {
		r.history[r.pos] = x
		r.pos++
		if r.pos == r.taps {
			r.pos = 0
		}
		for r.accum < 1 {
			dst = append(dst, r.interpolate(r.accum))
			r.accum += 1 / r.ratio
		}
		r.accum -= 1
	}
	return dst
}

func (r *RationalResampler) interpolate(frac float64) float64 {
	phase := int(frac * float64(r.phases))
	if phase >= r.phases {
		phase = r.phases - 1
	}
	var acc float64
	for k := 0; k < r.taps; k++ {
		c := r.coeff[k*r.phases+phase]
		acc += float64(c) * r.history[(r.pos+k)%r.taps]
	}
	return acc
}
