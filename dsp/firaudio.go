package dsp

// FIRAudioFilter is the real-valued counterpart of FIRDecimator, used for
// low-pass/band-pass filtering of real baseband (e.g. the stereo pilot-cut
// filter and the NBFM audio filter) where no decimation is needed.
type FIRAudioFilter struct {
	coeff   []float32
	history []float64
	pos     int
	filled  int
}

// NewFIRAudioFilter builds a filter from a symmetric coefficient vector.
func NewFIRAudioFilter(coeff []float32) *FIRAudioFilter {
	return &FIRAudioFilter{coeff: coeff, history: make([]float64, len(coeff))}
}

// GroupDelay returns the filter's group delay in samples.
func (f *FIRAudioFilter) GroupDelay() int {
	return (len(f.coeff) - 1) / 2
}

// Process filters src in place, returning it.
func (f *FIRAudioFilter) Process(samples []float64) []float64 {
	m := len(f.coeff)
	half := m / 2
	symmetric := m%2 == 1
	for i, x := range samples {
		f.history[f.pos] = x
		f.pos++
		if f.pos == m {
			f.pos = 0
		}
		if f.filled < m {
			f.filled++
		}
		if f.filled < m {
			samples[i] = 0
			continue
		}
		var acc float64
		if symmetric {
			for k := 0; k < half; k++ {
				a := f.history[(f.pos+k)%m]
				b := f.history[(f.pos+m-1-k)%m]
				acc += float64(f.coeff[k]) * (a + b)
			}
			acc += float64(f.coeff[half]) * f.history[(f.pos+half)%m]
		} else {
			for k := 0; k < m; k++ {
				acc += float64(f.coeff[k]) * f.history[(f.pos+k)%m]
			}
		}
		samples[i] = acc
	}
	return samples
}
