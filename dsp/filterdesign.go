package dsp

import "math"

// DesignLowpassFIR builds a symmetric low-pass FIR coefficient vector using
// a Lanczos-windowed sinc, the same filter family the reference decoder
// generates its static tables from. cutoff and sampleRate are in Hz; order
// is the number of taps minus one (must be even so the filter has the
// expected integer group delay and a single centre tap).
//
// This replaces the original's literal per-mode coefficient tables with a
// generator: the tables were themselves Lanczos-windowed-sinc designs baked
// in at build time, so reproducing the generator gives the same filter
// family without committing 40+ magic constants to source.
func DesignLowpassFIR(order int, cutoff, sampleRate float64) []float32 {
	if order%2 != 0 {
		order++
	}
	n := order + 1
	h := make([]float64, n)
	fc := cutoff / sampleRate
	centre := float64(order) / 2
	var sum float64
	for i := 0; i < n; i++ {
		x := float64(i) - centre
		h[i] = 2 * fc * sinc(2*fc*x) * sinc(x/centre)
		sum += h[i]
	}
	out := make([]float32, n)
	for i, v := range h {
		out[i] = float32(v / sum)
	}
	return out
}

// DesignBandpassFIR builds a symmetric FIR band-pass filter by modulating a
// low-pass prototype of the given half-bandwidth up to centreFreq.
func DesignBandpassFIR(order int, centreFreq, halfBandwidth, sampleRate float64) []float32 {
	lp := DesignLowpassFIR(order, halfBandwidth, sampleRate)
	n := len(lp)
	centre := float64(n-1) / 2
	out := make([]float32, n)
	w := 2 * math.Pi * centreFreq / sampleRate
	for i, v := range lp {
		x := float64(i) - centre
		out[i] = float32(float64(v) * 2 * math.Cos(w*x))
	}
	return out
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

