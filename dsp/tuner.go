// Package dsp implements the signal-processing building blocks shared by
// every demodulator: fine tuning, decimation, resampling, AGC, the
// pilot-tone PLL, the multipath equalizer and the de-emphasis/DC-block
// filters. Every type here owns its own state and is safe to call from a
// single goroutine only — callers that need concurrency should run one
// decoder per goroutine rather than share a *FineTuner etc.
package dsp

import "math"

// FineTuner applies a phase-continuous frequency shift to a stream of I/Q
// samples by multiplying each sample with the next entry of a precomputed
// table of N complex exponentials. Because the table wraps every N samples,
// the shift is exactly periodic; phase is preserved across calls to
// SetFreqShift by carrying the table's current angle forward into the
// rebuilt table.
type FineTuner struct {
	table []complex128
	index int
}

// NewFineTuner builds a fine tuner that shifts the input by shiftSteps/n of
// the sample rate, using a table of n entries.
func NewFineTuner(n int, shiftSteps int) *FineTuner {
	t := &FineTuner{}
	t.rebuild(n, shiftSteps, 0)
	return t
}

func (f *FineTuner) rebuild(n int, shiftSteps int, phase0 float64) {
	table := make([]complex128, n)
	for i := 0; i < n; i++ {
		angle := phase0 + 2*math.Pi*float64(shiftSteps)*float64(i)/float64(n)
		table[i] = complex(math.Cos(angle), math.Sin(angle))
	}
	f.table = table
	f.index = 0
}

// SetFreqShift reconfigures the tuner for a new shiftSteps/n ratio while
// preserving the instantaneous phase already accumulated, so retuning does
// not introduce a phase discontinuity at the boundary sample.
func (f *FineTuner) SetFreqShift(n int, shiftSteps int) {
	var phase0 float64
	if len(f.table) > 0 {
		cur := f.table[f.index%len(f.table)]
		phase0 = math.Atan2(imag(cur), real(cur))
	}
	f.rebuild(n, shiftSteps, phase0)
}

// Process multiplies src by the tuner's rotating phasor and writes the
// result to dst, which must be at least len(src) long. dst and src may
// alias.
func (f *FineTuner) Process(dst, src []complex64) {
	n := len(f.table)
	for i, s := range src {
		dst[i] = complex64(complex128(s) * f.table[f.index])
		f.index++
		if f.index == n {
			f.index = 0
		}
	}
}
