package dsp

import "math"

// biquad is a Direct-Form-2 second-order IIR section used here as the
// phasor low-pass inside the pilot PLL, grounded on the reference
// decoder's PilotPhaseLock: two real poles, unity gain at DC, applied to
// the pilot-mixed I and Q products.
type biquad struct {
	b0, a1, a2 float64
	z1, z2     float64
}

func (b *biquad) process(x float64) float64 {
	y := x - b.a1*b.z1 - b.a2*b.z2
	out := b.b0 * y
	b.z2 = b.z1
	b.z1 = y
	return out
}

// PPSEvent marks a pulse-per-second boundary in the pilot PLL's free-
// running 19 kHz cycle counter.
type PPSEvent struct {
	PPSIndex      uint64
	SampleIndex   uint64
	BlockPosition float64
}

// PilotPLL is a 4th-order type-2 phase-locked loop that tracks the 19 kHz
// stereo pilot tone and emits a phase-continuous 38 kHz reference plus PPS
// events once every 19000 pilot cycles, gated on the loop holding lock.
//
// Constants are grounded on PilotPhaseLock.cpp: pilot_frequency=19000,
// sample_rate_if=384000, bandwidth=30/sample_rate_if, minsignal=0.001.
type PilotPLL struct {
	sampleRate float64
	minSignal  float64
	pilotShift bool

	freq  float64 // rad/sample
	phase float64 // rad
	phaseErrGain,
	freqErrGain float64

	biquadI, biquadQ biquad
	loopB0, loopB1   float64
	loopZ1           float64

	pilotLevel  float64
	lockDelay   int
	lockCounter int
	locked      bool

	sampleCounter uint64
	cycleCounter  float64
	pendingPPS    []PPSEvent
}

// NewPilotPLL builds a pilot PLL for the given IF sample rate.
func NewPilotPLL(sampleRate float64) *PilotPLL {
	const pilotFreq = 19000.0
	bandwidth := 30.0 / sampleRate

	p := &PilotPLL{
		sampleRate: sampleRate,
		minSignal:  0.001,
		freq:       2 * math.Pi * pilotFreq / sampleRate,
	}

	// Biquad phasor low-pass: two conjugate real poles derived from the
	// loop bandwidth, applied identically to both the I and Q phase
	// detector products.
	p1 := math.Exp(-1.146 * 2 * math.Pi * bandwidth)
	p2 := math.Exp(-5.331 * 2 * math.Pi * bandwidth)
	a1 := -(p1 + p2)
	a2 := p1 * p2
	b0 := 1 + a1 + a2
	p.biquadI = biquad{b0: b0, a1: a1, a2: a2}
	p.biquadQ = biquad{b0: b0, a1: a1, a2: a2}

	// First-order loop filter.
	q := math.Exp(-0.1153 * 2 * math.Pi * bandwidth)
	p.loopB0 = 0.62 * 2 * math.Pi * bandwidth
	p.loopB1 = -p.loopB0 * q

	p.lockDelay = int(15.0 / bandwidth)
	return p
}

// SetPilotShift selects cos(2*phase) instead of sin(2*phase) for the
// recovered 38 kHz reference, used to probe multipath distortion.
func (p *PilotPLL) SetPilotShift(shift bool) { p.pilotShift = shift }

// Locked reports whether the loop currently holds lock.
func (p *PilotPLL) Locked() bool { return p.locked }

// PilotLevel returns the running estimate of pilot amplitude (nominal 0.1).
func (p *PilotPLL) PilotLevel() float64 { return p.pilotLevel }

// TakePPSEvents returns and clears any PPS events produced by the most
// recent Process call.
func (p *PilotPLL) TakePPSEvents() []PPSEvent {
	ev := p.pendingPPS
	p.pendingPPS = nil
	return ev
}

// Process runs the PLL over a 19 kHz-pilot baseband signal (the stereo
// composite, typically after pilot-band FIR isolation) and writes the
// recovered 38 kHz phase reference (sin or cos of 2*phase depending on
// SetPilotShift) to refOut, one sample per input sample.
func (p *PilotPLL) Process(refOut []float64, pilotBand []float64) {
	for i, x := range pilotBand {
		s, c := math.Sin(p.phase), math.Cos(p.phase)
		qDet := x * s
		iDet := x * c

		iFilt := p.biquadI.process(iDet)
		qFilt := p.biquadQ.process(qDet)

		level := math.Hypot(iFilt, qFilt)
		if level < p.minSignal {
			level = p.minSignal
		}
		if p.pilotLevel == 0 {
			p.pilotLevel = level
		} else {
			p.pilotLevel = math.Min(p.pilotLevel, level)
		}

		phaseErr := fastAtan2(qFilt, iFilt)

		loopOut := p.loopB0*phaseErr + p.loopB1*p.loopZ1
		p.loopZ1 = phaseErr

		p.freq += loopOut
		const maxFreqDev = 2 * math.Pi * 30.0
		base := 2 * math.Pi * 19000.0 / p.sampleRate
		if p.freq > base+maxFreqDev/p.sampleRate {
			p.freq = base + maxFreqDev/p.sampleRate
		}
		if p.freq < base-maxFreqDev/p.sampleRate {
			p.freq = base - maxFreqDev/p.sampleRate
		}

		p.phase += p.freq
		for p.phase > math.Pi {
			p.phase -= 2 * math.Pi
			p.cycleCounter++ // one full pilot cycle completed
		}
		for p.phase < -math.Pi {
			p.phase += 2 * math.Pi
		}

		wasLocked := p.locked
		if 2*p.pilotLevel > p.minSignal {
			if p.lockCounter < p.lockDelay {
				p.lockCounter++
			} else {
				p.locked = true
			}
		} else {
			p.lockCounter = 0
			p.locked = false
		}

		refPhase := 2 * p.phase
		if p.pilotShift {
			refOut[i] = math.Cos(refPhase)
		} else {
			refOut[i] = math.Sin(refPhase)
		}

		if p.cycleCounter >= 19000 {
			p.cycleCounter -= 19000
			if wasLocked && p.locked {
				p.pendingPPS = append(p.pendingPPS, PPSEvent{
					PPSIndex:      uint64(len(p.pendingPPS)) + p.ppsSeq(),
					SampleIndex:   p.sampleCounter,
					BlockPosition: float64(i),
				})
			}
		}
		p.sampleCounter++
	}
}

func (p *PilotPLL) ppsSeq() uint64 {
	return p.sampleCounter / 19000
}
