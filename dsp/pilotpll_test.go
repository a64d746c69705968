package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func synthesizePilot(n int, sampleRate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = 0.1 * math.Sin(2*math.Pi*19000*t)
	}
	return out
}

func TestPilotPLLLocksOntoCleanPilotTone(t *testing.T) {
	const sampleRate = 384000.0
	pll := NewPilotPLL(sampleRate)

	// lockDelay = 15/bandwidth = 15*sampleRate/30 = 192000 samples (0.5s) of
	// continuous lock-counting before Locked() goes true; give it margin.
	pilot := synthesizePilot(int(sampleRate*0.6), sampleRate)
	ref := make([]float64, len(pilot))
	pll.Process(ref, pilot)

	assert.True(t, pll.Locked(), "PLL should acquire lock on a clean, strong 19kHz tone within 600ms")
}

func TestPilotPLLStaysUnlockedBelowMinSignal(t *testing.T) {
	const sampleRate = 384000.0
	pll := NewPilotPLL(sampleRate)

	silence := make([]float64, int(sampleRate*0.05))
	ref := make([]float64, len(silence))
	pll.Process(ref, silence)

	assert.False(t, pll.Locked())
}

func TestPilotPLLPilotShiftTogglesReferencePhase(t *testing.T) {
	const sampleRate = 384000.0
	pll := NewPilotPLL(sampleRate)
	pilot := synthesizePilot(2000, sampleRate)

	refSin := make([]float64, len(pilot))
	pll.Process(refSin, pilot)

	pll2 := NewPilotPLL(sampleRate)
	pll2.SetPilotShift(true)
	refCos := make([]float64, len(pilot))
	pll2.Process(refCos, pilot)

	assert.NotEqual(t, refSin[len(refSin)-1], refCos[len(refCos)-1])
}
