package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultipathFilterReferenceTapStaysReal(t *testing.T) {
	m := NewMultipathFilter(2)
	src := make([]complex64, 400)
	for i := range src {
		src[i] = complex(float32(1), float32(0.3))
	}
	m.Process(src)

	coeffs := m.Coefficients()
	refTap := coeffs[3*2+1]
	assert.Equal(t, 0.0, imag(refTap), "reference tap must be re-pinned to a real value after every update")
}

func TestMultipathFilterPassesUnitModulusSignalNearUnchanged(t *testing.T) {
	m := NewMultipathFilter(1)
	n := 2000
	src := make([]complex64, n)
	for i := range src {
		src[i] = complex(1, 0)
	}
	m.Process(src)

	tail := src[n-1]
	mag := real(tail)*real(tail) + imag(tail)*imag(tail)
	assert.InDelta(t, 1.0, mag, 0.3, "CMA equalizer should converge a clean unit-modulus input toward unit power")
}

func TestMultipathFilterLengthMatchesStageFormula(t *testing.T) {
	m := NewMultipathFilter(3)
	assert.Len(t, m.Coefficients(), 4*3+1)
}
