package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFastAtan2ApproximatesMathAtan2(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := rapid.Float64Range(-10, 10).Draw(t, "y")
		x := rapid.Float64Range(-10, 10).Draw(t, "x")
		if x == 0 && y == 0 {
			return
		}
		got := fastAtan2(y, x)
		want := math.Atan2(y, x)
		assert.InDelta(t, want, got, 0.01, "fast atan2 approximation must stay within the reference decoder's documented error bound")
	})
}

func TestFastAtan2MatchesKnownAngles(t *testing.T) {
	cases := []struct{ y, x, want float64 }{
		{0, 1, 0},
		{1, 0, math.Pi / 2},
		{0, -1, math.Pi},
		{-1, 0, -math.Pi / 2},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, fastAtan2(c.y, c.x), 0.01)
	}
}
