package dsp

import "math"

// fastAtan2 is a rational-polynomial approximation of atan2, grounded on
// the reference decoder's fastatan2.h: it trades a small amount of
// accuracy for avoiding a full atan2 call on the per-sample hot path of the
// phase discriminator and pilot PLL phase detector.
func fastAtan2(y, x float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	var angle float64
	absX, absY := math.Abs(x), math.Abs(y)
	if absX >= absY {
		z := absY / absX
		angle = z / (1 + 0.28125*z*z)
	} else {
		z := absX / absY
		angle = math.Pi/2 - z/(1+0.28125*z*z)
	}
	if x < 0 {
		angle = math.Pi - angle
	}
	if y < 0 {
		return -angle
	}
	return angle
}
