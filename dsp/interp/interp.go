package interp

import "math"

// Parabolic returns the offset of the vertex of the parabola through
// (-1, y1), (0, y2), (1, y3), relative to the middle point:
//
//	delta = 0.5·(y1−y3)/(y1−2·y2+y3)
//
// A zero denominator yields 0 and the result is clamped to [-1, 1].
func Parabolic(y1, y2, y3 float64) float64 {
	den := y1 - 2*y2 + y3
	if den == 0 {
		return 0
	}

	delta := 0.5 * (y1 - y3) / den
	switch {
	case delta > 1:
		return 1
	case delta < -1:
		return -1
	case math.IsNaN(delta):
		return 0
	}

	return delta
}
