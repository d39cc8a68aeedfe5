//go:build !fastmath

package pitch

import "math"

// semitones returns the equal-tempered distance of a frequency ratio.
func semitones(ratio float64) float64 {
	return 12 * math.Log2(ratio)
}

func semitoneRatio(st float64) float64 {
	return math.Exp2(st / 12)
}
