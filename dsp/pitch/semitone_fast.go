//go:build fastmath

package pitch

import (
	"github.com/meko-christian/algo-approx"
)

const (
	semitonesPerNeper = 17.312340490667562   // 12 / ln 2
	nepersPerSemitone = 0.057762265046662105 // ln 2 / 12
)

// semitones returns the equal-tempered distance of a frequency ratio.
func semitones(ratio float64) float64 {
	return approx.FastLog(ratio) * semitonesPerNeper
}

func semitoneRatio(st float64) float64 {
	return approx.FastExp(st * nepersPerSemitone)
}
