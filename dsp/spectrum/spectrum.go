package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
//
// All three slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// LogBars writes log(1+m) of each magnitude into dst, normalised so the
// largest bar is 1. Negative magnitudes count as zero. When every magnitude
// is zero dst is zeroed. dst and mag must have the same length.
func LogBars(dst, mag []float64) {
	if len(dst) != len(mag) {
		panic("spectrum: LogBars length mismatch")
	}

	peak := 0.0
	for i, m := range mag {
		if m < 0 {
			m = 0
		}
		dst[i] = math.Log1p(m)
		if dst[i] > peak {
			peak = dst[i]
		}
	}

	if peak <= 0 {
		clear(dst)
		return
	}

	vecmath.ScaleBlock(dst, dst, 1/peak)
}
