package testutil

import "testing"

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2.05}, 0.1)
	RequireWithin(t, "freq", 440.4, 440, 0.5)
	RequireFinite(t, []float64{0, -1, 1e300})
}
