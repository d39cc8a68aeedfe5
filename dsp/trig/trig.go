package trig

import "math"

// Source evaluates sine and cosine in radians.
type Source interface {
	Sin(x float64) float64
	Cos(x float64) float64
}

// Std evaluates with the math package.
type Std struct{}

// Sin returns math.Sin(x).
func (Std) Sin(x float64) float64 { return math.Sin(x) }

// Cos returns math.Cos(x).
func (Std) Cos(x float64) float64 { return math.Cos(x) }

// DefaultSeriesTerms is the number of Taylor terms used when Series.Terms is unset.
const DefaultSeriesTerms = 6

// maxSeriesTerms keeps the factorial table within float64 exact integers.
const maxSeriesTerms = 9

var factorials = func() [2 * maxSeriesTerms]float64 {
	var f [2 * maxSeriesTerms]float64
	f[0] = 1
	for i := 1; i < len(f); i++ {
		f[i] = f[i-1] * float64(i)
	}
	return f
}()

// Series evaluates truncated Taylor series on [-pi/2, pi/2] and reduces
// larger arguments with the double-angle identities.
type Series struct {
	// Terms is the number of non-zero series terms, 1..9.
	Terms int
}

func (s Series) terms() int {
	if s.Terms <= 0 {
		return DefaultSeriesTerms
	}
	if s.Terms > maxSeriesTerms {
		return maxSeriesTerms
	}
	return s.Terms
}

// Sin returns an approximation of sin(x).
func (s Series) Sin(x float64) float64 {
	if x > math.Pi/2 || x < -math.Pi/2 {
		h := x / 2
		return 2 * s.Sin(h) * s.Cos(h)
	}

	x2 := x * x
	power := x
	sum := 0.0
	for i := range s.terms() {
		term := power / factorials[2*i+1]
		if i%2 == 1 {
			term = -term
		}
		sum += term
		power *= x2
	}
	return sum
}

// Cos returns an approximation of cos(x).
func (s Series) Cos(x float64) float64 {
	if x > math.Pi/2 || x < -math.Pi/2 {
		h := x / 2
		c, sn := s.Cos(h), s.Sin(h)
		return c*c - sn*sn
	}

	x2 := x * x
	power := 1.0
	sum := 0.0
	for i := range s.terms() {
		term := power / factorials[2*i]
		if i%2 == 1 {
			term = -term
		}
		sum += term
		power *= x2
	}
	return sum
}
