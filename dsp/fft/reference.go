package fft

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Reference computes the forward transform of re + j*im with algo-fft.
// It allocates and is meant for verification, not the real-time path.
func Reference(re, im []float64) ([]complex128, error) {
	if len(re) != len(im) {
		return nil, fmt.Errorf("fft: reference length mismatch: %d != %d", len(re), len(im))
	}

	plan, err := algofft.NewPlan64(len(re))
	if err != nil {
		return nil, fmt.Errorf("fft: reference plan: %w", err)
	}

	in := make([]complex128, len(re))
	for i := range in {
		in[i] = complex(re[i], im[i])
	}

	out := make([]complex128, len(re))
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fft: reference forward: %w", err)
	}

	return out, nil
}

// DFT evaluates the transform sum directly in O(n^2).
func DFT(re, im []float64) (outRe, outIm []float64) {
	n := len(re)
	outRe = make([]float64, n)
	outIm = make([]float64, n)

	for k := range n {
		var sr, si float64
		for t := range n {
			angle := -2 * math.Pi * float64(k*t%n) / float64(n)
			c, s := math.Cos(angle), math.Sin(angle)
			sr += re[t]*c - im[t]*s
			si += re[t]*s + im[t]*c
		}
		outRe[k] = sr
		outIm[k] = si
	}

	return outRe, outIm
}

// MaxRelativeError compares the magnitude spectrum of re/im against ref and
// returns the largest difference relative to the largest reference magnitude.
func MaxRelativeError(re, im []float64, ref []complex128) float64 {
	if len(re) != len(ref) || len(im) != len(ref) {
		return math.Inf(1)
	}

	peak := 0.0
	for _, c := range ref {
		peak = math.Max(peak, math.Hypot(real(c), imag(c)))
	}

	worst := 0.0
	for i, c := range ref {
		d := math.Abs(math.Hypot(re[i], im[i]) - math.Hypot(real(c), imag(c)))
		worst = math.Max(worst, d)
	}

	if peak == 0 {
		return worst
	}

	return worst / peak
}

// SelfTest transforms a deterministic multi-tone frame with p and returns the
// relative error against [Reference].
func (p *Plan) SelfTest() (float64, error) {
	n := p.n
	re := make([]float64, n)
	im := make([]float64, n)

	for i := range re {
		x := float64(i) / float64(n)
		re[i] = math.Sin(2*math.Pi*7*x) + 0.5*math.Cos(2*math.Pi*31*x) + 0.125
	}

	ref, err := Reference(re, im)
	if err != nil {
		return 0, err
	}

	p.Transform(re, im)

	return MaxRelativeError(re, im, ref), nil
}
