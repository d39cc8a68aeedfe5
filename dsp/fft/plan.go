package fft

import (
	"errors"
	"fmt"
	"math"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/trig"
)

const (
	// MaxStages is the largest supported stage count.
	MaxStages = 9
	// MaxSize is the largest supported transform length.
	MaxSize = 1 << MaxStages
)

// ErrSize reports an unsupported transform length.
var ErrSize = errors.New("fft: size must be a power of two")

// Option configures plan construction.
type Option func(*planConfig)

type planConfig struct {
	trig trig.Source
}

// WithTrig selects the source used to seed the twiddle table.
func WithTrig(src trig.Source) Option {
	return func(c *planConfig) {
		if src != nil {
			c.trig = src
		}
	}
}

// Plan holds the precomputed coefficients for one transform length.
// A Plan is read-only after construction and may be shared.
type Plan struct {
	n      int
	stages int

	// stage s uses twRe[s][k], twIm[s][k] for k < 2^s.
	twRe [MaxStages][MaxSize / 2]float64
	twIm [MaxStages][MaxSize / 2]float64

	rev [MaxSize]uint16
}

// NewPlan builds a plan for an n-point transform, 2 <= n <= MaxSize.
func NewPlan(n int, opts ...Option) (*Plan, error) {
	stages := core.Log2Int(n)
	if stages < 1 || stages > MaxStages {
		return nil, fmt.Errorf("%w in [2, %d]: %d", ErrSize, MaxSize, n)
	}

	cfg := planConfig{trig: trig.Std{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Plan{n: n, stages: stages}

	b := 1
	for s := range stages {
		for k := range b {
			angle := -math.Pi * float64(k) / float64(b)
			p.twRe[s][k] = cfg.trig.Cos(angle)
			p.twIm[s][k] = cfg.trig.Sin(angle)
		}
		b *= 2
	}

	for i := range n {
		p.rev[i] = uint16(reverseBits(i, stages))
	}

	return p, nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Stages returns log2 of the transform length.
func (p *Plan) Stages() int { return p.stages }

// Twiddle returns the coefficient used by butterfly k of the given stage.
func (p *Plan) Twiddle(stage, k int) (re, im float64) {
	return p.twRe[stage][k], p.twIm[stage][k]
}

// Transform computes the forward transform of re + j*im in place.
// Both slices must have exactly Len() elements.
func (p *Plan) Transform(re, im []float64) {
	n := p.n
	if len(re) != n || len(im) != n {
		panic(fmt.Sprintf("fft: buffer length %d/%d, plan length %d", len(re), len(im), n))
	}

	for i := range n {
		j := int(p.rev[i])
		if j > i {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	half := 1
	for s := range p.stages {
		wr := p.twRe[s][:half]
		wi := p.twIm[s][:half]
		span := 2 * half

		for start := 0; start < n; start += span {
			for k := range half {
				a := start + k
				b := a + half

				tr := re[b]*wr[k] - im[b]*wi[k]
				ti := re[b]*wi[k] + im[b]*wr[k]

				re[b] = re[a] - tr
				im[b] = im[a] - ti
				re[a] += tr
				im[a] += ti
			}
		}

		half = span
	}
}

func reverseBits(x, width int) int {
	r := 0
	for range width {
		r = r<<1 | x&1
		x >>= 1
	}
	return r
}
