package frame

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/window"
)

// DefaultVoltsPerCount is the converter scale of the tuner front end:
// 3.3 V full scale over 2^26 counts.
const DefaultVoltsPerCount = 3.3 / 67108864.0

// ErrConfig is returned for frame geometries the builder cannot serve.
var ErrConfig = errors.New("frame: invalid configuration")

// Option configures a Builder.
type Option func(*config)

type config struct {
	voltsPerCount float64
	window        window.Type
}

// WithVoltsPerCount sets the count-to-volts scale. Non-positive values are ignored.
func WithVoltsPerCount(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.voltsPerCount = v
		}
	}
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// Builder converts raw capture blocks into windowed transform frames.
// It holds the window coefficients and performs no allocation per frame.
type Builder struct {
	geom          core.ProcessorConfig
	voltsPerCount float64
	coeffs        []float64
}

// NewBuilder validates geom and precomputes the analysis window.
func NewBuilder(geom core.ProcessorConfig, opts ...Option) (*Builder, error) {
	if !core.IsPowerOfTwo(geom.FrameSize) || geom.FrameSize < 2 {
		return nil, fmt.Errorf("%w: frame size %d is not a power of two", ErrConfig, geom.FrameSize)
	}
	if geom.Decimation < 1 {
		return nil, fmt.Errorf("%w: decimation %d", ErrConfig, geom.Decimation)
	}

	cfg := config{
		voltsPerCount: DefaultVoltsPerCount,
		window:        window.TypeHann,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Builder{
		geom:          geom,
		voltsPerCount: cfg.voltsPerCount,
		coeffs:        window.Generate(cfg.window, geom.FrameSize),
	}, nil
}

// FrameSize returns N.
func (b *Builder) FrameSize() int { return b.geom.FrameSize }

// RawLength returns the raw block length consumed by Build.
func (b *Builder) RawLength() int { return b.geom.RawLength() }

// Build fills re and im from raw. re and im must hold FrameSize values and
// raw must hold RawLength samples; other lengths panic.
func (b *Builder) Build(re, im []float64, raw []int32) {
	n := b.geom.FrameSize
	if len(re) != n || len(im) != n {
		panic(fmt.Sprintf("frame: output length %d/%d, want %d", len(re), len(im), n))
	}
	if len(raw) != b.geom.RawLength() {
		panic(fmt.Sprintf("frame: raw length %d, want %d", len(raw), b.geom.RawLength()))
	}

	dc := DC(raw)
	for i := range re {
		re[i] = float64(int64(raw[i*b.geom.Decimation]) - int64(dc))
	}
	clear(im)

	vecmath.ScaleBlock(re, re, b.voltsPerCount)
	vecmath.MulBlockInPlace(re, b.coeffs)
}

// DC returns the floor of the mean of raw. An empty block has zero DC.
func DC(raw []int32) int32 {
	if len(raw) == 0 {
		return 0
	}

	var sum int64
	for _, v := range raw {
		sum += int64(v)
	}

	n := int64(len(raw))
	q := sum / n
	if sum%n != 0 && sum < 0 {
		q--
	}

	return int32(q)
}
