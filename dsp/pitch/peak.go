package pitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/interp"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/spectrum"
)

const (
	// DefaultMinHz is the lower edge of the searched band.
	DefaultMinHz = 80.0
	// DefaultMaxHz is the upper edge of the searched band.
	DefaultMaxHz = 4200.0
)

// ErrBand is returned when the searched band holds no bins.
var ErrBand = errors.New("pitch: empty search band")

// Band is an inclusive range of transform bins.
type Band struct {
	Start, End int
}

// BandFor maps [minHz, maxHz] to bins of an n-point transform with the given
// spacing. The start never includes DC and the end stays below Nyquist.
func BandFor(binSpacing float64, n int, minHz, maxHz float64) Band {
	b := Band{
		Start: int(math.Floor(minHz/binSpacing + 0.5)),
		End:   int(math.Floor(maxHz/binSpacing + 0.5)),
	}
	if b.Start < 1 {
		b.Start = 1
	}
	if b.End > n/2-1 {
		b.End = n/2 - 1
	}
	return b
}

// Len returns the number of bins in the band, zero when empty.
func (b Band) Len() int {
	if b.End < b.Start {
		return 0
	}
	return b.End - b.Start + 1
}

// Peak is the result of one spectral peak search.
type Peak struct {
	// Bin is the strongest bin in the band.
	Bin int
	// Power is the squared magnitude of Bin.
	Power float64
	// Frequency is the refined, corrected estimate in Hz, or 0 when the
	// band holds no energy.
	Frequency float64
}

// EstimatorOption configures an Estimator.
type EstimatorOption func(*estimatorConfig)

type estimatorConfig struct {
	minHz, maxHz float64
	correction   float64
}

// WithBand sets the searched frequency range. Invalid ranges are ignored.
func WithBand(minHz, maxHz float64) EstimatorOption {
	return func(c *estimatorConfig) {
		if minHz >= 0 && maxHz > minHz {
			c.minHz = minHz
			c.maxHz = maxHz
		}
	}
}

// WithCorrection sets a multiplicative correction applied to every estimate,
// compensating a known sample clock error. Non-positive values are ignored.
func WithCorrection(factor float64) EstimatorOption {
	return func(c *estimatorConfig) {
		if factor > 0 {
			c.correction = factor
		}
	}
}

// Estimator finds the dominant frequency of a transformed frame.
type Estimator struct {
	n          int
	binSpacing float64
	band       Band
	correction float64
	power      []float64
}

// NewEstimator returns an estimator for frames of geom.
func NewEstimator(geom core.ProcessorConfig, opts ...EstimatorOption) (*Estimator, error) {
	cfg := estimatorConfig{
		minHz:      DefaultMinHz,
		maxHz:      DefaultMaxHz,
		correction: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	spacing := geom.BinSpacing()
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: bin spacing %v", ErrBand, spacing)
	}

	band := BandFor(spacing, geom.FrameSize, cfg.minHz, cfg.maxHz)
	if band.Len() == 0 {
		return nil, fmt.Errorf("%w: bins %d..%d", ErrBand, band.Start, band.End)
	}

	return &Estimator{
		n:          geom.FrameSize,
		binSpacing: spacing,
		band:       band,
		correction: cfg.correction,
		power:      make([]float64, band.Len()),
	}, nil
}

// Band returns the searched bins.
func (e *Estimator) Band() Band { return e.band }

// BinSpacing returns the width of one bin in Hz.
func (e *Estimator) BinSpacing() float64 { return e.binSpacing }

// Estimate searches re/im, the transform output, for the strongest bin.
// Both slices must hold the frame size; other lengths panic.
func (e *Estimator) Estimate(re, im []float64) Peak {
	if len(re) != e.n || len(im) != e.n {
		panic(fmt.Sprintf("pitch: spectrum length %d/%d, want %d", len(re), len(im), e.n))
	}

	lo, hi := e.band.Start, e.band.End+1
	spectrum.PowerFromParts(e.power, re[lo:hi], im[lo:hi])

	place := 0
	peak := Peak{Bin: lo}
	for i, p := range e.power {
		if p > peak.Power {
			peak.Power = p
			place = i
		}
	}
	peak.Bin = lo + place

	if peak.Power <= 0 {
		return peak
	}

	if place == 0 || place == len(e.power)-1 {
		peak.Frequency = float64(peak.Bin) * e.binSpacing * e.correction
		return peak
	}

	delta := interp.Parabolic(e.power[place-1], e.power[place], e.power[place+1])
	peak.Frequency = (float64(peak.Bin) + delta) * e.binSpacing * e.correction

	return peak
}
