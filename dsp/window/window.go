package window

import (
	"fmt"
	"math"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

var typeNames = map[Type]string{
	TypeRectangular: "Rectangular",
	TypeHann:        "Hann",
	TypeHamming:     "Hamming",
	TypeBlackman:    "Blackman",
}

// String returns the window name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (denominator N) instead of the
// symmetric form (denominator N-1) used for frame analysis.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
// A length of one yields a single unit coefficient.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}

	for i := range out {
		out[i] = evalWindow(t, 2*math.Pi*float64(i)/den)
	}

	return out
}

func evalWindow(t Type, phase float64) float64 {
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(phase)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(phase)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
	default:
		return 1
	}
}
