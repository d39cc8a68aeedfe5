package tuner

import (
	"log/slog"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/frame"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/trig"
)

const (
	// DefaultWelcomeTicks is how long the splash screen stays up.
	DefaultWelcomeTicks = 500
	// DefaultUIDivider is the number of pipeline passes per screen update.
	DefaultUIDivider = 6
	// DefaultDebugBins is the number of spectrum bars on debug page 0.
	DefaultDebugBins = 64
)

// Config holds the tuner construction parameters.
type Config struct {
	Processor     core.ProcessorConfig
	VoltsPerCount float64
	// Correction scales every raw estimate to compensate clock error.
	Correction   float64
	MinHz, MaxHz float64
	MinPeakPower float64
	Alpha        float64
	ReferenceHz  float64
	WelcomeTicks int
	// UIDivider is the number of pipeline passes per screen update.
	UIDivider int
	DebugBins int
	// Trig seeds the transform twiddles; nil uses the math package.
	Trig   trig.Source
	Logger *slog.Logger
}

// Option mutates a Config. Invalid values are ignored.
type Option func(*Config)

// DefaultConfig returns the hardware tuner configuration.
func DefaultConfig() Config {
	return Config{
		Processor:     core.DefaultProcessorConfig(),
		VoltsPerCount: frame.DefaultVoltsPerCount,
		Correction:    1,
		MinHz:         pitch.DefaultMinHz,
		MaxHz:         pitch.DefaultMaxHz,
		MinPeakPower:  pitch.DefaultMinPeakPower,
		Alpha:         pitch.DefaultAlpha,
		ReferenceHz:   pitch.DefaultReferenceHz,
		WelcomeTicks:  DefaultWelcomeTicks,
		UIDivider:     DefaultUIDivider,
		DebugBins:     DefaultDebugBins,
		Logger:        slog.New(slog.DiscardHandler),
	}
}

// WithProcessorOptions adjusts the capture and transform geometry.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(c *Config) {
		for _, opt := range opts {
			if opt != nil {
				opt(&c.Processor)
			}
		}
	}
}

// WithVoltsPerCount sets the converter scale.
func WithVoltsPerCount(v float64) Option {
	return func(c *Config) {
		if v > 0 {
			c.VoltsPerCount = v
		}
	}
}

// WithCorrection sets the frequency correction factor.
func WithCorrection(factor float64) Option {
	return func(c *Config) {
		if factor > 0 {
			c.Correction = factor
		}
	}
}

// WithBand sets the searched frequency band.
func WithBand(minHz, maxHz float64) Option {
	return func(c *Config) {
		if minHz >= 0 && maxHz > minHz {
			c.MinHz, c.MaxHz = minHz, maxHz
		}
	}
}

// WithMinPeakPower sets the weak-signal gate.
func WithMinPeakPower(p float64) Option {
	return func(c *Config) {
		if p >= 0 {
			c.MinPeakPower = p
		}
	}
}

// WithReference sets the initial A4, clamped to the calibration range.
func WithReference(hz float64) Option {
	return func(c *Config) {
		if hz > 0 {
			c.ReferenceHz = pitch.ClampReference(hz)
		}
	}
}

// WithWelcomeTicks sets how long the welcome screen stays up.
func WithWelcomeTicks(n int) Option {
	return func(c *Config) {
		if n >= 1 {
			c.WelcomeTicks = n
		}
	}
}

// WithUIDivider sets the number of passes per screen update.
func WithUIDivider(n int) Option {
	return func(c *Config) {
		if n >= 1 {
			c.UIDivider = n
		}
	}
}

// WithDebugBins sets how many low bins the debug spectrum shows.
func WithDebugBins(n int) Option {
	return func(c *Config) {
		if n >= 1 {
			c.DebugBins = n
		}
	}
}

// WithLogger sets the logger for state traces and readings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithTrig selects the sine and cosine source for the twiddle table.
func WithTrig(src trig.Source) Option {
	return func(c *Config) {
		if src != nil {
			c.Trig = src
		}
	}
}
