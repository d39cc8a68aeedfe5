package signal

import (
	"fmt"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/frame"
)

// Generator renders test recordings at the converter's raw sample rate,
// either in volts or quantized to converter counts.
type Generator struct {
	cfg           core.ProcessorConfig
	seed          int64
	countsPerVolt float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithCountsPerVolt sets the converter scale used by Counts and SineCounts.
// Non-positive values are ignored.
func WithCountsPerVolt(c float64) Option {
	return func(g *Generator) {
		if c > 0 {
			g.countsPerVolt = c
		}
	}
}

// NewGenerator returns a generator for the given processor geometry.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions is NewGenerator with generator options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:           core.ApplyProcessorOptions(coreOpts...),
		seed:          1,
		countsPerVolt: 1 / frame.DefaultVoltsPerCount,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine returns samples of a sine with peak amplitude volts, starting at
// zero phase.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	NewTone(g.cfg.SampleRate, freqHz, amplitude).Fill(out)
	return out, nil
}

// SineCounts is Sine quantized to converter counts around offset.
func (g *Generator) SineCounts(freqHz, amplitude float64, offset int32, samples int) ([]int32, error) {
	wave, err := g.Sine(freqHz, amplitude, samples)
	if err != nil {
		return nil, err
	}
	out := g.Counts(wave)
	for i := range out {
		out[i] += offset
	}
	return out, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude] drawn from the
// generator seed. Equal seeds give equal recordings.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	tone := NewTone(g.cfg.SampleRate, 0, 0)
	tone.SetNoise(amplitude, g.seed)
	tone.Fill(out)
	return out, nil
}

// Counts quantizes volts to converter counts at the generator scale.
func (g *Generator) Counts(volts []float64) []int32 {
	out := make([]int32, len(volts))
	for i, v := range volts {
		out[i] = Quantize(v, g.countsPerVolt)
	}
	return out
}
