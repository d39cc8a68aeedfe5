package core

// ProcessorConfig defines the acquisition and transform geometry shared by the
// frame builder, the transform and the peak search.
type ProcessorConfig struct {
	// SampleRate is the raw capture rate in Hz, before decimation.
	SampleRate float64
	// FrameSize is the transform length N.
	FrameSize int
	// Decimation is the factor between raw capture and transform input.
	Decimation int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the tuner hardware geometry: a 100 MHz clock
// divided by 2048, 512-point frames and 4x decimation.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 100e6 / 2048,
		FrameSize:  512,
		Decimation: 4,
	}
}

// WithSampleRate sets the raw capture sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameSize sets the transform length. Non powers of two are ignored.
func WithFrameSize(frameSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if IsPowerOfTwo(frameSize) && frameSize >= 2 {
			cfg.FrameSize = frameSize
		}
	}
}

// WithDecimation sets the raw-to-frame decimation factor.
func WithDecimation(factor int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if factor > 0 {
			cfg.Decimation = factor
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// EffectiveSampleRate returns the sample rate of the decimated frame.
func (c ProcessorConfig) EffectiveSampleRate() float64 {
	if c.Decimation <= 0 {
		return c.SampleRate
	}
	return c.SampleRate / float64(c.Decimation)
}

// BinSpacing returns the frequency width of one transform bin in Hz.
func (c ProcessorConfig) BinSpacing() float64 {
	if c.FrameSize <= 0 {
		return 0
	}
	return c.EffectiveSampleRate() / float64(c.FrameSize)
}

// RawLength returns the number of raw samples consumed per frame.
func (c ProcessorConfig) RawLength() int {
	return c.FrameSize * c.Decimation
}
