package host

import (
	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/frame"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/signal"
)

// SourceOption configures a ToneSource.
type SourceOption func(*ToneSource)

// WithOffset adds a constant converter offset in counts.
func WithOffset(counts int32) SourceOption {
	return func(s *ToneSource) {
		s.offset = counts
	}
}

// WithNoise adds uniform noise of the given peak amplitude in volts.
func WithNoise(volts float64, seed int64) SourceOption {
	return func(s *ToneSource) {
		s.tone.SetNoise(volts, seed)
	}
}

// WithVoltsPerCount sets the converter scale. Non-positive values are ignored.
func WithVoltsPerCount(v float64) SourceOption {
	return func(s *ToneSource) {
		if v > 0 {
			s.countsPerVolt = 1 / v
		}
	}
}

// ToneSource is a synthetic burst recorder sampling a sine at the raw
// converter rate. Consecutive bursts continue the waveform without a phase
// jump, as if the converter never stopped.
type ToneSource struct {
	tone          *signal.Tone
	countsPerVolt float64
	offset        int32
	burst         []int32
	captured      int
	bursts        int
}

// NewToneSource returns a source for geom producing freqHz at a peak
// amplitude of volts.
func NewToneSource(geom core.ProcessorConfig, freqHz, volts float64, opts ...SourceOption) *ToneSource {
	s := &ToneSource{
		tone:          signal.NewTone(geom.SampleRate, freqHz, volts),
		countsPerVolt: 1 / frame.DefaultVoltsPerCount,
		burst:         make([]int32, geom.FrameSize),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SetFrequency retunes the oscillator. It takes effect on the next burst.
func (s *ToneSource) SetFrequency(freqHz float64) { s.tone.SetFrequency(freqHz) }

// SetAmplitude changes the peak amplitude in volts.
func (s *ToneSource) SetAmplitude(volts float64) { s.tone.SetAmplitude(volts) }

// Frequency returns the oscillator frequency.
func (s *ToneSource) Frequency() float64 { return s.tone.Frequency() }

// Bursts returns the number of bursts started.
func (s *ToneSource) Bursts() int { return s.bursts }

// Start records one burst.
func (s *ToneSource) Start() {
	for i := range s.burst {
		s.burst[i] = s.offset + signal.Quantize(s.tone.Next(), s.countsPerVolt)
	}
	s.captured = len(s.burst)
	s.bursts++
}

// SamplesCaptured returns the samples of the current burst.
func (s *ToneSource) SamplesCaptured() int { return s.captured }

// WaitForSamples returns at once; a burst is complete when Start returns.
func (s *ToneSource) WaitForSamples(int) {}

// ReadSample returns sample i of the current burst.
func (s *ToneSource) ReadSample(i int) int32 { return s.burst[i] }
