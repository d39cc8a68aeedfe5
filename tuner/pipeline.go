package tuner

import (
	"fmt"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/fft"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/frame"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/spectrum"
)

// Result is the outcome of one pipeline pass.
type Result struct {
	Peak    pitch.Peak
	Reading pitch.Reading
	// Spectrum holds the magnitudes of the lowest bins when the peak passed
	// the weak-signal gate, nil otherwise. It is reused by the next pass.
	Spectrum []float64
}

// Pipeline runs capture, frame building, transform, peak search and
// tracking. All buffers are sized once at construction.
type Pipeline struct {
	geom      core.ProcessorConfig
	source    SampleSource
	builder   *frame.Builder
	plan      *fft.Plan
	estimator *pitch.Estimator
	tracker   *pitch.Tracker

	raw  []int32
	re   []float64
	im   []float64
	mag  []float64
	nMag int
}

// NewPipeline builds a pipeline for cfg reading from source.
func NewPipeline(source SampleSource, cfg Config) (*Pipeline, error) {
	geom := cfg.Processor

	builder, err := frame.NewBuilder(geom, frame.WithVoltsPerCount(cfg.VoltsPerCount))
	if err != nil {
		return nil, fmt.Errorf("tuner: %w", err)
	}
	var planOpts []fft.Option
	if cfg.Trig != nil {
		planOpts = append(planOpts, fft.WithTrig(cfg.Trig))
	}
	plan, err := fft.NewPlan(geom.FrameSize, planOpts...)
	if err != nil {
		return nil, fmt.Errorf("tuner: %w", err)
	}
	estimator, err := pitch.NewEstimator(geom,
		pitch.WithBand(cfg.MinHz, cfg.MaxHz),
		pitch.WithCorrection(cfg.Correction))
	if err != nil {
		return nil, fmt.Errorf("tuner: %w", err)
	}

	bins := max(cfg.DebugBins, 1)
	return &Pipeline{
		geom:      geom,
		source:    source,
		builder:   builder,
		plan:      plan,
		estimator: estimator,
		tracker:   pitch.NewTracker(pitch.WithMinPeakPower(cfg.MinPeakPower), pitch.WithAlpha(cfg.Alpha)),
		raw:       make([]int32, geom.RawLength()),
		re:        make([]float64, geom.FrameSize),
		im:        make([]float64, geom.FrameSize),
		mag:       make([]float64, bins),
		nMag:      min(bins, geom.FrameSize/2),
	}, nil
}

// Geometry returns the capture and transform geometry.
func (p *Pipeline) Geometry() core.ProcessorConfig { return p.geom }

// Estimator returns the peak estimator.
func (p *Pipeline) Estimator() *pitch.Estimator { return p.estimator }

// Tracker returns the pitch tracker.
func (p *Pipeline) Tracker() *pitch.Tracker { return p.tracker }

// Run performs one pass against reference A4 ref.
func (p *Pipeline) Run(ref float64) Result {
	p.capture()
	p.builder.Build(p.re, p.im, p.raw)
	p.plan.Transform(p.re, p.im)

	res := Result{Peak: p.estimator.Estimate(p.re, p.im)}
	if res.Peak.Power >= p.tracker.Config().MinPeakPower {
		spectrum.MagnitudeFromParts(p.mag[:p.nMag], p.re[:p.nMag], p.im[:p.nMag])
		clear(p.mag[p.nMag:])
		res.Spectrum = p.mag
	}

	res.Reading = p.tracker.Update(res.Peak.Frequency, res.Peak.Power, ref)
	return res
}

// capture fills the raw block from consecutive bursts of one frame each.
func (p *Pipeline) capture() {
	burst := p.geom.FrameSize
	for off := 0; off < len(p.raw); off += burst {
		p.source.Start()
		p.source.WaitForSamples(burst)
		for i := range burst {
			p.raw[off+i] = p.source.ReadSample(i)
		}
	}
}
