package host

import (
	"errors"
	"testing"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/signal"
	"github.com/rhythmw9/Chromatic-Tuner/tuner"
)

func TestBlockSourceRejectsPartialBursts(t *testing.T) {
	geom := core.DefaultProcessorConfig()
	for _, n := range []int{0, 100, geom.FrameSize + 1} {
		if _, err := NewBlockSource(geom, make([]int32, n)); !errors.Is(err, ErrBlock) {
			t.Errorf("%d samples: err = %v, want ErrBlock", n, err)
		}
	}
}

func TestBlockSourceWraps(t *testing.T) {
	geom := core.ApplyProcessorOptions(core.WithFrameSize(4))
	raw := []int32{0, 1, 2, 3, 10, 11, 12, 13}
	s, err := NewBlockSource(geom, raw)
	if err != nil {
		t.Fatalf("NewBlockSource: %v", err)
	}

	for _, want := range []int32{0, 10, 0} {
		s.Start()
		if s.SamplesCaptured() != 4 {
			t.Fatalf("SamplesCaptured = %d, want 4", s.SamplesCaptured())
		}
		if got := s.ReadSample(0); got != want {
			t.Fatalf("first sample = %d, want %d", got, want)
		}
	}
}

func TestBlockSourceGeneratedSignals(t *testing.T) {
	geom := core.DefaultProcessorConfig()
	gen := signal.NewGeneratorWithOptions(nil, signal.WithSeed(7))

	sine, err := gen.Sine(440, 0.5, geom.RawLength())
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}
	noise, err := gen.WhiteNoise(0.002, geom.RawLength())
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}

	for _, tc := range []struct {
		name string
		wave []float64
		weak bool
	}{
		{"sine", sine, false},
		{"noise", noise, true},
	} {
		src, err := NewBlockSource(geom, gen.Counts(tc.wave))
		if err != nil {
			t.Fatalf("%s: NewBlockSource: %v", tc.name, err)
		}
		p, err := tuner.NewPipeline(src, tuner.DefaultConfig())
		if err != nil {
			t.Fatalf("%s: NewPipeline: %v", tc.name, err)
		}
		res := p.Run(pitch.DefaultReferenceHz)
		if res.Reading.Weak != tc.weak {
			t.Fatalf("%s: reading %+v, weak = %v want %v", tc.name, res.Reading, res.Reading.Weak, tc.weak)
		}
		if !tc.weak && res.Reading.Note.String() != "A4 -6c" {
			t.Fatalf("%s: note %v, want A4 -6c", tc.name, res.Reading.Note)
		}
	}
}
