package tuner

import (
	"fmt"
	"testing"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/input"
	"github.com/rhythmw9/Chromatic-Tuner/internal/testutil"
)

// fakeSource replays one raw block, one frame-sized burst per Start.
type fakeSource struct {
	geom    core.ProcessorConfig
	raw     []int32
	offset  int
	started int
	waited  int
}

func newFakeSource() *fakeSource {
	geom := core.DefaultProcessorConfig()
	return &fakeSource{geom: geom, raw: make([]int32, geom.RawLength())}
}

func (s *fakeSource) tone(freqHz, volts float64) {
	s.raw = testutil.RawTone(freqHz, s.geom.SampleRate, volts, 0, s.geom.RawLength())
}

func (s *fakeSource) silence() {
	s.raw = make([]int32, s.geom.RawLength())
}

func (s *fakeSource) Start() {
	bursts := s.geom.Decimation
	s.offset = (s.started % bursts) * s.geom.FrameSize
	s.started++
}

func (s *fakeSource) SamplesCaptured() int { return s.geom.FrameSize }

func (s *fakeSource) WaitForSamples(n int) { s.waited += n }

func (s *fakeSource) ReadSample(i int) int32 { return s.raw[s.offset+i] }

// recorder logs every renderer call as a short string.
type recorder struct {
	calls     []string
	lastDebug DebugInfo
	lastBars  []float64
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) take() []string {
	c := r.calls
	r.calls = nil
	return c
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (r *recorder) DrawWelcome()                   { r.add("welcome") }
func (r *recorder) DrawHome(ref float64)           { r.add("home %.0f", ref) }
func (r *recorder) DrawCalibration(ref float64)    { r.add("cal %.0f", ref) }
func (r *recorder) DrawDebug(page int)             { r.add("debug %d", page) }
func (r *recorder) UpdateReadout(f float64, c int) { r.add("readout %.0f %d", f, c) }
func (r *recorder) UpdateNote(n pitch.Note)        { r.add("note %s%d", n.Name, n.Octave) }
func (r *recorder) ClearNote()                     { r.add("clear-note") }
func (r *recorder) UpdateReference(ref float64)    { r.add("ref %.0f", ref) }
func (r *recorder) ClearSpectrum()                 { r.add("clear-spectrum") }

func (r *recorder) UpdateDebug(info DebugInfo) {
	r.lastDebug = info
	r.add("debug-info p%d %s", info.Page, info.Note.Name)
}

func (r *recorder) DrawSpectrum(mag []float64) {
	r.lastBars = append(r.lastBars[:0], mag...)
	r.add("spectrum %d", len(mag))
}

// fakeBSP hands out one queued press and event per poll.
type fakeBSP struct {
	press int
	ev    input.Event
	polls int
}

func (b *fakeBSP) TakeLastPress() int {
	p := b.press
	b.press = 0
	return p
}

func (b *fakeBSP) TakeTimerTicks() uint32 {
	b.polls++
	return 1
}

func (b *fakeBSP) TimeNow() uint32 { return uint32(b.polls) }

func (b *fakeBSP) EncoderEvents() input.Event {
	ev := b.ev
	b.ev = input.Event{}
	return ev
}

// newTuning returns a started tuner already in the tuning state with a
// short welcome and a screen update on every pass.
func newTuning(t *testing.T, src SampleSource, r Renderer, opts ...Option) *Tuner {
	t.Helper()
	opts = append([]Option{WithWelcomeTicks(1), WithUIDivider(1)}, opts...)
	tu, err := New(src, r, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tu.Start()
	tu.Dispatch(SigTick) // welcome -> idle
	tu.Dispatch(SigTick) // idle -> tuning
	if got := tu.StateName(); got != "tuning" {
		t.Fatalf("state = %s, want tuning", got)
	}
	return tu
}
