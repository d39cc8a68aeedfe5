package tuner

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/fft"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
)

func TestNewRejectsUnsupportedFrame(t *testing.T) {
	_, err := New(newFakeSource(), &recorder{}, WithProcessorOptions(core.WithFrameSize(1024)))
	if !errors.Is(err, fft.ErrSize) {
		t.Fatalf("err = %v, want fft.ErrSize", err)
	}
}

func TestWelcomeIdleTuning(t *testing.T) {
	r := &recorder{}
	tu, err := New(newFakeSource(), r)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tu.Start()
	if got := tu.StateName(); got != "welcome" {
		t.Fatalf("state = %s, want welcome", got)
	}
	if tu.Mode() != ModeMain {
		t.Fatalf("mode = %v, want MAIN", tu.Mode())
	}
	if calls := r.take(); !slices.Equal(calls, []string{"welcome"}) {
		t.Fatalf("calls = %v, want [welcome]", calls)
	}

	for range DefaultWelcomeTicks - 1 {
		tu.Dispatch(SigTick)
	}
	if got := tu.StateName(); got != "welcome" || tu.State().WelcomeTicks != DefaultWelcomeTicks-1 {
		t.Fatalf("after %d ticks: state %s ticks %d", DefaultWelcomeTicks-1, got, tu.State().WelcomeTicks)
	}

	tu.Dispatch(SigTick)
	if got := tu.StateName(); got != "idle" {
		t.Fatalf("state = %s, want idle", got)
	}
	if calls := r.take(); !slices.Equal(calls, []string{"home 440"}) {
		t.Fatalf("calls = %v, want [home 440]", calls)
	}

	tu.Dispatch(SigTick)
	if got := tu.StateName(); got != "tuning" {
		t.Fatalf("state = %s, want tuning", got)
	}
}

func TestConcertA(t *testing.T) {
	src := newFakeSource()
	src.tone(440, 0.5)
	r := &recorder{}
	tu := newTuning(t, src, r)
	r.take()

	tu.Dispatch(SigTick)

	st := tu.State()
	if math.Abs(st.FrequencyHz-440) > 3 {
		t.Fatalf("FrequencyHz = %v, want 440 ± 3", st.FrequencyHz)
	}
	if st.Note.Name != "A" || st.Note.Octave != 4 || st.Note.Cents < -10 || st.Note.Cents > 10 {
		t.Fatalf("note = %v, want A4 within ±10c", st.Note)
	}
	if !st.NoteShown {
		t.Fatal("NoteShown not set")
	}

	calls := r.take()
	if len(calls) != 2 || !strings.HasPrefix(calls[0], "readout 43") || calls[1] != "note A4" {
		t.Fatalf("calls = %v, want readout then note A4", calls)
	}

	// Four bursts of one frame each per pass.
	if src.started != 4 || src.waited != 4*512 {
		t.Fatalf("capture = %d bursts, %d samples waited", src.started, src.waited)
	}
}

func TestSilenceDecaysToNoNote(t *testing.T) {
	src := newFakeSource()
	src.tone(440, 0.5)
	r := &recorder{}
	tu := newTuning(t, src, r)

	tu.Dispatch(SigTick)
	r.take()

	src.silence()
	for range 60 {
		tu.Dispatch(SigTick)
		if tu.State().PeakPower != 0 {
			t.Fatalf("PeakPower = %v, want 0 for silence", tu.State().PeakPower)
		}
	}

	st := tu.State()
	if st.FrequencyHz != 0 {
		t.Fatalf("FrequencyHz = %v, want exactly 0", st.FrequencyHz)
	}
	if st.NoteShown {
		t.Fatal("NoteShown still set")
	}
	if got := r.count("clear-note"); got != 1 {
		t.Fatalf("clear-note calls = %d, want 1", got)
	}
	if got := r.count("readout 0 0"); got != 1 {
		t.Fatalf("blank readout calls = %d, want 1", got)
	}
}

func TestSilenceFromStartDrawsNothing(t *testing.T) {
	r := &recorder{}
	tu := newTuning(t, newFakeSource(), r)
	r.take()

	for range 5 {
		tu.Dispatch(SigTick)
	}
	if calls := r.take(); len(calls) != 0 {
		t.Fatalf("calls = %v, want none", calls)
	}
}

func TestUIDivider(t *testing.T) {
	src := newFakeSource()
	src.tone(440, 0.5)
	r := &recorder{}
	tu := newTuning(t, src, r, WithUIDivider(DefaultUIDivider))
	r.take()

	for range 2*DefaultUIDivider - 1 {
		tu.Dispatch(SigTick)
	}
	if got := r.count("note A4"); got != 1 {
		t.Fatalf("note updates after %d passes = %d, want 1", 2*DefaultUIDivider-1, got)
	}

	tu.Dispatch(SigTick)
	if got := r.count("note A4"); got != 2 {
		t.Fatalf("note updates after %d passes = %d, want 2", 2*DefaultUIDivider, got)
	}
}

func TestDebugPages(t *testing.T) {
	r := &recorder{}
	tu := newTuning(t, newFakeSource(), r)
	r.take()

	tu.Dispatch(SigButtonDebug)
	tu.Dispatch(SigButtonDebug)
	tu.Dispatch(SigButtonDebug)
	if calls := r.take(); !slices.Equal(calls, []string{"debug 0", "debug 1", "debug 0"}) {
		t.Fatalf("calls = %v", calls)
	}

	tu.Dispatch(SigButtonDebug)
	if st := tu.State(); st.Mode != ModeDebug || st.DebugPage != 1 {
		t.Fatalf("state = %v page %d, want DEBUG page 1", st.Mode, st.DebugPage)
	}

	// Re-entering DEBUG from another mode starts on page 0.
	tu.Dispatch(SigButtonCal)
	tu.Dispatch(SigButtonDebug)
	if st := tu.State(); st.DebugPage != 0 {
		t.Fatalf("DebugPage = %d, want 0", st.DebugPage)
	}

	tu.Dispatch(SigButtonMain)
	if tu.Mode() != ModeMain {
		t.Fatalf("mode = %v, want MAIN", tu.Mode())
	}
	if calls := r.take(); !slices.Equal(calls, []string{"debug 1", "cal 440", "debug 0", "home 440"}) {
		t.Fatalf("calls = %v", calls)
	}
}

func TestDebugPageContent(t *testing.T) {
	src := newFakeSource()
	src.tone(440, 0.5)
	r := &recorder{}
	tu := newTuning(t, src, r)
	tu.Dispatch(SigButtonDebug)
	r.take()

	tu.Dispatch(SigTick)
	if calls := r.take(); !slices.Equal(calls, []string{"debug-info p0 A", "spectrum 64"}) {
		t.Fatalf("page 0 calls = %v", calls)
	}
	peak := 0
	for i, v := range r.lastBars {
		if v > r.lastBars[peak] {
			peak = i
		}
	}
	if peak < 17 || peak > 19 {
		t.Fatalf("spectrum peak at bin %d, want near 18", peak)
	}

	tu.Dispatch(SigButtonDebug)
	r.take()
	tu.Dispatch(SigTick)
	if calls := r.take(); !slices.Equal(calls, []string{"debug-info p1 A"}) {
		t.Fatalf("page 1 calls = %v", calls)
	}
	info := r.lastDebug
	if info.FrameSize != 512 || info.Decimation != 4 || info.PeakPower < pitch.DefaultMinPeakPower {
		t.Fatalf("page 1 info = %+v", info)
	}
	if math.Abs(info.EffectiveRateHz-12207.03125) > 1e-6 || math.Abs(info.BinSpacingHz-23.841857910) > 1e-6 {
		t.Fatalf("rates = %v / %v", info.EffectiveRateHz, info.BinSpacingHz)
	}

	src.silence()
	tu.Dispatch(SigTick)
	if calls := r.take(); !slices.Equal(calls, []string{"debug-info p1 --"}) {
		t.Fatalf("silent page 1 calls = %v", calls)
	}
	if r.lastDebug.PeakPower != 0 || r.lastDebug.FrequencyHz != 0 {
		t.Fatalf("silent page 1 info = %+v", r.lastDebug)
	}

	tu.Dispatch(SigButtonDebug)
	r.take()
	tu.Dispatch(SigTick)
	if calls := r.take(); !slices.Equal(calls, []string{"debug-info p0 --", "clear-spectrum"}) {
		t.Fatalf("silent page 0 calls = %v", calls)
	}
}

func TestCalibrationShowsNoLiveReadout(t *testing.T) {
	src := newFakeSource()
	src.tone(440, 0.5)
	r := &recorder{}
	tu := newTuning(t, src, r)
	tu.Dispatch(SigButtonCal)
	r.take()

	tu.Dispatch(SigTick)
	if calls := r.take(); len(calls) != 0 {
		t.Fatalf("calls = %v, want none in calibration", calls)
	}
	if tu.State().Note.Name != "A" {
		t.Fatalf("note = %v, want tracking to continue", tu.State().Note)
	}
}

func TestRotationAdjustsReferenceOnlyInCalibration(t *testing.T) {
	r := &recorder{}
	tu := newTuning(t, newFakeSource(), r)
	r.take()

	tu.Dispatch(SigRotateCW)
	if got := tu.State().ReferenceHz; got != 440 {
		t.Fatalf("ReferenceHz in MAIN = %v, want 440", got)
	}

	tu.Dispatch(SigButtonCal)
	tu.Dispatch(SigRotateCW)
	tu.Dispatch(SigRotateCCW)
	tu.Dispatch(SigRotateCCW)
	if calls := r.take(); !slices.Equal(calls, []string{"cal 440", "ref 441", "ref 440", "ref 439"}) {
		t.Fatalf("calls = %v", calls)
	}

	for range 50 {
		tu.Dispatch(SigRotateCW)
	}
	if got := tu.State().ReferenceHz; got != pitch.MaxReferenceHz {
		t.Fatalf("ReferenceHz = %v, want %v", got, pitch.MaxReferenceHz)
	}
	for range 50 {
		tu.Dispatch(SigRotateCCW)
	}
	if got := tu.State().ReferenceHz; got != pitch.MinReferenceHz {
		t.Fatalf("ReferenceHz = %v, want %v", got, pitch.MinReferenceHz)
	}
}

func TestReferenceShiftsNoteMapping(t *testing.T) {
	src := newFakeSource()
	src.tone(440, 0.5)
	tu := newTuning(t, src, &recorder{}, WithReference(430))

	tu.Dispatch(SigTick)
	n := tu.State().Note
	if n.Name != "A" || n.Cents < 20 || n.Cents > 45 {
		t.Fatalf("note against 430 Hz = %v, want A sharp by ~34c", n)
	}
}

func TestOptionsClampAndIgnore(t *testing.T) {
	tu, err := New(newFakeSource(), &recorder{},
		WithReference(500), WithUIDivider(0), WithWelcomeTicks(-1), WithCorrection(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg := tu.Config()
	if cfg.ReferenceHz != pitch.MaxReferenceHz || cfg.UIDivider != DefaultUIDivider ||
		cfg.WelcomeTicks != DefaultWelcomeTicks || cfg.Correction != 1 {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestTerminateIgnored(t *testing.T) {
	tu := newTuning(t, newFakeSource(), &recorder{})
	tu.Dispatch(SigTerminate)
	if got := tu.StateName(); got != "tuning" {
		t.Fatalf("state = %s, want tuning", got)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	src := newFakeSource()
	src.tone(440, 0.5)
	tu := newTuning(t, src, &recorder{}, WithLogger(logger))
	tu.Dispatch(SigTick)
	tu.Dispatch(SigButtonCal)

	out := buf.String()
	for _, want := range []string{
		`msg="state entry" state=welcome`,
		`msg="state transition" signal=TICK source=idle target=tuning`,
		`msg=reading`,
		`note=A octave=4`,
		`msg=mode mode=CAL ref_hz=440`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q:\n%s", want, out)
		}
	}
}

func TestSignalAndModeNames(t *testing.T) {
	if got := SignalName(SigRotateCCW); got != "ROT_CCW" {
		t.Fatalf("SignalName = %q", got)
	}
	if got := ModeCalibration.String(); got != "CAL" {
		t.Fatalf("Mode.String = %q", got)
	}
	if got := Mode(7).String(); got != "Mode(7)" {
		t.Fatalf("Mode.String = %q", got)
	}
}
