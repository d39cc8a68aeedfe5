package host

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/tuner"
)

func TestCentsBar(t *testing.T) {
	for _, tc := range []struct {
		cents int
		want  string
	}{
		{0, "[----------#----------]"},
		{-6, "[---------#|----------]"},
		{25, "[----------|----#-----]"},
		{50, "[----------|---------#]"},
		{-80, "[#---------|----------]"},
	} {
		if got := CentsBar(tc.cents); got != tc.want {
			t.Errorf("CentsBar(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestTextRendererLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)

	r.DrawWelcome()
	r.DrawHome(440)
	r.UpdateReadout(438.54, -6)
	r.UpdateNote(pitch.Note{Name: "A", Octave: 4})
	r.UpdateReadout(0, 0)
	r.ClearNote()
	r.DrawCalibration(441)
	r.UpdateReference(442)
	r.DrawDebug(1)
	r.UpdateDebug(tuner.DebugInfo{Page: 0, FrequencyHz: 82.5, Note: pitch.Note{Name: "E", Octave: 2}, Cents: 3})
	r.UpdateDebug(tuner.DebugInfo{Page: 0, Note: pitch.Note{Name: "--"}})
	r.UpdateDebug(tuner.DebugInfo{Page: 1, EffectiveRateHz: 12207.03125, BinSpacingHz: 23.841857, FrameSize: 512, Decimation: 4, PeakPower: 3116.24})
	r.DrawSpectrum([]float64{0, math.E - 1, 0, -4})
	r.ClearSpectrum()

	want := []string{
		"== chromatic tuner ==",
		"[MAIN] A4=440 Hz",
		"freq  438.54 Hz  -6c [---------#|----------]",
		"note A4",
		"freq ----.-- Hz",
		"note --",
		"[CAL] A4=441 Hz, rotate to adjust",
		"ref 442 Hz",
		"[DEBUG 1]",
		"f=82.50Hz note=E2 cents=+3",
		"f=0.00Hz note=-- cents=+0",
		"fs=12207.03Hz bin=23.84Hz N=512 dec=4 pk=3116.2",
		"| █  |",
		"|        |",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Err() != nil {
		t.Fatalf("Err = %v", r.Err())
	}
}

var errWrite = errors.New("write failed")

type failWriter struct{ writes int }

func (w *failWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errWrite
}

func TestTextRendererStickyError(t *testing.T) {
	w := &failWriter{}
	r := NewTextRenderer(w)
	r.DrawWelcome()
	r.DrawHome(440)
	if !errors.Is(r.Err(), errWrite) {
		t.Fatalf("Err = %v, want %v", r.Err(), errWrite)
	}
	if w.writes != 1 {
		t.Fatalf("writes = %d, want 1", w.writes)
	}
}
