package host

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
)

func TestMIDIRendererNoteChanges(t *testing.T) {
	var screen, out bytes.Buffer
	m := NewMIDIRenderer(NewTextRenderer(&screen), &out, WithChannel(2))

	a4 := pitch.Note{Name: "A", Octave: 4, MIDI: 69}
	m.UpdateNote(a4)
	a4.Cents = 12
	m.UpdateNote(a4)
	m.UpdateNote(pitch.Note{Name: "A#", Octave: 4, MIDI: 70})
	m.ClearNote()
	m.ClearNote()

	want := []byte{
		0x92, 69, DefaultMIDIVelocity,
		0x82, 69, 0,
		0x92, 70, DefaultMIDIVelocity,
		0x82, 70, 0,
	}
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("midi = % x, want % x", out.Bytes(), want)
	}
	if m.Sounding() != -1 {
		t.Fatalf("Sounding = %d, want -1", m.Sounding())
	}
	if got := screen.String(); got != "note A4\nnote A4\nnote A#4\nnote --\nnote --\n" {
		t.Fatalf("screen = %q", got)
	}
}

func TestMIDIRendererCloseReleases(t *testing.T) {
	var out bytes.Buffer
	m := NewMIDIRenderer(NewTextRenderer(io.Discard), &out, WithVelocity(64))
	m.UpdateNote(pitch.Note{Name: "E", Octave: 2, MIDI: 40})
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if want := []byte{0x90, 40, 64, 0x80, 40, 0}; !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("midi = % x, want % x", out.Bytes(), want)
	}
}

func TestMIDIRendererWriteError(t *testing.T) {
	w := &failWriter{}
	m := NewMIDIRenderer(NewTextRenderer(io.Discard), w)
	m.UpdateNote(pitch.Note{Name: "C", Octave: 4, MIDI: 60})
	m.UpdateNote(pitch.Note{Name: "D", Octave: 4, MIDI: 62})
	if !errors.Is(m.Err(), errWrite) {
		t.Fatalf("Err = %v, want %v", m.Err(), errWrite)
	}
	if w.writes != 1 {
		t.Fatalf("writes = %d, want 1", w.writes)
	}
}
