package host

import (
	"fmt"
	"io"
	"log/slog"

	"gitlab.com/gomidi/midi/v2"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/tuner"
)

const (
	// DefaultMIDIChannel is the channel note messages go out on.
	DefaultMIDIChannel = 0
	// DefaultMIDIVelocity is the note-on velocity.
	DefaultMIDIVelocity = 100
)

// MIDIOption configures a MIDIRenderer.
type MIDIOption func(*MIDIRenderer)

// WithChannel sets the MIDI channel (0..15).
func WithChannel(ch uint8) MIDIOption {
	return func(m *MIDIRenderer) {
		if ch < 16 {
			m.channel = ch
		}
	}
}

// WithVelocity sets the note-on velocity (1..127).
func WithVelocity(v uint8) MIDIOption {
	return func(m *MIDIRenderer) {
		if v >= 1 && v <= 127 {
			m.velocity = v
		}
	}
}

// WithMIDILogger sets the logger for sent messages and write errors.
func WithMIDILogger(l *slog.Logger) MIDIOption {
	return func(m *MIDIRenderer) {
		if l != nil {
			m.logger = l
		}
	}
}

// MIDIRenderer decorates a Renderer and mirrors the displayed note as MIDI:
// a note-on when a new note appears and a note-off when it changes or is
// cleared. Cents changes within one note send nothing.
type MIDIRenderer struct {
	tuner.Renderer

	w        io.Writer
	channel  uint8
	velocity uint8
	logger   *slog.Logger

	sounding int // MIDI key, -1 when silent
	err      error
}

// NewMIDIRenderer returns a renderer forwarding to next and writing MIDI
// messages to w.
func NewMIDIRenderer(next tuner.Renderer, w io.Writer, opts ...MIDIOption) *MIDIRenderer {
	m := &MIDIRenderer{
		Renderer: next,
		w:        w,
		channel:  DefaultMIDIChannel,
		velocity: DefaultMIDIVelocity,
		logger:   slog.New(slog.DiscardHandler),
		sounding: -1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Err returns the first write error.
func (m *MIDIRenderer) Err() error { return m.err }

// Sounding returns the MIDI key currently held, or -1.
func (m *MIDIRenderer) Sounding() int { return m.sounding }

// UpdateNote forwards n and starts its key when it differs from the one held.
func (m *MIDIRenderer) UpdateNote(n pitch.Note) {
	m.Renderer.UpdateNote(n)
	if n.MIDI == m.sounding {
		return
	}
	m.release()
	m.send(midi.NoteOn(m.channel, uint8(n.MIDI), m.velocity))
	m.sounding = n.MIDI
}

// ClearNote forwards the clear and releases the held key.
func (m *MIDIRenderer) ClearNote() {
	m.Renderer.ClearNote()
	m.release()
}

// Close releases a held note.
func (m *MIDIRenderer) Close() error {
	m.release()
	return m.err
}

func (m *MIDIRenderer) release() {
	if m.sounding < 0 {
		return
	}
	m.send(midi.NoteOff(m.channel, uint8(m.sounding)))
	m.sounding = -1
}

func (m *MIDIRenderer) send(msg midi.Message) {
	if m.err != nil {
		return
	}
	if _, err := m.w.Write(msg.Bytes()); err != nil {
		m.err = fmt.Errorf("midi: write %s: %w", msg, err)
		m.logger.Error("midi: write failed", "msg", msg.String(), "err", err)
		return
	}
	m.logger.Debug("midi: sent", "msg", msg.String())
}
