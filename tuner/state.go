package tuner

import (
	"fmt"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
)

// Mode is the user-selected screen.
type Mode int

const (
	// ModeMain shows the tuning readout.
	ModeMain Mode = iota
	// ModeDebug shows the spectrum and pipeline figures.
	ModeDebug
	// ModeCalibration adjusts the reference A4.
	ModeCalibration
)

func (m Mode) String() string {
	switch m {
	case ModeMain:
		return "MAIN"
	case ModeDebug:
		return "DEBUG"
	case ModeCalibration:
		return "CAL"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// State is the extended state of the tuner.
type State struct {
	Mode Mode
	// DebugPage is 0 (text and spectrum) or 1 (processing parameters).
	DebugPage int
	// FrequencyHz is the smoothed frequency of the last pass.
	FrequencyHz float64
	// ReferenceHz is the calibrated A4, always within
	// [pitch.MinReferenceHz, pitch.MaxReferenceHz].
	ReferenceHz float64
	// WelcomeTicks counts ticks spent on the welcome screen.
	WelcomeTicks int
	// NoteShown is set while the MAIN screen shows a note.
	NoteShown bool
	// Note is the last valid note.
	Note pitch.Note
	// PeakPower is the peak power of the last pass.
	PeakPower float64
}
