package tuner

import (
	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/input"
)

// SampleSource is the burst recorder behind the converter.
type SampleSource interface {
	// Start begins one capture burst.
	Start()
	// SamplesCaptured returns the progress of the current burst.
	SamplesCaptured() int
	// WaitForSamples blocks until at least n samples of the burst exist.
	WaitForSamples(n int)
	// ReadSample returns sample i of the current burst.
	ReadSample(i int) int32
}

// DebugInfo is the content of the debug pages.
type DebugInfo struct {
	Page        int
	FrequencyHz float64
	// Note.Name is "--" when no note is detected.
	Note pitch.Note
	// Cents is the bar-clamped deviation.
	Cents int

	EffectiveRateHz float64
	BinSpacingHz    float64
	FrameSize       int
	Decimation      int
	PeakPower       float64
}

// Renderer draws the tuner screens.
type Renderer interface {
	DrawWelcome()
	// DrawHome draws the static MAIN screen with its header and reference label.
	DrawHome(referenceHz float64)
	// DrawCalibration draws the calibration header and screen.
	DrawCalibration(referenceHz float64)
	// DrawDebug draws the static layout of a debug page.
	DrawDebug(page int)

	// UpdateReadout shows a frequency and bar cents; 0 Hz blanks the readout.
	UpdateReadout(frequencyHz float64, cents int)
	UpdateNote(n pitch.Note)
	// ClearNote blanks the note box and the cents bar.
	ClearNote()
	UpdateReference(referenceHz float64)
	UpdateDebug(info DebugInfo)
	// DrawSpectrum draws bars for the magnitudes of the lowest bins.
	DrawSpectrum(magnitudes []float64)
	ClearSpectrum()
}

// BSP is the polling surface of the interrupt-fed inputs.
type BSP interface {
	// TakeLastPress returns the latest panel button 1..4, or 0, and clears it.
	TakeLastPress() int
	// TakeTimerTicks drains the timebase.
	TakeTimerTicks() uint32
	TimeNow() uint32
	// EncoderEvents drains the encoder.
	EncoderEvents() input.Event
}
