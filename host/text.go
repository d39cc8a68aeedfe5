package host

import (
	"fmt"
	"io"
	"strings"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/spectrum"
	"github.com/rhythmw9/Chromatic-Tuner/tuner"
)

// barHalfWidth is the number of cells on each side of the centre mark.
const barHalfWidth = 10

var barLevels = []rune(" ▁▂▃▄▅▆▇█")

// TextRenderer prints every screen update as one line. Write errors are
// sticky: after the first one nothing more is written and Err reports it.
type TextRenderer struct {
	w    io.Writer
	err  error
	bars []float64
}

var _ tuner.Renderer = (*TextRenderer)(nil)

// NewTextRenderer returns a renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Err returns the first write error.
func (r *TextRenderer) Err() error { return r.err }

func (r *TextRenderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format+"\n", args...)
}

// DrawWelcome prints the splash line.
func (r *TextRenderer) DrawWelcome() {
	r.printf("== chromatic tuner ==")
}

// DrawHome prints the main screen header.
func (r *TextRenderer) DrawHome(referenceHz float64) {
	r.printf("[MAIN] A4=%.0f Hz", referenceHz)
}

// DrawCalibration prints the calibration header.
func (r *TextRenderer) DrawCalibration(referenceHz float64) {
	r.printf("[CAL] A4=%.0f Hz, rotate to adjust", referenceHz)
}

// DrawDebug prints the debug page header.
func (r *TextRenderer) DrawDebug(page int) {
	r.printf("[DEBUG %d]", page)
}

// UpdateReadout prints the frequency and cents bar.
func (r *TextRenderer) UpdateReadout(frequencyHz float64, cents int) {
	if frequencyHz <= 0 {
		r.printf("freq ----.-- Hz")
		return
	}
	r.printf("freq %7.2f Hz %+3dc %s", frequencyHz, cents, CentsBar(cents))
}

// UpdateNote prints the note name and octave.
func (r *TextRenderer) UpdateNote(n pitch.Note) {
	r.printf("note %s%d", n.Name, n.Octave)
}

// ClearNote prints an empty note.
func (r *TextRenderer) ClearNote() {
	r.printf("note --")
}

// UpdateReference prints the calibrated A4.
func (r *TextRenderer) UpdateReference(referenceHz float64) {
	r.printf("ref %.0f Hz", referenceHz)
}

// UpdateDebug prints the figures of the active debug page.
func (r *TextRenderer) UpdateDebug(info tuner.DebugInfo) {
	if info.Page == 0 {
		note := "--"
		if info.Note.Name != "--" {
			note = fmt.Sprintf("%s%d", info.Note.Name, info.Note.Octave)
		}
		r.printf("f=%.2fHz note=%s cents=%+d", info.FrequencyHz, note, info.Cents)
		return
	}
	r.printf("fs=%.2fHz bin=%.2fHz N=%d dec=%d pk=%.1f",
		info.EffectiveRateHz, info.BinSpacingHz, info.FrameSize, info.Decimation, info.PeakPower)
}

// DrawSpectrum prints the bars as block characters.
func (r *TextRenderer) DrawSpectrum(magnitudes []float64) {
	if cap(r.bars) < len(magnitudes) {
		r.bars = make([]float64, len(magnitudes))
	}
	bars := r.bars[:len(magnitudes)]
	spectrum.LogBars(bars, magnitudes)

	var b strings.Builder
	top := len(barLevels) - 1
	for _, v := range bars {
		b.WriteRune(barLevels[int(v*float64(top)+0.5)])
	}
	r.printf("|%s|", b.String())
}

// ClearSpectrum prints a blank spectrum line.
func (r *TextRenderer) ClearSpectrum() {
	r.printf("|%s|", strings.Repeat(" ", 8))
}

// CentsBar draws a deviation bar with the centre at 0 and the ends at
// ±pitch.MaxBarCents. Out-of-range values stick to the ends.
func CentsBar(cents int) string {
	cents = max(-pitch.MaxBarCents, min(pitch.MaxBarCents, cents))
	pos := barHalfWidth + cents*barHalfWidth/pitch.MaxBarCents

	cells := []byte(strings.Repeat("-", 2*barHalfWidth+1))
	cells[barHalfWidth] = '|'
	cells[pos] = '#'
	return "[" + string(cells) + "]"
}
