package pitch

import (
	"fmt"
	"math"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
)

const (
	// DefaultReferenceHz is concert A4.
	DefaultReferenceHz = 440.0
	// MinReferenceHz is the lowest calibrated A4.
	MinReferenceHz = 420.0
	// MaxReferenceHz is the highest calibrated A4.
	MaxReferenceHz = 460.0

	// MinMIDI is the lowest reported note (A0).
	MinMIDI = 21
	// MaxMIDI is the highest reported note (C8).
	MaxMIDI = 108

	// MaxCents bounds the reported deviation.
	MaxCents = 99
	// MaxBarCents bounds the deviation shown on the cents bar.
	MaxBarCents = 50
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the sharp-spelled name for a pitch class 0..11 (0 = C).
func NoteName(index int) string {
	return noteNames[((index%12)+12)%12]
}

// Note is an equal-tempered note with the deviation of a measured frequency.
type Note struct {
	Name    string
	Index   int // pitch class, 0 = C
	Octave  int
	MIDI    int
	Cents   int
	IdealHz float64
}

// BarCents returns Cents clamped to the cents bar range.
func (n Note) BarCents() int {
	return core.ClampInt(n.Cents, -MaxBarCents, MaxBarCents)
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d %+dc", n.Name, n.Octave, n.Cents)
}

// IdealFrequency returns the equal-tempered frequency of midi against ref.
func IdealFrequency(midi int, ref float64) float64 {
	return ref * semitoneRatio(float64(midi-69))
}

// EffectiveReference returns ref, or the default A4 when ref is not positive.
func EffectiveReference(ref float64) float64 {
	if ref <= 0 {
		return DefaultReferenceHz
	}
	return ref
}

// ClampReference bounds ref to the calibration range.
func ClampReference(ref float64) float64 {
	return core.Clamp(ref, MinReferenceHz, MaxReferenceHz)
}

// NoteFromFrequency maps freq to the nearest note against ref (A4). It
// reports false for frequencies below the validity floor.
func NoteFromFrequency(freq, ref float64) (Note, bool) {
	if freq < DefaultFloorHz || math.IsNaN(freq) {
		return Note{Name: "--"}, false
	}
	ref = EffectiveReference(ref)

	m := 69 + semitones(freq/ref)
	midi := int(math.Floor(m + 0.5))
	midi = core.ClampInt(midi, MinMIDI, MaxMIDI)

	ideal := IdealFrequency(midi, ref)
	cents := int(math.Round(100 * semitones(freq/ideal)))
	cents = core.ClampInt(cents, -MaxCents, MaxCents)

	index := midi % 12
	return Note{
		Name:    noteNames[index],
		Index:   index,
		Octave:  midi/12 - 1,
		MIDI:    midi,
		Cents:   cents,
		IdealHz: ideal,
	}, true
}
