package signal

import (
	"math"
	"math/rand"
)

// Tone is a phase-continuous sine oscillator with optional additive noise.
// Frequency and amplitude may change between samples without a phase jump.
type Tone struct {
	sampleRate float64
	freqHz     float64
	amplitude  float64
	noise      float64
	phase      float64
	rng        *rand.Rand
}

// NewTone returns a tone at freqHz with the given peak amplitude.
func NewTone(sampleRate, freqHz, amplitude float64) *Tone {
	return &Tone{
		sampleRate: sampleRate,
		freqHz:     freqHz,
		amplitude:  amplitude,
		rng:        rand.New(rand.NewSource(1)),
	}
}

// SetFrequency changes the oscillator frequency.
func (t *Tone) SetFrequency(freqHz float64) { t.freqHz = freqHz }

// Frequency returns the current oscillator frequency.
func (t *Tone) Frequency() float64 { return t.freqHz }

// SetAmplitude changes the peak amplitude. Zero silences the tone.
func (t *Tone) SetAmplitude(amplitude float64) { t.amplitude = amplitude }

// SetNoise adds uniform noise in [-amplitude, amplitude] seeded with seed.
func (t *Tone) SetNoise(amplitude float64, seed int64) {
	if amplitude < 0 {
		amplitude = 0
	}
	t.noise = amplitude
	t.rng = rand.New(rand.NewSource(seed))
}

// Next returns the next sample.
func (t *Tone) Next() float64 {
	v := t.amplitude * math.Sin(t.phase)
	if t.noise > 0 {
		v += (t.rng.Float64()*2 - 1) * t.noise
	}

	t.phase += 2 * math.Pi * t.freqHz / t.sampleRate
	if t.phase >= 2*math.Pi {
		t.phase = math.Mod(t.phase, 2*math.Pi)
	}

	return v
}

// Fill writes consecutive samples into dst.
func (t *Tone) Fill(dst []float64) {
	for i := range dst {
		dst[i] = t.Next()
	}
}

// Quantize converts a value to converter counts at countsPerUnit, rounding to
// nearest and saturating to the int32 range.
func Quantize(v, countsPerUnit float64) int32 {
	c := math.Round(v * countsPerUnit)
	switch {
	case c > math.MaxInt32:
		return math.MaxInt32
	case c < math.MinInt32:
		return math.MinInt32
	case math.IsNaN(c):
		return 0
	}
	return int32(c)
}
