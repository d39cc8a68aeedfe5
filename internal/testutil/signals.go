package testutil

import (
	"math"
	"math/rand"
)

// AdcCountsPerVolt converts volts to raw capture counts for the tuner's
// 3.3 V / 2^26 converter scaling.
const AdcCountsPerVolt = 67108864.0 / 3.3

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// RawTone returns raw capture counts for a sine of amplitudeVolts riding on
// offsetCounts, sampled at rawRate.
func RawTone(freqHz, rawRate, amplitudeVolts float64, offsetCounts int32, length int) []int32 {
	out := make([]int32, length)
	step := 2 * math.Pi * freqHz / rawRate
	for i := range out {
		v := amplitudeVolts * math.Sin(step*float64(i)) * AdcCountsPerVolt
		out[i] = offsetCounts + int32(math.Round(v))
	}
	return out
}
