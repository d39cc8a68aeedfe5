//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
)

// adcSource records bursts from the on-chip converter, paced to the raw
// sample rate. 16-bit readings are widened to the 26-bit count scale the
// frame builder expects.
type adcSource struct {
	adc    machine.ADC
	period time.Duration
	burst  []int32
	n      int
}

func newADCSource(pin machine.Pin) *adcSource {
	machine.InitADC()
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})

	geom := core.DefaultProcessorConfig()
	return &adcSource{
		adc:    adc,
		period: time.Duration(float64(time.Second) / geom.SampleRate),
		burst:  make([]int32, geom.FrameSize),
	}
}

func (s *adcSource) Start() {
	next := time.Now()
	for i := range s.burst {
		for time.Now().Before(next) {
		}
		s.burst[i] = int32(s.adc.Get()) << 10
		next = next.Add(s.period)
	}
	s.n = len(s.burst)
}

func (s *adcSource) SamplesCaptured() int { return s.n }

func (s *adcSource) WaitForSamples(int) {}

func (s *adcSource) ReadSample(i int) int32 { return s.burst[i] }
