// Command tunersim runs the chromatic tuner against a synthetic input.
//
// Usage:
//
//	tunersim [flags]
//
// The converter is fed a sine at -freq with optional noise. Panel buttons
// and the encoder follow the -script control script. Every screen update
// is printed to stdout; state traces and readings go to stderr.
//
// Examples:
//
//	tunersim -freq 82.41
//	tunersim -freq 446 -script "600:cal,610:cw*6" -ticks 800
//	tunersim -freq 196 -midi /dev/ttyUSB0 -baud 31250
//	tunersim -selftest
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	ossignal "os/signal"
	"time"

	"go.bug.st/serial"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/fft"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/signal"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/trig"
	"github.com/rhythmw9/Chromatic-Tuner/host"
	"github.com/rhythmw9/Chromatic-Tuner/tuner"
)

var logger = slog.Default()

func initLogger(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

type options struct {
	freq, amp, noise float64
	ref              float64
	ticks            uint
	script           string
	midiPort         string
	baud             int
	period           time.Duration
	series           bool
	verbose          bool
	selftest         bool
}

func main() {
	var o options
	flag.Float64Var(&o.freq, "freq", 440, "input frequency in Hz")
	flag.Float64Var(&o.amp, "amp", 0.5, "input peak amplitude in volts")
	flag.Float64Var(&o.noise, "noise", 0, "uniform noise peak amplitude in volts")
	flag.Float64Var(&o.ref, "ref", 440, "initial A4 reference in Hz (420..460)")
	flag.UintVar(&o.ticks, "ticks", 700, "number of main loop iterations, 0 runs until interrupted")
	flag.StringVar(&o.script, "script", "", `control script, e.g. "600:cal,610:cw*3,700:press"`)
	flag.StringVar(&o.midiPort, "midi", "", "serial device for MIDI note output")
	flag.IntVar(&o.baud, "baud", 31250, "MIDI serial baud rate")
	flag.DurationVar(&o.period, "period", 0, "delay between loop iterations")
	flag.BoolVar(&o.series, "series", false, "seed twiddles from the Taylor series instead of the math package")
	flag.BoolVar(&o.verbose, "v", false, "log state transitions and every reading")
	flag.BoolVar(&o.selftest, "selftest", false, "check the transform against the reference FFT and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tunersim [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the chromatic tuner against a synthetic sine.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	initLogger(os.Stderr, o.verbose)

	if o.selftest {
		if err := selfTest(os.Stdout); err != nil {
			logger.Error("self-test failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		logger.Error("tunersim", "err", err)
		os.Exit(1)
	}
}

// selfTest compares both twiddle sources against the reference transform
// and runs one pipeline pass on a generated A4.
func selfTest(w io.Writer) error {
	for _, tc := range []struct {
		name string
		src  trig.Source
	}{
		{"std", trig.Std{}},
		{"series", trig.Series{}},
	} {
		p, err := fft.NewPlan(fft.MaxSize, fft.WithTrig(tc.src))
		if err != nil {
			return err
		}
		e, err := p.SelfTest()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-7s N=%d stages=%d max relative error %.3g\n", tc.name, p.Len(), p.Stages(), e)
		if e > 1e-3 {
			return fmt.Errorf("%s twiddles: relative error %.3g", tc.name, e)
		}
	}

	geom := core.DefaultProcessorConfig()
	raw, err := signal.NewGenerator().SineCounts(pitch.DefaultReferenceHz, 0.5, 0, geom.RawLength())
	if err != nil {
		return err
	}
	src, err := host.NewBlockSource(geom, raw)
	if err != nil {
		return err
	}
	p, err := tuner.NewPipeline(src, tuner.DefaultConfig())
	if err != nil {
		return err
	}
	res := p.Run(pitch.DefaultReferenceHz)
	fmt.Fprintf(w, "A4 tone: bin %d, %.2f Hz, %s\n", res.Peak.Bin, res.Reading.Frequency, res.Reading.Note)
	if res.Reading.Note.MIDI != 69 {
		return fmt.Errorf("A4 tone detected as %s", res.Reading.Note)
	}
	return nil
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	geom := core.DefaultProcessorConfig()

	var sourceOpts []host.SourceOption
	if o.noise > 0 {
		sourceOpts = append(sourceOpts, host.WithNoise(o.noise, time.Now().UnixNano()))
	}
	src := host.NewToneSource(geom, o.freq, o.amp, sourceOpts...)

	screen := host.NewTextRenderer(stdout)
	var r tuner.Renderer = screen

	if o.midiPort != "" {
		port, err := serial.Open(o.midiPort, &serial.Mode{BaudRate: o.baud})
		if err != nil {
			return fmt.Errorf("open %s: %w", o.midiPort, err)
		}
		logger.Info("serial: port opened", "device", o.midiPort, "baud", o.baud)

		m := host.NewMIDIRenderer(screen, port, host.WithMIDILogger(logger))
		defer func() {
			if err := m.Close(); err != nil {
				logger.Warn("midi: release failed", "err", err)
			}
			_ = port.Close()
		}()
		r = m
	}

	opts := []tuner.Option{
		tuner.WithReference(o.ref),
		tuner.WithLogger(logger),
	}
	if o.series {
		opts = append(opts, tuner.WithTrig(trig.Series{}))
	}
	t, err := tuner.New(src, r, opts...)
	if err != nil {
		return err
	}

	board, err := host.NewScriptedBoard(o.script)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := tuner.NewLoop(t, board, tuner.WithPacer(func() {
		board.Tick()
		if o.ticks > 0 && board.TimeNow() >= uint32(o.ticks) {
			cancel()
		}
		if o.period > 0 {
			time.Sleep(o.period)
		}
	}))

	t.Start()
	err = loop.Run(ctx)

	st := t.State()
	logger.Info("stopped",
		"iterations", loop.Iterations(),
		"state", t.StateName(),
		"mode", st.Mode,
		"freq_hz", st.FrequencyHz,
		"note", st.Note.String(),
		"ref_hz", st.ReferenceHz)

	if werr := screen.Err(); werr != nil {
		return werr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
