package tuner

import (
	"log/slog"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/internal/hsm"
)

// Tuner is the mode state machine together with the state it owns.
// It is driven from a single goroutine.
type Tuner struct {
	cfg      Config
	state    State
	renderer Renderer
	pipeline *Pipeline
	machine  *hsm.Machine
	logger   *slog.Logger

	uiCount int

	top, welcome, idle, tuning *hsm.State
}

// New returns a tuner reading from source and drawing on r. Call Start
// before dispatching signals.
func New(source SampleSource, r Renderer, opts ...Option) (*Tuner, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p, err := NewPipeline(source, cfg)
	if err != nil {
		return nil, err
	}

	t := &Tuner{
		cfg:      cfg,
		state:    State{ReferenceHz: pitch.ClampReference(cfg.ReferenceHz), Note: pitch.Note{Name: "--"}},
		renderer: r,
		pipeline: p,
		logger:   cfg.Logger,
	}

	t.top = &hsm.State{Name: "tuner", Handle: t.onTuner}
	t.welcome = &hsm.State{Name: "welcome", Parent: t.top, Handle: t.onWelcome}
	t.idle = &hsm.State{Name: "idle", Parent: t.top, Handle: t.onIdle}
	t.tuning = &hsm.State{Name: "tuning", Parent: t.top, Handle: t.onTuning}

	t.machine = hsm.New(t.top,
		hsm.WithLogger(cfg.Logger),
		hsm.WithSignalNames(SignalName))

	return t, nil
}

// Start takes the initial transition into the welcome screen.
func (t *Tuner) Start() { t.machine.Start() }

// Dispatch delivers one signal.
func (t *Tuner) Dispatch(sig hsm.Signal) { t.machine.Dispatch(sig) }

// State returns a snapshot of the extended state.
func (t *Tuner) State() State { return t.state }

// Mode returns the active mode.
func (t *Tuner) Mode() Mode { return t.state.Mode }

// StateName returns the name of the innermost active state.
func (t *Tuner) StateName() string { return t.machine.Current().String() }

// Config returns the construction parameters.
func (t *Tuner) Config() Config { return t.cfg }

func (t *Tuner) onTuner(sig hsm.Signal) hsm.Outcome {
	switch sig {
	case hsm.Init:
		t.state.Mode = ModeMain
		return hsm.Transition(t.welcome)
	case SigButtonMain:
		t.state.Mode = ModeMain
		t.renderer.DrawHome(t.state.ReferenceHz)
		t.logger.Info("mode", "mode", ModeMain)
		return hsm.Handled
	case SigButtonDebug:
		if t.state.Mode != ModeDebug {
			t.state.Mode = ModeDebug
			t.state.DebugPage = 0
		} else {
			t.state.DebugPage ^= 1
		}
		t.renderer.DrawDebug(t.state.DebugPage)
		t.logger.Info("mode", "mode", ModeDebug, "page", t.state.DebugPage)
		return hsm.Handled
	case SigButtonCal:
		t.state.Mode = ModeCalibration
		t.renderer.DrawCalibration(t.state.ReferenceHz)
		t.logger.Info("mode", "mode", ModeCalibration, "ref_hz", t.state.ReferenceHz)
		return hsm.Handled
	case SigRotateCW, SigRotateCCW:
		if t.state.Mode == ModeCalibration {
			step := 1.0
			if sig == SigRotateCCW {
				step = -1
			}
			t.state.ReferenceHz = pitch.ClampReference(t.state.ReferenceHz + step)
			t.renderer.UpdateReference(t.state.ReferenceHz)
		}
		return hsm.Handled
	}
	return hsm.Unhandled
}

func (t *Tuner) onWelcome(sig hsm.Signal) hsm.Outcome {
	switch sig {
	case hsm.Entry:
		t.state.WelcomeTicks = 0
		t.renderer.DrawWelcome()
		return hsm.Handled
	case SigTick:
		t.state.WelcomeTicks++
		if t.state.WelcomeTicks >= t.cfg.WelcomeTicks {
			return hsm.Transition(t.idle)
		}
		return hsm.Handled
	}
	return hsm.Unhandled
}

func (t *Tuner) onIdle(sig hsm.Signal) hsm.Outcome {
	switch sig {
	case hsm.Entry:
		t.renderer.DrawHome(t.state.ReferenceHz)
		return hsm.Handled
	case SigTick:
		return hsm.Transition(t.tuning)
	}
	return hsm.Unhandled
}

func (t *Tuner) onTuning(sig hsm.Signal) hsm.Outcome {
	if sig == SigTick {
		t.runOnce()
		return hsm.Handled
	}
	return hsm.Unhandled
}

// runOnce performs one pipeline pass and, on every UIDivider-th pass,
// pushes the outcome to the renderer for the active mode.
func (t *Tuner) runOnce() {
	t.uiCount++
	drawUI := t.uiCount >= t.cfg.UIDivider
	if drawUI {
		t.uiCount = 0
	}

	res := t.pipeline.Run(t.state.ReferenceHz)
	t.state.FrequencyHz = res.Reading.Frequency
	t.state.PeakPower = res.Peak.Power

	if !res.Reading.HasNote {
		if drawUI {
			t.showNoNote(res.Reading.Weak)
		}
		return
	}

	n := res.Reading.Note
	t.state.Note = n
	t.state.NoteShown = true

	if drawUI {
		switch t.state.Mode {
		case ModeMain:
			t.renderer.UpdateReadout(t.state.FrequencyHz, n.BarCents())
			t.renderer.UpdateNote(n)
		case ModeDebug:
			info := t.debugInfo()
			info.FrequencyHz = t.state.FrequencyHz
			info.Note = n
			info.Cents = n.BarCents()
			if t.state.DebugPage == 0 {
				t.renderer.UpdateDebug(info)
				t.renderer.DrawSpectrum(res.Spectrum)
			} else {
				info.PeakPower = res.Peak.Power
				t.renderer.UpdateDebug(info)
			}
		}
	}

	t.logger.Debug("reading",
		"freq_hz", t.state.FrequencyHz,
		"note", n.Name,
		"octave", n.Octave,
		"cents", n.BarCents())
}

func (t *Tuner) showNoNote(weak bool) {
	switch t.state.Mode {
	case ModeMain:
		if t.state.NoteShown {
			t.renderer.UpdateReadout(0, 0)
			t.renderer.ClearNote()
			t.state.NoteShown = false
		}
	case ModeDebug:
		t.renderer.UpdateDebug(t.debugInfo())
		if t.state.DebugPage == 0 && weak {
			t.renderer.ClearSpectrum()
		}
	}
}

// debugInfo returns the debug page content for "no signal".
func (t *Tuner) debugInfo() DebugInfo {
	geom := t.pipeline.Geometry()
	return DebugInfo{
		Page:            t.state.DebugPage,
		Note:            pitch.Note{Name: "--"},
		EffectiveRateHz: geom.EffectiveSampleRate(),
		BinSpacingHz:    geom.BinSpacing(),
		FrameSize:       geom.FrameSize,
		Decimation:      geom.Decimation,
	}
}
