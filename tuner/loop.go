package tuner

import (
	"context"

	"github.com/rhythmw9/Chromatic-Tuner/input"
)

// Panel buttons bound to modes. Button 4 has no function.
const (
	buttonMain  = input.Button1
	buttonDebug = input.Button2
	buttonCal   = input.Button3
)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithPacer sets the function called after every iteration of Run, such
// as a fixed delay.
func WithPacer(pace func()) LoopOption {
	return func(l *Loop) {
		if pace != nil {
			l.pace = pace
		}
	}
}

// WithTranslator replaces the default encoder translator.
func WithTranslator(tr *input.Translator) LoopOption {
	return func(l *Loop) {
		if tr != nil {
			l.translator = tr
		}
	}
}

// Loop is the cooperative main loop of the tuner.
type Loop struct {
	tuner      *Tuner
	bsp        BSP
	translator *input.Translator
	pace       func()
	iterations uint64
}

// NewLoop returns a loop driving t from bsp.
func NewLoop(t *Tuner, bsp BSP, opts ...LoopOption) *Loop {
	l := &Loop{
		tuner:      t,
		bsp:        bsp,
		translator: input.NewTranslator(),
		pace:       func() {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Step runs one iteration: drain the timebase, tick the machine, dispatch
// the latest panel press, then translate encoder activity.
func (l *Loop) Step() {
	l.bsp.TakeTimerTicks()
	l.tuner.Dispatch(SigTick)

	switch l.bsp.TakeLastPress() {
	case buttonMain:
		l.tuner.Dispatch(SigButtonMain)
	case buttonDebug:
		l.tuner.Dispatch(SigButtonDebug)
	case buttonCal:
		l.tuner.Dispatch(SigButtonCal)
	}

	ev := l.bsp.EncoderEvents()
	l.translator.Poll(l.tuner.Mode() == ModeCalibration, ev, l.dispatchAction)

	l.iterations++
}

func (l *Loop) dispatchAction(a input.Action) {
	switch a {
	case input.ActionRotateCW:
		l.tuner.Dispatch(SigRotateCW)
	case input.ActionRotateCCW:
		l.tuner.Dispatch(SigRotateCCW)
	case input.ActionExitCalibration:
		l.tuner.Dispatch(SigButtonMain)
	}
}

// Iterations returns the number of completed steps.
func (l *Loop) Iterations() uint64 { return l.iterations }

// Run steps and paces until ctx is done and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		l.Step()
		l.pace()
	}
}
