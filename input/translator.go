package input

const (
	// DefaultSensitivity is the number of encoder steps per adjustment.
	DefaultSensitivity = 3
	// DefaultIdleLimit is the number of quiet polls before calibration ends.
	DefaultIdleLimit = 50
)

// Action is a signal requested by the Translator.
type Action int

const (
	// ActionRotateCW and ActionRotateCCW nudge the reference one step.
	ActionRotateCW Action = iota + 1
	ActionRotateCCW
	// ActionExitCalibration leaves calibration after a press or idle timeout.
	ActionExitCalibration
)

func (a Action) String() string {
	switch a {
	case ActionRotateCW:
		return "rotate-cw"
	case ActionRotateCCW:
		return "rotate-ccw"
	case ActionExitCalibration:
		return "exit-calibration"
	default:
		return "none"
	}
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithSensitivity sets steps per adjustment. Values below 1 are ignored.
func WithSensitivity(steps int) TranslatorOption {
	return func(t *Translator) {
		if steps >= 1 {
			t.sensitivity = steps
		}
	}
}

// WithIdleLimit sets the idle timeout in polls. Values below 1 are ignored.
func WithIdleLimit(polls int) TranslatorOption {
	return func(t *Translator) {
		if polls >= 1 {
			t.idleLimit = polls
		}
	}
}

// Translator rate-limits encoder rotation into calibration adjustments and
// ends calibration after a quiet period or a press.
type Translator struct {
	sensitivity int
	idleLimit   int

	acc  int
	idle int
}

// NewTranslator returns a translator with zeroed counters.
func NewTranslator(opts ...TranslatorOption) *Translator {
	t := &Translator{
		sensitivity: DefaultSensitivity,
		idleLimit:   DefaultIdleLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Poll folds one drained encoder event into the counters and calls emit for
// every resulting action. Outside calibration the counters stay at zero and
// nothing is emitted.
func (t *Translator) Poll(calibrating bool, ev Event, emit func(Action)) {
	if !calibrating {
		t.acc, t.idle = 0, 0
		return
	}

	if ev.Steps != 0 {
		t.acc += ev.Steps
		for t.acc >= t.sensitivity {
			emit(ActionRotateCW)
			t.acc -= t.sensitivity
		}
		for t.acc <= -t.sensitivity {
			emit(ActionRotateCCW)
			t.acc += t.sensitivity
		}
		t.idle = 0
	} else if t.idle < t.idleLimit {
		t.idle++
	}

	if ev.Pressed {
		t.idle = t.idleLimit
	}

	if t.idle >= t.idleLimit {
		emit(ActionExitCalibration)
		t.acc, t.idle = 0, 0
	}
}

// Accumulator returns the unconsumed step count.
func (t *Translator) Accumulator() int { return t.acc }

// Idle returns the number of consecutive quiet polls.
func (t *Translator) Idle() int { return t.idle }
