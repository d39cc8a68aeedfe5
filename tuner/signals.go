package tuner

import "github.com/rhythmw9/Chromatic-Tuner/internal/hsm"

// Signals understood by the tuner state machine.
const (
	SigTick hsm.Signal = hsm.UserSignal + iota
	SigButtonMain
	SigButtonDebug
	SigButtonCal
	SigRotateCW
	SigRotateCCW
	// SigTerminate is reserved and ignored by every state.
	SigTerminate
)

// SignalName returns a readable name for tuner and reserved signals.
func SignalName(sig hsm.Signal) string {
	switch sig {
	case SigTick:
		return "TICK"
	case SigButtonMain:
		return "BTN_MAIN"
	case SigButtonDebug:
		return "BTN_DEBUG"
	case SigButtonCal:
		return "BTN_CAL"
	case SigRotateCW:
		return "ROT_CW"
	case SigRotateCCW:
		return "ROT_CCW"
	case SigTerminate:
		return "TERMINATE"
	default:
		return hsm.SignalName(sig)
	}
}
