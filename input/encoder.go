package input

import "sync/atomic"

// Line bits of the encoder port.
const (
	LineA      = 1 << 0
	LineB      = 1 << 1
	LineButton = 1 << 2
)

const buttonUnknown = 0xFF

// Event is the drained encoder activity since the previous poll.
type Event struct {
	// Steps is clockwise minus counter-clockwise transitions.
	Steps int
	// Pressed reports at least one press edge.
	Pressed bool
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithFlipDirection inverts the decoded rotation sign.
func WithFlipDirection() EncoderOption {
	return func(e *Encoder) {
		e.flip = true
	}
}

// WithButtonActiveHigh treats a high button line as pressed. The default
// is active-low.
func WithButtonActiveHigh() EncoderOption {
	return func(e *Encoder) {
		e.activeLow = false
	}
}

// WithClock timestamps presses with the given timebase.
func WithClock(tb *Timebase) EncoderOption {
	return func(e *Encoder) {
		e.clock = tb
	}
}

// Encoder decodes a quadrature rotary encoder with an integrated push button.
//
// HandleEdge runs in interrupt context. prev and lastButton are touched only
// there; everything the main loop reads is atomic.
type Encoder struct {
	flip      bool
	activeLow bool
	clock     *Timebase

	prev       Phase
	lastButton uint8

	cw        atomic.Int32
	ccw       atomic.Int32
	pressed   atomic.Bool
	pressTime atomic.Uint32
}

// NewEncoder returns a decoder seeded with the line state read from the
// hardware at start-up.
func NewEncoder(initial Phase, opts ...EncoderOption) *Encoder {
	e := &Encoder{
		activeLow:  true,
		prev:       initial & 3,
		lastButton: buttonUnknown,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// HandleEdge processes one line-transition interrupt given the current
// port bits (LineA, LineB, LineButton).
func (e *Encoder) HandleEdge(lines uint8) {
	curr := Phase((lines&LineA)<<1 | (lines&LineB)>>1)

	d := Direction(e.prev, curr)
	if e.flip {
		d = -d
	}
	switch {
	case d > 0:
		e.cw.Add(1)
	case d < 0:
		e.ccw.Add(1)
	}
	e.prev = curr

	btn := (lines & LineButton) >> 2
	if e.activeLow {
		btn ^= 1
	}

	switch {
	case e.lastButton == buttonUnknown:
		e.lastButton = btn
	case btn != e.lastButton:
		e.lastButton = btn
		if btn == 1 {
			if e.clock != nil {
				e.pressTime.Store(e.clock.Now())
			}
			e.pressed.Store(true)
		}
	}
}

// TakeEvents returns and clears the accumulated steps and press flag.
func (e *Encoder) TakeEvents() Event {
	cw := e.cw.Swap(0)
	ccw := e.ccw.Swap(0)
	return Event{
		Steps:   int(cw) - int(ccw),
		Pressed: e.pressed.Swap(false),
	}
}

// LastPressTime returns the timebase tick of the most recent press.
func (e *Encoder) LastPressTime() uint32 {
	return e.pressTime.Load()
}

// Lines returns the port bits for phase p with the button held or released,
// honouring the configured button polarity.
func (e *Encoder) Lines(p Phase, buttonDown bool) uint8 {
	a := uint8(p>>1) & 1
	b := uint8(p) & 1
	lines := a*LineA | b*LineB

	high := buttonDown != e.activeLow
	if high {
		lines |= LineButton
	}
	return lines
}
