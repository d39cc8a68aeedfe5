package input

// Board bundles the interrupt-fed controls of the tuner into the polling
// surface the main loop consumes.
type Board struct {
	Buttons *Buttons
	Encoder *Encoder
	Clock   *Timebase
}

// NewBoard wires an encoder seeded at initial to a fresh timebase.
func NewBoard(initial Phase, opts ...EncoderOption) *Board {
	clock := &Timebase{}
	opts = append([]EncoderOption{WithClock(clock)}, opts...)
	return &Board{
		Buttons: &Buttons{},
		Encoder: NewEncoder(initial, opts...),
		Clock:   clock,
	}
}

// TakeLastPress drains the panel button mailbox.
func (b *Board) TakeLastPress() int { return b.Buttons.TakeLastPress() }

// TakeTimerTicks drains the timebase.
func (b *Board) TakeTimerTicks() uint32 { return b.Clock.TakeTicks() }

// TimeNow returns the running time in ticks.
func (b *Board) TimeNow() uint32 { return b.Clock.Now() }

// EncoderEvents drains the encoder.
func (b *Board) EncoderEvents() Event { return b.Encoder.TakeEvents() }
