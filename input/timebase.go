package input

import (
	"sync/atomic"
	"time"
)

// Timebase counts periodic timer interrupts. Only differences between
// readings are meaningful; the counters wrap naturally.
type Timebase struct {
	pending atomic.Uint32
	now     atomic.Uint32
}

// Tick is called from the timer interrupt.
func (t *Timebase) Tick() {
	t.pending.Add(1)
}

// TakeTicks returns the ticks since the previous call and folds them into
// the running time.
func (t *Timebase) TakeTicks() uint32 {
	n := t.pending.Swap(0)
	if n != 0 {
		t.now.Add(n)
	}
	return n
}

// Now returns the running time in ticks, including ticks not yet taken.
func (t *Timebase) Now() uint32 {
	return t.now.Load() + t.pending.Load()
}

// Ticker credits a Timebase with the whole periods elapsed on a monotonic
// clock, for boards where the loop itself must stand in for the timer
// interrupt.
type Ticker struct {
	clock  *Timebase
	period time.Duration
	last   time.Time
}

// NewTicker returns a ticker for clock starting at start. Non-positive
// periods fall back to one millisecond.
func NewTicker(clock *Timebase, period time.Duration, start time.Time) *Ticker {
	if period <= 0 {
		period = time.Millisecond
	}
	return &Ticker{clock: clock, period: period, last: start}
}

// Advance ticks the timebase once per whole period between the previous
// call and now and returns the number of ticks. The remainder carries over.
func (t *Ticker) Advance(now time.Time) int {
	elapsed := now.Sub(t.last)
	if elapsed < t.period {
		return 0
	}
	n := int(elapsed / t.period)
	for range n {
		t.clock.Tick()
	}
	t.last = t.last.Add(time.Duration(n) * t.period)
	return n
}
