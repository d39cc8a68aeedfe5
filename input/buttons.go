package input

import "sync/atomic"

// Button numbers reported by Buttons.TakeLastPress.
const (
	ButtonNone = iota
	Button1
	Button2
	Button3
	Button4
)

// Buttons latches the most recent panel push button into a single-slot
// mailbox. A newer press overwrites an unread one.
type Buttons struct {
	last atomic.Int32
}

// HandleInterrupt records the pressed button from the port bits. When
// several bits are set the lowest wins. A release (no bits) leaves the
// mailbox untouched.
func (b *Buttons) HandleInterrupt(bits uint32) {
	for i := range 4 {
		if bits&(1<<i) != 0 {
			b.last.Store(int32(Button1 + i))
			return
		}
	}
}

// TakeLastPress returns the latched button 1..4 and clears it, or
// ButtonNone when nothing was pressed since the last call.
func (b *Buttons) TakeLastPress() int {
	return int(b.last.Swap(ButtonNone))
}
