package input

import "testing"

func TestButtonsPriority(t *testing.T) {
	tests := []struct {
		bits uint32
		want int
	}{
		{0b0001, Button1},
		{0b0010, Button2},
		{0b0100, Button3},
		{0b1000, Button4},
		{0b0110, Button2},
		{0b1111, Button1},
		{0b10000, ButtonNone},
	}

	for _, tc := range tests {
		var b Buttons
		b.HandleInterrupt(tc.bits)
		if got := b.TakeLastPress(); got != tc.want {
			t.Fatalf("bits %04b: TakeLastPress = %d, want %d", tc.bits, got, tc.want)
		}
	}
}

func TestButtonsMailbox(t *testing.T) {
	var b Buttons

	b.HandleInterrupt(0b0100)
	b.HandleInterrupt(0) // release
	if got := b.TakeLastPress(); got != Button3 {
		t.Fatalf("TakeLastPress = %d, want 3", got)
	}
	if got := b.TakeLastPress(); got != ButtonNone {
		t.Fatalf("second take = %d, want none", got)
	}

	b.HandleInterrupt(0b0001)
	b.HandleInterrupt(0b0010)
	if got := b.TakeLastPress(); got != Button2 {
		t.Fatalf("overwritten mailbox = %d, want 2", got)
	}
}
