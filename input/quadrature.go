package input

// Phase is the 2-bit quadrature line state, A<<1 | B. Both lines high (3)
// is the detent rest position.
type Phase uint8

// PhaseIdle is the rest position with both lines high.
const PhaseIdle Phase = 3

// directionTable is indexed by prev<<2 | curr.
var directionTable = [16]int8{
	0, +1, -1, 0,
	-1, 0, 0, +1,
	+1, 0, 0, -1,
	0, -1, +1, 0,
}

// Direction returns +1 (clockwise), -1 (counter-clockwise) or 0 for a
// transition between two phases. Unchanged phases and double steps, where
// both lines flipped at once, are 0.
func Direction(prev, curr Phase) int {
	return int(directionTable[(prev&3)<<2|(curr&3)])
}

// ClockwiseSequence is one full detent cycle in the clockwise direction,
// starting and ending at PhaseIdle.
var ClockwiseSequence = [4]Phase{2, 0, 1, 3}

// CounterClockwiseSequence is one full detent cycle counter-clockwise.
var CounterClockwiseSequence = [4]Phase{1, 0, 2, 3}
