package host

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rhythmw9/Chromatic-Tuner/input"
)

// ErrScript is returned for malformed control scripts.
var ErrScript = errors.New("host: bad control script")

type controlKind int

const (
	controlButton controlKind = iota
	controlRotate
	controlPress
)

type control struct {
	at     uint32
	kind   controlKind
	button int
	// detents is signed: positive clockwise.
	detents int
}

// parseScript parses a comma-separated control script of the form
// "tick:action[*count]". Actions are main, debug, cal, btn4 (panel buttons),
// cw and ccw (one encoder detent each) and press (encoder push). Entries are
// returned ordered by tick; entries on the same tick keep their order.
//
//	600:cal, 610:cw*3, 700:press
func parseScript(script string) ([]control, error) {
	var out []control
	for field := range strings.SplitSeq(script, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		tick, action, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q lacks a tick", ErrScript, field)
		}
		at, err := strconv.ParseUint(strings.TrimSpace(tick), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: tick %q: %v", ErrScript, tick, err)
		}

		count := 1
		if name, n, ok := strings.Cut(action, "*"); ok {
			count, err = strconv.Atoi(strings.TrimSpace(n))
			if err != nil || count < 1 {
				return nil, fmt.Errorf("%w: count %q", ErrScript, n)
			}
			action = name
		}

		c := control{at: uint32(at)}
		switch strings.ToLower(strings.TrimSpace(action)) {
		case "main":
			c.kind, c.button = controlButton, input.Button1
		case "debug":
			c.kind, c.button = controlButton, input.Button2
		case "cal":
			c.kind, c.button = controlButton, input.Button3
		case "btn4":
			c.kind, c.button = controlButton, input.Button4
		case "cw":
			c.kind, c.detents = controlRotate, count
		case "ccw":
			c.kind, c.detents = controlRotate, -count
		case "press":
			c.kind = controlPress
		default:
			return nil, fmt.Errorf("%w: unknown action %q", ErrScript, action)
		}
		if c.kind != controlRotate && count != 1 {
			return nil, fmt.Errorf("%w: %q takes no count", ErrScript, action)
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].at < out[j].at })
	return out, nil
}

// ScriptedBoard is an input.Board whose interrupts are raised by a control
// script. Tick plays the timer interrupt and then every control due at the
// new time, feeding real line transitions into the encoder.
type ScriptedBoard struct {
	*input.Board

	controls []control
	next     int
	phase    input.Phase
}

// NewScriptedBoard parses script and returns a board at rest.
func NewScriptedBoard(script string, opts ...input.EncoderOption) (*ScriptedBoard, error) {
	controls, err := parseScript(script)
	if err != nil {
		return nil, err
	}
	b := &ScriptedBoard{
		Board:    input.NewBoard(input.PhaseIdle, opts...),
		controls: controls,
		phase:    input.PhaseIdle,
	}
	// The encoder learns the released button level from its first edge.
	b.edge(input.PhaseIdle, false)
	return b, nil
}

// Done reports whether every control has been played.
func (b *ScriptedBoard) Done() bool { return b.next >= len(b.controls) }

// Tick advances the timebase by one tick and raises the due controls.
func (b *ScriptedBoard) Tick() {
	b.Clock.Tick()
	now := b.Clock.Now()
	for ; b.next < len(b.controls) && b.controls[b.next].at <= now; b.next++ {
		b.play(b.controls[b.next])
	}
}

func (b *ScriptedBoard) play(c control) {
	switch c.kind {
	case controlButton:
		b.Buttons.HandleInterrupt(1 << (c.button - 1))
		b.Buttons.HandleInterrupt(0)
	case controlRotate:
		seq := input.ClockwiseSequence
		n := c.detents
		if n < 0 {
			seq, n = input.CounterClockwiseSequence, -n
		}
		for range n {
			for _, p := range seq {
				b.edge(p, false)
			}
		}
	case controlPress:
		b.edge(b.phase, true)
		b.edge(b.phase, false)
	}
}

func (b *ScriptedBoard) edge(p input.Phase, down bool) {
	b.phase = p
	b.Encoder.HandleEdge(b.Encoder.Lines(p, down))
}
