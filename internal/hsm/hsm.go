// Package hsm is a small hierarchical state machine engine.
//
// A State handles a Signal by returning Handled, Unhandled (delegate to the
// parent) or Transition(target). Transitions run exit actions up to the
// least common ancestor, entry actions down to the target, then follow Init
// transitions into nested states.
package hsm

import (
	"fmt"
	"log/slog"
)

// Signal identifies an event dispatched into a Machine.
type Signal int

// Reserved signals. Application signals start at UserSignal.
const (
	Entry Signal = iota + 1
	Exit
	Init
	UserSignal
)

type outcomeKind uint8

const (
	kindUnhandled outcomeKind = iota
	kindHandled
	kindTransition
)

// Outcome is the result of a state handler.
type Outcome struct {
	kind   outcomeKind
	target *State
}

var (
	// Handled consumes the signal.
	Handled = Outcome{kind: kindHandled}
	// Unhandled passes the signal to the parent state.
	Unhandled = Outcome{kind: kindUnhandled}
)

// Transition consumes the signal and moves the machine to target.
func Transition(target *State) Outcome {
	if target == nil {
		panic("hsm: transition to nil state")
	}
	return Outcome{kind: kindTransition, target: target}
}

// State is a node in the state hierarchy. A nil Parent marks a top-level
// state. A nil Handle treats every signal as unhandled.
type State struct {
	Name   string
	Parent *State
	Handle func(Signal) Outcome
}

func (s *State) handle(sig Signal) Outcome {
	if s.Handle == nil {
		return Unhandled
	}
	return s.Handle(sig)
}

func (s *State) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.Name
}

// IsAncestorOf reports whether s encloses other. A state is its own ancestor.
func (s *State) IsAncestorOf(other *State) bool {
	for p := other; p != nil; p = p.Parent {
		if p == s {
			return true
		}
	}
	return false
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger traces entry, exit and init actions at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSignalNames sets the formatter used for signals in trace output.
func WithSignalNames(name func(Signal) string) Option {
	return func(m *Machine) {
		if name != nil {
			m.signalName = name
		}
	}
}

// Machine dispatches signals through a state hierarchy.
// It is not safe for concurrent use.
type Machine struct {
	initial    *State
	current    *State
	logger     *slog.Logger
	signalName func(Signal) string
}

// New returns a machine whose initial pseudo-state transitions to initial.
func New(initial *State, opts ...Option) *Machine {
	if initial == nil {
		panic("hsm: nil initial state")
	}
	m := &Machine{
		initial:    initial,
		logger:     slog.New(slog.DiscardHandler),
		signalName: SignalName,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// SignalName formats reserved signals by name and others numerically.
func SignalName(sig Signal) string {
	switch sig {
	case Entry:
		return "ENTRY"
	case Exit:
		return "EXIT"
	case Init:
		return "INIT"
	default:
		return fmt.Sprintf("SIG(%d)", int(sig))
	}
}

// Start takes the initial transition: it enters every state from the top
// down to the initial target and follows nested Init transitions.
func (m *Machine) Start() {
	m.enterFrom(nil, m.initial)
	m.current = m.initial
	m.drillInit()
}

// Current returns the innermost active state, nil before Start.
func (m *Machine) Current() *State { return m.current }

// IsIn reports whether s is active, directly or as an enclosing state.
func (m *Machine) IsIn(s *State) bool {
	return m.current != nil && s.IsAncestorOf(m.current)
}

// Dispatch delivers sig to the innermost active state, bubbling unhandled
// signals up the hierarchy. It reports whether any state consumed it.
func (m *Machine) Dispatch(sig Signal) bool {
	if m.current == nil {
		panic("hsm: dispatch before Start")
	}

	for s := m.current; s != nil; s = s.Parent {
		out := s.handle(sig)
		switch out.kind {
		case kindHandled:
			return true
		case kindTransition:
			m.logger.Debug("state transition",
				"signal", m.signalName(sig), "source", s.Name, "target", out.target.Name)
			m.transition(s, out.target)
			return true
		}
	}

	m.logger.Debug("signal ignored", "signal", m.signalName(sig), "state", m.current.Name)
	return false
}

func (m *Machine) transition(source, target *State) {
	lca := leastCommonAncestor(source, target)

	for s := m.current; s != lca; s = s.Parent {
		m.logger.Debug("state exit", "state", s.Name)
		s.handle(Exit)
	}

	m.enterFrom(lca, target)
	m.current = target
	m.drillInit()
}

// leastCommonAncestor returns the innermost state that stays active across
// a transition from source to target, nil for the top level. Self and
// ancestor transitions leave and re-enter the target.
func leastCommonAncestor(source, target *State) *State {
	if source == target {
		return source.Parent
	}
	if source.IsAncestorOf(target) {
		return source
	}
	for p := source.Parent; p != nil; p = p.Parent {
		if p.IsAncestorOf(target) && p != target {
			return p
		}
	}
	return nil
}

// enterFrom runs entry actions for the states strictly below from down to
// and including to, outermost first.
func (m *Machine) enterFrom(from, to *State) {
	var path []*State
	for s := to; s != from && s != nil; s = s.Parent {
		path = append(path, s)
	}
	for i := len(path) - 1; i >= 0; i-- {
		m.logger.Debug("state entry", "state", path[i].Name)
		path[i].handle(Entry)
	}
}

func (m *Machine) drillInit() {
	for {
		out := m.current.handle(Init)
		if out.kind != kindTransition {
			return
		}
		if out.target == m.current || !m.current.IsAncestorOf(out.target) {
			panic(fmt.Sprintf("hsm: init of %s must target a substate, got %s", m.current.Name, out.target.Name))
		}
		m.logger.Debug("state init", "state", m.current.Name, "target", out.target.Name)
		m.enterFrom(m.current, out.target)
		m.current = out.target
	}
}
