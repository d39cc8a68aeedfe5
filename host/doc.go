// Package host runs the tuner on a desktop machine. It provides a synthetic
// converter ([ToneSource]), a line-oriented screen ([TextRenderer]), a
// renderer decorator that mirrors detected notes as MIDI ([MIDIRenderer]),
// and a board whose controls follow a time-stamped script ([ScriptedBoard]).
package host
