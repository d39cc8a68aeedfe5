// Package input decodes the tuner's physical controls.
//
// Interrupt handlers call [Encoder.HandleEdge], [Buttons.HandleInterrupt]
// and [Timebase.Tick]. The main loop drains them once per iteration with the
// Take methods. Every shared field has one writer (the handler) and one
// take-and-clear reader (the loop), so state crosses contexts through
// atomics only and no event is delivered twice.
//
// [Translator] turns drained encoder events into calibration actions.
package input
