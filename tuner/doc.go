// Package tuner sequences the chromatic tuner.
//
// A [Tuner] owns the long-lived [State] and a hierarchical state machine:
//
//	tuner
//	├── welcome  counts ticks behind the splash screen
//	├── idle     draws the home screen, then starts tuning
//	└── tuning   runs one pipeline pass per tick
//
// The tuner superstate handles mode selection (MAIN, DEBUG, CALIBRATION) and
// reference-pitch rotation in every nested state. A pipeline pass captures a
// raw block from the [SampleSource], builds and transforms a frame, estimates
// and tracks the pitch, and pushes the outcome to the [Renderer] on every
// UIDivider-th pass.
//
// [Loop] is the cooperative main loop: it ticks the machine, turns panel
// presses and encoder activity from the [BSP] into signals, and paces itself.
package tuner
