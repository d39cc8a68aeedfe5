// Package pitch estimates the fundamental of a transformed frame and maps it
// to an equal-tempered note.
//
// [Estimator] searches a fixed audible band of the power spectrum and refines
// the strongest bin with parabolic interpolation. [Tracker] gates weak
// frames and smooths accepted estimates across passes. [NoteFromFrequency]
// converts a frequency to note name, octave and cents against a reference A4.
//
// Building with the fastmath tag computes semitone distances with the
// algo-approx approximations.
package pitch
