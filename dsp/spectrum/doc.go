// Package spectrum provides helpers on transform output held as split real
// and imaginary slices: power and magnitude spectra, and the log-compressed
// bar heights used by the debug spectrum view.
package spectrum
