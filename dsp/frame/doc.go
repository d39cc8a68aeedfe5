// Package frame turns a raw, oversampled capture block into a transform
// input frame.
//
// Building a frame removes the block's DC average, keeps every Dth raw
// sample, scales converter counts to volts and applies an analysis window
// to the real channel. The imaginary channel is zeroed.
package frame
