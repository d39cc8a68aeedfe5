// Package fft implements the fixed-size radix-2 decimation-in-time transform
// used by the tuner pipeline.
//
// A [Plan] owns a per-stage twiddle table sized for [MaxStages] stages and is
// built once. [Plan.Transform] then runs without allocating, rewriting the
// split real/imaginary buffers in place and leaving bins in natural order.
//
// [Reference] and [DFT] exist to cross-check the plan against algo-fft and a
// direct evaluation of the transform sum.
package fft
