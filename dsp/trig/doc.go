// Package trig supplies the sine and cosine values used to seed transform
// coefficient tables.
//
// Tables are built once, so the sources here trade speed for independence
// from any particular math implementation. [Std] defers to the math package;
// [Series] evaluates truncated Taylor series with half-angle reduction and is
// suitable for targets without a hardware FPU library.
package trig
