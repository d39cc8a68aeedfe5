// Package interp provides sub-sample interpolation primitives for spectral
// peak refinement.
package interp
