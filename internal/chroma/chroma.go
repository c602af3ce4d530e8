// Package chroma folds whitened, mask-weighted spectra into 12-dimensional
// pitch-class energy vectors and smooths them into a stable, key-invariant
// chroma signal.
package chroma

import "gonum.org/v1/gonum/floats"

// Vector is an ordered 12-tuple of non-negative floats, L2-normalized
// after every stage it leaves.
type Vector [12]float64

// normalize scales v to unit L2 norm in place, leaving the zero vector
// alone when its norm is already zero.
func normalize(v []float64) {
	norm := floats.Norm(v, 2)
	if norm == 0 {
		return
	}
	floats.Scale(1/norm, v)
}
