// Package vector implements the small fixed-dimension vector algebra the
// DFSPH solver operates on: positions, velocities, accelerations and
// kernel gradients. DIM is fixed at build time to either 2 or 3.
package vector

import "gonum.org/v1/gonum/floats"

// DIM is the spatial dimension of every Vector in a given build. Changing
// it recompiles the whole module against a different dimensionality; the
// solver never mixes 2D and 3D data in one run.
const DIM = 2

// Vector is a DIM-length tuple of real components. It is a plain slice
// rather than a [DIM]float64 array so that gonum's floats helpers — built
// for slices — apply directly without a conversion step.
type Vector []float64

// Zero returns a new zero vector.
func Zero() Vector {
	return make(Vector, DIM)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, DIM)
	copy(out, v)
	return out
}

// Add returns v + other.
func (v Vector) Add(other Vector) Vector {
	out := make(Vector, DIM)
	floats.AddTo(out, v, other)
	return out
}

// AddInPlace mutates v to v + other.
func (v Vector) AddInPlace(other Vector) {
	floats.Add(v, other)
}

// Sub returns v - other.
func (v Vector) Sub(other Vector) Vector {
	out := v.Clone()
	floats.Sub(out, other)
	return out
}

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector {
	out := v.Clone()
	floats.Scale(s, out)
	return out
}

// ScaleInPlace mutates v to v * s.
func (v Vector) ScaleInPlace(s float64) {
	floats.Scale(s, v)
}

// Dot returns the dot product of v and other.
func (v Vector) Dot(other Vector) float64 {
	return floats.Dot(v, other)
}

// NormSq returns the squared Euclidean norm of v.
func (v Vector) NormSq() float64 {
	return floats.Dot(v, v)
}

// IsZero reports whether every component of v is exactly zero.
func (v Vector) IsZero() bool {
	for _, c := range v {
		if c != 0 {
			return false
		}
	}
	return true
}

// Fill sets every component of v to value in place.
func (v Vector) Fill(value float64) {
	for i := range v {
		v[i] = value
	}
}
