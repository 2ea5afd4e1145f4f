// Package vec provides a fixed-length real vector with elementwise
// arithmetic.  All operations return fresh vectors and never alias their
// receivers or arguments.  Vectors of different lengths panic.
package vec

import "gonum.org/v1/gonum/floats"

type Vec []float64

// New returns the zero vector of length n.
func New(n int) Vec { return make(Vec, n) }

func (v Vec) Copy() Vec {
	c := make(Vec, len(v))
	copy(c, v)
	return c
}

// Add returns v+u.
func (v Vec) Add(u Vec) Vec {
	dst := make(Vec, len(v))
	floats.AddTo(dst, v, u)
	return dst
}

// Sub returns v-u.
func (v Vec) Sub(u Vec) Vec {
	dst := make(Vec, len(v))
	floats.SubTo(dst, v, u)
	return dst
}

// Scale returns c*v.
func (v Vec) Scale(c float64) Vec {
	dst := make(Vec, len(v))
	floats.ScaleTo(dst, c, v)
	return dst
}

// AddScaled returns v+c*u.
func (v Vec) AddScaled(c float64, u Vec) Vec {
	dst := make(Vec, len(v))
	floats.AddScaledTo(dst, v, c, u)
	return dst
}

// Norm returns the euclidean length of v.
func (v Vec) Norm() float64 { return floats.Norm(v, 2) }

// Dist returns the euclidean distance between v and u.
func (v Vec) Dist(u Vec) float64 { return floats.Distance(v, u, 2) }

func (v Vec) Equal(u Vec) bool { return floats.Equal(v, u) }
