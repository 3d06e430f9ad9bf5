package features

import (
	"gonum.org/v1/gonum/floats"
)

// Vector is a sparse feature vector. Indices are strictly increasing.
type Vector struct {
	Indices []int
	Values  []float64
}

// Dot computes the inner product of v with a dense weight vector.
func (v Vector) Dot(w []float64) float64 {
	var s float64
	for i, j := range v.Indices {
		s += w[j] * v.Values[i]
	}
	return s
}

// SquaredNorm is the squared L2 norm of v.
func (v Vector) SquaredNorm() float64 {
	if len(v.Values) == 0 {
		return 0
	}
	return floats.Dot(v.Values, v.Values)
}

// AddTo adds a*v to the dense vector w.
func (v Vector) AddTo(w []float64, a float64) {
	for i, j := range v.Indices {
		w[j] += a * v.Values[i]
	}
}

// Dense expands v into a dense vector of length n.
func (v Vector) Dense(n int) []float64 {
	d := make([]float64, n)
	v.AddTo(d, 1)
	return d
}

// Matrix is a set of sparse rows sharing the same feature space.
type Matrix struct {
	Rows []Vector
	Cols int
}

// Len is the number of rows in the matrix.
func (m Matrix) Len() int {
	return len(m.Rows)
}

// Subset returns the rows of m at the given indices.
func (m Matrix) Subset(idx []int) Matrix {
	s := Matrix{Rows: make([]Vector, len(idx)), Cols: m.Cols}
	for i, j := range idx {
		s.Rows[i] = m.Rows[j]
	}
	return s
}
