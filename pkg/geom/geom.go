// Package geom implements the dense-matrix geometry kernel: vector
// normalization, column-wise normalization, and axis-wise cross product
// over (D x N) matrices. All operations preserve shape and allocate a
// fresh result rather than mutating their inputs.
package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Normalize divides a column vector by its Euclidean norm. It panics if
// given anything other than a single-column matrix; callers that hold a
// (3 x 1) direction should use this directly, and use ColumnNormalize for
// (D x N) point clouds.
func Normalize(v *mat.Dense) *mat.Dense {
	r, c := v.Dims()
	if c != 1 {
		panic("geom: Normalize requires a single-column vector")
	}
	n := mat.Norm(v, 2)
	out := mat.NewDense(r, 1, nil)
	if n == 0 {
		return out
	}
	out.Scale(1/n, v)
	return out
}

// ColumnNormalize normalizes each column of m independently. A column
// with zero norm becomes the zero vector rather than NaN (Normalize does
// the same for a zero vector), since a degenerate normal/direction is
// common for skinny facets.
func ColumnNormalize(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, m)
		n := 0.0
		for _, v := range col {
			n += v * v
		}
		n = math.Sqrt(n)
		if n == 0 {
			continue
		}
		for i, v := range col {
			out.Set(i, j, v/n)
		}
	}
	return out
}

// Cross computes the column-wise cross product of two (3 x N) matrices:
// column j of the result is column j of a crossed with column j of b.
// Both inputs must have 3 rows and equal column counts.
func Cross(a, b *mat.Dense) *mat.Dense {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != 3 || rb != 3 {
		panic("geom: Cross requires (3 x N) matrices")
	}
	if ca != cb {
		panic("geom: Cross requires matching column counts")
	}
	out := mat.NewDense(3, ca, nil)
	for j := 0; j < ca; j++ {
		ax, ay, az := a.At(0, j), a.At(1, j), a.At(2, j)
		bx, by, bz := b.At(0, j), b.At(1, j), b.At(2, j)
		out.Set(0, j, ay*bz-az*by)
		out.Set(1, j, az*bx-ax*bz)
		out.Set(2, j, ax*by-ay*bx)
	}
	return out
}

// Vec3 creates a (3 x 1) column matrix from three scalars.
func Vec3(x, y, z float64) *mat.Dense {
	return mat.NewDense(3, 1, []float64{x, y, z})
}

// Sub returns a - b, element-wise, requiring matching shapes.
func Sub(a, b *mat.Dense) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	out.Sub(a, b)
	return out
}

// DotColumns computes, for (3 x N) matrices a and b, the column-wise dot
// product, returning a length-N slice.
func DotColumns(a, b *mat.Dense) []float64 {
	_, c := a.Dims()
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		s := 0.0
		for i := 0; i < 3; i++ {
			s += a.At(i, j) * b.At(i, j)
		}
		out[j] = s
	}
	return out
}
