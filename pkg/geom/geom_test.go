package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   *mat.Dense
		want []float64
	}{
		{"unit x", Vec3(1, 0, 0), []float64{1, 0, 0}},
		{"3-4-0 triangle", Vec3(3, 4, 0), []float64{0.6, 0.8, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			for i, want := range tt.want {
				if math.Abs(got.At(i, 0)-want) > 1e-9 {
					t.Errorf("Normalize()[%d] = %v, want %v", i, got.At(i, 0), want)
				}
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	v := Vec3(2, 3, 6)
	once := Normalize(v)
	twice := Normalize(once)
	for i := 0; i < 3; i++ {
		if math.Abs(once.At(i, 0)-twice.At(i, 0)) > 1e-12 {
			t.Errorf("normalize not idempotent at %d: %v vs %v", i, once.At(i, 0), twice.At(i, 0))
		}
	}
}

func TestColumnNormalizeZeroColumnBecomesZero(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 0,
		0, 0,
	})
	out := ColumnNormalize(m)
	// column 0 is (1,0,0) -> unit length already.
	if math.Abs(mat.Norm(out.ColView(0), 2)-1) > 1e-9 {
		t.Errorf("column 0 should be unit length, got norm %v", mat.Norm(out.ColView(0), 2))
	}
	// column 1 is all-zero -> stays all-zero.
	for i := 0; i < 3; i++ {
		if out.At(i, 1) != 0 {
			t.Errorf("zero column should stay zero, got %v at row %d", out.At(i, 1), i)
		}
	}
}

func TestColumnNormalizeIdempotent(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 2,
		2, 0,
		2, 0,
	})
	once := ColumnNormalize(m)
	twice := ColumnNormalize(once)
	r, c := once.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(once.At(i, j)-twice.At(i, j)) > 1e-12 {
				t.Errorf("column_normalize not idempotent at (%d,%d)", i, j)
			}
		}
	}
}

func TestCross(t *testing.T) {
	a := mat.NewDense(3, 1, []float64{1, 0, 0})
	b := mat.NewDense(3, 1, []float64{0, 1, 0})
	got := Cross(a, b)
	want := []float64{0, 0, 1}
	for i, w := range want {
		if got.At(i, 0) != w {
			t.Errorf("Cross()[%d] = %v, want %v", i, got.At(i, 0), w)
		}
	}
}

func TestCrossPreservesShape(t *testing.T) {
	a := mat.NewDense(3, 4, []float64{
		1, 0, 1, 0,
		0, 1, 0, 1,
		0, 0, 0, 0,
	})
	b := a
	got := Cross(a, b)
	r, c := got.Dims()
	if r != 3 || c != 4 {
		t.Errorf("Cross() shape = (%d,%d), want (3,4)", r, c)
	}
}

func TestDotColumns(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		0, 0,
	})
	b := mat.NewDense(3, 2, []float64{
		1, 1,
		0, 1,
		0, 0,
	})
	got := DotColumns(a, b)
	want := []float64{1, 1}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("DotColumns()[%d] = %v, want %v", i, got[i], w)
		}
	}
}
