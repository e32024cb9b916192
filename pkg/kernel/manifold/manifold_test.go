//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/chazu/cadvec/pkg/kernel"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func TestBox(t *testing.T) {
	k := mustNew(t)
	s := k.Box(10, 20, 30)
	if s == nil {
		t.Fatal("Box() returned nil")
	}
	bb := s.BoundingBox()

	// Box is centered, so bounds should be symmetric.
	wantMin := [3]float64{-5, -10, -15}
	wantMax := [3]float64{5, 10, 15}

	for i := 0; i < 3; i++ {
		if math.Abs(bb.Min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("Box min[%d] = %f, want %f", i, bb.Min[i], wantMin[i])
		}
		if math.Abs(bb.Max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("Box max[%d] = %f, want %f", i, bb.Max[i], wantMax[i])
		}
	}
}

func TestCylinder(t *testing.T) {
	k := mustNew(t)
	s := k.Cylinder(20, 5, 32)
	if s == nil {
		t.Fatal("Cylinder() returned nil")
	}
	bb := s.BoundingBox()

	// Cylinder is centered, radius=5, height=20.
	if bb.Min[2] < -10.01 || bb.Min[2] > -9.99 {
		t.Errorf("Cylinder min Z = %f, want ~-10", bb.Min[2])
	}
	if bb.Max[2] < 9.99 || bb.Max[2] > 10.01 {
		t.Errorf("Cylinder max Z = %f, want ~10", bb.Max[2])
	}

	// X/Y bounds should be within the radius (polygon inscribed in circle).
	for i := 0; i < 2; i++ {
		if bb.Min[i] > -4.5 {
			t.Errorf("Cylinder min[%d] = %f, want <= -4.5", i, bb.Min[i])
		}
		if bb.Max[i] < 4.5 {
			t.Errorf("Cylinder max[%d] = %f, want >= 4.5", i, bb.Max[i])
		}
	}
}

func TestDifference(t *testing.T) {
	k := mustNew(t)
	box := k.Box(10, 10, 10)
	hole := k.Cylinder(20, 3, 32)
	result := k.Difference(box, hole)
	if result == nil {
		t.Fatal("Difference() returned nil")
	}

	// The result bounding box should be the same as the box (the hole
	// is contained within the box footprint in X/Y).
	bb := result.BoundingBox()
	wantMin := [3]float64{-5, -5, -5}
	wantMax := [3]float64{5, 5, 5}
	for i := 0; i < 3; i++ {
		if math.Abs(bb.Min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("Difference min[%d] = %f, want %f", i, bb.Min[i], wantMin[i])
		}
		if math.Abs(bb.Max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("Difference max[%d] = %f, want %f", i, bb.Max[i], wantMax[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	k := mustNew(t)
	box := k.Box(10, 10, 10)
	moved := k.Translate(box, 100, 200, 300)
	if moved == nil {
		t.Fatal("Translate() returned nil")
	}

	bb := moved.BoundingBox()
	wantMin := [3]float64{95, 195, 295}
	wantMax := [3]float64{105, 205, 305}
	for i := 0; i < 3; i++ {
		if math.Abs(bb.Min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("Translate min[%d] = %f, want %f", i, bb.Min[i], wantMin[i])
		}
		if math.Abs(bb.Max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("Translate max[%d] = %f, want %f", i, bb.Max[i], wantMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := mustNew(t)
	box := k.Box(4, 6, 8)
	bb := box.BoundingBox()

	// Centered box: half-extents are 2, 3, 4.
	if math.Abs(bb.Min[0]+2) > 1e-6 || math.Abs(bb.Min[1]+3) > 1e-6 || math.Abs(bb.Min[2]+4) > 1e-6 {
		t.Errorf("BoundingBox min = %v, want [-2 -3 -4]", bb.Min)
	}
	if math.Abs(bb.Max[0]-2) > 1e-6 || math.Abs(bb.Max[1]-3) > 1e-6 || math.Abs(bb.Max[2]-4) > 1e-6 {
		t.Errorf("BoundingBox max = %v, want [2 3 4]", bb.Max)
	}
}

func TestTessellate(t *testing.T) {
	k := mustNew(t)
	box := k.Box(10, 10, 10)
	m, err := box.Tessellate(1e-2)
	if err != nil {
		t.Fatalf("Tessellate() error = %v", err)
	}
	if m == nil {
		t.Fatal("Tessellate() returned nil mesh")
	}

	// A box has 12 triangles (2 per face, 6 faces).
	if m.FaceCount() < 12 {
		t.Errorf("Tessellate() face count = %d, want >= 12", m.FaceCount())
	}
	if m.Geometry().Size() < 8 {
		t.Errorf("Tessellate() vertex count = %d, want >= 8", m.Geometry().Size())
	}
}

func TestArea(t *testing.T) {
	k := mustNew(t)
	box := k.Box(2, 2, 2)
	// Surface area of a 2x2x2 cube is 6 * (2*2) = 24.
	if area := box.Area(); math.Abs(area-24) > 1e-3 {
		t.Errorf("Area() = %f, want ~24", area)
	}
}
