//go:build manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library (https://github.com/elalish/manifold). Manifold
// provides guaranteed-manifold mesh boolean operations with face
// identity tracking.
//
// This package requires the Manifold C library (manifoldc) to be
// installed. Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/chazu/cadvec/pkg/cadio"
	"github.com/chazu/cadvec/pkg/errs"
	"github.com/chazu/cadvec/pkg/kernel"
	"github.com/chazu/cadvec/pkg/mesh"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*ManifoldKernel)(nil)
var _ kernel.Solid = (*manifoldSolid)(nil)
var _ cadio.SolidModel = (*manifoldSolid)(nil)

// manifoldSolid wraps a C ManifoldManifold pointer and implements
// kernel.Solid (and therefore cadio.SolidModel).
type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *manifoldSolid) BoundingBox() cadio.BoundingBox {
	alloc := C.manifold_alloc_box()
	bbox := C.manifold_bounding_box(alloc, s.ptr)
	defer C.manifold_delete_box(bbox)

	return cadio.BoundingBox{
		Min: [3]float64{
			float64(C.manifold_box_min_x(bbox)),
			float64(C.manifold_box_min_y(bbox)),
			float64(C.manifold_box_min_z(bbox)),
		},
		Max: [3]float64{
			float64(C.manifold_box_max_x(bbox)),
			float64(C.manifold_box_max_y(bbox)),
			float64(C.manifold_box_max_z(bbox)),
		},
	}
}

// Area sums the area of every triangle in the manifold's explicit
// mesh. Manifold manifolds carry no separate implicit representation
// to refine, so Area is exact rather than an approximation.
func (s *manifoldSolid) Area() float64 {
	m, err := s.extractMesh()
	if err != nil {
		return 0
	}
	total := 0.0
	for id := 0; id < m.FaceCount(); id++ {
		verts, err := m.FaceVertices(id)
		if err != nil {
			continue
		}
		total += triangleArea(verts)
	}
	return total
}

// Tessellate returns the manifold's own explicit mesh. tolerance is
// ignored: Manifold solids are already a discrete mesh, not a
// parametric surface with a refinable deflection.
func (s *manifoldSolid) Tessellate(_ float64) (*mesh.Mesh, error) {
	return s.extractMesh()
}

// newSolid wraps a C ManifoldManifold pointer with Go-side finalizer
// for automatic memory management.
func newSolid(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *manifoldSolid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
type ManifoldKernel struct{}

// New creates a new ManifoldKernel. The returned error is always nil.
func New() (kernel.Kernel, error) {
	return &ManifoldKernel{}, nil
}

// Box creates an axis-aligned box with the given dimensions. The box
// is centered at the origin.
func (k *ManifoldKernel) Box(x, y, z float64) kernel.Solid {
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_cube(alloc,
		C.double(x), C.double(y), C.double(z),
		C.int(1), // center=true
	)
	return newSolid(ptr)
}

// Cylinder creates a cylinder along the Z axis with the given height,
// radius, and number of circular segments. The cylinder is centered
// at the origin.
func (k *ManifoldKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_cylinder(alloc,
		C.double(height),
		C.double(radius), // radius_low
		C.double(radius), // radius_high (same = not tapered)
		C.int(segments),
		C.int(1), // center=true
	)
	return newSolid(ptr)
}

// Union returns the boolean union of two solids.
func (k *ManifoldKernel) Union(a, b kernel.Solid) kernel.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_union(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Difference returns the boolean difference (a minus b).
func (k *ManifoldKernel) Difference(a, b kernel.Solid) kernel.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_difference(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Intersection returns the boolean intersection of two solids.
func (k *ManifoldKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_intersection(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Translate moves the solid by (x, y, z).
func (k *ManifoldKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ms := s.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_translate(alloc, ms.ptr,
		C.double(x), C.double(y), C.double(z),
	)
	return newSolid(ptr)
}

// Rotate rotates the solid by Euler angles (in degrees) around the X,
// Y, Z axes.
func (k *ManifoldKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ms := s.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_rotate(alloc, ms.ptr,
		C.double(x), C.double(y), C.double(z),
	)
	return newSolid(ptr)
}

// extractMesh pulls Manifold's MeshGL representation into a
// *mesh.Mesh, averaging duplicate vertex positions is unnecessary:
// MeshGL already shares vertices across triangles, so the resulting
// topology keeps that sharing instead of exploding into a triangle
// soup.
func (s *manifoldSolid) extractMesh() (*mesh.Mesh, error) {
	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_get_meshgl(meshAlloc, s.ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return nil, &errs.MeshingFailure{Reason: "manifold produced an empty mesh"}
	}

	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	propLen := numVert * numProp
	propData := make([]float32, propLen)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)

	triLen := numTri * 3
	indices := make([]uint32, triLen)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	points := make([][]float64, numVert)
	for i := 0; i < numVert; i++ {
		base := i * numProp
		points[i] = []float64{
			float64(propData[base+0]),
			float64(propData[base+1]),
			float64(propData[base+2]),
		}
	}

	faces := make([][]int, numTri)
	for t := 0; t < numTri; t++ {
		faces[t] = []int{
			int(indices[t*3+0]),
			int(indices[t*3+1]),
			int(indices[t*3+2]),
		}
	}

	geometry, err := mesh.NewGeometry(points)
	if err != nil {
		return nil, fmt.Errorf("manifold: %w", err)
	}
	topology, err := mesh.NewTopology(faces)
	if err != nil {
		return nil, fmt.Errorf("manifold: %w", err)
	}
	m, err := mesh.New(geometry, topology)
	if err != nil {
		return nil, fmt.Errorf("manifold: %w", err)
	}
	if m.FaceCount() != numTri {
		return nil, fmt.Errorf("manifold: triangle count mismatch: got %d, expected %d", m.FaceCount(), numTri)
	}
	return m, nil
}

func triangleArea(verts interface{ At(i, j int) float64 }) float64 {
	ax, ay, az := verts.At(0, 0), verts.At(1, 0), verts.At(2, 0)
	bx, by, bz := verts.At(0, 1), verts.At(1, 1), verts.At(2, 1)
	cx, cy, cz := verts.At(0, 2), verts.At(1, 2), verts.At(2, 2)

	e1x, e1y, e1z := bx-ax, by-ay, bz-az
	e2x, e2y, e2z := cx-ax, cy-ay, cz-az

	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x

	return 0.5 * math.Sqrt(nx*nx+ny*ny+nz*nz)
}
