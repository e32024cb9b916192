// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. A solid is represented
// implicitly (a signed-distance function); BoundingBox reads the SDF's
// own bounds, while Area and Tessellate resolve it to an explicit
// triangle mesh via marching cubes, at a resolution driven by the
// caller's requested tolerance or element-size bounds — sdfx has no
// analytic surface-area primitive, so Area is approximated from a fixed
// coarse tessellation.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/cadvec/pkg/cadio"
	"github.com/chazu/cadvec/pkg/errs"
	"github.com/chazu/cadvec/pkg/kernel"
	"github.com/chazu/cadvec/pkg/mesh"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*SdfxKernel)(nil)
var _ kernel.Solid = (*sdfxSolid)(nil)
var _ cadio.SolidModel = (*sdfxSolid)(nil)
var _ cadio.Mesher = (*Mesher)(nil)

// defaultMeshCells is the marching cubes resolution used for an area
// estimate, and for a Tessellate call whose tolerance is not positive.
const defaultMeshCells = 64

const (
	minMeshCells = 20
	maxMeshCells = 400
)

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid (and therefore
// cadio.SolidModel).
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() cadio.BoundingBox {
	bb := s.s.BoundingBox()
	return cadio.BoundingBox{
		Min: [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z},
		Max: [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z},
	}
}

// Area approximates the solid's surface area by summing triangle areas
// from a fixed coarse marching-cubes tessellation.
func (s *sdfxSolid) Area() float64 {
	triangles := render.ToTriangles(s.s, render.NewMarchingCubesUniform(defaultMeshCells))
	total := 0.0
	for _, tri := range triangles {
		total += triangleArea(tri)
	}
	return total
}

// Tessellate runs marching cubes at a resolution derived from
// tolerance: finer tolerance (smaller value) asks for more cells.
func (s *sdfxSolid) Tessellate(tolerance float64) (*mesh.Mesh, error) {
	cells := cellsForTolerance(tolerance, s.s)
	triangles := render.ToTriangles(s.s, render.NewMarchingCubesUniform(cells))
	return trianglesToMesh(triangles)
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions. The resulting solid has
// its minimum corner at the origin (0,0,0) so that placement
// translations work intuitively — sdf.Box3D centers the box at the
// origin, so we translate by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return wrap(sdf.Transform3D(s, m))
}

// Cylinder creates a cylinder with the given height and radius. The
// segments parameter is ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Mesher adapts SdfxKernel to cadio.Mesher: a resolved (min,max)
// element-size bound is converted into a marching-cubes cell count by
// dividing the solid's largest bounding-box side by the requested
// maximum element size.
type Mesher struct{}

// Mesh produces a triangle mesh for solid at a resolution between min
// and max element size. solid must have come from an SdfxKernel.
func (Mesher) Mesh(solid cadio.SolidModel, min, max float64) (*mesh.Mesh, error) {
	s, ok := solid.(*sdfxSolid)
	if !ok {
		return nil, &errs.MeshingFailure{Reason: "solid was not produced by an sdfx kernel"}
	}
	if max <= 0 {
		return nil, &errs.MeshingFailure{Reason: "non-positive maximum element size"}
	}
	bb := s.BoundingBox()
	cells := clampCells(int(bb.MaxSide() / max))
	triangles := render.ToTriangles(s.s, render.NewMarchingCubesUniform(cells))
	m, err := trianglesToMesh(triangles)
	if err != nil {
		return nil, &errs.MeshingFailure{Reason: err.Error()}
	}
	return m, nil
}

func cellsForTolerance(tolerance float64, s sdf.SDF3) int {
	if tolerance <= 0 {
		return defaultMeshCells
	}
	bb := s.BoundingBox()
	side := math.Max(bb.Max.X-bb.Min.X, math.Max(bb.Max.Y-bb.Min.Y, bb.Max.Z-bb.Min.Z))
	return clampCells(int(side / tolerance))
}

func clampCells(cells int) int {
	if cells < minMeshCells {
		return minMeshCells
	}
	if cells > maxMeshCells {
		return maxMeshCells
	}
	return cells
}

func triangleArea(tri render.Triangle3) float64 {
	a, b, c := tri[0], tri[1], tri[2]
	e1x, e1y, e1z := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	e2x, e2y, e2z := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	return 0.5 * math.Sqrt(nx*nx+ny*ny+nz*nz)
}

// trianglesToMesh converts an sdfx triangle soup into a *mesh.Mesh.
// Each triangle contributes three fresh vertices; marching cubes
// output carries no shared-vertex topology to preserve.
func trianglesToMesh(triangles []render.Triangle3) (*mesh.Mesh, error) {
	if len(triangles) == 0 {
		return nil, &errs.MeshingFailure{Reason: "marching cubes produced an empty mesh"}
	}
	points := make([][]float64, 0, len(triangles)*3)
	faces := make([][]int, 0, len(triangles))
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			points = append(points, []float64{v.X, v.Y, v.Z})
		}
		faces = append(faces, []int{3 * i, 3*i + 1, 3*i + 2})
	}
	geometry, err := mesh.NewGeometry(points)
	if err != nil {
		return nil, err
	}
	topology, err := mesh.NewTopology(faces)
	if err != nil {
		return nil, err
	}
	return mesh.New(geometry, topology)
}
