// Package kernel defines the abstract geometry-kernel interface solid
// modeling backends (sdfx, manifold) implement: primitive construction
// and boolean/affine combinators, plus the three queries that let a
// Solid stand directly in for a cadio.SolidModel wherever the render
// pipeline asks for one.
package kernel

import (
	"github.com/chazu/cadvec/pkg/cadio"
	"github.com/chazu/cadvec/pkg/mesh"
)

// Solid is an opaque handle to one solid body inside a Kernel. Its
// method set is exactly cadio.SolidModel's: any concrete Solid already
// satisfies cadio.SolidModel, so a Kernel's output feeds the render
// pipeline without an adapter type.
type Solid interface {
	BoundingBox() cadio.BoundingBox
	Area() float64
	Tessellate(tolerance float64) (*mesh.Mesh, error)
}

// Kernel constructs primitive solids and combines them with booleans
// and affine transforms. Implementations (sdfx, manifold) provide the
// underlying solid-modeling representation.
type Kernel interface {
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid
}
