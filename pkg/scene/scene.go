// Package scene holds the 3D data model: cameras, lights, materials,
// solids, and parts (spec §3, §4.3).
package scene

import (
	"github.com/chazu/cadvec/pkg/color"
	"github.com/chazu/cadvec/pkg/errs"
	"github.com/chazu/cadvec/pkg/geom"
	"github.com/chazu/cadvec/pkg/mesh"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// Camera stores a unit view direction and a position; the projection is
// orthographic along view.
type Camera struct {
	position [3]float64
	view     *mat.Dense // 3 x 1, unit length
}

// NewCamera creates a camera at position looking along view. view is
// normalized at construction; a zero view vector fails with
// errs.InvalidCamera.
func NewCamera(position [3]float64, view [3]float64) (Camera, error) {
	v := geom.Vec3(view[0], view[1], view[2])
	if mat.Norm(v, 2) == 0 {
		return Camera{}, &errs.InvalidCamera{Reason: "view direction has zero magnitude"}
	}
	return Camera{position: position, view: geom.Normalize(v)}, nil
}

// Position returns the camera's 3D position.
func (c Camera) Position() [3]float64 { return c.position }

// View returns the unit view direction as a (3 x 1) matrix.
func (c Camera) View() *mat.Dense { return c.view }

// ViewVec returns the unit view direction as three scalars.
func (c Camera) ViewVec() [3]float64 {
	return [3]float64{c.view.At(0, 0), c.view.At(1, 0), c.view.At(2, 0)}
}

// Light is a point light source: a 3D position and an RGBA color.
type Light struct {
	Position [3]float64
	Color    color.RGBA
}

// NewLight creates a white light at position, matching the reference
// tool's default LightSource color.
func NewLight(position [3]float64) Light {
	return Light{Position: position, Color: color.New(255, 255, 255)}
}

// Material holds the Phong reflectance coefficients for a solid: ambient,
// diffuse, and specular intensity factors, plus the shininess exponent.
type Material struct {
	Ka, Kd, Ks, Alpha float64
}

// DefaultMaterial is the material a freshly bound solid receives before a
// caller overrides it (ka=0.7, kd=0.7, ks=0.3, alpha=0.5), matching the
// reference tool's SolidRepresentation default.
var DefaultMaterial = Material{Ka: 0.7, Kd: 0.7, Ks: 0.3, Alpha: 0.5}

// Solid is a tessellated solid: a mesh, a base color, and a material.
type Solid struct {
	Mesh     *mesh.Mesh
	Color    color.RGBA
	Material Material
}

// NewSolid creates a Solid with the reference tool's defaults: a random
// gray base color in [50,230] and DefaultMaterial. Callers that need
// deterministic output should set Color explicitly afterward.
func NewSolid(m *mesh.Mesh) Solid {
	return Solid{Mesh: m, Color: color.RandomGray(50, 230), Material: DefaultMaterial}
}

// Part is an ordered sequence of solids; a solid's position in the slice
// is its stable index, used as the first dimension of every cross-solid
// operation in the projector and sorter.
type Part struct {
	Name   string
	Solids []Solid
}

// NewPart creates a Part from an ordered list of solids. If name is
// empty, a uuid is generated, matching the reference tool's
// CADModel/MeshModel naming fallback.
func NewPart(name string, solids []Solid) Part {
	if name == "" {
		name = uuid.NewString()
	}
	return Part{Name: name, Solids: solids}
}

// Solid returns the solid at index, or errs.InvalidIndex if out of range.
func (p Part) Solid(index int) (Solid, error) {
	if index < 0 || index >= len(p.Solids) {
		return Solid{}, &errs.InvalidIndex{Kind: "solid", Index: index, Bound: len(p.Solids)}
	}
	return p.Solids[index], nil
}
