// Package cadio names the external collaborators the render pipeline is
// built against but does not implement: a CAD kernel, a mesher, an HLR
// (hidden-line-removal) kernel, and a curve sampler (spec §6). The core
// pipeline (pkg/project, pkg/render) only depends on these interfaces;
// pkg/kernel provides one concrete, pack-grounded implementation used by
// the example CLI and integration tests.
package cadio

import (
	"math"

	"github.com/chazu/cadvec/pkg/mesh"
	"github.com/chazu/cadvec/pkg/planar"
)

// Model is an imported or in-memory CAD model (a B-Rep assembly).
type Model interface {
	// Solids enumerates the constituent solids of the model.
	Solids() []SolidModel
}

// BoundingBox is an axis-aligned box in model units.
type BoundingBox struct {
	Min, Max [3]float64
}

// Side returns the box's extent along axis i (0=x,1=y,2=z).
func (b BoundingBox) Side(i int) float64 { return b.Max[i] - b.Min[i] }

// MinSide returns the smallest of the box's three side lengths.
func (b BoundingBox) MinSide() float64 {
	return math.Min(b.Side(0), math.Min(b.Side(1), b.Side(2)))
}

// MaxSide returns the largest of the box's three side lengths.
func (b BoundingBox) MaxSide() float64 {
	return math.Max(b.Side(0), math.Max(b.Side(1), b.Side(2)))
}

// SolidModel is a single B-Rep solid as the CAD kernel exposes it: a
// bounding box, a surface area (for MeshSizeDefault), a native
// tessellation fallback, and its constituent edges for HLR sampling.
type SolidModel interface {
	BoundingBox() BoundingBox
	Area() float64
	// Tessellate produces a coarse fixed-tolerance triangulation using the
	// CAD kernel's own native mesher, used as the MeshingFailure fallback.
	Tessellate(tolerance float64) (*mesh.Mesh, error)
}

// CADKernel imports/exports STEP models and enumerates their solids.
type CADKernel interface {
	ImportStep(path string) (Model, error)
	ExportStep(model Model, path string) error
}

// Curve is a B-Rep edge's parametric curve, already expressed in the 2D
// page coordinates an HLR kernel projects onto (spec §6's "Curve
// sampler" operates on these, not on 3D model-space curves).
type Curve interface {
	FirstParameter() float64
	LastParameter() float64
}

// CurveSampler sames a curve into an ordered point sequence using
// quasi-uniform deflection at the given chordal tolerance (spec §4.7
// fixes this at 1e-2 for edge extraction).
type CurveSampler interface {
	Sample(curve Curve, tolerance, first, last float64) ([][2]float64, error)
}

// Edge is a single B-Rep edge with its projected parametric curve.
type Edge struct {
	Curve Curve
}

// HLRKernel classifies a model's edges into visibility classes given an
// orthographic projector (camera position + view direction). A class
// absent from the returned map means its HLR compound was null — the
// caller must drop it silently (errs.EdgeClassEmpty, recovered).
type HLRKernel interface {
	EdgeCompounds(model Model, cameraPosition, cameraView [3]float64) (map[planar.EdgeClass][]Edge, error)
}

// MeshSizeToken is a qualitative mesh fineness token (spec §6).
type MeshSizeToken int

const (
	MeshSizeDefault MeshSizeToken = iota
	MeshSizeBulky
	MeshSizeCoarse
	MeshSizeGrainy
	MeshSizeMedium
	MeshSizeFine
	MeshSizeUltrafine
	MeshSizeAtomic
	MeshSizeInsane
)

// value returns the token's qualitative divisor (spec §6).
func (t MeshSizeToken) value() float64 {
	switch t {
	case MeshSizeBulky:
		return 5
	case MeshSizeCoarse:
		return 10
	case MeshSizeGrainy:
		return 20
	case MeshSizeMedium:
		return 50
	case MeshSizeFine:
		return 100
	case MeshSizeUltrafine:
		return 200
	case MeshSizeAtomic:
		return 500
	case MeshSizeInsane:
		return 1000
	default:
		return 1
	}
}

// MeshSize is either an explicit (min,max) element size bound or a
// qualitative token resolved against a solid's bounding box and area.
type MeshSize struct {
	Min, Max float64
	Token    MeshSizeToken
	UseToken bool
}

// Explicit builds a MeshSize from concrete (min,max) bounds.
func Explicit(min, max float64) MeshSize {
	return MeshSize{Min: min, Max: max}
}

// Qualitative builds a MeshSize from a qualitative fineness token.
func Qualitative(token MeshSizeToken) MeshSize {
	return MeshSize{Token: token, UseToken: true}
}

// Resolve converts a MeshSize into concrete (min,max) element-size
// bounds for a given solid, following spec §6: DEFAULT uses
// (area/max_side, area/min_side); every other token uses
// (min_bbox_side/(q*0.75), max_bbox_side/(q*1.25)).
func (s MeshSize) Resolve(bb BoundingBox, area float64) (min, max float64) {
	if !s.UseToken {
		return s.Min, s.Max
	}
	if s.Token == MeshSizeDefault {
		return area / bb.MaxSide(), area / bb.MinSide()
	}
	q := s.Token.value()
	return bb.MinSide() / (q * 0.75), bb.MaxSide() / (q * 1.25)
}

// Mesher produces a triangular surface mesh for a solid given resolved
// (min,max) element-size bounds.
type Mesher interface {
	Mesh(solid SolidModel, min, max float64) (*mesh.Mesh, error)
}
