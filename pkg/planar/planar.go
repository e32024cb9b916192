// Package planar holds the render pipeline's 2D output types: sorted,
// colored facets; classified edge wires; the 2D bounding box; and the
// projected coordinate frame (spec §3, §4.7).
package planar

import (
	"iter"
	"math"

	"github.com/chazu/cadvec/pkg/color"
	"github.com/chazu/cadvec/pkg/errs"
	"github.com/chazu/cadvec/pkg/mesh"
	"gonum.org/v1/gonum/mat"
)

// EdgeClass is the closed enumeration of edge visibility classes, in
// strict ascending draw order (spec §3).
type EdgeClass int

const (
	HiddenSmooth EdgeClass = iota
	HiddenSharp
	VisibleSmooth
	VisibleSharp
	VisibleOutline
)

// DrawOrder is the declared emission order for edge-class groups.
var DrawOrder = []EdgeClass{HiddenSmooth, HiddenSharp, VisibleSmooth, VisibleSharp, VisibleOutline}

func (c EdgeClass) String() string {
	switch c {
	case HiddenSmooth:
		return "HIDDEN_SMOOTH"
	case HiddenSharp:
		return "HIDDEN_SHARP"
	case VisibleSmooth:
		return "VISIBLE_SMOOTH"
	case VisibleSharp:
		return "VISIBLE_SHARP"
	case VisibleOutline:
		return "VISIBLE_OUTLINE"
	default:
		return "UNKNOWN"
	}
}

// PlanarFacet is a 2D facet ready for shading: its points (2 x K, K in
// {3,4}) and its computed color.
type PlanarFacet struct {
	Points *mat.Dense
	Color  color.RGBA
}

// PlanarEdge is a polyline sampled from a parametric curve: a (2 x M)
// point array.
type PlanarEdge struct {
	points *mat.Dense
}

// NewPlanarEdge wraps a (2 x M) polyline.
func NewPlanarEdge(points *mat.Dense) PlanarEdge {
	return PlanarEdge{points: points}
}

// Points returns the polyline's (2 x M) point array.
func (e PlanarEdge) Points() *mat.Dense { return e.points }

// Start returns the polyline's first point.
func (e PlanarEdge) Start() [2]float64 {
	return [2]float64{e.points.At(0, 0), e.points.At(1, 0)}
}

// End returns the polyline's last point.
func (e PlanarEdge) End() [2]float64 {
	_, c := e.points.Dims()
	return [2]float64{e.points.At(0, c-1), e.points.At(1, c-1)}
}

// PlanarEdgesRepresentation holds every polyline of one visibility class.
type PlanarEdgesRepresentation struct {
	Class EdgeClass
	Wires []PlanarEdge
}

// BoundingBox2D is the axis-aligned box over a union of 2D vertex
// columns, carrying min, max, and extent per axis (spec §4.7).
type BoundingBox2D struct {
	Min, Max, Extent [2]float64
}

// PlanarMeshRepresentation holds, for a whole Part, the projected 2D
// geometry and unchanged topology of every solid, the painter-sorted
// (solid,facet) id pairs, and per-solid per-facet colors.
type PlanarMeshRepresentation struct {
	geometries []*mat.Dense // per-solid (2 x Ni)
	topologies []mesh.Topology
	sorted     [][2]int // painter order: (solidIdx, facetIdx)
	colors     [][]color.RGBA
}

// NewPlanarMeshRepresentation builds a representation from per-solid
// projected geometry and unchanged topology. geometries must be
// non-empty and two-dimensional.
func NewPlanarMeshRepresentation(geometries []*mat.Dense, topologies []mesh.Topology) (*PlanarMeshRepresentation, error) {
	if len(geometries) == 0 {
		return nil, &errs.InvalidGeometry{Reason: "no solids to represent"}
	}
	for _, g := range geometries {
		r, _ := g.Dims()
		if r != 2 {
			return nil, &errs.InvalidGeometry{Reason: "planar geometry must be 2-dimensional"}
		}
	}
	return &PlanarMeshRepresentation{geometries: geometries, topologies: topologies}, nil
}

// SetSorted records the painter-ordered (solidIdx,facetIdx) id pairs.
func (p *PlanarMeshRepresentation) SetSorted(ids [][2]int) { p.sorted = ids }

// Sorted returns the painter-ordered (solidIdx,facetIdx) id pairs.
func (p *PlanarMeshRepresentation) Sorted() [][2]int { return p.sorted }

// SetColors records the per-solid per-facet RGBA colors.
func (p *PlanarMeshRepresentation) SetColors(colors [][]color.RGBA) { p.colors = colors }

// Colors returns the per-solid per-facet RGBA colors.
func (p *PlanarMeshRepresentation) Colors() [][]color.RGBA { return p.colors }

// Facet extracts a single facet's 2D points and computed color.
func (p *PlanarMeshRepresentation) Facet(solidIdx, facetIdx int) (PlanarFacet, error) {
	if solidIdx < 0 || solidIdx >= len(p.geometries) {
		return PlanarFacet{}, &errs.InvalidIndex{Kind: "solid", Index: solidIdx, Bound: len(p.geometries)}
	}
	vids, err := p.topologies[solidIdx].Face(facetIdx)
	if err != nil {
		return PlanarFacet{}, err
	}
	if solidIdx >= len(p.colors) || facetIdx >= len(p.colors[solidIdx]) {
		return PlanarFacet{}, &errs.InvalidIndex{Kind: "facet", Index: facetIdx, Bound: len(p.colors)}
	}

	geometry := p.geometries[solidIdx]
	pts := mat.NewDense(2, len(vids), nil)
	for col, vid := range vids {
		pts.Set(0, col, geometry.At(0, vid))
		pts.Set(1, col, geometry.At(1, vid))
	}
	return PlanarFacet{Points: pts, Color: p.colors[solidIdx][facetIdx]}, nil
}

// Facets returns a lazy sequence of PlanarFacet in painter order,
// borrowing the representation rather than materializing a slice
// up-front (spec §9's "explicit cursor or lazy sequence", not a
// stateful iterator field on the container).
func (p *PlanarMeshRepresentation) Facets() iter.Seq[PlanarFacet] {
	return func(yield func(PlanarFacet) bool) {
		for _, pair := range p.sorted {
			f, err := p.Facet(pair[0], pair[1])
			if err != nil {
				return
			}
			if !yield(f) {
				return
			}
		}
	}
}

// BoundingBox computes the 2D bounding box over every solid's geometry.
func (p *PlanarMeshRepresentation) BoundingBox() BoundingBox2D {
	var bb BoundingBox2D
	bb.Min = [2]float64{math.Inf(1), math.Inf(1)}
	bb.Max = [2]float64{math.Inf(-1), math.Inf(-1)}
	for _, g := range p.geometries {
		_, cols := g.Dims()
		for col := 0; col < cols; col++ {
			x, y := g.At(0, col), g.At(1, col)
			if x < bb.Min[0] {
				bb.Min[0] = x
			}
			if y < bb.Min[1] {
				bb.Min[1] = y
			}
			if x > bb.Max[0] {
				bb.Max[0] = x
			}
			if y > bb.Max[1] {
				bb.Max[1] = y
			}
		}
	}
	bb.Extent = [2]float64{bb.Max[0] - bb.Min[0], bb.Max[1] - bb.Min[1]}
	return bb
}

// PlanarCoordinateFrame is the projection of the canonical axes through
// the projector: an origin and three axis tips. A tip may be NaN when
// its 3D direction is parallel to the view.
type PlanarCoordinateFrame struct {
	Origin, X, Y, Z [2]float64
}

// Finite reports whether axis tip (0=X,1=Y,2=Z) has no NaN component and
// should be drawn.
func (f PlanarCoordinateFrame) Finite(axis int) bool {
	var tip [2]float64
	switch axis {
	case 0:
		tip = f.X
	case 1:
		tip = f.Y
	case 2:
		tip = f.Z
	}
	return !math.IsNaN(tip[0]) && !math.IsNaN(tip[1])
}
