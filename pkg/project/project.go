// Package project implements the Projector: orthographic 3D→2D
// projection, back-face culling, cross-solid painter-order depth
// sorting, per-facet Phong shading, and curve/edge extraction through
// an HLR kernel (spec §4.4, §4.5).
package project

import (
	"math"
	"sort"

	"github.com/chazu/cadvec/pkg/cadio"
	"github.com/chazu/cadvec/pkg/color"
	"github.com/chazu/cadvec/pkg/errs"
	"github.com/chazu/cadvec/pkg/geom"
	"github.com/chazu/cadvec/pkg/mesh"
	"github.com/chazu/cadvec/pkg/planar"
	"github.com/chazu/cadvec/pkg/scene"
	"github.com/chazu/cadvec/pkg/shade"
	"gonum.org/v1/gonum/mat"
)

// edgeSampleTolerance is the fixed chordal tolerance used when sampling
// B-Rep curves into polylines for edge extraction.
const edgeSampleTolerance = 1e-2

// Projector projects a Part against one Camera: every public method
// borrows the camera and part for the call and returns freshly owned
// planar data, matching the pipeline's no-shared-mutable-state rule.
type Projector struct {
	camera scene.Camera
	u, v   *mat.Dense // 3 x 1, orthonormal, both orthogonal to camera.View()
}

// New builds a Projector for camera, constructing an orthonormal (u,v)
// basis for the plane orthogonal to camera.View(). Fails with
// ProjectionDegenerate only if the computed basis is not finite.
func New(camera scene.Camera) (*Projector, error) {
	view := camera.ViewVec()
	ref := [3]float64{0, 0, 1}
	if math.Abs(view[0]*ref[0]+view[1]*ref[1]+view[2]*ref[2]) > 0.999 {
		ref = [3]float64{1, 0, 0}
	}

	viewVec := geom.Vec3(view[0], view[1], view[2])
	refVec := geom.Vec3(ref[0], ref[1], ref[2])
	u := geom.Normalize(geom.Cross(refVec, viewVec))
	v := geom.Cross(viewVec, u)

	for _, m := range []*mat.Dense{u, v} {
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if math.IsNaN(m.At(i, j)) || math.IsInf(m.At(i, j), 0) {
					return nil, &errs.ProjectionDegenerate{Reason: "orthographic basis is not finite"}
				}
			}
		}
	}

	return &Projector{camera: camera, u: u, v: v}, nil
}

// projectPoint returns the (u,v) coordinates of p relative to the
// camera position. Depth along view is discarded here; the sorter
// computes it separately from 3D centroids.
func (p *Projector) projectPoint(point [3]float64) [2]float64 {
	pos := p.camera.Position()
	rel := geom.Vec3(point[0]-pos[0], point[1]-pos[1], point[2]-pos[2])
	return [2]float64{mat.Dot(p.u.ColView(0), rel.ColView(0)), mat.Dot(p.v.ColView(0), rel.ColView(0))}
}

// ProjectFacets projects every vertex of every solid's mesh into the
// (u,v) plane; topology is carried across unchanged.
func (p *Projector) ProjectFacets(part scene.Part) (*planar.PlanarMeshRepresentation, error) {
	geometries := make([]*mat.Dense, len(part.Solids))
	topologies := make([]mesh.Topology, len(part.Solids))
	for i, solid := range part.Solids {
		n := solid.Mesh.Geometry().Size()
		g2 := mat.NewDense(2, n, nil)
		for col := 0; col < n; col++ {
			v := solid.Mesh.Geometry().Column(col)
			uv := p.projectPoint([3]float64{v[0], v[1], v[2]})
			g2.Set(0, col, uv[0])
			g2.Set(1, col, uv[1])
		}
		geometries[i] = g2
		topologies[i] = solid.Mesh.Topology()
	}

	return planar.NewPlanarMeshRepresentation(geometries, topologies)
}

// VisibleFaces back-face-culls and depth-sorts every solid's facets
// against the camera, returning (solidIdx,facetIdx) pairs in ascending
// painter order. Ties preserve solid-index-major, facet-index-major
// input order via a stable sort (spec §4.5).
func (p *Projector) VisibleFaces(part scene.Part) [][2]int {
	view := p.camera.ViewVec()

	type row struct {
		depth              float64
		solidIdx, facetIdx int
	}
	var rows []row

	for si, solid := range part.Solids {
		for fi := 0; fi < solid.Mesh.FaceCount(); fi++ {
			n := solid.Mesh.Normal(fi)
			s := view[0]*n[0] + view[1]*n[1] + view[2]*n[2]
			if s < 0 {
				continue
			}
			c := solid.Mesh.Center(fi)
			d := view[0]*c[0] + view[1]*c[1] + view[2]*c[2]
			rows = append(rows, row{depth: d, solidIdx: si, facetIdx: fi})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].depth < rows[j].depth })

	out := make([][2]int, len(rows))
	for i, r := range rows {
		out[i] = [2]int{r.solidIdx, r.facetIdx}
	}
	return out
}

// FaceColors computes per-solid, per-facet Phong-shaded colors for
// every facet of part (spec §4.6), independent of visibility.
func (p *Projector) FaceColors(part scene.Part, lights []scene.Light) [][]color.RGBA {
	view := p.camera.ViewVec()
	out := make([][]color.RGBA, len(part.Solids))
	for i, solid := range part.Solids {
		out[i] = shade.Colors(solid, lights, view)
	}
	return out
}

// ProjectCurvesAndEdges classifies model's edges through hlr and
// samples each into a 2D polyline via sampler, grouping by visibility
// class. A class whose HLR compound is empty is simply omitted (not an
// error).
func (p *Projector) ProjectCurvesAndEdges(model cadio.Model, hlr cadio.HLRKernel, sampler cadio.CurveSampler) ([]planar.PlanarEdgesRepresentation, error) {
	compounds, err := hlr.EdgeCompounds(model, p.camera.Position(), p.camera.ViewVec())
	if err != nil {
		return nil, err
	}

	var out []planar.PlanarEdgesRepresentation
	for _, class := range planar.DrawOrder {
		edges, ok := compounds[class]
		if !ok || len(edges) == 0 {
			continue
		}

		wires := make([]planar.PlanarEdge, 0, len(edges))
		for _, edge := range edges {
			points, err := sampler.Sample(edge.Curve, edgeSampleTolerance, edge.Curve.FirstParameter(), edge.Curve.LastParameter())
			if err != nil {
				return nil, err
			}
			if len(points) == 0 {
				continue
			}
			pts := mat.NewDense(2, len(points), nil)
			for col, pt := range points {
				pts.Set(0, col, pt[0])
				pts.Set(1, col, pt[1])
			}
			wires = append(wires, planar.NewPlanarEdge(pts))
		}
		if len(wires) == 0 {
			continue
		}
		out = append(out, planar.PlanarEdgesRepresentation{Class: class, Wires: wires})
	}
	return out, nil
}

// CoordinateSystem projects the canonical X/Y/Z axes through the same
// basis as ProjectFacets. A tip is NaN when its 3D axis direction is
// parallel to the camera's view (the axis fully foreshortens).
func (p *Projector) CoordinateSystem() planar.PlanarCoordinateFrame {
	view := p.camera.ViewVec()
	origin3 := [3]float64{0, 0, 0}
	axes := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	frame := planar.PlanarCoordinateFrame{Origin: p.projectPoint(origin3)}
	tips := make([][2]float64, 3)
	for i, axis := range axes {
		dot := view[0]*axis[0] + view[1]*axis[1] + view[2]*axis[2]
		if math.Abs(dot) > 1-1e-9 {
			tips[i] = [2]float64{math.NaN(), math.NaN()}
			continue
		}
		tips[i] = p.projectPoint(axis)
	}
	frame.X, frame.Y, frame.Z = tips[0], tips[1], tips[2]
	return frame
}
