// Package mesh combines geometry (a dense vertex cloud) with topology
// (facet vertex-id tuples) into an immutable Mesh carrying derived
// per-facet centroid and normal tables (spec §3, §4.2).
package mesh

import (
	"github.com/chazu/cadvec/pkg/errs"
	"github.com/chazu/cadvec/pkg/geom"
	"gonum.org/v1/gonum/mat"
)

// Geometry is a dense (D x N) vertex cloud, column-major: column i holds
// the D coordinates of vertex i.
type Geometry struct {
	dim  int
	base *mat.Dense
}

// NewGeometry builds a Geometry from column-major point data: points[i]
// is the D coordinates of vertex i. All points must share the same
// dimension. Rejects an empty point list.
func NewGeometry(points [][]float64) (Geometry, error) {
	if len(points) == 0 {
		return Geometry{}, &errs.InvalidGeometry{Reason: "empty vertex list"}
	}
	dim := len(points[0])
	if dim != 2 && dim != 3 {
		return Geometry{}, &errs.InvalidGeometry{Reason: "dimension must be 2 or 3"}
	}
	base := mat.NewDense(dim, len(points), nil)
	for col, p := range points {
		if len(p) != dim {
			return Geometry{}, &errs.InvalidGeometry{Reason: "inconsistent point dimension"}
		}
		for row, v := range p {
			base.Set(row, col, v)
		}
	}
	return Geometry{dim: dim, base: base}, nil
}

// NewGeometryFromDense wraps an already-assembled (D x N) matrix.
func NewGeometryFromDense(m *mat.Dense) (Geometry, error) {
	r, c := m.Dims()
	if c == 0 {
		return Geometry{}, &errs.InvalidGeometry{Reason: "empty vertex matrix"}
	}
	if r != 2 && r != 3 {
		return Geometry{}, &errs.InvalidGeometry{Reason: "dimension must be 2 or 3"}
	}
	return Geometry{dim: r, base: m}, nil
}

// Dimension returns D (2 or 3).
func (g Geometry) Dimension() int { return g.dim }

// Size returns N, the number of vertices.
func (g Geometry) Size() int {
	if g.base == nil {
		return 0
	}
	_, c := g.base.Dims()
	return c
}

// Base returns the underlying (D x N) matrix. Callers must not mutate it.
func (g Geometry) Base() *mat.Dense { return g.base }

// Column returns the coordinates of vertex i.
func (g Geometry) Column(i int) []float64 {
	return mat.Col(nil, i, g.base)
}

// Topology maps a dense facet id (assigned by insertion order) to an
// ordered tuple of vertex ids, cardinality 3 (triangle) or 4 (quad).
type Topology struct {
	faces [][]int
}

// NewTopology builds a Topology from an ordered list of facets; facet id
// F is the F-th entry. Each facet must have 3 or 4 vertex ids.
func NewTopology(faces [][]int) (Topology, error) {
	for _, f := range faces {
		if len(f) != 3 && len(f) != 4 {
			return Topology{}, &errs.InvalidGeometry{Reason: "facet must have 3 or 4 vertices"}
		}
	}
	cp := make([][]int, len(faces))
	for i, f := range faces {
		cp[i] = append([]int(nil), f...)
	}
	return Topology{faces: cp}, nil
}

// Size returns the number of facets.
func (t Topology) Size() int { return len(t.faces) }

// Face returns the vertex ids of facet id.
func (t Topology) Face(id int) ([]int, error) {
	if id < 0 || id >= len(t.faces) {
		return nil, &errs.InvalidIndex{Kind: "facet", Index: id, Bound: len(t.faces)}
	}
	return t.faces[id], nil
}

// Triangles returns the sub-mapping of facet id -> vertex ids for every
// triangular facet.
func (t Topology) Triangles() map[int][3]int {
	out := make(map[int][3]int)
	for id, f := range t.faces {
		if len(f) == 3 {
			out[id] = [3]int{f[0], f[1], f[2]}
		}
	}
	return out
}

// Quadrilaterals returns the sub-mapping of facet id -> vertex ids for
// every quadrilateral facet.
func (t Topology) Quadrilaterals() map[int][4]int {
	out := make(map[int][4]int)
	for id, f := range t.faces {
		if len(f) == 4 {
			out[id] = [4]int{f[0], f[1], f[2], f[3]}
		}
	}
	return out
}

// Mesh is Geometry + Topology plus derived per-facet centroid and normal
// tables. A Mesh is immutable after construction; any edit (e.g. via
// With) yields a new Mesh.
type Mesh struct {
	geometry Geometry
	topology Topology
	centers  *mat.Dense // 3 x F
	normals  *mat.Dense // 3 x F
}

// New builds a Mesh from geometry and topology, computing centroids and
// normals per facet as specified in spec §3: a triangle's centroid is the
// mean of its three vertices and its normal is the normalized cross
// product (v1-v0) x (v2-v1); a quad's centroid is the mean of its two
// sub-triangle centroids ({0,1,2} and {2,3,0}) and its normal is the
// normalized sum of its two sub-triangle normals ({0,1,2} and {0,2,3}).
func New(geometry Geometry, topology Topology) (*Mesh, error) {
	if geometry.Size() == 0 {
		return nil, &errs.InvalidGeometry{Reason: "empty geometry"}
	}
	if geometry.Dimension() != 3 {
		return nil, &errs.InvalidGeometry{Reason: "mesh geometry must be 3-dimensional"}
	}

	f := topology.Size()
	centers := mat.NewDense(3, f, nil)
	normals := mat.NewDense(3, f, nil)

	for id, ids := range topology.Triangles() {
		c, n := triangleCenterAndNormal(geometry, ids[0], ids[1], ids[2])
		centers.SetCol(id, c)
		normals.SetCol(id, n)
	}

	for id, ids := range topology.Quadrilaterals() {
		c0, _ := triangleCenterAndNormal(geometry, ids[0], ids[1], ids[2])
		c1, _ := triangleCenterAndNormal(geometry, ids[2], ids[3], ids[0])
		center := make([]float64, 3)
		for i := range center {
			center[i] = 0.5 * (c0[i] + c1[i])
		}
		centers.SetCol(id, center)

		_, n0 := triangleCenterAndNormal(geometry, ids[0], ids[1], ids[2])
		_, n1 := triangleCenterAndNormal(geometry, ids[0], ids[2], ids[3])
		sum := mat.NewDense(3, 1, []float64{n0[0] + n1[0], n0[1] + n1[1], n0[2] + n1[2]})
		normals.SetCol(id, mat.Col(nil, 0, geom.ColumnNormalize(sum)))
	}

	return &Mesh{geometry: geometry, topology: topology, centers: centers, normals: normals}, nil
}

func triangleCenterAndNormal(g Geometry, i0, i1, i2 int) (center, normal []float64) {
	v0, v1, v2 := g.Column(i0), g.Column(i1), g.Column(i2)
	center = make([]float64, 3)
	for i := 0; i < 3; i++ {
		center[i] = (v0[i] + v1[i] + v2[i]) / 3.0
	}
	e01 := mat.NewDense(3, 1, []float64{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]})
	e12 := mat.NewDense(3, 1, []float64{v2[0] - v1[0], v2[1] - v1[1], v2[2] - v1[2]})
	n := geom.ColumnNormalize(geom.Cross(e01, e12))
	normal = mat.Col(nil, 0, n)
	return center, normal
}

// Geometry returns the mesh's vertex cloud.
func (m *Mesh) Geometry() Geometry { return m.geometry }

// Topology returns the mesh's facet-to-vertex mapping.
func (m *Mesh) Topology() Topology { return m.topology }

// Centers returns the (3 x F) per-facet centroid table.
func (m *Mesh) Centers() *mat.Dense { return m.centers }

// Normals returns the (3 x F) per-facet unit-normal table.
func (m *Mesh) Normals() *mat.Dense { return m.normals }

// FaceCount returns F, the number of facets.
func (m *Mesh) FaceCount() int { return m.topology.Size() }

// FaceVertices returns the 3D coordinates of facet id's vertices, one
// column per vertex.
func (m *Mesh) FaceVertices(id int) (*mat.Dense, error) {
	ids, err := m.topology.Face(id)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(3, len(ids), nil)
	for col, vid := range ids {
		out.SetCol(col, m.geometry.Column(vid))
	}
	return out, nil
}

// Center returns the centroid of facet id.
func (m *Mesh) Center(id int) []float64 {
	return mat.Col(nil, id, m.centers)
}

// Normal returns the unit normal of facet id.
func (m *Mesh) Normal(id int) []float64 {
	return mat.Col(nil, id, m.normals)
}
