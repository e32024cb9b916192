// Package tessellate walks a design graph and produces triangle meshes
// using a geometry kernel. One mesh is produced per part.
package tessellate

import (
	"fmt"

	"github.com/chazu/cadvec/pkg/graph"
	"github.com/chazu/cadvec/pkg/kernel"
	"github.com/chazu/cadvec/pkg/mesh"
	"github.com/chazu/cadvec/pkg/render"
)

// DefaultTessellationTolerance is the fixed chordal deflection used to
// tessellate every primitive node. Furniture-scale parts (tens to
// hundreds of model units) render smoothly at this tolerance without
// the per-node cell counts sdfx's marching cubes needs to grow
// unreasonably large.
const DefaultTessellationTolerance = 1.0

// FallbackTessellationTolerance is the coarser tolerance a MeshingFailure
// is retried at, per spec: recover locally by falling back to the CAD
// kernel's native tessellation at tolerance 10.
const FallbackTessellationTolerance = 10.0

// PartMesh pairs a tessellated mesh with the design-graph part name it
// came from.
type PartMesh struct {
	Name string
	Mesh *mesh.Mesh
}

// transformStack accumulates spatial transforms during graph traversal.
type transformStack struct {
	translations []graph.Vec3
	rotations    []graph.Vec3
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) pushTranslation(v graph.Vec3) {
	ts.translations = append(ts.translations, v)
}

func (ts *transformStack) pushRotation(v graph.Vec3) {
	ts.rotations = append(ts.rotations, v)
}

func (ts *transformStack) pop() {
	if len(ts.translations) > 0 {
		ts.translations = ts.translations[:len(ts.translations)-1]
	}
	if len(ts.rotations) > 0 {
		ts.rotations = ts.rotations[:len(ts.rotations)-1]
	}
}

// accumulatedTranslation returns the sum of all translations on the stack.
func (ts *transformStack) accumulatedTranslation() graph.Vec3 {
	var sum graph.Vec3
	for _, t := range ts.translations {
		sum = sum.Add(t)
	}
	return sum
}

// accumulatedRotation returns the sum of all rotations on the stack.
func (ts *transformStack) accumulatedRotation() graph.Vec3 {
	var sum graph.Vec3
	for _, r := range ts.rotations {
		sum = sum.Add(r)
	}
	return sum
}

// Tessellate walks the design graph and produces one triangle mesh per
// primitive part using the provided geometry kernel. The tessellator is
// read-only and never mutates the graph.
func Tessellate(g *graph.DesignGraph, k kernel.Kernel) ([]PartMesh, error) {
	if g == nil {
		return nil, nil
	}

	var meshes []PartMesh
	ts := newTransformStack()

	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := walkNode(g, k, root, ts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		meshes = append(meshes, collected...)
	}

	return meshes, nil
}

// walkNode recursively traverses a node and its children, collecting meshes.
func walkNode(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) ([]PartMesh, error) {
	switch n.Kind {
	case graph.NodePrimitive:
		return handlePrimitive(k, n, ts)

	case graph.NodeTransform:
		return handleTransform(g, k, n, ts)

	case graph.NodeGroup:
		return handleGroup(g, k, n, ts)

	case graph.NodeJoin:
		// MVP: butt joints are metadata-only, skip.
		return nil, nil

	case graph.NodeFastener:
		// Future: generate fastener geometry.
		return nil, nil

	case graph.NodeDrill:
		// Future: generate drill geometry.
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// handlePrimitive creates geometry for a primitive node.
func handlePrimitive(k kernel.Kernel, n *graph.Node, ts *transformStack) ([]PartMesh, error) {
	var solid kernel.Solid

	switch data := n.Data.(type) {
	case graph.BoardData:
		solid = k.Box(data.Dimensions.X, data.Dimensions.Y, data.Dimensions.Z)
	case graph.DowelData:
		solid = k.Cylinder(data.Length, data.Diameter/2, 32)
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}

	// Apply accumulated rotation first, then translation.
	rot := ts.accumulatedRotation()
	if rot.X != 0 || rot.Y != 0 || rot.Z != 0 {
		solid = k.Rotate(solid, rot.X, rot.Y, rot.Z)
	}

	trans := ts.accumulatedTranslation()
	if trans.X != 0 || trans.Y != 0 || trans.Z != 0 {
		solid = k.Translate(solid, trans.X, trans.Y, trans.Z)
	}

	m, err := solid.Tessellate(DefaultTessellationTolerance)
	if err != nil {
		if !render.IsMeshingFailure(err) {
			return nil, fmt.Errorf("tessellate: tessellation failed for node %s: %w", n.ID.Short(), err)
		}
		// Recover locally: retry at the coarser fallback tolerance before
		// giving up on this part.
		m, err = solid.Tessellate(FallbackTessellationTolerance)
		if err != nil {
			return nil, fmt.Errorf("tessellate: tessellation failed for node %s at fallback tolerance: %w", n.ID.Short(), err)
		}
	}

	// The part name: prefer the node's Name, fall back to short ID.
	name := n.Name
	if name == "" {
		name = n.ID.Short()
	}

	return []PartMesh{{Name: name, Mesh: m}}, nil
}

// handleTransform pushes the transform, recurses into children, then pops.
func handleTransform(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) ([]PartMesh, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	// Push transform onto the stack.
	translation := graph.Vec3{}
	rotation := graph.Vec3{}
	if td.Translation != nil {
		translation = *td.Translation
	}
	if td.Rotation != nil {
		rotation = *td.Rotation
	}
	ts.pushTranslation(translation)
	ts.pushRotation(rotation)

	var meshes []PartMesh
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, k, child, ts)
		if err != nil {
			ts.pop()
			return nil, err
		}
		meshes = append(meshes, collected...)
	}

	ts.pop()
	return meshes, nil
}

// handleGroup recurses into children transparently.
func handleGroup(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node, ts *transformStack) ([]PartMesh, error) {
	var meshes []PartMesh
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, k, child, ts)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}
