package graph

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
)

// ---------------------------------------------------------------------------
// Tier 4 — Spatial overlap validation (advisory)
// ---------------------------------------------------------------------------

// partBox is the world-space axis-aligned bounding box of a board primitive,
// indexed in an R-tree for overlap queries. Rotation is not accounted for:
// the box is built from the node's accumulated translation only, while the
// tessellator also applies the accumulated rotation.
type partBox struct {
	id   NodeID
	name string
	min  Vec3
	max  Vec3
}

func (b *partBox) Bounds() *rtreego.Rect {
	lengths := []float64{
		math.Max(b.max.X-b.min.X, 1e-6),
		math.Max(b.max.Y-b.min.Y, 1e-6),
		math.Max(b.max.Z-b.min.Z, 1e-6),
	}
	r, err := rtreego.NewRect(rtreego.Point{b.min.X, b.min.Y, b.min.Z}, lengths)
	if err != nil {
		// Degenerate dimensions were already clamped above; this should
		// not happen, but an empty rect keeps the tree from panicking.
		r, _ = rtreego.NewRect(rtreego.Point{b.min.X, b.min.Y, b.min.Z}, []float64{1e-6, 1e-6, 1e-6})
	}
	return r
}

// validateSpatialOverlap flags pairs of board primitives whose world-space
// bounding boxes intersect by more than a touching tolerance. Parts that
// legitimately share a joined face touch at a boundary (near-zero overlap
// volume); a sizable interior overlap signals a placement mistake.
func validateSpatialOverlap(g *DesignGraph) []ValidationWarning {
	if g == nil {
		return nil
	}

	boxes := collectBoardBoxes(g)
	if len(boxes) < 2 {
		return nil
	}

	tree := rtreego.NewTree(3, 25, 50)
	for _, b := range boxes {
		tree.Insert(b)
	}

	const touchTolerance = 1.0 // mm^3 of allowed face-to-face contact noise
	reported := make(map[[2]NodeID]bool)
	var warnings []ValidationWarning

	for _, b := range boxes {
		for _, hit := range tree.SearchIntersect(b.Bounds()) {
			other, ok := hit.(*partBox)
			if !ok || other.id == b.id {
				continue
			}
			vol := overlapVolume(b, other)
			if vol <= touchTolerance {
				continue
			}
			key := pairKey(b.id, other.id)
			if reported[key] {
				continue
			}
			reported[key] = true
			warnings = append(warnings, ValidationWarning{
				NodeID: b.id,
				Message: fmt.Sprintf(
					"part %q overlaps part %q in world space (~%.1f mm^3)",
					b.name, other.name, vol,
				),
			})
		}
	}

	return warnings
}

func pairKey(a, b NodeID) [2]NodeID {
	if a.String() < b.String() {
		return [2]NodeID{a, b}
	}
	return [2]NodeID{b, a}
}

func overlapVolume(a, b *partBox) float64 {
	dx := axisOverlap(a.min.X, a.max.X, b.min.X, b.max.X)
	dy := axisOverlap(a.min.Y, a.max.Y, b.min.Y, b.max.Y)
	dz := axisOverlap(a.min.Z, a.max.Z, b.min.Z, b.max.Z)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}

func axisOverlap(aMin, aMax, bMin, bMax float64) float64 {
	lo := math.Max(aMin, bMin)
	hi := math.Min(aMax, bMax)
	return hi - lo
}

// collectBoardBoxes walks the graph from its roots, accumulating translation
// through transform and group nodes, and returns one partBox per reachable
// board primitive.
func collectBoardBoxes(g *DesignGraph) []*partBox {
	w := &spatialWalker{g: g}
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		w.walk(root, Vec3{})
	}
	return w.boxes
}

type spatialWalker struct {
	g     *DesignGraph
	boxes []*partBox
}

func (w *spatialWalker) walk(n *Node, accum Vec3) {
	switch n.Kind {
	case NodePrimitive:
		bd, ok := n.Data.(BoardData)
		if !ok {
			return // dowels are not yet covered by this check
		}
		half := bd.Dimensions.Scale(0.5)
		name := n.Name
		if name == "" {
			name = n.ID.Short()
		}
		w.boxes = append(w.boxes, &partBox{
			id:   n.ID,
			name: name,
			min:  accum.Add(Vec3{X: -half.X, Y: -half.Y, Z: -half.Z}),
			max:  accum.Add(half),
		})

	case NodeTransform:
		next := accum
		if td, ok := n.Data.(TransformData); ok && td.Translation != nil {
			next = accum.Add(*td.Translation)
		}
		for _, c := range w.g.Children(n) {
			w.walk(c, next)
		}

	case NodeGroup:
		for _, c := range w.g.Children(n) {
			w.walk(c, accum)
		}
	}
}
