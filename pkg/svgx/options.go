package svgx

import (
	"math"

	"github.com/chazu/cadvec/pkg/planar"
)

// Options holds the independent image-sizing knobs the document layout
// composes multiplicatively (spec §4.8, "Dimensions"; SPEC_FULL §4): a
// global scale, per-axis zoom applied to the bounding box, user margins,
// and the optional coordinate-axis glyph with its own reserved margin.
type Options struct {
	Zoom       [2]float64
	Scale      [2]float64
	Margin     [2]float64
	CoordGlyph bool
	CoordSize  float64
}

// DefaultOptions returns unit zoom/scale, zero user margin, and the
// coordinate glyph enabled at size 1.
func DefaultOptions() Options {
	return Options{Zoom: [2]float64{1, 1}, Scale: [2]float64{1, 1}, CoordGlyph: true, CoordSize: 1}
}

// coordMargin is 2*CoordSize when the glyph is enabled, else zero.
func (o Options) coordMargin() float64 {
	if !o.CoordGlyph {
		return 0
	}
	return 2 * o.CoordSize
}

// Dimensions computes the final integer pixel width/height for bb,
// truncating (not rounding) before the outer scale multiply, matching
// the reference tool's `int(...)` width/height computation.
func (o Options) Dimensions(bb planar.BoundingBox2D) (width, height int) {
	cm := o.coordMargin()
	w := math.Trunc(bb.Extent[0]*o.Zoom[0] + 2*o.Margin[0] + 2*cm)
	h := math.Trunc(bb.Extent[1]*o.Zoom[1] + 2*o.Margin[1] + 2*cm)
	return int(w * o.Scale[0]), int(h * o.Scale[1])
}
