// Package style defines the plain value records the SVG emitter consumes
// to draw edges, facet outlines, and coordinate-axis glyphs (spec §4.9).
// Styles carry no mutable cross-cutting state; a caller builds a set of
// styles once per render and passes them to pkg/svgx.
package style

import (
	"github.com/chazu/cadvec/pkg/color"
	"github.com/chazu/cadvec/pkg/planar"
)

// LineStyle is the stroke appearance for one edge-visibility class.
type LineStyle struct {
	Color       color.RGBA
	StrokeWidth float64
	DashArray   []float64 // nil means solid
}

// FaceStyle is the outline appearance stroked over every filled facet
// polygon. DefaultFaceStyle matches the reference tool's default stroke
// width of 0.03 model units.
type FaceStyle struct {
	StrokeColor color.RGBA
	StrokeWidth float64
	DashArray   []float64
}

// DefaultFaceStyle is a solid black 0.03-wide outline.
var DefaultFaceStyle = FaceStyle{StrokeColor: color.New(0, 0, 0), StrokeWidth: 0.03}

// ArrowStyle is one coordinate axis's glyph appearance: a line, a filled
// triangular head, and a label. NewArrowStyle derives head width/length
// and label font size from the stroke width and glyph size; they are
// stored as separate exported fields and are not recomputed when
// StrokeWidth changes.
type ArrowStyle struct {
	StrokeWidth    float64
	HeadWidth      float64
	HeadLength     float64
	Label          string
	LabelFontSize  float64
	Color          color.RGBA
}

// CoordSystemStyle is the coordinate-axis glyph's overall size and the
// three per-axis arrow styles it implies. Margin is twice Size, reserved
// around the glyph so it does not overlap the geometry.
type CoordSystemStyle struct {
	Size   float64
	X, Y, Z ArrowStyle
	Margin float64
}

// NewArrowStyle derives a complete ArrowStyle from a stroke width, label,
// and color, following the fixed head-width = 3*strokeWidth,
// head-length = 4*strokeWidth, font-size = size/5 ratios (spec §4.9).
func NewArrowStyle(strokeWidth, size float64, label string, c color.RGBA) ArrowStyle {
	return ArrowStyle{
		StrokeWidth:   strokeWidth,
		HeadWidth:     3 * strokeWidth,
		HeadLength:    4 * strokeWidth,
		Label:         label,
		LabelFontSize: size / 5,
		Color:         c,
	}
}

// NewCoordSystemStyle builds a CoordSystemStyle of the given size, with
// X/Y/Z arrows sharing strokeWidth and colored red/green/blue.
func NewCoordSystemStyle(size, strokeWidth float64) CoordSystemStyle {
	return CoordSystemStyle{
		Size:   size,
		X:      NewArrowStyle(strokeWidth, size, "X", color.New(200, 0, 0)),
		Y:      NewArrowStyle(strokeWidth, size, "Y", color.New(0, 160, 0)),
		Z:      NewArrowStyle(strokeWidth, size, "Z", color.New(0, 0, 200)),
		Margin: 2 * size,
	}
}

// LineStyles maps each edge-visibility class to its LineStyle. A class
// absent from the map is skipped by the emitter (spec §4.8, step 7).
type LineStyles map[planar.EdgeClass]LineStyle

// DefaultLineStyles returns a LineStyle for every edge class: hidden
// classes dashed and light gray, visible classes solid and black, the
// outline class drawn slightly heavier than sharp/smooth edges.
func DefaultLineStyles() LineStyles {
	gray := color.New(160, 160, 160)
	black := color.New(0, 0, 0)
	return LineStyles{
		planar.HiddenSmooth:   {Color: gray, StrokeWidth: 0.01, DashArray: []float64{0.05, 0.05}},
		planar.HiddenSharp:    {Color: gray, StrokeWidth: 0.01, DashArray: []float64{0.02, 0.02}},
		planar.VisibleSmooth:  {Color: black, StrokeWidth: 0.01},
		planar.VisibleSharp:   {Color: black, StrokeWidth: 0.02},
		planar.VisibleOutline: {Color: black, StrokeWidth: 0.03},
	}
}
