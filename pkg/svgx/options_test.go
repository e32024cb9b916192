package svgx

import (
	"testing"

	"github.com/chazu/cadvec/pkg/planar"
)

func TestDimensionsTruncatesNotRounds(t *testing.T) {
	o := Options{Zoom: [2]float64{1, 1}, Scale: [2]float64{1.3, 1.3}, CoordGlyph: false}
	bb := planar.BoundingBox2D{Extent: [2]float64{10.7, 10.7}}
	w, h := o.Dimensions(bb)
	if w != 13 || h != 13 {
		t.Errorf("Dimensions() = (%d,%d), want (13,13) (extent 10.7 truncated to 10, times 1.3; rounding would give 14)", w, h)
	}
}

func TestDimensionsAddsCoordMarginWhenGlyphEnabled(t *testing.T) {
	withGlyph := Options{Zoom: [2]float64{1, 1}, Scale: [2]float64{1, 1}, CoordGlyph: true, CoordSize: 5}
	withoutGlyph := Options{Zoom: [2]float64{1, 1}, Scale: [2]float64{1, 1}, CoordGlyph: false}
	bb := planar.BoundingBox2D{Extent: [2]float64{10, 10}}

	w1, _ := withGlyph.Dimensions(bb)
	w0, _ := withoutGlyph.Dimensions(bb)
	if w1-w0 != 20 {
		t.Errorf("coord margin contribution = %d, want 20 (2*2*coordSize)", w1-w0)
	}
}

func TestDefaultOptionsUnitZoomAndScale(t *testing.T) {
	o := DefaultOptions()
	if o.Zoom != [2]float64{1, 1} || o.Scale != [2]float64{1, 1} {
		t.Errorf("DefaultOptions() = %+v, want unit zoom/scale", o)
	}
}
