// Package render orchestrates the full pipeline — Scene through
// Projector, PlanarScene, and the SVG emitter — into a finished document
// (spec §1, data-flow diagram: `Scene → Projector → PlanarScene →
// SvgEmitter → SVG text`). It is the only package that imports every
// other pipeline package; the core packages never import it back.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/chazu/cadvec/pkg/cadio"
	"github.com/chazu/cadvec/pkg/planar"
	"github.com/chazu/cadvec/pkg/project"
	"github.com/chazu/cadvec/pkg/scene"
	"github.com/chazu/cadvec/pkg/style"
	"github.com/chazu/cadvec/pkg/svgx"
)

// Scene is the complete 3D input to one render call: a part, the camera
// viewing it, and the lights shading it.
type Scene struct {
	Part   scene.Part
	Camera scene.Camera
	Lights []scene.Light
}

// Config bundles every render-time option: image sizing, styles, and the
// optional external collaborators used for edge extraction. HLR, Model,
// and Sampler may all be nil, in which case no edge wires are emitted —
// the render still produces shaded, painter-ordered surface facets.
type Config struct {
	Options    svgx.Options
	FaceStyle  style.FaceStyle
	LineStyles style.LineStyles
	CoordStyle style.CoordSystemStyle

	HLR     cadio.HLRKernel
	Model   cadio.Model
	Sampler cadio.CurveSampler
}

// DefaultConfig returns a Config with default image options, the
// reference face style, and default line styles for every edge class;
// edge extraction is disabled (HLR/Model/Sampler nil).
func DefaultConfig() Config {
	return Config{
		Options:    svgx.DefaultOptions(),
		FaceStyle:  style.DefaultFaceStyle,
		LineStyles: style.DefaultLineStyles(),
		CoordStyle: style.NewCoordSystemStyle(1, 0.02),
	}
}

// Render runs s through the full pipeline and returns the finished
// element tree, ready for svgx.Render. Edge extraction only runs if cfg
// names a complete HLR/Model/Sampler triple.
func Render(s Scene, cfg Config) (*svgx.Element, error) {
	projector, err := project.New(s.Camera)
	if err != nil {
		return nil, err
	}

	rep, err := projector.ProjectFacets(s.Part)
	if err != nil {
		return nil, err
	}
	rep.SetSorted(projector.VisibleFaces(s.Part))
	rep.SetColors(projector.FaceColors(s.Part, s.Lights))

	var edgeGroups []planar.PlanarEdgesRepresentation
	if cfg.HLR != nil && cfg.Model != nil && cfg.Sampler != nil {
		edgeGroups, err = projector.ProjectCurvesAndEdges(cfg.Model, cfg.HLR, cfg.Sampler)
		if err != nil {
			return nil, err
		}
	}

	frame := projector.CoordinateSystem()
	bb := rep.BoundingBox()
	width, height := cfg.Options.Dimensions(bb)

	root := svgx.NewSVG(width, height)

	scaleGroup := svgx.NewGroup(transform2(scaleStr, cfg.Options.Scale), nil)
	root.Append(scaleGroup)

	coordMargin := cfg.Options.CoordSize * 2
	if !cfg.Options.CoordGlyph {
		coordMargin = 0
	}
	marginGroup := svgx.NewGroup(transform2(translateStr, [2]float64{coordMargin, coordMargin}), nil)
	scaleGroup.Append(marginGroup)

	bboxGroup := svgx.NewGroup(
		transform2(translateStr, cfg.Options.Margin)+" "+transform2(scaleStr, cfg.Options.Zoom),
		nil,
	)
	marginGroup.Append(bboxGroup)

	geometryGroup := svgx.NewGroup(
		transform2(scaleStr, [2]float64{1, -1})+" "+transform2(translateStr, [2]float64{-bb.Min[0], -bb.Max[1]}),
		nil,
	)
	bboxGroup.Append(geometryGroup)

	surfaceGroup := svgx.NewGroup("", nil)
	for facet := range rep.Facets() {
		surfaceGroup.Append(facetPolygon(facet, cfg.FaceStyle))
	}
	geometryGroup.Append(surfaceGroup)

	for _, group := range edgeGroups {
		lineStyle, ok := cfg.LineStyles[group.Class]
		if !ok || len(group.Wires) == 0 {
			continue
		}
		geometryGroup.Append(edgeGroup(group, lineStyle))
	}

	if cfg.Options.CoordGlyph {
		bboxGroup.Append(coordinateGroup(frame, cfg.CoordStyle))
	}

	return root, nil
}

// WriteSVG runs Render and writes the resulting document to w.
func WriteSVG(w io.Writer, s Scene, cfg Config) error {
	root, err := Render(s, cfg)
	if err != nil {
		return err
	}
	return svgx.Render(w, root)
}

func facetPolygon(facet planar.PlanarFacet, fs style.FaceStyle) *svgx.Element {
	_, cols := facet.Points.Dims()
	points := make([][2]float64, cols)
	for i := 0; i < cols; i++ {
		points[i] = [2]float64{facet.Points.At(0, i), facet.Points.At(1, i)}
	}
	attrs := map[string]string{
		"fill":           fmt.Sprintf("rgb(%s)", facet.Color.String()),
		"fillopacity":    strconv.FormatFloat(facet.Color.Opacity(), 'f', -1, 64),
		"stroke":         fmt.Sprintf("rgb(%s)", fs.StrokeColor.String()),
		"strokewidth":    strconv.FormatFloat(fs.StrokeWidth, 'f', -1, 64),
		"strokelinejoin": "round",
	}
	if len(fs.DashArray) > 0 {
		attrs["strokedasharray"] = dashArray(fs.DashArray)
	}
	return svgx.NewPolygon(points, attrs)
}

func edgeGroup(group planar.PlanarEdgesRepresentation, ls style.LineStyle) *svgx.Element {
	attrs := map[string]string{
		"stroke":        fmt.Sprintf("rgb(%s)", ls.Color.String()),
		"strokewidth":   strconv.FormatFloat(ls.StrokeWidth, 'f', -1, 64),
		"strokelinecap": "round",
		"fill":          "none",
	}
	if len(ls.DashArray) > 0 {
		attrs["strokedasharray"] = dashArray(ls.DashArray)
	}
	g := svgx.NewGroup("", nil)
	for _, wire := range group.Wires {
		_, cols := wire.Points().Dims()
		points := make([][2]float64, cols)
		for i := 0; i < cols; i++ {
			points[i] = [2]float64{wire.Points().At(0, i), wire.Points().At(1, i)}
		}
		g.Append(svgx.NewPath(svgx.PolylinePath(points), attrs))
	}
	return g
}

func coordinateGroup(frame planar.PlanarCoordinateFrame, cs style.CoordSystemStyle) *svgx.Element {
	g := svgx.NewGroup("", nil)
	if frame.Finite(0) {
		if arrow := arrowGlyph(frame.Origin, frame.X, cs.X); arrow != nil {
			g.Append(arrow)
		}
	}
	if frame.Finite(1) {
		if arrow := arrowGlyph(frame.Origin, frame.Y, cs.Y); arrow != nil {
			g.Append(arrow)
		}
	}
	if frame.Finite(2) {
		if arrow := arrowGlyph(frame.Origin, frame.Z, cs.Z); arrow != nil {
			g.Append(arrow)
		}
	}
	return g
}

// arrowGlyph builds one axis arrow: a shaft line, a filled triangular
// head, and a label text positioned off the axis direction's sign so it
// does not overlap the shaft.
func arrowGlyph(origin, tip [2]float64, as style.ArrowStyle) *svgx.Element {
	dx, dy := tip[0]-origin[0], tip[1]-origin[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	ux, uy := dx/length, dy/length
	px, py := -uy, ux

	headBase := [2]float64{tip[0] - ux*as.HeadLength, tip[1] - uy*as.HeadLength}
	headLeft := [2]float64{headBase[0] + px*as.HeadWidth/2, headBase[1] + py*as.HeadWidth/2}
	headRight := [2]float64{headBase[0] - px*as.HeadWidth/2, headBase[1] - py*as.HeadWidth/2}

	strokeColor := fmt.Sprintf("rgb(%s)", as.Color.String())
	g := svgx.NewGroup("", nil)
	g.Append(svgx.NewLine(origin[0], origin[1], headBase[0], headBase[1], map[string]string{
		"stroke":        strokeColor,
		"strokewidth":   strconv.FormatFloat(as.StrokeWidth, 'f', -1, 64),
		"strokelinecap": "round",
	}))
	g.Append(svgx.NewPolygon([][2]float64{tip, headLeft, headRight}, map[string]string{
		"fill": strokeColor,
	}))

	labelPos := [2]float64{tip[0] + ux*as.LabelFontSize, tip[1] + uy*as.LabelFontSize}
	if ux < 0 {
		labelPos[0] -= as.LabelFontSize
	}
	if uy < 0 {
		labelPos[1] -= as.LabelFontSize
	}
	g.Append(svgx.NewText(labelPos[0], labelPos[1], as.Label, map[string]string{
		"fill": strokeColor,
	}))

	return g
}

func dashArray(values []float64) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += strconv.FormatFloat(v, 'f', -1, 64)
	}
	return out
}

const (
	scaleStr     = "scale"
	translateStr = "translate"
)

func transform2(kind string, v [2]float64) string {
	return fmt.Sprintf("%s(%s,%s)", kind, strconv.FormatFloat(v[0], 'f', -1, 64), strconv.FormatFloat(v[1], 'f', -1, 64))
}
