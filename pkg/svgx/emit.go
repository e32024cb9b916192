package svgx

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Render walks root depth-first and writes the resulting SVG document to
// w. root must be a KindSVG node. Polygon, line, and path geometry is
// written through svgo's Path writer rather than its int-coordinate
// Polygon/Line convenience methods, which would truncate sub-unit CAD
// coordinates to the nearest pixel; text labels use svgo's Text writer
// directly, rounding to the nearest integer pixel (standard practice for
// glyph baselines).
func Render(w io.Writer, root *Element) error {
	if root.Kind != KindSVG {
		return fmt.Errorf("svgx: root element must be KindSVG, got %v", root.Kind)
	}
	canvas := svg.New(w)
	canvas.Start(root.Width, root.Height, styleString(root.Attrs, nil))
	for _, child := range root.Children {
		renderNode(canvas, child)
	}
	canvas.End()
	return nil
}

func renderNode(canvas *svg.SVG, e *Element) {
	switch e.Kind {
	case KindGroup:
		switch {
		case e.Transform != "":
			canvas.Gtransform(e.Transform)
		case len(e.Attrs) > 0:
			canvas.Group(styleString(e.Attrs, nil))
		default:
			canvas.Group()
		}
		for _, c := range e.Children {
			renderNode(canvas, c)
		}
		canvas.Gend()

	case KindPolygon:
		canvas.Path(polygonPath(e.Points), styleString(e.Attrs, nil))

	case KindLine:
		d := fmt.Sprintf("M %s,%s L %s,%s", fnum(e.X1), fnum(e.Y1), fnum(e.X2), fnum(e.Y2))
		canvas.Path(d, styleString(e.Attrs, nil))

	case KindPath:
		canvas.Path(e.D, styleString(e.Attrs, nil))

	case KindText:
		x := int(math.Round(e.X))
		y := int(math.Round(e.Y))
		canvas.Text(x, y, e.Content, styleString(e.Attrs, nil))

	case KindStyle:
		fmt.Fprintf(canvas.Writer, "<style>%s</style>\n", e.Content)

	case KindRaw:
		fmt.Fprint(canvas.Writer, e.Content)
	}
}

// polygonPath builds a closed path data string from an ordered point
// list: `M x0,y0 L x1,y1 L… Z`.
func polygonPath(points [][2]float64) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M %s,%s", fnum(points[0][0]), fnum(points[0][1]))
	for _, p := range points[1:] {
		fmt.Fprintf(&b, " L %s,%s", fnum(p[0]), fnum(p[1]))
	}
	b.WriteString(" Z")
	return b.String()
}

// PolylinePath builds an open path data string from an ordered point
// list: `M x0,y0 L x1,y1 L…` (no closing Z), matching spec §4.8's edge
// wire format.
func PolylinePath(points [][2]float64) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M %s,%s", fnum(points[0][0]), fnum(points[0][1]))
	for _, p := range points[1:] {
		fmt.Fprintf(&b, " L %s,%s", fnum(p[0]), fnum(p[1]))
	}
	return b.String()
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// styleString builds a single svgo-style attribute string from a
// translated, sorted (for deterministic output) attribute map.
func styleString(attrs map[string]string, skip map[string]bool) string {
	translated := TranslateAttrs(attrs)
	keys := make([]string, 0, len(translated))
	for k := range translated {
		if skip[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, `%s="%s"`, k, translated[k])
	}
	return b.String()
}
