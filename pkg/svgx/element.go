// Package svgx builds the layered SVG element tree the emitter walks
// depth-first to produce the final document (spec §4.8). The tree is a
// bespoke tagged-variant structure, not svgo's own streaming writer
// directly: leaf nodes carry their own typed geometry, and a shared
// string-keyed attribute map for presentation properties whose keys get
// translated to hyphenated SVG names at render time.
package svgx

// Kind is the tagged variant discriminator for one element tree node.
type Kind int

const (
	KindSVG Kind = iota
	KindGroup
	KindPolygon
	KindLine
	KindPath
	KindText
	KindStyle
	KindRaw
)

// attrKeyTranslation maps internal camel-style attribute spellings to
// their hyphenated SVG names, applied once at render time.
var attrKeyTranslation = map[string]string{
	"fillopacity":     "fill-opacity",
	"strokewidth":     "stroke-width",
	"strokeopacity":   "stroke-opacity",
	"strokelinejoin":  "stroke-linejoin",
	"strokelinecap":   "stroke-linecap",
	"styleclass":      "class",
	"strokedasharray": "stroke-dasharray",
}

// TranslateAttrs returns a copy of attrs with every internal key
// rewritten to its SVG name; unrecognized keys pass through unchanged.
func TranslateAttrs(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		if translated, ok := attrKeyTranslation[k]; ok {
			k = translated
		}
		out[k] = v
	}
	return out
}

// Element is one node of the SVG element tree. Only the fields relevant
// to Kind are populated; Attrs always holds presentation properties
// (fill, stroke-*, class, id, style) common to any node kind.
type Element struct {
	Kind     Kind
	Attrs    map[string]string
	Children []*Element

	Width, Height int // KindSVG

	Transform string // KindGroup

	Points [][2]float64 // KindPolygon

	X1, Y1, X2, Y2 float64 // KindLine

	D string // KindPath

	X, Y float64 // KindText position

	Content string // KindText label, KindStyle CSS, KindRaw literal markup
}

func cloneAttrs(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// NewSVG creates the document root.
func NewSVG(width, height int) *Element {
	return &Element{Kind: KindSVG, Width: width, Height: height, Attrs: map[string]string{}}
}

// NewGroup creates a <g> node with an optional transform attribute.
func NewGroup(transform string, attrs map[string]string) *Element {
	return &Element{Kind: KindGroup, Transform: transform, Attrs: cloneAttrs(attrs)}
}

// NewPolygon creates a closed <polygon>-equivalent node from an ordered
// point list.
func NewPolygon(points [][2]float64, attrs map[string]string) *Element {
	return &Element{Kind: KindPolygon, Points: points, Attrs: cloneAttrs(attrs)}
}

// NewLine creates a straight two-point line node.
func NewLine(x1, y1, x2, y2 float64, attrs map[string]string) *Element {
	return &Element{Kind: KindLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Attrs: cloneAttrs(attrs)}
}

// NewPath creates a node from an already-built SVG path data string
// (`M x0,y0 L x1,y1 L…`).
func NewPath(d string, attrs map[string]string) *Element {
	return &Element{Kind: KindPath, D: d, Attrs: cloneAttrs(attrs)}
}

// NewText creates a label node at (x,y).
func NewText(x, y float64, content string, attrs map[string]string) *Element {
	return &Element{Kind: KindText, X: x, Y: y, Content: content, Attrs: cloneAttrs(attrs)}
}

// NewStyle creates a literal <style> node.
func NewStyle(css string) *Element {
	return &Element{Kind: KindStyle, Content: css}
}

// NewRaw creates a node whose content is copied into the document
// verbatim, unescaped.
func NewRaw(content string) *Element {
	return &Element{Kind: KindRaw, Content: content}
}

// Append adds children in order and returns e for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}
