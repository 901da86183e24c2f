package render

import (
	"strings"

	"github.com/goxps/goxps/geom"
	"github.com/goxps/goxps/resource"
)

// elementKind is the closed set of element names the processor
// dispatches on. Dotted names (Path.Fill, Canvas.Resources, ...) all
// map to kindProperty; anything else is kindUnknown and is walked but
// produces nothing.
type elementKind uint8

const (
	kindUnknown elementKind = iota
	kindFixedPage
	kindCanvas
	kindPath
	kindGlyphs
	kindMatrixTransform
	kindSolidColorBrush
	kindImageBrush
	kindLinearGradientBrush
	kindRadialGradientBrush
	kindVisualBrush
	kindGradientStop
	kindPathGeometry
	kindPathFigure
	kindPolyLineSegment
	kindPolyBezierSegment
	kindPolyQuadraticBezierSegment
	kindArcSegment
	kindResourceDictionary
	kindProperty
)

var kindNames = map[string]elementKind{
	"FixedPage":                  kindFixedPage,
	"Canvas":                     kindCanvas,
	"Path":                       kindPath,
	"Glyphs":                     kindGlyphs,
	"MatrixTransform":            kindMatrixTransform,
	"SolidColorBrush":            kindSolidColorBrush,
	"ImageBrush":                 kindImageBrush,
	"LinearGradientBrush":        kindLinearGradientBrush,
	"RadialGradientBrush":        kindRadialGradientBrush,
	"VisualBrush":                kindVisualBrush,
	"GradientStop":               kindGradientStop,
	"PathGeometry":               kindPathGeometry,
	"PathFigure":                 kindPathFigure,
	"PolyLineSegment":            kindPolyLineSegment,
	"PolyBezierSegment":          kindPolyBezierSegment,
	"PolyQuadraticBezierSegment": kindPolyQuadraticBezierSegment,
	"ArcSegment":                 kindArcSegment,
	"ResourceDictionary":         kindResourceDictionary,
}

func kindOf(local string) elementKind {
	if k, ok := kindNames[local]; ok {
		return k
	}
	if strings.Contains(local, ".") {
		return kindProperty
	}
	return kindUnknown
}

// payload is the sealed union of values an element can hand up to its
// parent once its subtree is complete.
type payload interface {
	isPayload()
}

type matrixPayload geom.Matrix

type brushPayload struct {
	brush resource.Brush
}

type geometryPayload struct {
	path geom.Path
	rule geom.FillRule
}

// segmentsPayload is produced by the segment children of a PathFigure.
type segmentsPayload []geom.Segment

type stopPayload resource.GradientStop

type dictionaryPayload struct {
	dict *resource.Dictionary
}

func (matrixPayload) isPayload()     {}
func (brushPayload) isPayload()      {}
func (geometryPayload) isPayload()   {}
func (segmentsPayload) isPayload()   {}
func (stopPayload) isPayload()       {}
func (dictionaryPayload) isPayload() {}

// node is one element of the transient page tree. Children are
// attached as their end tags arrive, so a node sees its complete
// subtree when its own end handler runs; the tree is discarded with
// the page.
type node struct {
	kind     elementKind
	name     string
	attrs    map[string]string
	children []*node
	props    map[string]payload
	payload  payload
}

func (n *node) attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// prop returns a hoisted property-element payload.
func (n *node) prop(name string) (payload, bool) {
	if n.props == nil {
		return nil, false
	}
	p, ok := n.props[name]
	return p, ok
}

func (n *node) setProp(name string, p payload) {
	if n.props == nil {
		n.props = make(map[string]payload)
	}
	n.props[name] = p
}

// firstPayload returns the payload of the first child that produced
// one. Property elements wrap a single definition child, so this is
// how their value is extracted.
func (n *node) firstPayload() payload {
	for _, c := range n.children {
		if c.payload != nil {
			return c.payload
		}
	}
	return nil
}

// collectStops gathers gradient stops anywhere under n, in document
// order. The stops sit below a GradientStops property element, but
// walking the whole subtree keeps the handler independent of that
// nesting.
func (n *node) collectStops(out []resource.GradientStop) []resource.GradientStop {
	for _, c := range n.children {
		if s, ok := c.payload.(stopPayload); ok {
			out = append(out, resource.GradientStop(s))
		}
		out = c.collectStops(out)
	}
	return out
}
