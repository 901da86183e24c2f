// Package geom implements the XPS abbreviated-geometry mini-language
// and the path model it compiles to. Paths are abstract; they are
// consumed by painting drivers through the Adder interface.
package geom

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Point is a position in page units (1/96 inch).
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in page units.
type Rect struct {
	X, Y, W, H float64
}

// ParseRect reads the x,y,w,h form used by Viewbox and Viewport attributes.
func ParseRect(s string) (Rect, error) {
	vals, err := ParseFloats(s)
	if err != nil {
		return Rect{}, err
	}
	if len(vals) != 4 {
		return Rect{}, errValueCount{"Viewport", 4, len(vals)}
	}
	return Rect{vals[0], vals[1], vals[2], vals[3]}, nil
}

// FillRule selects how self-intersecting geometry is filled.
type FillRule uint8

const (
	EvenOdd FillRule = iota
	NonZero
)

// Segment is one resolved drawing operation. All coordinates are
// absolute: relative abbreviated-geometry commands are resolved against
// the current point before a segment is emitted.
type Segment interface {
	transcribe(t *transcriber)
}

// MoveTo starts a new figure.
type MoveTo Point

// LineTo draws a straight line from the current point.
type LineTo Point

// QuadTo draws a quadratic bezier curve; the array holds the control
// point and the end point.
type QuadTo [2]Point

// CubicTo draws a cubic bezier curve; the array holds both control
// points and the end point.
type CubicTo [3]Point

// ArcTo draws an elliptical arc from the current point to (X, Y). It is
// lowered to cubic curves when the path is transcribed.
type ArcTo struct {
	RX, RY   float64 // radii
	Rotation float64 // rotation of the ellipse x-axis, in degrees
	LargeArc bool
	Sweep    bool // clockwise when set
	X, Y     float64
}

// Close ends the current figure by connecting back to its start point.
type Close struct{}

// Path is an ordered sequence of segments.
type Path []Segment

// Adder is the sink a path is transcribed to. The rasterx Filler,
// Stroker and Dasher types satisfy it.
type Adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

type transcriber struct {
	m     Matrix
	d     Adder
	cur   Point // untransformed current point
	start Point
	open  bool
}

// Transcribe replays the path on d, applying m to every coordinate and
// lowering arcs to cubic curves. The caller terminates the path on d
// (Stop(false)) once all geometry has been added.
func (p Path) Transcribe(m Matrix, d Adder) {
	t := transcriber{m: m, d: d}
	for _, seg := range p {
		seg.transcribe(&t)
	}
}

func (op MoveTo) transcribe(t *transcriber) {
	if t.open {
		t.d.Stop(false)
	}
	t.cur = Point(op)
	t.start = t.cur
	t.open = true
	t.d.Start(t.m.tFixed(t.cur))
}

func (op LineTo) transcribe(t *transcriber) {
	t.d.Line(t.m.tFixed(Point(op)))
	t.cur = Point(op)
}

func (op QuadTo) transcribe(t *transcriber) {
	t.d.QuadBezier(t.m.tFixed(op[0]), t.m.tFixed(op[1]))
	t.cur = op[1]
}

func (op CubicTo) transcribe(t *transcriber) {
	t.d.CubeBezier(t.m.tFixed(op[0]), t.m.tFixed(op[1]), t.m.tFixed(op[2]))
	t.cur = op[2]
}

func (op ArcTo) transcribe(t *transcriber) {
	// Control points of a bezier transform affinely, so the arc is
	// lowered in page space and each resulting curve is transformed.
	for _, c := range op.lower(t.cur) {
		c.transcribe(t)
	}
}

func (op Close) transcribe(t *transcriber) {
	t.d.Stop(true)
	t.cur = t.start
	t.open = false
}

// String returns a readable abbreviated-geometry form of the path.
func (p Path) String() string {
	chunks := make([]string, len(p))
	for i, seg := range p {
		switch seg := seg.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%g,%g", seg.X, seg.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%g,%g", seg.X, seg.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%g,%g %g,%g", seg[0].X, seg[0].Y, seg[1].X, seg[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%g,%g %g,%g %g,%g",
				seg[0].X, seg[0].Y, seg[1].X, seg[1].Y, seg[2].X, seg[2].Y)
		case ArcTo:
			large, sweep := 0, 0
			if seg.LargeArc {
				large = 1
			}
			if seg.Sweep {
				sweep = 1
			}
			chunks[i] = fmt.Sprintf("A%g,%g %g %d %d %g,%g",
				seg.RX, seg.RY, seg.Rotation, large, sweep, seg.X, seg.Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}
