package render

import (
	"reflect"
	"testing"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/goxps/goxps/geom"
)

// outlineRecorder captures the adder calls made while transcribing a
// glyph outline.
type outlineRecorder struct {
	ops    []string
	points []fixed.Point26_6
}

func (r *outlineRecorder) Start(a fixed.Point26_6) {
	r.ops = append(r.ops, "start")
	r.points = append(r.points, a)
}
func (r *outlineRecorder) Line(b fixed.Point26_6) {
	r.ops = append(r.ops, "line")
	r.points = append(r.points, b)
}
func (r *outlineRecorder) QuadBezier(b, c fixed.Point26_6)    { r.ops = append(r.ops, "quad") }
func (r *outlineRecorder) CubeBezier(b, c, d fixed.Point26_6) { r.ops = append(r.ops, "cube") }
func (r *outlineRecorder) Stop(closeLoop bool)                { r.ops = append(r.ops, "stop") }

func seg(op ot.SegmentOp, pts ...font.SegmentPoint) font.Segment {
	s := font.Segment{Op: op}
	copy(s.Args[:], pts)
	return s
}

func TestGlyphOutlineTranscription(t *testing.T) {
	outline := font.GlyphOutline{Segments: []font.Segment{
		seg(ot.SegmentOpMoveTo, font.SegmentPoint{X: 0, Y: 0}),
		seg(ot.SegmentOpLineTo, font.SegmentPoint{X: 10, Y: 20}),
		seg(ot.SegmentOpQuadTo, font.SegmentPoint{X: 10, Y: 30}, font.SegmentPoint{X: 0, Y: 30}),
		seg(ot.SegmentOpCubeTo, font.SegmentPoint{X: -5, Y: 30}, font.SegmentPoint{X: -5, Y: 0}, font.SegmentPoint{X: 0, Y: 0}),
	}}

	rec := &outlineRecorder{}
	if !addOutline(rec, outline, geom.Identity.Scale(1, -1)) {
		t.Fatal("outline reported empty")
	}
	want := []string{"start", "line", "quad", "cube", "stop"}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Fatalf("ops = %v, want %v", rec.ops, want)
	}
	// font units are y-up; the matrix flips them into page space
	if got := rec.points[1]; got.X != 10*64 || got.Y != -20*64 {
		t.Errorf("line point = %v, want (640, -1280)", got)
	}
}

func TestGlyphOutlineClosesEachContour(t *testing.T) {
	outline := font.GlyphOutline{Segments: []font.Segment{
		seg(ot.SegmentOpMoveTo, font.SegmentPoint{X: 0, Y: 0}),
		seg(ot.SegmentOpLineTo, font.SegmentPoint{X: 1, Y: 0}),
		seg(ot.SegmentOpMoveTo, font.SegmentPoint{X: 5, Y: 5}),
		seg(ot.SegmentOpLineTo, font.SegmentPoint{X: 6, Y: 5}),
	}}

	rec := &outlineRecorder{}
	addOutline(rec, outline, geom.Identity)
	want := []string{"start", "line", "stop", "start", "line", "stop"}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Errorf("ops = %v, want %v", rec.ops, want)
	}

	if addOutline(rec, font.GlyphOutline{}, geom.Identity) {
		t.Error("empty outline reported as drawn")
	}
}
