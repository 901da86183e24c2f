package geom

import (
	"reflect"
	"testing"

	"golang.org/x/image/math/fixed"
)

func mustParse(t *testing.T, data string) Path {
	t.Helper()
	p, _, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(%q): %s", data, err)
	}
	return p
}

func TestImplicitCommandRepetition(t *testing.T) {
	p := mustParse(t, "M 0,0 10,10 20,20")
	want := Path{MoveTo{0, 0}, LineTo{10, 10}, LineTo{20, 20}}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("got %s, want %s", p, want)
	}
}

func TestRelativeAndAbsoluteLines(t *testing.T) {
	p := mustParse(t, "M 5,5 l 1,1")
	if got := p[1].(LineTo); got != (LineTo{6, 6}) {
		t.Errorf("relative line to %v, want (6,6)", got)
	}
	p = mustParse(t, "M 5,5 L 1,1")
	if got := p[1].(LineTo); got != (LineTo{1, 1}) {
		t.Errorf("absolute line to %v, want (1,1)", got)
	}
}

func TestHorizontalVerticalLines(t *testing.T) {
	p := mustParse(t, "M 1,2 H 10 v 3")
	want := Path{MoveTo{1, 2}, LineTo{10, 2}, LineTo{10, 5}}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("got %s, want %s", p, want)
	}
}

func TestFillRulePrefix(t *testing.T) {
	_, rule, err := Parse("F1 M 0,0 L 1,1")
	if err != nil || rule != NonZero {
		t.Errorf("F1 rule = %v (err %v), want NonZero", rule, err)
	}
	_, rule, err = Parse("F0 M 0,0 L 1,1")
	if err != nil || rule != EvenOdd {
		t.Errorf("F0 rule = %v (err %v), want EvenOdd", rule, err)
	}
	_, rule, err = Parse("M 0,0 L 1,1")
	if err != nil || rule != EvenOdd {
		t.Errorf("default rule = %v (err %v), want EvenOdd", rule, err)
	}
}

func TestCloseResetsCurrentPoint(t *testing.T) {
	p := mustParse(t, "M 1,1 L 5,1 5,5 Z l 2,0")
	last := p[len(p)-1].(LineTo)
	if last != (LineTo{3, 1}) {
		t.Errorf("line after close at %v, want (3,1)", last)
	}
}

func TestCubicAndSmoothCubic(t *testing.T) {
	p := mustParse(t, "M 0,0 C 1,2 3,2 4,0 S 7,-2 8,0")
	want := Path{
		MoveTo{0, 0},
		CubicTo{{1, 2}, {3, 2}, {4, 0}},
		// first control is the reflection of (3,2) about (4,0)
		CubicTo{{5, -2}, {7, -2}, {8, 0}},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("got %s, want %s", p, want)
	}
}

func TestQuadraticAndSmoothQuadratic(t *testing.T) {
	p := mustParse(t, "M 0,0 Q 2,4 4,0 T 8,0")
	want := Path{
		MoveTo{0, 0},
		QuadTo{{2, 4}, {4, 0}},
		QuadTo{{6, -4}, {8, 0}},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("got %s, want %s", p, want)
	}
}

func TestArcCommand(t *testing.T) {
	p := mustParse(t, "M 0,0 A 10,5 30 1 0 20,0")
	arc, ok := p[1].(ArcTo)
	if !ok {
		t.Fatalf("segment %T, want ArcTo", p[1])
	}
	want := ArcTo{RX: 10, RY: 5, Rotation: 30, LargeArc: true, Sweep: false, X: 20, Y: 0}
	if arc != want {
		t.Errorf("arc = %+v, want %+v", arc, want)
	}
	// relative endpoint
	p = mustParse(t, "M 5,5 a 1,1 0 0 1 2,2")
	if arc := p[1].(ArcTo); arc.X != 7 || arc.Y != 7 {
		t.Errorf("relative arc endpoint (%g,%g), want (7,7)", arc.X, arc.Y)
	}
}

func TestWrongArityDiscardsPath(t *testing.T) {
	for _, data := range []string{
		"M 0,0 C 1,1 2,2", // cubic with 4 trailing numbers
		"M 0,0 L 1",       // dangling coordinate
		"M 0,0 Z 3",       // close takes no arguments
		"10,10 20,20",     // numbers without a command
		"M 0,0 A 1,1 0 0 1", // arc with 5 of 7 arguments
	} {
		p, _, err := Parse(data)
		if _, ok := err.(GrammarError); !ok {
			t.Errorf("Parse(%q): error %v, want GrammarError", data, err)
		}
		if p != nil {
			t.Errorf("Parse(%q): returned %d segments, want discarded path", data, len(p))
		}
	}
}

// recordingAdder captures transcription calls for inspection.
type recordingAdder struct {
	ops []string
}

func (r *recordingAdder) Start(a fixed.Point26_6)            { r.ops = append(r.ops, "start") }
func (r *recordingAdder) Line(b fixed.Point26_6)             { r.ops = append(r.ops, "line") }
func (r *recordingAdder) QuadBezier(b, c fixed.Point26_6)    { r.ops = append(r.ops, "quad") }
func (r *recordingAdder) CubeBezier(b, c, d fixed.Point26_6) { r.ops = append(r.ops, "cube") }
func (r *recordingAdder) Stop(closeLoop bool)                { r.ops = append(r.ops, "stop") }

func TestTranscribeLowersArcsToCubics(t *testing.T) {
	p := mustParse(t, "M 0,0 A 10,10 0 0 1 20,0 Z")
	rec := &recordingAdder{}
	p.Transcribe(Identity, rec)
	cubes := 0
	for _, op := range rec.ops {
		if op == "cube" {
			cubes++
		}
		if op == "quad" {
			t.Fatal("arc lowered to quadratic curves")
		}
	}
	if cubes == 0 {
		t.Error("arc produced no cubic curves")
	}
	if rec.ops[0] != "start" || rec.ops[len(rec.ops)-1] != "stop" {
		t.Errorf("ops = %v, want start ... stop", rec.ops)
	}
}
