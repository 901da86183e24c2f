package resource

import (
	"image/color"
	"testing"

	"github.com/goxps/goxps/geom"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		in   string
		key  string
		ok   bool
	}{
		{"{StaticResource MyBrush}", "MyBrush", true},
		{" {StaticResource  k1} ", "k1", true},
		{"#FF0000", "", false},
		{"{StaticResource unterminated", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		key, ok := ParseReference(tt.in)
		if key != tt.key || ok != tt.ok {
			t.Errorf("ParseReference(%q) = (%q, %v), want (%q, %v)", tt.in, key, ok, tt.key, tt.ok)
		}
	}
}

func TestDictionaryScopeOrder(t *testing.T) {
	docScope := NewDictionary(nil)
	docScope.Add("b", BrushResource{Brush: SolidColor{Color: color.NRGBA{B: 255, A: 255}, Opacity: 1}})
	docScope.Add("only-doc", MatrixResource(geom.Identity))

	pageScope := NewDictionary(docScope)
	pageScope.Add("b", BrushResource{Brush: SolidColor{Color: color.NRGBA{R: 255, A: 255}, Opacity: 1}})

	r, ok := pageScope.Lookup("b")
	if !ok {
		t.Fatal("lookup failed")
	}
	if c := r.(BrushResource).Brush.(SolidColor).Color; c.R != 255 {
		t.Errorf("innermost scope did not win: %+v", c)
	}
	if _, ok := pageScope.Lookup("only-doc"); !ok {
		t.Error("outer scope not searched")
	}
	if _, ok := pageScope.Lookup("missing"); ok {
		t.Error("missing key reported found")
	}
}

func TestResolveBrushFallsBackToDefault(t *testing.T) {
	b := ResolveBrush("{StaticResource nope}", nil)
	if b != DefaultFill {
		t.Errorf("unresolved reference resolved to %#v, want DefaultFill", b)
	}
	b = ResolveBrush("not-a-color", nil)
	if b != DefaultFill {
		t.Errorf("malformed literal resolved to %#v, want DefaultFill", b)
	}
}

func TestResolveMatrixFallsBackToIdentity(t *testing.T) {
	if m := ResolveMatrix("{StaticResource nope}", nil); m != geom.Identity {
		t.Errorf("unresolved reference = %+v, want identity", m)
	}
	if m := ResolveMatrix("1,2,bogus", nil); m != geom.Identity {
		t.Errorf("malformed literal = %+v, want identity", m)
	}
	if m := ResolveMatrix("2,0,0,2,10,20", nil); m != (geom.Matrix{A: 2, B: 0, C: 0, D: 2, E: 10, F: 20}) {
		t.Errorf("literal = %+v", m)
	}
}

func TestResolveMatrixReference(t *testing.T) {
	scope := NewDictionary(nil)
	scope.Add("t", MatrixResource(geom.Matrix{A: 1, B: 0, C: 0, D: 1, E: 5, F: 5}))
	if m := ResolveMatrix("{StaticResource t}", scope); m.E != 5 {
		t.Errorf("reference = %+v", m)
	}
}

func TestParseColorForms(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FF0000", color.NRGBA{255, 0, 0, 255}},
		{"#80FF0000", color.NRGBA{255, 0, 0, 128}},
		{"#F00", color.NRGBA{255, 0, 0, 255}},
		{"#8F00", color.NRGBA{255, 0, 0, 0x88}},
		{"sc#1,0,0", color.NRGBA{255, 0, 0, 255}},
		{"sc#0.5,1,1,1", color.NRGBA{255, 255, 255, 128}},
		{"sc#0,0,0", color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %s", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "red", "#12345", "sc#1", "ContextColor profile.icc 1,0,0,0"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q): no error", bad)
		}
	}
}

func TestResolveGeometry(t *testing.T) {
	scope := NewDictionary(nil)
	scope.Add("g", GeometryResource{Path: geom.Path{geom.MoveTo{X: 1, Y: 1}}, Rule: geom.NonZero})

	p, rule, err := ResolveGeometry("{StaticResource g}", scope)
	if err != nil || len(p) != 1 || rule != geom.NonZero {
		t.Errorf("reference = (%v, %v, %v)", p, rule, err)
	}

	p, _, err = ResolveGeometry("M 0,0 L 1,1", nil)
	if err != nil || len(p) != 2 {
		t.Errorf("literal = (%v, %v)", p, err)
	}

	// malformed literal is an error for the caller to abandon the path
	if _, _, err := ResolveGeometry("M 0,0 C 1,1", nil); err == nil {
		t.Error("malformed literal: no error")
	}

	// missing reference degrades to an empty path, not an error
	p, _, err = ResolveGeometry("{StaticResource nope}", nil)
	if err != nil || len(p) != 0 {
		t.Errorf("missing reference = (%v, %v)", p, err)
	}
}
