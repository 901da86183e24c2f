package geom

import (
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Matrix is a 2D affine transform. It maps the point (x, y) to
// (A*x + C*y + E, B*x + D*y + F). The XPS Matrix attribute lists the
// components in the order m11,m12,m21,m22,dx,dy which is A,B,C,D,E,F.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Mul composes two transforms: the result applies n first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate returns m with a translation applied before it.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{1, 0, 0, 1, x, y})
}

// Scale returns m with a scale applied before it.
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{x, 0, 0, y, 0, 0})
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

func (m Matrix) apply(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{x, y}
}

// tFixed transforms a point into the rasterizer's fixed-point space.
func (m Matrix) tFixed(p Point) fixed.Point26_6 {
	x, y := m.Apply(p.X, p.Y)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// ParseMatrix parses the six comma or space separated components of an
// XPS Matrix attribute.
func ParseMatrix(s string) (Matrix, error) {
	vals, err := ParseFloats(s)
	if err != nil {
		return Identity, err
	}
	if len(vals) != 6 {
		return Identity, errValueCount{"Matrix", 6, len(vals)}
	}
	return Matrix{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}, nil
}

// ParseFloats reads a comma or space separated list of decimal values,
// as used by Matrix, Viewport and Points attributes.
func ParseFloats(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

type errValueCount struct {
	attr      string
	want, got int
}

func (e errValueCount) Error() string {
	return e.attr + " attribute: expected " + strconv.Itoa(e.want) +
		" values, got " + strconv.Itoa(e.got)
}
