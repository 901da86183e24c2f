package render

import (
	"strings"

	"github.com/goxps/goxps/geom"
	"github.com/goxps/goxps/resource"
)

// Explicit geometry markup: a PathGeometry element holding PathFigure
// children, each a run of Poly*Segment and ArcSegment elements. It
// compiles to the same geom.Path as the abbreviated Data syntax.

func buildPolyLine(n *node) (segmentsPayload, error) {
	pts, err := parsePoints(n.attrs["Points"])
	if err != nil {
		return nil, err
	}
	segs := make(segmentsPayload, len(pts))
	for i, p := range pts {
		segs[i] = geom.LineTo(p)
	}
	return segs, nil
}

func buildPolyBezier(n *node) (segmentsPayload, error) {
	pts, err := parsePoints(n.attrs["Points"])
	if err != nil {
		return nil, err
	}
	if len(pts)%3 != 0 {
		return nil, resource.MalformedAttributeError{Attr: "Points", Value: n.attrs["Points"]}
	}
	var segs segmentsPayload
	for i := 0; i+2 < len(pts); i += 3 {
		segs = append(segs, geom.CubicTo{pts[i], pts[i+1], pts[i+2]})
	}
	return segs, nil
}

func buildPolyQuadratic(n *node) (segmentsPayload, error) {
	pts, err := parsePoints(n.attrs["Points"])
	if err != nil {
		return nil, err
	}
	if len(pts)%2 != 0 {
		return nil, resource.MalformedAttributeError{Attr: "Points", Value: n.attrs["Points"]}
	}
	var segs segmentsPayload
	for i := 0; i+1 < len(pts); i += 2 {
		segs = append(segs, geom.QuadTo{pts[i], pts[i+1]})
	}
	return segs, nil
}

func buildArcSegment(n *node) (segmentsPayload, error) {
	size, err := parsePoint(n.attrs["Size"])
	if err != nil {
		return nil, err
	}
	end, err := parsePoint(n.attrs["Point"])
	if err != nil {
		return nil, err
	}
	rot := attrFloat(n, "RotationAngle", 0)
	return segmentsPayload{geom.ArcTo{
		RX:       size.X,
		RY:       size.Y,
		Rotation: rot,
		LargeArc: attrBool(n, "IsLargeArc"),
		Sweep:    strings.EqualFold(n.attrs["SweepDirection"], "Clockwise"),
		X:        end.X,
		Y:        end.Y,
	}}, nil
}

// buildFigure flattens a PathFigure into segments: a MoveTo to the
// start point, the child segments in document order, and a Close when
// the figure is marked closed.
func buildFigure(n *node) (segmentsPayload, error) {
	start, err := parsePoint(n.attrs["StartPoint"])
	if err != nil {
		return nil, err
	}
	segs := segmentsPayload{geom.MoveTo(start)}
	for _, c := range n.children {
		if s, ok := c.payload.(segmentsPayload); ok {
			segs = append(segs, s...)
		}
	}
	if attrBool(n, "IsClosed") {
		segs = append(segs, geom.Close{})
	}
	return segs, nil
}

// buildGeometry assembles a PathGeometry from its Figures attribute
// and/or PathFigure children.
func buildGeometry(n *node) (geometryPayload, error) {
	var g geometryPayload
	if data, ok := n.attr("Figures"); ok {
		path, rule, err := geom.Parse(data)
		if err != nil {
			return g, err
		}
		g.path, g.rule = path, rule
	}
	for _, c := range n.children {
		if s, ok := c.payload.(segmentsPayload); ok {
			g.path = append(g.path, []geom.Segment(s)...)
		}
	}
	if v, ok := n.attr("FillRule"); ok {
		if strings.EqualFold(v, "NonZero") {
			g.rule = geom.NonZero
		} else {
			g.rule = geom.EvenOdd
		}
	}
	return g, nil
}

func parsePoints(s string) ([]geom.Point, error) {
	vals, err := geom.ParseFloats(s)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 || len(vals)%2 != 0 {
		return nil, resource.MalformedAttributeError{Attr: "Points", Value: s}
	}
	pts := make([]geom.Point, len(vals)/2)
	for i := range pts {
		pts[i] = geom.Point{X: vals[2*i], Y: vals[2*i+1]}
	}
	return pts, nil
}

func parsePoint(s string) (geom.Point, error) {
	vals, err := geom.ParseFloats(s)
	if err != nil {
		return geom.Point{}, err
	}
	if len(vals) != 2 {
		return geom.Point{}, resource.MalformedAttributeError{Attr: "Point", Value: s}
	}
	return geom.Point{X: vals[0], Y: vals[1]}, nil
}
