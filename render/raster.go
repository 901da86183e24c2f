package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/goxps/goxps/geom"
	"github.com/goxps/goxps/resource"
)

var _ Canvas = (*RasterCanvas)(nil)

// RasterCanvas renders page content into an image.RGBA through
// rasterx. Separate filler and dasher instances avoid shared pen
// state between fill and stroke operations.
type RasterCanvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher

	width, height int
}

// NewRasterCanvas returns a canvas over a fresh transparent image of
// the given pixel size.
func NewRasterCanvas(width, height int) *RasterCanvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &RasterCanvas{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(width, height, scanner),
		dasher:  rasterx.NewDasher(width, height, scanner),
		width:   width,
		height:  height,
	}
}

// Image returns the target image. It accumulates across operations,
// so it is usually read once the whole page has been processed.
func (c *RasterCanvas) Image() *image.RGBA { return c.img }

func (c *RasterCanvas) FillPath(path geom.Path, rule geom.FillRule, m geom.Matrix, brush resource.Brush) {
	if !c.setPaint(brush, m) {
		return
	}
	c.filler.SetWinding(rule == geom.NonZero)
	path.Transcribe(m, c.filler)
	c.filler.Stop(false)
	c.filler.Draw()
	c.filler.Clear()
}

var (
	capFuncs = [...]rasterx.CapFunc{
		FlatCap:     rasterx.ButtCap,
		SquareCap:   rasterx.SquareCap,
		RoundCap:    rasterx.RoundCap,
		TriangleCap: rasterx.CubicCap,
	}
	gapFuncs = [...]rasterx.GapFunc{
		FlatCap:     rasterx.FlatGap,
		SquareCap:   rasterx.FlatGap,
		RoundCap:    rasterx.RoundGap,
		TriangleCap: rasterx.CubicGap,
	}
	joinModes = [...]rasterx.JoinMode{
		MiterJoin: rasterx.Miter,
		BevelJoin: rasterx.Bevel,
		RoundJoin: rasterx.Round,
	}
	spreadModes = [...]rasterx.SpreadMethod{
		resource.PadSpread:     rasterx.PadSpread,
		resource.ReflectSpread: rasterx.ReflectSpread,
		resource.RepeatSpread:  rasterx.RepeatSpread,
	}
)

func (c *RasterCanvas) StrokePath(path geom.Path, m geom.Matrix, s Stroke) {
	if s.Thickness <= 0 || !c.setPaint(s.Brush, m) {
		return
	}
	// The pen is described in page units; rasterx strokes in device
	// space, so widths and dashes pick up the transform's scale.
	scale := math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
	dashes := s.Dashes
	if len(dashes) > 0 && scale != 1 {
		dashes = make([]float64, len(s.Dashes))
		for i, d := range s.Dashes {
			dashes[i] = d * scale
		}
	}
	c.dasher.SetStroke(
		fixed.Int26_6(s.Thickness*scale*64),
		fixed.Int26_6(s.MiterLimit*64),
		capFuncs[s.CapStart], capFuncs[s.CapEnd], gapFuncs[s.CapDash],
		joinModes[s.Join], dashes, s.DashOffset*scale,
	)
	c.dasher.SetWinding(true)
	path.Transcribe(m, c.dasher)
	c.dasher.Stop(false)
	c.dasher.Draw()
	c.dasher.Clear()
}

func (c *RasterCanvas) DrawImage(img image.Image, vp geom.Rect, m geom.Matrix, opacity float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || vp.W <= 0 || vp.H <= 0 || opacity <= 0 {
		return
	}
	t := m.Translate(vp.X, vp.Y).
		Scale(vp.W/float64(b.Dx()), vp.H/float64(b.Dy())).
		Translate(-float64(b.Min.X), -float64(b.Min.Y))
	aff := f64.Aff3{t.A, t.C, t.E, t.B, t.D, t.F}
	var opts *draw.Options
	if opacity < 1 {
		opts = &draw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)}),
		}
	}
	draw.BiLinear.Transform(c.img, aff, img, b, draw.Over, opts)
}

func (c *RasterCanvas) DrawGlyphRun(run GlyphRun, m geom.Matrix, brush resource.Brush) {
	if run.Face == nil || !c.setPaint(brush, m) {
		return
	}
	upem := float64(run.Face.Upem())
	if upem == 0 {
		return
	}
	scale := run.EmSize / upem
	c.filler.SetWinding(true)
	added := false
	for _, g := range run.Glyphs {
		outline, ok := run.Face.GlyphData(g.GID).(font.GlyphOutline)
		if !ok {
			continue
		}
		// Outlines are in font units with y up; the page is y down.
		gm := m.Translate(g.Origin.X, g.Origin.Y).Scale(scale, -scale)
		if addOutline(c.filler, outline, gm) {
			added = true
		}
	}
	if !added {
		return
	}
	c.filler.Draw()
	c.filler.Clear()
}

func addOutline(d geom.Adder, o font.GlyphOutline, m geom.Matrix) bool {
	pt := func(p font.SegmentPoint) fixed.Point26_6 {
		x, y := m.Apply(float64(p.X), float64(p.Y))
		return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	}
	open := false
	for _, seg := range o.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				d.Stop(true)
			}
			d.Start(pt(seg.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			d.Line(pt(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			d.QuadBezier(pt(seg.Args[0]), pt(seg.Args[1]))
		case ot.SegmentOpCubeTo:
			d.CubeBezier(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if open {
		d.Stop(true)
	}
	return len(o.Segments) > 0
}

// setPaint installs the brush on the shared scanner. It reports false
// for paints that cannot draw anything, so callers can skip the
// geometry work entirely.
func (c *RasterCanvas) setPaint(brush resource.Brush, m geom.Matrix) bool {
	switch b := brush.(type) {
	case resource.SolidColor:
		if b.Color.A == 0 || b.Opacity <= 0 {
			return false
		}
		c.scanner.SetColor(rasterx.ApplyOpacity(b.Color, b.Opacity))

	case resource.LinearGradient:
		if len(b.Stops) == 0 || b.Opacity <= 0 {
			return false
		}
		g := c.gradient(
			[5]float64{b.Start.X, b.Start.Y, b.End.X, b.End.Y, 0},
			false, b.Stops, b.Spread, m.Mul(b.Transform))
		c.scanner.SetColor(g.GetColorFunction(b.Opacity))

	case resource.RadialGradient:
		if len(b.Stops) == 0 || b.RadiusX <= 0 || b.Opacity <= 0 {
			return false
		}
		gm := m.Mul(b.Transform)
		if b.RadiusY != b.RadiusX && b.RadiusX > 0 {
			// rasterx draws circular gradients; squash the y axis
			// around the center to get the requested ellipse
			gm = gm.Translate(b.Center.X, b.Center.Y).
				Scale(1, b.RadiusY/b.RadiusX).
				Translate(-b.Center.X, -b.Center.Y)
		}
		g := c.gradient(
			[5]float64{b.Center.X, b.Center.Y, b.Origin.X, b.Origin.Y, b.RadiusX},
			true, b.Stops, b.Spread, gm)
		c.scanner.SetColor(g.GetColorFunction(b.Opacity))

	default:
		return false
	}
	return true
}

func (c *RasterCanvas) gradient(points [5]float64, radial bool, stops []resource.GradientStop, spread resource.SpreadMethod, m geom.Matrix) rasterx.Gradient {
	gstops := make([]rasterx.GradStop, len(stops))
	for i, s := range stops {
		opaque := s.Color
		opaque.A = 0xFF
		gstops[i] = rasterx.GradStop{
			StopColor: opaque,
			Offset:    s.Offset,
			Opacity:   float64(s.Color.A) / 255,
		}
	}
	g := rasterx.Gradient{
		Points:   points,
		Stops:    gstops,
		Matrix:   rasterx.Matrix2D{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F},
		Spread:   spreadModes[spread],
		Units:    rasterx.UserSpaceOnUse,
		IsRadial: radial,
	}
	g.Bounds.W, g.Bounds.H = float64(c.width), float64(c.height)
	return g
}
