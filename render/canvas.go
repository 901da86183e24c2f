// Package render walks FixedPage markup and replays its drawing
// operations on a Canvas. The reference canvas rasterizes to an
// image.RGBA through rasterx; alternative canvases (vector export,
// measurement) only need to satisfy the interface.
package render

import (
	"image"
	"io"

	"github.com/go-text/typesetting/font"

	"github.com/goxps/goxps/geom"
	"github.com/goxps/goxps/resource"
)

// Canvas receives fully resolved drawing operations. Coordinates are
// page units; the accompanying matrix carries the composed render
// transform, including any device scaling the caller set up.
type Canvas interface {
	// FillPath fills the path's interior under the given fill rule.
	FillPath(path geom.Path, rule geom.FillRule, m geom.Matrix, brush resource.Brush)
	// StrokePath outlines the path.
	StrokePath(path geom.Path, m geom.Matrix, stroke Stroke)
	// DrawImage maps the decoded image onto the viewport rectangle.
	DrawImage(img image.Image, viewport geom.Rect, m geom.Matrix, opacity float64)
	// DrawGlyphRun fills the outlines of a positioned glyph run.
	DrawGlyphRun(run GlyphRun, m geom.Matrix, brush resource.Brush)
}

// LineCap selects the shape drawn at the open ends of a stroke and at
// the ends of each dash.
type LineCap uint8

const (
	FlatCap LineCap = iota
	SquareCap
	RoundCap
	TriangleCap
)

// LineJoin selects the shape drawn where two stroke segments meet.
type LineJoin uint8

const (
	MiterJoin LineJoin = iota
	BevelJoin
	RoundJoin
)

// Stroke carries the pen state of a Path element. Dash lengths are in
// page units: the parser has already multiplied out the thickness
// multiples the markup uses.
type Stroke struct {
	Brush      resource.Brush
	Thickness  float64
	MiterLimit float64
	CapStart   LineCap
	CapEnd     LineCap
	CapDash    LineCap
	Join       LineJoin
	Dashes     []float64
	DashOffset float64
}

// PlacedGlyph is one glyph with its resolved baseline origin, in page
// units.
type PlacedGlyph struct {
	GID    font.GID
	Origin geom.Point
}

// GlyphRun is a positioned sequence of glyphs from a single face at a
// single size.
type GlyphRun struct {
	Face   *font.Face
	EmSize float64
	Glyphs []PlacedGlyph
}

// PartReader opens sibling package parts referenced from markup, such
// as image sources. Names are package-absolute ("/Resources/img.png").
type PartReader interface {
	Open(name string) (io.ReadCloser, error)
}

// FontResolver loads the font face behind a FontUri, deobfuscating and
// caching as needed.
type FontResolver interface {
	Face(uri string) (*font.Face, error)
}

// ErrorMode controls how recoverable markup defects are reported.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips defective elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips defective elements and logs each one.
	WarnErrorMode
	// StrictErrorMode aborts the page on the first defect.
	StrictErrorMode
)
