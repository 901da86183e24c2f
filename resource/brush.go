package resource

import (
	"image/color"

	"github.com/goxps/goxps/geom"
)

// Brush is a sealed union of the paints a fill or stroke can use.
type Brush interface {
	isBrush()
}

// SolidColor paints a single color.
type SolidColor struct {
	Color   color.NRGBA
	Opacity float64
}

// GradientStop is one color stop along a gradient axis.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// SpreadMethod describes how a gradient continues past its axis.
type SpreadMethod uint8

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// LinearGradient paints a gradient along the Start-End axis, in page
// coordinates.
type LinearGradient struct {
	Start, End geom.Point
	Stops      []GradientStop
	Spread     SpreadMethod
	Opacity    float64
	Transform  geom.Matrix
}

// RadialGradient paints a gradient radiating from Origin within the
// ellipse centered at Center.
type RadialGradient struct {
	Center, Origin   geom.Point
	RadiusX, RadiusY float64
	Stops            []GradientStop
	Spread           SpreadMethod
	Opacity          float64
	Transform        geom.Matrix
}

// ImageBrush paints the raster content of another package part into a
// viewport rectangle. The part is opened and decoded at draw time.
type ImageBrush struct {
	ImageSource string
	Viewport    geom.Rect
	Opacity     float64
	Transform   geom.Matrix
}

func (SolidColor) isBrush()     {}
func (LinearGradient) isBrush() {}
func (RadialGradient) isBrush() {}
func (ImageBrush) isBrush()     {}

// DefaultFill is the defined substitute for an unresolvable fill: a
// fully transparent solid, so the element is skipped but the render
// continues.
var DefaultFill Brush = SolidColor{Opacity: 1}

// Scale multiplies a brush's opacity, preserving its kind. Used when an
// element carries an Opacity attribute of its own.
func Scale(b Brush, opacity float64) Brush {
	if opacity == 1 {
		return b
	}
	switch b := b.(type) {
	case SolidColor:
		b.Opacity *= opacity
		return b
	case LinearGradient:
		b.Opacity *= opacity
		return b
	case RadialGradient:
		b.Opacity *= opacity
		return b
	case ImageBrush:
		b.Opacity *= opacity
		return b
	}
	return b
}
