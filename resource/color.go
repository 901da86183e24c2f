package resource

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/goxps/goxps/geom"
)

// ParseColor parses an XPS Color attribute. Supported forms are the
// hex notations #RGB, #ARGB, #RRGGBB and #AARRGGBB, and the scRGB
// notation sc#[a,]r,g,b with components in [0,1]. ContextColor profiles
// are not supported and fail like any other malformed value.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "sc#"):
		return parseSCColor(s[len("sc#"):])
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	}
	return color.NRGBA{}, MalformedAttributeError{Attr: "Color", Value: s}
}

func parseHexColor(hex string) (color.NRGBA, error) {
	// Short forms duplicate each nibble: #ARGB means #AARRGGBB.
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 4:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	var a, r, g, b uint8 = 0xFF, 0, 0, 0
	var parts []*uint8
	switch len(hex) {
	case 6:
		parts = []*uint8{&r, &g, &b}
	case 8:
		parts = []*uint8{&a, &r, &g, &b}
	default:
		return color.NRGBA{}, MalformedAttributeError{Attr: "Color", Value: "#" + hex}
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, MalformedAttributeError{Attr: "Color", Value: "#" + hex}
		}
		*p = uint8(v)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func parseSCColor(csv string) (color.NRGBA, error) {
	vals, err := geom.ParseFloats(csv)
	if err != nil || (len(vals) != 3 && len(vals) != 4) {
		return color.NRGBA{}, MalformedAttributeError{Attr: "Color", Value: "sc#" + csv}
	}
	a := 1.0
	if len(vals) == 4 {
		a, vals = vals[0], vals[1:]
	}
	return color.NRGBA{
		R: scToByte(vals[0]),
		G: scToByte(vals[1]),
		B: scToByte(vals[2]),
		A: uint8(clamp01(a)*255 + 0.5),
	}, nil
}

// scToByte converts a linear scRGB component to 8-bit sRGB.
func scToByte(v float64) uint8 {
	v = clamp01(v)
	if v <= 0.0031308 {
		v *= 12.92
	} else {
		v = 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
