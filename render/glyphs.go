package render

import (
	"strconv"
	"strings"

	"github.com/go-text/typesetting/font"

	"github.com/goxps/goxps/geom"
	"github.com/goxps/goxps/resource"
)

// indexEntry is one parsed entry of a Glyphs Indices attribute. Every
// field is optional in the markup; gid is -1 when the glyph index must
// come from the UnicodeString instead.
type indexEntry struct {
	gid        int
	advance    float64
	hasAdvance bool
	uOffset    float64
	vOffset    float64
}

// parseIndices reads the semicolon separated Indices grammar:
//
//	[(m[:n])][GlyphIndex][,[Advance][,[uOffset][,[vOffset]]]]
//
// The cluster prefix (m:n) is accepted and discarded; cluster shaping
// beyond one-to-one mapping is not resolved here.
func parseIndices(s string) ([]indexEntry, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	specs := strings.Split(s, ";")
	entries := make([]indexEntry, len(specs))
	for i, spec := range specs {
		e := indexEntry{gid: -1}
		spec = strings.TrimSpace(spec)
		if strings.HasPrefix(spec, "(") {
			end := strings.IndexByte(spec, ')')
			if end < 0 {
				return nil, resource.MalformedAttributeError{Attr: "Indices", Value: s}
			}
			spec = spec[end+1:]
		}
		fields := strings.Split(spec, ",")
		for j, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, resource.MalformedAttributeError{Attr: "Indices", Value: s}
			}
			switch j {
			case 0:
				e.gid = int(v)
			case 1:
				e.advance, e.hasAdvance = v, true
			case 2:
				e.uOffset = v
			case 3:
				e.vOffset = v
			}
		}
		entries[i] = e
	}
	return entries, nil
}

// layoutGlyphs positions a run on the baseline through (ox, oy).
// Indices entries override the defaults drawn from the face: a missing
// glyph index falls back to the cmap lookup of the corresponding
// UnicodeString rune, a missing advance to the face's horizontal
// advance. Explicit advances and offsets are in hundredths of an em.
// The y axis is flipped between the two worlds: offsets move up in
// font terms, down in page terms.
func layoutGlyphs(face *font.Face, emSize, ox, oy float64, unicode, indices string) (GlyphRun, error) {
	run := GlyphRun{Face: face, EmSize: emSize}
	entries, err := parseIndices(indices)
	if err != nil {
		return run, err
	}
	runes := []rune(unicode)
	count := len(entries)
	if len(runes) > count {
		count = len(runes)
	}

	scale := emSize / float64(face.Upem())
	x := ox
	for i := 0; i < count; i++ {
		e := indexEntry{gid: -1}
		if i < len(entries) {
			e = entries[i]
		}
		gid := font.GID(e.gid)
		if e.gid < 0 {
			if i >= len(runes) {
				break
			}
			g, ok := face.NominalGlyph(runes[i])
			if !ok {
				continue
			}
			gid = g
		}
		adv := float64(face.HorizontalAdvance(gid)) * scale
		if e.hasAdvance {
			adv = e.advance * emSize / 100
		}
		run.Glyphs = append(run.Glyphs, PlacedGlyph{
			GID: gid,
			Origin: geom.Point{
				X: x + e.uOffset*emSize/100,
				Y: oy - e.vOffset*emSize/100,
			},
		})
		x += adv
	}
	return run, nil
}
