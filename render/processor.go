package render

import (
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/goxps/goxps/geom"
	"github.com/goxps/goxps/resource"
)

// Config wires a page render. Canvas is required; Parts and Fonts may
// be nil when the page is known to reference no images or glyphs.
type Config struct {
	Canvas Canvas
	Parts  PartReader
	Fonts  FontResolver

	// Transform maps page units to the canvas, typically a plain
	// scale. The zero value is treated as the identity.
	Transform geom.Matrix

	// Resources is the outermost lookup scope, usually the document
	// level dictionary. May be nil.
	Resources *resource.Dictionary

	Errors ErrorMode
}

// ProcessPage streams one FixedPage part and replays its content on
// cfg.Canvas. Recoverable markup defects are handled per cfg.Errors;
// XML level failures always abort.
func ProcessPage(r io.Reader, cfg Config) error {
	if cfg.Canvas == nil {
		return fmt.Errorf("render: no canvas configured")
	}
	if cfg.Transform == (geom.Matrix{}) {
		cfg.Transform = geom.Identity
	}
	p := processor{cfg: cfg}
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch se := t.(type) {
		case xml.StartElement:
			p.pushElement(se)
		case xml.EndElement:
			if err := p.popElement(); err != nil {
				return err
			}
		}
	}
	return nil
}

// frame is the inherited state of one open element: the composed
// transform, the visible resource scope and the accumulated opacity.
type frame struct {
	transform geom.Matrix
	scope     *resource.Dictionary
	opacity   float64
}

// processor is a push-down automaton over the element stream. The
// node stack mirrors the open elements; the frame stacks are pushed
// and popped with it. Because property elements precede their drawing
// siblings, a property handler that rewrites the top frame after its
// own frames are popped is rewriting the parent's state in time for
// everything that follows.
type processor struct {
	cfg        Config
	nodes      []*node
	transforms []geom.Matrix
	scopes     []*resource.Dictionary
	opacities  []float64
}

func (p *processor) pushElement(se xml.StartElement) {
	n := &node{
		kind:  kindOf(se.Name.Local),
		name:  se.Name.Local,
		attrs: make(map[string]string, len(se.Attr)),
	}
	for _, a := range se.Attr {
		n.attrs[a.Name.Local] = a.Value
	}

	f := frame{transform: p.cfg.Transform, scope: p.cfg.Resources, opacity: 1}
	if top := len(p.nodes) - 1; top >= 0 {
		f = frame{p.transforms[top], p.scopes[top], p.opacities[top]}
	}
	if v, ok := n.attr("RenderTransform"); ok {
		f.transform = f.transform.Mul(resource.ResolveMatrix(v, f.scope))
	}
	f.opacity *= attrFloat(n, "Opacity", 1)

	p.nodes = append(p.nodes, n)
	p.transforms = append(p.transforms, f.transform)
	p.scopes = append(p.scopes, f.scope)
	p.opacities = append(p.opacities, f.opacity)
}

func (p *processor) popElement() error {
	top := len(p.nodes) - 1
	n := p.nodes[top]
	f := frame{p.transforms[top], p.scopes[top], p.opacities[top]}
	p.nodes = p.nodes[:top]
	p.transforms = p.transforms[:top]
	p.scopes = p.scopes[:top]
	p.opacities = p.opacities[:top]
	if top > 0 {
		parent := p.nodes[top-1]
		parent.children = append(parent.children, n)
	}
	return p.finish(n, f)
}

// recover applies the configured error mode to a recoverable defect.
func (p *processor) recover(err error) error {
	if err == nil {
		return nil
	}
	switch p.cfg.Errors {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		log.Printf("xps: %s", err)
	}
	return nil
}

func (p *processor) finish(n *node, f frame) error {
	switch n.kind {
	case kindPath:
		return p.recover(p.finishPath(n, f))

	case kindGlyphs:
		return p.recover(p.finishGlyphs(n, f))

	case kindMatrixTransform:
		n.payload = matrixPayload(resource.ResolveMatrix(n.attrs["Matrix"], f.scope))

	case kindSolidColorBrush:
		c, err := resource.ParseColor(n.attrs["Color"])
		if err != nil {
			return p.recover(err)
		}
		n.payload = brushPayload{resource.SolidColor{Color: c, Opacity: attrFloat(n, "Opacity", 1)}}

	case kindLinearGradientBrush:
		start, err := parsePoint(n.attrs["StartPoint"])
		if err != nil {
			return p.recover(err)
		}
		end, err := parsePoint(n.attrs["EndPoint"])
		if err != nil {
			return p.recover(err)
		}
		n.payload = brushPayload{resource.LinearGradient{
			Start:     start,
			End:       end,
			Stops:     sortStops(n.collectStops(nil)),
			Spread:    parseSpread(n.attrs["SpreadMethod"]),
			Opacity:   attrFloat(n, "Opacity", 1),
			Transform: brushTransform(n, f.scope),
		}}

	case kindRadialGradientBrush:
		center, err := parsePoint(n.attrs["Center"])
		if err != nil {
			return p.recover(err)
		}
		origin, err := parsePoint(n.attrs["GradientOrigin"])
		if err != nil {
			origin = center
		}
		n.payload = brushPayload{resource.RadialGradient{
			Center:    center,
			Origin:    origin,
			RadiusX:   attrFloat(n, "RadiusX", 0),
			RadiusY:   attrFloat(n, "RadiusY", 0),
			Stops:     sortStops(n.collectStops(nil)),
			Spread:    parseSpread(n.attrs["SpreadMethod"]),
			Opacity:   attrFloat(n, "Opacity", 1),
			Transform: brushTransform(n, f.scope),
		}}

	case kindImageBrush:
		vp, err := geom.ParseRect(n.attrs["Viewport"])
		if err != nil {
			return p.recover(err)
		}
		n.payload = brushPayload{resource.ImageBrush{
			ImageSource: n.attrs["ImageSource"],
			Viewport:    vp,
			Opacity:     attrFloat(n, "Opacity", 1),
			Transform:   brushTransform(n, f.scope),
		}}

	case kindVisualBrush:
		n.payload = brushPayload{resource.DefaultFill}
		return p.recover(fmt.Errorf("VisualBrush is not supported"))

	case kindGradientStop:
		c, err := resource.ParseColor(n.attrs["Color"])
		if err != nil {
			return p.recover(err)
		}
		n.payload = stopPayload{Offset: attrFloat(n, "Offset", 0), Color: c}

	case kindPathGeometry:
		g, err := buildGeometry(n)
		if err != nil {
			return p.recover(err)
		}
		n.payload = g

	case kindPathFigure:
		s, err := buildFigure(n)
		if err != nil {
			return p.recover(err)
		}
		n.payload = s

	case kindPolyLineSegment:
		s, err := buildPolyLine(n)
		if err != nil {
			return p.recover(err)
		}
		n.payload = s

	case kindPolyBezierSegment:
		s, err := buildPolyBezier(n)
		if err != nil {
			return p.recover(err)
		}
		n.payload = s

	case kindPolyQuadraticBezierSegment:
		s, err := buildPolyQuadratic(n)
		if err != nil {
			return p.recover(err)
		}
		n.payload = s

	case kindArcSegment:
		s, err := buildArcSegment(n)
		if err != nil {
			return p.recover(err)
		}
		n.payload = s

	case kindResourceDictionary:
		n.payload = dictionaryPayload{p.buildDictionary(n, f)}

	case kindProperty:
		p.finishProperty(n)
	}
	return nil
}

// finishProperty hoists a property element's value onto its parent.
// RenderTransform and Resources rewrite the parent's frame directly:
// the parent is back on top of the stacks by now, and its drawing
// children are still to come.
func (p *processor) finishProperty(n *node) {
	suffix := n.name[strings.LastIndexByte(n.name, '.')+1:]
	top := len(p.nodes) - 1
	if top < 0 {
		return
	}
	switch suffix {
	case "RenderTransform":
		if m, ok := n.firstPayload().(matrixPayload); ok {
			p.transforms[top] = p.transforms[top].Mul(geom.Matrix(m))
		}
	case "Resources":
		if d, ok := n.firstPayload().(dictionaryPayload); ok {
			p.scopes[top] = d.dict
		}
	default:
		if pl := n.firstPayload(); pl != nil {
			p.nodes[top].setProp(suffix, pl)
		}
	}
}

// buildDictionary converts the keyed children of a ResourceDictionary
// into a scope chained to the one visible where the dictionary
// appeared.
func (p *processor) buildDictionary(n *node, f frame) *resource.Dictionary {
	dict := resource.NewDictionary(f.scope)
	for _, c := range n.children {
		key, ok := c.attr("Key")
		if !ok || c.payload == nil {
			continue
		}
		switch pl := c.payload.(type) {
		case matrixPayload:
			dict.Add(key, resource.MatrixResource(pl))
		case brushPayload:
			dict.Add(key, resource.BrushResource{Brush: pl.brush})
		case geometryPayload:
			dict.Add(key, resource.GeometryResource{Path: pl.path, Rule: pl.rule})
		}
	}
	return dict
}

func (p *processor) finishPath(n *node, f frame) error {
	path, rule, err := p.pathGeometry(n, f.scope)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return nil
	}
	if fill, ok := elementBrush(n, f.scope, "Fill"); ok {
		if ib, isImage := fill.(resource.ImageBrush); isImage {
			if err := p.drawImageBrush(ib, f); err != nil {
				return err
			}
		} else {
			p.cfg.Canvas.FillPath(path, rule, f.transform, resource.Scale(fill, f.opacity))
		}
	}
	if sb, ok := elementBrush(n, f.scope, "Stroke"); ok {
		p.cfg.Canvas.StrokePath(path, f.transform, strokeState(n, sb, f.opacity))
	}
	return nil
}

func (p *processor) pathGeometry(n *node, scope *resource.Dictionary) (geom.Path, geom.FillRule, error) {
	if v, ok := n.attr("Data"); ok {
		return resource.ResolveGeometry(v, scope)
	}
	if pl, ok := n.prop("Data"); ok {
		if g, ok := pl.(geometryPayload); ok {
			return g.path, g.rule, nil
		}
	}
	return nil, geom.EvenOdd, nil
}

// elementBrush resolves a Fill or Stroke, from the attribute form or
// the hoisted property element.
func elementBrush(n *node, scope *resource.Dictionary, name string) (resource.Brush, bool) {
	if v, ok := n.attr(name); ok {
		return resource.ResolveBrush(v, scope), true
	}
	if pl, ok := n.prop(name); ok {
		if b, ok := pl.(brushPayload); ok {
			return b.brush, true
		}
	}
	return nil, false
}

func brushTransform(n *node, scope *resource.Dictionary) geom.Matrix {
	if v, ok := n.attr("Transform"); ok {
		return resource.ResolveMatrix(v, scope)
	}
	if pl, ok := n.prop("Transform"); ok {
		if m, ok := pl.(matrixPayload); ok {
			return geom.Matrix(m)
		}
	}
	return geom.Identity
}

// strokeState reads the pen attributes of a Path. Dash lengths and
// the dash offset are authored in multiples of the thickness and are
// converted to page units here.
func strokeState(n *node, b resource.Brush, opacity float64) Stroke {
	thickness := attrFloat(n, "StrokeThickness", 1)
	s := Stroke{
		Brush:      resource.Scale(b, opacity),
		Thickness:  thickness,
		MiterLimit: attrFloat(n, "StrokeMiterLimit", 10),
		CapStart:   parseCap(n.attrs["StrokeStartLineCap"]),
		CapEnd:     parseCap(n.attrs["StrokeEndLineCap"]),
		CapDash:    parseCap(n.attrs["StrokeDashCap"]),
		Join:       parseJoin(n.attrs["StrokeLineJoin"]),
		DashOffset: attrFloat(n, "StrokeDashOffset", 0) * thickness,
	}
	if v, ok := n.attr("StrokeDashArray"); ok {
		if vals, err := geom.ParseFloats(v); err == nil && len(vals) > 0 {
			for i := range vals {
				vals[i] *= thickness
			}
			s.Dashes = vals
		}
	}
	return s
}

func (p *processor) finishGlyphs(n *node, f frame) error {
	uri, ok := n.attr("FontUri")
	if !ok || uri == "" {
		return nil
	}
	emSize := attrFloat(n, "FontRenderingEmSize", 0)
	if emSize <= 0 {
		return nil
	}
	if p.cfg.Fonts == nil {
		return fmt.Errorf("no font resolver for %q", uri)
	}
	face, err := p.cfg.Fonts.Face(uri)
	if err != nil {
		return err
	}
	run, err := layoutGlyphs(face, emSize,
		attrFloat(n, "OriginX", 0), attrFloat(n, "OriginY", 0),
		n.attrs["UnicodeString"], n.attrs["Indices"])
	if err != nil {
		return err
	}
	if len(run.Glyphs) == 0 {
		return nil
	}
	brush, ok := elementBrush(n, f.scope, "Fill")
	if !ok {
		return nil
	}
	p.cfg.Canvas.DrawGlyphRun(run, f.transform, resource.Scale(brush, f.opacity))
	return nil
}

func (p *processor) drawImageBrush(b resource.ImageBrush, f frame) error {
	if p.cfg.Parts == nil {
		return fmt.Errorf("no part reader for image %q", b.ImageSource)
	}
	rc, err := p.cfg.Parts.Open(b.ImageSource)
	if err != nil {
		return err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return fmt.Errorf("decoding image %q: %w", b.ImageSource, err)
	}
	p.cfg.Canvas.DrawImage(img, b.Viewport, f.transform.Mul(b.Transform), b.Opacity*f.opacity)
	return nil
}

func attrFloat(n *node, name string, def float64) float64 {
	v, ok := n.attrs[name]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func attrBool(n *node, name string) bool {
	return strings.EqualFold(strings.TrimSpace(n.attrs[name]), "true")
}

func parseCap(v string) LineCap {
	switch v {
	case "Square":
		return SquareCap
	case "Round":
		return RoundCap
	case "Triangle":
		return TriangleCap
	}
	return FlatCap
}

func parseJoin(v string) LineJoin {
	switch v {
	case "Bevel":
		return BevelJoin
	case "Round":
		return RoundJoin
	}
	return MiterJoin
}

func parseSpread(v string) resource.SpreadMethod {
	switch v {
	case "Reflect":
		return resource.ReflectSpread
	case "Repeat":
		return resource.RepeatSpread
	}
	return resource.PadSpread
}

func sortStops(stops []resource.GradientStop) []resource.GradientStop {
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
	return stops
}
