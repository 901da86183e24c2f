package doc

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/go-text/typesetting/font"

	"github.com/goxps/goxps/geom"
	"github.com/goxps/goxps/render"
)

// Page is one fixed page of a document. It supplies the part and font
// lookups rendering needs, resolving relative references against its
// own part name. Parsed faces are cached for the lifetime of the
// page, so a page drawing many runs from one font parses it once.
type Page struct {
	archive *Archive
	name    string // the .fpage part

	advisoryW, advisoryH float64 // from the PageContent element
	width, height        float64 // probed, cached
	fonts                map[string]*font.Face
	raster               *image.RGBA // last render, reused for the same target size and mode
	rasterMode           render.ErrorMode
	thumb                image.Image
}

func newPage(a *Archive, name string, advisoryW, advisoryH float64) *Page {
	return &Page{
		archive:   a,
		name:      name,
		advisoryW: advisoryW,
		advisoryH: advisoryH,
		fonts:     make(map[string]*font.Face),
	}
}

// Size returns the page dimensions in page units (1/96 inch). The
// page markup is probed for the authoritative value; the advisory
// size from the document structure covers pages that omit it.
func (p *Page) Size() (w, h float64, err error) {
	if p.width > 0 && p.height > 0 {
		return p.width, p.height, nil
	}
	rc, err := p.archive.Open(p.name)
	if err != nil {
		return 0, 0, err
	}
	defer rc.Close()
	w, h, err = probeSize(rc)
	if err == ErrSizeUndetermined && p.advisoryW > 0 && p.advisoryH > 0 {
		w, h, err = p.advisoryW, p.advisoryH, nil
	}
	if err != nil {
		return 0, 0, err
	}
	p.width, p.height = w, h
	return w, h, nil
}

// Open satisfies render.PartReader. Markup references are resolved
// against the page part; the ColorConvertedBitmap wrapper is unwrapped
// to its source bitmap, ignoring the color profile.
func (p *Page) Open(name string) (io.ReadCloser, error) {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "{ColorConvertedBitmap") {
		inner := strings.TrimSuffix(strings.TrimPrefix(name, "{ColorConvertedBitmap"), "}")
		if fields := strings.Fields(inner); len(fields) > 0 {
			name = fields[0]
		}
	}
	return p.archive.Open(resolvePartName(p.name, name))
}

// Face satisfies render.FontResolver.
func (p *Page) Face(uri string) (*font.Face, error) {
	part := resolvePartName(p.name, uri)
	if f, ok := p.fonts[part]; ok {
		return f, nil
	}
	f, err := loadFont(p.archive, part)
	if err != nil {
		return nil, err
	}
	p.fonts[part] = f
	return f, nil
}

// Render replays the page on a canvas. The transform maps page units
// to the canvas, typically a plain scale.
func (p *Page) Render(canvas render.Canvas, transform geom.Matrix, mode render.ErrorMode) error {
	rc, err := p.archive.Open(p.name)
	if err != nil {
		return err
	}
	defer rc.Close()
	return render.ProcessPage(rc, render.Config{
		Canvas:    canvas,
		Parts:     p,
		Fonts:     p,
		Transform: transform,
		Errors:    mode,
	})
}

// RenderToImage rasterizes the page into the given pixel dimensions.
// The result is cached; repeating the call with the same target size
// and error mode returns the same image without re-rendering.
func (p *Page) RenderToImage(width, height int, mode render.ErrorMode) (*image.RGBA, error) {
	if p.raster != nil && p.rasterMode == mode &&
		p.raster.Bounds().Dx() == width && p.raster.Bounds().Dy() == height {
		return p.raster, nil
	}
	w, h, err := p.Size()
	if err != nil {
		return nil, err
	}
	canvas := render.NewRasterCanvas(width, height)
	tf := geom.Identity.Scale(float64(width)/w, float64(height)/h)
	if err := p.Render(canvas, tf, mode); err != nil {
		return nil, err
	}
	p.raster = canvas.Image()
	p.rasterMode = mode
	return p.raster, nil
}

// RenderImage rasterizes the page at the given scale in pixels per
// page unit.
func (p *Page) RenderImage(scale float64, mode render.ErrorMode) (*image.RGBA, error) {
	w, h, err := p.Size()
	if err != nil {
		return nil, err
	}
	return p.RenderToImage(int(w*scale+0.5), int(h*scale+0.5), mode)
}

// Thumbnail decodes the thumbnail attached to the page part, if the
// producer wrote one.
func (p *Page) Thumbnail() (image.Image, error) {
	if p.thumb != nil {
		return p.thumb, nil
	}
	rels, err := readRelationships(p.archive, p.name)
	if err != nil {
		return nil, err
	}
	target := relTarget(rels, p.name, relThumbnail)
	if target == "" {
		return nil, fmt.Errorf("%w: page thumbnail", ErrEntryMissing)
	}
	rc, err := p.archive.Open(target)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, err
	}
	p.thumb = img
	return img, nil
}
