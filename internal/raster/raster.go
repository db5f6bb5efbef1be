// Package raster paints a vector.Document into a pixel image with gg.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strconv"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"nebasemap/internal/style"
	"nebasemap/internal/vector"
)

// Options control rasterization.
type Options struct {
	// FontPath is a TrueType/OpenType file used for labels. Text elements are
	// skipped when it is empty.
	FontPath string
}

// Render paints doc at its own pixel size.
func Render(doc *vector.Document, opts Options) (image.Image, error) {
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid document size %dx%d", doc.Width, doc.Height)
	}
	p, err := newPainter(opts)
	if err != nil {
		return nil, err
	}
	defer p.close()

	dc := gg.NewContext(doc.Width, doc.Height)
	defer dc.Close()
	for i, e := range doc.Elements {
		if err := p.paint(dc, e); err != nil {
			return nil, fmt.Errorf("raster: element %d: %w", i, err)
		}
	}
	return dc.Image(), nil
}

// EncodePNG renders doc and writes it as PNG.
func EncodePNG(w io.Writer, doc *vector.Document, opts Options) error {
	img, err := Render(doc, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WritePNG renders doc into the file at path.
func WritePNG(path string, doc *vector.Document, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, doc, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type painter struct {
	font  *text.FontSource
	faces map[float64]text.Face
}

func newPainter(opts Options) (*painter, error) {
	p := &painter{faces: make(map[float64]text.Face)}
	if opts.FontPath != "" {
		src, err := text.NewFontSourceFromFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("raster: %w", err)
		}
		p.font = src
	}
	return p, nil
}

func (p *painter) close() {
	if p.font != nil {
		p.font.Close()
	}
}

func (p *painter) face(size float64) text.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := p.font.Face(size)
	p.faces[size] = f
	return f
}

func (p *painter) paint(dc *gg.Context, e vector.Element) error {
	switch el := e.(type) {
	case vector.Path:
		tracePath(dc, el.Cmds)
		return fillAndStroke(dc, el.Attrs)
	case vector.Circle:
		dc.DrawCircle(el.CX, el.CY, el.R)
		return fillAndStroke(dc, el.Attrs)
	case vector.Text:
		return p.drawText(dc, el)
	}
	return nil
}

func tracePath(dc *gg.Context, cmds []vector.Cmd) {
	for _, c := range cmds {
		switch c.Op {
		case vector.MoveTo:
			dc.MoveTo(c.X, c.Y)
		case vector.LineTo:
			dc.LineTo(c.X, c.Y)
		case vector.Close:
			dc.ClosePath()
		}
	}
}

// fillAndStroke applies SVG paint defaults: fill black, stroke none,
// stroke-width 1.
func fillAndStroke(dc *gg.Context, a vector.Attrs) error {
	fill, err := paintColor(a, "fill", "black", "fill-opacity")
	if err != nil {
		return err
	}
	stroke, err := paintColor(a, "stroke", style.None, "")
	if err != nil {
		return err
	}
	width := number(a, "stroke-width", 1)
	if width <= 0 {
		stroke = nil
	}

	switch {
	case fill != nil && stroke != nil:
		dc.SetColor(*fill)
		if err := dc.FillPreserve(); err != nil {
			return err
		}
		setStroke(dc, a, *stroke, width)
		return dc.Stroke()
	case fill != nil:
		dc.SetColor(*fill)
		return dc.Fill()
	case stroke != nil:
		setStroke(dc, a, *stroke, width)
		return dc.Stroke()
	}
	dc.ClearPath()
	return nil
}

func setStroke(dc *gg.Context, a vector.Attrs, c gg.RGBA, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	join := gg.LineJoinMiter
	if v, _ := a.Get("stroke-linejoin"); v == "round" {
		join = gg.LineJoinRound
	}
	dc.SetLineJoin(join)
}

func (p *painter) drawText(dc *gg.Context, t vector.Text) error {
	if p.font == nil || t.Content == "" {
		return nil
	}
	fill, err := paintColor(t.Attrs, "fill", "black", "fill-opacity")
	if err != nil || fill == nil {
		return err
	}
	dc.SetFont(p.face(number(t.Attrs, "font-size", 12)))
	dc.SetColor(*fill)
	x := t.X
	w, _ := dc.MeasureString(t.Content)
	switch anchor, _ := t.Attrs.Get("text-anchor"); anchor {
	case "middle":
		x -= w / 2
	case "end":
		x -= w
	}
	dc.DrawString(t.Content, x, t.Y)
	return nil
}

// paintColor resolves a paint attribute to a color, or nil for "none".
func paintColor(a vector.Attrs, name, def, opacityAttr string) (*gg.RGBA, error) {
	v, ok := a.Get(name)
	if !ok {
		v = def
	}
	c, err := style.ParseColor(v)
	if err != nil || c == nil {
		return nil, err
	}
	rgba := gg.FromColor(c)
	if opacityAttr != "" {
		rgba.A *= number(a, opacityAttr, 1)
	}
	return &rgba, nil
}

func number(a vector.Attrs, name string, def float64) float64 {
	v, ok := a.Get(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
