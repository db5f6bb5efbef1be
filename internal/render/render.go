// Package render turns assembled screen-space features into styled vector
// primitives.
package render

import (
	"errors"

	"nebasemap/internal/assemble"
	"nebasemap/internal/geom"
	"nebasemap/internal/style"
	"nebasemap/internal/vector"
)

// ErrEmptyPath is returned when asked to draw a sequence with no points.
var ErrEmptyPath = errors.New("render: empty point sequence")

// Marker and label geometry for point features.
const (
	MarkerRadius  = 2
	LabelOffsetX  = 0
	LabelOffsetY  = -4
	LabelFontSize = 12
	LabelFont     = "Arial"
)

// Renderer appends primitives to a document. It is the document's only writer
// for the duration of a render.
type Renderer struct {
	doc *vector.Document
}

func New(doc *vector.Document) *Renderer {
	return &Renderer{doc: doc}
}

// Document returns the sink being drawn into.
func (r *Renderer) Document() *vector.Document { return r.doc }

// DrawBackground covers the whole frame, independent of any projection.
func (r *Renderer) DrawBackground(s style.LayerStyle) {
	w, h := float64(r.doc.Width), float64(r.doc.Height)
	r.doc.Add(vector.Path{
		Cmds: []vector.Cmd{
			{Op: vector.MoveTo, X: 0, Y: 0},
			{Op: vector.LineTo, X: 0, Y: h},
			{Op: vector.LineTo, X: w, Y: h},
			{Op: vector.LineTo, X: w, Y: 0},
			{Op: vector.Close},
		},
		Attrs: vector.Attrs{
			{Name: "stroke", Value: paint(s.Stroke)},
			{Name: "fill", Value: paint(s.Fill)},
			{Name: "fill-opacity", Value: vector.Num(s.FillOpacity)},
		},
	})
}

// DrawPolygon emits a closed filled path.
func (r *Renderer) DrawPolygon(pts []geom.ScreenPoint, s style.LayerStyle) error {
	if len(pts) == 0 {
		return ErrEmptyPath
	}
	cmds := pathCmds(pts)
	cmds = append(cmds, vector.Cmd{Op: vector.Close})
	r.doc.Add(vector.Path{Cmds: cmds, Attrs: paintAttrs(s)})
	return nil
}

// DrawPolyline emits an open stroked path with round joins.
func (r *Renderer) DrawPolyline(pts []geom.ScreenPoint, s style.LayerStyle) error {
	if len(pts) == 0 {
		return ErrEmptyPath
	}
	attrs := append(paintAttrs(s), vector.Attr{Name: "stroke-linejoin", Value: "round"})
	r.doc.Add(vector.Path{Cmds: pathCmds(pts), Attrs: attrs})
	return nil
}

// DrawPointWithLabel emits a marker and, when text is not empty, a label
// centered just above it. Both use the fill color, or the stroke color when
// the fill is none.
func (r *Renderer) DrawPointWithLabel(pt geom.ScreenPoint, text string, s style.LayerStyle) {
	ink := markerInk(s)
	r.doc.Add(vector.Circle{
		CX: pt.X, CY: pt.Y, R: MarkerRadius,
		Attrs: vector.Attrs{
			{Name: "fill", Value: ink},
			{Name: "stroke", Value: "none"},
		},
	})
	if text == "" {
		return
	}
	r.doc.Add(vector.Text{
		X: pt.X + LabelOffsetX, Y: pt.Y + LabelOffsetY,
		Content: text,
		Attrs: vector.Attrs{
			{Name: "font-family", Value: LabelFont},
			{Name: "font-size", Value: vector.Num(LabelFontSize)},
			{Name: "fill", Value: ink},
			{Name: "text-anchor", Value: "middle"},
		},
	})
}

// Draw dispatches on the feature kind.
func (r *Renderer) Draw(f assemble.Feature, s style.LayerStyle) error {
	switch f.Kind {
	case assemble.Area:
		return r.DrawPolygon(f.Points, s)
	case assemble.Line:
		return r.DrawPolyline(f.Points, s)
	case assemble.Marker:
		if len(f.Points) == 0 {
			return ErrEmptyPath
		}
		r.DrawPointWithLabel(f.Points[0], f.Label, s)
		return nil
	}
	return nil
}

func pathCmds(pts []geom.ScreenPoint) []vector.Cmd {
	cmds := make([]vector.Cmd, len(pts), len(pts)+1)
	for i, p := range pts {
		op := vector.LineTo
		if i == 0 {
			op = vector.MoveTo
		}
		cmds[i] = vector.Cmd{Op: op, X: p.X, Y: p.Y}
	}
	return cmds
}

func paintAttrs(s style.LayerStyle) vector.Attrs {
	return vector.Attrs{
		{Name: "fill", Value: paint(s.Fill)},
		{Name: "fill-opacity", Value: vector.Num(s.FillOpacity)},
		{Name: "stroke", Value: paint(s.Stroke)},
		{Name: "stroke-width", Value: vector.Num(s.StrokeWidth)},
	}
}

func paint(c string) string {
	if c == "" {
		return style.None
	}
	return c
}

func markerInk(s style.LayerStyle) string {
	for _, c := range []string{s.Fill, s.Stroke} {
		if c != "" && c != style.None {
			return c
		}
	}
	return "black"
}
