package tui

import (
	"math"
	"strings"

	"nebasemap/internal/vector"
)

// PreviewOptions sizes a terminal preview.
type PreviewOptions struct {
	// Cols and Rows are the preview size in terminal cells. Rows <= 0 derives
	// the height from the document aspect ratio.
	Cols, Rows int
	// Fill paints the interior of filled closed paths. Paths covering the
	// whole document, like the background, are only outlined.
	Fill bool
}

// subpath is one M.. run of a path in micro-pixel coordinates.
type subpath struct {
	pts    [][2]int
	closed bool
}

// Preview draws doc as braille text. Paths become outlines (and fills when
// asked), circles become single dots, text is left out.
func Preview(doc *vector.Document, opts PreviewOptions) string {
	if doc == nil || doc.Width <= 0 || doc.Height <= 0 || opts.Cols <= 0 {
		return ""
	}
	rows := opts.Rows
	if rows <= 0 {
		rows = previewRows(doc, opts.Cols)
	}
	b := newBrailleBuf(opts.Cols, rows)
	sx := float64(b.microW()-1) / float64(doc.Width)
	sy := float64(b.microH()-1) / float64(doc.Height)
	toMicro := func(x, y float64) [2]int {
		return [2]int{int(math.Round(x * sx)), int(math.Round(y * sy))}
	}

	for _, e := range doc.Elements {
		switch e := e.(type) {
		case vector.Path:
			subs := splitSubpaths(e, toMicro)
			if opts.Fill && filled(e.Attrs) && !coversDoc(e, doc) {
				var rings [][][2]int
				for _, s := range subs {
					if s.closed && len(s.pts) >= 3 {
						rings = append(rings, s.pts)
					}
				}
				b.fill(rings)
			}
			for _, s := range subs {
				outline(b, s)
			}
		case vector.Circle:
			p := toMicro(e.CX, e.CY)
			b.setPixel(p[0], p[1])
		}
	}
	return strings.Join(b.toLines(), "\n")
}

// previewRows keeps the document aspect ratio, given that a terminal cell
// is about twice as tall as it is wide.
func previewRows(doc *vector.Document, cols int) int {
	rows := int(math.Round(float64(cols) * float64(doc.Height) / float64(doc.Width) / 2))
	return max(rows, 1)
}

func splitSubpaths(p vector.Path, toMicro func(x, y float64) [2]int) []subpath {
	var out []subpath
	var cur *subpath
	for _, c := range p.Cmds {
		switch c.Op {
		case vector.MoveTo:
			out = append(out, subpath{pts: [][2]int{toMicro(c.X, c.Y)}})
			cur = &out[len(out)-1]
		case vector.LineTo:
			if cur == nil {
				out = append(out, subpath{})
				cur = &out[len(out)-1]
			}
			cur.pts = append(cur.pts, toMicro(c.X, c.Y))
		case vector.Close:
			if cur != nil {
				cur.closed = true
			}
		}
	}
	return out
}

func outline(b *brailleBuf, s subpath) {
	if len(s.pts) == 1 {
		b.setPixel(s.pts[0][0], s.pts[0][1])
		return
	}
	for i := 1; i < len(s.pts); i++ {
		p, q := s.pts[i-1], s.pts[i]
		b.drawLine(p[0], p[1], q[0], q[1])
	}
	if s.closed && len(s.pts) > 2 {
		p, q := s.pts[len(s.pts)-1], s.pts[0]
		b.drawLine(p[0], p[1], q[0], q[1])
	}
}

func filled(a vector.Attrs) bool {
	if f, ok := a.Get("fill"); ok && f == "none" {
		return false
	}
	if o, ok := a.Get("fill-opacity"); ok && o == "0" {
		return false
	}
	return true
}

func coversDoc(p vector.Path, doc *vector.Document) bool {
	if len(p.Cmds) == 0 {
		return false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range p.Cmds {
		if c.Op == vector.Close {
			continue
		}
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	return minX <= 0 && minY <= 0 && maxX >= float64(doc.Width) && maxY >= float64(doc.Height)
}
