package vector

import (
	"bytes"
	"encoding/xml"
	"io"

	svg "github.com/ajstarks/svgo"
)

// errWriter remembers the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// WriteSVG serializes the document with a viewBox of (0, 0, Width, Height).
func (d *Document) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(d.Width, d.Height, 0, 0, d.Width, d.Height)
	if d.Title != "" {
		canvas.Title(d.Title)
	}
	for _, e := range d.Elements {
		switch el := e.(type) {
		case Path:
			canvas.Path(el.D(), el.Attrs.svg()...)
		case Circle:
			canvas.Path(el.D(), el.Attrs.svg()...)
		case Text:
			// svgo places text on whole pixels; the group carries the offset
			canvas.Gtransform("translate(" + Num(el.X) + "," + Num(el.Y) + ")")
			canvas.Text(0, 0, el.Content, el.Attrs.svg()...)
			canvas.Gend()
		}
	}
	canvas.End()
	return ew.err
}

func (a Attrs) svg() []string {
	out := make([]string, 0, len(a))
	for _, at := range a {
		var buf bytes.Buffer
		buf.WriteString(at.Name)
		buf.WriteString(`="`)
		_ = xml.EscapeText(&buf, []byte(at.Value))
		buf.WriteByte('"')
		out = append(out, buf.String())
	}
	return out
}
