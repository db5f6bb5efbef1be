// Package vector holds a drawn map as a flat list of primitives in screen
// coordinates, in paint order, and serializes it to SVG.
package vector

import (
	"math"
	"strconv"
	"strings"
)

// Attr is one presentation attribute, e.g. fill="wheat".
type Attr struct {
	Name  string
	Value string
}

// Attrs keeps insertion order so output is stable.
type Attrs []Attr

// Get returns the value of the named attribute.
func (a Attrs) Get(name string) (string, bool) {
	for _, at := range a {
		if at.Name == name {
			return at.Value, true
		}
	}
	return "", false
}

// Op is a path command.
type Op byte

const (
	MoveTo Op = 'M'
	LineTo Op = 'L'
	Close  Op = 'Z'
)

// Cmd is a path command with its target point. X and Y are unused for Close.
type Cmd struct {
	Op   Op
	X, Y float64
}

// Element is a drawable primitive: Path, Circle or Text.
type Element interface {
	isElement()
}

// Path is a sequence of move, line and close commands.
type Path struct {
	Cmds  []Cmd
	Attrs Attrs
}

// Circle is a filled or stroked disc.
type Circle struct {
	CX, CY, R float64
	Attrs     Attrs
}

// Text is a single line of text anchored at X, Y.
type Text struct {
	X, Y    float64
	Content string
	Attrs   Attrs
}

func (Path) isElement()   {}
func (Circle) isElement() {}
func (Text) isElement()   {}

// D renders the path data string, e.g. "M0,0 L10,0 L10,10 Z".
func (p Path) D() string {
	var b strings.Builder
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		if c.Op == Close {
			continue
		}
		b.WriteString(Num(c.X))
		b.WriteByte(',')
		b.WriteString(Num(c.Y))
	}
	return b.String()
}

// D renders the circle as path data made of two half-circle arcs.
func (c Circle) D() string {
	x0, x1, y, r := Num(c.CX-c.R), Num(c.CX+c.R), Num(c.CY), Num(c.R)
	return "M" + x0 + "," + y +
		" A" + r + "," + r + " 0 1,0 " + x1 + "," + y +
		" A" + r + "," + r + " 0 1,0 " + x0 + "," + y + " Z"
}

// Num formats a coordinate or attribute value with at most three decimals.
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Document is a drawing surface of Width x Height pixels. Elements are
// painted in slice order.
type Document struct {
	Width, Height int
	Title         string
	Elements      []Element
}

// New returns an empty document.
func New(width, height int) *Document {
	return &Document{Width: width, Height: height}
}

// Add appends e on top of everything drawn so far.
func (d *Document) Add(e Element) {
	d.Elements = append(d.Elements, e)
}

// Len is the number of elements.
func (d *Document) Len() int { return len(d.Elements) }

// Counts tallies elements by type: paths, circles, texts.
func (d *Document) Counts() (paths, circles, texts int) {
	for _, e := range d.Elements {
		switch e.(type) {
		case Path:
			paths++
		case Circle:
			circles++
		case Text:
			texts++
		}
	}
	return
}
