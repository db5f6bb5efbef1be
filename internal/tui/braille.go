package tui

import "sort"

// brailleBuf is a monochrome canvas of w x h terminal cells. Each cell is a
// braille glyph holding a 2x4 grid of dots, so the drawable grid is
// (2w) x (4h) micro-pixels.
type brailleBuf struct {
	w, h int
	m    [][]uint8
}

// dotBits maps a micro-pixel's position inside its cell to its braille bit,
// indexed [column][row].
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

func (b *brailleBuf) microW() int { return b.w * 2 }
func (b *brailleBuf) microH() int { return b.h * 4 }

// setPixel turns on the dot at micro coordinates. Out-of-range dots are ignored.
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 || mx >= b.microW() || my >= b.microH() {
		return
	}
	b.m[my/4][mx/2] |= dotBits[mx%2][my%4]
}

// drawLine plots a Bresenham line between two micro-pixels.
func (b *brailleBuf) drawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fill paints the interior of rings with the even-odd rule, one micro
// scanline at a time. Holes stay empty.
func (b *brailleBuf) fill(rings [][][2]int) {
	var xs []int
	for y := 0; y < b.microH(); y++ {
		xs = xs[:0]
		for _, r := range rings {
			for i := range r {
				p, q := r[i], r[(i+1)%len(r)]
				if p[1] == q[1] {
					continue
				}
				if (y >= p[1] && y < q[1]) || (y >= q[1] && y < p[1]) {
					t := float64(y-p[1]) / float64(q[1]-p[1])
					xs = append(xs, p[0]+int(t*float64(q[0]-p[0])))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1] && x < b.microW(); x++ {
				b.setPixel(x, y)
			}
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := range b.m {
		row := make([]rune, b.w)
		for x, mask := range b.m[y] {
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
