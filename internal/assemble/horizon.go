package assemble

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"nebasemap/internal/geom"
	"nebasemap/internal/projection"
)

// Rings follow the shapefile convention: the filled side lies to the right
// of the direction of travel, so outer rings run clockwise and holes run
// counter-clockwise. Seen from outside the globe with north up the
// orthographic view keeps that handedness.

// clipPart keeps the near-side stretches of an open part. Each time the part
// goes behind the globe the horizon crossing ends the current piece; on
// re-entry the second crossing starts a new one.
func (a *Assembler) clipPart(pts []geom.GeoPoint) [][]geom.ScreenPoint {
	f := a.frame
	cam := f.Camera

	var (
		pieces      [][]geom.ScreenPoint
		cur         []geom.ScreenPoint
		prev        geom.Point3D
		prevVisible bool
	)
	for i, g := range pts {
		p := f.Orient(g)
		visible := projection.IsVisible(p, cam)

		switch {
		case visible && i > 0 && !prevVisible:
			cur = a.put(cur, projection.HorizonCrossing(p, prev, cam))
			cur = a.put(cur, p)
		case visible:
			cur = a.put(cur, p)
		case i > 0 && prevVisible:
			cur = a.put(cur, projection.HorizonCrossing(prev, p, cam))
			pieces = append(pieces, cur)
			cur = nil
		}
		prev, prevVisible = p, visible
	}
	if len(cur) > 0 {
		pieces = append(pieces, cur)
	}
	return pieces
}

func (a *Assembler) put(seq []geom.ScreenPoint, p geom.Point3D) []geom.ScreenPoint {
	if sp, ok := projection.ProjectOrthographic(p, a.frame); ok {
		seq = append(seq, sp)
	}
	return seq
}

// arc is the visible stretch of a ring between two horizon crossings. in and
// out are the rim angles where it enters and leaves the disc.
type arc struct {
	pts     []geom.ScreenPoint
	in, out float64
}

// clipRings returns the near-side outline of all rings of one polygon.
//
// Fully visible rings are kept as they are and fully hidden rings vanish.
// Rings that cross the horizon are cut into arcs, and the arcs of every ring
// are joined along the rim: leaving the disc, the filled side lies clockwise,
// so the rim is walked clockwise to the nearest entry. When no ring crosses
// the horizon but some are hidden, the polygon may still cover the rim; it
// then gains a full rim circle. hidden counts the rings that left nothing.
func (a *Assembler) clipRings(rings [][]geom.GeoPoint) (seqs [][]geom.ScreenPoint, hidden int) {
	f := a.frame
	var arcs []arc
	for _, ring := range rings {
		ps := make([]geom.Point3D, 0, len(ring))
		start := -1
		for _, g := range ring {
			p := f.Orient(g)
			if start < 0 && !projection.IsVisible(p, f.Camera) {
				start = len(ps)
			}
			ps = append(ps, p)
		}
		switch {
		case len(ps) == 0:
			hidden++
		case start < 0:
			var seq []geom.ScreenPoint
			for _, p := range ps {
				seq = a.put(seq, p)
			}
			seqs = append(seqs, seq)
		default:
			found := a.ringArcs(openRing(ring, ps), start)
			if len(found) == 0 {
				hidden++
			}
			arcs = append(arcs, found...)
		}
	}

	if len(arcs) > 0 {
		return append(seqs, a.joinArcs(arcs)...), hidden
	}
	if hidden > 0 && a.coversRim(rings, seqs) {
		seqs = append(seqs, a.rimCircle())
	}
	return seqs, hidden
}

// openRing drops the closing vertex so the ring can be walked as a cycle.
func openRing(ring []geom.GeoPoint, ps []geom.Point3D) []geom.Point3D {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ps[:n-1]
	}
	return ps
}

// ringArcs walks the cycle ps once, starting at the hidden vertex start.
func (a *Assembler) ringArcs(ps []geom.Point3D, start int) []arc {
	cam := a.frame.Camera
	n := len(ps)
	var (
		arcs []arc
		cur  arc
	)
	prev, prevVisible := ps[start], false
	for k := 1; k <= n; k++ {
		p := ps[(start+k)%n]
		visible := projection.IsVisible(p, cam)
		switch {
		case visible && !prevVisible:
			c := projection.HorizonCrossing(p, prev, cam)
			cur = arc{in: projection.RimAngle(c.Y, c.Z)}
			cur.pts = a.put(cur.pts, c)
			cur.pts = a.put(cur.pts, p)
		case visible:
			cur.pts = a.put(cur.pts, p)
		case prevVisible:
			c := projection.HorizonCrossing(prev, p, cam)
			cur.pts = a.put(cur.pts, c)
			cur.out = projection.RimAngle(c.Y, c.Z)
			arcs = append(arcs, cur)
			cur = arc{}
		}
		prev, prevVisible = p, visible
	}
	return arcs
}

// joinArcs closes arcs into rings along the rim. One polygon can come apart
// into several rings, for instance when it wraps round the back of the globe.
func (a *Assembler) joinArcs(arcs []arc) [][]geom.ScreenPoint {
	f := a.frame
	used := make([]bool, len(arcs))
	var out [][]geom.ScreenPoint
	for first := range arcs {
		if used[first] {
			continue
		}
		var seq []geom.ScreenPoint
		for i := first; ; {
			used[i] = true
			seq = append(seq, arcs[i].pts...)
			next, sweep := nextEntry(arcs, used, first, arcs[i].out)
			seq = append(seq, f.RimArc(arcs[i].out, -sweep, a.opts.RimStep)...)
			if next == first {
				break
			}
			i = next
		}
		out = append(out, seq)
	}
	return out
}

// nextEntry finds the arc whose entry is reached first walking clockwise from
// angle out. Only unused arcs and the arc that opened the current ring
// qualify.
func nextEntry(arcs []arc, used []bool, first int, out float64) (next int, sweep float64) {
	next, sweep = first, clockwise(out, arcs[first].in)
	for j, c := range arcs {
		if used[j] {
			continue
		}
		if d := clockwise(out, c.in); d < sweep {
			next, sweep = j, d
		}
	}
	return next, sweep
}

// clockwise is the angle swept going clockwise from a to b, in [0, 2pi).
func clockwise(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// coversRim reports whether the rim lies inside the polygon when no ring
// crosses the horizon. The view center is tested against the rings on the
// map, then against the visible rings on the disc: walking from the center to
// the rim only crosses visible edges.
func (a *Assembler) coversRim(rings [][]geom.GeoPoint, visible [][]geom.ScreenPoint) bool {
	c := a.frame.Center()
	center := orb.Point{c.Lon, c.Lat}
	inside := false
	for _, ring := range rings {
		if len(ring) > 2 && planar.RingContains(geoRing(ring), center) {
			inside = !inside
		}
	}
	mid := a.frame.FromPlane(0, 0)
	for _, seq := range visible {
		if len(seq) > 2 && planar.RingContains(screenRing(seq), orb.Point{mid.X, mid.Y}) {
			inside = !inside
		}
	}
	return inside
}

// rimCircle is the whole disc outline, clockwise from angle zero.
func (a *Assembler) rimCircle() []geom.ScreenPoint {
	f := a.frame
	return append([]geom.ScreenPoint{f.FromPlane(1, 0)}, f.RimArc(0, -2*math.Pi, a.opts.RimStep)...)
}

func geoRing(pts []geom.GeoPoint) orb.Ring {
	r := make(orb.Ring, len(pts))
	for i, p := range pts {
		r[i] = orb.Point{p.Lon, p.Lat}
	}
	return r
}

func screenRing(pts []geom.ScreenPoint) orb.Ring {
	r := make(orb.Ring, len(pts))
	for i, p := range pts {
		r[i] = orb.Point{p.X, p.Y}
	}
	return r
}
