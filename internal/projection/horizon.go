package projection

import (
	"math"

	"nebasemap/internal/geom"
)

const crossingIterations = 40

// slerp walks the great circle from a to b; t in [0,1].
func slerp(a, b geom.Point3D, t float64) geom.Point3D {
	d := math.Max(-1, math.Min(1, a.Dot(b)))
	omega := math.Acos(d)
	s := math.Sin(omega)
	if s < 1e-12 {
		q := a.Scale(1 - t).Add(b.Scale(t))
		if n := q.Norm(); n > 0 {
			return q.Scale(1 / n)
		}
		return a
	}
	return a.Scale(math.Sin((1-t)*omega) / s).Add(b.Scale(math.Sin(t*omega) / s))
}

// HorizonCrossing bisects the great-circle arc between a visible point and a
// hidden one and returns the last visible point before the horizon.
func HorizonCrossing(visible, hidden, camera geom.Point3D) geom.Point3D {
	lo, hi := 0.0, 1.0
	for range crossingIterations {
		mid := (lo + hi) / 2
		if IsVisible(slerp(visible, hidden, mid), camera) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return slerp(visible, hidden, lo)
}

// RimAngle is the polar angle of a plane point.
func RimAngle(u, v float64) float64 {
	return math.Atan2(v, u)
}

// RimArc returns the pixel points strictly between angle from and
// from+sweep along the rim of the disc, in steps of at most step radians.
// A negative sweep walks clockwise.
func (f Frame) RimArc(from, sweep, step float64) []geom.ScreenPoint {
	if step <= 0 {
		step = DefaultRimStep
	}
	n := int(math.Ceil(math.Abs(sweep) / step))
	if n < 2 {
		return nil
	}
	out := make([]geom.ScreenPoint, 0, n-1)
	for i := 1; i < n; i++ {
		a := from + sweep*float64(i)/float64(n)
		out = append(out, f.FromPlane(math.Cos(a), math.Sin(a)))
	}
	return out
}

// DefaultRimStep is two degrees.
const DefaultRimStep = 2 * math.Pi / 180
