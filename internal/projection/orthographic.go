package projection

import (
	"math"

	"nebasemap/internal/geom"
)

// PlaneUV returns the projection-plane coordinates of p: (u, v) = (y, z).
// Points on the far side are pushed out to the unit circle so wrapped geometry
// collapses onto the rim instead of cutting across the disc. ok is false when
// such a point has no direction in the plane (it sits exactly behind the center).
func PlaneUV(p, camera geom.Point3D) (u, v float64, ok bool) {
	u, v = p.Y, p.Z
	if IsVisible(p, camera) {
		return u, v, true
	}
	n := math.Hypot(u, v)
	if n == 0 {
		return 0, 0, false
	}
	return u / n, v / n, true
}

// ProjectOrthographic maps an oriented sphere point into pixel space.
// The bool is false for points that cannot be placed; callers skip them.
func ProjectOrthographic(p geom.Point3D, f Frame) (geom.ScreenPoint, bool) {
	u, v, ok := PlaneUV(p, f.Camera)
	if !ok {
		return geom.ScreenPoint{}, false
	}
	return f.FromPlane(u, v), true
}

// FromPlane scales plane coordinates in [-1,1] to pixels.
func (f Frame) FromPlane(u, v float64) geom.ScreenPoint {
	return f.scale((u+1)/2, (v+1)/2)
}
