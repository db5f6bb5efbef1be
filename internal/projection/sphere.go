package projection

import (
	"math"

	"nebasemap/internal/geom"
)

// ToUnitSphere embeds p on the unit sphere:
// x = cos(lat)cos(lon), y = cos(lat)sin(lon), z = sin(lat).
func ToUnitSphere(p geom.GeoPoint) geom.Point3D {
	lon := p.Lon * math.Pi / 180
	lat := p.Lat * math.Pi / 180
	sinLon, cosLon := math.Sincos(lon)
	sinLat, cosLat := math.Sincos(lat)
	return geom.Point3D{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}
}

// IsVisible reports whether p faces camera: the sphere normal at p and the
// vector from p to the camera must have a strictly positive dot product.
// A camera sitting on p gives zero and is not visible.
func IsVisible(p, camera geom.Point3D) bool {
	return p.Dot(camera.Sub(p)) > 0
}

// Rotation holds Euler angles in radians.
type Rotation struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// IsZero reports whether r leaves points unchanged.
func (r Rotation) IsZero() bool {
	return r.Roll == 0 && r.Pitch == 0 && r.Yaw == 0
}

// CenteredOn returns the rotation that brings (lon, lat) onto the +X axis,
// which is where DefaultCamera looks.
func CenteredOn(lon, lat float64) Rotation {
	return Rotation{Yaw: -lon * math.Pi / 180, Pitch: lat * math.Pi / 180}
}

// Rotate applies the ZYX rotation: yaw about Z first, then pitch about Y,
// then roll about X.
func Rotate(p geom.Point3D, r Rotation) geom.Point3D {
	sa, ca := math.Sincos(r.Roll)
	sb, cb := math.Sincos(r.Pitch)
	sc, cc := math.Sincos(r.Yaw)

	return geom.Point3D{
		X: p.X*(cb*cc) + p.Y*(-cb*sc) + p.Z*sb,
		Y: p.X*(ca*sc+sa*sb*cc) + p.Y*(ca*cc-sa*sb*sc) + p.Z*(-sa*cb),
		Z: p.X*(sa*sc-ca*sb*cc) + p.Y*(sa*cc+ca*sb*sc) + p.Z*(ca*cb),
	}
}

// Orient embeds p on the sphere and applies the frame rotation.
func (f Frame) Orient(p geom.GeoPoint) geom.Point3D {
	q := ToUnitSphere(p)
	if f.Rotation.IsZero() {
		return q
	}
	return Rotate(q, f.Rotation)
}

// Unrotate undoes Rotate.
func Unrotate(p geom.Point3D, r Rotation) geom.Point3D {
	sa, ca := math.Sincos(r.Roll)
	sb, cb := math.Sincos(r.Pitch)
	sc, cc := math.Sincos(r.Yaw)

	return geom.Point3D{
		X: p.X*(cb*cc) + p.Y*(ca*sc+sa*sb*cc) + p.Z*(sa*sc-ca*sb*cc),
		Y: p.X*(-cb*sc) + p.Y*(ca*cc-sa*sb*sc) + p.Z*(sa*cc+ca*sb*sc),
		Z: p.X*sb + p.Y*(-sa*cb) + p.Z*(ca*cb),
	}
}

// ToGeo is the inverse of ToUnitSphere for points on the sphere.
func ToGeo(p geom.Point3D) geom.GeoPoint {
	z := math.Max(-1, math.Min(1, p.Z))
	return geom.GeoPoint{
		Lon: math.Atan2(p.Y, p.X) * 180 / math.Pi,
		Lat: math.Asin(z) * 180 / math.Pi,
	}
}

// Center is the geographic point at the middle of an orthographic view.
func (f Frame) Center() geom.GeoPoint {
	return ToGeo(Unrotate(geom.Point3D{X: 1}, f.Rotation))
}
