package geom

import "math"

// GeoPoint is a longitude/latitude pair in decimal degrees.
type GeoPoint struct {
	Lon float64
	Lat float64
}

// ScreenPoint is a pixel position, (0,0) top-left, y growing downward.
type ScreenPoint struct {
	X float64
	Y float64
}

// Point3D is a point in Cartesian space, usually on the unit sphere.
type Point3D struct {
	X, Y, Z float64
}

func (p Point3D) Dot(o Point3D) float64 { return p.X*o.X + p.Y*o.Y + p.Z*o.Z }

func (p Point3D) Sub(o Point3D) Point3D { return Point3D{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }

func (p Point3D) Scale(s float64) Point3D { return Point3D{p.X * s, p.Y * s, p.Z * s} }

func (p Point3D) Add(o Point3D) Point3D { return Point3D{p.X + o.X, p.Y + o.Y, p.Z + o.Z} }

func (p Point3D) Norm() float64 { return math.Sqrt(p.Dot(p)) }

// BBox is an axis-aligned lon/lat extent.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a positive extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// BBoxOf returns the bounds of pts. The zero BBox is returned for no points.
func BBoxOf(pts []GeoPoint) BBox {
	var b BBox
	for i, p := range pts {
		if i == 0 {
			b = BBox{MinX: p.Lon, MinY: p.Lat, MaxX: p.Lon, MaxY: p.Lat}
			continue
		}
		b.MinX = math.Min(b.MinX, p.Lon)
		b.MinY = math.Min(b.MinY, p.Lat)
		b.MaxX = math.Max(b.MaxX, p.Lon)
		b.MaxY = math.Max(b.MaxY, p.Lat)
	}
	return b
}
