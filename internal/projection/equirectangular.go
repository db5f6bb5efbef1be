package projection

import "nebasemap/internal/geom"

// ProjectEquirectangular maps p linearly into f's pixel space. Points outside
// f.Bounds land outside the pixel rectangle; nothing is clamped.
func ProjectEquirectangular(p geom.GeoPoint, f Frame) geom.ScreenPoint {
	b := f.Bounds
	nx := (p.Lon - b.MinX) / (b.MaxX - b.MinX)
	ny := (p.Lat - b.MinY) / (b.MaxY - b.MinY)
	return f.scale(nx, ny)
}
