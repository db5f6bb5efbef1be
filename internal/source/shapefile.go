package source

import (
	"fmt"

	"github.com/jonas-p/go-shp"

	"nebasemap/internal/geom"
)

// Shapefile streams records from an ESRI shapefile. Attributes come from the
// sibling .dbf when present.
type Shapefile struct {
	r      *shp.Reader
	fields []string
	rec    geom.Record
}

// OpenShapefile opens path, which must end in .shp.
func OpenShapefile(path string) (*Shapefile, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	s := &Shapefile{r: r}
	for _, f := range r.Fields() {
		s.fields = append(s.fields, f.String())
	}
	return s, nil
}

// Next decodes the next shape.
func (s *Shapefile) Next() bool {
	if !s.r.Next() {
		return false
	}
	row, shape := s.r.Shape()
	s.rec = geom.Record{Shape: convertShape(shape)}
	if len(s.fields) > 0 {
		s.rec.Attrs = make(geom.Attributes, len(s.fields))
		for i, name := range s.fields {
			s.rec.Attrs[name] = s.r.ReadAttribute(row, i)
		}
	}
	return true
}

func (s *Shapefile) Record() geom.Record { return s.rec }
func (s *Shapefile) Err() error          { return s.r.Err() }
func (s *Shapefile) Close() error        { return s.r.Close() }

func convertShape(shape shp.Shape) geom.Shape {
	switch v := shape.(type) {
	case *shp.Polygon:
		return geom.Polygon{Rings: splitParts(v.Parts, v.Points)}
	case *shp.PolygonZ:
		return geom.Polygon{Rings: splitParts(v.Parts, v.Points)}
	case *shp.PolygonM:
		return geom.Polygon{Rings: splitParts(v.Parts, v.Points)}
	case *shp.PolyLine:
		return geom.Polyline{Parts: splitParts(v.Parts, v.Points)}
	case *shp.PolyLineZ:
		return geom.Polyline{Parts: splitParts(v.Parts, v.Points)}
	case *shp.PolyLineM:
		return geom.Polyline{Parts: splitParts(v.Parts, v.Points)}
	case *shp.Point:
		return geom.Point{At: geom.GeoPoint{Lon: v.X, Lat: v.Y}}
	case *shp.PointZ:
		return geom.Point{At: geom.GeoPoint{Lon: v.X, Lat: v.Y}}
	case *shp.PointM:
		return geom.Point{At: geom.GeoPoint{Lon: v.X, Lat: v.Y}}
	case *shp.MultiPoint:
		return geom.MultiPoint{Points: toGeo(v.Points)}
	case *shp.MultiPointZ:
		return geom.MultiPoint{Points: toGeo(v.Points)}
	case *shp.MultiPointM:
		return geom.MultiPoint{Points: toGeo(v.Points)}
	case *shp.MultiPatch:
		return geom.Unsupported{Type: "MultiPatch"}
	case *shp.Null, nil:
		return geom.Unsupported{Type: "Null"}
	}
	return geom.Unsupported{Type: fmt.Sprintf("%T", shape)}
}

// splitParts cuts the flat point list at the part start offsets. Offsets out
// of range are clamped so a damaged record yields short parts, not a panic.
func splitParts(parts []int32, pts []shp.Point) [][]geom.GeoPoint {
	if len(parts) == 0 {
		if len(pts) == 0 {
			return nil
		}
		return [][]geom.GeoPoint{toGeo(pts)}
	}
	out := make([][]geom.GeoPoint, 0, len(parts))
	for i, start := range parts {
		end := len(pts)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		s := int(start)
		if s < 0 {
			s = 0
		}
		if end > len(pts) {
			end = len(pts)
		}
		if s >= end {
			continue
		}
		out = append(out, toGeo(pts[s:end]))
	}
	return out
}

func toGeo(pts []shp.Point) []geom.GeoPoint {
	out := make([]geom.GeoPoint, len(pts))
	for i, p := range pts {
		out[i] = geom.GeoPoint{Lon: p.X, Lat: p.Y}
	}
	return out
}
