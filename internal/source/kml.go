package source

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"nebasemap/internal/geom"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlPlacemark struct {
	Name       string      `xml:"name"`
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

// decodeKML extracts Placemarks at any depth (inside Document or Folder
// elements). Point, LineString and Polygon geometries are kept and the
// placemark name becomes the "name" attribute. Altitudes are ignored.
func decodeKML(data []byte) ([]geom.Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var recs []geom.Record
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, err
		}
		if shape := pm.shape(); shape != nil {
			var attrs geom.Attributes
			if name := strings.TrimSpace(pm.Name); name != "" {
				attrs = geom.Attributes{"name": name}
			}
			recs = append(recs, geom.Record{Shape: shape, Attrs: attrs})
		}
	}
	if len(recs) == 0 {
		return nil, errors.New("kml: no placemarks found")
	}
	return recs, nil
}

func (pm kmlPlacemark) shape() geom.Shape {
	switch {
	case pm.Point != nil:
		pts := parseKMLCoords(pm.Point.Coordinates)
		if len(pts) == 0 {
			return nil
		}
		return geom.Point{At: pts[0]}
	case pm.LineString != nil:
		pts := parseKMLCoords(pm.LineString.Coordinates)
		if len(pts) == 0 {
			return nil
		}
		return geom.Polyline{Parts: [][]geom.GeoPoint{pts}}
	case pm.Polygon != nil:
		outer := parseKMLCoords(pm.Polygon.Outer.Coordinates)
		if len(outer) == 0 {
			return nil
		}
		rings := [][]geom.GeoPoint{outer}
		for _, in := range pm.Polygon.Inner {
			if pts := parseKMLCoords(in.Coordinates); len(pts) > 0 {
				rings = append(rings, pts)
			}
		}
		return geom.Polygon{Rings: windRings(rings)}
	}
	return nil
}

// parseKMLCoords reads whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) []geom.GeoPoint {
	var pts []geom.GeoPoint
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, geom.GeoPoint{Lon: lon, Lat: lat})
	}
	return pts
}
