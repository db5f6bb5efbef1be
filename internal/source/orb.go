package source

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/paulmach/orb"

	"nebasemap/internal/geom"
)

// fromOrb converts an orb geometry into records sharing attrs. Collections
// expand into one record per member.
func fromOrb(g orb.Geometry, attrs geom.Attributes) []geom.Record {
	if c, ok := g.(orb.Collection); ok {
		var out []geom.Record
		for _, member := range c {
			out = append(out, fromOrb(member, attrs)...)
		}
		return out
	}
	return []geom.Record{{Shape: orbShape(g), Attrs: attrs}}
}

func orbShape(g orb.Geometry) geom.Shape {
	switch v := g.(type) {
	case orb.Point:
		return geom.Point{At: fromOrbPoint(v)}
	case orb.MultiPoint:
		return geom.MultiPoint{Points: fromOrbPoints(v)}
	case orb.LineString:
		return geom.Polyline{Parts: [][]geom.GeoPoint{fromOrbPoints(v)}}
	case orb.MultiLineString:
		parts := make([][]geom.GeoPoint, len(v))
		for i, ls := range v {
			parts[i] = fromOrbPoints(ls)
		}
		return geom.Polyline{Parts: parts}
	case orb.Ring:
		return geom.Polygon{Rings: windRings([][]geom.GeoPoint{fromOrbPoints(v)})}
	case orb.Polygon:
		return geom.Polygon{Rings: fromOrbRings(v)}
	case orb.MultiPolygon:
		var rings [][]geom.GeoPoint
		for _, p := range v {
			rings = append(rings, fromOrbRings(p)...)
		}
		return geom.Polygon{Rings: rings}
	case orb.Bound:
		return geom.Polygon{Rings: windRings([][]geom.GeoPoint{fromOrbPoints(v.ToRing())})}
	case nil:
		return geom.Unsupported{Type: "null"}
	}
	return geom.Unsupported{Type: g.GeoJSONType()}
}

func fromOrbPoint(p orb.Point) geom.GeoPoint {
	return geom.GeoPoint{Lon: p.Lon(), Lat: p.Lat()}
}

func fromOrbPoints[S ~[]orb.Point](pts S) []geom.GeoPoint {
	out := make([]geom.GeoPoint, len(pts))
	for i, p := range pts {
		out[i] = fromOrbPoint(p)
	}
	return out
}

func fromOrbRings(p orb.Polygon) [][]geom.GeoPoint {
	rings := make([][]geom.GeoPoint, len(p))
	for i, r := range p {
		rings[i] = fromOrbPoints(r)
	}
	return windRings(rings)
}

// windRings puts the rings of one polygon in shapefile order in place: the
// outer ring clockwise, holes counter-clockwise. GeoJSON winds the other way
// round and KML and WKT do not say.
func windRings(rings [][]geom.GeoPoint) [][]geom.GeoPoint {
	for i, r := range rings {
		want := orb.CCW
		if i == 0 {
			want = orb.CW
		}
		if o := toOrbRing(r).Orientation(); o != 0 && o != want {
			slices.Reverse(r)
		}
	}
	return rings
}

func toOrbRing(pts []geom.GeoPoint) orb.Ring {
	r := make(orb.Ring, len(pts))
	for i, p := range pts {
		r[i] = orb.Point{p.Lon, p.Lat}
	}
	return r
}

// propertyAttrs flattens GeoJSON properties to strings. Nested values use
// their fmt representation and nulls are omitted.
func propertyAttrs(props map[string]interface{}) geom.Attributes {
	if len(props) == 0 {
		return nil
	}
	attrs := make(geom.Attributes, len(props))
	for k, v := range props {
		switch t := v.(type) {
		case nil:
		case string:
			attrs[k] = t
		case float64:
			attrs[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			attrs[k] = strconv.FormatBool(t)
		default:
			attrs[k] = fmt.Sprint(t)
		}
	}
	return attrs
}
