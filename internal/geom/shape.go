package geom

import "strings"

// Kind tags the variants of Shape.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPolygon
	KindPolyline
	KindPoint
	KindMultiPoint
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "Polygon"
	case KindPolyline:
		return "Polyline"
	case KindPoint:
		return "Point"
	case KindMultiPoint:
		return "MultiPoint"
	}
	return "Unsupported"
}

// Shape is the geometry of one record. The set of implementations is closed.
type Shape interface {
	Kind() Kind
	isShape()
}

// Polygon holds closed rings, outer boundaries and holes alike.
type Polygon struct {
	Rings [][]GeoPoint
}

// Polyline holds open parts.
type Polyline struct {
	Parts [][]GeoPoint
}

// Point is a single vertex.
type Point struct {
	At GeoPoint
}

// MultiPoint is an unordered set of vertices.
type MultiPoint struct {
	Points []GeoPoint
}

// Unsupported stands in for geometry the pipeline does not draw
// (null shapes, multipatches, geometry collections).
type Unsupported struct {
	Type string
}

func (Polygon) Kind() Kind     { return KindPolygon }
func (Polyline) Kind() Kind    { return KindPolyline }
func (Point) Kind() Kind       { return KindPoint }
func (MultiPoint) Kind() Kind  { return KindMultiPoint }
func (Unsupported) Kind() Kind { return KindUnsupported }

func (Polygon) isShape()     {}
func (Polyline) isShape()    {}
func (Point) isShape()       {}
func (MultiPoint) isShape()  {}
func (Unsupported) isShape() {}

// Attributes are the string-valued fields attached to a record.
type Attributes map[string]string

// Get looks up key case-insensitively, as DBF field names are usually upper case.
func (a Attributes) Get(key string) string {
	if v, ok := a[key]; ok {
		return v
	}
	for k, v := range a {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// Record is one feature yielded by a layer source.
type Record struct {
	Shape Shape
	Attrs Attributes
}
