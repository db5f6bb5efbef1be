// Package source reads layer data into geom.Records.
//
// Shapefiles stream one record at a time. The overlay formats (GeoJSON, WKT,
// CSV, KML) are small and are decoded whole when opened.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"nebasemap/internal/geom"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// OpenError reports a source that could not be opened or decoded.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Reader yields records in file order.
//
//	for r.Next() {
//		rec := r.Record()
//	}
//	if err := r.Err(); err != nil { ... }
type Reader interface {
	Next() bool
	Record() geom.Record
	Err() error
	Close() error
}

// Extensions lists the file extensions Open understands.
func Extensions() []string {
	return []string{".shp", ".geojson", ".json", ".wkt", ".csv", ".kml"}
}

// Open picks a reader by file extension.
func Open(path string) (Reader, error) {
	var (
		r   Reader
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		r, err = OpenShapefile(path)
	case ".geojson", ".json":
		r, err = decodeFile(path, decodeGeoJSON)
	case ".wkt":
		r, err = decodeFile(path, decodeWKT)
	case ".csv":
		r, err = decodeFile(path, decodeCSV)
	case ".kml":
		r, err = decodeFile(path, decodeKML)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return r, nil
}

// Stat checks that path names a regular file of a supported format
// without decoding it.
func Stat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, e := range Extensions() {
		if e == ext {
			supported = true
			break
		}
	}
	if !supported {
		return &OpenError{Path: path, Err: ErrUnsupportedFormat}
	}
	fi, err := os.Stat(path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	if fi.IsDir() {
		return &OpenError{Path: path, Err: errors.New("is a directory")}
	}
	return nil
}

// FromRecords serves an in-memory slice through the Reader interface.
func FromRecords(recs []geom.Record) Reader {
	return &memReader{recs: recs}
}

type memReader struct {
	recs []geom.Record
	i    int
}

func (m *memReader) Next() bool {
	if m.i >= len(m.recs) {
		return false
	}
	m.i++
	return true
}

func (m *memReader) Record() geom.Record { return m.recs[m.i-1] }
func (m *memReader) Err() error          { return nil }
func (m *memReader) Close() error        { return nil }

func decodeFile(path string, decode func([]byte) ([]geom.Record, error)) (Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	recs, err := decode(data)
	if err != nil {
		return nil, err
	}
	return FromRecords(recs), nil
}

// Extent reads every record of path and returns the box around all of their
// points. Records without coordinates are ignored.
func Extent(path string) (geom.BBox, error) {
	r, err := Open(path)
	if err != nil {
		return geom.BBox{}, err
	}
	defer r.Close()

	var corners []geom.GeoPoint
	for r.Next() {
		pts := shapePoints(r.Record().Shape)
		if len(pts) == 0 {
			continue
		}
		b := geom.BBoxOf(pts)
		corners = append(corners, geom.GeoPoint{Lon: b.MinX, Lat: b.MinY}, geom.GeoPoint{Lon: b.MaxX, Lat: b.MaxY})
	}
	if err := r.Err(); err != nil {
		return geom.BBox{}, &OpenError{Path: path, Err: err}
	}
	return geom.BBoxOf(corners), nil
}

func shapePoints(s geom.Shape) []geom.GeoPoint {
	switch v := s.(type) {
	case geom.Point:
		return []geom.GeoPoint{v.At}
	case geom.MultiPoint:
		return v.Points
	case geom.Polyline:
		return slices.Concat(v.Parts...)
	case geom.Polygon:
		return slices.Concat(v.Rings...)
	}
	return nil
}
