// Package sourcetest writes small shapefile fixtures for tests.
package sourcetest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"

	"nebasemap/internal/geom"
)

// Feature is one shape to write, with an optional name attribute.
type Feature struct {
	Shape shp.Shape
	Name  string
}

// Ring builds a closed shapefile ring from lon/lat pairs.
func Ring(lonlat ...float64) []shp.Point {
	pts := Points(lonlat...)
	if len(pts) > 0 && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	return pts
}

// Points builds shapefile points from lon/lat pairs.
func Points(lonlat ...float64) []shp.Point {
	pts := make([]shp.Point, 0, len(lonlat)/2)
	for i := 0; i+1 < len(lonlat); i += 2 {
		pts = append(pts, shp.Point{X: lonlat[i], Y: lonlat[i+1]})
	}
	return pts
}

// Polygon builds a polygon shape from rings, written in the order given.
// Shapefiles wind outer rings clockwise and holes counter-clockwise.
func Polygon(rings ...[]shp.Point) *shp.Polygon {
	p := shp.Polygon(*shp.NewPolyLine(rings))
	return &p
}

// Polyline builds a polyline shape from parts.
func Polyline(parts ...[]shp.Point) *shp.PolyLine {
	return shp.NewPolyLine(parts)
}

// Write creates dir/name.shp (plus .shx and .dbf) holding features and
// returns the .shp path. A NAME attribute column is written when any feature
// has a name.
func Write(t testing.TB, dir, name string, kind shp.ShapeType, features ...Feature) string {
	t.Helper()
	base := filepath.Join(dir, name)
	w, err := shp.Create(base+".shp", kind)
	require.NoError(t, err)

	named := false
	for _, f := range features {
		if f.Name != "" {
			named = true
		}
	}
	if named {
		require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 40)}))
	}
	for _, f := range features {
		row := w.Write(f.Shape)
		if named {
			require.NoError(t, w.WriteAttribute(int(row), 0, f.Name))
		}
	}
	w.Close()

	// The writer names the table "<base>dbf"; readers look for "<base>.dbf".
	if _, err := os.Stat(base + "dbf"); err == nil {
		require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	}
	return base + ".shp"
}

// Square returns a closed lon/lat square of side size with its lower left at
// (lon, lat), as a polygon record.
func Square(lon, lat, size float64) geom.Record {
	return geom.Record{Shape: geom.Polygon{Rings: [][]geom.GeoPoint{{
		{Lon: lon, Lat: lat},
		{Lon: lon + size, Lat: lat},
		{Lon: lon + size, Lat: lat + size},
		{Lon: lon, Lat: lat + size},
		{Lon: lon, Lat: lat},
	}}}}
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimLeft(content, "\n")), 0o644))
	return path
}
