package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebasemap/internal/geom"
	"nebasemap/internal/source/sourcetest"
)

func readAll(t *testing.T, path string) []geom.Record {
	t.Helper()
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	var recs []geom.Record
	for r.Next() {
		recs = append(recs, r.Record())
	}
	require.NoError(t, r.Err())
	return recs
}

func TestShapefilePolygons(t *testing.T) {
	dir := t.TempDir()
	path := sourcetest.Write(t, dir, "land", shp.POLYGON,
		sourcetest.Feature{
			Shape: sourcetest.Polygon(
				sourcetest.Ring(0, 0, 10, 0, 10, 10, 0, 10),
				sourcetest.Ring(2, 2, 4, 2, 4, 4),
			),
			Name: "island",
		},
		sourcetest.Feature{Shape: sourcetest.Polygon(sourcetest.Ring(20, 20, 30, 20, 30, 30))},
	)

	recs := readAll(t, path)
	require.Len(t, recs, 2)

	p, ok := recs[0].Shape.(geom.Polygon)
	require.True(t, ok, "got %T", recs[0].Shape)
	require.Len(t, p.Rings, 2)
	assert.Len(t, p.Rings[0], 5)
	assert.Len(t, p.Rings[1], 4)
	assert.Equal(t, geom.GeoPoint{Lon: 10, Lat: 10}, p.Rings[0][2])
	assert.Equal(t, "island", recs[0].Attrs.Get("name"))
	assert.Equal(t, "", recs[1].Attrs.Get("name"))
}

func TestExtent(t *testing.T) {
	dir := t.TempDir()
	path := sourcetest.Write(t, dir, "land", shp.POLYGON,
		sourcetest.Feature{Shape: sourcetest.Polygon(sourcetest.Ring(0, 0, 0, 10, 10, 10, 10, 0))},
		sourcetest.Feature{Shape: sourcetest.Polygon(sourcetest.Ring(-20, 5, -15, 30, -10, 5))},
	)
	b, err := Extent(path)
	require.NoError(t, err)
	assert.Equal(t, geom.BBox{MinX: -20, MinY: 0, MaxX: 10, MaxY: 30}, b)
	assert.True(t, b.Valid())

	empty := sourcetest.WriteFile(t, dir, "empty.geojson", `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {}, "geometry": null}]}`)
	b, err = Extent(empty)
	require.NoError(t, err)
	assert.False(t, b.Valid())

	_, err = Extent(filepath.Join(dir, "missing.shp"))
	var oe *OpenError
	assert.True(t, errors.As(err, &oe))
}

func TestShapefilePolylinesAndPoints(t *testing.T) {
	dir := t.TempDir()
	rivers := sourcetest.Write(t, dir, "rivers", shp.POLYLINE,
		sourcetest.Feature{Shape: sourcetest.Polyline(
			sourcetest.Points(0, 0, 1, 1, 2, 0),
			sourcetest.Points(5, 5, 6, 6),
		)},
	)
	recs := readAll(t, rivers)
	require.Len(t, recs, 1)
	pl, ok := recs[0].Shape.(geom.Polyline)
	require.True(t, ok)
	require.Len(t, pl.Parts, 2)
	assert.Len(t, pl.Parts[0], 3)
	assert.Len(t, pl.Parts[1], 2)
	assert.Nil(t, recs[0].Attrs)

	places := sourcetest.Write(t, dir, "places", shp.POINT,
		sourcetest.Feature{Shape: &shp.Point{X: 2.35, Y: 48.85}, Name: "Paris"},
		sourcetest.Feature{Shape: &shp.Point{X: -0.12, Y: 51.5}, Name: "London"},
	)
	recs = readAll(t, places)
	require.Len(t, recs, 2)
	assert.Equal(t, geom.Point{At: geom.GeoPoint{Lon: 2.35, Lat: 48.85}}, recs[0].Shape)
	assert.Equal(t, "London", recs[1].Attrs.Get("NAME"))
}

func TestConvertShapeVariants(t *testing.T) {
	z := &shp.PolygonZ{Parts: []int32{0}, Points: sourcetest.Ring(0, 0, 1, 0, 1, 1)}
	assert.Equal(t, geom.KindPolygon, convertShape(z).Kind())

	m := &shp.PolyLineM{Parts: []int32{0}, Points: sourcetest.Points(0, 0, 1, 1)}
	assert.Equal(t, geom.KindPolyline, convertShape(m).Kind())

	mp := &shp.MultiPoint{Points: sourcetest.Points(0, 0, 1, 1, 2, 2)}
	got, ok := convertShape(mp).(geom.MultiPoint)
	require.True(t, ok)
	assert.Len(t, got.Points, 3)

	assert.Equal(t, geom.Unsupported{Type: "MultiPatch"}, convertShape(&shp.MultiPatch{}))
	assert.Equal(t, geom.Unsupported{Type: "Null"}, convertShape(&shp.Null{}))
}

func TestSplitPartsClampsDamagedOffsets(t *testing.T) {
	pts := sourcetest.Points(0, 0, 1, 1, 2, 2, 3, 3)
	parts := splitParts([]int32{0, 2, 9}, pts)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 2)
	assert.Len(t, parts[1], 2)

	assert.Len(t, splitParts(nil, pts), 1)
	assert.Nil(t, splitParts(nil, nil))
}

func TestGeoJSON(t *testing.T) {
	dir := t.TempDir()
	fc := sourcetest.WriteFile(t, dir, "overlay.geojson", `
{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {"name": "Reykjavik", "pop": 131136},
   "geometry": {"type": "Point", "coordinates": [-21.9, 64.1]}},
  {"type": "Feature", "properties": {"name": "route"},
   "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1], [2, 0]]}},
  {"type": "Feature", "properties": null,
   "geometry": {"type": "MultiPolygon", "coordinates": [
     [[[0, 0], [1, 0], [1, 1], [0, 0]]],
     [[[5, 5], [6, 5], [6, 6], [5, 5]]]]}},
  {"type": "Feature", "properties": {}, "geometry": null}
]}`)

	recs := readAll(t, fc)
	require.Len(t, recs, 4)
	assert.Equal(t, geom.Point{At: geom.GeoPoint{Lon: -21.9, Lat: 64.1}}, recs[0].Shape)
	assert.Equal(t, "Reykjavik", recs[0].Attrs.Get("name"))
	assert.Equal(t, "131136", recs[0].Attrs.Get("pop"))
	assert.Equal(t, geom.KindPolyline, recs[1].Shape.Kind())
	poly, ok := recs[2].Shape.(geom.Polygon)
	require.True(t, ok)
	assert.Len(t, poly.Rings, 2)
	// both members wind counter-clockwise on disk and come out clockwise
	assert.Equal(t, orb.CW, toOrbRing(poly.Rings[0]).Orientation())
	assert.Equal(t, orb.CW, toOrbRing(poly.Rings[1]).Orientation())
	assert.Equal(t, geom.GeoPoint{Lon: 1, Lat: 1}, poly.Rings[0][1])
	assert.Equal(t, geom.KindUnsupported, recs[3].Shape.Kind())

	bare := sourcetest.WriteFile(t, dir, "bare.json",
		`{"type": "GeometryCollection", "geometries": [
		  {"type": "Point", "coordinates": [1, 2]},
		  {"type": "Point", "coordinates": [3, 4]}]}`)
	recs = readAll(t, bare)
	require.Len(t, recs, 2)
	assert.Equal(t, geom.Point{At: geom.GeoPoint{Lon: 3, Lat: 4}}, recs[1].Shape)

	bad := sourcetest.WriteFile(t, dir, "bad.geojson", `{"features": []}`)
	_, err := Open(bad)
	assert.Error(t, err)
}

func TestWKT(t *testing.T) {
	dir := t.TempDir()
	path := sourcetest.WriteFile(t, dir, "shapes.wkt", `
# test shapes
POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))

LINESTRING(0 0, 5 5)
`)
	recs := readAll(t, path)
	require.Len(t, recs, 2)
	poly, ok := recs[0].Shape.(geom.Polygon)
	require.True(t, ok)
	assert.Equal(t, orb.CW, toOrbRing(poly.Rings[0]).Orientation())
	assert.Equal(t, geom.KindPolyline, recs[1].Shape.Kind())

	broken := sourcetest.WriteFile(t, dir, "broken.wkt", "POLYGON((0 0, 1")
	_, err := Open(broken)
	assert.Error(t, err)
}

func TestCSV(t *testing.T) {
	dir := t.TempDir()
	path := sourcetest.WriteFile(t, dir, "cities.csv", `
Name,Latitude,Longitude
Oslo,59.91,10.75
Nowhere,abc,1
Lima, -12.04, -77.04
`)
	recs := readAll(t, path)
	require.Len(t, recs, 2)
	assert.Equal(t, geom.Point{At: geom.GeoPoint{Lon: 10.75, Lat: 59.91}}, recs[0].Shape)
	assert.Equal(t, "Oslo", recs[0].Attrs.Get("name"))
	assert.Equal(t, geom.Point{At: geom.GeoPoint{Lon: -77.04, Lat: -12.04}}, recs[1].Shape)

	nocols := sourcetest.WriteFile(t, dir, "nocols.csv", "a,b\n1,2\n")
	_, err := Open(nocols)
	assert.ErrorContains(t, err, "columns not found")
}

func TestKML(t *testing.T) {
	dir := t.TempDir()
	path := sourcetest.WriteFile(t, dir, "places.kml", `
<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark>
        <name>Summit</name>
        <Point><coordinates>86.925,27.988,8848</coordinates></Point>
      </Placemark>
    </Folder>
    <Placemark>
      <name>Trail</name>
      <LineString><coordinates>0,0 1,1 2,2</coordinates></LineString>
    </Placemark>
    <Placemark>
      <Polygon>
        <outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,0</coordinates></LinearRing></outerBoundaryIs>
        <innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
      </Polygon>
    </Placemark>
  </Document>
</kml>`)
	recs := readAll(t, path)
	require.Len(t, recs, 3)
	assert.Equal(t, geom.Point{At: geom.GeoPoint{Lon: 86.925, Lat: 27.988}}, recs[0].Shape)
	assert.Equal(t, "Summit", recs[0].Attrs.Get("name"))
	assert.Equal(t, geom.KindPolyline, recs[1].Shape.Kind())
	poly, ok := recs[2].Shape.(geom.Polygon)
	require.True(t, ok)
	assert.Len(t, poly.Rings, 2)
	assert.Equal(t, orb.CW, toOrbRing(poly.Rings[0]).Orientation())
	assert.Equal(t, orb.CCW, toOrbRing(poly.Rings[1]).Orientation())
	assert.Nil(t, recs[2].Attrs)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.shp"))
	var oe *OpenError
	require.True(t, errors.As(err, &oe))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Open(filepath.Join(dir, "layer.gpkg"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	path := sourcetest.WriteFile(t, dir, "a.wkt", "POINT(1 2)")
	assert.NoError(t, Stat(path))
	assert.ErrorIs(t, Stat(filepath.Join(dir, "b.wkt")), os.ErrNotExist)
	assert.ErrorIs(t, Stat(filepath.Join(dir, "a.txt")), ErrUnsupportedFormat)

	sub := filepath.Join(dir, "d.shp")
	require.NoError(t, os.Mkdir(sub, 0o755))
	assert.ErrorContains(t, Stat(sub), "directory")
}

func TestFromRecords(t *testing.T) {
	r := FromRecords([]geom.Record{sourcetest.Square(0, 0, 1), sourcetest.Square(5, 5, 1)})
	n := 0
	for r.Next() {
		assert.Equal(t, geom.KindPolygon, r.Record().Shape.Kind())
		n++
	}
	assert.Equal(t, 2, n)
	assert.NoError(t, r.Err())
	assert.NoError(t, r.Close())
}
