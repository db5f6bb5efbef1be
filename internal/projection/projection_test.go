package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebasemap/internal/geom"
)

const tol = 1e-9

func worldFrame(t *testing.T) Frame {
	t.Helper()
	f, err := NewEquirectangularFrame(200, 100, geom.BBox{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90})
	require.NoError(t, err)
	return f
}

func TestEquirectangularScenario(t *testing.T) {
	f := worldFrame(t)
	got := ProjectEquirectangular(geom.GeoPoint{Lon: 0, Lat: 0}, f)
	assert.InDelta(t, 100, got.X, tol)
	assert.InDelta(t, 50, got.Y, tol)
}

func TestEquirectangularBoundaries(t *testing.T) {
	f, err := NewEquirectangularFrame(16000, 8000, geom.BBox{MinX: -170, MinY: -80, MaxX: 170, MaxY: 80})
	require.NoError(t, err)

	lo := ProjectEquirectangular(geom.GeoPoint{Lon: -170, Lat: -80}, f)
	assert.InDelta(t, 0, lo.X, tol)
	assert.InDelta(t, 8000, lo.Y, tol)

	hi := ProjectEquirectangular(geom.GeoPoint{Lon: 170, Lat: 80}, f)
	assert.InDelta(t, 16000, hi.X, tol)
	assert.InDelta(t, 0, hi.Y, tol)
}

func TestEquirectangularInsideStaysInside(t *testing.T) {
	frames := []geom.BBox{
		{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90},
		{MinX: -10, MinY: 35, MaxX: 30, MaxY: 60},
		{MinX: 100.5, MinY: -45.25, MaxX: 179.9, MaxY: -10},
	}
	for _, b := range frames {
		f, err := NewEquirectangularFrame(640, 480, b)
		require.NoError(t, err)
		for i := 1; i < 20; i++ {
			for j := 1; j < 20; j++ {
				p := geom.GeoPoint{
					Lon: b.MinX + (b.MaxX-b.MinX)*float64(i)/20,
					Lat: b.MinY + (b.MaxY-b.MinY)*float64(j)/20,
				}
				assert.True(t, f.Contains(ProjectEquirectangular(p, f)), "point %v", p)
			}
		}
	}
}

func TestEquirectangularDoesNotClamp(t *testing.T) {
	f, err := NewEquirectangularFrame(100, 100, geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	require.NoError(t, err)
	got := ProjectEquirectangular(geom.GeoPoint{Lon: 20, Lat: -10}, f)
	assert.InDelta(t, 200, got.X, tol)
	assert.InDelta(t, 200, got.Y, tol)
	assert.False(t, f.Contains(got))
}

func TestNewFrameRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		bounds     geom.BBox
	}{
		{"zero cols", 0, 10, geom.BBox{MaxX: 1, MaxY: 1}},
		{"negative rows", 10, -1, geom.BBox{MaxX: 1, MaxY: 1}},
		{"flat lon", 10, 10, geom.BBox{MinX: 5, MaxX: 5, MaxY: 1}},
		{"inverted lat", 10, 10, geom.BBox{MaxX: 1, MinY: 3, MaxY: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEquirectangularFrame(tt.cols, tt.rows, tt.bounds)
			var fe *ErrInvalidFrame
			assert.True(t, errors.As(err, &fe))
		})
	}

	for _, cam := range []geom.Point3D{
		{X: 0.5},
		{X: -100},
		{Y: 100},
		{X: 100, Z: 3},
	} {
		_, err := NewOrthographicFrame(10, 10, cam, Rotation{})
		var fe *ErrInvalidFrame
		assert.True(t, errors.As(err, &fe), "camera %v", cam)
	}
	_, err := NewOrthographicFrame(10, 10, geom.Point3D{X: 3}, Rotation{})
	assert.NoError(t, err)
}

func TestToUnitSphere(t *testing.T) {
	tests := []struct {
		p    geom.GeoPoint
		want geom.Point3D
	}{
		{geom.GeoPoint{Lon: 0, Lat: 0}, geom.Point3D{X: 1}},
		{geom.GeoPoint{Lon: 90, Lat: 0}, geom.Point3D{Y: 1}},
		{geom.GeoPoint{Lon: 0, Lat: 90}, geom.Point3D{Z: 1}},
		{geom.GeoPoint{Lon: 180, Lat: 0}, geom.Point3D{X: -1}},
	}
	for _, tt := range tests {
		got := ToUnitSphere(tt.p)
		assert.InDelta(t, tt.want.X, got.X, tol)
		assert.InDelta(t, tt.want.Y, got.Y, tol)
		assert.InDelta(t, tt.want.Z, got.Z, tol)
		assert.InDelta(t, 1, got.Norm(), tol)
	}
}

func TestVisibility(t *testing.T) {
	camera := geom.Point3D{X: 100}
	assert.True(t, IsVisible(ToUnitSphere(geom.GeoPoint{Lon: 0, Lat: 0}), camera))
	assert.False(t, IsVisible(ToUnitSphere(geom.GeoPoint{Lon: 180, Lat: 0}), camera))

	// camera on the point itself
	p := geom.Point3D{X: 1}
	assert.False(t, IsVisible(p, p))
}

func TestOrthographicClampsHiddenToRim(t *testing.T) {
	camera := DefaultCamera
	for lon := 95.0; lon < 270; lon += 7 {
		for lat := -80.0; lat <= 80; lat += 20 {
			p := ToUnitSphere(geom.GeoPoint{Lon: lon, Lat: lat})
			if IsVisible(p, camera) {
				continue
			}
			u, v, ok := PlaneUV(p, camera)
			require.True(t, ok)
			assert.InDelta(t, 1, u*u+v*v, 1e-9, "lon=%v lat=%v", lon, lat)
		}
	}
}

func TestOrthographicCenterAndAntipode(t *testing.T) {
	f, err := NewOrthographicFrame(200, 100, DefaultCamera, Rotation{})
	require.NoError(t, err)

	got, ok := ProjectOrthographic(f.Orient(geom.GeoPoint{}), f)
	require.True(t, ok)
	assert.InDelta(t, 100, got.X, tol)
	assert.InDelta(t, 50, got.Y, tol)

	north, ok := ProjectOrthographic(f.Orient(geom.GeoPoint{Lat: 90}), f)
	require.True(t, ok)
	assert.InDelta(t, 100, north.X, tol)
	assert.InDelta(t, 0, north.Y, tol)

	_, ok = ProjectOrthographic(geom.Point3D{X: -1}, f)
	assert.False(t, ok, "antipode has no rim direction")
}

func TestCenteredOnBringsCenterToCameraAxis(t *testing.T) {
	for _, c := range []geom.GeoPoint{{Lon: -140, Lat: 0}, {Lon: 20, Lat: 45}, {Lon: 120, Lat: -30}} {
		p := Rotate(ToUnitSphere(c), CenteredOn(c.Lon, c.Lat))
		assert.InDelta(t, 1, p.X, 1e-9, "center %v", c)
		assert.InDelta(t, 0, p.Y, 1e-9)
		assert.InDelta(t, 0, p.Z, 1e-9)
	}
}

func TestRotatePreservesLength(t *testing.T) {
	r := Rotation{Roll: 0.3, Pitch: -1.1, Yaw: 2.4}
	p := ToUnitSphere(geom.GeoPoint{Lon: 33, Lat: -12})
	assert.InDelta(t, 1, Rotate(p, r).Norm(), tol)

	yaw := Rotate(geom.Point3D{X: 1}, Rotation{Yaw: math.Pi / 2})
	assert.InDelta(t, 0, yaw.X, tol)
	assert.InDelta(t, 1, yaw.Y, tol)
}

func TestHorizonCrossing(t *testing.T) {
	camera := DefaultCamera
	a := ToUnitSphere(geom.GeoPoint{Lon: 60, Lat: 10})
	b := ToUnitSphere(geom.GeoPoint{Lon: 120, Lat: 10})
	require.True(t, IsVisible(a, camera))
	require.False(t, IsVisible(b, camera))

	c := HorizonCrossing(a, b, camera)
	assert.True(t, IsVisible(c, camera))
	assert.InDelta(t, 1, c.Norm(), 1e-9)
	// the horizon for this camera is the plane x = 1/100
	assert.InDelta(t, 0.01, c.X, 1e-6)
}

func TestRimArc(t *testing.T) {
	f, err := NewOrthographicFrame(200, 200, DefaultCamera, Rotation{})
	require.NoError(t, err)

	pts := f.RimArc(0, math.Pi/2, 0.2)
	require.Len(t, pts, 7)
	for _, p := range pts {
		u := p.X/100 - 1
		v := 1 - p.Y/100
		assert.InDelta(t, 1, u*u+v*v, 1e-9)
	}

	// negative sweeps run clockwise: 170deg down through zero to -170deg
	pts = f.RimArc(170*math.Pi/180, -340*math.Pi/180, math.Pi/180)
	require.GreaterOrEqual(t, len(pts), 339)
	assert.Greater(t, pts[len(pts)/2].X, 190.0)

	// a full turn the other way passes through 180deg
	pts = f.RimArc(170*math.Pi/180, 20*math.Pi/180, math.Pi/180)
	require.NotEmpty(t, pts)
	for _, p := range pts {
		assert.Less(t, p.X, 10.0)
	}

	assert.Empty(t, f.RimArc(0, 0.001, math.Pi/18))
	assert.Empty(t, f.RimArc(0, -0.001, math.Pi/18))
}

func TestUnrotateInvertsRotate(t *testing.T) {
	r := Rotation{Roll: 0.3, Pitch: -1.1, Yaw: 2.4}
	p := ToUnitSphere(geom.GeoPoint{Lon: 33, Lat: -12})
	q := Unrotate(Rotate(p, r), r)
	assert.InDelta(t, p.X, q.X, tol)
	assert.InDelta(t, p.Y, q.Y, tol)
	assert.InDelta(t, p.Z, q.Z, tol)
}

func TestFrameCenter(t *testing.T) {
	for _, c := range []geom.GeoPoint{{Lon: 0, Lat: 0}, {Lon: -74, Lat: 40.7}, {Lon: 151.2, Lat: -33.9}} {
		f, err := NewOrthographicFrame(100, 100, DefaultCamera, CenteredOn(c.Lon, c.Lat))
		require.NoError(t, err)
		got := f.Center()
		assert.InDelta(t, c.Lon, got.Lon, 1e-9)
		assert.InDelta(t, c.Lat, got.Lat, 1e-9)
	}
}

func TestProjectAllPreservesOrder(t *testing.T) {
	f := worldFrame(t)
	pts := make([]geom.GeoPoint, parallelThreshold*3+17)
	for i := range pts {
		pts[i] = geom.GeoPoint{Lon: -180 + 360*float64(i)/float64(len(pts)), Lat: math.Sin(float64(i)) * 80}
	}
	got := ProjectAll(pts, f)
	require.Len(t, got, len(pts))
	for i, p := range pts {
		if got[i] != ProjectEquirectangular(p, f) {
			t.Fatalf("point %d out of order", i)
		}
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("orthographic")
	require.NoError(t, err)
	assert.Equal(t, Orthographic, m)
	assert.Equal(t, "equirectangular", Equirectangular.String())
	_, err = ParseMode("mercator")
	assert.Error(t, err)
}
