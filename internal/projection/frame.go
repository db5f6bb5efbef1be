package projection

import (
	"fmt"

	"github.com/paulmach/orb"

	"nebasemap/internal/geom"
)

// Mode selects how a Frame maps the globe onto pixels.
type Mode int

const (
	Equirectangular Mode = iota
	Orthographic
)

func (m Mode) String() string {
	switch m {
	case Equirectangular:
		return "equirectangular"
	case Orthographic:
		return "orthographic"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "equirectangular", "":
		return Equirectangular, nil
	case "orthographic":
		return Orthographic, nil
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}

// DefaultCamera sits far out on the +X axis, looking at lon=0, lat=0.
var DefaultCamera = geom.Point3D{X: 100}

// Frame describes the target raster and what part of the globe it shows.
// Bounds is used in Equirectangular mode; Camera and Rotation in Orthographic mode.
type Frame struct {
	Mode     Mode
	Rows     int
	Cols     int
	Bounds   geom.BBox
	Camera   geom.Point3D
	Rotation Rotation
}

// ErrInvalidFrame reports a frame that cannot be projected onto.
type ErrInvalidFrame struct {
	Reason string
}

func (e *ErrInvalidFrame) Error() string {
	return "invalid map frame: " + e.Reason
}

// NewEquirectangularFrame returns a frame of cols x rows pixels covering bounds.
func NewEquirectangularFrame(cols, rows int, bounds geom.BBox) (Frame, error) {
	if err := checkSize(cols, rows); err != nil {
		return Frame{}, err
	}
	if bounds.MaxX <= bounds.MinX {
		return Frame{}, &ErrInvalidFrame{Reason: fmt.Sprintf("lon_min %g must be below lon_max %g", bounds.MinX, bounds.MaxX)}
	}
	if bounds.MaxY <= bounds.MinY {
		return Frame{}, &ErrInvalidFrame{Reason: fmt.Sprintf("lat_min %g must be below lat_max %g", bounds.MinY, bounds.MaxY)}
	}
	return Frame{Mode: Equirectangular, Rows: rows, Cols: cols, Bounds: bounds}, nil
}

// NewOrthographicFrame returns a globe view of cols x rows pixels seen from
// camera, which must sit on the +X axis beyond the sphere. The sphere is
// turned by rot before projection.
func NewOrthographicFrame(cols, rows int, camera geom.Point3D, rot Rotation) (Frame, error) {
	if err := checkSize(cols, rows); err != nil {
		return Frame{}, err
	}
	if camera.Norm() <= 1 {
		return Frame{}, &ErrInvalidFrame{Reason: "camera must lie outside the unit sphere"}
	}
	// the projection plane is (y, z) as seen from +X; Rotation turns the globe instead
	if camera.Y != 0 || camera.Z != 0 || camera.X <= 0 {
		return Frame{}, &ErrInvalidFrame{Reason: fmt.Sprintf("camera (%g, %g, %g) must lie on the +X axis", camera.X, camera.Y, camera.Z)}
	}
	return Frame{Mode: Orthographic, Rows: rows, Cols: cols, Camera: camera, Rotation: rot}, nil
}

func checkSize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return &ErrInvalidFrame{Reason: fmt.Sprintf("size %dx%d must be positive", cols, rows)}
	}
	return nil
}

// Rect is the pixel rectangle [0,cols]x[0,rows].
func (f Frame) Rect() orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{float64(f.Cols), float64(f.Rows)}}
}

// Contains reports whether p lies inside the pixel rectangle, edges included.
func (f Frame) Contains(p geom.ScreenPoint) bool {
	return f.Rect().Contains(orb.Point{p.X, p.Y})
}

// scale maps normalized [0,1] coordinates to pixels, flipping y so north is up.
func (f Frame) scale(nx, ny float64) geom.ScreenPoint {
	cols, rows := float64(f.Cols), float64(f.Rows)
	return geom.ScreenPoint{X: cols * nx, Y: rows - rows*ny}
}
