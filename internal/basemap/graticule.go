package basemap

import (
	"fmt"
	"math"
	"time"

	"nebasemap/internal/assemble"
	"nebasemap/internal/geom"
	"nebasemap/internal/render"
	"nebasemap/internal/source"
	"nebasemap/internal/style"
)

// GraticuleOptions describe the reference grid. Steps and Resolution are in
// degrees.
type GraticuleOptions struct {
	LonStep    float64
	LatStep    float64
	Resolution float64
	Style      style.LayerStyle
	// Equator is drawn on top of the grid with EquatorStyle. When set, the
	// grid itself skips latitude 0.
	Equator      bool
	EquatorStyle style.LayerStyle
}

// DefaultGraticule is a 15 degree grid sampled every degree with a red
// equator.
func DefaultGraticule() GraticuleOptions {
	return GraticuleOptions{
		LonStep:      15,
		LatStep:      15,
		Resolution:   1,
		Style:        style.LayerStyle{Stroke: "gray", Fill: style.None, FillOpacity: 1, StrokeWidth: 0.5},
		Equator:      true,
		EquatorStyle: style.LayerStyle{Stroke: "firebrick", Fill: style.None, FillOpacity: 1, StrokeWidth: 1},
	}
}

func (g GraticuleOptions) withDefaults() GraticuleOptions {
	d := DefaultGraticule()
	if g.LonStep <= 0 {
		g.LonStep = d.LonStep
	}
	if g.LatStep <= 0 {
		g.LatStep = d.LatStep
	}
	if g.Resolution <= 0 {
		g.Resolution = d.Resolution
	}
	return g
}

// Lines returns the meridians then the parallels as polyline records.
func (g GraticuleOptions) Lines() []geom.Record {
	g = g.withDefaults()
	var recs []geom.Record
	n := int(math.Floor(180 / g.LonStep))
	for i := -n; i <= n; i++ {
		lon := float64(i) * g.LonStep
		if lon >= 180 {
			continue
		}
		recs = append(recs, line(samples(-90, 90, g.Resolution, func(lat float64) geom.GeoPoint {
			return geom.GeoPoint{Lon: lon, Lat: lat}
		})))
	}
	m := int(math.Floor(90 / g.LatStep))
	for j := -m; j <= m; j++ {
		lat := float64(j) * g.LatStep
		if math.Abs(lat) >= 90 || (g.Equator && j == 0) {
			continue
		}
		recs = append(recs, parallel(lat, g.Resolution))
	}
	return recs
}

func parallel(lat, res float64) geom.Record {
	return line(samples(-180, 180, res, func(lon float64) geom.GeoPoint {
		return geom.GeoPoint{Lon: lon, Lat: lat}
	}))
}

// samples walks [from, to] in steps of res, always ending exactly at to.
func samples(from, to, res float64, at func(float64) geom.GeoPoint) []geom.GeoPoint {
	n := int(math.Ceil((to - from) / res))
	pts := make([]geom.GeoPoint, 0, n+1)
	for i := 0; i < n; i++ {
		pts = append(pts, at(from+float64(i)*res))
	}
	return append(pts, at(to))
}

func line(pts []geom.GeoPoint) geom.Record {
	return geom.Record{Shape: geom.Polyline{Parts: [][]geom.GeoPoint{pts}}}
}

func (c *Composer) drawGraticule(r *render.Renderer, g GraticuleOptions) (LayerReport, error) {
	start := time.Now()
	g = g.withDefaults()
	lr := LayerReport{Name: "graticule"}
	before := r.Document().Len()
	opts := c.asm
	opts.LabelField = ""
	asm := assemble.New(c.frame, opts)

	if err := drawAll(r, asm, source.FromRecords(g.Lines()), g.Style); err != nil {
		return lr, fmt.Errorf("basemap: graticule: %w", err)
	}
	if g.Equator {
		equator := source.FromRecords([]geom.Record{parallel(0, g.Resolution)})
		if err := drawAll(r, asm, equator, g.EquatorStyle); err != nil {
			return lr, fmt.Errorf("basemap: equator: %w", err)
		}
	}

	lr.Stats = asm.Stats()
	lr.Elements = r.Document().Len() - before
	lr.Duration = time.Since(start)
	Logger().Info("graticule drawn", "lines", lr.Stats.Records, "elements", lr.Elements)
	return lr, nil
}
