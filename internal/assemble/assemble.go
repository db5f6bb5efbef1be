// Package assemble turns shape records into screen-space point sequences
// under the projection of a map frame, culling what cannot be seen.
package assemble

import (
	"nebasemap/internal/geom"
	"nebasemap/internal/projection"
)

// MinOrthographicPoints is the shortest sequence kept after horizon culling.
const MinOrthographicPoints = 4

// FeatureKind says which primitive a Feature becomes.
type FeatureKind int

const (
	Area FeatureKind = iota + 1
	Line
	Marker
)

func (k FeatureKind) String() string {
	switch k {
	case Area:
		return "area"
	case Line:
		return "line"
	case Marker:
		return "marker"
	}
	return "unknown"
}

// Feature is one drawable sequence. Area sequences are closed by the
// renderer; Line sequences stay open; a Marker has exactly one point.
type Feature struct {
	Kind   FeatureKind
	Points []geom.ScreenPoint
	Label  string
}

// Stats counts what happened to the records of one layer.
type Stats struct {
	Records  int
	Features int
	Dropped  int
	Skipped  int
}

// Options tune the assembler.
type Options struct {
	// LabelField names the attribute used as marker text; empty disables labels.
	LabelField string
	// RimStep is the angular step, in radians, used when walking the globe rim.
	RimStep float64
}

// DefaultOptions labels points with Natural Earth's "name" attribute.
func DefaultOptions() Options {
	return Options{LabelField: "name", RimStep: projection.DefaultRimStep}
}

// Assembler projects the records of one layer. It is not safe for concurrent use.
type Assembler struct {
	frame projection.Frame
	opts  Options
	stats Stats
}

func New(frame projection.Frame, opts Options) *Assembler {
	if opts.RimStep <= 0 {
		opts.RimStep = projection.DefaultRimStep
	}
	return &Assembler{frame: frame, opts: opts}
}

// Stats returns the counters accumulated so far.
func (a *Assembler) Stats() Stats { return a.stats }

// Assemble returns the features of rec in drawing order. Records whose
// geometry the pipeline does not draw yield nothing and count as skipped.
func (a *Assembler) Assemble(rec geom.Record) []Feature {
	a.stats.Records++
	var out []Feature
	switch s := rec.Shape.(type) {
	case geom.Polygon:
		if a.frame.Mode == projection.Orthographic {
			out = a.appendRings(out, s.Rings)
			break
		}
		for _, ring := range s.Rings {
			out = a.appendSequences(out, ring, true)
		}
	case geom.Polyline:
		for _, part := range s.Parts {
			out = a.appendSequences(out, part, false)
		}
	case geom.Point:
		out = a.appendMarker(out, s.At, a.label(rec))
	case geom.MultiPoint:
		label := a.label(rec)
		for _, p := range s.Points {
			out = a.appendMarker(out, p, label)
		}
	default:
		a.stats.Skipped++
		return nil
	}
	a.stats.Features += len(out)
	return out
}

func (a *Assembler) label(rec geom.Record) string {
	if a.opts.LabelField == "" {
		return ""
	}
	return rec.Attrs.Get(a.opts.LabelField)
}

func (a *Assembler) appendSequences(out []Feature, pts []geom.GeoPoint, closed bool) []Feature {
	kind := Line
	if closed {
		kind = Area
	}
	if len(pts) == 0 {
		a.stats.Dropped++
		return out
	}

	switch a.frame.Mode {
	case projection.Orthographic:
		pieces := a.clipPart(pts)
		if len(pieces) == 0 {
			a.stats.Dropped++
		}
		out = a.appendPieces(out, kind, pieces)
	default:
		seq := projection.ProjectAll(pts, a.frame)
		// Polygons are kept even when entirely off-frame: oceans and other
		// large fills legitimately enclose the whole frame.
		if !closed && !a.anyInside(seq) {
			a.stats.Dropped++
			return out
		}
		out = append(out, Feature{Kind: kind, Points: seq})
	}
	return out
}

// appendRings clips all rings of one polygon against the horizon together,
// since a ring cut by the horizon may close along the rim through another.
func (a *Assembler) appendRings(out []Feature, rings [][]geom.GeoPoint) []Feature {
	seqs, hidden := a.clipRings(rings)
	a.stats.Dropped += hidden
	return a.appendPieces(out, Area, seqs)
}

func (a *Assembler) appendPieces(out []Feature, kind FeatureKind, pieces [][]geom.ScreenPoint) []Feature {
	for _, seq := range pieces {
		if len(seq) < MinOrthographicPoints {
			a.stats.Dropped++
			continue
		}
		out = append(out, Feature{Kind: kind, Points: seq})
	}
	return out
}

func (a *Assembler) anyInside(seq []geom.ScreenPoint) bool {
	for _, p := range seq {
		if a.frame.Contains(p) {
			return true
		}
	}
	return false
}

func (a *Assembler) appendMarker(out []Feature, g geom.GeoPoint, label string) []Feature {
	var (
		sp geom.ScreenPoint
		ok bool
	)
	switch a.frame.Mode {
	case projection.Orthographic:
		p := a.frame.Orient(g)
		if projection.IsVisible(p, a.frame.Camera) {
			sp, ok = projection.ProjectOrthographic(p, a.frame)
		}
	default:
		sp = projection.ProjectEquirectangular(g, a.frame)
		ok = a.frame.Contains(sp)
	}
	if !ok {
		a.stats.Dropped++
		return out
	}
	return append(out, Feature{Kind: Marker, Points: []geom.ScreenPoint{sp}, Label: label})
}
