package basemap

import (
	"time"

	"nebasemap/internal/assemble"
)

// LayerReport summarizes one drawn layer.
type LayerReport struct {
	Name     string
	Path     string
	Stats    assemble.Stats
	Elements int
	Duration time.Duration
}

// Report summarizes a render.
type Report struct {
	Style     string
	Layers    []LayerReport
	Graticule *LayerReport
	Elements  int
	Duration  time.Duration
}

// Totals adds up the per-layer counters, graticule included.
func (r Report) Totals() assemble.Stats {
	var t assemble.Stats
	add := func(s assemble.Stats) {
		t.Records += s.Records
		t.Features += s.Features
		t.Dropped += s.Dropped
		t.Skipped += s.Skipped
	}
	for _, l := range r.Layers {
		add(l.Stats)
	}
	if r.Graticule != nil {
		add(r.Graticule.Stats)
	}
	return t
}

// Observer follows a render layer by layer. Calls happen on the rendering
// goroutine, in layer order.
type Observer interface {
	LayerStarted(index, total int, name string)
	LayerDone(index, total int, report LayerReport)
}
