// Package basemap composes a styled map: background, data layers in style
// order, then the optional graticule overlay.
package basemap

import (
	"fmt"
	"time"

	"nebasemap/internal/assemble"
	"nebasemap/internal/projection"
	"nebasemap/internal/render"
	"nebasemap/internal/source"
	"nebasemap/internal/style"
	"nebasemap/internal/vector"
)

// State is the composer's progress through a render. It only moves forward.
type State int

const (
	Init State = iota
	BackgroundDrawn
	LayersDrawn
	OverlaysDrawn
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case BackgroundDrawn:
		return "background-drawn"
	case LayersDrawn:
		return "layers-drawn"
	case OverlaysDrawn:
		return "overlays-drawn"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures a Composer.
type Option func(*Composer)

// WithDataDir resolves relative layer sources against dir.
func WithDataDir(dir string) Option {
	return func(c *Composer) { c.dataDir = dir }
}

// WithAssembleOptions overrides labeling and rim sampling.
func WithAssembleOptions(o assemble.Options) Option {
	return func(c *Composer) { c.asm = o }
}

// WithGraticule draws the grid and equator after the data layers.
func WithGraticule(g GraticuleOptions) Option {
	return func(c *Composer) { c.graticule = &g }
}

// WithObserver reports layer progress to o.
func WithObserver(o Observer) Option {
	return func(c *Composer) { c.observer = o }
}

// Composer renders one map. It is single use: create a new one per render.
type Composer struct {
	frame     projection.Frame
	dataDir   string
	asm       assemble.Options
	graticule *GraticuleOptions
	observer  Observer
	state     State
}

func New(frame projection.Frame, opts ...Option) *Composer {
	c := &Composer{
		frame:   frame,
		dataDir: style.DefaultDataDir,
		asm:     assemble.DefaultOptions(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State reports how far the render got.
func (c *Composer) State() State { return c.state }

// Render draws s and returns the finished document. Any layer that cannot be
// opened or read aborts the render with a *LayerError and no document; a
// failing graticule aborts it too.
func (c *Composer) Render(s style.Style) (*vector.Document, Report, error) {
	if c.state != Init {
		return nil, Report{}, ErrAlreadyRendered
	}
	start := time.Now()
	rep := Report{Style: s.Name}
	log := Logger().With("style", s.Name)

	for _, l := range s.Layers {
		path := l.Path(c.dataDir)
		if err := source.Stat(path); err != nil {
			c.state = Failed
			return nil, rep, &LayerError{Layer: l.Name(), Path: path, Err: err}
		}
	}

	doc := vector.New(c.frame.Cols, c.frame.Rows)
	doc.Title = s.Name
	r := render.New(doc)

	r.DrawBackground(s.Background.Style)
	c.state = BackgroundDrawn

	for i, l := range s.Layers {
		if c.observer != nil {
			c.observer.LayerStarted(i, len(s.Layers), l.Name())
		}
		lr, err := c.drawLayer(r, l)
		if err != nil {
			c.state = Failed
			return nil, rep, err
		}
		rep.Layers = append(rep.Layers, lr)
		log.Info("layer drawn", "layer", lr.Name, "records", lr.Stats.Records,
			"features", lr.Stats.Features, "elements", lr.Elements, "took", lr.Duration)
		if lr.Stats.Dropped > 0 || lr.Stats.Skipped > 0 {
			log.Debug("layer culled", "layer", lr.Name, "dropped", lr.Stats.Dropped, "skipped", lr.Stats.Skipped)
		}
		if c.observer != nil {
			c.observer.LayerDone(i, len(s.Layers), lr)
		}
	}
	c.state = LayersDrawn

	if c.graticule != nil {
		gr, err := c.drawGraticule(r, *c.graticule)
		if err != nil {
			c.state = Failed
			return nil, rep, err
		}
		rep.Graticule = &gr
		c.state = OverlaysDrawn
	}

	rep.Elements = doc.Len()
	rep.Duration = time.Since(start)
	c.state = Done
	log.Info("render done", "elements", rep.Elements, "took", rep.Duration)
	return doc, rep, nil
}

func (c *Composer) drawLayer(r *render.Renderer, l style.Layer) (LayerReport, error) {
	start := time.Now()
	path := l.Path(c.dataDir)
	lr := LayerReport{Name: l.Name(), Path: path}
	Logger().Info("layer started", "layer", lr.Name, "path", path)

	src, err := source.Open(path)
	if err != nil {
		return lr, &LayerError{Layer: lr.Name, Path: path, Err: err}
	}
	defer src.Close()

	before := r.Document().Len()
	asm := assemble.New(c.frame, c.asm)
	if err := drawAll(r, asm, src, l.Style); err != nil {
		return lr, &LayerError{Layer: lr.Name, Path: path, Err: err}
	}
	lr.Stats = asm.Stats()
	lr.Elements = r.Document().Len() - before
	lr.Duration = time.Since(start)
	return lr, nil
}

// drawAll streams src through the assembler into the renderer.
func drawAll(r *render.Renderer, asm *assemble.Assembler, src source.Reader, s style.LayerStyle) error {
	for src.Next() {
		for _, f := range asm.Assemble(src.Record()) {
			if err := r.Draw(f, s); err != nil {
				return err
			}
		}
	}
	return src.Err()
}
