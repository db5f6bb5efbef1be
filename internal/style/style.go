// Package style describes how layers look: colors, opacity and stroke widths,
// plus the built-in catalogs and YAML style files.
package style

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDataDir is where catalog filenames are resolved.
const DefaultDataDir = "data/10m_physical"

// LayerStyle is the paint applied to every feature of a layer.
type LayerStyle struct {
	Stroke      string  `yaml:"stroke"`
	Fill        string  `yaml:"fill"`
	FillOpacity float64 `yaml:"fill_opacity"`
	StrokeWidth float64 `yaml:"stroke_width"`
}

// UnmarshalYAML fills in a fill_opacity of 1 when the key is absent.
func (s *LayerStyle) UnmarshalYAML(node *yaml.Node) error {
	type plain LayerStyle
	p := plain{FillOpacity: 1}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = LayerStyle(p)
	return nil
}

// Layer pairs a data source with its style.
type Layer struct {
	Source string     `yaml:"source"`
	Style  LayerStyle `yaml:"style"`
}

// Name is the layer's file name without directory or extension.
func (l Layer) Name() string {
	base := filepath.Base(l.Source)
	return base[:len(base)-len(filepath.Ext(base))]
}

// Path resolves the source against dataDir unless it is already absolute.
func (l Layer) Path(dataDir string) string {
	if filepath.IsAbs(l.Source) || dataDir == "" {
		return l.Source
	}
	return filepath.Join(dataDir, l.Source)
}

// Style is a rendering preset. Later layers draw over earlier ones.
type Style struct {
	Name       string  `yaml:"name"`
	Background Layer   `yaml:"background"`
	Layers     []Layer `yaml:"layers"`
}

// StyleError reports an unusable style value.
type StyleError struct {
	Layer  string
	Reason string
}

func (e *StyleError) Error() string {
	if e.Layer == "" {
		return "style: " + e.Reason
	}
	return fmt.Sprintf("style: layer %s: %s", e.Layer, e.Reason)
}

// Validate checks ranges and colors.
func (s LayerStyle) Validate() error {
	if reason := s.problem(); reason != "" {
		return &StyleError{Reason: reason}
	}
	return nil
}

func (s LayerStyle) problem() string {
	if s.FillOpacity < 0 || s.FillOpacity > 1 {
		return fmt.Sprintf("fill opacity %g outside [0,1]", s.FillOpacity)
	}
	if s.StrokeWidth < 0 {
		return fmt.Sprintf("negative stroke width %g", s.StrokeWidth)
	}
	for _, c := range []string{s.Stroke, s.Fill} {
		if _, err := ParseColor(c); err != nil {
			return err.Error()
		}
	}
	return ""
}

// Validate checks every layer style and that each layer names a source.
func (s Style) Validate() error {
	if reason := s.Background.Style.problem(); reason != "" {
		return &StyleError{Layer: "background", Reason: reason}
	}
	for i, l := range s.Layers {
		if l.Source == "" {
			return &StyleError{Layer: fmt.Sprintf("#%d", i), Reason: "missing source"}
		}
		if reason := l.Style.problem(); reason != "" {
			return &StyleError{Layer: l.Source, Reason: reason}
		}
	}
	return nil
}
