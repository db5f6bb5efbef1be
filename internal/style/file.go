package style

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a style from YAML:
//
//	name: coast
//	background:
//	  style: {fill: lightblue, fill_opacity: 1, stroke: none}
//	layers:
//	  - source: ne_10m_land.shp
//	    style: {fill: wheat, stroke: none}
//
// fill_opacity defaults to 1.
func LoadFile(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, err
	}
	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Style{}, fmt.Errorf("style file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Style{}, fmt.Errorf("style file %s: %w", path, err)
	}
	return s, nil
}
