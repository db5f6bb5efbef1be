package style

import (
	"fmt"
	"sort"
)

func fill(color string, opacity float64) LayerStyle {
	return LayerStyle{Stroke: None, Fill: color, FillOpacity: opacity}
}

func layer(source string, s LayerStyle) Layer {
	return Layer{Source: source, Style: s}
}

var catalog = map[string]func() Style{
	"classic": Classic,
	"ocean":   Ocean,
	"grey":    Grey,
	"grey110": Grey110,
}

// Names lists the built-in styles.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh copy of the named built-in style.
func Lookup(name string) (Style, error) {
	fn, ok := catalog[name]
	if !ok {
		return Style{}, fmt.Errorf("unknown style %q (have %v)", name, Names())
	}
	return fn(), nil
}

// Classic is ocean, land, lakes, reefs, ice and rivers in soft colors.
func Classic() Style {
	return Style{
		Name:       "classic",
		Background: Layer{Style: fill("lightseagreen", 0.5)},
		Layers: []Layer{
			layer("ne_10m_ocean.shp", LayerStyle{Stroke: "black", Fill: "lightseagreen", FillOpacity: 0.5, StrokeWidth: 1}),
			layer("ne_10m_land.shp", fill("wheat", 1)),
			layer("ne_10m_lakes.shp", fill("skyblue", 1)),
			layer("ne_10m_reefs.shp", fill("silver", 1)),
			layer("ne_10m_antarctic_ice_shelves_polys.shp", fill("lightcyan", 1)),
			layer("ne_10m_glaciated_areas.shp", fill("aliceblue", 1)),
			layer("ne_10m_rivers_lake_centerlines.shp", LayerStyle{Stroke: "skyblue", Fill: None, FillOpacity: 1, StrokeWidth: 1}),
		},
	}
}

// Ocean shades the bathymetry bands from shallow to deep before drawing land.
func Ocean() Style {
	bands := []struct {
		file  string
		color string
	}{
		{"ne_10m_bathymetry_L_0.shp", "#fff7fb"},
		{"ne_10m_bathymetry_K_200.shp", "#ece7f2"},
		{"ne_10m_bathymetry_J_1000.shp", "#d0d1e6"},
		{"ne_10m_bathymetry_I_2000.shp", "#a6bddb"},
		{"ne_10m_bathymetry_H_3000.shp", "#74a9cf"},
		{"ne_10m_bathymetry_G_4000.shp", "#3690c0"},
		{"ne_10m_bathymetry_F_5000.shp", "#0570b0"},
		{"ne_10m_bathymetry_E_6000.shp", "#045a8d"},
		{"ne_10m_bathymetry_D_7000.shp", "#023858"},
		{"ne_10m_bathymetry_C_8000.shp", "#023858"},
		{"ne_10m_bathymetry_B_9000.shp", "#023858"},
		{"ne_10m_bathymetry_A_10000.shp", "#023858"},
	}
	s := Style{
		Name:       "ocean",
		Background: Layer{Style: fill("#fff7fb", 1)},
	}
	for _, b := range bands {
		s.Layers = append(s.Layers, layer(b.file, fill(b.color, 1)))
	}
	s.Layers = append(s.Layers,
		layer("ne_10m_land.shp", fill("dimgray", 1)),
		layer("ne_10m_lakes.shp", fill("skyblue", 1)),
		layer("ne_10m_reefs.shp", fill("silver", 1)),
		layer("ne_10m_antarctic_ice_shelves_polys.shp", fill("lightcyan", 1)),
		layer("ne_10m_glaciated_areas.shp", fill("aliceblue", 1)),
		layer("ne_10m_rivers_lake_centerlines.shp", LayerStyle{Stroke: "skyblue", Fill: None, FillOpacity: 1, StrokeWidth: 1}),
	)
	return s
}

// Grey is a minimal black-and-white style for high resolution data.
func Grey() Style {
	return Style{
		Name:       "grey",
		Background: Layer{Style: fill("silver", 0)},
		Layers: []Layer{
			layer("ne_10m_ocean.shp", LayerStyle{Stroke: "black", Fill: "silver", FillOpacity: 0}),
			layer("ne_10m_land.shp", LayerStyle{Stroke: "white", Fill: "black", FillOpacity: 1, StrokeWidth: 1}),
		},
	}
}

// Grey110 is Grey for the 1:110m data set.
func Grey110() Style {
	return Style{
		Name:       "grey110",
		Background: Layer{Style: fill("silver", 0.5)},
		Layers: []Layer{
			layer("ne_110m_ocean.shp", LayerStyle{Stroke: "black", Fill: "silver", FillOpacity: 0.5, StrokeWidth: 1}),
			layer("ne_110m_land.shp", fill("dimgray", 1)),
		},
	}
}
