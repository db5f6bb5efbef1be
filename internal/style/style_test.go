package style

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogsAreValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.NotEmpty(t, s.Layers)
			assert.NoError(t, s.Validate())
		})
	}
	_, err := Lookup("sepia")
	assert.Error(t, err)
}

func TestLookupReturnsFreshCopies(t *testing.T) {
	a, _ := Lookup("ocean")
	a.Layers[0].Style.Fill = "red"
	b, _ := Lookup("ocean")
	assert.Equal(t, "#fff7fb", b.Layers[0].Style.Fill)
}

func TestOceanOrder(t *testing.T) {
	s := Ocean()
	require.Len(t, s.Layers, 18)
	assert.Equal(t, "ne_10m_bathymetry_L_0", s.Layers[0].Name())
	assert.Equal(t, "ne_10m_land", s.Layers[12].Name())
	assert.Equal(t, "ne_10m_rivers_lake_centerlines", s.Layers[17].Name())
}

func TestLayerPath(t *testing.T) {
	l := Layer{Source: "ne_10m_land.shp"}
	assert.Equal(t, filepath.Join("data", "10m_physical", "ne_10m_land.shp"), l.Path(DefaultDataDir))
	assert.Equal(t, "ne_10m_land.shp", l.Path(""))

	abs := Layer{Source: "/srv/ne/land.shp"}
	assert.Equal(t, "/srv/ne/land.shp", abs.Path(DefaultDataDir))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		nilOK   bool
		wantErr bool
	}{
		{"none", true, false},
		{"", true, false},
		{"wheat", false, false},
		{"DimGray", false, false},
		{"#023858", false, false},
		{"#abc", false, false},
		{"#zzzzzz", false, true},
		{"not-a-color", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.nilOK, c == nil)
		})
	}

	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestValidate(t *testing.T) {
	bad := []LayerStyle{
		{Fill: "red", FillOpacity: 1.5},
		{Fill: "red", StrokeWidth: -1},
		{Fill: "reddish"},
	}
	for _, s := range bad {
		var se *StyleError
		assert.True(t, errors.As(s.Validate(), &se), "%+v", s)
	}

	s := Style{Layers: []Layer{{Style: fill("red", 1)}}}
	assert.ErrorContains(t, s.Validate(), "missing source")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: coast
background:
  style: {fill: lightblue, fill_opacity: 1, stroke: none}
layers:
  - source: ne_10m_land.shp
    style: {fill: wheat, fill_opacity: 1, stroke: none}
  - source: ne_10m_rivers_lake_centerlines.shp
    style: {fill: none, stroke: "#3366cc", stroke_width: 0.5, fill_opacity: 1}
`), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "coast", s.Name)
	assert.Equal(t, "lightblue", s.Background.Style.Fill)
	require.Len(t, s.Layers, 2)
	assert.Equal(t, 0.5, s.Layers[1].Style.StrokeWidth)

	// fill_opacity is optional and an explicit zero is kept
	require.NoError(t, os.WriteFile(path, []byte(`
background:
  style: {fill: lightblue}
layers:
  - source: ne_10m_land.shp
    style: {fill: wheat, stroke: none}
  - source: ne_10m_lakes.shp
    style: {fill: blue, fill_opacity: 0, stroke: none}
`), 0o644))
	s, err = LoadFile(path)
	require.NoError(t, err)
	require.Len(t, s.Layers, 2)
	assert.Equal(t, 1.0, s.Layers[0].Style.FillOpacity)
	assert.Equal(t, 0.0, s.Layers[1].Style.FillOpacity)
	assert.Equal(t, 1.0, s.Background.Style.FillOpacity)

	require.NoError(t, os.WriteFile(path, []byte("layers:\n  - style: {fill: red}\n"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
