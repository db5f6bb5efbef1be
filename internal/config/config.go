// Package config holds the run configuration shared by flags, BASEMAP_*
// environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"nebasemap/internal/assemble"
	"nebasemap/internal/basemap"
	"nebasemap/internal/geom"
	"nebasemap/internal/projection"
	"nebasemap/internal/source"
	"nebasemap/internal/style"
)

// EnvPrefix namespaces environment overrides, e.g. BASEMAP_MAP_COLS.
const EnvPrefix = "BASEMAP"

// Config is one render request.
type Config struct {
	MapCols    int     `mapstructure:"map-cols"`
	MapRows    int     `mapstructure:"map-rows"`
	LonMin     float64 `mapstructure:"lon-min"`
	LonMax     float64 `mapstructure:"lon-max"`
	LatMin     float64 `mapstructure:"lat-min"`
	LatMax     float64 `mapstructure:"lat-max"`
	OutputPath string  `mapstructure:"output-path"`

	Style      string `mapstructure:"style"`
	StyleFile  string `mapstructure:"style-file"`
	DataDir    string `mapstructure:"data-dir"`
	LabelField string `mapstructure:"label-field"`

	Projection string  `mapstructure:"projection"`
	CenterLon  float64 `mapstructure:"center-lon"`
	CenterLat  float64 `mapstructure:"center-lat"`
	// Fit names a layer source whose extent replaces the lon/lat bounds,
	// or the view center on a globe.
	Fit string `mapstructure:"fit"`

	Graticule           bool    `mapstructure:"graticule"`
	GraticuleStep       float64 `mapstructure:"graticule-step"`
	GraticuleResolution float64 `mapstructure:"graticule-resolution"`

	PNG         string `mapstructure:"png"`
	Font        string `mapstructure:"font"`
	Preview     bool   `mapstructure:"preview"`
	PreviewCols int    `mapstructure:"preview-cols"`
	PreviewFill bool   `mapstructure:"preview-fill"`
	Progress    bool   `mapstructure:"progress"`
	Verbose     bool   `mapstructure:"verbose"`
}

// Defaults is a world view at full Natural Earth resolution.
func Defaults() Config {
	return Config{
		MapCols:             16000,
		MapRows:             8000,
		LonMin:              -170,
		LonMax:              170,
		LatMin:              -80,
		LatMax:              80,
		OutputPath:          "Map.svg",
		Style:               "ocean",
		DataDir:             style.DefaultDataDir,
		LabelField:          "name",
		Projection:          projection.Equirectangular.String(),
		GraticuleStep:       15,
		GraticuleResolution: 1,
		PreviewCols:         100,
	}
}

// NewViper returns a viper instance with every key defaulted and
// environment overrides enabled.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	for key, val := range map[string]any{
		"map-cols":             d.MapCols,
		"map-rows":             d.MapRows,
		"lon-min":              d.LonMin,
		"lon-max":              d.LonMax,
		"lat-min":              d.LatMin,
		"lat-max":              d.LatMax,
		"output-path":          d.OutputPath,
		"style":                d.Style,
		"style-file":           d.StyleFile,
		"data-dir":             d.DataDir,
		"label-field":          d.LabelField,
		"projection":           d.Projection,
		"center-lon":           d.CenterLon,
		"center-lat":           d.CenterLat,
		"fit":                  d.Fit,
		"graticule":            d.Graticule,
		"graticule-step":       d.GraticuleStep,
		"graticule-resolution": d.GraticuleResolution,
		"png":                  d.PNG,
		"font":                 d.Font,
		"preview":              d.Preview,
		"preview-cols":         d.PreviewCols,
		"preview-fill":         d.PreviewFill,
		"progress":             d.Progress,
		"verbose":              d.Verbose,
	} {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file named by the "config" key, decodes
// every setting and validates the result.
func Load(v *viper.Viper) (Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("config: "+format, args...))
	}
	if c.MapCols <= 0 || c.MapRows <= 0 {
		bad("map size %dx%d must be positive", c.MapCols, c.MapRows)
	}
	mode, err := projection.ParseMode(c.Projection)
	if err != nil {
		bad("%v", err)
	}
	if mode == projection.Equirectangular && c.Fit == "" {
		if !(c.LonMin < c.LonMax) {
			bad("lon-min %g must be below lon-max %g", c.LonMin, c.LonMax)
		}
		if !(c.LatMin < c.LatMax) {
			bad("lat-min %g must be below lat-max %g", c.LatMin, c.LatMax)
		}
	}
	if math.Abs(c.CenterLat) > 90 {
		bad("center-lat %g outside [-90,90]", c.CenterLat)
	}
	if c.OutputPath == "" {
		bad("output-path is empty")
	}
	if c.StyleFile == "" {
		if _, err := style.Lookup(c.Style); err != nil {
			bad("%v", err)
		}
	}
	if c.Graticule && (c.GraticuleStep <= 0 || c.GraticuleResolution <= 0) {
		bad("graticule step %g and resolution %g must be positive", c.GraticuleStep, c.GraticuleResolution)
	}
	if c.Preview && c.PreviewCols <= 0 {
		bad("preview-cols %d must be positive", c.PreviewCols)
	}
	return errors.Join(errs...)
}

// Frame builds the map frame the configuration describes.
func (c Config) Frame() (projection.Frame, error) {
	mode, err := projection.ParseMode(c.Projection)
	if err != nil {
		return projection.Frame{}, err
	}
	bounds := c.Bounds()
	lon, lat := c.CenterLon, c.CenterLat
	if c.Fit != "" {
		if bounds, err = c.fitBounds(); err != nil {
			return projection.Frame{}, err
		}
		lon, lat = (bounds.MinX+bounds.MaxX)/2, (bounds.MinY+bounds.MaxY)/2
	}
	if mode == projection.Orthographic {
		return projection.NewOrthographicFrame(c.MapCols, c.MapRows, projection.DefaultCamera,
			projection.CenteredOn(lon, lat))
	}
	return projection.NewEquirectangularFrame(c.MapCols, c.MapRows, bounds)
}

// FitPath resolves Fit against DataDir the way layer sources are.
func (c Config) FitPath() string {
	if c.Fit == "" {
		return ""
	}
	return style.Layer{Source: c.Fit}.Path(c.DataDir)
}

func (c Config) fitBounds() (geom.BBox, error) {
	path := c.FitPath()
	b, err := source.Extent(path)
	if err != nil {
		return geom.BBox{}, fmt.Errorf("fit: %w", err)
	}
	if !b.Valid() {
		return geom.BBox{}, fmt.Errorf("fit: %s covers no area", path)
	}
	return b, nil
}

// Bounds is the lon/lat box of an equirectangular view.
func (c Config) Bounds() geom.BBox {
	return geom.BBox{MinX: c.LonMin, MinY: c.LatMin, MaxX: c.LonMax, MaxY: c.LatMax}
}

// LoadStyle returns the style file when one is set, else the named catalog.
func (c Config) LoadStyle() (style.Style, error) {
	if c.StyleFile != "" {
		return style.LoadFile(c.StyleFile)
	}
	return style.Lookup(c.Style)
}

// ComposerOptions turns the configuration into basemap options.
func (c Config) ComposerOptions() []basemap.Option {
	asm := assemble.DefaultOptions()
	asm.LabelField = c.LabelField
	opts := []basemap.Option{
		basemap.WithDataDir(c.DataDir),
		basemap.WithAssembleOptions(asm),
	}
	if c.Graticule {
		g := basemap.DefaultGraticule()
		g.LonStep = c.GraticuleStep
		g.LatStep = c.GraticuleStep
		g.Resolution = c.GraticuleResolution
		opts = append(opts, basemap.WithGraticule(g))
	}
	return opts
}
