package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"nebasemap/internal/basemap"
	"nebasemap/internal/config"
	"nebasemap/internal/raster"
	"nebasemap/internal/tui"
	"nebasemap/internal/vector"
)

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	d := config.Defaults()

	cmd := &cobra.Command{
		Use:           "basemap",
		Short:         "Render a styled Natural Earth basemap to SVG",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	f := cmd.Flags()
	f.Int("map-cols", d.MapCols, "map width in pixels")
	f.Int("map-rows", d.MapRows, "map height in pixels")
	f.Float64("lon-min", d.LonMin, "western edge (equirectangular)")
	f.Float64("lon-max", d.LonMax, "eastern edge (equirectangular)")
	f.Float64("lat-min", d.LatMin, "southern edge (equirectangular)")
	f.Float64("lat-max", d.LatMax, "northern edge (equirectangular)")
	f.String("output-path", d.OutputPath, "SVG output file")
	f.String("style", d.Style, "built-in style: classic, ocean, grey, grey110")
	f.String("style-file", d.StyleFile, "YAML style file, overrides --style")
	f.String("data-dir", d.DataDir, "directory holding the layer sources")
	f.String("label-field", d.LabelField, "attribute drawn next to point markers, empty for none")
	f.String("projection", d.Projection, "equirectangular or orthographic")
	f.Float64("center-lon", d.CenterLon, "orthographic view center longitude")
	f.Float64("center-lat", d.CenterLat, "orthographic view center latitude")
	f.String("fit", d.Fit, "layer source whose extent sets the bounds or the globe center")
	f.Bool("graticule", d.Graticule, "draw meridians, parallels and the equator")
	f.Float64("graticule-step", d.GraticuleStep, "degrees between grid lines")
	f.Float64("graticule-resolution", d.GraticuleResolution, "degrees between grid line samples")
	f.String("png", d.PNG, "also rasterize to this PNG file")
	f.String("font", d.Font, "TTF font for PNG labels")
	f.Bool("preview", d.Preview, "print a braille preview when done")
	f.Int("preview-cols", d.PreviewCols, "preview width in terminal cells")
	f.Bool("preview-fill", d.PreviewFill, "fill areas in the preview")
	f.Bool("progress", d.Progress, "show a live progress view")
	f.BoolP("verbose", "v", d.Verbose, "debug logging")
	f.String("config", "", "config file (yaml, json or toml)")
	cobra.CheckErr(v.BindPFlags(f))

	return cmd
}

func run(stdout, stderr io.Writer, cfg config.Config) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	basemap.SetLogger(logger)
	gg.SetLogger(logger)
	defer basemap.SetLogger(nil)
	defer gg.SetLogger(nil)

	frame, err := cfg.Frame()
	if err != nil {
		return err
	}
	s, err := cfg.LoadStyle()
	if err != nil {
		return err
	}

	var (
		doc *vector.Document
		rep basemap.Report
	)
	opts := cfg.ComposerOptions()
	render := func(obs basemap.Observer) error {
		o := opts
		if obs != nil {
			o = append(slices.Clip(opts), basemap.WithObserver(obs))
		}
		var err error
		doc, rep, err = basemap.New(frame, o...).Render(s)
		return err
	}

	if cfg.Progress {
		// Log lines would tear the progress view.
		basemap.SetLogger(nil)
		err = tui.RunWithProgress(s.Name, len(s.Layers), render, tea.WithOutput(stderr))
		basemap.SetLogger(logger)
	} else {
		err = render(nil)
	}
	if err != nil {
		return err
	}

	if err := writeSVG(cfg.OutputPath, doc); err != nil {
		return err
	}
	logger.Info("svg written", "path", cfg.OutputPath, "elements", doc.Len())

	if cfg.PNG != "" {
		if err := raster.WritePNG(cfg.PNG, doc, raster.Options{FontPath: cfg.Font}); err != nil {
			return err
		}
		logger.Info("png written", "path", cfg.PNG)
	}

	if cfg.Preview {
		fmt.Fprintln(stdout, tui.Boxed(tui.Preview(doc, tui.PreviewOptions{Cols: cfg.PreviewCols, Fill: cfg.PreviewFill})))
	}
	fmt.Fprintln(stdout, tui.Summary(rep))
	return nil
}

func writeSVG(path string, doc *vector.Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := doc.WriteSVG(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
