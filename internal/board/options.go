package board

import (
	"fmt"
	"time"

	"TraceBoard/internal/config"
	"TraceBoard/internal/export"
	"TraceBoard/internal/render"
	"TraceBoard/internal/state"
	"TraceBoard/internal/surface"
)

type options struct {
	mode           surface.Mode
	maxW, maxH     int
	background     string
	penSize        float64
	penColor       string
	grid           render.Grid
	overlay        bool
	overlayOpacity float64
	format         export.Format
	now            func() time.Time
	storeOpts      []state.Option
}

func defaultOptions() options {
	return options{
		mode:           surface.Scaled,
		background:     "#ffffff",
		penSize:        2,
		penColor:       "#000000",
		grid:           render.DefaultGrid(),
		overlayOpacity: render.DefaultOverlayOpacity,
		format:         export.PNG,
		now:            time.Now,
	}
}

// Option configures a Surface.
type Option func(*options)

// WithMode fixes the coordinate mapping mode for the surface's lifetime.
func WithMode(m surface.Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithMaxRaster caps the raster size.
func WithMaxRaster(w, h int) Option {
	return func(o *options) { o.maxW, o.maxH = w, h }
}

// WithBackground sets the raster background colour.
func WithBackground(color string) Option {
	return func(o *options) { o.background = color }
}

// WithPen sets the initial pen.
func WithPen(size float64, color string) Option {
	return func(o *options) { o.penSize, o.penColor = size, color }
}

// WithGrid sets the initial grid.
func WithGrid(g render.Grid) Option {
	return func(o *options) { o.grid = g }
}

// WithOverlay sets the initial overlay visibility and its opacity.
func WithOverlay(visible bool, opacity float64) Option {
	return func(o *options) { o.overlay, o.overlayOpacity = visible, opacity }
}

// WithExportFormat selects the snapshot container.
func WithExportFormat(f export.Format) Option {
	return func(o *options) { o.format = f }
}

// WithClock replaces time.Now for strokes and snapshot names.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
		o.storeOpts = append(o.storeOpts, state.WithClock(now))
	}
}

// WithStoreOptions passes options through to the stroke store.
func WithStoreOptions(opts ...state.Option) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, opts...) }
}

// FromConfig translates a validated configuration into options.
func FromConfig(cfg config.Config) ([]Option, error) {
	mode, err := surface.ParseMode(cfg.Surface.Mapping)
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return nil, fmt.Errorf("export format: %w", err)
	}
	return []Option{
		WithMode(mode),
		WithMaxRaster(cfg.Surface.MaxWidth, cfg.Surface.MaxHeight),
		WithBackground(cfg.Surface.Background),
		WithPen(cfg.Pen.Size, cfg.Pen.Color),
		WithGrid(cfg.RenderGrid()),
		WithOverlay(cfg.Overlay.Visible, cfg.Overlay.Opacity),
		WithExportFormat(format),
	}, nil
}
