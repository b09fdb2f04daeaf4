package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

// Grid describes the alignment grid drawn above the strokes.
type Grid struct {
	Visible   bool
	CellSize  float64
	LineWidth float64
	Color     string
}

// MinCellSize is the smallest grid cell the engine draws, one raster unit.
const MinCellSize = 1

// DefaultGrid matches the reference panel defaults.
func DefaultGrid() Grid {
	return Grid{CellSize: 20, LineWidth: 1, Color: "#000000"}
}

// Validate checks the grid parameters.
func (g Grid) Validate() error {
	if g.CellSize < MinCellSize {
		return fmt.Errorf("grid cell size %v: must be at least %v", g.CellSize, MinCellSize)
	}
	if g.LineWidth <= 0 {
		return fmt.Errorf("grid line width %v: must be positive", g.LineWidth)
	}
	if _, err := ParseColor(g.Color); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	return nil
}

// Lines returns the offsets of the grid lines along an axis of the given
// length: 0, cell, 2*cell ... up to and including length.
func (g Grid) Lines(length int) []float64 {
	if g.CellSize <= 0 || length < 0 {
		return nil
	}
	var out []float64
	for x := 0.0; x <= float64(length); x += g.CellSize {
		out = append(out, x)
	}
	return out
}

// drawGrid strokes one vertical and one horizontal line per cell over a
// w x h area of dc.
func drawGrid(dc *gg.Context, g Grid, col gg.RGBA, w, h int) error {
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	dc.SetLineWidth(g.LineWidth)
	dc.SetLineCap(gg.LineCapButt)

	for _, x := range g.Lines(w) {
		dc.DrawLine(x, 0, x, float64(h))
	}
	for _, y := range g.Lines(h) {
		dc.DrawLine(0, y, float64(w), y)
	}
	return dc.Stroke()
}

// GridImage renders g alone on a transparent w x h image. The reference
// panel lays it over the reference picture.
func GridImage(g Grid, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrMissingSurface
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	col, _ := ParseColor(g.Color)

	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()
	dc.Clear()
	if err := drawGrid(dc, g, col, w, h); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}
