// Package surface converts pointer positions into raster coordinates and
// keeps the raster resolution in step with the size of its container.
package surface

import (
	"errors"
	"fmt"
	"strings"

	"TraceBoard/internal/state"
)

// ErrDegenerateGeometry is reported when the displayed box has no area.
var ErrDegenerateGeometry = errors.New("degenerate geometry: display box has zero extent")

// Mode selects how display coordinates relate to raster coordinates.
type Mode int

const (
	// Scaled multiplies the offset inside the box by raster/display, so a
	// high resolution backing store keeps the same on-screen footprint.
	Scaled Mode = iota
	// Direct keeps the raster equal to the displayed size; the offset inside
	// the box is used as is.
	Direct
)

func (m Mode) String() string {
	switch m {
	case Scaled:
		return "scaled"
	case Direct:
		return "direct"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "scaled" or "direct".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scaled", "":
		return Scaled, nil
	case "direct":
		return Direct, nil
	}
	return Scaled, fmt.Errorf("unknown mapping mode %q", s)
}

// Geometry describes the displayed box of the surface, in device units, and
// the resolution of its raster.
type Geometry struct {
	Left, Top     float64
	DisplayWidth  float64
	DisplayHeight float64
	RasterWidth   int
	RasterHeight  int
}

// At returns g with its box origin moved to (left, top).
func (g Geometry) At(left, top float64) Geometry {
	g.Left, g.Top = left, top
	return g
}

// Degenerate reports whether the box or the raster has no area.
func (g Geometry) Degenerate() bool {
	return g.DisplayWidth <= 0 || g.DisplayHeight <= 0 || g.RasterWidth <= 0 || g.RasterHeight <= 0
}

// Scale returns raster units per display unit on each axis.
func (g Geometry) Scale() (sx, sy float64) {
	if g.Degenerate() {
		return 1, 1
	}
	return float64(g.RasterWidth) / g.DisplayWidth, float64(g.RasterHeight) / g.DisplayHeight
}

// Mapper turns device positions into raster points. Its mode is fixed when
// it is created; one surface uses one mapper for recording and hit-testing.
type Mapper struct {
	mode Mode
}

// NewMapper returns a mapper using mode.
func NewMapper(mode Mode) Mapper {
	return Mapper{mode: mode}
}

// Mode returns the mapping mode.
func (m Mapper) Mode() Mode { return m.mode }

// MapChecked maps the device position (x, y) into raster space. A box with
// no area yields the origin and ErrDegenerateGeometry.
func (m Mapper) MapChecked(x, y float64, g Geometry) (state.Point, error) {
	if g.Degenerate() {
		return state.Point{}, ErrDegenerateGeometry
	}

	dx, dy := x-g.Left, y-g.Top
	if m.mode == Direct {
		return state.Point{X: dx, Y: dy}, nil
	}

	sx, sy := g.Scale()
	return state.Point{X: dx * sx, Y: dy * sy}, nil
}

// Map is MapChecked with the error folded into the {0,0} fallback.
func (m Mapper) Map(x, y float64, g Geometry) state.Point {
	p, _ := m.MapChecked(x, y, g)
	return p
}
