package surface

import (
	"log/slog"
	"math"

	"TraceBoard/internal/logging"
)

// Viewport is a container measurement: the content box in display units and
// the device pixel ratio of the screen showing it.
type Viewport struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

// Controller reconciles the raster resolution with the container size.
//
// A resize that arrives while a stroke is open is held back; only the most
// recent one is kept and it is applied by Settle once the stroke finishes.
type Controller struct {
	mode       Mode
	maxW, maxH int

	geom    Geometry
	pending *Viewport

	busy  func() bool
	apply func(Geometry)
	log   *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMaxRaster caps the raster size. Zero leaves an axis unbounded.
func WithMaxRaster(w, h int) ControllerOption {
	return func(c *Controller) {
		c.maxW, c.maxH = w, h
	}
}

// NewController returns a controller that asks busy whether a stroke is open
// and hands every applied geometry to apply.
func NewController(mode Mode, busy func() bool, apply func(Geometry), opts ...ControllerOption) *Controller {
	c := &Controller{
		mode:  mode,
		busy:  busy,
		apply: apply,
		log:   logging.For("sizing"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geometry returns the geometry currently in force.
func (c *Controller) Geometry() Geometry {
	return c.geom
}

// Pending reports whether a deferred resize is waiting.
func (c *Controller) Pending() bool {
	return c.pending != nil
}

// RasterSize computes the raster dimensions for v under the controller's
// policy: Direct keeps 1:1 and is never clamped, since its points map onto
// the raster unscaled. Scaled multiplies by the pixel ratio and is clamped to
// the configured maximum.
func (c *Controller) RasterSize(v Viewport) (w, h int) {
	ratio := 1.0
	if c.mode == Scaled && v.PixelRatio > 0 {
		ratio = v.PixelRatio
	}
	w = int(math.Round(v.Width * ratio))
	h = int(math.Round(v.Height * ratio))
	if c.mode == Direct {
		return w, h
	}
	if c.maxW > 0 && w > c.maxW {
		w = c.maxW
	}
	if c.maxH > 0 && h > c.maxH {
		h = c.maxH
	}
	return w, h
}

// Observe handles a resize notification. It returns true when a new
// geometry was applied.
func (c *Controller) Observe(v Viewport) bool {
	if c.busy != nil && c.busy() {
		c.pending = &v
		c.log.Debug("resize deferred until stroke finishes", "width", v.Width, "height", v.Height)
		return false
	}
	c.pending = nil
	return c.reconcile(v)
}

// Settle applies a deferred resize, if there is one and no stroke is open.
func (c *Controller) Settle() bool {
	if c.pending == nil || (c.busy != nil && c.busy()) {
		return false
	}
	v := *c.pending
	c.pending = nil
	return c.reconcile(v)
}

func (c *Controller) reconcile(v Viewport) bool {
	w, h := c.RasterSize(v)
	next := Geometry{
		DisplayWidth:  v.Width,
		DisplayHeight: v.Height,
		RasterWidth:   w,
		RasterHeight:  h,
	}
	if next.Degenerate() {
		c.log.Debug("ignoring resize to empty box", "width", v.Width, "height", v.Height)
		return false
	}
	if next == c.geom {
		return false
	}

	c.geom = next
	c.log.Info("raster resized",
		"display", [2]float64{v.Width, v.Height},
		"raster", [2]int{w, h},
		"mode", c.mode.String(),
	)
	if c.apply != nil {
		c.apply(next)
	}
	return true
}
