// Package board is one drawing surface: it owns the stroke store, the
// coordinate mapper, the sizing controller and the render engine, and turns
// pointer events into stroke mutations and incremental draws.
//
// A Surface is driven from a single UI goroutine. Pointer events for one
// stream must arrive in order: down, moves, then up or leave.
package board

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"TraceBoard/internal/export"
	"TraceBoard/internal/logging"
	"TraceBoard/internal/render"
	"TraceBoard/internal/state"
	"TraceBoard/internal/surface"
)

// ErrMissingSurface is returned by ExportSnapshot before the first resize.
var ErrMissingSurface = render.ErrMissingSurface

// PointerEvent is one pointer sample in device space. Left and Top give the
// origin of the surface's displayed box in the same space.
type PointerEvent struct {
	ClientX, ClientY float64
	Left, Top        float64
	Pressure         float64
}

// Surface is a drawing surface instance.
type Surface struct {
	store  *state.Store
	mapper surface.Mapper
	sizing *surface.Controller
	engine *render.Engine

	penSize  float64
	penColor string
	format   export.Format
	now      func() time.Time

	// OnClear is called after Clear has wiped the strokes and the raster.
	OnClear func()

	log *slog.Logger
}

var _ Handle = (*Surface)(nil)

// New builds a surface. It has no raster until the first Resize.
func New(opts ...Option) (*Surface, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bg, err := render.ParseColor(o.background)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		store:  state.NewStore(o.storeOpts...),
		mapper: surface.NewMapper(o.mode),
		engine: render.NewEngine(render.WithBackground(bg), render.WithOverlayOpacity(o.overlayOpacity)),
		format: o.format,
		now:    o.now,
		log:    logging.For("board"),
	}
	s.sizing = surface.NewController(o.mode, s.store.Drawing, s.applyGeometry,
		surface.WithMaxRaster(o.maxW, o.maxH))

	if err := s.SetPen(o.penSize, o.penColor); err != nil {
		return nil, err
	}
	if err := s.SetGrid(o.grid); err != nil {
		return nil, err
	}
	s.SetOverlay(o.overlay)
	return s, nil
}

// Mode returns the coordinate mapping mode fixed at construction.
func (s *Surface) Mode() surface.Mode {
	return s.mapper.Mode()
}

// Geometry returns the display and raster geometry in force.
func (s *Surface) Geometry() surface.Geometry {
	return s.sizing.Geometry()
}

// Ready reports whether the raster exists.
func (s *Surface) Ready() bool {
	return s.engine.Ready()
}

// Phase returns the render engine's drawing phase.
func (s *Surface) Phase() render.Phase {
	return s.engine.Phase()
}

func (s *Surface) point(ev PointerEvent) state.Point {
	g := s.sizing.Geometry().At(ev.Left, ev.Top)
	p, err := s.mapper.MapChecked(ev.ClientX, ev.ClientY, g)
	if err != nil {
		s.log.Debug("pointer mapped to origin", "err", err)
	}
	p.Pressure = ev.Pressure
	return p
}

// PointerDown starts a stroke with the current pen. Nothing is drawn until
// the first move. A second pointer-down while a stroke is open is ignored.
func (s *Surface) PointerDown(ev PointerEvent) {
	if !s.engine.Ready() {
		s.log.Debug("pointer down before the surface exists")
		return
	}
	st, err := s.store.Start(s.point(ev), s.penSize, s.penColor)
	if err != nil {
		if errors.Is(err, state.ErrInvalidState) {
			s.log.Debug("pointer down ignored", "err", err)
		} else {
			s.log.Warn("stroke not started", "err", err)
		}
		return
	}
	s.engine.Begin(st)
}

// PointerMove extends the open stroke and draws its newest segment. It
// returns the raster area that changed; hover moves change nothing.
func (s *Surface) PointerMove(ev PointerEvent) image.Rectangle {
	if !s.store.Drawing() {
		return image.Rectangle{}
	}
	st, ok := s.store.AddPoint(s.point(ev))
	if !ok {
		return image.Rectangle{}
	}
	return s.engine.Extend(st)
}

// PointerUp finishes the open stroke, if any.
func (s *Surface) PointerUp(PointerEvent) {
	s.finish()
}

// PointerLeave finishes the open stroke when the pointer leaves the surface
// while pressed. Calling it after PointerUp is harmless.
func (s *Surface) PointerLeave(PointerEvent) {
	s.finish()
}

func (s *Surface) finish() {
	st, ok := s.store.Finish()
	s.engine.End()
	if ok {
		s.log.Debug("stroke finished", "id", st.ID, "points", len(st.Points), "duration", st.Duration)
	}
	s.sizing.Settle()
}

// Resize handles a container resize. It is deferred while a stroke is open
// and reports whether a new raster size was applied.
func (s *Surface) Resize(v surface.Viewport) bool {
	return s.sizing.Observe(v)
}

func (s *Surface) applyGeometry(g surface.Geometry) {
	sx, sy := g.Scale()
	if err := s.engine.Resize(g.RasterWidth, g.RasterHeight, sx, sy); err != nil {
		s.log.Warn("raster resize failed", "err", err)
		return
	}
	s.engine.RedrawAll(s.store.All())
}

// SetPen sets the pen for strokes started from now on.
func (s *Surface) SetPen(size float64, color string) error {
	if err := s.engine.SetPen(size, color); err != nil {
		return err
	}
	s.penSize, s.penColor = size, color
	return nil
}

// Pen returns the current pen.
func (s *Surface) Pen() (size float64, color string) {
	return s.penSize, s.penColor
}

// SetGrid changes the alignment grid.
func (s *Surface) SetGrid(g render.Grid) error {
	return s.engine.SetGrid(g)
}

// Grid returns the alignment grid.
func (s *Surface) Grid() render.Grid {
	return s.engine.Grid()
}

// SetOverlay shows or hides the reference overlay.
func (s *Surface) SetOverlay(visible bool) {
	s.engine.SetOverlay(visible)
}

// SetReference sets the reference image drawn by the overlay; nil clears it.
func (s *Surface) SetReference(img image.Image) {
	s.engine.SetReference(img)
}

// RedrawAll replays every stroke onto a cleared raster.
func (s *Surface) RedrawAll() {
	s.engine.RedrawAll(s.store.All())
}

// Frame returns the composed raster, or nil before the first resize.
func (s *Surface) Frame() *image.RGBA {
	return s.engine.Frame()
}

// Strokes returns copies of the completed strokes.
func (s *Surface) Strokes() []state.Stroke {
	return s.store.Completed()
}

// InProgress returns a copy of the open stroke, if any.
func (s *Surface) InProgress() (state.Stroke, bool) {
	return s.store.InProgress()
}
