// Package render draws strokes, the alignment grid and the reference overlay
// onto a raster surface.
//
// The engine keeps two gg contexts of the same size. The ink context holds
// the background and the strokes; pointer moves draw single segments into
// it. The frame context is composed from the ink on demand, with the grid
// and the reference overlay laid on top.
package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"iter"
	"log/slog"

	"github.com/gogpu/gg"

	"TraceBoard/internal/logging"
	"TraceBoard/internal/state"
)

// ErrMissingSurface is returned when the raster has not been sized yet.
var ErrMissingSurface = errors.New("raster surface not initialised")

// Phase is the state of the incremental drawing state machine.
type Phase int

const (
	Idle Phase = iota
	Drawing
)

func (p Phase) String() string {
	if p == Drawing {
		return "drawing"
	}
	return "idle"
}

// DefaultOverlayOpacity keeps both the strokes and the reference legible.
const DefaultOverlayOpacity = 0.5

type pen struct {
	size  float64
	color gg.RGBA
}

// Engine renders one drawing surface. It is not safe for concurrent use.
type Engine struct {
	ink    *gg.Context
	frame  *gg.Context
	scaleX float64
	scaleY float64
	dirty  bool

	background gg.RGBA
	pen        pen

	grid      Grid
	gridColor gg.RGBA

	overlayVisible bool
	overlayOpacity float64
	reference      *gg.ImageBuf

	phase Phase
	log   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackground sets the opaque fill under the strokes.
func WithBackground(c gg.RGBA) Option {
	return func(e *Engine) { e.background = c }
}

// WithOverlayOpacity sets the reference overlay opacity, in (0, 1].
func WithOverlayOpacity(o float64) Option {
	return func(e *Engine) {
		if o > 0 && o <= 1 {
			e.overlayOpacity = o
		}
	}
}

// NewEngine returns an engine with no raster. Every drawing call is a no-op
// until the first Resize.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		scaleX:         1,
		scaleY:         1,
		background:     gg.White,
		pen:            pen{size: 2, color: gg.Black},
		grid:           DefaultGrid(),
		gridColor:      gg.Black,
		overlayOpacity: DefaultOverlayOpacity,
		log:            logging.For("render"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ready reports whether the raster exists.
func (e *Engine) Ready() bool {
	return e.ink != nil
}

// Size returns the raster size, zero before the first Resize.
func (e *Engine) Size() (w, h int) {
	if e.ink == nil {
		return 0, 0
	}
	return e.ink.Width(), e.ink.Height()
}

// Phase returns the drawing phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Resize sets the raster to w x h. sx and sy are raster units per display
// unit on each axis and size the reference overlay. Resizing resets the context state, so
// the pen style is applied again; the caller replays the strokes.
func (e *Engine) Resize(w, h int, sx, sy float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize raster to %dx%d: %w", w, h, ErrMissingSurface)
	}
	if e.ink == nil {
		e.ink = gg.NewContext(w, h)
		e.frame = gg.NewContext(w, h)
	} else {
		if err := e.ink.Resize(w, h); err != nil {
			return fmt.Errorf("resize ink: %w", err)
		}
		if err := e.frame.Resize(w, h); err != nil {
			return fmt.Errorf("resize frame: %w", err)
		}
	}
	if sx > 0 && sy > 0 {
		e.scaleX, e.scaleY = sx, sy
	}
	e.applyPen()
	e.dirty = true
	return nil
}

// SetPen changes the current pen. Strokes already started keep their own.
func (e *Engine) SetPen(size float64, color string) error {
	if size <= 0 {
		return fmt.Errorf("pen size %v: must be positive", size)
	}
	c, err := ParseColor(color)
	if err != nil {
		return err
	}
	e.pen = pen{size: size, color: c}
	e.applyPen()
	return nil
}

func (e *Engine) applyPen() {
	if e.ink == nil {
		return
	}
	e.ink.SetLineWidth(e.pen.size)
	e.ink.SetRGBA(e.pen.color.R, e.pen.color.G, e.pen.color.B, e.pen.color.A)
	e.ink.SetLineCap(gg.LineCapRound)
	e.ink.SetLineJoin(gg.LineJoinRound)
}

// SetGrid replaces the grid parameters.
func (e *Engine) SetGrid(g Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}
	e.grid = g
	e.gridColor, _ = ParseColor(g.Color)
	e.dirty = true
	return nil
}

// Grid returns the grid parameters.
func (e *Engine) Grid() Grid {
	return e.grid
}

// SetOverlay shows or hides the reference overlay.
func (e *Engine) SetOverlay(visible bool) {
	e.overlayVisible = visible
	e.dirty = true
}

// SetReference sets the reference image; nil removes it.
func (e *Engine) SetReference(img image.Image) {
	if img == nil {
		e.reference = nil
	} else {
		e.reference = gg.ImageBufFromImage(img)
	}
	e.dirty = true
}

// Begin enters the drawing phase for st. Nothing is drawn: a stroke with a
// single point has no segment yet.
func (e *Engine) Begin(st state.Stroke) {
	e.phase = Drawing
	e.log.Debug("stroke begin", "id", st.ID)
}

// Extend draws the newest segment of st, from its second-to-last point to
// its last point, and returns the raster area it touched. It does not walk
// earlier points.
func (e *Engine) Extend(st state.Stroke) image.Rectangle {
	if e.ink == nil {
		return image.Rectangle{}
	}
	if e.phase != Drawing {
		e.log.Debug("segment outside a stroke ignored", "id", st.ID)
		return image.Rectangle{}
	}
	prev, cur, ok := st.Last()
	if !ok {
		return image.Rectangle{}
	}

	if err := e.strokeStyle(st); err != nil {
		e.log.Warn("segment skipped", "id", st.ID, "err", err)
		return image.Rectangle{}
	}
	e.ink.MoveTo(prev.X, prev.Y)
	e.ink.LineTo(cur.X, cur.Y)
	if err := e.ink.Stroke(); err != nil {
		e.log.Warn("segment stroke failed", "id", st.ID, "err", err)
	}
	e.dirty = true

	w, h := e.Size()
	return state.Bounds([]state.Point{prev, cur}, st.PenSize/2+1).Intersect(image.Rect(0, 0, w, h))
}

// End leaves the drawing phase. The last segment is already on the raster.
func (e *Engine) End() {
	e.phase = Idle
}

// RedrawAll clears the ink and replays strokes in order, each as one
// continuous path with its own pen. Strokes with fewer than two points draw
// nothing.
func (e *Engine) RedrawAll(strokes iter.Seq[state.Stroke]) {
	if e.ink == nil {
		return
	}
	e.ink.ClearPath()
	e.ink.ClearWithColor(e.background)

	n := 0
	for st := range strokes {
		if len(st.Points) < 2 {
			continue
		}
		if err := e.strokeStyle(st); err != nil {
			e.log.Warn("stroke skipped during replay", "id", st.ID, "err", err)
			continue
		}
		e.ink.MoveTo(st.Points[0].X, st.Points[0].Y)
		for _, p := range st.Points[1:] {
			e.ink.LineTo(p.X, p.Y)
		}
		if err := e.ink.Stroke(); err != nil {
			e.log.Warn("stroke replay failed", "id", st.ID, "err", err)
		}
		n++
	}
	e.applyPen()
	e.dirty = true
	e.log.Debug("replayed strokes", "count", n)
}

// ClearRaster fills the whole ink with the background.
func (e *Engine) ClearRaster() {
	e.phase = Idle
	if e.ink == nil {
		return
	}
	e.ink.ClearPath()
	e.ink.ClearWithColor(e.background)
	e.dirty = true
}

func (e *Engine) strokeStyle(st state.Stroke) error {
	c, err := ParseColor(st.PenColor)
	if err != nil {
		return err
	}
	e.ink.SetRGBA(c.R, c.G, c.B, c.A)
	e.ink.SetLineWidth(st.PenSize)
	e.ink.SetLineCap(gg.LineCapRound)
	e.ink.SetLineJoin(gg.LineJoinRound)
	return nil
}

// Ink returns a copy of the stroke layer, or nil before the first Resize.
func (e *Engine) Ink() *image.RGBA {
	if e.ink == nil {
		return nil
	}
	return e.ink.ResizeTarget().ToImage()
}

// Frame composes and returns the visible raster: background and strokes,
// then the grid, then the reference overlay. It returns nil before the
// first Resize.
func (e *Engine) Frame() *image.RGBA {
	if e.ink == nil {
		return nil
	}
	if e.dirty {
		e.compose()
	}
	return e.frame.ResizeTarget().ToImage()
}

func (e *Engine) compose() {
	copy(e.frame.ResizeTarget().Data(), e.ink.ResizeTarget().Data())

	w, h := e.Size()
	if e.grid.Visible {
		if err := drawGrid(e.frame, e.grid, e.gridColor, w, h); err != nil {
			e.log.Warn("grid pass failed", "err", err)
		}
	}
	if e.overlayVisible && e.reference != nil {
		rw, rh := e.reference.Bounds()
		e.frame.DrawImageEx(e.reference, gg.DrawImageOptions{
			DstWidth:  float64(rw) * e.scaleX,
			DstHeight: float64(rh) * e.scaleY,
			Opacity:   e.overlayOpacity,
			BlendMode: gg.BlendNormal,
		})
	}
	e.dirty = false
}

// EncodeFrame writes the composed raster as PNG.
func (e *Engine) EncodeFrame(w io.Writer) error {
	if e.frame == nil {
		return ErrMissingSurface
	}
	if e.dirty {
		e.compose()
	}
	return e.frame.EncodePNG(w)
}
