package ui

import (
	"image"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"TraceBoard/internal/board"
	"TraceBoard/internal/export"
	"TraceBoard/internal/logging"
	"TraceBoard/internal/render"
	"TraceBoard/internal/surface"
)

// BoardWidget presents a board.Surface and feeds it pointer and resize
// events. Positions reported by fyne are in canvas units, which is the
// display space the surface maps from.
type BoardWidget struct {
	widget.BaseWidget

	mu      sync.Mutex
	surface *board.Surface
	pressed bool

	log *slog.Logger
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ board.Handle = (*BoardWidget)(nil)

func NewBoardWidget(s *board.Surface) *BoardWidget {
	b := &BoardWidget{
		surface: s,
		log:     logging.For("ui.board"),
	}
	b.ExtendBaseWidget(b)
	return b
}

func pointer(ev fyne.PointEvent) board.PointerEvent {
	origin := ev.AbsolutePosition.Subtract(ev.Position)
	return board.PointerEvent{
		ClientX: float64(ev.AbsolutePosition.X),
		ClientY: float64(ev.AbsolutePosition.Y),
		Left:    float64(origin.X),
		Top:     float64(origin.Y),
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	b.pressed = true
	b.surface.PointerDown(pointer(e.PointEvent))
	b.mu.Unlock()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.release(pointer(e.PointEvent))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.mu.Lock()
	dirty := b.surface.PointerMove(pointer(e.PointEvent))
	b.mu.Unlock()
	if !dirty.Empty() {
		b.Refresh()
	}
}

func (b *BoardWidget) DragEnd() {
	b.release(board.PointerEvent{})
}

// MouseOut ends the stroke when the pointer leaves the board while pressed.
func (b *BoardWidget) MouseOut() {
	b.mu.Lock()
	pressed := b.pressed
	b.pressed = false
	if pressed {
		b.surface.PointerLeave(board.PointerEvent{})
	}
	b.mu.Unlock()
	if pressed {
		b.Refresh()
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) release(ev board.PointerEvent) {
	b.mu.Lock()
	b.pressed = false
	b.surface.PointerUp(ev)
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) SetPen(size float64, color string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.SetPen(size, color)
}

func (b *BoardWidget) Pen() (float64, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Pen()
}

func (b *BoardWidget) SetGrid(g render.Grid) error {
	b.mu.Lock()
	err := b.surface.SetGrid(g)
	b.mu.Unlock()
	b.Refresh()
	return err
}

func (b *BoardWidget) Grid() render.Grid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Grid()
}

func (b *BoardWidget) SetOverlay(visible bool) {
	b.mu.Lock()
	b.surface.SetOverlay(visible)
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) SetReference(img image.Image) {
	b.mu.Lock()
	b.surface.SetReference(img)
	b.mu.Unlock()
	b.Refresh()
}

// Clear wipes the drawing.
func (b *BoardWidget) Clear() {
	b.mu.Lock()
	b.pressed = false
	b.surface.Clear()
	b.mu.Unlock()
	b.Refresh()
}

// ExportSnapshot encodes what the board currently shows.
func (b *BoardWidget) ExportSnapshot() (*export.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.ExportSnapshot()
}

func (b *BoardWidget) pixelRatio() float64 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	if c := app.Driver().CanvasForObject(b); c != nil && c.Scale() > 0 {
		return float64(c.Scale())
	}
	return 1
}

func (b *BoardWidget) resize(size fyne.Size) {
	v := surface.Viewport{
		Width:      float64(size.Width),
		Height:     float64(size.Height),
		PixelRatio: b.pixelRatio(),
	}
	b.mu.Lock()
	applied := b.surface.Resize(v)
	b.mu.Unlock()
	if applied {
		b.log.Debug("board resized", "width", v.Width, "height", v.Height, "ratio", v.PixelRatio)
	}
}

func (b *BoardWidget) frame(w, h int) image.Image {
	b.mu.Lock()
	defer b.mu.Unlock()
	if img := b.surface.Frame(); img != nil {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(b.frame)
	r.raster.ScaleMode = canvas.ImageScaleSmooth
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

// Layout is the board's resize notification.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.resize(size)
	r.raster.Resize(size)
}

func (r *boardWidgetRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
