package ui

import (
	"fmt"
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"TraceBoard/internal/config"
	"TraceBoard/internal/logging"
	"TraceBoard/internal/reference"
	"TraceBoard/internal/render"
)

// ReferencePanel shows the picture being copied under the same grid as the
// board, and owns the grid controls.
type ReferencePanel struct {
	board  *BoardWidget
	window fyne.Window

	image    *canvas.Image
	grid     *canvas.Raster
	hint     *widget.Label
	gridOn   *widget.Check
	cellSize *widget.Slider
	cellText *widget.Label

	// OnStatus reports user-visible outcomes, such as a failed load.
	OnStatus func(string)

	log *slog.Logger
}

func NewReferencePanel(b *BoardWidget, w fyne.Window) *ReferencePanel {
	p := &ReferencePanel{
		board:  b,
		window: w,
		hint:   widget.NewLabel("Open an image to copy"),
		log:    logging.For("ui.reference"),
	}
	p.hint.Alignment = fyne.TextAlignCenter

	p.image = canvas.NewImageFromImage(nil)
	p.image.FillMode = canvas.ImageFillContain
	p.image.ScaleMode = canvas.ImageScaleSmooth
	p.grid = canvas.NewRaster(p.gridLayer)

	g := b.Grid()
	p.cellText = widget.NewLabel("")
	p.gridOn = widget.NewCheck("Grid", func(on bool) {
		g := p.board.Grid()
		g.Visible = on
		p.applyGrid(g)
	})
	p.gridOn.SetChecked(g.Visible)

	p.cellSize = widget.NewSlider(config.MinCellSize, config.MaxCellSize)
	p.cellSize.Step = 5
	p.cellSize.SetValue(config.ClampCellSize(g.CellSize))
	p.cellSize.OnChanged = func(v float64) {
		g := p.board.Grid()
		g.CellSize = config.ClampCellSize(v)
		p.applyGrid(g)
	}
	p.showCellSize(g.CellSize)
	return p
}

// Content builds the panel.
func (p *ReferencePanel) Content() fyne.CanvasObject {
	open := widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), p.showOpenDialog)
	controls := container.NewHBox(
		open,
		widget.NewSeparator(),
		p.gridOn,
		container.NewGridWrap(fyne.NewSize(140, 35), p.cellSize),
		p.cellText,
	)
	return container.NewBorder(controls, nil, nil, nil,
		container.NewStack(p.hint, p.image, p.grid))
}

func (p *ReferencePanel) applyGrid(g render.Grid) {
	if err := p.board.SetGrid(g); err != nil {
		p.log.Warn("grid rejected", "err", err)
		return
	}
	p.showCellSize(g.CellSize)
	p.grid.Refresh()
}

func (p *ReferencePanel) showCellSize(v float64) {
	p.cellText.SetText(fmt.Sprintf("%.0fpx", v))
}

func (p *ReferencePanel) gridLayer(w, h int) image.Image {
	g := p.board.Grid()
	if !g.Visible || p.image.Image == nil {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	img, err := render.GridImage(g, w, h)
	if err != nil {
		p.log.Debug("grid layer skipped", "err", err)
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return img
}

func (p *ReferencePanel) showOpenDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		if !reference.IsImageName(r.URI().Name()) {
			p.status(fmt.Sprintf("%s is not an image", r.URI().Name()))
			return
		}
		img, format, err := reference.Decode(r)
		if err != nil {
			p.log.Warn("reference not loaded", "uri", r.URI().String(), "err", err)
			dialog.ShowError(err, p.window)
			return
		}
		p.log.Info("reference loaded", "uri", r.URI().String(), "format", format)
		p.SetImage(img)
		p.status("Loaded " + r.URI().Name())
	}, p.window)
	d.SetFilter(storage.NewExtensionFileFilter(reference.Extensions))
	d.Show()
}

// SetImage shows img and hands it to the board's overlay; nil clears both.
func (p *ReferencePanel) SetImage(img image.Image) {
	p.image.Image = img
	if img == nil {
		p.hint.Show()
	} else {
		p.hint.Hide()
	}
	p.image.Refresh()
	p.grid.Refresh()
	p.board.SetReference(img)
}

func (p *ReferencePanel) status(msg string) {
	if p.OnStatus != nil {
		p.OnStatus(msg)
	}
}
