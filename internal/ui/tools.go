package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"TraceBoard/internal/config"
	"TraceBoard/internal/render"
)

var palette = []color.NRGBA{
	{A: 255},
	{R: 255, A: 255},
	{G: 160, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 200, A: 255},
}

var presets = []struct {
	label string
	size  float64
}{
	{"Thin", 1},
	{"Medium", 2},
	{"Thick", 3},
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the pen controls and the clear and save actions.
type Toolbar struct {
	board  *BoardWidget
	window fyne.Window

	size     *widget.Slider
	sizeText *widget.Label
	current  *canvas.Rectangle
	overlay  *widget.Check

	OnSave  func()
	OnClear func()
}

func NewToolbar(b *BoardWidget, w fyne.Window, overlayOn bool) *Toolbar {
	t := &Toolbar{board: b, window: w}

	size, hex := b.Pen()
	t.sizeText = widget.NewLabel("")
	t.size = widget.NewSlider(config.MinPenSize, config.MaxPenSize)
	t.size.SetValue(config.ClampPenSize(size))
	t.size.OnChanged = t.setSize
	t.showSize(size)

	t.current = canvas.NewRectangle(render.MustParseColor(hex).Color())
	t.current.SetMinSize(fyne.NewSize(28, 28))

	t.overlay = widget.NewCheck("Overlay", b.SetOverlay)
	t.overlay.SetChecked(overlayOn)
	return t
}

// Content builds the toolbar row, styled after a desktop tool palette.
func (t *Toolbar) Content() fyne.CanvasObject {
	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			if t.OnClear != nil {
				t.OnClear()
			}
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			if t.OnSave != nil {
				t.OnSave()
			}
		}),
	)

	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, t.setColor))
	}
	more := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), t.showColorPicker)

	presetBox := container.NewHBox()
	for _, p := range presets {
		presetBox.Add(widget.NewButton(p.label, func() {
			t.size.SetValue(p.size)
			t.setSize(p.size)
		}))
	}

	return container.NewHBox(
		actions,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		t.current,
		colorBox,
		more,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		presetBox,
		container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.size),
		t.sizeText,
		widget.NewSeparator(),
		t.overlay,
		layout.NewSpacer(),
	)
}

func (t *Toolbar) setSize(v float64) {
	v = config.ClampPenSize(v)
	_, hex := t.board.Pen()
	if err := t.board.SetPen(v, hex); err != nil {
		return
	}
	t.showSize(v)
}

func (t *Toolbar) showSize(v float64) {
	t.sizeText.SetText(fmt.Sprintf("%.0fpx", v))
}

func (t *Toolbar) setColor(c color.Color) {
	size, _ := t.board.Pen()
	if err := t.board.SetPen(size, render.Hex(c)); err != nil {
		return
	}
	t.current.FillColor = c
	t.current.Refresh()
}

func (t *Toolbar) showColorPicker() {
	picker := dialog.NewColorPicker("Pen color", "", t.setColor, t.window)
	picker.Advanced = true
	picker.Show()
}
