package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"TraceBoard/internal/board"
	"TraceBoard/internal/config"
	"TraceBoard/internal/export"
	"TraceBoard/internal/logging"
	"TraceBoard/internal/reference"
)

const appID = "io.traceboard.app"

// RunApp opens the main window and blocks until it is closed. A non-empty
// referencePath overrides the reference image named in cfg.
func RunApp(cfg config.Config, referencePath string) error {
	opts, err := board.FromConfig(cfg)
	if err != nil {
		return err
	}
	surface, err := board.New(opts...)
	if err != nil {
		return fmt.Errorf("create board: %w", err)
	}

	myApp := app.NewWithID(appID)
	myWindow := myApp.NewWindow("TraceBoard")
	myWindow.Resize(fyne.NewSize(1280, 800))

	content, err := NewContent(surface, myWindow, cfg, referencePath)
	if err != nil {
		return err
	}
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
	return nil
}

// NewContent lays out the reference panel beside the drawing board, with the
// toolbar above and a status line below.
func NewContent(s *board.Surface, w fyne.Window, cfg config.Config, referencePath string) (fyne.CanvasObject, error) {
	log := logging.For("ui")
	status := widget.NewLabel("Ready")

	boardWidget := NewBoardWidget(s)
	s.OnClear = func() { status.SetText("Cleared") }

	panel := NewReferencePanel(boardWidget, w)
	panel.OnStatus = status.SetText

	if referencePath == "" {
		referencePath = cfg.Overlay.Reference
	}
	if referencePath != "" {
		img, err := reference.Load(referencePath)
		if err != nil {
			return nil, err
		}
		log.Info("reference loaded", "path", referencePath)
		panel.SetImage(img)
	}

	toolbar := NewToolbar(boardWidget, w, cfg.Overlay.Visible)
	toolbar.OnClear = boardWidget.Clear
	toolbar.OnSave = func() {
		path, err := saveSnapshot(boardWidget, cfg.Export.Dir)
		if err != nil {
			log.Warn("snapshot not saved", "err", err)
			status.SetText("Save failed: " + err.Error())
			return
		}
		status.SetText("Saved " + path)
	}

	split := container.NewHSplit(panel.Content(), boardWidget)
	split.Offset = 0.4
	return container.NewBorder(toolbar.Content(), status, nil, nil, split), nil
}

func saveSnapshot(h board.Handle, dir string) (string, error) {
	snap, err := h.ExportSnapshot()
	if err != nil {
		return "", err
	}
	return export.WriteFile(dir, snap)
}
