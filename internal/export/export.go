// Package export packages raster snapshots of a drawing for saving.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format is the container a snapshot is written in. Both hold a raster.
type Format int

const (
	PNG Format = iota
	PDF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case PDF:
		return "pdf"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat accepts "png" or "pdf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png", "":
		return PNG, nil
	case "pdf":
		return PDF, nil
	}
	return PNG, fmt.Errorf("unknown export format %q", s)
}

// Snapshot is an encoded copy of the raster.
type Snapshot struct {
	Filename string
	Format   Format
	Data     []byte
	Width    int
	Height   int
	TakenAt  time.Time
}

// timestampLayout is ISO 8601 in UTC with the colons replaced so the name is
// safe on every filesystem and sorts by time.
const timestampLayout = "2006-01-02T15-04-05Z"

// Filename names a snapshot taken at t, to the second.
func Filename(t time.Time, f Format) string {
	return "drawing_" + t.UTC().Format(timestampLayout) + f.Ext()
}

// New wraps an encoded PNG raster into a snapshot of format f.
func New(pngData []byte, width, height int, f Format, takenAt time.Time) (*Snapshot, error) {
	data := pngData
	if f == PDF {
		var err error
		data, err = wrapPDF(pngData, width, height)
		if err != nil {
			return nil, fmt.Errorf("export pdf: %w", err)
		}
	}
	return &Snapshot{
		Filename: Filename(takenAt, f),
		Format:   f,
		Data:     data,
		Width:    width,
		Height:   height,
		TakenAt:  takenAt,
	}, nil
}

// WriteFile stores s under dir and returns the full path.
func WriteFile(dir string, s *Snapshot) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, s.Filename)
	if err := os.WriteFile(path, s.Data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
