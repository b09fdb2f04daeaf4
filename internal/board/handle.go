package board

import (
	"bytes"
	"fmt"

	"TraceBoard/internal/export"
)

// Handle is what the surrounding UI may call on a drawing surface.
type Handle interface {
	Clear()
	ExportSnapshot() (*export.Snapshot, error)
}

// Clear wipes the strokes, including one being drawn, fills the raster with
// the background and then calls OnClear.
func (s *Surface) Clear() {
	s.store.Clear()
	s.engine.ClearRaster()
	s.sizing.Settle()
	s.log.Info("surface cleared")
	if s.OnClear != nil {
		s.OnClear()
	}
}

// ExportSnapshot encodes the composed raster in the configured format. The
// strokes are not touched, whether or not encoding succeeds.
func (s *Surface) ExportSnapshot() (*export.Snapshot, error) {
	if !s.engine.Ready() {
		return nil, ErrMissingSurface
	}

	var buf bytes.Buffer
	if err := s.engine.EncodeFrame(&buf); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	w, h := s.engine.Size()
	snap, err := export.New(buf.Bytes(), w, h, s.format, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info("snapshot exported", "file", snap.Filename, "bytes", len(snap.Data))
	return snap, nil
}
