package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 5, 3, 987654321, time.FixedZone("JST", 9*3600))
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, "drawing_2026-10-18T23-05-03Z.png"},
		{PDF, "drawing_2026-10-18T23-05-03Z.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := Filename(at, tt.format); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilenameIsFilesystemSafeAndSortable(t *testing.T) {
	safe := regexp.MustCompile(`^drawing_[0-9TZ-]+\.png$`)
	earlier := Filename(time.Date(2026, 1, 2, 9, 59, 59, 0, time.UTC), PNG)
	later := Filename(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC), PNG)
	for _, n := range []string{earlier, later} {
		if !safe.MatchString(n) {
			t.Errorf("Filename %q has unsafe characters", n)
		}
	}
	if !(earlier < later) {
		t.Errorf("%q does not sort before %q", earlier, later)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": PNG, "PDF": PDF, "": PNG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("svg"); err == nil {
		t.Error("ParseFormat(svg) succeeded")
	}
}

func TestNewPNGKeepsData(t *testing.T) {
	data := pngOf(t, 8, 6)
	s, err := New(data, 8, 6, PNG, time.Unix(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.Data, data) {
		t.Error("PNG snapshot data was altered")
	}
	if _, err := png.Decode(bytes.NewReader(s.Data)); err != nil {
		t.Errorf("snapshot is not a PNG: %v", err)
	}
}

func TestNewPDF(t *testing.T) {
	s, err := New(pngOf(t, 40, 20), 40, 20, PDF, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("New(PDF) error = %v", err)
	}
	if !bytes.HasPrefix(s.Data, []byte("%PDF-")) {
		t.Errorf("PDF snapshot starts with %q", s.Data[:8])
	}
	if filepath.Ext(s.Filename) != ".pdf" {
		t.Errorf("Filename = %q", s.Filename)
	}
	if _, err := New(pngOf(t, 1, 1), 0, 0, PDF, time.Unix(0, 0)); err == nil {
		t.Error("New(PDF) with empty raster succeeded")
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s, _ := New(pngOf(t, 2, 2), 2, 2, PNG, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))

	path, err := WriteFile(dir, s)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if filepath.Base(path) != "drawing_2026-03-04T05-06-07Z.png" {
		t.Errorf("path = %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(got, s.Data) {
		t.Errorf("file contents differ (err %v)", err)
	}
}
