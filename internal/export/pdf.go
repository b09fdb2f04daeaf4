package export

import (
	"bytes"
	"errors"
	"math"

	"github.com/jung-kurt/gofpdf"
)

const pdfMargin = 10.0

// wrapPDF lays the PNG raster on a single A4 page, fitted inside the margins
// and oriented to match the drawing.
func wrapPDF(pngData []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("empty raster")
	}

	orientation := "P"
	if width > height {
		orientation = "L"
	}
	p := gofpdf.New(orientation, "mm", "A4", "")
	p.SetCreator("TraceBoard", true)
	p.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	fit := math.Min((pageW-2*pdfMargin)/float64(width), (pageH-2*pdfMargin)/float64(height))

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("drawing", opt, bytes.NewReader(pngData))
	p.ImageOptions("drawing", pdfMargin, pdfMargin, float64(width)*fit, float64(height)*fit, false, opt, 0, "")

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
