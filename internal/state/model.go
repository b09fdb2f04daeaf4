package state

import (
	"image"
	"math"
	"time"
)

// Point is a pointer sample in raster space, after coordinate mapping.
// Pressure is zero when the device does not report it.
type Point struct {
	X        float64
	Y        float64
	Pressure float64
}

// Stroke is one pointer-down to pointer-up gesture. PenSize and PenColor are
// captured when the stroke starts and never change afterwards.
type Stroke struct {
	ID        string
	Points    []Point
	PenSize   float64
	PenColor  string
	StartedAt time.Time
	Duration  time.Duration
	Finished  bool
}

// Clone returns a deep copy of s.
func (s Stroke) Clone() Stroke {
	c := s
	c.Points = append([]Point(nil), s.Points...)
	return c
}

// Last returns the newest point and the one before it. ok is false when the
// stroke has fewer than two points.
func (s Stroke) Last() (prev, cur Point, ok bool) {
	n := len(s.Points)
	if n < 2 {
		return Point{}, Point{}, false
	}
	return s.Points[n-2], s.Points[n-1], true
}

// Bounds returns the box covering every point, grown by pad on each side.
func Bounds(points []Point, pad float64) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	return image.Rect(
		int(math.Floor(minX-pad)),
		int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)),
		int(math.Ceil(maxY+pad)),
	)
}

// Bounds returns the area the stroke covers once drawn with its pen.
func (s Stroke) Bounds() image.Rectangle {
	return Bounds(s.Points, s.PenSize/2+1)
}
