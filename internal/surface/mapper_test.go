package surface

import (
	"errors"
	"testing"

	"TraceBoard/internal/state"
)

func TestMapperTopLeftIsOrigin(t *testing.T) {
	g := Geometry{Left: 30, Top: 40, DisplayWidth: 200, DisplayHeight: 100, RasterWidth: 400, RasterHeight: 200}
	for _, mode := range []Mode{Direct, Scaled} {
		t.Run(mode.String(), func(t *testing.T) {
			if got := NewMapper(mode).Map(30, 40, g); got != (state.Point{}) {
				t.Errorf("Map(top-left) = %+v, want origin", got)
			}
		})
	}
}

func TestMapperScaledCenter(t *testing.T) {
	g := Geometry{Left: 10, Top: 20, DisplayWidth: 300, DisplayHeight: 150, RasterWidth: 600, RasterHeight: 300}
	got := NewMapper(Scaled).Map(10+150, 20+75, g)
	if got.X != 300 || got.Y != 150 {
		t.Errorf("Map(center) = %+v, want (300,150)", got)
	}
}

func TestMapper(t *testing.T) {
	g := Geometry{Left: 5, Top: 5, DisplayWidth: 100, DisplayHeight: 50, RasterWidth: 150, RasterHeight: 100}
	tests := []struct {
		name  string
		mode  Mode
		x, y  float64
		want  state.Point
		geom  Geometry
		degen bool
	}{
		{"direct offset", Direct, 25, 15, state.Point{X: 20, Y: 10}, g, false},
		{"direct ignores raster", Direct, 105, 55, state.Point{X: 100, Y: 50}, g, false},
		{"scaled per axis", Scaled, 25, 15, state.Point{X: 30, Y: 20}, g, false},
		{"scaled outside box", Scaled, 0, 0, state.Point{X: -7.5, Y: -10}, g, false},
		{"zero width", Scaled, 25, 15, state.Point{}, Geometry{DisplayHeight: 10, RasterWidth: 1, RasterHeight: 1}, true},
		{"zero height", Direct, 25, 15, state.Point{}, Geometry{DisplayWidth: 10, RasterWidth: 1, RasterHeight: 1}, true},
		{"no raster", Scaled, 25, 15, state.Point{}, Geometry{DisplayWidth: 10, DisplayHeight: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMapper(tt.mode)
			got, err := m.MapChecked(tt.x, tt.y, tt.geom)
			if errors.Is(err, ErrDegenerateGeometry) != tt.degen {
				t.Fatalf("MapChecked() error = %v, degenerate %v", err, tt.degen)
			}
			if got != tt.want {
				t.Errorf("MapChecked() = %+v, want %+v", got, tt.want)
			}
			if m.Map(tt.x, tt.y, tt.geom) != tt.want {
				t.Errorf("Map() disagrees with MapChecked()")
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"scaled": Scaled, "Direct": Direct, "": Scaled} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("stretched"); err == nil {
		t.Error("ParseMode(stretched) succeeded")
	}
}
