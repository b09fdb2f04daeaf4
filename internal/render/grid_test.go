package render

import (
	"fmt"
	"image/color"
	"testing"
)

func TestGridLinesIncludeFarEdge(t *testing.T) {
	g := Grid{CellSize: 50, LineWidth: 1, Color: "#000"}
	got := fmt.Sprint(g.Lines(200))
	if want := "[0 50 100 150 200]"; got != want {
		t.Errorf("Lines(200) = %s, want %s", got, want)
	}
	if got := fmt.Sprint(g.Lines(120)); got != "[0 50 100]" {
		t.Errorf("Lines(120) = %s", got)
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		wantErr bool
	}{
		{"default", DefaultGrid(), false},
		{"zero cell", Grid{CellSize: 0, LineWidth: 1, Color: "#000"}, true},
		{"sub-unit cell", Grid{CellSize: 1e-6, LineWidth: 1, Color: "#000"}, true},
		{"one unit cell", Grid{CellSize: 1, LineWidth: 1, Color: "#000"}, false},
		{"zero width", Grid{CellSize: 10, LineWidth: 0, Color: "#000"}, true},
		{"bad color", Grid{CellSize: 10, LineWidth: 1, Color: "plaid"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.grid.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGridImageIsTransparentBetweenLines(t *testing.T) {
	img, err := GridImage(Grid{Visible: true, CellSize: 20, LineWidth: 1, Color: "#ff0000"}, 60, 60)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(10, 10).RGBA(); a != 0 {
		t.Errorf("cell interior alpha = %d, want 0", a)
	}
	r, _, _, a := img.At(20, 10).RGBA()
	if a == 0 || r == 0 {
		t.Errorf("grid line pixel = %v, want red", color.NRGBAModel.Convert(img.At(20, 10)))
	}
	if _, err := GridImage(DefaultGrid(), 0, 10); err == nil {
		t.Error("GridImage(0, 10) succeeded")
	}
}
