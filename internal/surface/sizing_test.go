package surface

import "testing"

type recorder struct {
	busy    bool
	applied []Geometry
}

func (r *recorder) controller(mode Mode, opts ...ControllerOption) *Controller {
	return NewController(mode, func() bool { return r.busy }, func(g Geometry) {
		r.applied = append(r.applied, g)
	}, opts...)
}

func TestRasterSizePolicy(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		v     Viewport
		maxW  int
		maxH  int
		wantW int
		wantH int
	}{
		{"direct ignores ratio", Direct, Viewport{Width: 200, Height: 100, PixelRatio: 2}, 0, 0, 200, 100},
		{"scaled applies ratio", Scaled, Viewport{Width: 200, Height: 100, PixelRatio: 2}, 0, 0, 400, 200},
		{"scaled without ratio", Scaled, Viewport{Width: 200, Height: 100}, 0, 0, 200, 100},
		{"scaled fractional", Scaled, Viewport{Width: 101, Height: 51, PixelRatio: 1.5}, 0, 0, 152, 77},
		{"direct not clamped", Direct, Viewport{Width: 5000, Height: 3000}, 3840, 2160, 5000, 3000},
		{"clamped", Scaled, Viewport{Width: 3000, Height: 2000, PixelRatio: 2}, 3840, 2160, 3840, 2160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r recorder
			c := r.controller(tt.mode, WithMaxRaster(tt.maxW, tt.maxH))
			w, h := c.RasterSize(tt.v)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("RasterSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestObserveAppliesOnChange(t *testing.T) {
	var r recorder
	c := r.controller(Scaled)

	if !c.Observe(Viewport{Width: 100, Height: 80, PixelRatio: 2}) {
		t.Fatal("first Observe() = false")
	}
	if c.Observe(Viewport{Width: 100, Height: 80, PixelRatio: 2}) {
		t.Error("Observe() with identical size = true")
	}
	if len(r.applied) != 1 {
		t.Fatalf("applied %d times, want 1", len(r.applied))
	}
	g := c.Geometry()
	if g.RasterWidth != 200 || g.RasterHeight != 160 || g.DisplayWidth != 100 {
		t.Errorf("Geometry() = %+v", g)
	}
}

func TestObserveIgnoresEmptyBox(t *testing.T) {
	var r recorder
	c := r.controller(Direct)
	if c.Observe(Viewport{Width: 0, Height: 300}) {
		t.Error("Observe(empty) = true")
	}
	if len(r.applied) != 0 || !c.Geometry().Degenerate() {
		t.Error("empty box produced a geometry")
	}
}

func TestResizeDeferredWhileBusy(t *testing.T) {
	var r recorder
	c := r.controller(Direct)
	c.Observe(Viewport{Width: 100, Height: 100})

	r.busy = true
	c.Observe(Viewport{Width: 300, Height: 300})
	c.Observe(Viewport{Width: 400, Height: 250})
	if len(r.applied) != 1 {
		t.Fatalf("resize applied mid-stroke: %+v", r.applied)
	}
	if !c.Pending() {
		t.Fatal("Pending() = false")
	}
	if c.Settle() {
		t.Error("Settle() applied while still busy")
	}

	r.busy = false
	if !c.Settle() {
		t.Fatal("Settle() = false after stroke finished")
	}
	if c.Settle() {
		t.Error("second Settle() = true")
	}
	if len(r.applied) != 2 {
		t.Fatalf("applied %d times, want 2 (coalesced)", len(r.applied))
	}
	if got := r.applied[1]; got.RasterWidth != 400 || got.RasterHeight != 250 {
		t.Errorf("applied %+v, want latest 400x250", got)
	}
}
