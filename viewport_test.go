package envelope

import (
	"math"
	"testing"
)

func TestMeasureClampsDPR(t *testing.T) {
	tests := []struct {
		name string
		dpr  float64
		want float64
	}{
		{"one", 1, 1},
		{"retina", 2, 2},
		{"fractional", 1.5, 1.5},
		{"above max", 3, 2},
		{"below min", 0.5, 1},
		{"zero", 0, 1},
		{"negative", -2, 1},
		{"nan", math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := Measure(800, 600, tt.dpr)
			if vp.DPR != tt.want {
				t.Errorf("DPR = %v, want %v", vp.DPR, tt.want)
			}
			if vp.DPR < 1 || vp.DPR > 2 {
				t.Errorf("DPR %v outside [1, 2]", vp.DPR)
			}
		})
	}
}

func TestViewportPixelSizeFloors(t *testing.T) {
	vp := Measure(333, 201, 1.5)
	w, h := vp.PixelSize()
	if w != 499 || h != 301 {
		t.Errorf("PixelSize = %dx%d, want 499x301", w, h)
	}
}

func TestViewportIsMobile(t *testing.T) {
	tests := []struct {
		width float64
		want  bool
	}{
		{500, true},
		{719, true},
		{720, false},
		{800, false},
	}
	for _, tt := range tests {
		if got := Measure(tt.width, 600, 1).IsMobile(DefaultBreakpoint); got != tt.want {
			t.Errorf("IsMobile(width=%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestSurfaceResize(t *testing.T) {
	n := NewCanvas(RainCanvasID)
	s := n.Surface
	vp := Measure(800, 600, 2)
	s.Resize(vp)

	if w, h := s.PixelSize(); w != 1600 || h != 1200 {
		t.Errorf("PixelSize = %dx%d, want 1600x1200", w, h)
	}
	if w, h := s.DisplaySize(); w != 800 || h != 600 {
		t.Errorf("DisplaySize = %vx%v, want 800x600", w, h)
	}
	if n.Width != 800 || n.Height != 600 {
		t.Errorf("node size = %vx%v, want 800x600", n.Width, n.Height)
	}
	g := s.GeoM()
	if x, y := g.Apply(10, 20); x != 20 || y != 40 {
		t.Errorf("GeoM maps (10, 20) to (%v, %v), want (20, 40)", x, y)
	}
}

func TestSurfaceResizeIdempotent(t *testing.T) {
	s := NewCanvas(RainCanvasID).Surface
	vp := Measure(1024, 768, 1.25)
	s.Resize(vp)
	w1, h1 := s.PixelSize()
	g1 := s.GeoM()
	s.Resize(vp)
	w2, h2 := s.PixelSize()
	g2 := s.GeoM()
	if w1 != w2 || h1 != h2 {
		t.Errorf("pixel size changed: %dx%d -> %dx%d", w1, h1, w2, h2)
	}
	if g1 != g2 {
		t.Error("GeoM changed on repeated resize")
	}
}

func TestSurfaceRemoved(t *testing.T) {
	root := NewContainer("root")
	n := NewCanvas(PetalCanvasID)
	root.AddChild(n)
	s := n.Surface

	s.Remove()
	if !s.Removed() || s.Available() {
		t.Fatal("surface should be removed and unavailable")
	}
	if !n.IsDisposed() || n.InDocument(root) {
		t.Error("canvas node should leave the document")
	}
	s.Remove() // repeated removal is a no-op
	s.Resize(Measure(800, 600, 1))
	if w, h := s.PixelSize(); w != 0 || h != 0 {
		t.Errorf("removed surface resized to %dx%d", w, h)
	}
	if s.Image() != nil {
		t.Error("removed surface should not allocate an image")
	}
	s.Clear()
}

func TestSurfaceNilSafe(t *testing.T) {
	var s *Surface
	if s.Available() {
		t.Error("nil surface should be unavailable")
	}
	if !s.Removed() {
		t.Error("nil surface should report removed")
	}
	s.Clear()
}
