package envelope

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestScrollToAnimates(t *testing.T) {
	var s Scroll
	s.SetMaxY(1000)
	s.ScrollTo(400, 1, ease.Linear)
	if !s.Animating() || s.Target() != 400 {
		t.Fatalf("animating=%v target=%v", s.Animating(), s.Target())
	}
	s.update(0.5)
	if math.Abs(s.Y-200) > 1e-3 {
		t.Errorf("Y at half = %v, want 200", s.Y)
	}
	s.update(0.5)
	if s.Y != 400 || s.Animating() {
		t.Errorf("Y = %v animating = %v, want 400 and done", s.Y, s.Animating())
	}
}

func TestScrollClamps(t *testing.T) {
	var s Scroll
	s.SetMaxY(300)
	s.ScrollTo(1000, 0, nil)
	if s.Y != 300 {
		t.Errorf("Y = %v, want 300", s.Y)
	}
	s.ScrollBy(-1000, 0)
	if s.Y != 0 {
		t.Errorf("Y = %v, want 0", s.Y)
	}
	s.ScrollTo(250, 0, nil)
	s.SetMaxY(100)
	if s.Y != 100 {
		t.Errorf("Y after shrinking range = %v, want 100", s.Y)
	}
	s.SetMaxY(-50)
	if s.MaxY != 0 || s.Y != 0 {
		t.Errorf("negative range: MaxY=%v Y=%v", s.MaxY, s.Y)
	}
}

func TestScrollByChainsFromTarget(t *testing.T) {
	var s Scroll
	s.SetMaxY(1000)
	s.ScrollBy(100, 0.25)
	s.ScrollBy(100, 0.25)
	if s.Target() != 200 {
		t.Errorf("Target = %v, want 200", s.Target())
	}
}

func TestScrollReset(t *testing.T) {
	var s Scroll
	s.SetMaxY(1000)
	s.ScrollTo(500, 1, nil)
	s.update(0.5)
	s.Reset()
	if s.X != 0 || s.Y != 0 || s.Animating() {
		t.Errorf("after Reset: (%v, %v) animating=%v", s.X, s.Y, s.Animating())
	}
}
