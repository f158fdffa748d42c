package envelope

import "testing"

func seededRain(vp Viewport) *rainSystem {
	sys := &rainSystem{cfg: DefaultRainConfig()}
	sys.seed(vp, vp.IsMobile(DefaultBreakpoint), testRand())
	return sys
}

func TestRainSeedCount(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{500, 70},
		{719, 70},
		{720, 120},
		{800, 120},
	}
	for _, tt := range tests {
		sys := seededRain(Measure(tt.width, 600, 1))
		if sys.count() != tt.want {
			t.Errorf("width %v: count = %d, want %d", tt.width, sys.count(), tt.want)
		}
	}
}

func TestRainSeedRanges(t *testing.T) {
	vp := Measure(800, 600, 1)
	sys := seededRain(vp)
	cfg := DefaultRainConfig()
	for i, d := range sys.drops {
		if d.X < 0 || d.X >= vp.Width {
			t.Errorf("drop %d: x = %v", i, d.X)
		}
		if d.Y < -vp.Height || d.Y >= vp.Height {
			t.Errorf("drop %d: y = %v", i, d.Y)
		}
		if !cfg.Speed.Contains(d.VY) || !cfg.Length.Contains(d.Len) || !cfg.Opacity.Contains(d.A) {
			t.Errorf("drop %d out of range: %+v", i, d)
		}
	}
}

func TestRainStepFallsAndRespawns(t *testing.T) {
	vp := Measure(800, 600, 1)
	sys := seededRain(vp)
	cfg := DefaultRainConfig()
	rng := testRand()
	respawned := 0
	for frame := 0; frame < 300; frame++ {
		prev := append([]Drop(nil), sys.drops...)
		sys.step(vp, rng)
		for i, d := range sys.drops {
			if d.Y >= prev[i].Y {
				if d.Y != prev[i].Y+prev[i].VY {
					t.Fatalf("frame %d drop %d: y %v -> %v, want +%v", frame, i, prev[i].Y, d.Y, prev[i].VY)
				}
				continue
			}
			// Respawned: it must have crossed the bottom margin.
			respawned++
			if prev[i].Y+prev[i].VY <= vp.Height+cfg.Margin {
				t.Fatalf("drop %d respawned early at y=%v", i, prev[i].Y+prev[i].VY)
			}
			if !cfg.Respawn.Contains(d.Y) || d.X < 0 || d.X >= vp.Width || !cfg.Speed.Contains(d.VY) {
				t.Fatalf("respawned drop %+v out of range", d)
			}
		}
	}
	if respawned == 0 {
		t.Error("no drop respawned in 300 frames")
	}
}

func TestRainConfigDefaults(t *testing.T) {
	c := RainConfig{DesktopCount: 10}.withDefaults()
	if c.DesktopCount != 10 || c.MobileCount != 70 || c.Margin != 30 {
		t.Errorf("withDefaults = %+v", c)
	}
}
