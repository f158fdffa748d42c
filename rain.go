package envelope

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Drop is a single rain streak.
type Drop struct {
	X, Y float64
	VY   float64 // fall speed in px/frame
	Len  float64 // streak length
	A    float64 // opacity
}

// RainConfig controls rain sampling. Zero values take the defaults.
type RainConfig struct {
	MobileCount  int
	DesktopCount int
	Speed        Range
	Length       Range
	Opacity      Range
	// Respawn is the y range a drop re-enters at after leaving the bottom.
	Respawn Range
	// Margin is how far below the viewport a drop travels before respawning.
	Margin float64
	Color  Color
}

// DefaultRainConfig returns the stock rain tuning.
func DefaultRainConfig() RainConfig {
	return RainConfig{
		MobileCount:  70,
		DesktopCount: 120,
		Speed:        Range{6, 12},
		Length:       Range{10, 22},
		Opacity:      Range{0.05, 0.12},
		Respawn:      Range{-200, -30},
		Margin:       30,
		Color:        RGBA8(214, 111, 140, 1),
	}
}

func (c RainConfig) withDefaults() RainConfig {
	d := DefaultRainConfig()
	if c.MobileCount == 0 {
		c.MobileCount = d.MobileCount
	}
	if c.DesktopCount == 0 {
		c.DesktopCount = d.DesktopCount
	}
	if c.Speed == (Range{}) {
		c.Speed = d.Speed
	}
	if c.Length == (Range{}) {
		c.Length = d.Length
	}
	if c.Opacity == (Range{}) {
		c.Opacity = d.Opacity
	}
	if c.Respawn == (Range{}) {
		c.Respawn = d.Respawn
	}
	if c.Margin == 0 {
		c.Margin = d.Margin
	}
	if c.Color == (Color{}) {
		c.Color = d.Color
	}
	return c
}

// RainField is the falling-streak field shown behind the gate.
type RainField struct {
	*Field
	sys *rainSystem
}

// NewRainField creates a rain field. It does nothing until Start.
func NewRainField(cfg RainConfig, fc FieldConfig) *RainField {
	sys := &rainSystem{cfg: cfg.withDefaults()}
	return &RainField{Field: newField("rain", sys, fc), sys: sys}
}

// Drops returns the live drop collection. The returned slice MUST NOT be
// retained across a reseed.
func (r *RainField) Drops() []Drop {
	return r.sys.drops
}

type rainSystem struct {
	cfg   RainConfig
	drops []Drop
}

func (s *rainSystem) count() int { return len(s.drops) }

func (s *rainSystem) seed(vp Viewport, mobile bool, rng *rand.Rand) {
	n := s.cfg.DesktopCount
	if mobile {
		n = s.cfg.MobileCount
	}
	s.drops = make([]Drop, n)
	across := Range{0, vp.Width}
	// Drops start anywhere from one screen above to the bottom edge, so the
	// first frame already looks mid-storm.
	span := Range{-vp.Height, vp.Height}
	for i := range s.drops {
		s.drops[i] = Drop{
			X:   across.Random(rng),
			Y:   span.Random(rng),
			VY:  s.cfg.Speed.Random(rng),
			Len: s.cfg.Length.Random(rng),
			A:   s.cfg.Opacity.Random(rng),
		}
	}
}

func (s *rainSystem) step(vp Viewport, rng *rand.Rand) {
	limit := vp.Height + s.cfg.Margin
	across := Range{0, vp.Width}
	for i := range s.drops {
		d := &s.drops[i]
		d.Y += d.VY
		if d.Y > limit {
			d.Y = s.cfg.Respawn.Random(rng)
			d.X = across.Random(rng)
			d.VY = s.cfg.Speed.Random(rng)
		}
	}
}

func (s *rainSystem) draw(dst *ebiten.Image, geoM ebiten.GeoM) {
	c := s.cfg.Color
	scale := geoM.Element(0, 0)
	for i := range s.drops {
		d := &s.drops[i]
		x0, y0 := geoM.Apply(d.X, d.Y)
		x1, y1 := geoM.Apply(d.X, d.Y+d.Len)
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1),
			float32(scale), c.WithAlpha(d.A).toRGBA(), true)
	}
}
