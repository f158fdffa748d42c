package envelope

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Petal is a single falling petal.
type Petal struct {
	X, Y   float64
	VX, VY float64
	W, H   float64 // ellipse half-width and half-height
	A      float64 // opacity
	Rot    float64 // rotation in radians
	VR     float64 // rotation velocity in rad/frame
	Drift  float64 // horizontal sway amplitude
	Phase  float64 // sway oscillation phase
}

// PetalConfig controls petal sampling and motion. Zero values take the defaults.
type PetalConfig struct {
	MobileCount  int
	DesktopCount int

	Size      Range // base size; W and H are multiples of it
	WidthMul  Range
	HeightMul Range
	VX        Range
	VY        Range
	Opacity   Range
	VR        Range
	Drift     Range
	// EdgeX widens the horizontal spawn range beyond the viewport on both sides.
	EdgeX float64

	// PhaseStep is the sway phase advance per frame.
	PhaseStep float64
	// SwayFactor scales sin(phase)*drift into the per-frame x offset.
	SwayFactor float64
	// Respawn is the y range a replacement petal is injected at.
	Respawn Range
	// Margin is how far below the viewport a petal falls before replacement.
	Margin float64
	// WrapMargin is how far past either side a petal drifts before wrapping.
	WrapMargin float64

	Core Color // gradient centre
	Rose Color // gradient mid stop and outline
}

// DefaultPetalConfig returns the stock petal tuning.
func DefaultPetalConfig() PetalConfig {
	return PetalConfig{
		MobileCount:  26,
		DesktopCount: 44,
		Size:         Range{7, 14},
		WidthMul:     Range{0.9, 1.25},
		HeightMul:    Range{1.1, 1.9},
		VX:           Range{-0.25, 0.25},
		VY:           Range{0.55, 1.25},
		Opacity:      Range{0.10, 0.22},
		VR:           Range{-0.02, 0.02},
		Drift:        Range{0.5, 1.4},
		EdgeX:        40,
		PhaseStep:    0.01,
		SwayFactor:   0.25,
		Respawn:      Range{-220, -40},
		Margin:       60,
		WrapMargin:   120,
		Core:         RGBA8(244, 230, 233, 1),
		Rose:         RGBA8(214, 111, 140, 1),
	}
}

func (c PetalConfig) withDefaults() PetalConfig {
	d := DefaultPetalConfig()
	setInt := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	setFloat := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	setRange := func(v *Range, def Range) {
		if *v == (Range{}) {
			*v = def
		}
	}
	setInt(&c.MobileCount, d.MobileCount)
	setInt(&c.DesktopCount, d.DesktopCount)
	setRange(&c.Size, d.Size)
	setRange(&c.WidthMul, d.WidthMul)
	setRange(&c.HeightMul, d.HeightMul)
	setRange(&c.VX, d.VX)
	setRange(&c.VY, d.VY)
	setRange(&c.Opacity, d.Opacity)
	setRange(&c.VR, d.VR)
	setRange(&c.Drift, d.Drift)
	setRange(&c.Respawn, d.Respawn)
	setFloat(&c.EdgeX, d.EdgeX)
	setFloat(&c.PhaseStep, d.PhaseStep)
	setFloat(&c.SwayFactor, d.SwayFactor)
	setFloat(&c.Margin, d.Margin)
	setFloat(&c.WrapMargin, d.WrapMargin)
	if c.Core == (Color{}) {
		c.Core = d.Core
	}
	if c.Rose == (Color{}) {
		c.Rose = d.Rose
	}
	return c
}

// PetalField is the drifting-petal field shown over the opened page.
type PetalField struct {
	*Field
	sys *petalSystem
}

// NewPetalField creates a petal field. It does nothing until Start.
func NewPetalField(cfg PetalConfig, fc FieldConfig) *PetalField {
	sys := &petalSystem{cfg: cfg.withDefaults()}
	return &PetalField{Field: newField("petals", sys, fc), sys: sys}
}

// Petals returns the live petal collection. The returned slice MUST NOT be
// retained across a reseed.
func (p *PetalField) Petals() []Petal {
	return p.sys.petals
}

type petalSystem struct {
	cfg    PetalConfig
	petals []Petal

	verts []ebiten.Vertex
	inds  []uint16
}

func (s *petalSystem) count() int { return len(s.petals) }

// sample draws a fresh petal with its vertical position taken from ys.
func (s *petalSystem) sample(vp Viewport, ys Range, rng *rand.Rand) Petal {
	c := &s.cfg
	size := c.Size.Random(rng)
	return Petal{
		X:     Range{-c.EdgeX, vp.Width + c.EdgeX}.Random(rng),
		Y:     ys.Random(rng),
		VX:    c.VX.Random(rng),
		VY:    c.VY.Random(rng),
		W:     size * c.WidthMul.Random(rng),
		H:     size * c.HeightMul.Random(rng),
		A:     c.Opacity.Random(rng),
		Rot:   Range{0, 2 * math.Pi}.Random(rng),
		VR:    c.VR.Random(rng),
		Drift: c.Drift.Random(rng),
		Phase: Range{0, 2 * math.Pi}.Random(rng),
	}
}

func (s *petalSystem) seed(vp Viewport, mobile bool, rng *rand.Rand) {
	n := s.cfg.DesktopCount
	if mobile {
		n = s.cfg.MobileCount
	}
	s.petals = make([]Petal, n)
	// Seeded petals span the whole viewport so the first paint is already
	// populated.
	span := Range{-vp.Height, vp.Height}
	for i := range s.petals {
		s.petals[i] = s.sample(vp, span, rng)
	}
}

func (s *petalSystem) step(vp Viewport, rng *rand.Rand) {
	c := &s.cfg
	bottom := vp.Height + c.Margin
	left, right := -c.WrapMargin, vp.Width+c.WrapMargin
	for i := range s.petals {
		p := &s.petals[i]
		p.Phase += c.PhaseStep
		p.X += p.VX + math.Sin(p.Phase)*(c.SwayFactor*p.Drift)
		p.Y += p.VY
		p.Rot += p.VR

		if p.Y > bottom {
			s.petals[i] = s.sample(vp, c.Respawn, rng)
			continue
		}
		wrapPetal(p, left, right)
	}
}

// wrapPetal moves a petal that drifted past either margin to the opposite
// one. Vertical state is untouched.
func wrapPetal(p *Petal, left, right float64) {
	if p.X < left {
		p.X = right
	}
	if p.X > right {
		p.X = left
	}
}

func (s *petalSystem) draw(dst *ebiten.Image, geoM ebiten.GeoM) {
	s.build(geoM, func(verts []ebiten.Vertex, inds []uint16) {
		drawBatch(dst, verts, inds)
	})
}

// build meshes every petal, handing off a batch to flush whenever the next
// petal would overflow 16-bit indices.
func (s *petalSystem) build(geoM ebiten.GeoM, flush func([]ebiten.Vertex, []uint16)) {
	c := &s.cfg
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	for i := range s.petals {
		if len(s.verts)+petalMeshVerts > maxBatchVerts {
			flush(s.verts, s.inds)
			s.verts = s.verts[:0]
			s.inds = s.inds[:0]
		}
		p := &s.petals[i]
		grad := Gradient{
			{0, c.Core.WithAlpha(p.A)},
			{0.55, c.Rose.WithAlpha(p.A * 0.75)},
			{1, Color{1, 1, 1, 0}},
		}
		// The gradient starts at an inner radius of one pixel.
		radius := p.H * 2.2
		s.verts, s.inds = appendEllipse(s.verts, s.inds, ellipseMesh{
			CX:       p.X,
			CY:       p.Y,
			RX:       p.W,
			RY:       p.H,
			Rotation: p.Rot,
			Fill: func(d float64) Color {
				return grad.At(gradientOffset(d, 1, radius))
			},
			Stroke:      c.Rose.WithAlpha(p.A * 0.20),
			StrokeWidth: 1,
		}, geoM)
	}
	flush(s.verts, s.inds)
}
