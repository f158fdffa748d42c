package envelope

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA8 builds a Color from 8-bit channels and a [0, 1] alpha, matching the
// rgba() notation used by the design palette.
func RGBA8(r, g, b uint8, a float64) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: a}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (leading '#' optional).
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("envelope: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("envelope: invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Range is a general-purpose min/max range used when sampling particles.
type Range struct {
	Min, Max float64
}

// Random returns a float64 in [Min, Max) drawn from rng. A nil rng uses the
// package-level source.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	var f float64
	if rng != nil {
		f = rng.Float64()
	} else {
		f = rand.Float64()
	}
	return r.Min + f*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Marker is a document attribute used to look nodes up by role.
type Marker uint8

const (
	MarkerGate     Marker = 1 << iota // overlay shown before the invitation opens
	MarkerPage                        // main page content
	MarkerOpen                        // the open control
	MarkerEnvelope                    // envelope graphic
	MarkerFlap                        // envelope flap, rotated about its top edge
	MarkerReveal                      // content revealed on scroll
)

var markerNames = map[Marker]string{
	MarkerGate:     "gate",
	MarkerPage:     "page",
	MarkerOpen:     "open",
	MarkerEnvelope: "envelope",
	MarkerFlap:     "flap",
	MarkerReveal:   "reveal",
}

func (m Marker) String() string {
	if s, ok := markerNames[m]; ok {
		return s
	}
	return "marker(" + strconv.Itoa(int(m)) + ")"
}

// Stable identifiers of the two drawing surfaces.
const (
	RainCanvasID  = "rain-canvas"
	PetalCanvasID = "fx-canvas"
)

// NodeKind distinguishes rendering behavior for a Node.
type NodeKind uint8

const (
	NodeKindContainer NodeKind = iota // group node with no visual output
	NodeKindBox                       // solid filled rectangle
	NodeKindText                      // single- or multi-line label
	NodeKindCanvas                    // hosts a particle field's Surface
)

// whitePixel is a 1x1 white image used as the source of untextured triangles.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
