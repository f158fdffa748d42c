package envelope

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Device pixel ratio bounds.
const (
	minDPR = 1.0
	maxDPR = 2.0
)

// Viewport holds the logical size of the window and its device pixel ratio.
type Viewport struct {
	Width  float64
	Height float64
	DPR    float64
}

// Measure builds a Viewport from raw host values. The ratio is clamped to
// [1, 2]; unavailable values (zero, negative, NaN) fall back to 1.
func Measure(width, height, dpr float64) Viewport {
	if math.IsNaN(dpr) || dpr <= 0 {
		dpr = 1
	}
	dpr = math.Max(minDPR, math.Min(maxDPR, dpr))
	return Viewport{Width: math.Max(0, width), Height: math.Max(0, height), DPR: dpr}
}

// PixelSize returns the backing buffer size for this viewport.
func (v Viewport) PixelSize() (int, int) {
	return int(math.Floor(v.Width * v.DPR)), int(math.Floor(v.Height * v.DPR))
}

// IsMobile reports whether the viewport falls on the narrow side of the
// breakpoint (inclusive).
func (v Viewport) IsMobile(breakpoint float64) bool {
	return v.Width <= breakpoint
}

// Surface is the offscreen drawing buffer behind a canvas node. Drawing uses
// logical pixel coordinates; GeoM scales them by the device pixel ratio.
type Surface struct {
	node *Node

	vp        Viewport
	pixelW    int
	pixelH    int
	geoM      ebiten.GeoM
	image     *ebiten.Image
	removed   bool
	noContext bool

	// paint renders the owning field into dst using logical coordinates
	// transformed by geoM.
	paint func(dst *ebiten.Image, geoM ebiten.GeoM)
}

func newSurface(n *Node) *Surface {
	return &Surface{node: n}
}

// Resize recomputes the pixel buffer size, display size, and coordinate
// transform from vp. Calling it again with the same viewport changes nothing.
// No-op once the surface is removed or has no drawing context.
func (s *Surface) Resize(vp Viewport) {
	if !s.Available() {
		return
	}
	s.vp = vp
	w, h := vp.PixelSize()
	if w != s.pixelW || h != s.pixelH {
		if s.image != nil {
			s.image.Deallocate()
			s.image = nil
		}
		s.pixelW, s.pixelH = w, h
	}
	s.geoM.Reset()
	s.geoM.Scale(vp.DPR, vp.DPR)
	if s.node != nil {
		s.node.Width = vp.Width
		s.node.Height = vp.Height
	}
}

// Viewport returns the viewport the surface was last resized to.
func (s *Surface) Viewport() Viewport {
	return s.vp
}

// PixelSize returns the backing buffer size in device pixels.
func (s *Surface) PixelSize() (int, int) {
	return s.pixelW, s.pixelH
}

// DisplaySize returns the displayed size in logical pixels.
func (s *Surface) DisplaySize() (float64, float64) {
	return s.vp.Width, s.vp.Height
}

// GeoM returns the logical-to-pixel transform.
func (s *Surface) GeoM() ebiten.GeoM {
	return s.geoM
}

// Available reports whether the surface can be drawn to: it is still in the
// document and has a drawing context.
func (s *Surface) Available() bool {
	return s != nil && !s.removed && !s.noContext
}

// Removed reports whether the surface has been taken out of the document.
func (s *Surface) Removed() bool {
	return s == nil || s.removed
}

// DisableContext marks the surface as lacking a 2D drawing context. Fields
// bound to it never start.
func (s *Surface) DisableContext() {
	s.noContext = true
}

// Remove disposes the canvas node, taking the surface out of the document
// permanently. Repeated calls are no-ops.
func (s *Surface) Remove() {
	if s.removed {
		return
	}
	if s.node != nil {
		s.node.Dispose() // calls release
		return
	}
	s.release()
}

func (s *Surface) release() {
	s.removed = true
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}

// Image returns the backing image, allocating it on first use. Returns nil
// when the surface is unavailable or has zero area.
func (s *Surface) Image() *ebiten.Image {
	if !s.Available() || s.pixelW <= 0 || s.pixelH <= 0 {
		return nil
	}
	if s.image == nil {
		s.image = ebiten.NewImage(s.pixelW, s.pixelH)
	}
	return s.image
}

// Clear wipes the buffer to transparent. No-op before the first draw.
func (s *Surface) Clear() {
	if s.Available() && s.image != nil {
		s.image.Clear()
	}
}
