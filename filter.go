package envelope

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for visual effects applied to a node's rendered output.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
}

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// Bilinear filtering during DrawImage does the work, so no shader is needed.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	op     ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius in pixels.
func NewBlurFilter(radius int) *BlurFilter {
	f := &BlurFilter{}
	f.SetRadius(radius)
	return f
}

// SetRadius changes the radius; negative values mean no blur.
func (f *BlurFilter) SetRadius(radius int) {
	f.Radius = max(radius, 0)
}

// Passes returns the number of downscale passes for the current radius.
func (f *BlurFilter) Passes() int {
	if f.Radius <= 0 {
		return 0
	}
	return max(int(math.Ceil(math.Log2(float64(f.Radius)))), 1)
}

// Apply renders a blurred copy of src into dst.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	passes := f.Passes()
	if passes == 0 {
		f.draw(dst, src, ebiten.FilterNearest)
		return
	}

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	// Downscale: each pass halves the previous one.
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	current := src
	for i := range passes {
		w, h = max(w/2, 1), max(h/2, 1)
		t := f.temps[i]
		if t == nil || t.Bounds().Dx() != w || t.Bounds().Dy() != h {
			if t != nil {
				t.Deallocate()
			}
			t = ebiten.NewImage(w, h)
			f.temps[i] = t
		} else {
			t.Clear()
		}
		f.draw(t, current, ebiten.FilterLinear)
		current = t
	}

	// Upscale back through the chain, then into dst.
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.draw(f.temps[i], current, ebiten.FilterLinear)
		current = f.temps[i]
	}
	f.draw(dst, current, ebiten.FilterLinear)
}

// draw stretches src over the whole of dst.
func (f *BlurFilter) draw(dst, src *ebiten.Image, filter ebiten.Filter) {
	op := &f.op
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw, sh := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	dw, dh := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	op.GeoM.Scale(dw/sw, dh/sh)
	op.Filter = filter
	dst.DrawImage(src, op)
}

// Dispose releases the intermediate images.
func (f *BlurFilter) Dispose() {
	for _, t := range f.temps {
		if t != nil {
			t.Deallocate()
		}
	}
	f.temps = nil
}
