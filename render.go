package envelope

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// minBlur is the smallest blur radius, in logical pixels, worth an offscreen pass.
const minBlur = 0.25

// blurTarget holds the offscreen buffers of one blurred subtree.
type blurTarget struct {
	src    *ebiten.Image
	out    *ebiten.Image
	filter *BlurFilter
}

func (b *blurTarget) ensure(w, h int) {
	if b.src != nil && b.src.Bounds().Dx() == w && b.src.Bounds().Dy() == h {
		b.src.Clear()
		b.out.Clear()
		return
	}
	b.dispose()
	b.src = ebiten.NewImage(w, h)
	b.out = ebiten.NewImage(w, h)
}

func (b *blurTarget) dispose() {
	if b.src != nil {
		b.src.Deallocate()
		b.out.Deallocate()
		b.src, b.out = nil, nil
	}
}

// geoMFromAffine converts an [a, b, c, d, tx, ty] matrix to an ebiten.GeoM.
func geoMFromAffine(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// viewTransform maps logical coordinates to device pixels.
func (s *Scene) viewTransform() [6]float64 {
	dpr := s.vp.DPR
	if dpr <= 0 {
		dpr = 1
	}
	return [6]float64{dpr, 0, 0, dpr, 0, 0}
}

// Draw renders the document to screen: boxes, text, and particle surfaces in
// document order, with blurred subtrees composited through a BlurFilter.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	screen.Fill(s.ClearColor.toRGBA())
	s.drawNode(screen, s.root, s.viewTransform(), false)

	for n, bt := range s.blurTargets {
		if n.disposed {
			bt.dispose()
			bt.filter.Dispose()
			delete(s.blurTargets, n)
		}
	}
	if s.debug {
		debugLogf("draw: %v | blur targets: %d", time.Since(t0), len(s.blurTargets))
	}
}

// drawNode renders n and its subtree. inBlur is set while rendering the
// subtree of a node that is already being blurred.
func (s *Scene) drawNode(dst *ebiten.Image, n *Node, view [6]float64, inBlur bool) {
	if !n.Visible || n.disposed || n.worldAlpha <= 0 {
		return
	}
	if !inBlur && n.Blur > minBlur {
		s.drawBlurred(dst, n, view)
		return
	}

	m := multiplyAffine(view, n.worldTransform)
	switch n.Kind {
	case NodeKindBox:
		s.verts, s.inds = appendQuad(s.verts[:0], s.inds[:0], m, n.Width, n.Height,
			n.Color.WithAlpha(n.Color.A*n.worldAlpha))
		drawBatch(dst, s.verts, s.inds)
	case NodeKindText:
		drawText(dst, n, m, n.worldAlpha)
	case NodeKindCanvas:
		drawCanvas(dst, n, m)
	}
	for _, c := range n.children {
		s.drawNode(dst, c, view, inBlur)
	}
}

// drawBlurred renders n's subtree offscreen, blurs it by n.Blur, and draws
// the result onto dst.
func (s *Scene) drawBlurred(dst *ebiten.Image, n *Node, view [6]float64) {
	bt := s.blurTargets[n]
	if bt == nil {
		bt = &blurTarget{filter: NewBlurFilter(0)}
		s.blurTargets[n] = bt
	}
	b := dst.Bounds()
	bt.ensure(b.Dx(), b.Dy())
	s.drawNode(bt.src, n, view, true)
	bt.filter.SetRadius(int(math.Round(n.Blur * view[0])))
	bt.filter.Apply(bt.src, bt.out)
	dst.DrawImage(bt.out, nil)
}

// drawCanvas repaints a canvas surface from its field and composites it.
// The surface is already in device pixels, so only the translation of m is
// used.
func drawCanvas(dst *ebiten.Image, n *Node, m [6]float64) {
	sf := n.Surface
	img := sf.Image()
	if img == nil {
		return
	}
	img.Clear()
	if sf.paint != nil {
		sf.paint(img, sf.geoM)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(m[4], m[5])
	op.ColorScale.ScaleAlpha(float32(n.worldAlpha))
	dst.DrawImage(img, &op)
}
