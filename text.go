package envelope

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// lineSpacingFactor is the line height as a multiple of the text size.
const lineSpacingFactor = 1.4

var (
	fontSource *text.GoTextFaceSource
	faceCache  = map[float64]*text.GoTextFace{}
)

// loadFontSource parses the embedded Go Regular font once.
func loadFontSource() (*text.GoTextFaceSource, error) {
	if fontSource != nil {
		return fontSource, nil
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("envelope: failed to parse embedded font: %w", err)
	}
	fontSource = src
	return src, nil
}

// faceForSize returns a cached face at the given size in logical pixels.
func faceForSize(size float64) *text.GoTextFace {
	if size <= 0 {
		size = 16
	}
	if f, ok := faceCache[size]; ok {
		return f
	}
	src, err := loadFontSource()
	if err != nil {
		panic(err)
	}
	f := &text.GoTextFace{Source: src, Size: size}
	faceCache[size] = f
	return f
}

// MeasureText returns the rendered size of a text node's content.
func MeasureText(n *Node) (w, h float64) {
	if n.Text == "" {
		return 0, 0
	}
	return text.Measure(n.Text, faceForSize(n.TextSize), n.TextSize*lineSpacingFactor)
}

// drawText renders a text node. m maps the node's local space to dst pixels.
func drawText(dst *ebiten.Image, n *Node, m [6]float64, alpha float64) {
	if n.Text == "" || alpha <= 0 {
		return
	}
	face := faceForSize(n.TextSize)
	op := &text.DrawOptions{}
	op.LineSpacing = n.TextSize * lineSpacingFactor
	switch n.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(n.Width/2, 0)
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
		op.GeoM.Translate(n.Width, 0)
	}
	op.GeoM.Concat(geoMFromAffine(m))
	c := n.TextColor
	a := float32(clamp01(c.A * alpha))
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	op.Filter = ebiten.FilterLinear
	text.Draw(dst, n.Text, face, op)
}
