package envelope

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// GradientStop is one colour stop of a radial gradient. Offset is in [0, 1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient is a piecewise-linear colour ramp. Stops must be sorted by Offset.
type Gradient []GradientStop

// At samples the gradient at t. Values outside the first and last stop clamp
// to those stops.
func (g Gradient) At(t float64) Color {
	if len(g) == 0 {
		return Color{}
	}
	if t <= g[0].Offset {
		return g[0].Color
	}
	for i := 1; i < len(g); i++ {
		if t <= g[i].Offset {
			a, b := g[i-1], g[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			u := (t - a.Offset) / span
			return Color{
				R: lerp(a.Color.R, b.Color.R, u),
				G: lerp(a.Color.G, b.Color.G, u),
				B: lerp(a.Color.B, b.Color.B, u),
				A: lerp(a.Color.A, b.Color.A, u),
			}
		}
	}
	return g[len(g)-1].Color
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ellipseMesh describes one rotated ellipse to append to a triangle batch.
type ellipseMesh struct {
	CX, CY   float64 // centre, logical pixels
	RX, RY   float64 // half-axes
	Rotation float64 // radians
	// Fill gives the vertex colour for a point at distance d from the centre.
	Fill func(d float64) Color
	// Stroke, when its alpha is positive, is drawn as a ring of StrokeWidth
	// logical pixels straddling the edge.
	Stroke      Color
	StrokeWidth float64
}

const (
	ellipseSegments = 24
	ellipseRings    = 3
)

// maxBatchVerts is the most vertices one batch can address with uint16
// indices.
const maxBatchVerts = 1 << 16

// petalMeshVerts is the vertex count of one stroked ellipse.
const petalMeshVerts = 1 + ellipseRings*ellipseSegments + 2*ellipseSegments

// gradientOffset maps distance d onto a radial gradient running from inner to
// outer radius.
func gradientOffset(d, inner, outer float64) float64 {
	if outer <= inner {
		return 1
	}
	return math.Max(0, (d-inner)/(outer-inner))
}

// appendEllipse appends the fill (a fan subdivided into concentric rings so
// the radial gradient is sampled inside the shape) and optional outline of m
// to the batch. geoM maps logical to target pixels.
func appendEllipse(verts []ebiten.Vertex, inds []uint16, m ellipseMesh, geoM ebiten.GeoM) ([]ebiten.Vertex, []uint16) {
	sin, cos := math.Sincos(m.Rotation)
	point := func(lx, ly float64) (float32, float32) {
		wx := m.CX + lx*cos - ly*sin
		wy := m.CY + lx*sin + ly*cos
		x, y := geoM.Apply(wx, wy)
		return float32(x), float32(y)
	}

	base := uint16(len(verts))
	cx, cy := point(0, 0)
	verts = append(verts, coloredVertex(cx, cy, m.Fill(0)))

	for r := 1; r <= ellipseRings; r++ {
		f := float64(r) / ellipseRings
		for s := 0; s < ellipseSegments; s++ {
			th := 2 * math.Pi * float64(s) / ellipseSegments
			lx, ly := f*m.RX*math.Cos(th), f*m.RY*math.Sin(th)
			x, y := point(lx, ly)
			verts = append(verts, coloredVertex(x, y, m.Fill(math.Hypot(lx, ly))))
		}
	}

	ring := func(r, s int) uint16 {
		return base + 1 + uint16((r-1)*ellipseSegments+s%ellipseSegments)
	}
	for s := 0; s < ellipseSegments; s++ {
		inds = append(inds, base, ring(1, s), ring(1, s+1))
	}
	for r := 2; r <= ellipseRings; r++ {
		for s := 0; s < ellipseSegments; s++ {
			a, b := ring(r-1, s), ring(r-1, s+1)
			c, d := ring(r, s), ring(r, s+1)
			inds = append(inds, a, c, d, a, d, b)
		}
	}

	if m.Stroke.A <= 0 || m.StrokeWidth <= 0 {
		return verts, inds
	}

	half := m.StrokeWidth / 2
	ob := uint16(len(verts))
	for s := 0; s < ellipseSegments; s++ {
		th := 2 * math.Pi * float64(s) / ellipseSegments
		c, sn := math.Cos(th), math.Sin(th)
		ix, iy := point((m.RX-half)*c, (m.RY-half)*sn)
		ox, oy := point((m.RX+half)*c, (m.RY+half)*sn)
		verts = append(verts, coloredVertex(ix, iy, m.Stroke), coloredVertex(ox, oy, m.Stroke))
	}
	for s := 0; s < ellipseSegments; s++ {
		n := (s + 1) % ellipseSegments
		i0, o0 := ob+uint16(2*s), ob+uint16(2*s+1)
		i1, o1 := ob+uint16(2*n), ob+uint16(2*n+1)
		inds = append(inds, i0, o0, o1, i0, o1, i1)
	}
	return verts, inds
}

// coloredVertex builds a vertex sampling the centre of the white pixel with a
// straight-alpha colour.
func coloredVertex(x, y float32, c Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(clamp01(c.R)),
		ColorG: float32(clamp01(c.G)),
		ColorB: float32(clamp01(c.B)),
		ColorA: float32(clamp01(c.A)),
	}
}

// drawBatch submits a triangle batch built by appendEllipse or appendQuad.
func drawBatch(dst *ebiten.Image, verts []ebiten.Vertex, inds []uint16) {
	if len(inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	dst.DrawTriangles(verts, inds, ensureWhitePixel(), &op)
}

// appendQuad appends a w×h rectangle transformed by m (an affine matrix in
// [a, b, c, d, tx, ty] layout) with a uniform colour.
func appendQuad(verts []ebiten.Vertex, inds []uint16, m [6]float64, w, h float64, c Color) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	corners := [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
	for _, p := range corners {
		x, y := transformPoint(m, p[0], p[1])
		verts = append(verts, coloredVertex(float32(x), float32(y), c))
	}
	inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	return verts, inds
}
