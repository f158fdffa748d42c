package envelope

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Prop names an animatable node property.
type Prop uint8

const (
	PropAlpha     Prop = iota // Node.Alpha
	PropAutoAlpha             // Node.Alpha, with Visible cleared while it is 0
	PropOffsetY               // Node.OffsetY
	PropRotateX               // Node.RotateX, degrees
	PropBlur                  // Node.Blur, logical pixels
)

func (p Prop) String() string {
	switch p {
	case PropAlpha:
		return "alpha"
	case PropAutoAlpha:
		return "autoAlpha"
	case PropOffsetY:
		return "y"
	case PropRotateX:
		return "rotateX"
	case PropBlur:
		return "blur"
	}
	return "prop"
}

// PropValue pairs a property with a value.
type PropValue struct {
	Prop  Prop
	Value float64
}

// Props is an ordered property set. At most maxTweenProps entries are used.
type Props []PropValue

// Set returns a one-entry Props; chain with And.
func Set(p Prop, v float64) Props {
	return Props{{p, v}}
}

// And appends another property.
func (ps Props) And(p Prop, v float64) Props {
	return append(ps, PropValue{p, v})
}

// Lookup returns the value for p and whether it is present.
func (ps Props) Lookup(p Prop) (float64, bool) {
	for _, pv := range ps {
		if pv.Prop == p {
			return pv.Value, true
		}
	}
	return 0, false
}

// get reads the current value of p on n.
func (n *Node) get(p Prop) float64 {
	switch p {
	case PropAlpha, PropAutoAlpha:
		return n.Alpha
	case PropOffsetY:
		return n.OffsetY
	case PropRotateX:
		return n.RotateX
	case PropBlur:
		return n.Blur
	}
	return 0
}

// set writes v to p on n and marks the node dirty.
func (n *Node) set(p Prop, v float64) {
	switch p {
	case PropAlpha:
		n.Alpha = v
	case PropAutoAlpha:
		n.Alpha = v
		n.Visible = v > 0
	case PropOffsetY:
		n.OffsetY = v
	case PropRotateX:
		n.RotateX = v
	case PropBlur:
		if v < 0 {
			v = 0
		}
		n.Blur = v
	}
	n.transformDirty = true
}

// Apply writes every property in ps to n immediately.
func (n *Node) Apply(ps Props) {
	for _, pv := range ps {
		n.set(pv.Prop, pv.Value)
	}
}

const maxTweenProps = 4

// TweenGroup animates up to 4 properties on a Node simultaneously.
// Create one with NewTweenGroup or a convenience constructor and call
// Update(dt) each frame, or Seek to an absolute time. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens   [maxTweenProps]*gween.Tween
	props    [maxTweenProps]Prop
	ends     [maxTweenProps]float64
	count    int
	target   *Node
	duration float32
	elapsed  float32
	Done     bool
}

// NewTweenGroup creates a group animating node from `from` to `to`. Properties
// missing from `from` start at the node's current value. Zero or negative
// durations jump straight to the end on the first Update.
func NewTweenGroup(node *Node, from, to Props, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{target: node, duration: duration}
	for _, pv := range to {
		if g.count == maxTweenProps {
			break
		}
		start, ok := from.Lookup(pv.Prop)
		if !ok {
			start = node.get(pv.Prop)
		}
		g.tweens[g.count] = gween.New(float32(start), float32(pv.Value), duration, fn)
		g.props[g.count] = pv.Prop
		g.ends[g.count] = pv.Value
		g.count++
	}
	return g
}

// Duration returns the group's length in seconds.
func (g *TweenGroup) Duration() float32 {
	return g.duration
}

// Elapsed returns the playhead position in seconds.
func (g *TweenGroup) Elapsed() float32 {
	return g.elapsed
}

// Update advances all tweens by dt seconds and writes values to the target.
// If the target node has been disposed, Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	g.Seek(g.elapsed + dt)
}

// Seek moves the playhead to t (clamped to [0, duration]) and writes values.
// Done reports whether the playhead sits at the end.
func (g *TweenGroup) Seek(t float32) {
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	if t < 0 {
		t = 0
	}
	if t > g.duration {
		t = g.duration
	}
	g.elapsed = t

	for i := 0; i < g.count; i++ {
		val := g.ends[i]
		if g.duration > 0 {
			v, _ := g.tweens[i].Set(t)
			val = float64(v)
		}
		if g.target != nil {
			g.target.set(g.props[i], val)
		}
	}
	g.Done = t >= g.duration
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return NewTweenGroup(node, nil, Set(PropAlpha, to), duration, fn)
}

// TweenOffsetY creates a TweenGroup that animates node.OffsetY to the target value.
func TweenOffsetY(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return NewTweenGroup(node, nil, Set(PropOffsetY, to), duration, fn)
}

// TweenRotateX creates a TweenGroup that animates node.RotateX (degrees) to
// the target value.
func TweenRotateX(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return NewTweenGroup(node, nil, Set(PropRotateX, to), duration, fn)
}
