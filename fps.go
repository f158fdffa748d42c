package envelope

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget creates a text node that shows the current FPS and TPS,
// refreshed about twice a second. Add it to Scene.Overlay to keep it fixed.
func NewFPSWidget() *Node {
	node := NewText("fps-widget", "", 12, RGBA8(255, 255, 255, 0.8))
	node.SetPosition(8, 8)

	var since float64
	node.OnUpdate = func(dt float64) {
		since += dt
		if since < 0.5 && node.Text != "" {
			return
		}
		since = 0
		node.Text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	return node
}

// updateNodeHooks runs OnUpdate for every visible node in document order.
func updateNodeHooks(n *Node, dt float64) {
	n.Walk(func(c *Node) bool {
		if !c.Visible {
			return false
		}
		if c.OnUpdate != nil {
			c.OnUpdate(dt)
		}
		return true
	})
}
