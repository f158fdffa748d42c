package envelope

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Scroll distances in logical pixels.
const (
	wheelStep      = 48.0
	arrowStep      = 40.0
	pageStepFactor = 0.9
	keyScrollTime  = 0.25 // seconds
)

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// pointerState tracks the press that may become a click.
type pointerState struct {
	down     bool
	downNode *Node
	touches  []ebiten.TouchID
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's layout box.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// focusable reports whether n can receive clicks and keyboard focus.
func focusable(n *Node) bool {
	return n != nil && !n.disposed && n.Interactable && !n.Disabled && n.Visible && n.worldAlpha > 0
}

// collectInteractable appends focusable nodes in painter order. Hidden
// subtrees are skipped.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if focusable(n) {
		buf = append(buf, n)
	}
	for _, c := range n.children {
		buf = collectInteractable(c, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at logical point (x, y).
func (s *Scene) hitTest(x, y float64) *Node {
	nodes := collectInteractable(s.root, nil)
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update to handle pointer, keyboard, and
// wheel input. Injected events take priority over real pointer input.
func (s *Scene) processInput() {
	if !s.processInjectedInput() {
		s.processMousePointer()
		s.processTouches()
	}

	for _, k := range []ebiten.Key{
		ebiten.KeyTab, ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace,
		ebiten.KeyArrowDown, ebiten.KeyArrowUp, ebiten.KeyPageDown, ebiten.KeyPageUp,
		ebiten.KeyHome, ebiten.KeyEnd,
	} {
		if inpututil.IsKeyJustPressed(k) {
			s.handleKey(k, ebiten.IsKeyPressed(ebiten.KeyShift))
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		s.handleWheel(-dy * wheelStep)
	}
}

// toLogical converts device pixels to logical coordinates.
func (s *Scene) toLogical(px, py int) (float64, float64) {
	dpr := s.vp.DPR
	if dpr <= 0 {
		dpr = 1
	}
	return float64(px) / dpr, float64(py) / dpr
}

func (s *Scene) processMousePointer() {
	x, y := s.toLogical(ebiten.CursorPosition())
	s.processPointer(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processTouches turns a completed tap into a press and release pair.
func (s *Scene) processTouches() {
	s.pointer.touches = inpututil.AppendJustPressedTouchIDs(s.pointer.touches[:0])
	for _, id := range s.pointer.touches {
		x, y := s.toLogical(ebiten.TouchPosition(id))
		s.processPointer(x, y, true)
	}
	s.pointer.touches = inpututil.AppendJustReleasedTouchIDs(s.pointer.touches[:0])
	for _, id := range s.pointer.touches {
		x, y := s.toLogical(inpututil.TouchPositionInPreviousTick(id))
		s.processPointer(x, y, false)
	}
}

// processPointer runs the press/release state machine. A click fires when the
// release lands on the node that received the press.
func (s *Scene) processPointer(x, y float64, pressed bool) {
	ps := &s.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.downNode = s.hitTest(x, y)
		if ps.downNode != nil {
			s.focus = ps.downNode
		}
	case !pressed && ps.down:
		ps.down = false
		target := s.hitTest(x, y)
		if target != nil && target == ps.downNode {
			s.fireClick(target, x, y, false)
		}
		ps.downNode = nil
	}
}

// handleKey applies one key press: Tab moves focus, Enter and Space activate
// the focused control, and the navigation keys scroll when the body is not
// locked.
func (s *Scene) handleKey(k ebiten.Key, shift bool) {
	switch k {
	case ebiten.KeyTab:
		s.moveFocus(shift)
		return
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		if focusable(s.focus) {
			s.fireClick(s.focus, 0, 0, true)
		}
		return
	case ebiten.KeySpace:
		if focusable(s.focus) {
			s.fireClick(s.focus, 0, 0, true)
			return
		}
	}

	if s.ScrollLocked() {
		return
	}
	page := s.vp.Height * pageStepFactor
	switch k {
	case ebiten.KeyArrowDown:
		s.scroll.ScrollBy(arrowStep, keyScrollTime)
	case ebiten.KeyArrowUp:
		s.scroll.ScrollBy(-arrowStep, keyScrollTime)
	case ebiten.KeyPageDown, ebiten.KeySpace:
		if shift {
			page = -page
		}
		s.scroll.ScrollBy(page, keyScrollTime)
	case ebiten.KeyPageUp:
		s.scroll.ScrollBy(-page, keyScrollTime)
	case ebiten.KeyHome:
		s.scroll.ScrollTo(0, keyScrollTime, nil)
	case ebiten.KeyEnd:
		s.scroll.ScrollTo(s.scroll.MaxY, keyScrollTime, nil)
	}
}

// handleWheel scrolls instantly by dy logical pixels unless locked.
func (s *Scene) handleWheel(dy float64) {
	if s.ScrollLocked() {
		return
	}
	s.scroll.ScrollBy(dy, 0)
}

// Focus returns the node holding keyboard focus, or nil.
func (s *Scene) Focus() *Node {
	if !focusable(s.focus) {
		return nil
	}
	return s.focus
}

// SetFocus gives keyboard focus to n. Focus on a node that is not (or no
// longer) focusable is ignored by Enter and Space.
func (s *Scene) SetFocus(n *Node) {
	if n != nil && n.disposed {
		n = nil
	}
	s.focus = n
}

// moveFocus cycles focus through focusable nodes in document order.
func (s *Scene) moveFocus(backward bool) {
	nodes := collectInteractable(s.root, nil)
	if len(nodes) == 0 {
		s.focus = nil
		return
	}
	cur := -1
	for i, n := range nodes {
		if n == s.focus {
			cur = i
			break
		}
	}
	switch {
	case cur < 0 && backward:
		cur = len(nodes) - 1
	case cur < 0:
		cur = 0
	case backward:
		cur = (cur - 1 + len(nodes)) % len(nodes)
	default:
		cur = (cur + 1) % len(nodes)
	}
	s.focus = nodes[cur]
}

// fireClick delivers a click to node. Disabled nodes swallow it.
func (s *Scene) fireClick(node *Node, x, y float64, keyboard bool) {
	if node.Disabled || node.OnClick == nil {
		return
	}
	lx, ly := node.WorldToLocal(x, y)
	node.OnClick(ClickContext{
		Node:     node,
		GlobalX:  x,
		GlobalY:  y,
		LocalX:   lx,
		LocalY:   ly,
		Keyboard: keyboard,
	})
}
