package envelope

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func newClickScene() (*Scene, *Node, *int) {
	s := NewScene()
	btn := NewBox("btn", 100, 40, ColorWhite)
	btn.SetPosition(50, 50)
	btn.Interactable = true
	clicks := 0
	btn.OnClick = func(ctx ClickContext) {
		clicks++
	}
	s.Overlay().AddChild(btn)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	return s, btn, &clicks
}

func TestInjectClick(t *testing.T) {
	s, _, clicks := newClickScene()

	s.InjectClick(60, 60)
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInput())
	}

	// Frame 1: press
	s.processInput()
	if *clicks != 0 {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release → click fires
	s.processInput()
	if s.PendingInput() != 0 {
		t.Fatalf("expected empty queue, got %d", s.PendingInput())
	}
	if *clicks != 1 {
		t.Errorf("clicks = %d, want 1", *clicks)
	}
}

func TestClickRequiresReleaseOnSameNode(t *testing.T) {
	s, _, clicks := newClickScene()
	s.InjectPress(60, 60)
	s.InjectRelease(300, 300)
	s.processInput()
	s.processInput()
	if *clicks != 0 {
		t.Error("release outside the node should not click")
	}
}

func TestClickSkipsHiddenAndDisabled(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
	}{
		{"invisible", func(n *Node) { n.Visible = false }},
		{"transparent", func(n *Node) { n.SetAlpha(0) }},
		{"disabled", func(n *Node) { n.Disabled = true }},
		{"not interactable", func(n *Node) { n.Interactable = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, btn, clicks := newClickScene()
			tt.setup(btn)
			updateWorldTransform(s.root, identityTransform, 1.0, false)
			s.InjectClick(60, 60)
			s.processInput()
			s.processInput()
			if *clicks != 0 {
				t.Error("click delivered")
			}
		})
	}
}

func TestHitTestFollowsScroll(t *testing.T) {
	s := NewScene()
	s.Classes().Remove(ClassLocked)
	tall := NewBox("tall", 10, 2000, ColorWhite)
	btn := NewBox("btn", 100, 40, ColorWhite)
	btn.SetPosition(0, 1000)
	btn.Interactable = true
	s.Page().AddChild(tall)
	s.Page().AddChild(btn)
	s.Resize(Measure(800, 600, 1))
	s.Scroll().ScrollTo(900, 0, nil)
	_ = s.step(testDT)

	if got := s.hitTest(10, 110); got != btn {
		t.Errorf("hitTest at viewport (10, 110) = %v, want btn", got)
	}
	if got := s.hitTest(10, 1010); got != nil {
		t.Errorf("document coordinates should not hit: %v", got)
	}
}

func TestHitTestTopmost(t *testing.T) {
	s := NewScene()
	below := NewBox("below", 100, 100, ColorWhite)
	below.Interactable = true
	above := NewBox("above", 100, 100, ColorWhite)
	above.Interactable = true
	s.Page().AddChild(below)
	s.Overlay().AddChild(above)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	if got := s.hitTest(50, 50); got != above {
		t.Errorf("hitTest = %v, want the overlay node", got)
	}
	above.HitShape = HitRect{Width: 10, Height: 10}
	if got := s.hitTest(50, 50); got != below {
		t.Errorf("hitTest with custom shape = %v, want below", got)
	}
}

func TestScrollLockedIgnoresWheelAndKeys(t *testing.T) {
	s := NewScene()
	s.Page().AddChild(NewBox("tall", 10, 3000, ColorWhite))
	s.Resize(Measure(800, 600, 1))

	s.InjectScroll(200)
	s.InjectKey(ebiten.KeyPageDown)
	for i := 0; i < 30; i++ {
		_ = s.step(testDT)
	}
	if s.Scroll().Y != 0 {
		t.Fatalf("locked scroll moved to %v", s.Scroll().Y)
	}

	s.Classes().Remove(ClassLocked)
	s.InjectScroll(200)
	_ = s.step(testDT)
	if s.Scroll().Y != 200 {
		t.Errorf("wheel scroll = %v, want 200", s.Scroll().Y)
	}
	if s.Page().Y != -200 {
		t.Errorf("page layer y = %v, want -200", s.Page().Y)
	}

	s.InjectKey(ebiten.KeyEnd)
	for i := 0; i < 30; i++ {
		_ = s.step(testDT)
	}
	if s.Scroll().Y != 2400 {
		t.Errorf("End scrolled to %v, want 2400", s.Scroll().Y)
	}
}

func TestTabCyclesFocus(t *testing.T) {
	s := NewScene()
	a := NewBox("a", 10, 10, ColorWhite)
	b := NewBox("b", 10, 10, ColorWhite)
	c := NewBox("c", 10, 10, ColorWhite)
	a.Interactable = true
	b.Interactable = true
	s.Overlay().AddChild(a)
	s.Overlay().AddChild(b)
	s.Overlay().AddChild(c)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	s.handleKey(ebiten.KeyTab, false)
	if s.Focus() != a {
		t.Fatalf("focus = %v, want a", s.Focus())
	}
	s.handleKey(ebiten.KeyTab, false)
	if s.Focus() != b {
		t.Fatalf("focus = %v, want b", s.Focus())
	}
	s.handleKey(ebiten.KeyTab, false)
	if s.Focus() != a {
		t.Errorf("focus should wrap to a, got %v", s.Focus())
	}
	s.handleKey(ebiten.KeyTab, true)
	if s.Focus() != b {
		t.Errorf("shift-tab focus = %v, want b", s.Focus())
	}
}

func TestSpaceActivatesFocus(t *testing.T) {
	s, btn, clicks := newClickScene()
	s.SetFocus(btn)
	var keyboard bool
	btn.OnClick = func(ctx ClickContext) {
		*clicks++
		keyboard = ctx.Keyboard
	}
	s.handleKey(ebiten.KeySpace, false)
	if *clicks != 1 || !keyboard {
		t.Errorf("clicks=%d keyboard=%v", *clicks, keyboard)
	}
}
