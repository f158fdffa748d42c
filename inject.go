package envelope

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticKey
	syntheticScroll
)

// syntheticEvent is a single injected input event. Pointer coordinates are
// logical viewport coordinates, the same space real input is converted to.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	pressed bool
	key     ebiten.Key
	shift   bool
	dy      float64
}

// InjectPress queues a pointer press at (x, y). Events are consumed one per
// frame by processInput.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPointer, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectKey queues a single key press.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticKey, key: k})
}

// InjectScroll queues a wheel scroll of dy logical pixels (positive scrolls
// down). Ignored while the body is locked, like real wheel input.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScroll, dy: dy})
}

// PendingInput returns the number of queued synthetic events.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same paths as real input. Returns true if an event was
// consumed (real pointer input is skipped that frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		s.processPointer(evt.x, evt.y, evt.pressed)
	case syntheticKey:
		s.handleKey(evt.key, evt.shift)
	case syntheticScroll:
		s.handleWheel(evt.dy)
	}
	return true
}
