package envelope

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Body classes toggled by the open sequence.
const (
	ClassLocked = "is-locked"
	ClassOpen   = "is-open"
)

// ClassList is a set of class names on the document body.
type ClassList map[string]struct{}

// Add inserts name.
func (c ClassList) Add(name string) { c[name] = struct{}{} }

// Remove deletes name. Removing an absent class is a no-op.
func (c ClassList) Remove(name string) { delete(c, name) }

// Has reports whether name is present.
func (c ClassList) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// frameQueue is the per-frame callback queue. Callbacks requested while the
// queue is being flushed run on the following flush, so no callback ever
// overlaps its own next run.
type frameQueue struct {
	pending []func()
	running []func()
}

// RequestFrame queues fn for the next flush.
func (q *frameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len returns the number of queued callbacks.
func (q *frameQueue) Len() int {
	return len(q.pending)
}

func (q *frameQueue) flush() {
	q.running, q.pending = q.pending, q.running[:0]
	for _, fn := range q.running {
		fn()
	}
	clear(q.running)
}

// Scene is the top-level object that owns the document tree, scroll state,
// frame queue, fields, and timelines.
type Scene struct {
	root    *Node
	page    *Node // scrolling layer
	overlay *Node // fixed layer above the page
	debug   bool

	// ClearColor fills the screen before the document is drawn.
	ClearColor Color

	classes   ClassList
	scroll    Scroll
	frames    frameQueue
	vp        Viewport
	sized     bool
	fields    []*Field
	autostart []*Field
	timelines []*Timeline
	reveals   *RevealBinder

	updateFunc func() error
	elapsed    float64

	// OnResize runs on every Resize after the fields are resized and before
	// the scroll range and reveal triggers are recomputed, so layout code
	// can reposition nodes for the new viewport.
	OnResize func(vp Viewport)

	// Input state
	pointer     pointerState
	focus       *Node
	injectQueue []syntheticEvent
	testRunner  *TestRunner

	// Render state
	blurTargets map[*Node]*blurTarget
	verts       []ebiten.Vertex
	inds        []uint16
}

// NewScene creates a scene with a root holding the page layer and the fixed
// overlay layer. The body starts scroll-locked.
func NewScene() *Scene {
	root := NewContainer("root")
	page := NewContainer("page-layer")
	overlay := NewContainer("overlay-layer")
	root.AddChild(page)
	root.AddChild(overlay)
	s := &Scene{
		root:        root,
		page:        page,
		overlay:     overlay,
		classes:     ClassList{},
		vp:          Viewport{DPR: 1},
		blurTargets: map[*Node]*blurTarget{},
	}
	s.classes.Add(ClassLocked)
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Page returns the scrolling layer.
func (s *Scene) Page() *Node {
	return s.page
}

// Overlay returns the fixed layer drawn above the page.
func (s *Scene) Overlay() *Node {
	return s.overlay
}

// Classes returns the body class list.
func (s *Scene) Classes() ClassList {
	return s.classes
}

// Scroll returns the document scroll state.
func (s *Scene) Scroll() *Scroll {
	return &s.scroll
}

// Viewport returns the most recent viewport.
func (s *Scene) Viewport() Viewport {
	return s.vp
}

// Elapsed returns the seconds simulated by Update so far.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// RequestFrame queues fn to run on the next Update.
func (s *Scene) RequestFrame(fn func()) {
	s.frames.RequestFrame(fn)
}

// SetUpdateFunc registers a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetRevealBinder attaches the binder driven by scroll position.
func (s *Scene) SetRevealBinder(b *RevealBinder) {
	s.reveals = b
}

// --- Queries ---

// Query returns the first node in document order carrying m, or nil.
func (s *Scene) Query(m Marker) *Node {
	var found *Node
	s.root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.HasMarker(m) {
			found = n
			return false
		}
		return true
	})
	return found
}

// QueryAll returns every node carrying m in document order.
func (s *Scene) QueryAll(m Marker) []*Node {
	var out []*Node
	s.root.Walk(func(n *Node) bool {
		if n.HasMarker(m) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByName returns the first node whose Name is id, or nil.
func (s *Scene) ByName(id string) *Node {
	var found *Node
	s.root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Name == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Contains reports whether n is attached to this scene's tree.
func (s *Scene) Contains(n *Node) bool {
	return n.InDocument(s.root)
}

// --- Fields & timelines ---

// AddField registers f for resize handling. When autostart is true the
// field starts on the first Resize (or immediately if the scene already has
// a viewport).
func (s *Scene) AddField(f *Field, autostart bool) {
	s.fields = append(s.fields, f)
	if !autostart {
		return
	}
	if s.sized {
		f.Start(s.vp)
		return
	}
	s.autostart = append(s.autostart, f)
}

// Play starts advancing tl on every Update until it finishes.
func (s *Scene) Play(tl *Timeline) {
	s.timelines = append(s.timelines, tl)
}

// Resize applies a new viewport: every field's surface is resized and its
// collection rebuilt, reveal triggers are recomputed, and the scroll range is
// clamped. Calling it twice with the same viewport yields the same state.
func (s *Scene) Resize(vp Viewport) {
	s.vp = vp
	for _, f := range s.fields {
		f.Resize(vp)
	}
	if !s.sized {
		s.sized = true
		for _, f := range s.autostart {
			f.Start(vp)
		}
		s.autostart = nil
	}
	if s.OnResize != nil {
		s.OnResize(vp)
	}
	s.refreshLayout()
}

// refreshLayout recomputes the scroll range and reveal triggers.
func (s *Scene) refreshLayout() {
	s.scroll.SetMaxY(s.contentHeight() - s.vp.Height)
	if s.reveals != nil {
		s.reveals.Refresh(s.vp.Height)
	}
	s.syncScroll()
}

// contentHeight is the bottom edge of the lowest node in the page layer.
// Hidden nodes still occupy layout space.
func (s *Scene) contentHeight() float64 {
	bottom := 0.0
	s.page.Walk(func(n *Node) bool {
		if b := n.DocumentTop(s.page) + n.Height; b > bottom {
			bottom = b
		}
		return true
	})
	return bottom
}

// ScrollLocked reports whether the body lock class blocks scrolling.
func (s *Scene) ScrollLocked() bool {
	return s.classes.Has(ClassLocked)
}

func (s *Scene) syncScroll() {
	if s.page.Y != -s.scroll.Y {
		s.page.Y = -s.scroll.Y
		s.page.MarkDirty()
	}
}

// Update processes input, advances timelines, runs queued frame callbacks,
// and drives scroll-triggered reveals.
func (s *Scene) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	return s.step(dt)
}

func (s *Scene) step(dt float32) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.elapsed += float64(dt)

	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	s.scroll.update(dt)
	s.syncScroll()

	live := s.timelines[:0]
	for _, tl := range s.timelines {
		tl.Update(dt)
		if !tl.Done() {
			live = append(live, tl)
		}
	}
	clear(s.timelines[len(live):])
	s.timelines = live

	s.frames.flush()

	if s.reveals != nil {
		s.reveals.Update(s.scroll.Y, dt)
	}
	updateNodeHooks(s.root, float64(dt))
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.debug {
		s.debugLog(frameStats{updateTime: time.Since(t0), fields: s.fields, queued: s.frames.Len()})
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, and per-frame stats are
// logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
