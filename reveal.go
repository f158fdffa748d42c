package envelope

import "github.com/tanema/gween/ease"

// RevealConfig describes the entrance applied to every reveal element.
type RevealConfig struct {
	// FromOffsetY and FromBlur give the hidden state; the shown state is
	// fully opaque with no offset and no blur.
	FromOffsetY float64
	FromBlur    float64
	Duration    float32
	// Start is the viewport fraction the element top must pass to play.
	Start float64
	Ease  ease.TweenFunc
}

// DefaultRevealConfig returns the standard entrance: 14px rise, 10px blur,
// 0.85s, triggered when the element top reaches 88% of the viewport height.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{
		FromOffsetY: 14,
		FromBlur:    10,
		Duration:    0.85,
		Start:       0.88,
		Ease:        ease.OutQuad,
	}
}

type revealEntry struct {
	node      *Node
	group     *TweenGroup
	triggerAt float64
}

// RevealBinder plays an entrance tween on each bound element once the scroll
// position passes its trigger, and reverses it when scrolling back above.
// Trigger positions are cached and recomputed only by Refresh.
type RevealBinder struct {
	cfg       RevealConfig
	root      *Node
	entries   []*revealEntry
	refreshed bool
	refreshes int
}

// NewRevealBinder creates a binder measuring element positions relative to
// root, normally the scene's page layer.
func NewRevealBinder(root *Node, cfg RevealConfig) *RevealBinder {
	if cfg.Ease == nil {
		cfg.Ease = ease.OutQuad
	}
	return &RevealBinder{cfg: cfg, root: root}
}

// Bind puts each node into the hidden state and registers its entrance.
// Nodes already bound are skipped.
func (b *RevealBinder) Bind(nodes ...*Node) {
	for _, n := range nodes {
		if n == nil || b.bound(n) {
			continue
		}
		from := Set(PropAutoAlpha, 0).And(PropOffsetY, b.cfg.FromOffsetY).And(PropBlur, b.cfg.FromBlur)
		to := Set(PropAutoAlpha, 1).And(PropOffsetY, 0).And(PropBlur, 0)
		n.Apply(from)
		b.entries = append(b.entries, &revealEntry{
			node:  n,
			group: NewTweenGroup(n, from, to, b.cfg.Duration, b.cfg.Ease),
		})
	}
}

func (b *RevealBinder) bound(n *Node) bool {
	for _, e := range b.entries {
		if e.node == n {
			return true
		}
	}
	return false
}

// Len returns the number of bound elements.
func (b *RevealBinder) Len() int {
	return len(b.entries)
}

// Refreshes returns how many times trigger positions have been recomputed.
func (b *RevealBinder) Refreshes() int {
	return b.refreshes
}

// TriggerAt returns the cached scroll offset at which n starts playing.
func (b *RevealBinder) TriggerAt(n *Node) (float64, bool) {
	for _, e := range b.entries {
		if e.node == n {
			return e.triggerAt, b.refreshed
		}
	}
	return 0, false
}

// Refresh recomputes every trigger from the current layout and viewport
// height.
func (b *RevealBinder) Refresh(viewportHeight float64) {
	for _, e := range b.entries {
		e.triggerAt = e.node.DocumentTop(b.root) - b.cfg.Start*viewportHeight
	}
	b.refreshed = true
	b.refreshes++
}

// Update moves each entrance forward while scrollY is at or past its
// trigger and backward otherwise. Does nothing before the first Refresh.
func (b *RevealBinder) Update(scrollY float64, dt float32) {
	if !b.refreshed {
		return
	}
	for _, e := range b.entries {
		if e.node.IsDisposed() {
			continue
		}
		g := e.group
		switch {
		case scrollY >= e.triggerAt && g.Elapsed() < g.Duration():
			g.Seek(g.Elapsed() + dt)
		case scrollY < e.triggerAt && g.Elapsed() > 0:
			g.Seek(g.Elapsed() - dt)
		}
	}
}
