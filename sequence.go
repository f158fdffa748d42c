package envelope

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// ErrMissingElement is returned when a required marker has no node.
var ErrMissingElement = errors.New("envelope: missing element")

// OpenSequence is the one-shot transition from the sealed gate to the page.
type OpenSequence struct {
	scene  *Scene
	rain   *Field
	petals *Field

	gate, page, open, envelope, flap *Node

	timeline  *Timeline
	triggered bool
	err       error
}

// NewOpenSequence resolves the gate, page, open control, envelope, and flap
// markers in scene. When any is missing the sequence is inert: Bind and
// Trigger do nothing and Err reports which marker was absent. rain is halted
// when the gate goes away; petals start once the page unlocks. Either may be
// nil.
func NewOpenSequence(scene *Scene, rain, petals *Field) *OpenSequence {
	q := &OpenSequence{scene: scene, rain: rain, petals: petals}
	for _, r := range []struct {
		m   Marker
		dst **Node
	}{
		{MarkerGate, &q.gate},
		{MarkerPage, &q.page},
		{MarkerOpen, &q.open},
		{MarkerEnvelope, &q.envelope},
		{MarkerFlap, &q.flap},
	} {
		*r.dst = scene.Query(r.m)
		if *r.dst == nil {
			q.err = fmt.Errorf("%w: %s", ErrMissingElement, r.m)
			if globalDebug {
				debugLogf("open sequence skipped: %v", q.err)
			}
			break
		}
	}
	return q
}

// Err returns the resolution error, if any.
func (q *OpenSequence) Err() error {
	return q.err
}

// Triggered reports whether the sequence has started.
func (q *OpenSequence) Triggered() bool {
	return q.triggered
}

// Timeline returns the running timeline, or nil before Trigger.
func (q *OpenSequence) Timeline() *Timeline {
	return q.timeline
}

// Bind makes the open control activate the sequence on click or keyboard.
func (q *OpenSequence) Bind() {
	if q.err != nil {
		return
	}
	q.open.Interactable = true
	q.open.OnClick = func(ClickContext) { q.Trigger() }
}

// Trigger starts the sequence. It reports false when the sequence is inert
// or was already triggered.
func (q *OpenSequence) Trigger() bool {
	if q.err != nil || q.triggered {
		return false
	}
	q.triggered = true
	q.open.Disabled = true

	s := q.scene
	s.scroll.Reset()
	s.syncScroll()

	tl := NewTimeline(ease.OutCubic)
	tl.To(q.open, Set(PropAutoAlpha, 0).And(PropOffsetY, -6), 0, 0.20).
		To(q.flap, Set(PropRotateX, -155), 0.06, 0.85).
		To(q.envelope, Set(PropOffsetY, -10), 0.10, 0.45).
		To(q.gate, Set(PropAutoAlpha, 0), 0.70, 0.55, OnComplete(q.removeGate)).
		Call(q.unlock, 0.72).
		To(q.page, Set(PropAutoAlpha, 1).And(PropOffsetY, 0), 0.78, 0.55).
		Call(q.refresh, 1.05)
	q.timeline = tl
	s.Play(tl)
	return true
}

func (q *OpenSequence) removeGate() {
	if q.rain != nil {
		q.rain.Halt()
	}
	q.gate.Dispose()
}

func (q *OpenSequence) unlock() {
	s := q.scene
	s.classes.Remove(ClassLocked)
	s.classes.Add(ClassOpen)
	s.scroll.Reset()
	s.syncScroll()
	if q.petals != nil {
		q.petals.Start(s.vp)
	}
}

func (q *OpenSequence) refresh() {
	q.scene.refreshLayout()
}
