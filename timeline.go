package envelope

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// TweenOption customizes a timeline tween.
type TweenOption func(*timelineEntry)

// WithEase overrides the timeline's default easing for one tween.
func WithEase(fn ease.TweenFunc) TweenOption {
	return func(e *timelineEntry) { e.ease = fn }
}

// OnComplete registers fn to run when the tween reaches its end.
func OnComplete(fn func()) TweenOption {
	return func(e *timelineEntry) { e.onComplete = fn }
}

type timelineEntry struct {
	offset     float32
	duration   float32
	target     *Node
	to         Props
	ease       ease.TweenFunc
	onComplete func()
	call       func()

	group  *TweenGroup
	active bool
	ended  bool
}

type eventKind uint8

const (
	eventStart eventKind = iota // tween activation or callback
	eventEnd                    // tween completion
)

type timelineEvent struct {
	at    float32
	seq   int
	kind  eventKind
	entry *timelineEntry
}

// Timeline is a one-shot composition of tweens and callbacks placed at
// absolute offsets (seconds) from its start. Tweens capture their starting
// values when the playhead reaches them. Discrete events (starts, callbacks,
// completions) fire in time order even when one Update spans several; ties
// keep insertion order. A finished timeline ignores further updates.
type Timeline struct {
	defaultEase ease.TweenFunc
	entries     []*timelineEntry
	events      []timelineEvent
	next        int
	elapsed     float32
	playing     bool
	done        bool
}

// NewTimeline creates an empty timeline. Tweens without WithEase use
// defaultEase; nil means ease.Linear.
func NewTimeline(defaultEase ease.TweenFunc) *Timeline {
	if defaultEase == nil {
		defaultEase = ease.Linear
	}
	return &Timeline{defaultEase: defaultEase}
}

// To animates target towards props over duration seconds, starting at offset.
// Entries added after playback has begun are ignored.
func (t *Timeline) To(target *Node, props Props, offset, duration float32, opts ...TweenOption) *Timeline {
	if t.playing || target == nil {
		return t
	}
	e := &timelineEntry{
		offset:   offset,
		duration: duration,
		target:   target,
		to:       props,
		ease:     t.defaultEase,
	}
	for _, opt := range opts {
		opt(e)
	}
	t.entries = append(t.entries, e)
	return t
}

// Call runs fn once when the playhead reaches offset.
func (t *Timeline) Call(fn func(), offset float32) *Timeline {
	if t.playing || fn == nil {
		return t
	}
	t.entries = append(t.entries, &timelineEntry{offset: offset, call: fn})
	return t
}

// Duration returns the end time of the last entry.
func (t *Timeline) Duration() float32 {
	var end float32
	for _, e := range t.entries {
		end = max(end, e.offset+e.duration)
	}
	return end
}

// Elapsed returns the playhead position in seconds.
func (t *Timeline) Elapsed() float32 {
	return t.elapsed
}

// Done reports whether every entry has fired.
func (t *Timeline) Done() bool {
	return t.done
}

// Len returns the number of entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

func (t *Timeline) compile() {
	t.events = t.events[:0]
	for i, e := range t.entries {
		t.events = append(t.events, timelineEvent{at: e.offset, seq: i, kind: eventStart, entry: e})
		if e.call == nil {
			t.events = append(t.events, timelineEvent{at: e.offset + e.duration, seq: i, kind: eventEnd, entry: e})
		}
	}
	sort.SliceStable(t.events, func(a, b int) bool {
		ea, eb := t.events[a], t.events[b]
		if ea.at != eb.at {
			return ea.at < eb.at
		}
		if ea.kind != eb.kind {
			return ea.kind < eb.kind
		}
		return ea.seq < eb.seq
	})
}

// Update advances the playhead by dt seconds.
func (t *Timeline) Update(dt float32) {
	if t.done {
		return
	}
	if !t.playing {
		t.playing = true
		t.compile()
	}
	if dt < 0 {
		dt = 0
	}
	target := t.elapsed + dt

	for t.next < len(t.events) && t.events[t.next].at <= target {
		ev := t.events[t.next]
		t.next++
		t.seek(ev.at)
		t.fire(ev)
	}
	t.seek(target)
	t.elapsed = target

	if t.next >= len(t.events) {
		t.done = true
	}
}

// seek positions every running tween at absolute time at.
func (t *Timeline) seek(at float32) {
	for _, e := range t.entries {
		if e.active && !e.ended {
			e.group.Seek(at - e.offset)
		}
	}
}

func (t *Timeline) fire(ev timelineEvent) {
	e := ev.entry
	switch {
	case e.call != nil:
		e.call()
	case ev.kind == eventStart:
		e.group = NewTweenGroup(e.target, nil, e.to, e.duration, e.ease)
		e.active = true
		e.group.Seek(0)
	default:
		if e.group != nil {
			e.group.Seek(e.duration)
		}
		e.ended = true
		if e.onComplete != nil {
			e.onComplete()
		}
	}
}
