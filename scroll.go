package envelope

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds an active scroll-to tween for the vertical position.
type scrollAnim struct {
	tweenY *gween.Tween
	to     float64
}

// Scroll is the document scroll position. Only the page layer moves with it;
// the overlay and the drawing surfaces are fixed to the viewport.
type Scroll struct {
	// X and Y are the scroll offsets in logical pixels.
	X, Y float64
	// MaxY is the largest reachable Y: content height minus viewport height.
	MaxY float64

	tween *scrollAnim
}

// Reset jumps to the top-left corner instantly, cancelling any animation.
func (s *Scroll) Reset() {
	s.tween = nil
	s.X, s.Y = 0, 0
}

// ScrollTo animates to y over duration seconds. A non-positive duration
// jumps instantly.
func (s *Scroll) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = s.clamp(y)
	if duration <= 0 {
		s.tween = nil
		s.Y = y
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	s.tween = &scrollAnim{tweenY: gween.New(float32(s.Y), float32(y), duration, easeFn), to: y}
}

// ScrollBy animates by dy relative to the current target.
func (s *Scroll) ScrollBy(dy float64, duration float32) {
	s.ScrollTo(s.Target()+dy, duration, ease.OutCubic)
}

// Target returns where the scroll position is heading.
func (s *Scroll) Target() float64 {
	if s.tween != nil {
		return s.tween.to
	}
	return s.Y
}

// Animating reports whether a scroll tween is in progress.
func (s *Scroll) Animating() bool {
	return s.tween != nil
}

// SetMaxY updates the reachable range and clamps the current position.
func (s *Scroll) SetMaxY(maxY float64) {
	s.MaxY = math.Max(0, maxY)
	s.Y = s.clamp(s.Y)
}

// update advances the scroll animation. Called from Scene.Update().
func (s *Scroll) update(dt float32) {
	if s.tween != nil {
		val, done := s.tween.tweenY.Update(dt)
		s.Y = s.clamp(float64(val))
		if done {
			s.tween = nil
		}
	}
}

func (s *Scroll) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, s.MaxY))
}
