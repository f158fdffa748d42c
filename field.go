package envelope

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultBreakpoint is the widest viewport, in logical pixels, that still
// counts as mobile.
const DefaultBreakpoint = 719

// FrameScheduler queues a callback for the next frame.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// particleSystem is the per-kind part of a Field: its particle collection,
// spawn policy, update rule, and draw routine.
type particleSystem interface {
	seed(vp Viewport, mobile bool, rng *rand.Rand)
	step(vp Viewport, rng *rand.Rand)
	draw(dst *ebiten.Image, geoM ebiten.GeoM)
	count() int
}

// FieldConfig holds the collaborators shared by every field.
type FieldConfig struct {
	// Surface is the drawing surface the field renders into.
	Surface *Surface
	// Scheduler receives the field's per-frame tick.
	Scheduler FrameScheduler
	// Motion is evaluated on every seed.
	Motion MotionQuery
	// Breakpoint selects the mobile particle count when the viewport width
	// is at or below it. Zero means DefaultBreakpoint.
	Breakpoint float64
	// Rand is the sampling source. Nil uses the package-level source.
	Rand *rand.Rand
}

// Field owns one particle simulation and its renderer. Its only writer is its
// own scheduled tick; a tick is re-submitted only after it completes.
type Field struct {
	name       string
	sys        particleSystem
	surface    *Surface
	scheduler  FrameScheduler
	motion     MotionQuery
	breakpoint float64
	rng        *rand.Rand

	state     FieldState
	running   bool
	scheduled bool
	vp        Viewport
	ticks     int

	// anchor, when set, must stay in the document for the field to keep
	// running. Its disposal halts the field.
	anchor *Node

	// OnStop runs once each time a running field stops, whether halted or
	// disabled.
	OnStop func()
}

func newField(name string, sys particleSystem, cfg FieldConfig) *Field {
	bp := cfg.Breakpoint
	if bp == 0 {
		bp = DefaultBreakpoint
	}
	f := &Field{
		name:       name,
		sys:        sys,
		surface:    cfg.Surface,
		scheduler:  cfg.Scheduler,
		motion:     cfg.Motion,
		breakpoint: bp,
		rng:        cfg.Rand,
	}
	if f.surface != nil {
		f.surface.paint = f.paint
	}
	return f
}

// Name returns the field's name.
func (f *Field) Name() string {
	return f.name
}

// State returns the field's lifecycle state.
func (f *Field) State() FieldState {
	return f.state
}

// Running reports whether the field is currently ticking.
func (f *Field) Running() bool {
	return f.running
}

// Count returns the number of particles in the collection.
func (f *Field) Count() int {
	return f.sys.count()
}

// Ticks returns the number of completed ticks.
func (f *Field) Ticks() int {
	return f.ticks
}

// Surface returns the field's drawing surface.
func (f *Field) Surface() *Surface {
	return f.surface
}

// Viewport returns the viewport the field was last seeded with.
func (f *Field) Viewport() Viewport {
	return f.vp
}

// Resize runs the Viewport Tracker for the field's surface and then reseeds,
// discarding every in-flight particle. No-op when the surface is gone.
func (f *Field) Resize(vp Viewport) {
	if !f.surface.Available() {
		return
	}
	f.surface.Resize(vp)
	f.vp = vp
	f.Seed()
}

// Seed rebuilds the particle collection from scratch after the accessibility
// check. Reports whether the collection was rebuilt.
func (f *Field) Seed() bool {
	if !f.surface.Available() || !f.gate() {
		return false
	}
	f.sys.seed(f.vp, f.vp.IsMobile(f.breakpoint), f.rng)
	return true
}

// Start sizes the surface, seeds, and begins the frame loop. A field without
// a drawing context is disabled permanently instead.
func (f *Field) Start(vp Viewport) {
	if f.surface == nil || f.surface.Removed() {
		return
	}
	if !f.surface.Available() {
		f.disable("no drawing context", false)
		return
	}
	f.Resize(vp)
	if f.state == FieldDisabled {
		return
	}
	f.running = true
	f.schedule()
}

// Halt stops the field and clears its surface. No further ticks run.
func (f *Field) Halt() {
	f.stop()
	f.surface.Clear()
}

func (f *Field) stop() {
	was := f.running
	f.running = false
	if was && f.OnStop != nil {
		f.OnStop()
	}
}

// BindAnchor ties the field's lifetime to n: once n is disposed the next
// tick halts the field.
func (f *Field) BindAnchor(n *Node) {
	f.anchor = n
}

func (f *Field) schedule() {
	if f.scheduled || f.scheduler == nil {
		return
	}
	f.scheduled = true
	f.scheduler.RequestFrame(f.tick)
}

// tick is one unit of frame work: update every particle, then queue the next
// tick while running.
func (f *Field) tick() {
	f.scheduled = false
	if !f.running {
		return
	}
	if f.anchor != nil && f.anchor.IsDisposed() {
		f.Halt()
		return
	}
	if !f.surface.Available() {
		f.stop()
		return
	}
	f.sys.step(f.vp, f.rng)
	f.ticks++
	f.schedule()
}

// paint is installed as the surface painter; it draws the current particle
// state when the field is running.
func (f *Field) paint(dst *ebiten.Image, geoM ebiten.GeoM) {
	if !f.running {
		return
	}
	f.sys.draw(dst, geoM)
}
