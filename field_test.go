package envelope

import "testing"

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	var q frameQueue
	var order []string
	q.RequestFrame(func() {
		order = append(order, "a")
		q.RequestFrame(func() { order = append(order, "c") })
	})
	q.RequestFrame(func() { order = append(order, "b") })

	q.flush()
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("first flush ran %v, want [a b]", order)
	}
	if q.Len() != 1 {
		t.Fatalf("queued = %d, want 1", q.Len())
	}
	q.flush()
	if len(order) != 3 || order[2] != "c" {
		t.Errorf("second flush ran %v, want [a b c]", order)
	}
}

func newTestRain(motion MotionQuery) (*Scene, *RainField) {
	s := NewScene()
	c := NewCanvas(RainCanvasID)
	s.Overlay().AddChild(c)
	f := NewRainField(RainConfig{}, FieldConfig{
		Surface:   c.Surface,
		Scheduler: s,
		Motion:    motion,
		Rand:      testRand(),
	})
	return s, f
}

func TestFieldTicksOncePerFrame(t *testing.T) {
	s, f := newTestRain(nil)
	f.Start(Measure(800, 600, 1))
	if !f.Running() || f.State() != FieldActive {
		t.Fatal("field should be running")
	}
	for i := 1; i <= 5; i++ {
		s.frames.flush()
		if f.Ticks() != i {
			t.Fatalf("after %d frames ticks = %d", i, f.Ticks())
		}
		if s.frames.Len() != 1 {
			t.Fatalf("frame %d: %d callbacks queued, want 1", i, s.frames.Len())
		}
	}
}

func TestFieldStartTwiceSchedulesOnce(t *testing.T) {
	s, f := newTestRain(nil)
	vp := Measure(800, 600, 1)
	f.Start(vp)
	f.Start(vp)
	if s.frames.Len() != 1 {
		t.Errorf("queued = %d, want 1", s.frames.Len())
	}
}

func TestFieldReducedMotionDisables(t *testing.T) {
	reduce := false
	s, f := newTestRain(func() bool { return reduce })
	f.Start(Measure(800, 600, 1))
	s.frames.flush()

	reduce = true
	if f.Seed() {
		t.Fatal("Seed should refuse under reduced motion")
	}
	if f.State() != FieldDisabled || f.Running() {
		t.Fatalf("state = %v running = %v, want disabled and stopped", f.State(), f.Running())
	}
	if !f.Surface().Removed() {
		t.Error("surface should be removed from the document")
	}
	if s.ByName(RainCanvasID) != nil {
		t.Error("canvas node still in document")
	}

	// A second evaluation is a no-op and nothing restarts the field.
	f.Seed()
	reduce = false
	f.Start(Measure(800, 600, 1))
	s.frames.flush()
	s.frames.flush()
	if f.State() != FieldDisabled || f.Running() {
		t.Error("disabled field restarted")
	}
	if s.frames.Len() != 0 {
		t.Errorf("disabled field left %d callbacks queued", s.frames.Len())
	}
}

func TestFieldReducedMotionAtStart(t *testing.T) {
	s, f := newTestRain(StaticMotion(true))
	f.Start(Measure(800, 600, 1))
	if f.Running() || f.State() != FieldDisabled {
		t.Fatal("field should be disabled before its first frame")
	}
	if f.Count() != 0 {
		t.Errorf("count = %d, want 0", f.Count())
	}
	if s.frames.Len() != 0 {
		t.Error("disabled field scheduled a tick")
	}
}

func TestFieldWithoutContext(t *testing.T) {
	s, f := newTestRain(nil)
	f.Surface().DisableContext()
	f.Start(Measure(800, 600, 1))
	if f.State() != FieldDisabled || f.Running() {
		t.Fatal("field without a drawing context should be disabled")
	}
	if s.ByName(RainCanvasID) == nil {
		t.Error("canvas without context should stay in the document")
	}
}

func TestFieldHalt(t *testing.T) {
	s, f := newTestRain(nil)
	stops := 0
	f.OnStop = func() { stops++ }
	f.Start(Measure(800, 600, 1))
	s.frames.flush()

	f.Halt()
	f.Halt()
	if stops != 1 {
		t.Errorf("OnStop ran %d times, want 1", stops)
	}
	ticks := f.Ticks()
	s.frames.flush()
	s.frames.flush()
	if f.Ticks() != ticks {
		t.Error("halted field kept ticking")
	}
	if s.frames.Len() != 0 {
		t.Errorf("halted field left %d callbacks queued", s.frames.Len())
	}
}

func TestFieldAnchorDisposalHalts(t *testing.T) {
	s := NewScene()
	gate := NewContainer("gate").Mark(MarkerGate)
	c := NewCanvas(RainCanvasID)
	gate.AddChild(c)
	s.Overlay().AddChild(gate)
	f := NewRainField(RainConfig{}, FieldConfig{Surface: c.Surface, Scheduler: s, Rand: testRand()})
	stops := 0
	f.OnStop = func() { stops++ }
	f.BindAnchor(gate)
	f.Start(Measure(800, 600, 1))
	s.frames.flush()

	gate.Dispose()
	s.frames.flush()
	if f.Running() {
		t.Error("field should stop once its anchor leaves the document")
	}
	if stops != 1 {
		t.Errorf("OnStop ran %d times, want 1", stops)
	}
	if s.frames.Len() != 0 {
		t.Error("no further ticks should be scheduled")
	}
}

func TestFieldSurfaceRemovedStops(t *testing.T) {
	s, f := newTestRain(nil)
	stops := 0
	f.OnStop = func() { stops++ }
	f.Start(Measure(800, 600, 1))
	s.frames.flush()

	f.surface.Remove()
	s.frames.flush()
	s.frames.flush()
	if f.Running() || stops != 1 {
		t.Errorf("running=%v stops=%d, want stopped once", f.Running(), stops)
	}
	if s.frames.Len() != 0 {
		t.Errorf("%d callbacks queued after surface loss", s.frames.Len())
	}
}

func TestFieldResizeReseeds(t *testing.T) {
	s, f := newTestRain(nil)
	f.Start(Measure(800, 600, 1))
	for i := 0; i < 10; i++ {
		s.frames.flush()
	}
	f.Resize(Measure(500, 900, 2))
	if f.Count() != 70 {
		t.Errorf("count after resize = %d, want 70", f.Count())
	}
	for _, d := range f.Drops() {
		if d.X < 0 || d.X >= 500 || d.Y < -900 || d.Y >= 900 {
			t.Fatalf("drop %+v not reseeded for the new viewport", d)
		}
	}
	if w, h := f.Surface().PixelSize(); w != 1000 || h != 1800 {
		t.Errorf("surface = %dx%d, want 1000x1800", w, h)
	}
}
