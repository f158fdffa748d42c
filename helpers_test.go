package envelope

import (
	"math/rand/v2"
	"testing"
)

const testDT = float32(1.0 / 60)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// testDoc is a minimal invitation document with every marker present.
type testDoc struct {
	scene    *Scene
	page     *Node
	reveals  []*Node
	gate     *Node
	open     *Node
	envelope *Node
	flap     *Node

	rainCanvas  *Node
	petalCanvas *Node
	rain        *RainField
	petals      *PetalField
	binder      *RevealBinder
	seq         *OpenSequence
}

func newTestDoc(t *testing.T, motion MotionQuery) *testDoc {
	t.Helper()
	s := NewScene()
	d := &testDoc{scene: s}

	d.page = NewContainer("page").Mark(MarkerPage)
	d.page.Alpha = 0
	d.page.Visible = false
	s.Page().AddChild(d.page)
	for i := 0; i < 4; i++ {
		r := NewBox("section", 400, 200, ColorWhite).Mark(MarkerReveal)
		r.SetPosition(20, float64(100+i*500))
		d.page.AddChild(r)
		d.reveals = append(d.reveals, r)
	}

	d.petalCanvas = NewCanvas(PetalCanvasID)
	s.Overlay().AddChild(d.petalCanvas)

	d.gate = NewContainer("gate").Mark(MarkerGate)
	d.rainCanvas = NewCanvas(RainCanvasID)
	d.gate.AddChild(d.rainCanvas)
	d.envelope = NewContainer("envelope").Mark(MarkerEnvelope)
	d.flap = NewBox("flap", 200, 80, ColorWhite).Mark(MarkerFlap)
	d.envelope.AddChild(d.flap)
	d.gate.AddChild(d.envelope)
	d.open = NewBox("open", 120, 40, ColorWhite).Mark(MarkerOpen)
	d.open.SetPosition(340, 400)
	d.gate.AddChild(d.open)
	s.Overlay().AddChild(d.gate)

	d.rain = NewRainField(RainConfig{}, FieldConfig{
		Surface:   d.rainCanvas.Surface,
		Scheduler: s,
		Motion:    motion,
		Rand:      testRand(),
	})
	d.rain.BindAnchor(d.gate)
	s.AddField(d.rain.Field, true)

	d.petals = NewPetalField(PetalConfig{}, FieldConfig{
		Surface:   d.petalCanvas.Surface,
		Scheduler: s,
		Motion:    motion,
		Rand:      testRand(),
	})
	s.AddField(d.petals.Field, false)

	d.binder = NewRevealBinder(s.Page(), DefaultRevealConfig())
	d.binder.Bind(s.QueryAll(MarkerReveal)...)
	s.SetRevealBinder(d.binder)

	d.seq = NewOpenSequence(s, d.rain.Field, d.petals.Field)
	d.seq.Bind()
	return d
}

// run advances the scene by n frames of testDT.
func (d *testDoc) run(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := d.scene.step(testDT); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
}

// runFor advances the scene by at least seconds.
func (d *testDoc) runFor(t *testing.T, seconds float64) {
	t.Helper()
	d.run(t, int(seconds/float64(testDT))+1)
}
