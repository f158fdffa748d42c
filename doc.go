// Package envelope renders an animated "open invitation" for [Ebitengine]: a
// sealed envelope in the rain, a scripted opening sequence, falling petals
// over the revealed page, and sections that fade in as they scroll into view.
//
// # Quick start
//
// [Run] creates a window and game loop for a [Scene]:
//
//	scene := envelope.NewScene()
//	// ... build the document, fields, and sequence ...
//	envelope.Run(scene, envelope.RunConfig{
//		Title: "Invitation", Width: 960, Height: 720,
//	})
//
// For full control, wrap the scene with [NewGame] and pass it to
// [ebiten.RunGame], or call [Scene.Resize], [Scene.Update], and [Scene.Draw]
// directly.
//
// # Document
//
// Every element is a [Node] in a tree rooted at [Scene.Root]. The scene owns
// two layers: [Scene.Page] scrolls with the document and [Scene.Overlay]
// stays fixed. Nodes carry [Marker] bits so the opening sequence and reveal
// binder can find them:
//
//	gate := envelope.NewContainer("gate").Mark(envelope.MarkerGate)
//	scene.Overlay().AddChild(gate)
//
// Canvas nodes ([NewCanvas]) host a [Surface], an offscreen buffer sized by
// the viewport and its device pixel ratio.
//
// # Particle fields
//
// [RainField] and [PetalField] are particle simulations bound to a surface.
// Each tick is queued through [Scene.RequestFrame] and queues the next only
// after it completes. A [MotionQuery] reporting a reduced-motion preference
// disables a field permanently and removes its canvas.
//
// # Sequencing
//
// [Timeline] composes property tweens (via [gween]) and callbacks at fixed
// offsets. [OpenSequence] builds the opening timeline from the marked nodes,
// and [RevealBinder] plays entrance tweens driven by the scroll position.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package envelope
