package envelope

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	Title   string
	Width   int // logical pixels
	Height  int
	ShowFPS bool
	// Fixed disables window resizing.
	Fixed bool
}

// Game adapts a Scene to ebiten.Game. Layout reports device pixels and
// forwards every viewport change to Scene.Resize.
type Game struct {
	scene *Scene
	last  Viewport
}

// NewGame wraps scene.
func NewGame(scene *Scene) *Game {
	return &Game{scene: scene}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	return g.scene.Update()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = m.DeviceScaleFactor()
	}
	vp := Measure(float64(outsideWidth), float64(outsideHeight), dpr)
	g.apply(vp)
	return vp.PixelSize()
}

// apply resizes the scene when vp differs from the last applied viewport.
func (g *Game) apply(vp Viewport) {
	if vp == g.last {
		return
	}
	g.last = vp
	g.scene.Resize(vp)
}

// Run opens a window and runs the scene until the window closes or the
// scene's update function returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 960
	}
	if h <= 0 {
		h = 720
	}
	ebiten.SetWindowSize(w, h)
	if !cfg.Fixed {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		scene.Overlay().AddChild(NewFPSWidget())
	}
	return ebiten.RunGame(NewGame(scene))
}
