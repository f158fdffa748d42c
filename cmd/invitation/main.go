// Invitation opens a window showing a sealed envelope in the rain. Clicking
// "Open" (or pressing Enter) plays the opening sequence, after which petals
// drift over the invitation page and its sections fade in as they scroll
// into view.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/envelope"
	"github.com/phanxgames/envelope/internal/ambience"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to a YAML config file")
		width         = flag.Int("width", 0, "window width in logical pixels")
		height        = flag.Int("height", 0, "window height in logical pixels")
		reducedMotion = flag.Bool("reduced-motion", false, "disable rain and petals")
		sound         = flag.Bool("sound", false, "play the rain ambience")
		debug         = flag.Bool("debug", false, "log per-frame diagnostics to stderr")
		showFPS       = flag.Bool("fps", false, "show the FPS counter")
		scriptPath    = flag.String("script", "", "run a JSON input script and exit when it finishes")
	)
	flag.Parse()

	cfg := envelope.DefaultConfig()
	if *configPath != "" {
		loaded, err := envelope.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	cfg.ReducedMotion = cfg.ReducedMotion || *reducedMotion
	cfg.Sound.Enabled = cfg.Sound.Enabled || *sound
	cfg.Debug = cfg.Debug || *debug
	cfg.ShowFPS = cfg.ShowFPS || *showFPS
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	scene := envelope.NewScene()
	scene.SetDebugMode(cfg.Debug)
	scene.ClearColor = envelope.RGBA8(251, 246, 243, 1)

	doc := buildDocument(scene)
	scene.OnResize = doc.layout

	motion := envelope.AnyMotion(
		envelope.StaticMotion(cfg.ReducedMotion),
		envelope.EnvMotion("ENVELOPE_REDUCED_MOTION"),
	)

	rain := envelope.NewRainField(cfg.RainConfig(), envelope.FieldConfig{
		Surface:    doc.rainCanvas.Surface,
		Scheduler:  scene,
		Motion:     motion,
		Breakpoint: cfg.Breakpoint,
	})
	rain.BindAnchor(doc.gate)
	scene.AddField(rain.Field, true)

	petals := envelope.NewPetalField(cfg.PetalConfig(), envelope.FieldConfig{
		Surface:    doc.petalCanvas.Surface,
		Scheduler:  scene,
		Motion:     motion,
		Breakpoint: cfg.Breakpoint,
	})
	scene.AddField(petals.Field, false)

	reveals := envelope.NewRevealBinder(scene.Page(), envelope.DefaultRevealConfig())
	reveals.Bind(scene.QueryAll(envelope.MarkerReveal)...)
	scene.SetRevealBinder(reveals)

	seq := envelope.NewOpenSequence(scene, rain.Field, petals.Field)
	if err := seq.Err(); err != nil {
		log.Printf("[envelope] open sequence disabled: %v", err)
	}
	seq.Bind()
	scene.SetFocus(doc.open)

	if cfg.Sound.Enabled && !motion() {
		player := ambience.NewPlayer(cfg.Sound.Volume)
		if err := player.Initialize(); err != nil {
			log.Printf("[ambience] audio unavailable: %v", err)
		} else {
			defer player.Close()
			player.StartRain()
			rain.OnStop = func() { player.StopRain(ambience.FadeOut) }
		}
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		runner, err := envelope.LoadTestScript(data)
		if err != nil {
			log.Fatalf("load script: %v", err)
		}
		scene.SetTestRunner(runner)
		scene.SetUpdateFunc(func() error {
			if runner.Done() {
				return ebiten.Termination
			}
			return nil
		})
	}

	err := envelope.Run(scene, envelope.RunConfig{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		ShowFPS: cfg.ShowFPS,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
