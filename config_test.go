package envelope

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	rc := cfg.RainConfig()
	if rc.MobileCount != 70 || rc.DesktopCount != 120 {
		t.Errorf("rain counts = %d/%d", rc.MobileCount, rc.DesktopCount)
	}
	if !colorNear(rc.Color, RGBA8(214, 111, 140, 1)) {
		t.Errorf("rain color = %v", rc.Color)
	}
	pc := cfg.PetalConfig()
	if pc.MobileCount != 26 || pc.DesktopCount != 44 {
		t.Errorf("petal counts = %d/%d", pc.MobileCount, pc.DesktopCount)
	}
	if !colorNear(pc.Core, RGBA8(244, 230, 233, 1)) || !colorNear(pc.Rose, RGBA8(214, 111, 140, 1)) {
		t.Errorf("petal colors = %v %v", pc.Core, pc.Rose)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
window:
  width: 390
reducedMotion: true
rain:
  desktopCount: 200
  color: "#ffffff80"
sound:
  enabled: true
  volume: 1
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Window.Width != 390 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 390x720", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.ReducedMotion || !cfg.Sound.Enabled || cfg.Sound.Volume != 1 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	rc := cfg.RainConfig()
	if rc.DesktopCount != 200 || rc.MobileCount != 70 {
		t.Errorf("rain counts = %d/%d", rc.MobileCount, rc.DesktopCount)
	}
	if !colorNear(rc.Color, Color{1, 1, 1, 128.0 / 255}) {
		t.Errorf("rain color = %v", rc.Color)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{"syntax", "window: [", []string{"failed to parse config"}},
		{"window", "window: {width: 0}", []string{"window size"}},
		{"breakpoint", "breakpoint: -1", []string{"breakpoint"}},
		{"count", "petals: {mobileCount: -2}", []string{"petals.mobileCount"}},
		{"color", "rain: {color: pink}", []string{"rain.color"}},
		{"volume", "sound: {volume: 1.5}", []string{"sound.volume"}},
		{"joined", "breakpoint: -1\nsound: {volume: -1}", []string{"breakpoint", "sound.volume"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "envelope.yaml")
	if err := os.WriteFile(path, []byte("showFPS: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.ShowFPS {
		t.Error("showFPS not applied")
	}

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}
}
