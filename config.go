package envelope

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the program configuration, loaded from YAML.
//
// Colours are hex strings ("#d66f8c" or "#d66f8cff"). Zero counts fall back
// to the field defaults.
type Config struct {
	Window WindowConfig `yaml:"window"`

	// ReducedMotion forces the reduced-motion preference on.
	ReducedMotion bool `yaml:"reducedMotion"`
	// Breakpoint is the widest viewport treated as mobile.
	Breakpoint float64 `yaml:"breakpoint"`

	Rain   RainSettings  `yaml:"rain"`
	Petals PetalSettings `yaml:"petals"`
	Sound  SoundConfig   `yaml:"sound"`

	Debug   bool `yaml:"debug"`
	ShowFPS bool `yaml:"showFPS"`
}

// WindowConfig sets the initial window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RainSettings tunes the rain field.
type RainSettings struct {
	MobileCount  int    `yaml:"mobileCount"`
	DesktopCount int    `yaml:"desktopCount"`
	Color        string `yaml:"color"`
}

// PetalSettings tunes the petal field.
type PetalSettings struct {
	MobileCount  int    `yaml:"mobileCount"`
	DesktopCount int    `yaml:"desktopCount"`
	Core         string `yaml:"core"`
	Rose         string `yaml:"rose"`
}

// SoundConfig controls the rain ambience.
type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
	// Volume is the linear gain in [0, 1].
	Volume float64 `yaml:"volume"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "You're Invited",
			Width:  960,
			Height: 720,
		},
		Breakpoint: DefaultBreakpoint,
		Rain: RainSettings{
			MobileCount:  70,
			DesktopCount: 120,
			Color:        "#d66f8c",
		},
		Petals: PetalSettings{
			MobileCount:  26,
			DesktopCount: 44,
			Core:         "#f4e6e9",
			Rose:         "#d66f8c",
		},
		Sound: SoundConfig{Volume: 0.35},
	}
}

// LoadConfig reads the YAML file at path on top of DefaultConfig and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges and colours.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Breakpoint < 0 {
		errs = append(errs, fmt.Errorf("breakpoint must not be negative, got %.1f", c.Breakpoint))
	}
	for name, n := range map[string]int{
		"rain.mobileCount":    c.Rain.MobileCount,
		"rain.desktopCount":   c.Rain.DesktopCount,
		"petals.mobileCount":  c.Petals.MobileCount,
		"petals.desktopCount": c.Petals.DesktopCount,
	} {
		if n < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, n))
		}
	}
	for name, s := range map[string]string{
		"rain.color":  c.Rain.Color,
		"petals.core": c.Petals.Core,
		"petals.rose": c.Petals.Rose,
	} {
		if s == "" {
			continue
		}
		if _, err := ParseHexColor(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound.volume must be in [0, 1], got %.2f", c.Sound.Volume))
	}
	return errors.Join(errs...)
}

// RainConfig converts the settings to a RainConfig. Call after Validate.
func (c *Config) RainConfig() RainConfig {
	rc := RainConfig{MobileCount: c.Rain.MobileCount, DesktopCount: c.Rain.DesktopCount}
	if col, err := ParseHexColor(c.Rain.Color); err == nil {
		rc.Color = col
	}
	return rc.withDefaults()
}

// PetalConfig converts the settings to a PetalConfig. Call after Validate.
func (c *Config) PetalConfig() PetalConfig {
	pc := PetalConfig{MobileCount: c.Petals.MobileCount, DesktopCount: c.Petals.DesktopCount}
	if col, err := ParseHexColor(c.Petals.Core); err == nil {
		pc.Core = col
	}
	if col, err := ParseHexColor(c.Petals.Rose); err == nil {
		pc.Rose = col
	}
	return pc.withDefaults()
}
