// Package config holds the window, style, sound and logging settings.
//
// Values start from the defaults below, are overlaid by an optional YAML file
// and finally by MAGIC_CIRCLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 800
	WindowHeight = 500
	WindowTitle  = "Equilateral Triangle"

	// Outline and marker sizes, in pixels.
	StrokeWidth  = 3
	MarkerRadius = 3

	BackgroundColor = "black"
	StrokeColor     = "cyan"
	MarkerColor     = "cyan"

	PressHz    = 880
	ReleaseHz  = 440
	ToneMillis = 60
	ToneVolume = 0.3
)

// Front ends.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Environment overrides.
const (
	EnvFrontend    = "MAGIC_CIRCLE_FRONTEND"
	EnvWidth       = "MAGIC_CIRCLE_WIDTH"
	EnvHeight      = "MAGIC_CIRCLE_HEIGHT"
	EnvStrokeColor = "MAGIC_CIRCLE_STROKE"
	EnvSound       = "MAGIC_CIRCLE_SOUND"
	EnvLogLevel    = "MAGIC_CIRCLE_LOG_LEVEL"
	EnvLogFormat   = "MAGIC_CIRCLE_LOG_FORMAT"
	EnvLogFile     = "MAGIC_CIRCLE_LOG_FILE"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type StyleConfig struct {
	Background   string  `yaml:"background"`
	Stroke       string  `yaml:"stroke"`
	Marker       string  `yaml:"marker"`
	StrokeWidth  float64 `yaml:"stroke_width"`
	MarkerRadius float64 `yaml:"marker_radius"`
	Antialias    *bool   `yaml:"antialias"`
}

type SoundConfig struct {
	Enabled    bool    `yaml:"enabled"`
	PressHz    float64 `yaml:"press_hz"`
	ReleaseHz  float64 `yaml:"release_hz"`
	DurationMs int     `yaml:"duration_ms"`
	Volume     float64 `yaml:"volume"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	Frontend string        `yaml:"frontend"`
	Window   WindowConfig  `yaml:"window"`
	Style    StyleConfig   `yaml:"style"`
	Sound    SoundConfig   `yaml:"sound"`
	Logging  LoggingConfig `yaml:"logging"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	aa := true
	return AppConfig{
		Frontend: FrontendWindow,
		Window:   WindowConfig{Width: WindowWidth, Height: WindowHeight, Title: WindowTitle},
		Style: StyleConfig{
			Background:   BackgroundColor,
			Stroke:       StrokeColor,
			Marker:       MarkerColor,
			StrokeWidth:  StrokeWidth,
			MarkerRadius: MarkerRadius,
			Antialias:    &aa,
		},
		Sound: SoundConfig{
			PressHz:    PressHz,
			ReleaseHz:  ReleaseHz,
			DurationMs: ToneMillis,
			Volume:     ToneVolume,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads path (if non-empty) over the defaults and applies environment
// overrides. Command-line overrides still follow, so the result is not
// validated here; call Validate once they are in.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyFlags lets command-line values win over file and environment. Empty
// frontend and false sound leave the current values alone.
func (c *AppConfig) ApplyFlags(frontend string, sound bool) {
	if f := strings.ToLower(strings.TrimSpace(frontend)); f != "" {
		c.Frontend = f
	}
	if sound {
		c.Sound.Enabled = true
	}
}

// Parse overlays YAML data onto cfg. Keys missing from data keep their
// current values.
func Parse(data []byte, cfg *AppConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	if v := env(EnvFrontend); v != "" {
		cfg.Frontend = strings.ToLower(v)
	}
	for _, o := range []struct {
		key string
		dst *int
	}{{EnvWidth, &cfg.Window.Width}, {EnvHeight, &cfg.Window.Height}} {
		v := env(o.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.key, err)
		}
		*o.dst = n
	}
	if v := env(EnvStrokeColor); v != "" {
		cfg.Style.Stroke = v
	}
	if v := env(EnvSound); v != "" {
		cfg.Sound.Enabled = truthy(v)
	}
	if v := env(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := env(EnvLogFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := env(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c AppConfig) Validate() error {
	switch c.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Style.StrokeWidth <= 0 {
		return errors.New("style.stroke_width must be positive")
	}
	if c.Style.MarkerRadius < 0 {
		return errors.New("style.marker_radius must not be negative")
	}
	for name, v := range map[string]string{
		"background": c.Style.Background,
		"stroke":     c.Style.Stroke,
		"marker":     c.Style.Marker,
	} {
		if _, err := ParseColor(v); err != nil {
			return fmt.Errorf("style.%s: %w", name, err)
		}
	}
	if c.Sound.Enabled {
		if c.Sound.PressHz <= 0 || c.Sound.ReleaseHz <= 0 || c.Sound.DurationMs <= 0 {
			return errors.New("sound: frequencies and duration must be positive")
		}
	}
	return nil
}

// Palette is the resolved set of drawing colors.
type Palette struct {
	Background, Stroke, Marker color.RGBA
}

// Palette resolves the style colors. It assumes Validate has passed.
func (s StyleConfig) Palette() Palette {
	bg, _ := ParseColor(s.Background)
	st, _ := ParseColor(s.Stroke)
	mk, _ := ParseColor(s.Marker)
	return Palette{Background: bg, Stroke: st, Marker: mk}
}

// Gain is the tone amplitude clamped to [0, 1].
func (s SoundConfig) Gain() float64 { return clamp01(s.Volume) }

// AntialiasEnabled treats an unset value as on.
func (s StyleConfig) AntialiasEnabled() bool {
	return s.Antialias == nil || *s.Antialias
}

func env(key string) string { return strings.TrimSpace(os.Getenv(key)) }

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
