// Package config loads and validates scene documents. A document holds
// one or more particle systems plus screen and telemetry settings. The
// embedded defaults.yaml ships a small demo scene so the preview runs
// without any arguments.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ember-gfx/ember/components"
)

//go:embed defaults.yaml
var defaultYAML []byte

type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type TelemetryConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir"`
	WindowSize int    `yaml:"windowSize"`
}

// Config is a full scene document.
type Config struct {
	Screen    ScreenConfig               `yaml:"screen"`
	Telemetry TelemetryConfig            `yaml:"telemetry"`
	Systems   []components.SystemConfig  `yaml:"systems"`
}

var cfg *Config

// Init loads the embedded defaults, optionally merged with an override
// file, and installs the result as the process-wide config.
func Init(overridePath string) (*Config, error) {
	c, err := Load(overridePath)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

// Cfg returns the installed config. Init must have been called.
func Cfg() *Config {
	if cfg == nil {
		panic("config: Cfg called before Init")
	}
	return cfg
}

// Load parses the embedded defaults and, when overridePath is non-empty,
// merges the override document on top. Override fields that are present
// replace defaults; absent fields keep their default values.
func Load(overridePath string) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("config: parsing embedded defaults: %w", err)
	}
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", overridePath, err)
		}
		var over Config
		if err := yaml.Unmarshal(data, &over); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", overridePath, err)
		}
		merge(&c, &over)
	}
	for i := range c.Systems {
		ApplyDefaults(&c.Systems[i])
		if err := Validate(&c.Systems[i]); err != nil {
			return nil, fmt.Errorf("config: system %q: %w", c.Systems[i].Name, err)
		}
	}
	return &c, nil
}

func merge(base, over *Config) {
	if over.Screen.Width != 0 {
		base.Screen.Width = over.Screen.Width
	}
	if over.Screen.Height != 0 {
		base.Screen.Height = over.Screen.Height
	}
	if over.Screen.Title != "" {
		base.Screen.Title = over.Screen.Title
	}
	if over.Telemetry.Dir != "" {
		base.Telemetry.Dir = over.Telemetry.Dir
	}
	if over.Telemetry.WindowSize != 0 {
		base.Telemetry.WindowSize = over.Telemetry.WindowSize
	}
	base.Telemetry.Enabled = base.Telemetry.Enabled || over.Telemetry.Enabled
	if len(over.Systems) > 0 {
		base.Systems = over.Systems
	}
}

// ApplyDefaults fills zero-valued tuning fields of a system config.
// Explicit zeros that are meaningful (emitter rate, spread, gravity)
// are left alone.
func ApplyDefaults(sys *components.SystemConfig) {
	if sys.FPS == 0 {
		sys.FPS = 60
	}
	if sys.MaxParticles == 0 {
		sys.MaxParticles = 10000
	}
	if sys.CheckpointInterval == 0 {
		sys.CheckpointInterval = 30
	}
	if sys.Collision.CellSize == 0 {
		sys.Collision.CellSize = 8
	}
	for i := range sys.Emitters {
		e := &sys.Emitters[i]
		if e.LifeMin == 0 && e.LifeMax == 0 {
			e.LifeMin, e.LifeMax = 60, 120
		}
		if e.Size == 0 {
			e.Size = 1
		}
		if e.Opacity == 0 && e.Color == (components.RGBA{}) {
			e.Color = components.RGBA{R: 1, G: 1, B: 1, A: 1}
			e.Opacity = 1
		}
	}
}

// WriteYAML marshals the config to a file, used to snapshot the active
// document next to telemetry output.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
