// Package config handles simulator configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all simulator settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Interaction InteractionConfig `yaml:"interaction"`
	Scene       SceneConfig       `yaml:"scene"`
	Audio       AudioConfig       `yaml:"audio"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// InteractionConfig holds ray interaction settings.
type InteractionConfig struct {
	// TriggerThreshold is the analog value above which a trigger counts as
	// pressed.
	TriggerThreshold float32 `yaml:"trigger_threshold"`
	ShowRays         bool    `yaml:"show_rays"`
	ShowBounds       bool    `yaml:"show_bounds"`
}

// SceneConfig holds content paths.
type SceneConfig struct {
	Path      string `yaml:"path"`  // scene file
	Track     string `yaml:"track"` // pointer track for replay
	LoopTrack bool   `yaml:"loop_track"`
}

// AudioConfig holds interaction feedback sound settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	// Cues maps a cue name (click, grab, release) to a WAV file.
	Cues map[string]string `yaml:"cues"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Interaction: InteractionConfig{
			TriggerThreshold: 0.8,
			ShowRays:         true,
		},
		Scene: SceneConfig{
			Path: "scene.yaml",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if t := c.Interaction.TriggerThreshold; t <= 0 || t >= 1 {
		err = multierr.Append(err, fmt.Errorf("interaction: trigger_threshold %v must be in (0, 1)", t))
	}
	if v := c.Audio.Volume; v < 0 || v > 1 {
		err = multierr.Append(err, fmt.Errorf("audio: volume %v must be in [0, 1]", v))
	}
	for name := range c.Audio.Cues {
		switch name {
		case "click", "grab", "release":
		default:
			err = multierr.Append(err, fmt.Errorf("audio: unknown cue %q", name))
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return err
}
