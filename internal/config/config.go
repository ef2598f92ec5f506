// Package config handles seascape configuration loading and management.
package config

import (
	"github.com/Faultbox/raging-sea/internal/sea"
)

// Config holds all application settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Scene       sea.Settings     `yaml:"scene"`
	Assets      AssetsConfig     `yaml:"assets"`
	Audio       AudioConfig      `yaml:"audio"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`

	path string
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowStats  bool `yaml:"show_stats"`
}

// AssetsConfig holds the floating model and where to find it.
type AssetsConfig struct {
	Model       string   `yaml:"model"`        // glTF or GLB, resolved against SearchDirs
	SearchDirs  []string `yaml:"search_dirs"`  // Later entries win
	ObjectScale float32  `yaml:"object_scale"` // Uniform scale of the floating model
}

// AudioConfig holds the ambient sound loop.
type AudioConfig struct {
	Ambient string  `yaml:"ambient"` // WAV or MP3; empty disables audio
	Volume  float32 `yaml:"volume"`
	Muted   bool    `yaml:"muted"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
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
		Scene: sea.DefaultSettings(),
		Assets: AssetsConfig{
			Model:       "models/duck/glTF-Binary/Duck.glb",
			SearchDirs:  []string{"static"},
			ObjectScale: 0.4,
		},
		Audio: AudioConfig{
			Volume: 0.6,
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "sea",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// SceneOptions returns the scene build options for this config.
func (c *Config) SceneOptions(pixelRatio float64) sea.Options {
	opts := sea.DefaultOptions()
	opts.Width = c.Window.Width
	opts.Height = c.Window.Height
	opts.PixelRatio = pixelRatio
	if c.Assets.ObjectScale > 0 {
		opts.ObjectScale = c.Assets.ObjectScale
	}
	return opts
}
