// Package config handles configuration loading and validation.
package config

import (
	"time"

	"github.com/Faultbox/hoverplane/internal/engine/camera"
	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/highlight"
)

// Config holds all settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Plane     PlaneConfig     `yaml:"plane"`
	Camera    CameraConfig    `yaml:"camera"`
	Highlight HighlightConfig `yaml:"highlight"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`

	// File the config was read from, empty when none was found
	path string
}

// RGB is a color triple as written in YAML: [r, g, b].
type RGB [3]float32

// Color converts to the vertex color type.
func (c RGB) Color() colorbuf.Color {
	return colorbuf.FromArray(c)
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PlaneConfig holds the initial plane and how it is generated.
type PlaneConfig struct {
	grid.Params `yaml:",inline"`
	DepthJitter float32 `yaml:"depth_jitter"`
	Seed        int64   `yaml:"seed"` // 0 seeds from the clock
	Baseline    RGB     `yaml:"baseline"`
}

// CameraConfig holds projection settings.
type CameraConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Distance   float32 `yaml:"distance"`
}

// HighlightConfig holds the hover highlight colors and timing.
type HighlightConfig struct {
	Hot      RGB           `yaml:"hot"`
	Flash    RGB           `yaml:"flash"`
	Rest     RGB           `yaml:"rest"`
	Duration time.Duration `yaml:"duration"`
	Ease     string        `yaml:"ease"`
	Mode     string        `yaml:"mode"` // stack or replace
}

// RenderConfig holds surface and background settings.
type RenderConfig struct {
	ClearColor RGB     `yaml:"clear_color"`
	Roughness  float32 `yaml:"roughness"`
	Metalness  float32 `yaml:"metalness"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	hl := highlight.DefaultConfig()
	cam := camera.DefaultConfig()
	base := colorbuf.Baseline

	return &Config{
		Window: WindowConfig{
			Title:  "hoverplane",
			Width:  1280,
			Height: 720,
		},
		Plane: PlaneConfig{
			Params:      grid.DefaultParams(),
			DepthJitter: 1.0,
			Seed:        0,
			Baseline:    RGB{base.R, base.G, base.B},
		},
		Camera: CameraConfig{
			FovDegrees: cam.FovDegrees,
			Near:       cam.Near,
			Far:        cam.Far,
			Distance:   cam.Distance,
		},
		Highlight: HighlightConfig{
			Hot:      RGB{hl.Hot.R, hl.Hot.G, hl.Hot.B},
			Flash:    RGB{hl.Flash.R, hl.Flash.G, hl.Flash.B},
			Rest:     RGB{hl.Rest.R, hl.Rest.G, hl.Rest.B},
			Duration: hl.Duration,
			Ease:     hl.Ease,
			Mode:     string(hl.Mode),
		},
		Render: RenderConfig{
			ClearColor: RGB{0.05, 0.05, 0.08},
			Roughness:  0.5,
			Metalness:  0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// BuilderConfig returns the geometry builder settings.
func (c *Config) BuilderConfig() grid.BuilderConfig {
	return grid.BuilderConfig{
		DepthJitter: c.Plane.DepthJitter,
		Seed:        c.Plane.Seed,
		Baseline:    c.Plane.Baseline.Color(),
	}
}

// CameraConfig returns the camera settings.
func (c *Config) CameraConfig() camera.Config {
	return camera.Config{
		FovDegrees: c.Camera.FovDegrees,
		Near:       c.Camera.Near,
		Far:        c.Camera.Far,
		Distance:   c.Camera.Distance,
	}
}

// HighlightConfig returns the animator settings.
func (c *Config) HighlightConfig() highlight.Config {
	return highlight.Config{
		Hot:      c.Highlight.Hot.Color(),
		Flash:    c.Highlight.Flash.Color(),
		Rest:     c.Highlight.Rest.Color(),
		Duration: c.Highlight.Duration,
		Ease:     c.Highlight.Ease,
		Mode:     highlight.Mode(c.Highlight.Mode),
	}
}
