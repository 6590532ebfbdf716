// Package config handles ocean configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/midgard-ocean/pkg/ocean"
)

// Config holds all settings.
type Config struct {
	Ocean    OceanConfig    `yaml:"ocean"`
	Compute  ComputeConfig  `yaml:"compute"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// OceanConfig holds the spectrum parameters.
type OceanConfig struct {
	Size              int        `yaml:"size"`
	Amplitude         float32    `yaml:"amplitude"`
	WindIntensity     float32    `yaml:"wind_intensity"`
	WindDirection     [2]float32 `yaml:"wind_direction,flow"`
	SuppressionLength float32    `yaml:"suppression_length"`
	Scale             float32    `yaml:"scale"`
	Gravity           float32    `yaml:"gravity"`
	Seed              int64      `yaml:"seed"` // 0 picks a random seed
}

// Backends accepted by ComputeConfig.Backend.
const (
	BackendCPU    = "cpu"
	BackendSerial = "serial"
	BackendOpenCL = "opencl"
)

// ComputeConfig selects where the per-cell passes run.
type ComputeConfig struct {
	Backend string `yaml:"backend"`
	Workers int    `yaml:"workers"` // 0 = GOMAXPROCS
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Fullscreen  bool    `yaml:"fullscreen"`
	VSync       bool    `yaml:"vsync"`
	Tiles       int     `yaml:"tiles"`        // patches per side
	HeightScale float32 `yaml:"height_scale"` // world units per height unit
	ShowFPS     bool    `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Ocean: OceanConfig{
			Size:              ocean.DefaultSize,
			Amplitude:         ocean.DefaultAmplitude,
			WindIntensity:     ocean.DefaultWindIntensity,
			WindDirection:     [2]float32{1, 1},
			SuppressionLength: ocean.DefaultSuppressionLength,
			Scale:             ocean.DefaultScale,
			Gravity:           ocean.DefaultGravity,
		},
		Compute: ComputeConfig{
			Backend: BackendCPU,
		},
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			Tiles:       4,
			HeightScale: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params converts the ocean section to pipeline parameters.
func (c *Config) Params() ocean.Params {
	o := c.Ocean
	p := ocean.Params{
		Size:              o.Size,
		Amplitude:         o.Amplitude,
		WindIntensity:     o.WindIntensity,
		SuppressionLength: o.SuppressionLength,
		Scale:             o.Scale,
		Gravity:           o.Gravity,
	}
	p.WindDirection.X, p.WindDirection.Y = o.WindDirection[0], o.WindDirection[1]
	return p
}

// Validate checks the settings that are not covered by ocean.Params.
func (c *Config) Validate() error {
	switch c.Compute.Backend {
	case BackendCPU, BackendSerial, BackendOpenCL:
	default:
		return fmt.Errorf("compute.backend: unknown backend %q", c.Compute.Backend)
	}
	if c.Compute.Workers < 0 {
		return fmt.Errorf("compute.workers: must not be negative, got %d", c.Compute.Workers)
	}
	if c.Graphics.Tiles < 1 {
		return fmt.Errorf("graphics.tiles: must be at least 1, got %d", c.Graphics.Tiles)
	}
	return nil
}
