package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"geogl/internal/util"
	"geogl/pkg/graphics"
)

// Config represents the main configuration
type Config struct {
	Renderer RendererConfig `yaml:"renderer" toml:"renderer"`
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Viewport ViewportConfig `yaml:"viewport" toml:"viewport"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// RendererConfig selects the rendering backend
type RendererConfig struct {
	// API is the preferred backend; "none" lets the selector choose.
	API graphics.API `yaml:"api" toml:"api"`
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	VSync     bool   `yaml:"vsync" toml:"vsync"`
	FrameRate int    `yaml:"framerate" toml:"framerate"` // 0 = uncapped
}

// ViewportConfig describes the off-screen render target
type ViewportConfig struct {
	Width           uint32     `yaml:"width" toml:"width"`
	Height          uint32     `yaml:"height" toml:"height"`
	Samples         uint32     `yaml:"samples" toml:"samples"`
	SwapChainTarget bool       `yaml:"swap_chain_target" toml:"swap_chain_target"`
	ClearColor      [4]float32 `yaml:"clear_color" toml:"clear_color"` // RGBA in [0,1]
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"` // empty = stdout only
}

// Spec returns the framebuffer specification for the viewport
func (v ViewportConfig) Spec() graphics.FramebufferSpec {
	return graphics.FramebufferSpec{
		Width:           v.Width,
		Height:          v.Height,
		Samples:         v.Samples,
		SwapChainTarget: v.SwapChainTarget,
	}
}

// Clear returns the clear color
func (v ViewportConfig) Clear() color.RGBA {
	c := v.ClearColor
	return color.RGBA{
		R: util.UnitToByte(c[0]),
		G: util.UnitToByte(c[1]),
		B: util.UnitToByte(c[2]),
		A: util.UnitToByte(c[3]),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Renderer: RendererConfig{
			API: graphics.APIOpenGL,
		},
		Window: WindowConfig{
			Title:     "GEOGL Sandbox",
			Width:     1280,
			Height:    720,
			VSync:     true,
			FrameRate: 60,
		},
		Viewport: ViewportConfig{
			Width:      1280,
			Height:     720,
			Samples:    1,
			ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid value
func (c *Config) Validate() error {
	var errs []error
	if c.Renderer.API != graphics.APINone && !c.Renderer.API.Valid() {
		errs = append(errs, fmt.Errorf("renderer.api: unknown api %s", c.Renderer.API))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("window.framerate: must not be negative, got %d", c.Window.FrameRate))
	}
	if err := c.Viewport.Spec().Normalized().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("viewport: %w", err))
	}
	for i, ch := range c.Viewport.ClearColor {
		if ch < 0 || ch > 1 {
			errs = append(errs, fmt.Errorf("viewport.clear_color[%d]: %v out of range [0,1]", i, ch))
		}
	}
	return errors.Join(errs...)
}

type codec struct {
	marshal   func(v interface{}) ([]byte, error)
	unmarshal func(data []byte, v interface{}) error
}

func codecFor(filePath string) (codec, error) {
	switch ext := util.LowerExt(filePath); ext {
	case ".yaml", ".yml":
		return codec{yaml.Marshal, yaml.Unmarshal}, nil
	case ".toml":
		return codec{toml.Marshal, toml.Unmarshal}, nil
	default:
		return codec{}, fmt.Errorf("unsupported config format %q", ext)
	}
}

// LoadConfig loads the configuration from a YAML or TOML file. When the
// file is missing or unreadable the defaults are returned with the error.
func LoadConfig(filePath string) (*Config, error) {
	// Create default config
	config := DefaultConfig()

	c, err := codecFor(filePath)
	if err != nil {
		return config, err
	}

	// Read file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := c.unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", filePath, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to a file, choosing the format from
// its extension
func SaveConfig(config *Config, filePath string) error {
	c, err := codecFor(filePath)
	if err != nil {
		return err
	}

	data, err := c.marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := util.CreateParentDir(filePath); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
