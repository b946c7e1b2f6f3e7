package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geogl/pkg/graphics"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, graphics.APIOpenGL, cfg.Renderer.API)
	assert.Equal(t, graphics.FramebufferSpec{Width: 1280, Height: 720, Samples: 1}, cfg.Viewport.Spec())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
renderer:
  api: vulkan
window:
  title: Editor
  width: 800
  height: 600
viewport:
  width: 640
  height: 480
  clear_color: [1, 0, 0.5, 1]
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, graphics.APIVulkan, cfg.Renderer.API)
	assert.Equal(t, "Editor", cfg.Window.Title)
	assert.Equal(t, 60, cfg.Window.FrameRate, "unset fields keep defaults")
	assert.Equal(t, uint32(640), cfg.Viewport.Width)
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 128, A: 255}, cfg.Viewport.Clear())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[renderer]
api = "headless"

[viewport]
width = 320
height = 200
samples = 1
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, graphics.APIHeadless, cfg.Renderer.API)
	assert.Equal(t, uint32(320), cfg.Viewport.Width)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yml", "nested/out.toml"} {
		path := filepath.Join(t.TempDir(), name)
		cfg := DefaultConfig()
		cfg.Renderer.API = graphics.APIHeadless
		cfg.Viewport.SwapChainTarget = true

		require.NoError(t, SaveConfig(cfg, path), name)
		loaded, err := LoadConfig(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, loaded, name)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := LoadConfig("config.json")
	assert.Error(t, err)
	assert.Error(t, SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "config.ini")))
}

func TestParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("renderer:\n  api: metal\n"), 0644))

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 0
	cfg.Window.FrameRate = -1
	cfg.Viewport.Samples = 4
	cfg.Viewport.ClearColor[3] = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, graphics.ErrMultisampleUnsupported)
	assert.Contains(t, err.Error(), "window: invalid size")
	assert.Contains(t, err.Error(), "framerate")
	assert.Contains(t, err.Error(), "clear_color[3]")

	cfg = DefaultConfig()
	cfg.Viewport.Width = graphics.MaxFramebufferSize + 1
	assert.ErrorIs(t, cfg.Validate(), graphics.ErrInvalidSize)

	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewport:\n  width: 0\n"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, graphics.ErrInvalidSize)
}
