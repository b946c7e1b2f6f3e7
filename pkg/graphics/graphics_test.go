package graphics_test

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
	_ "geogl/pkg/graphics/headless"
)

func captureLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.NewWriterLogger("debug", &buf), &buf
}

// stubDriver is a minimal driver registered under an API for one test
type stubDriver struct {
	api    graphics.API
	closed int
}

func (d *stubDriver) API() graphics.API { return d.api }
func (d *stubDriver) NewFramebuffer(graphics.FramebufferSpec) (graphics.Framebuffer, error) {
	return nil, errors.New("stub cannot allocate")
}
func (d *stubDriver) Close() { d.closed++ }

func registerStub(t *testing.T, api graphics.API, drv *stubDriver) {
	t.Helper()
	require.False(t, graphics.IsRegistered(api), "%s already registered", api)
	graphics.Register(api, func(*logger.Logger) (graphics.Driver, error) { return drv, nil })
	t.Cleanup(func() { graphics.Unregister(api) })
}

func TestParseAPI(t *testing.T) {
	cases := map[string]graphics.API{
		"":         graphics.APINone,
		"none":     graphics.APINone,
		"OpenGL":   graphics.APIOpenGL,
		"gl":       graphics.APIOpenGL,
		" vulkan ": graphics.APIVulkan,
		"vk":       graphics.APIVulkan,
		"headless": graphics.APIHeadless,
		"software": graphics.APIHeadless,
	}
	for in, want := range cases {
		got, err := graphics.ParseAPI(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := graphics.ParseAPI("directx")
	assert.Error(t, err)
	assert.False(t, graphics.APINone.Valid())
	assert.Equal(t, "api(42)", graphics.API(42).String())
}

func TestAPITextRoundTrip(t *testing.T) {
	var doc struct {
		API graphics.API `yaml:"api"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("api: vk\n"), &doc))
	assert.Equal(t, graphics.APIVulkan, doc.API)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "api: vulkan\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("api: metal\n"), &doc))
}

func TestRegistry(t *testing.T) {
	assert.True(t, graphics.IsRegistered(graphics.APIHeadless))
	assert.Contains(t, graphics.Supported(), graphics.APIHeadless)

	assert.Panics(t, func() { graphics.Register(graphics.APINone, nil) })
	assert.Panics(t, func() { graphics.Register(graphics.APIHeadless, nil) })

	drv := &stubDriver{api: graphics.APIVulkan}
	registerStub(t, graphics.APIVulkan, drv)
	supported := graphics.Supported()
	assert.Equal(t, []graphics.API{graphics.APIVulkan, graphics.APIHeadless}, supported[len(supported)-2:])
}

func TestResolvePreferred(t *testing.T) {
	log, buf := captureLogger()
	sel, err := graphics.Resolve(graphics.APIVulkan,
		[]graphics.API{graphics.APIOpenGL, graphics.APIVulkan}, log)
	require.NoError(t, err)
	assert.Equal(t, graphics.APIVulkan, sel.API())
	assert.NotContains(t, buf.String(), "[WARN ]")
}

func TestResolveFallbackWarns(t *testing.T) {
	log, buf := captureLogger()
	sel, err := graphics.Resolve(graphics.APIVulkan,
		[]graphics.API{graphics.APIHeadless, graphics.APIOpenGL}, log)
	require.NoError(t, err)
	assert.Equal(t, graphics.APIOpenGL, sel.API())
	assert.Contains(t, buf.String(), "[WARN ]")
	assert.Contains(t, buf.String(), "vulkan")
	assert.Contains(t, buf.String(), "opengl")

	sel, err = graphics.Resolve(graphics.APIOpenGL, []graphics.API{graphics.APIHeadless}, nil)
	require.NoError(t, err)
	assert.Equal(t, graphics.APIHeadless, sel.API())
}

func TestResolveNoPreference(t *testing.T) {
	log, buf := captureLogger()
	sel, err := graphics.Resolve(graphics.APINone,
		[]graphics.API{graphics.APIHeadless, graphics.APIVulkan}, log)
	require.NoError(t, err)
	assert.Equal(t, graphics.APIVulkan, sel.API())
	assert.NotContains(t, buf.String(), "[WARN ]")
}

func TestResolveEmptySupported(t *testing.T) {
	log, buf := captureLogger()
	sel, err := graphics.Resolve(graphics.APIOpenGL, nil, log)
	assert.ErrorIs(t, err, graphics.ErrNoBackend)
	assert.Equal(t, graphics.APINone, sel.API())
	assert.Contains(t, buf.String(), "[CRIT ]")

	_, err = graphics.Resolve(graphics.APIOpenGL, []graphics.API{graphics.APINone}, nil)
	assert.ErrorIs(t, err, graphics.ErrNoBackend)
}

func TestNewFramebufferPanicsWithoutSelection(t *testing.T) {
	spec := graphics.FramebufferSpec{Width: 8, Height: 8}
	assert.Panics(t, func() { _, _ = graphics.NewFramebuffer(nil, spec) })

	ctx := graphics.NewContext(graphics.Select(graphics.APINone), nil)
	assert.Panics(t, func() { _, _ = graphics.NewFramebuffer(ctx, spec) })
}

func TestNewFramebufferBackendNotCompiled(t *testing.T) {
	require.False(t, graphics.IsRegistered(graphics.APIVulkan))
	log, buf := captureLogger()
	ctx := graphics.NewContext(graphics.Select(graphics.APIVulkan), log)
	defer ctx.Close()

	fb, err := graphics.NewFramebuffer(ctx, graphics.FramebufferSpec{Width: 8, Height: 8})
	assert.Nil(t, fb)
	assert.ErrorIs(t, err, graphics.ErrBackendNotCompiled)
	assert.Contains(t, buf.String(), "[CRIT ]")
	assert.Contains(t, buf.String(), "vulkan")
}

func TestNewFramebufferRejectsBadSpecs(t *testing.T) {
	ctx := graphics.NewContext(graphics.Select(graphics.APIHeadless), nil)
	defer ctx.Close()

	cases := []struct {
		spec graphics.FramebufferSpec
		err  error
	}{
		{graphics.FramebufferSpec{Width: 0, Height: 8}, graphics.ErrInvalidSize},
		{graphics.FramebufferSpec{Width: 8, Height: 0}, graphics.ErrInvalidSize},
		{graphics.FramebufferSpec{Width: graphics.MaxFramebufferSize + 1, Height: 8}, graphics.ErrInvalidSize},
		{graphics.FramebufferSpec{Width: 8, Height: 8, Samples: 4}, graphics.ErrMultisampleUnsupported},
	}
	for _, tc := range cases {
		fb, err := graphics.NewFramebuffer(ctx, tc.spec)
		assert.Nil(t, fb)
		assert.ErrorIs(t, err, tc.err)
	}
}

func TestNewFramebufferOnHeadless(t *testing.T) {
	ctx := graphics.NewContext(graphics.Select(graphics.APIHeadless), nil)
	defer ctx.Close()

	spec := graphics.FramebufferSpec{Width: 1280, Height: 720, SwapChainTarget: true}
	fb, err := graphics.NewFramebuffer(ctx, spec)
	require.NoError(t, err)
	defer fb.Close()

	assert.NotZero(t, fb.ColorAttachmentID())
	assert.Equal(t, graphics.FramebufferSpec{Width: 1280, Height: 720, Samples: 1, SwapChainTarget: true}, fb.Spec())

	require.NoError(t, fb.Resize(640, 360))
	assert.Equal(t, uint32(640), fb.Spec().Width)
	assert.True(t, fb.Spec().SwapChainTarget)

	_, ok := fb.(graphics.PixelReader)
	assert.True(t, ok)
}

func TestContextOpensDriverOnce(t *testing.T) {
	drv := &stubDriver{api: graphics.APIVulkan}
	registerStub(t, graphics.APIVulkan, drv)

	ctx := graphics.NewContext(graphics.Select(graphics.APIVulkan), nil)
	a, err := ctx.Driver()
	require.NoError(t, err)
	b, err := ctx.Driver()
	require.NoError(t, err)
	assert.Same(t, a, b)

	// the stub has no Clearer capability
	assert.ErrorIs(t, ctx.Clear(color.Black), graphics.ErrUnsupported)

	fb, err := graphics.NewFramebuffer(ctx, graphics.FramebufferSpec{Width: 8, Height: 8})
	assert.Nil(t, fb)
	assert.Error(t, err)

	ctx.Close()
	ctx.Close()
	assert.Equal(t, 1, drv.closed)
	_, err = ctx.Driver()
	assert.ErrorIs(t, err, graphics.ErrClosed)
}

func TestContextRejectsMismatchedDriver(t *testing.T) {
	drv := &stubDriver{api: graphics.APIHeadless}
	registerStub(t, graphics.APIVulkan, drv)

	ctx := graphics.NewContext(graphics.Select(graphics.APIVulkan), nil)
	assert.Panics(t, func() { _, _ = ctx.Driver() })
	assert.Equal(t, 1, drv.closed)
}

func TestContextClearOnHeadless(t *testing.T) {
	ctx := graphics.NewContext(graphics.Select(graphics.APIHeadless), nil)
	defer ctx.Close()

	fb, err := graphics.NewFramebuffer(ctx, graphics.FramebufferSpec{Width: 2, Height: 2})
	require.NoError(t, err)
	defer fb.Close()

	fb.Bind()
	require.NoError(t, ctx.Clear(color.RGBA{G: 255, A: 255}))
	fb.Unbind()

	img, err := fb.(graphics.PixelReader).ReadPixels()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(1, 1))
}

func TestIncompleteErrorMessage(t *testing.T) {
	err := &graphics.IncompleteError{API: graphics.APIOpenGL, Status: 0x8CD6}
	assert.Equal(t, "graphics: opengl framebuffer incomplete (status 0x8CD6)", err.Error())
}
