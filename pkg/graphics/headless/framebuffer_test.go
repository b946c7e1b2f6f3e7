package headless

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geogl/pkg/graphics"
)

func newFramebuffer(t *testing.T, d *Driver, w, h uint32) *Framebuffer {
	t.Helper()
	fb, err := d.NewFramebuffer(graphics.FramebufferSpec{Width: w, Height: h})
	require.NoError(t, err)
	return fb.(*Framebuffer)
}

func TestNewFramebufferAllocatesThreeObjects(t *testing.T) {
	d := NewDriver(nil)
	fb := newFramebuffer(t, d, 800, 600)

	assert.Equal(t, 3, d.Outstanding())
	assert.NotZero(t, fb.ColorAttachmentID())
	assert.Equal(t, graphics.FramebufferSpec{Width: 800, Height: 600, Samples: 1}, fb.Spec())

	img, err := fb.ReadPixels()
	require.NoError(t, err)
	assert.Equal(t, image.Pt(800, 600), img.Bounds().Size())
}

func TestNewFramebufferRejectsBadSpecs(t *testing.T) {
	d := NewDriver(nil)

	_, err := d.NewFramebuffer(graphics.FramebufferSpec{Width: 0, Height: 10})
	assert.ErrorIs(t, err, graphics.ErrInvalidSize)

	_, err = d.NewFramebuffer(graphics.FramebufferSpec{Width: 10, Height: 10, Samples: 4})
	assert.ErrorIs(t, err, graphics.ErrMultisampleUnsupported)

	assert.Zero(t, d.Outstanding())
}

func TestResizeKeepsOtherFields(t *testing.T) {
	d := NewDriver(nil)
	fb, err := d.NewFramebuffer(graphics.FramebufferSpec{Width: 800, Height: 600, SwapChainTarget: true})
	require.NoError(t, err)

	require.NoError(t, fb.Resize(1024, 768))

	got := fb.Spec()
	assert.Equal(t, uint32(1024), got.Width)
	assert.Equal(t, uint32(768), got.Height)
	assert.Equal(t, uint32(1), got.Samples)
	assert.True(t, got.SwapChainTarget)
	assert.NotZero(t, fb.ColorAttachmentID())
	assert.Equal(t, 3, d.Outstanding())

	img, err := fb.(graphics.PixelReader).ReadPixels()
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1024, 768), img.Bounds().Size())
}

func TestResizeInvalidKeepsAttachments(t *testing.T) {
	d := NewDriver(nil)
	fb := newFramebuffer(t, d, 64, 32)
	before := fb.ColorAttachmentID()

	assert.ErrorIs(t, fb.Resize(0, 0), graphics.ErrInvalidSize)
	assert.ErrorIs(t, fb.Resize(graphics.MaxFramebufferSize+1, 4), graphics.ErrInvalidSize)

	assert.Equal(t, before, fb.ColorAttachmentID())
	assert.Equal(t, uint32(64), fb.Spec().Width)
}

func TestResizeSameSizeIsNoop(t *testing.T) {
	d := NewDriver(nil)
	fb := newFramebuffer(t, d, 64, 32)
	before := fb.ColorAttachmentID()

	require.NoError(t, fb.Resize(64, 32))
	assert.Equal(t, before, fb.ColorAttachmentID())
}

func TestBindUnbindRoundTrip(t *testing.T) {
	d := NewDriver(nil)
	fb := newFramebuffer(t, d, 320, 200)
	spec, id := fb.Spec(), fb.ColorAttachmentID()

	fb.Bind()
	assert.Same(t, fb, d.Bound())
	assert.Equal(t, image.Rect(0, 0, 320, 200), d.Viewport())
	fb.Bind()
	fb.Unbind()

	assert.Nil(t, d.Bound())
	assert.Equal(t, spec, fb.Spec())
	assert.Equal(t, id, fb.ColorAttachmentID())
}

func TestCloseReleasesEverything(t *testing.T) {
	d := NewDriver(nil)
	fb := newFramebuffer(t, d, 800, 600)
	require.NoError(t, fb.Resize(1024, 768))

	fb.Close()
	fb.Close()

	assert.Zero(t, d.Outstanding())
	assert.Zero(t, fb.ColorAttachmentID())
	assert.ErrorIs(t, fb.Resize(10, 10), graphics.ErrClosed)
	_, err := fb.ReadPixels()
	assert.ErrorIs(t, err, graphics.ErrClosed)
}

func TestDistinctColorAttachments(t *testing.T) {
	d := NewDriver(nil)
	a := newFramebuffer(t, d, 16, 16)
	b := newFramebuffer(t, d, 16, 16)
	assert.NotEqual(t, a.ColorAttachmentID(), b.ColorAttachmentID())
}

func TestClearBoundTarget(t *testing.T) {
	d := NewDriver(nil)
	fb := newFramebuffer(t, d, 4, 4)
	other := newFramebuffer(t, d, 4, 4)

	fb.Bind()
	d.Clear(color.RGBA{R: 255, A: 255})
	fb.Unbind()
	d.Clear(color.RGBA{G: 255, A: 255})

	img, err := fb.ReadPixels()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(2, 2))
	assert.Equal(t, clearDepthStencil, fb.DepthStencilAt(1, 1))

	img, err = other.ReadPixels()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(2, 2))
}

func TestRegisteredOnImport(t *testing.T) {
	assert.True(t, graphics.IsRegistered(graphics.APIHeadless))
}
