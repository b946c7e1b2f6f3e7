package graphics

import (
	"fmt"
	"image"
)

// MaxFramebufferSize is the largest accepted width or height
const MaxFramebufferSize = 8192

// Handle is an opaque native object id. Zero means "no object".
type Handle uint64

// FramebufferSpec describes the geometry of a render target
type FramebufferSpec struct {
	Width  uint32 `yaml:"width" toml:"width"`
	Height uint32 `yaml:"height" toml:"height"`
	// Samples must be 1; zero is treated as 1.
	Samples uint32 `yaml:"samples" toml:"samples"`
	// SwapChainTarget marks a target that mirrors the presentation surface.
	// It is informational only.
	SwapChainTarget bool `yaml:"swap_chain_target" toml:"swap_chain_target"`
}

// Normalized returns a copy with defaults applied
func (s FramebufferSpec) Normalized() FramebufferSpec {
	if s.Samples == 0 {
		s.Samples = 1
	}
	return s
}

// Validate checks the specification against what backends can allocate
func (s FramebufferSpec) Validate() error {
	if err := ValidateSize(s.Width, s.Height); err != nil {
		return err
	}
	if s.Samples > 1 {
		return fmt.Errorf("%w: samples=%d", ErrMultisampleUnsupported, s.Samples)
	}
	return nil
}

// ValidateSize checks framebuffer dimensions
func ValidateSize(width, height uint32) error {
	if width == 0 || height == 0 || width > MaxFramebufferSize || height > MaxFramebufferSize {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

// Framebuffer is an off-screen render target. All methods must be called on
// the render thread.
type Framebuffer interface {
	// Bind makes the framebuffer the destination of subsequent draws and
	// sets the viewport to its size.
	Bind()

	// Unbind restores the default render destination.
	Unbind()

	// Resize reallocates all attachments with new dimensions. On error the
	// previous attachments stay live.
	Resize(width, height uint32) error

	// ColorAttachmentID returns the color attachment handle for read-only
	// use, e.g. to display the rendered frame in a UI image.
	ColorAttachmentID() Handle

	// Spec returns the current specification.
	Spec() FramebufferSpec

	// Close releases the color attachment, the depth/stencil attachment and
	// the container, in that order. Safe to call more than once.
	Close()
}

// PixelReader is implemented by framebuffers whose color attachment can be
// read back to host memory.
type PixelReader interface {
	ReadPixels() (*image.RGBA, error)
}

// NewFramebuffer creates a render target on the backend selected by ctx.
//
// A nil context, or one whose selection is APINone, is a programming error
// and panics. A selected API without a compiled backend is reported as a
// critical diagnostic and returns ErrBackendNotCompiled with a nil
// framebuffer.
func NewFramebuffer(ctx *Context, spec FramebufferSpec) (Framebuffer, error) {
	if ctx == nil || !ctx.API().Valid() {
		panic("graphics: NewFramebuffer called without a selected rendering backend")
	}

	spec = spec.Normalized()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	drv, err := ctx.Driver()
	if err != nil {
		return nil, err
	}

	fb, err := drv.NewFramebuffer(spec)
	if err != nil {
		return nil, fmt.Errorf("graphics: creating %s framebuffer: %w", ctx.API(), err)
	}

	ctx.log.Debugf("Created %s framebuffer %dx%d (color attachment %d)",
		ctx.API(), spec.Width, spec.Height, fb.ColorAttachmentID())
	return fb, nil
}
