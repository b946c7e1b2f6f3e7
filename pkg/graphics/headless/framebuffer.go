package headless

import (
	"image"

	"geogl/pkg/graphics"
)

// clearDepthStencil is depth 1.0 in the upper 24 bits, stencil 0
const clearDepthStencil uint32 = 0xFFFFFF00

// Status codes reported by checkStatus
const (
	statusComplete uint32 = iota
	statusMissingAttachment
	statusSizeMismatch
)

// attachments is one generation of a framebuffer's objects
type attachments struct {
	id      graphics.Handle
	colorID graphics.Handle
	depthID graphics.Handle
	color   *image.RGBA
	depth   []uint32
}

// Framebuffer is a render target in host memory
type Framebuffer struct {
	attachments
	drv  *Driver
	spec graphics.FramebufferSpec
}

var (
	_ graphics.Framebuffer = (*Framebuffer)(nil)
	_ graphics.PixelReader = (*Framebuffer)(nil)
)

// allocate creates the container, color and depth/stencil objects and
// checks the result is complete.
func (d *Driver) allocate(width, height uint32) attachments {
	a := attachments{
		id:      d.gen(kindContainer),
		colorID: d.gen(kindColor),
		color:   image.NewRGBA(image.Rect(0, 0, int(width), int(height))),
		depthID: d.gen(kindDepthStencil),
		depth:   make([]uint32, int(width)*int(height)),
	}
	for i := range a.depth {
		a.depth[i] = clearDepthStencil
	}

	if status := a.checkStatus(width, height); status != statusComplete {
		panic(&graphics.IncompleteError{API: graphics.APIHeadless, Status: status})
	}
	return a
}

func (a *attachments) checkStatus(width, height uint32) uint32 {
	if a.id == 0 || a.colorID == 0 || a.depthID == 0 || a.color == nil {
		return statusMissingAttachment
	}
	size := a.color.Bounds().Size()
	if size.X != int(width) || size.Y != int(height) || len(a.depth) != int(width)*int(height) {
		return statusSizeMismatch
	}
	return statusComplete
}

// free releases the color attachment, the depth/stencil attachment and the
// container, in that order.
func (d *Driver) free(a *attachments) {
	d.release(&a.colorID)
	d.release(&a.depthID)
	d.release(&a.id)
	a.color = nil
	a.depth = nil
}

// Bind makes fb the active render target
func (fb *Framebuffer) Bind() {
	fb.drv.bound = fb
	fb.drv.viewport = image.Rect(0, 0, int(fb.spec.Width), int(fb.spec.Height))
}

// Unbind restores the default render target
func (fb *Framebuffer) Unbind() {
	if fb.drv.bound == fb {
		fb.drv.bound = nil
	}
}

// Resize builds a new generation of attachments and releases the old one
func (fb *Framebuffer) Resize(width, height uint32) error {
	if fb.id == 0 {
		return graphics.ErrClosed
	}
	if err := graphics.ValidateSize(width, height); err != nil {
		return err
	}
	if width == fb.spec.Width && height == fb.spec.Height {
		return nil
	}

	next := fb.drv.allocate(width, height)
	fb.drv.free(&fb.attachments)
	fb.attachments = next
	fb.spec.Width = width
	fb.spec.Height = height
	if fb.drv.bound == fb {
		fb.drv.viewport = image.Rect(0, 0, int(width), int(height))
	}
	return nil
}

// ColorAttachmentID returns the color attachment handle
func (fb *Framebuffer) ColorAttachmentID() graphics.Handle {
	return fb.colorID
}

// Spec returns the current specification
func (fb *Framebuffer) Spec() graphics.FramebufferSpec {
	return fb.spec
}

// ReadPixels returns a copy of the color attachment
func (fb *Framebuffer) ReadPixels() (*image.RGBA, error) {
	if fb.color == nil {
		return nil, graphics.ErrClosed
	}
	out := image.NewRGBA(fb.color.Bounds())
	copy(out.Pix, fb.color.Pix)
	return out, nil
}

// DepthStencilAt returns the packed depth/stencil value at x, y
func (fb *Framebuffer) DepthStencilAt(x, y int) uint32 {
	return fb.depth[y*int(fb.spec.Width)+x]
}

// Close releases every object the framebuffer owns
func (fb *Framebuffer) Close() {
	fb.Unbind()
	fb.drv.free(&fb.attachments)
}
