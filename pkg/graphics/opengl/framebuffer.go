package opengl

import (
	"errors"
	"fmt"
	"image"

	"geogl/pkg/graphics"
)

// objects is one generation of GL objects backing a framebuffer
type objects struct {
	fbo          uint32
	colorTexture uint32
	depthStencil uint32
}

// Framebuffer is an OpenGL framebuffer object with a color texture and a
// depth/stencil renderbuffer
type Framebuffer struct {
	objects
	drv  *Driver
	spec graphics.FramebufferSpec
}

var (
	_ graphics.Framebuffer = (*Framebuffer)(nil)
	_ graphics.PixelReader = (*Framebuffer)(nil)
)

var errAllocation = errors.New("opengl: object allocation failed")

// build allocates and checks a new generation of objects. On failure all
// objects created so far are deleted.
func (fb *Framebuffer) build(width, height uint32) (objects, error) {
	gl := fb.drv.gl
	var o objects

	o.fbo = gl.GenFramebuffer()
	if o.fbo == 0 {
		return objects{}, fmt.Errorf("%w: framebuffer", errAllocation)
	}

	o.colorTexture = gl.CreateColorTexture(int32(width), int32(height))
	if o.colorTexture == 0 {
		fb.release(&o)
		return objects{}, fmt.Errorf("%w: color texture %dx%d", errAllocation, width, height)
	}
	gl.AttachColorTexture(o.colorTexture)

	o.depthStencil = gl.CreateDepthStencilRenderbuffer(int32(width), int32(height))
	if o.depthStencil == 0 {
		fb.release(&o)
		return objects{}, fmt.Errorf("%w: depth/stencil renderbuffer %dx%d", errAllocation, width, height)
	}
	gl.AttachDepthStencilRenderbuffer(o.depthStencil)

	if status := gl.CheckFramebufferStatus(); status != FramebufferComplete {
		panic(&graphics.IncompleteError{API: graphics.APIOpenGL, Status: status})
	}
	return o, nil
}

// invalidate replaces the current objects with a new generation of the
// given size, then restores the binding the caller had.
func (fb *Framebuffer) invalidate(width, height uint32) error {
	next, err := fb.build(width, height)
	if err == nil {
		fb.release(&fb.objects)
		fb.objects = next
		fb.spec.Width = width
		fb.spec.Height = height
	}
	fb.drv.restoreBinding()
	return err
}

// release deletes the color texture, the depth/stencil renderbuffer and
// the framebuffer object, skipping zero names.
func (fb *Framebuffer) release(o *objects) {
	gl := fb.drv.gl
	if o.colorTexture != 0 {
		gl.DeleteTexture(o.colorTexture)
		o.colorTexture = 0
	}
	if o.depthStencil != 0 {
		gl.DeleteRenderbuffer(o.depthStencil)
		o.depthStencil = 0
	}
	if o.fbo != 0 {
		gl.DeleteFramebuffer(o.fbo)
		o.fbo = 0
	}
}

// Bind binds the framebuffer and sets the viewport to its size
func (fb *Framebuffer) Bind() {
	fb.drv.gl.BindFramebuffer(fb.fbo)
	fb.drv.gl.Viewport(0, 0, int32(fb.spec.Width), int32(fb.spec.Height))
	fb.drv.current = fb
}

// Unbind binds the default framebuffer
func (fb *Framebuffer) Unbind() {
	fb.drv.gl.BindFramebuffer(0)
	fb.drv.current = nil
}

// Resize recreates the attachments with new dimensions
func (fb *Framebuffer) Resize(width, height uint32) error {
	if fb.fbo == 0 {
		return graphics.ErrClosed
	}
	if err := graphics.ValidateSize(width, height); err != nil {
		return err
	}
	if width == fb.spec.Width && height == fb.spec.Height {
		return nil
	}
	return fb.invalidate(width, height)
}

// ColorAttachmentID returns the color texture name
func (fb *Framebuffer) ColorAttachmentID() graphics.Handle {
	return graphics.Handle(fb.colorTexture)
}

// Spec returns the current specification
func (fb *Framebuffer) Spec() graphics.FramebufferSpec {
	return fb.spec
}

// ReadPixels reads the color attachment back to host memory
func (fb *Framebuffer) ReadPixels() (*image.RGBA, error) {
	if fb.fbo == 0 {
		return nil, graphics.ErrClosed
	}
	w, h := int(fb.spec.Width), int(fb.spec.Height)
	raw := make([]byte, w*h*4)

	fb.drv.gl.BindFramebuffer(fb.fbo)
	fb.drv.gl.ReadPixels(int32(w), int32(h), raw)
	fb.drv.restoreBinding()

	// GL rows start at the bottom
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stride := w * 4
	for y := 0; y < h; y++ {
		copy(img.Pix[y*stride:(y+1)*stride], raw[(h-1-y)*stride:(h-y)*stride])
	}
	return img, nil
}

// Close deletes all GL objects
func (fb *Framebuffer) Close() {
	if fb.drv.current == fb {
		fb.Unbind()
	}
	fb.release(&fb.objects)
}
