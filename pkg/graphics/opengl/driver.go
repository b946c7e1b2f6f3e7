package opengl

import (
	"image/color"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
)

// Driver is the OpenGL backend. It must be used on the thread that owns
// the current GL context.
type Driver struct {
	gl      Funcs
	log     *logger.Logger
	current *Framebuffer
}

// NewDriver creates a driver over the given GL function table
func NewDriver(gl Funcs, log *logger.Logger) *Driver {
	return &Driver{gl: gl, log: logger.OrDiscard(log)}
}

// API returns graphics.APIOpenGL
func (d *Driver) API() graphics.API {
	return graphics.APIOpenGL
}

// NewFramebuffer allocates a framebuffer object with color and
// depth/stencil attachments
func (d *Driver) NewFramebuffer(spec graphics.FramebufferSpec) (graphics.Framebuffer, error) {
	spec = spec.Normalized()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	fb := &Framebuffer{drv: d, spec: spec}
	if err := fb.invalidate(spec.Width, spec.Height); err != nil {
		return nil, err
	}
	return fb, nil
}

// Clear clears the bound target to c
func (d *Driver) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	d.gl.ClearColor(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
	d.gl.Clear()
}

// restoreBinding rebinds the framebuffer callers last bound, or the
// default framebuffer
func (d *Driver) restoreBinding() {
	if d.current != nil {
		d.current.Bind()
		return
	}
	d.gl.BindFramebuffer(0)
}

// Close drops the binding state; GL objects are owned by framebuffers
func (d *Driver) Close() {
	if d.current != nil {
		d.gl.BindFramebuffer(0)
		d.current = nil
	}
}
