package vulkan

import (
	"fmt"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
)

// Driver is the Vulkan backend. It owns the device and one render pass
// shared by every framebuffer it creates.
type Driver struct {
	dev        Device
	log        *logger.Logger
	renderPass graphics.Handle
	current    *Framebuffer
}

// NewDriver creates a driver over dev and takes ownership of it
func NewDriver(dev Device, log *logger.Logger) (*Driver, error) {
	pass, err := dev.CreateRenderPass()
	if err != nil {
		dev.Destroy()
		return nil, fmt.Errorf("vulkan: creating render pass: %w", err)
	}
	return &Driver{dev: dev, log: logger.OrDiscard(log), renderPass: pass}, nil
}

// API returns graphics.APIVulkan
func (d *Driver) API() graphics.API {
	return graphics.APIVulkan
}

// RenderPass returns the render pass framebuffers are compatible with
func (d *Driver) RenderPass() graphics.Handle {
	return d.renderPass
}

// Current returns the bound framebuffer, or nil for the swapchain target
func (d *Driver) Current() *Framebuffer {
	return d.current
}

// NewFramebuffer creates color and depth/stencil images, their views and a
// framebuffer object
func (d *Driver) NewFramebuffer(spec graphics.FramebufferSpec) (graphics.Framebuffer, error) {
	spec = spec.Normalized()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	fb := &Framebuffer{drv: d, spec: spec}
	res, err := fb.build(spec.Width, spec.Height)
	if err != nil {
		return nil, err
	}
	fb.resources = res
	return fb, nil
}

// Close destroys the render pass and the device
func (d *Driver) Close() {
	if d.dev == nil {
		return
	}
	d.dev.WaitIdle()
	if d.renderPass != 0 {
		d.dev.DestroyRenderPass(d.renderPass)
		d.renderPass = 0
	}
	d.dev.Destroy()
	d.dev = nil
	d.current = nil
}
