package vulkan

import (
	"fmt"

	"geogl/pkg/graphics"
)

// Status codes carried by the incompleteness panic
const (
	statusMissingAttachment uint32 = 1
	statusExtentMismatch    uint32 = 2
)

// resources is one generation of the objects behind a framebuffer
type resources struct {
	colorImage graphics.Handle
	colorView  graphics.Handle
	depthImage graphics.Handle
	depthView  graphics.Handle
	frame      graphics.Handle
}

// Framebuffer is a Vulkan framebuffer with its own color and
// depth/stencil images
type Framebuffer struct {
	resources
	drv  *Driver
	spec graphics.FramebufferSpec
}

var _ graphics.Framebuffer = (*Framebuffer)(nil)

func (fb *Framebuffer) build(width, height uint32) (res resources, err error) {
	dev := fb.drv.dev
	defer func() {
		if err != nil {
			fb.release(&res)
			res = resources{}
		}
	}()

	if res.colorImage, err = dev.CreateImage(AspectColor, width, height); err != nil {
		return res, fmt.Errorf("vulkan: color image %dx%d: %w", width, height, err)
	}
	if res.colorView, err = dev.CreateImageView(res.colorImage, AspectColor); err != nil {
		return res, fmt.Errorf("vulkan: color view: %w", err)
	}
	if res.depthImage, err = dev.CreateImage(AspectDepthStencil, width, height); err != nil {
		return res, fmt.Errorf("vulkan: depth/stencil image %dx%d: %w", width, height, err)
	}
	if res.depthView, err = dev.CreateImageView(res.depthImage, AspectDepthStencil); err != nil {
		return res, fmt.Errorf("vulkan: depth/stencil view: %w", err)
	}

	// attachment 0 is color, 1 is depth/stencil, matching the render pass
	views := []graphics.Handle{res.colorView, res.depthView}
	if res.frame, err = dev.CreateFramebuffer(fb.drv.renderPass, views, width, height); err != nil {
		return res, fmt.Errorf("vulkan: framebuffer: %w", err)
	}

	if status := fb.checkStatus(&res, width, height); status != 0 {
		panic(&graphics.IncompleteError{API: graphics.APIVulkan, Status: status})
	}
	return res, nil
}

func (fb *Framebuffer) checkStatus(res *resources, width, height uint32) uint32 {
	if res.colorView == 0 || res.depthView == 0 || res.frame == 0 {
		return statusMissingAttachment
	}
	for _, img := range []graphics.Handle{res.colorImage, res.depthImage} {
		if w, h := fb.drv.dev.ImageExtent(img); w != width || h != height {
			return statusExtentMismatch
		}
	}
	return 0
}

// release destroys the color attachment, the depth/stencil attachment and
// the framebuffer object, skipping zero handles
func (fb *Framebuffer) release(res *resources) {
	dev := fb.drv.dev
	if res.colorView != 0 {
		dev.DestroyImageView(res.colorView)
		res.colorView = 0
	}
	if res.colorImage != 0 {
		dev.DestroyImage(res.colorImage)
		res.colorImage = 0
	}
	if res.depthView != 0 {
		dev.DestroyImageView(res.depthView)
		res.depthView = 0
	}
	if res.depthImage != 0 {
		dev.DestroyImage(res.depthImage)
		res.depthImage = 0
	}
	if res.frame != 0 {
		dev.DestroyFramebuffer(res.frame)
		res.frame = 0
	}
}

// Bind selects fb as the target of the next render pass
func (fb *Framebuffer) Bind() {
	fb.drv.current = fb
}

// Unbind selects the swapchain target again
func (fb *Framebuffer) Unbind() {
	if fb.drv.current == fb {
		fb.drv.current = nil
	}
}

// Resize waits for the device, then swaps in a new generation of
// attachments
func (fb *Framebuffer) Resize(width, height uint32) error {
	if fb.frame == 0 {
		return graphics.ErrClosed
	}
	if err := graphics.ValidateSize(width, height); err != nil {
		return err
	}
	if width == fb.spec.Width && height == fb.spec.Height {
		return nil
	}

	next, err := fb.build(width, height)
	if err != nil {
		return err
	}
	fb.drv.dev.WaitIdle()
	fb.release(&fb.resources)
	fb.resources = next
	fb.spec.Width = width
	fb.spec.Height = height
	return nil
}

// ColorAttachmentID returns the color image view handle
func (fb *Framebuffer) ColorAttachmentID() graphics.Handle {
	return fb.colorView
}

// FrameHandle returns the framebuffer object handle for render pass begin
func (fb *Framebuffer) FrameHandle() graphics.Handle {
	return fb.frame
}

// Spec returns the current specification
func (fb *Framebuffer) Spec() graphics.FramebufferSpec {
	return fb.spec
}

// Close waits for the device and destroys every object
func (fb *Framebuffer) Close() {
	if fb.frame == 0 && fb.colorImage == 0 && fb.depthImage == 0 {
		return
	}
	fb.Unbind()
	fb.drv.dev.WaitIdle()
	fb.release(&fb.resources)
}
