// Package vulkan implements render targets on Vulkan.
//
// Native objects are reached through Device, which hands out opaque
// graphics.Handle values instead of raw Vulkan handles. The goki/vulkan
// implementation is compiled with the vulkan build tag and cgo.
package vulkan

import (
	"errors"

	"geogl/pkg/graphics"
)

// Aspect selects the kind of image an attachment holds
type Aspect int

const (
	// AspectColor is an RGBA8 unorm color image.
	AspectColor Aspect = iota
	// AspectDepthStencil is a D24 unorm / S8 uint depth/stencil image.
	AspectDepthStencil
)

func (a Aspect) String() string {
	if a == AspectDepthStencil {
		return "depth/stencil"
	}
	return "color"
}

// Device is the subset of a Vulkan logical device a render target needs.
// Images are created with their memory allocated and bound.
type Device interface {
	CreateImage(aspect Aspect, width, height uint32) (graphics.Handle, error)
	DestroyImage(img graphics.Handle)
	// ImageExtent returns the extent an image was created with.
	ImageExtent(img graphics.Handle) (width, height uint32)

	CreateImageView(img graphics.Handle, aspect Aspect) (graphics.Handle, error)
	DestroyImageView(view graphics.Handle)

	// CreateRenderPass creates a pass with a color attachment at index 0
	// and a depth/stencil attachment at index 1.
	CreateRenderPass() (graphics.Handle, error)
	DestroyRenderPass(pass graphics.Handle)

	CreateFramebuffer(pass graphics.Handle, views []graphics.Handle, width, height uint32) (graphics.Handle, error)
	DestroyFramebuffer(fb graphics.Handle)

	// WaitIdle blocks until the device has finished all submitted work.
	WaitIdle()
	// Destroy releases the logical device and instance.
	Destroy()
}

// ErrIncompatibleDevice is returned when no physical device can host the
// backend's render targets.
var ErrIncompatibleDevice = errors.New("vulkan: no compatible device")
