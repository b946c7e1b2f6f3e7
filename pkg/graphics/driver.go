package graphics

import (
	"image/color"

	"geogl/internal/logger"
)

// Driver is a live rendering backend. Every resource a driver creates
// belongs to its API.
type Driver interface {
	// API returns the backend family this driver implements.
	API() API

	// NewFramebuffer allocates a fully initialized render target for a
	// normalized, validated specification.
	NewFramebuffer(spec FramebufferSpec) (Framebuffer, error)

	// Close releases driver-wide resources. Framebuffers must be closed
	// first.
	Close()
}

// Clearer is implemented by drivers that can clear the bound target
type Clearer interface {
	Clear(c color.Color)
}

// Opener creates a driver. It runs on the render thread.
type Opener func(log *logger.Logger) (Driver, error)
