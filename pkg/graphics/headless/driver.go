// Package headless is a CPU rendering backend. Render targets live in host
// memory, which makes it usable on machines without a GPU or display and
// gives tests a backend with observable allocation counters.
package headless

import (
	"image"
	"image/color"
	"image/draw"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
)

// objectKind classifies allocated objects
type objectKind int

const (
	kindContainer objectKind = iota
	kindColor
	kindDepthStencil
)

// Driver owns the handle space and the binding state of the headless backend
type Driver struct {
	log    *logger.Logger
	nextID graphics.Handle
	live   map[graphics.Handle]objectKind
	bound  *Framebuffer

	viewport image.Rectangle
}

func init() {
	graphics.Register(graphics.APIHeadless, func(log *logger.Logger) (graphics.Driver, error) {
		return NewDriver(log), nil
	})
}

// NewDriver creates a headless driver
func NewDriver(log *logger.Logger) *Driver {
	return &Driver{
		log:  logger.OrDiscard(log),
		live: make(map[graphics.Handle]objectKind),
	}
}

// API returns graphics.APIHeadless
func (d *Driver) API() graphics.API {
	return graphics.APIHeadless
}

// NewFramebuffer allocates a host-memory render target
func (d *Driver) NewFramebuffer(spec graphics.FramebufferSpec) (graphics.Framebuffer, error) {
	spec = spec.Normalized()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	fb := &Framebuffer{drv: d, spec: spec}
	fb.attachments = d.allocate(spec.Width, spec.Height)
	return fb, nil
}

// Clear fills the bound target's color attachment with c and resets its
// depth/stencil attachment. Nothing happens when no target is bound.
func (d *Driver) Clear(c color.Color) {
	fb := d.bound
	if fb == nil {
		return
	}
	draw.Draw(fb.color, fb.color.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	for i := range fb.depth {
		fb.depth[i] = clearDepthStencil
	}
}

// Outstanding returns the number of live objects of every kind
func (d *Driver) Outstanding() int {
	return len(d.live)
}

// Bound returns the currently bound framebuffer, or nil for the default target
func (d *Driver) Bound() *Framebuffer {
	return d.bound
}

// Viewport returns the viewport set by the last Bind
func (d *Driver) Viewport() image.Rectangle {
	return d.viewport
}

// Close reports leaked objects. Framebuffers must be closed first.
func (d *Driver) Close() {
	if n := len(d.live); n > 0 {
		d.log.Warnf("Headless driver closed with %d live objects", n)
	}
	d.bound = nil
}

func (d *Driver) gen(kind objectKind) graphics.Handle {
	d.nextID++
	d.live[d.nextID] = kind
	return d.nextID
}

func (d *Driver) release(h *graphics.Handle) {
	if *h == 0 {
		return
	}
	delete(d.live, *h)
	*h = 0
}
