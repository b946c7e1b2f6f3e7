package app

import (
	"errors"
	"image/color"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
	"geogl/pkg/window"
)

// ViewportLayer owns the off-screen render target the scene is drawn
// into. It follows window resizes and clears the target every frame.
type ViewportLayer struct {
	ctx   *graphics.Context
	spec  graphics.FramebufferSpec
	clear color.Color
	log   *logger.Logger

	fb          graphics.Framebuffer
	cannotClear bool
}

var _ Layer = (*ViewportLayer)(nil)

// NewViewportLayer creates a layer that renders into a framebuffer made
// from spec on ctx's backend
func NewViewportLayer(ctx *graphics.Context, spec graphics.FramebufferSpec, clear color.Color, log *logger.Logger) *ViewportLayer {
	return &ViewportLayer{ctx: ctx, spec: spec, clear: clear, log: logger.OrDiscard(log)}
}

func (v *ViewportLayer) Name() string {
	return "viewport"
}

// Framebuffer returns the render target, or nil when not attached
func (v *ViewportLayer) Framebuffer() graphics.Framebuffer {
	return v.fb
}

func (v *ViewportLayer) OnAttach() error {
	fb, err := graphics.NewFramebuffer(v.ctx, v.spec)
	if err != nil {
		return err
	}
	v.fb = fb
	return nil
}

func (v *ViewportLayer) OnDetach() {
	if v.fb != nil {
		v.fb.Close()
		v.fb = nil
	}
}

func (v *ViewportLayer) OnUpdate(float64) {
	if v.fb == nil {
		return
	}
	v.fb.Bind()
	if !v.cannotClear {
		if err := v.ctx.Clear(v.clear); err != nil {
			if errors.Is(err, graphics.ErrUnsupported) {
				v.log.Debugf("Viewport clear skipped: %v", err)
			} else {
				v.log.Errorf("Viewport clear failed: %v", err)
			}
			v.cannotClear = true
		}
	}
	v.fb.Unbind()
}

// OnEvent resizes the target on window resize. A zero size (minimized
// window) keeps the current target. The event is never consumed.
func (v *ViewportLayer) OnEvent(ev window.Event) bool {
	e, ok := ev.(window.ResizeEvent)
	if !ok || v.fb == nil || e.Width <= 0 || e.Height <= 0 {
		return false
	}
	if err := v.fb.Resize(uint32(e.Width), uint32(e.Height)); err != nil {
		v.log.Warnf("Viewport resize to %dx%d failed: %v", e.Width, e.Height, err)
	}
	return false
}
