//go:build cgo && !headless

package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
)

func init() {
	graphics.Register(graphics.APIOpenGL, Open)
}

// Open loads the GL entry points for the context current on this thread
// and returns a driver over them.
func Open(log *logger.Logger) (graphics.Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: loading entry points: %w", err)
	}
	log = logger.OrDiscard(log)
	log.Infof("OpenGL %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return NewDriver(nativeFuncs{}, log), nil
}

// nativeFuncs calls OpenGL through go-gl
type nativeFuncs struct{}

func (nativeFuncs) GenFramebuffer() uint32 {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	return fbo
}

func (nativeFuncs) BindFramebuffer(fbo uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

func (nativeFuncs) CreateColorTexture(width, height int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (nativeFuncs) AttachColorTexture(tex uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
}

func (nativeFuncs) CreateDepthStencilRenderbuffer(width, height int32) uint32 {
	var rbo uint32
	gl.GenRenderbuffers(1, &rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, width, height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return rbo
}

func (nativeFuncs) AttachDepthStencilRenderbuffer(rbo uint32) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, rbo)
}

func (nativeFuncs) CheckFramebufferStatus() uint32 {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
}

func (nativeFuncs) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (nativeFuncs) DeleteRenderbuffer(rbo uint32) {
	gl.DeleteRenderbuffers(1, &rbo)
}

func (nativeFuncs) DeleteFramebuffer(fbo uint32) {
	gl.DeleteFramebuffers(1, &fbo)
}

func (nativeFuncs) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (nativeFuncs) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (nativeFuncs) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

func (nativeFuncs) ReadPixels(width, height int32, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&dst[0]))
}
