// Package opengl implements render targets on OpenGL 4.1 core.
//
// All GL traffic goes through Funcs so the framebuffer lifecycle can run
// against a recording implementation in tests. The go-gl implementation
// is compiled only with cgo and without the headless build tag.
package opengl

// Status values returned by Funcs.CheckFramebufferStatus
const (
	FramebufferComplete uint32 = 0x8CD5
	// FramebufferIncompleteAttachment is the status for a mis-sized or
	// missing attachment.
	FramebufferIncompleteAttachment uint32 = 0x8CD6
)

// Funcs is the subset of OpenGL a render target needs. Object-creating
// calls return 0 on failure.
type Funcs interface {
	// GenFramebuffer creates a framebuffer object and binds it.
	GenFramebuffer() uint32
	// BindFramebuffer binds fbo as the draw and read framebuffer; 0 is the
	// default framebuffer.
	BindFramebuffer(fbo uint32)
	// CreateColorTexture allocates an RGBA8 2D texture with LINEAR filtering.
	CreateColorTexture(width, height int32) uint32
	// AttachColorTexture attaches tex at COLOR_ATTACHMENT0 of the bound fbo.
	AttachColorTexture(tex uint32)
	// CreateDepthStencilRenderbuffer allocates a DEPTH24_STENCIL8 renderbuffer.
	CreateDepthStencilRenderbuffer(width, height int32) uint32
	// AttachDepthStencilRenderbuffer attaches rbo at DEPTH_STENCIL_ATTACHMENT.
	AttachDepthStencilRenderbuffer(rbo uint32)
	// CheckFramebufferStatus reports the completeness of the bound fbo.
	CheckFramebufferStatus() uint32

	DeleteTexture(tex uint32)
	DeleteRenderbuffer(rbo uint32)
	DeleteFramebuffer(fbo uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	// Clear clears the color, depth and stencil buffers of the bound target.
	Clear()
	// ReadPixels reads RGBA8 rows bottom-up from the bound read framebuffer.
	ReadPixels(width, height int32, dst []byte)
}
