//go:build cgo && !headless

package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
	"geogl/pkg/input"
)

func init() {
	Register(graphics.APIOpenGL, func(props Props, log *logger.Logger) (Window, error) {
		return newGLFWWindow(graphics.APIOpenGL, props, log)
	})
	Register(graphics.APIVulkan, func(props Props, log *logger.Logger) (Window, error) {
		return newGLFWWindow(graphics.APIVulkan, props, log)
	})
}

// live GLFW windows; GLFW is terminated with the last one
var glfwWindows int

// glfwWindow is a GLFW window. OpenGL windows own a 4.1 core context made
// current on creation; Vulkan windows have no client API.
type glfwWindow struct {
	win    *glfw.Window
	api    graphics.API
	keys   input.CodesConverter
	log    *logger.Logger
	events []Event
	width  int
	height int
}

func newGLFWWindow(api graphics.API, props Props, log *logger.Logger) (*glfwWindow, error) {
	keys, err := input.NewConverter(graphics.Select(api))
	if err != nil {
		return nil, err
	}

	if glfwWindows == 0 {
		if err := glfw.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
		}
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	switch api {
	case graphics.APIOpenGL:
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	case graphics.APIVulkan:
		if !glfw.VulkanSupported() {
			if glfwWindows == 0 {
				glfw.Terminate()
			}
			return nil, fmt.Errorf("%w: GLFW reports no Vulkan loader", ErrUnsupported)
		}
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	win, err := glfw.CreateWindow(props.Width, props.Height, props.Title, nil, nil)
	if err != nil {
		if glfwWindows == 0 {
			glfw.Terminate()
		}
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}
	glfwWindows++

	if api == graphics.APIOpenGL {
		win.MakeContextCurrent()
		if props.VSync {
			glfw.SwapInterval(1)
		} else {
			glfw.SwapInterval(0)
		}
	}

	w := &glfwWindow{win: win, api: api, keys: keys, log: log}
	w.width, w.height = win.GetFramebufferSize()

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		w.events = append(w.events, ResizeEvent{Width: width, Height: height})
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		w.events = append(w.events, CloseEvent{})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.events = append(w.events, KeyEvent{Key: w.keys.ToKey(int(key)), Action: convertAction(action)})
	})
	return w, nil
}

func convertAction(a glfw.Action) input.Action {
	switch a {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	default:
		return input.Release
	}
}

func (w *glfwWindow) Width() int  { return w.width }
func (w *glfwWindow) Height() int { return w.height }

func (w *glfwWindow) PollEvents() []Event {
	glfw.PollEvents()
	events := w.events
	w.events = nil
	return events
}

func (w *glfwWindow) SwapBuffers() {
	if w.api == graphics.APIOpenGL {
		w.win.SwapBuffers()
	}
}

func (w *glfwWindow) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *glfwWindow) SetShouldClose(v bool) {
	w.win.SetShouldClose(v)
}

func (w *glfwWindow) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfwWindows--
	if glfwWindows == 0 {
		w.log.Debug("Terminating GLFW")
		glfw.Terminate()
	}
}

func (w *glfwWindow) Native() any {
	return w.win
}
