//go:build cgo && !headless

package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"geogl/pkg/graphics"
)

var glfwKeys = map[Key]int{
	KeySpace:        int(glfw.KeySpace),
	KeyApostrophe:   int(glfw.KeyApostrophe),
	KeyComma:        int(glfw.KeyComma),
	KeyMinus:        int(glfw.KeyMinus),
	KeyPeriod:       int(glfw.KeyPeriod),
	KeySlash:        int(glfw.KeySlash),
	KeySemicolon:    int(glfw.KeySemicolon),
	KeyEqual:        int(glfw.KeyEqual),
	KeyLeftBracket:  int(glfw.KeyLeftBracket),
	KeyBackslash:    int(glfw.KeyBackslash),
	KeyRightBracket: int(glfw.KeyRightBracket),
	KeyGraveAccent:  int(glfw.KeyGraveAccent),
	KeyEscape:       int(glfw.KeyEscape),
	KeyEnter:        int(glfw.KeyEnter),
	KeyTab:          int(glfw.KeyTab),
	KeyBackspace:    int(glfw.KeyBackspace),
	KeyInsert:       int(glfw.KeyInsert),
	KeyDelete:       int(glfw.KeyDelete),
	KeyRight:        int(glfw.KeyRight),
	KeyLeft:         int(glfw.KeyLeft),
	KeyDown:         int(glfw.KeyDown),
	KeyUp:           int(glfw.KeyUp),
	KeyPageUp:       int(glfw.KeyPageUp),
	KeyPageDown:     int(glfw.KeyPageDown),
	KeyHome:         int(glfw.KeyHome),
	KeyEnd:          int(glfw.KeyEnd),
	KeyLeftShift:    int(glfw.KeyLeftShift),
	KeyLeftControl:  int(glfw.KeyLeftControl),
	KeyLeftAlt:      int(glfw.KeyLeftAlt),
	KeyLeftSuper:    int(glfw.KeyLeftSuper),
	KeyRightShift:   int(glfw.KeyRightShift),
	KeyRightControl: int(glfw.KeyRightControl),
	KeyRightAlt:     int(glfw.KeyRightAlt),
	KeyRightSuper:   int(glfw.KeyRightSuper),
}

func init() {
	// GLFW codes for digits, letters and function keys are contiguous
	for i := 0; i < 10; i++ {
		glfwKeys[Key0+Key(i)] = int(glfw.Key0) + i
	}
	for i := 0; i < 26; i++ {
		glfwKeys[KeyA+Key(i)] = int(glfw.KeyA) + i
	}
	for i := 0; i < 12; i++ {
		glfwKeys[KeyF1+Key(i)] = int(glfw.KeyF1) + i
	}

	shared := newTableConverter(glfwKeys, int(glfw.KeyUnknown))
	newGLFW := func() CodesConverter { return shared }
	RegisterConverter(graphics.APIOpenGL, newGLFW)
	RegisterConverter(graphics.APIVulkan, newGLFW)
}
