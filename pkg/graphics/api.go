package graphics

import (
	"fmt"
	"strings"
)

// API identifies a rendering backend family
type API int

// Rendering APIs. APINone is the zero value and never a valid selection.
const (
	APINone API = iota
	APIOpenGL
	APIVulkan
	APIHeadless
)

// apiPriority is the fallback order used when the preferred API is not
// compiled in: OpenGL, then Vulkan, then Headless.
var apiPriority = []API{APIOpenGL, APIVulkan, APIHeadless}

var apiNames = map[API]string{
	APINone:     "none",
	APIOpenGL:   "opengl",
	APIVulkan:   "vulkan",
	APIHeadless: "headless",
}

// String returns the lower-case API name
func (a API) String() string {
	if name, ok := apiNames[a]; ok {
		return name
	}
	return fmt.Sprintf("api(%d)", int(a))
}

// Valid reports whether a names a real backend family
func (a API) Valid() bool {
	return a == APIOpenGL || a == APIVulkan || a == APIHeadless
}

// ParseAPI converts a name such as "opengl" or "gl" to an API
func ParseAPI(s string) (API, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return APINone, nil
	case "opengl", "gl":
		return APIOpenGL, nil
	case "vulkan", "vk":
		return APIVulkan, nil
	case "headless", "software", "null":
		return APIHeadless, nil
	}
	return APINone, fmt.Errorf("graphics: unknown rendering api %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (a API) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *API) UnmarshalText(text []byte) error {
	parsed, err := ParseAPI(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
