package graphics

import (
	"geogl/internal/logger"
)

// Selection is the resolved rendering API. It is decided once at startup
// and passed explicitly to every factory; the zero value selects nothing.
type Selection struct {
	api API
}

// Select wraps an API without consulting the registry. Use Resolve for
// startup selection.
func Select(api API) Selection {
	return Selection{api: api}
}

// API returns the selected backend family
func (s Selection) API() API {
	return s.api
}

// String returns the selected API name
func (s Selection) String() string {
	return s.api.String()
}

// Resolve picks the rendering API. The preferred API wins when it is in
// supported; otherwise the first supported API in priority order (OpenGL,
// Vulkan, Headless) is chosen and a warning names both. An empty supported
// set is reported as critical and returns ErrNoBackend.
func Resolve(preferred API, supported []API, log *logger.Logger) (Selection, error) {
	log = logger.OrDiscard(log)

	if len(supported) == 0 {
		log.Critical("No rendering backend compiled into this binary")
		return Selection{}, ErrNoBackend
	}

	has := make(map[API]bool, len(supported))
	for _, api := range supported {
		has[api] = true
	}

	if preferred.Valid() && has[preferred] {
		log.Infof("Rendering API selected: %s", preferred)
		return Selection{api: preferred}, nil
	}

	for _, api := range apiPriority {
		if has[api] {
			if preferred.Valid() {
				log.Warnf("Rendering API %s is not supported by this build, falling back to %s", preferred, api)
			} else {
				log.Infof("No rendering API preference, using %s", api)
			}
			return Selection{api: api}, nil
		}
	}

	// supported only held invalid tags
	log.Critical("No usable rendering backend in supported set")
	return Selection{}, ErrNoBackend
}
