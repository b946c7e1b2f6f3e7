// Package backends links every rendering backend this build supports.
// Import it for side effects; each backend registers itself behind its own
// build constraints.
package backends

import (
	_ "geogl/pkg/graphics/headless"
	_ "geogl/pkg/graphics/opengl"
	_ "geogl/pkg/graphics/vulkan"
)
