package app

import (
	"geogl/pkg/window"
)

// Layer is a unit of per-frame work and event handling
type Layer interface {
	Name() string
	// OnAttach is called when the layer is pushed. A layer that fails to
	// attach is not added.
	OnAttach() error
	OnDetach()
	// OnUpdate is called once per frame with the elapsed time in seconds.
	OnUpdate(dt float64)
	// OnEvent returns true when the event is handled and must not reach
	// the layers below.
	OnEvent(ev window.Event) bool
}

// LayerStack orders layers bottom to top. Overlays always sit above
// regular layers.
type LayerStack struct {
	layers      []Layer
	insertIndex int
}

// PushLayer inserts l above the other regular layers and below overlays
func (s *LayerStack) PushLayer(l Layer) {
	s.layers = append(s.layers, nil)
	copy(s.layers[s.insertIndex+1:], s.layers[s.insertIndex:])
	s.layers[s.insertIndex] = l
	s.insertIndex++
}

// PushOverlay puts l on top of the stack
func (s *LayerStack) PushOverlay(l Layer) {
	s.layers = append(s.layers, l)
}

// Remove takes l out of the stack and reports whether it was present
func (s *LayerStack) Remove(l Layer) bool {
	for i, cur := range s.layers {
		if cur != l {
			continue
		}
		s.layers = append(s.layers[:i], s.layers[i+1:]...)
		if i < s.insertIndex {
			s.insertIndex--
		}
		return true
	}
	return false
}

// Layers returns the layers bottom to top
func (s *LayerStack) Layers() []Layer {
	return s.layers
}

// Len returns the number of layers and overlays
func (s *LayerStack) Len() int {
	return len(s.layers)
}
