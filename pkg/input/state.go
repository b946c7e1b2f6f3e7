package input

// State tracks which keys are held in this frame and the previous one
type State struct {
	currentKeys  map[Key]bool
	previousKeys map[Key]bool
}

// NewState creates an empty key state
func NewState() *State {
	return &State{
		currentKeys:  make(map[Key]bool),
		previousKeys: make(map[Key]bool),
	}
}

// Advance starts a new frame. Call it before feeding the frame's events.
func (s *State) Advance() {
	s.previousKeys = make(map[Key]bool, len(s.currentKeys))
	for k, v := range s.currentKeys {
		s.previousKeys[k] = v
	}
}

// Set records an action for key
func (s *State) Set(key Key, action Action) {
	if key == KeyUnknown {
		return
	}
	s.currentKeys[key] = action != Release
}

// IsDown reports whether key is held
func (s *State) IsDown(key Key) bool {
	return s.currentKeys[key]
}

// IsPressed reports whether key went down this frame
func (s *State) IsPressed(key Key) bool {
	return s.currentKeys[key] && !s.previousKeys[key]
}

// IsReleased reports whether key went up this frame
func (s *State) IsReleased(key Key) bool {
	return !s.currentKeys[key] && s.previousKeys[key]
}
