// Package window creates the presentation surface paired with a rendering
// API and turns native window callbacks into events.
package window

import (
	"errors"
	"fmt"
	"sync"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
	"geogl/pkg/input"
)

// ErrUnsupported is returned when this build has no windowing for the
// selected API.
var ErrUnsupported = errors.New("window: no windowing for rendering api")

// Props are the creation parameters of a window
type Props struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window is a presentation surface. All methods must be called on the
// render thread.
type Window interface {
	Width() int
	Height() int

	// PollEvents processes pending native events and returns them in
	// arrival order.
	PollEvents() []Event

	// SwapBuffers presents the back buffer. It does nothing for APIs that
	// present through a swapchain.
	SwapBuffers()

	ShouldClose() bool
	SetShouldClose(bool)

	// Close destroys the window. Safe to call more than once.
	Close()

	// Native returns the underlying window object, or nil.
	Native() any
}

// Event is something that happened to a window
type Event interface {
	String() string
}

// ResizeEvent reports a new framebuffer size in pixels
type ResizeEvent struct {
	Width, Height int
}

func (e ResizeEvent) String() string {
	return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
}

// CloseEvent reports a request to close the window
type CloseEvent struct{}

func (CloseEvent) String() string {
	return "close"
}

// KeyEvent reports a key action in engine key codes
type KeyEvent struct {
	Key    input.Key
	Action input.Action
}

func (e KeyEvent) String() string {
	return fmt.Sprintf("key %s %s", e.Key, e.Action)
}

// Opener creates a window for one API
type Opener func(props Props, log *logger.Logger) (Window, error)

var (
	openersMu sync.RWMutex
	openers   = map[graphics.API]Opener{
		graphics.APIHeadless: func(props Props, _ *logger.Logger) (Window, error) {
			return NewHeadless(props), nil
		},
	}
)

// Register installs the window opener for api
func Register(api graphics.API, open Opener) {
	openersMu.Lock()
	defer openersMu.Unlock()
	openers[api] = open
}

// New creates the window that matches the selected API
func New(sel graphics.Selection, props Props, log *logger.Logger) (Window, error) {
	log = logger.OrDiscard(log)
	if !sel.API().Valid() {
		panic("window: New called without a selected rendering backend")
	}

	openersMu.RLock()
	open, ok := openers[sel.API()]
	openersMu.RUnlock()
	if !ok {
		log.Criticalf("No windowing available for %s in this build", sel.API())
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, sel.API())
	}

	win, err := open(props, log)
	if err != nil {
		return nil, err
	}
	log.Infof("Created %s window %q %dx%d", sel.API(), props.Title, win.Width(), win.Height())
	return win, nil
}
