// Package app runs the frame loop: it polls the window, dispatches events
// to a layer stack, updates the layers and presents.
package app

import (
	"fmt"
	"time"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
	"geogl/pkg/input"
	"geogl/pkg/window"
)

// Options control the frame loop
type Options struct {
	// FrameRate caps frames per second; 0 is uncapped.
	FrameRate int
	// MaxFrames stops the loop after that many frames; 0 runs until close.
	MaxFrames int
}

// Application ties a window, a graphics context and a layer stack together
type Application struct {
	win    window.Window
	ctx    *graphics.Context
	log    *logger.Logger
	opts   Options
	layers LayerStack
	keys   *input.State

	isRunning  bool
	frames     int
	lastUpdate time.Time
}

// New creates an application. It takes ownership of win and ctx.
func New(win window.Window, ctx *graphics.Context, opts Options, log *logger.Logger) *Application {
	return &Application{
		win:  win,
		ctx:  ctx,
		log:  logger.OrDiscard(log),
		opts: opts,
		keys: input.NewState(),
	}
}

// Context returns the graphics context
func (a *Application) Context() *graphics.Context {
	return a.ctx
}

// Window returns the window
func (a *Application) Window() window.Window {
	return a.win
}

// Input returns the key state for the current frame
func (a *Application) Input() *input.State {
	return a.keys
}

// Frames returns the number of completed frames
func (a *Application) Frames() int {
	return a.frames
}

// PushLayer attaches l and adds it below the overlays
func (a *Application) PushLayer(l Layer) error {
	if err := l.OnAttach(); err != nil {
		return fmt.Errorf("attaching layer %s: %w", l.Name(), err)
	}
	a.layers.PushLayer(l)
	a.log.Debugf("Attached layer %s", l.Name())
	return nil
}

// PushOverlay attaches l and adds it on top
func (a *Application) PushOverlay(l Layer) error {
	if err := l.OnAttach(); err != nil {
		return fmt.Errorf("attaching overlay %s: %w", l.Name(), err)
	}
	a.layers.PushOverlay(l)
	a.log.Debugf("Attached overlay %s", l.Name())
	return nil
}

// PopLayer detaches l
func (a *Application) PopLayer(l Layer) {
	if a.layers.Remove(l) {
		l.OnDetach()
	}
}

// Stop ends the loop after the current frame
func (a *Application) Stop() {
	a.isRunning = false
}

// Run starts the main loop and returns when the window closes, Escape is
// pressed, Stop is called or the frame limit is reached
func (a *Application) Run() {
	a.isRunning = true
	a.lastUpdate = time.Now()
	start := a.lastUpdate

	for a.isRunning && !a.win.ShouldClose() {
		currentTime := time.Now()
		deltaTime := currentTime.Sub(a.lastUpdate).Seconds()
		a.lastUpdate = currentTime

		a.keys.Advance()
		for _, ev := range a.win.PollEvents() {
			a.dispatch(ev)
		}
		if !a.isRunning {
			break
		}

		for _, l := range a.layers.Layers() {
			l.OnUpdate(deltaTime)
		}

		a.win.SwapBuffers()
		a.frames++
		if a.opts.MaxFrames > 0 && a.frames >= a.opts.MaxFrames {
			a.isRunning = false
		}

		// Cap the frame rate
		if a.opts.FrameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(a.opts.FrameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	if elapsed := time.Since(start).Seconds(); elapsed > 0 && a.frames > 0 {
		a.log.Infof("Rendered %d frames (%.1f fps)", a.frames, float64(a.frames)/elapsed)
	}
}

func (a *Application) dispatch(ev window.Event) {
	switch e := ev.(type) {
	case window.KeyEvent:
		a.keys.Set(e.Key, e.Action)
		if e.Key == input.KeyEscape && e.Action == input.Press {
			a.isRunning = false
		}
	case window.CloseEvent:
		a.isRunning = false
	case window.ResizeEvent:
		a.log.Debugf("Window resized to %dx%d", e.Width, e.Height)
	}

	layers := a.layers.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i].OnEvent(ev) {
			break
		}
	}
}

// Close detaches every layer top to bottom, then releases the graphics
// context and the window
func (a *Application) Close() {
	a.log.Info("Shutting down...")
	layers := a.layers.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		layers[i].OnDetach()
	}
	a.layers = LayerStack{}
	a.ctx.Close()
	a.win.Close()
}
