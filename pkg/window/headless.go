package window

// Headless is an in-memory window. Events are injected with Push and
// returned by the next PollEvents.
type Headless struct {
	props       Props
	pending     []Event
	shouldClose bool
	frames      int
	closed      bool
}

var _ Window = (*Headless)(nil)

// NewHeadless creates an in-memory window
func NewHeadless(props Props) *Headless {
	return &Headless{props: props}
}

// Push queues ev. Resize events update the window size when polled.
func (w *Headless) Push(ev Event) {
	w.pending = append(w.pending, ev)
}

func (w *Headless) Width() int  { return w.props.Width }
func (w *Headless) Height() int { return w.props.Height }

func (w *Headless) PollEvents() []Event {
	events := w.pending
	w.pending = nil
	for _, ev := range events {
		switch e := ev.(type) {
		case ResizeEvent:
			w.props.Width, w.props.Height = e.Width, e.Height
		case CloseEvent:
			w.shouldClose = true
		}
	}
	return events
}

// SwapBuffers counts presented frames
func (w *Headless) SwapBuffers() {
	w.frames++
}

// Frames returns the number of SwapBuffers calls
func (w *Headless) Frames() int {
	return w.frames
}

func (w *Headless) ShouldClose() bool     { return w.shouldClose }
func (w *Headless) SetShouldClose(v bool) { w.shouldClose = v }

func (w *Headless) Close() {
	w.closed = true
}

// Closed reports whether Close was called
func (w *Headless) Closed() bool {
	return w.closed
}

func (w *Headless) Native() any {
	return nil
}
