package window

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geogl/internal/logger"
	"geogl/pkg/graphics"
	"geogl/pkg/input"
)

func TestNewHeadlessWindow(t *testing.T) {
	win, err := New(graphics.Select(graphics.APIHeadless), Props{Title: "t", Width: 320, Height: 200}, nil)
	require.NoError(t, err)
	defer win.Close()

	hw, ok := win.(*Headless)
	require.True(t, ok)
	assert.Equal(t, 320, hw.Width())
	assert.Equal(t, 200, hw.Height())
	assert.Nil(t, hw.Native())
}

func TestNewWithoutSelectionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = New(graphics.Selection{}, Props{}, nil) })
}

func TestNewUnsupportedIsCritical(t *testing.T) {
	openersMu.Lock()
	saved, had := openers[graphics.APIVulkan]
	delete(openers, graphics.APIVulkan)
	openersMu.Unlock()
	t.Cleanup(func() {
		if had {
			Register(graphics.APIVulkan, saved)
		}
	})

	var buf bytes.Buffer
	win, err := New(graphics.Select(graphics.APIVulkan), Props{Width: 1, Height: 1}, logger.NewWriterLogger("debug", &buf))
	assert.Nil(t, win)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, buf.String(), "[CRIT ]")
}

func TestHeadlessEvents(t *testing.T) {
	w := NewHeadless(Props{Width: 100, Height: 100})

	w.Push(ResizeEvent{Width: 640, Height: 480})
	w.Push(KeyEvent{Key: input.KeyEscape, Action: input.Press})
	assert.Equal(t, 100, w.Width())

	events := w.PollEvents()
	require.Len(t, events, 2)
	assert.Equal(t, ResizeEvent{Width: 640, Height: 480}, events[0])
	assert.Equal(t, "key Escape press", events[1].String())
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	assert.Empty(t, w.PollEvents())

	assert.False(t, w.ShouldClose())
	w.Push(CloseEvent{})
	w.PollEvents()
	assert.True(t, w.ShouldClose())
}

func TestHeadlessFrames(t *testing.T) {
	w := NewHeadless(Props{})
	w.SwapBuffers()
	w.SwapBuffers()
	assert.Equal(t, 2, w.Frames())

	w.Close()
	assert.True(t, w.Closed())
}
