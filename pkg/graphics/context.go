package graphics

import (
	"fmt"
	"image/color"
	"sync"

	"geogl/internal/logger"
)

// Context binds a Selection to the driver that serves it. The driver is
// opened on first use so that the window (and with it the native graphics
// context) can be created before any GPU call is made.
type Context struct {
	sel Selection
	log *logger.Logger

	mu     sync.Mutex
	driver Driver
	closed bool
}

// NewContext creates a context for sel
func NewContext(sel Selection, log *logger.Logger) *Context {
	return &Context{sel: sel, log: logger.OrDiscard(log)}
}

// Selection returns the selection this context was created with
func (c *Context) Selection() Selection {
	return c.sel
}

// API returns the selected API
func (c *Context) API() API {
	return c.sel.API()
}

// Driver returns the live driver, opening it if needed. An API with no
// compiled backend yields a critical diagnostic and ErrBackendNotCompiled.
func (c *Context) Driver() (Driver, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.driver != nil {
		return c.driver, nil
	}

	open, ok := lookup(c.sel.API())
	if !ok {
		c.log.Criticalf("Rendering API %s has no backend compiled into this binary", c.sel.API())
		return nil, fmt.Errorf("%w: %s", ErrBackendNotCompiled, c.sel.API())
	}

	drv, err := open(c.log)
	if err != nil {
		return nil, fmt.Errorf("graphics: opening %s driver: %w", c.sel.API(), err)
	}
	if drv.API() != c.sel.API() {
		drv.Close()
		panic(fmt.Sprintf("graphics: opener for %s returned a %s driver", c.sel.API(), drv.API()))
	}

	c.log.Infof("Opened %s driver", c.sel.API())
	c.driver = drv
	return drv, nil
}

// Clear clears the currently bound render target. Backends without the
// Clearer capability return ErrUnsupported.
func (c *Context) Clear(col color.Color) error {
	drv, err := c.Driver()
	if err != nil {
		return err
	}
	cl, ok := drv.(Clearer)
	if !ok {
		return fmt.Errorf("%w: clear on %s", ErrUnsupported, c.sel.API())
	}
	cl.Clear(col)
	return nil
}

// Close releases the driver. Further use returns ErrClosed.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.driver != nil {
		c.driver.Close()
		c.driver = nil
	}
}
