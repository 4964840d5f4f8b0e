package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/saftbar/internal/geometry"
	"github.com/1broseidon/saftbar/internal/render"
)

// CreateMonitors turns resolved monitor regions into mapped dock windows
// with offscreen pixmaps, ready for a render.Bar. The returned backend is
// bound to the first window's depth. Zero regions yield zero monitors and a
// nil backend; the bar then has nothing to render, which is not an error.
func (c *Connection) CreateMonitors(regions []geometry.Rect, height uint32, bottom bool, name string) ([]render.Monitor, *Backend, error) {
	if len(regions) == 0 {
		return nil, nil, nil
	}

	monitors := make([]render.Monitor, 0, len(regions))
	surfaces := make([]BarSurface, 0, len(regions))
	for _, region := range regions {
		surface, err := c.CreateBarSurface(region, height, bottom)
		if err != nil {
			return nil, nil, fmt.Errorf("monitor at x=%d: %w", region.X, err)
		}
		if err := c.SetDockProperties(surface, name, region, height, bottom); err != nil {
			return nil, nil, fmt.Errorf("monitor at x=%d: %w", region.X, err)
		}
		surfaces = append(surfaces, surface)
		monitors = append(monitors, render.Monitor{
			X:       region.X,
			W:       region.W,
			Surface: render.SurfaceID(surface.Pixmap),
			Window:  render.SurfaceID(surface.Window),
		})
	}

	for _, surface := range surfaces {
		if err := c.MapWindow(surface); err != nil {
			return nil, nil, err
		}
	}
	c.Flush()

	backend := NewBackend(c, xproto.Drawable(surfaces[0].Window))
	return monitors, backend, nil
}

// DestroyMonitors releases the drawables behind a monitor list. Used when a
// RandR change invalidates the current layout and the bar is rebuilt.
func (c *Connection) DestroyMonitors(monitors []render.Monitor) {
	for _, mon := range monitors {
		xproto.FreePixmap(c.Conn(), xproto.Pixmap(mon.Surface))
		xproto.DestroyWindow(c.Conn(), xproto.Window(mon.Window))
	}
	c.Flush()
}
