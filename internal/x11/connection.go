// Package x11 is the protocol plumbing under the bar: the server
// connection, monitor geometry via RandR, dock windows with their EWMH
// properties, and the pixel backend the render engine draws through.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and the visual configuration every
// bar surface is created with.
type Connection struct {
	XUtil  *xgbutil.XUtil
	Root   xproto.Window
	Screen *xproto.ScreenInfo

	// Depth, visual and colormap used for bar windows and pixmaps. A
	// 32-bit TrueColor visual when the server offers one, the root visual
	// otherwise.
	Depth    byte
	Visual   xproto.Visualid
	Colormap xproto.Colormap
}

// NewConnection establishes a connection to the X server, initializes the
// RandR extension and picks the rendering visual.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	c := &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		Screen: xu.Screen(),
	}
	if err := c.pickVisual(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	return c, nil
}

// Conn returns the raw protocol connection.
func (c *Connection) Conn() *xgb.Conn {
	return c.XUtil.Conn()
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// Flush forces all queued requests out to the server by waiting for a
// round trip.
func (c *Connection) Flush() {
	c.XUtil.Sync()
}

// pickVisual looks for a 32-bit TrueColor visual and allocates a colormap
// for it. Bars want an alpha channel; without one we fall back to the root
// visual and its default colormap.
func (c *Connection) pickVisual() error {
	for _, depth := range c.Screen.AllowedDepths {
		if depth.Depth != 32 {
			continue
		}
		for _, visual := range depth.Visuals {
			if visual.Class != xproto.VisualClassTrueColor {
				continue
			}
			cid, err := xproto.NewColormapId(c.Conn())
			if err != nil {
				return fmt.Errorf("allocate colormap id: %w", err)
			}
			err = xproto.CreateColormapChecked(
				c.Conn(), xproto.ColormapAllocNone, cid, c.Root, visual.VisualId,
			).Check()
			if err != nil {
				return fmt.Errorf("create colormap: %w", err)
			}
			c.Depth = 32
			c.Visual = visual.VisualId
			c.Colormap = cid
			return nil
		}
	}

	c.Depth = c.Screen.RootDepth
	c.Visual = c.Screen.RootVisual
	c.Colormap = c.Screen.DefaultColormap
	return nil
}
