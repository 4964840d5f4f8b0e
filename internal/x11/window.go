package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/saftbar/internal/geometry"
)

// BarSurface is one monitor's pair of X drawables: the visible dock window
// and the offscreen pixmap drawing lands on.
type BarSurface struct {
	Window xproto.Window
	Pixmap xproto.Pixmap
}

// CreateBarSurface creates the window and pixmap for one monitor strip. The
// window spans the monitor's x-range at the given bar height, pinned to the
// top or bottom edge of the region.
func (c *Connection) CreateBarSurface(region geometry.Rect, height uint32, bottom bool) (BarSurface, error) {
	y := region.Y
	if bottom {
		y = region.Y + region.H - height
	}

	win, err := xproto.NewWindowId(c.Conn())
	if err != nil {
		return BarSurface{}, fmt.Errorf("allocate window id: %w", err)
	}
	err = xproto.CreateWindowChecked(
		c.Conn(), c.Depth, win, c.Root,
		int16(region.X), int16(y), uint16(region.W), uint16(height), 0,
		xproto.WindowClassInputOutput, c.Visual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwOverrideRedirect|xproto.CwEventMask|xproto.CwColormap,
		[]uint32{
			0x00000000,
			0x00000000,
			0, // the window manager places docks via struts
			xproto.EventMaskExposure | xproto.EventMaskButtonPress,
			uint32(c.Colormap),
		},
	).Check()
	if err != nil {
		return BarSurface{}, fmt.Errorf("create window: %w", err)
	}

	pix, err := xproto.NewPixmapId(c.Conn())
	if err != nil {
		return BarSurface{}, fmt.Errorf("allocate pixmap id: %w", err)
	}
	err = xproto.CreatePixmapChecked(
		c.Conn(), c.Depth, pix, xproto.Drawable(win),
		uint16(region.W), uint16(height),
	).Check()
	if err != nil {
		return BarSurface{}, fmt.Errorf("create pixmap: %w", err)
	}

	return BarSurface{Window: win, Pixmap: pix}, nil
}

// SetDockProperties marks the window as a sticky dock visible on every
// desktop and reserves its strip with strut properties so the window
// manager keeps other windows clear of it.
func (c *Connection) SetDockProperties(surface BarSurface, name string, region geometry.Rect, height uint32, bottom bool) error {
	win := surface.Window

	if err := ewmh.WmWindowTypeSet(c.XUtil, win, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		return fmt.Errorf("set window type: %w", err)
	}
	if err := ewmh.WmStateSet(c.XUtil, win, []string{"_NET_WM_STATE_STICKY"}); err != nil {
		return fmt.Errorf("set window state: %w", err)
	}
	if err := ewmh.WmDesktopSet(c.XUtil, win, 0xFFFFFFFF); err != nil {
		return fmt.Errorf("set desktop: %w", err)
	}

	strutP := ewmh.WmStrutPartial{}
	strut := ewmh.WmStrut{}
	if bottom {
		rootH := uint(c.Screen.HeightInPixels)
		bottomGap := rootH - uint(region.Y+region.H) + uint(height)
		strutP.Bottom = bottomGap
		strutP.BottomStartX = uint(region.X)
		strutP.BottomEndX = uint(region.X + region.W)
		strut.Bottom = bottomGap
	} else {
		topGap := uint(region.Y) + uint(height)
		strutP.Top = topGap
		strutP.TopStartX = uint(region.X)
		strutP.TopEndX = uint(region.X + region.W)
		strut.Top = topGap
	}
	if err := ewmh.WmStrutPartialSet(c.XUtil, win, &strutP); err != nil {
		return fmt.Errorf("set strut partial: %w", err)
	}
	if err := ewmh.WmStrutSet(c.XUtil, win, &strut); err != nil {
		return fmt.Errorf("set strut: %w", err)
	}

	if err := ewmh.WmNameSet(c.XUtil, win, name); err != nil {
		return fmt.Errorf("set _NET_WM_NAME: %w", err)
	}
	if err := c.setLegacyNameAndClass(win, name); err != nil {
		return err
	}
	return nil
}

// setLegacyNameAndClass fills WM_NAME and WM_CLASS for window managers and
// tools that predate EWMH.
func (c *Connection) setLegacyNameAndClass(win xproto.Window, name string) error {
	nameBytes := []byte(name)
	err := xproto.ChangePropertyChecked(
		c.Conn(), xproto.PropModeReplace, win,
		xproto.AtomWmName, xproto.AtomString, 8,
		uint32(len(nameBytes)), nameBytes,
	).Check()
	if err != nil {
		return fmt.Errorf("set WM_NAME: %w", err)
	}

	// WM_CLASS is instance\0class\0.
	classBytes := append(append([]byte(name), 0), append([]byte(name), 0)...)
	err = xproto.ChangePropertyChecked(
		c.Conn(), xproto.PropModeReplace, win,
		xproto.AtomWmClass, xproto.AtomString, 8,
		uint32(len(classBytes)), classBytes,
	).Check()
	if err != nil {
		return fmt.Errorf("set WM_CLASS: %w", err)
	}
	return nil
}

// MapWindow makes the window visible.
func (c *Connection) MapWindow(surface BarSurface) error {
	if err := xproto.MapWindowChecked(c.Conn(), surface.Window).Check(); err != nil {
		return fmt.Errorf("map window: %w", err)
	}
	return nil
}
