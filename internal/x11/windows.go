package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const fullscreenState = "_NET_WM_STATE_FULLSCREEN"

// ErrNoActiveWindow is returned when _NET_ACTIVE_WINDOW is unset or the root.
var ErrNoActiveWindow = errors.New("no active window")

// Extents are the decoration sizes the window manager draws around a client.
type Extents struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// ActiveWindow returns the focused client window.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	win, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoActiveWindow, err)
	}
	if win == 0 || win == c.Root {
		return 0, ErrNoActiveWindow
	}
	return win, nil
}

// FrameExtents returns the window decoration sizes, zero when the window
// manager does not publish them.
func (c *Connection) FrameExtents(windowID xproto.Window) Extents {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return Extents{}
	}
	return Extents{
		Left:   int(extents.Left),
		Right:  int(extents.Right),
		Top:    int(extents.Top),
		Bottom: int(extents.Bottom),
	}
}

// FrameGeometry returns the outer frame of a client (decorations included)
// in root coordinates.
func (c *Connection) FrameGeometry(windowID xproto.Window) (Area, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Area{}, fmt.Errorf("get geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Area{}, fmt.Errorf("translate coordinates: %w", err)
	}

	ext := c.FrameExtents(windowID)
	return Area{
		X:      int(translate.DstX) - ext.Left,
		Y:      int(translate.DstY) - ext.Top,
		Width:  int(geom.Width) + ext.Left + ext.Right,
		Height: int(geom.Height) + ext.Top + ext.Bottom,
	}, nil
}

// MoveResizeFrame places a client so that its outer frame matches frame.
func (c *Connection) MoveResizeFrame(windowID xproto.Window, frame Area) error {
	ext := c.FrameExtents(windowID)
	width := max(frame.Width-ext.Left-ext.Right, 1)
	height := max(frame.Height-ext.Top-ext.Bottom, 1)
	return c.MoveResizeWindow(windowID, frame.X, frame.Y, width, height)
}

// MoveFrame moves a client's outer frame to (x, y) keeping its size.
func (c *Connection) MoveFrame(windowID xproto.Window, x, y int) error {
	c.unmaximizeWindow(windowID)

	if err := ewmh.MoveWindow(c.XUtil, windowID, x, y); err != nil {
		xwindow.New(c.XUtil, windowID).Move(x, y)
	}
	return nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry.
// x and y address the frame origin; width and height the client size.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// A maximized window ignores geometry requests on most window managers.
	c.unmaximizeWindow(windowID)

	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
}

// IsFullscreen reports whether the window carries _NET_WM_STATE_FULLSCREEN.
func (c *Connection) IsFullscreen(windowID xproto.Window) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		// An unset property means no state at all.
		return false, nil
	}
	for _, state := range states {
		if state == fullscreenState {
			return true, nil
		}
	}
	return false, nil
}

// SetFullscreen asks the window manager to add or remove the fullscreen state.
func (c *Connection) SetFullscreen(windowID xproto.Window, fullscreen bool) error {
	action := ewmh.StateRemove
	if fullscreen {
		action = ewmh.StateAdd
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, action, fullscreenState); err != nil {
		return fmt.Errorf("request %s: %w", fullscreenState, err)
	}
	return nil
}
