package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	xtestReady bool
}

// NewConnection establishes a connection to the X11 server and initializes required extensions
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	// Keyboard mapping is needed to resolve hot-key sequences to keycodes.
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// initXTest loads the XTEST extension on first use.
func (c *Connection) initXTest() error {
	if c.xtestReady {
		return nil
	}
	if err := xtest.Init(c.XUtil.Conn()); err != nil {
		return fmt.Errorf("xtest init failed: %w", err)
	}
	c.xtestReady = true
	return nil
}
