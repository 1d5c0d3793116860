package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/ewmh"
)

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
// Uses _NET_CURRENT_DESKTOP atom.
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// GetDesktopCount returns the number of virtual desktops.
func (c *Connection) GetDesktopCount() (int, error) {
	count, err := ewmh.NumberOfDesktopsGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop count: %w", err)
	}
	return int(count), nil
}

// DesktopNames returns _NET_DESKTOP_NAMES, padded to count with empty names.
func (c *Connection) DesktopNames(count int) []string {
	names, err := ewmh.DesktopNamesGet(c.XUtil)
	if err != nil {
		names = nil
	}
	for len(names) < count {
		names = append(names, "")
	}
	return names[:count]
}
