package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/ewmh"
)

// sourcePager marks client messages as coming from a pager or taskbar.
const sourcePager = 2

// DesktopCount returns the number of virtual desktops.
func (c *Connection) DesktopCount() (int, error) {
	count, err := ewmh.NumberOfDesktopsGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop count: %w", err)
	}
	return int(count), nil
}

// DesktopNames returns _NET_DESKTOP_NAMES.
func (c *Connection) DesktopNames() ([]string, error) {
	names, err := ewmh.DesktopNamesGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get desktop names: %w", err)
	}
	return names, nil
}

// ActiveDesktop returns the current virtual desktop number (0-indexed).
func (c *Connection) ActiveDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// SwitchDesktop asks the window manager to show desktop d.
func (c *Connection) SwitchDesktop(d int) error {
	if count, err := c.DesktopCount(); err == nil && d >= count {
		return fmt.Errorf("desktop %d out of range (%d desktops)", d, count)
	}
	if err := c.sendClientMessage(c.Root, "_NET_CURRENT_DESKTOP", uint32(d)); err != nil {
		return fmt.Errorf("failed to switch to desktop %d: %w", d, err)
	}
	return nil
}
