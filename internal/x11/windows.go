package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/bmpanel/internal/platform"
)

// stickyDesktop is the _NET_WM_DESKTOP value of windows on all desktops.
const stickyDesktop = 0xFFFFFFFF

// iconicState is the WM_CHANGE_STATE argument asking for iconification.
const iconicState = 3

// taskEvents is the event mask selected on every task window.
const taskEvents = xproto.EventMaskPropertyChange |
	xproto.EventMaskFocusChange |
	xproto.EventMaskStructureNotify

// ClientList returns the managed windows from _NET_CLIENT_LIST.
func (c *Connection) ClientList() ([]platform.WindowID, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	ids := make([]platform.WindowID, len(clients))
	for i, w := range clients {
		ids[i] = platform.WindowID(w)
	}
	return ids, nil
}

// ActiveWindow returns _NET_ACTIVE_WINDOW, falling back to the input focus
// for window managers that do not set it.
func (c *Connection) ActiveWindow() (platform.WindowID, error) {
	if w, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && w != 0 {
		return platform.WindowID(w), nil
	}
	reply, err := xproto.GetInputFocus(c.XUtil.Conn()).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to get input focus: %w", err)
	}
	return platform.WindowID(reply.Focus), nil
}

// WindowDesktop returns the desktop number a window is on.
// Uses _NET_WM_DESKTOP atom. Returns -1 for "sticky" windows (visible on all desktops).
func (c *Connection) WindowDesktop(id platform.WindowID) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, xwin(id))
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	if desktop == stickyDesktop {
		return -1, nil
	}
	return int(desktop), nil
}

// SkipTaskbar reports whether _NET_WM_STATE carries _NET_WM_STATE_SKIP_TASKBAR.
func (c *Connection) SkipTaskbar(id platform.WindowID) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, xwin(id))
	if err != nil {
		return false, fmt.Errorf("failed to get window state: %w", err)
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_SKIP_TASKBAR" {
			return true, nil
		}
	}
	return false, nil
}

// Iconified reports whether WM_STATE is IconicState.
func (c *Connection) Iconified(id platform.WindowID) (bool, error) {
	state, err := icccm.WmStateGet(c.XUtil, xwin(id))
	if err != nil {
		return false, fmt.Errorf("failed to get WM_STATE: %w", err)
	}
	return state.State == icccm.StateIconic, nil
}

// VisibleName returns _NET_WM_VISIBLE_NAME.
func (c *Connection) VisibleName(id platform.WindowID) (string, error) {
	return ewmh.WmVisibleNameGet(c.XUtil, xwin(id))
}

// NetName returns _NET_WM_NAME.
func (c *Connection) NetName(id platform.WindowID) (string, error) {
	return ewmh.WmNameGet(c.XUtil, xwin(id))
}

// LegacyName returns WM_NAME.
func (c *Connection) LegacyName(id platform.WindowID) (string, error) {
	return icccm.WmNameGet(c.XUtil, xwin(id))
}

// Watch selects property, focus and structure events on a task window.
func (c *Connection) Watch(id platform.WindowID) error {
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), xwin(id),
		xproto.CwEventMask, []uint32{taskEvents}).Check()
}

// Activate maps an iconified window and asks the window manager to focus it.
func (c *Connection) Activate(id platform.WindowID) error {
	xproto.MapWindow(c.XUtil.Conn(), xwin(id))
	if err := c.sendClientMessage(xwin(id), "_NET_ACTIVE_WINDOW", sourcePager, xproto.TimeCurrentTime); err != nil {
		return fmt.Errorf("failed to activate window: %w", err)
	}
	return nil
}

// Raise puts a window on top of the stack and gives it the input focus.
func (c *Connection) Raise(id platform.WindowID) error {
	conn := c.XUtil.Conn()
	xproto.ConfigureWindow(conn, xwin(id), xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	err := xproto.SetInputFocusChecked(conn, xproto.InputFocusPointerRoot, xwin(id), xproto.TimeCurrentTime).Check()
	if err != nil {
		return fmt.Errorf("failed to focus window: %w", err)
	}
	return nil
}

// Iconify sends the ICCCM WM_CHANGE_STATE request.
func (c *Connection) Iconify(id platform.WindowID) error {
	if err := c.sendClientMessage(xwin(id), "WM_CHANGE_STATE", iconicState); err != nil {
		return fmt.Errorf("failed to iconify window: %w", err)
	}
	return nil
}
