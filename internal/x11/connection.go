// Package x11 implements the panel's desktop environment on top of an X
// server with EWMH/ICCCM conventions.
package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/bmpanel/internal/platform"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil  *xgbutil.XUtil
	Root   xproto.Window
	Screen int
	logger *slog.Logger
}

// NewConnection establishes a connection to the X11 server and subscribes to
// root window property changes.
func NewConnection(logger *slog.Logger) (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	c := &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		Screen: xu.Conn().DefaultScreen,
		logger: logger,
	}
	err = xproto.ChangeWindowAttributesChecked(xu.Conn(), c.Root,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("failed to watch root window: %w", err)
	}
	return c, nil
}

// ScreenSize returns the root window size in pixels.
func (c *Connection) ScreenSize() (int, int) {
	s := c.XUtil.Screen()
	return int(s.WidthInPixels), int(s.HeightInPixels)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// atom interns name. xprop caches the answer per connection.
func (c *Connection) atom(name string) (xproto.Atom, error) {
	a, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return a, nil
}

// sendClientMessage sends a 32-bit client message about win to the root
// window, the way pagers talk to the window manager. The message is built by
// hand because the xgbutil ewmh request helpers panic on this library
// version.
func (c *Connection) sendClientMessage(win xproto.Window, name string, data ...uint32) error {
	typ, err := c.atom(name)
	if err != nil {
		return err
	}
	for len(data) < 5 {
		data = append(data, 0)
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

func xwin(id platform.WindowID) xproto.Window {
	return xproto.Window(id)
}
