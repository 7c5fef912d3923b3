package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/bmpanel/internal/platform"
)

// ErrTrayOwned is returned by AcquireTray when another tray holds the
// selection for this screen.
var ErrTrayOwned = errors.New("system tray selection already owned")

// trayRequestDock is the _NET_SYSTEM_TRAY_OPCODE asking to be embedded.
const trayRequestDock = 0

const trayIconEvents = xproto.EventMaskStructureNotify | xproto.EventMaskPropertyChange

// Tray owns the _NET_SYSTEM_TRAY_S<screen> selection.
type Tray struct {
	conn      *Connection
	owner     *xwindow.Window
	selection xproto.Atom
}

// AcquireTray takes the system tray selection for the panel window and
// announces it with a MANAGER client message.
func AcquireTray(c *Connection, panel *Window) (*Tray, error) {
	conn := c.XUtil.Conn()
	sel, err := c.atom(fmt.Sprintf("_NET_SYSTEM_TRAY_S%d", c.Screen))
	if err != nil {
		return nil, err
	}

	cur, err := xproto.GetSelectionOwner(conn, sel).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query tray selection: %w", err)
	}
	if cur.Owner != 0 {
		return nil, ErrTrayOwned
	}

	owner, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate tray window: %w", err)
	}
	if err := owner.CreateChecked(panel.win.Id, 0, 0, 1, 1, 0); err != nil {
		return nil, fmt.Errorf("failed to create tray window: %w", err)
	}
	if err := xproto.SetSelectionOwnerChecked(conn, owner.Id, sel, xproto.TimeCurrentTime).Check(); err != nil {
		owner.Destroy()
		return nil, fmt.Errorf("failed to acquire tray selection: %w", err)
	}

	manager, err := c.atom("MANAGER")
	if err != nil {
		owner.Destroy()
		return nil, err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.Root,
		Type:   manager,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			xproto.TimeCurrentTime, uint32(sel), uint32(owner.Id), 0, 0,
		}),
	}
	xproto.SendEvent(conn, false, c.Root, xproto.EventMaskStructureNotify, string(ev.Bytes()))

	return &Tray{conn: c, owner: owner, selection: sel}, nil
}

// Release gives up the selection.
func (t *Tray) Release() {
	xproto.SetSelectionOwner(t.conn.XUtil.Conn(), 0, t.selection, xproto.TimeCurrentTime)
	t.owner.Destroy()
}

// Backend is the full desktop environment: the connection plus the panel
// window tray clients are embedded into.
type Backend struct {
	*Connection
	Panel *Window
}

var _ platform.Environment = (*Backend)(nil)

// NewBackend returns the environment for a panel window.
func NewBackend(c *Connection, panel *Window) *Backend {
	return &Backend{Connection: c, Panel: panel}
}

// Embed reparents a tray client into the panel and maps it.
func (b *Backend) Embed(id platform.WindowID) error {
	conn := b.XUtil.Conn()
	w := xwin(id)

	err := xproto.ChangeWindowAttributesChecked(conn, w, xproto.CwEventMask, []uint32{trayIconEvents}).Check()
	if err != nil {
		return fmt.Errorf("failed to watch tray icon: %w", err)
	}
	xproto.ConfigureWindow(conn, w, xproto.ConfigWindowBorderWidth, []uint32{0})
	xproto.ChangeSaveSet(conn, xproto.SetModeInsert, w)
	if err := xproto.ReparentWindowChecked(conn, w, b.Panel.win.Id, 0, 0).Check(); err != nil {
		return fmt.Errorf("failed to reparent tray icon: %w", err)
	}
	xproto.MapWindow(conn, w)
	xproto.ConfigureWindow(conn, w, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	return nil
}

// Unembed hands a tray client back to the root window.
func (b *Backend) Unembed(id platform.WindowID) error {
	conn := b.XUtil.Conn()
	xproto.ChangeSaveSet(conn, xproto.SetModeDelete, xwin(id))
	return xproto.ReparentWindowChecked(conn, xwin(id), b.Root, 0, 0).Check()
}

// PlaceTrayIcon moves and resizes a tray client inside the panel.
func (b *Backend) PlaceTrayIcon(id platform.WindowID, r platform.Rect) error {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(int32(r.X)), uint32(int32(r.Y)), uint32(r.Width), uint32(r.Height)}
	xproto.ConfigureWindow(b.XUtil.Conn(), xwin(id), mask, values)
	return nil
}
