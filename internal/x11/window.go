package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/bmpanel/internal/platform"
	"github.com/1broseidon/bmpanel/internal/theme"
)

// PanelName is the window title of the panel.
const PanelName = "bmpanel"

const panelEvents = xproto.EventMaskExposure |
	xproto.EventMaskButtonPress |
	xproto.EventMaskStructureNotify

// Window is the panel's own dock window.
type Window struct {
	conn   *Connection
	win    *xwindow.Window
	Bounds platform.Rect
}

// CreatePanelWindow creates and maps a dock window at bounds, reserving its
// screen edge with struts.
func CreatePanelWindow(c *Connection, bounds platform.Rect, placement theme.Placement) (*Window, error) {
	xu := c.XUtil
	win, err := xwindow.Generate(xu)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate panel window: %w", err)
	}
	err = win.CreateChecked(c.Root, bounds.X, bounds.Y, bounds.Width, bounds.Height,
		xproto.CwEventMask, panelEvents)
	if err != nil {
		return nil, fmt.Errorf("failed to create panel window: %w", err)
	}

	w := &Window{conn: c, win: win, Bounds: bounds}
	if err := w.setHints(placement); err != nil {
		win.Destroy()
		return nil, err
	}
	win.Map()
	return w, nil
}

func (w *Window) setHints(placement theme.Placement) error {
	xu := w.conn.XUtil
	id := w.win.Id

	if err := ewmh.WmWindowTypeSet(xu, id, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		return fmt.Errorf("failed to set window type: %w", err)
	}
	if err := ewmh.WmDesktopSet(xu, id, stickyDesktop); err != nil {
		return fmt.Errorf("failed to set window desktop: %w", err)
	}
	states := []string{"_NET_WM_STATE_STICKY", "_NET_WM_STATE_SKIP_TASKBAR", "_NET_WM_STATE_SKIP_PAGER"}
	if err := ewmh.WmStateSet(xu, id, states); err != nil {
		return fmt.Errorf("failed to set window state: %w", err)
	}

	_, screenHeight := w.conn.ScreenSize()
	partial := strutFor(w.Bounds, screenHeight, placement)
	strut := &ewmh.WmStrut{Top: partial.Top, Bottom: partial.Bottom}
	if err := ewmh.WmStrutSet(xu, id, strut); err != nil {
		return fmt.Errorf("failed to set strut: %w", err)
	}
	if err := ewmh.WmStrutPartialSet(xu, id, &partial); err != nil {
		return fmt.Errorf("failed to set partial strut: %w", err)
	}

	if err := ewmh.WmNameSet(xu, id, PanelName); err != nil {
		return fmt.Errorf("failed to set window name: %w", err)
	}
	hints := &icccm.NormalHints{
		Flags:     icccm.SizeHintPPosition | icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		X:         w.Bounds.X,
		Y:         w.Bounds.Y,
		MinWidth:  uint(w.Bounds.Width),
		MinHeight: uint(w.Bounds.Height),
		MaxWidth:  uint(w.Bounds.Width),
		MaxHeight: uint(w.Bounds.Height),
	}
	if err := icccm.WmNormalHintsSet(xu, id, hints); err != nil {
		return fmt.Errorf("failed to set size hints: %w", err)
	}
	return nil
}

// strutFor reserves the rows covered by a panel at r.
func strutFor(r platform.Rect, screenHeight int, placement theme.Placement) ewmh.WmStrutPartial {
	var s ewmh.WmStrutPartial
	x1, x2 := uint(r.X), uint(r.X+r.Width-1)
	if placement == theme.PlaceBottom {
		s.Bottom = uint(screenHeight - r.Y)
		s.BottomStartX, s.BottomEndX = x1, x2
	} else {
		s.Top = uint(r.Y + r.Height)
		s.TopStartX, s.TopEndX = x1, x2
	}
	return s
}

// ID returns the panel window handle.
func (w *Window) ID() platform.WindowID {
	return platform.WindowID(w.win.Id)
}

// Destroy unmaps and destroys the window.
func (w *Window) Destroy() {
	w.win.Destroy()
}
