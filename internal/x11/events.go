package x11

import (
	"context"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/bmpanel/internal/panel"
	"github.com/1broseidon/bmpanel/internal/platform"
)

var rootProperties = map[string]panel.Event{
	"_NET_NUMBER_OF_DESKTOPS": panel.DesktopsChanged{},
	"_NET_DESKTOP_NAMES":      panel.DesktopsChanged{},
	"_NET_CURRENT_DESKTOP":    panel.ActiveDesktopChanged{},
	"_NET_CLIENT_LIST":        panel.ClientListChanged{},
	"_NET_ACTIVE_WINDOW":      panel.ActiveWindowChanged{},
}

var windowProperties = map[string]func(platform.WindowID) panel.Event{
	"_NET_WM_DESKTOP":      func(w platform.WindowID) panel.Event { return panel.WindowDesktopChanged{Window: w} },
	"_NET_WM_NAME":         func(w platform.WindowID) panel.Event { return panel.WindowNameChanged{Window: w} },
	"_NET_WM_VISIBLE_NAME": func(w platform.WindowID) panel.Event { return panel.WindowNameChanged{Window: w} },
	"WM_NAME":              func(w platform.WindowID) panel.Event { return panel.WindowNameChanged{Window: w} },
	"WM_STATE":             func(w platform.WindowID) panel.Event { return panel.WindowIconifyChanged{Window: w} },
	"_NET_WM_STATE":        func(w platform.WindowID) panel.Event { return panel.WindowStateChanged{Window: w} },
	"_NET_WM_ICON":         func(w platform.WindowID) panel.Event { return panel.WindowIconChanged{Window: w} },
	"WM_HINTS":             func(w platform.WindowID) panel.Event { return panel.WindowIconChanged{Window: w} },
}

// translator maps X events to panel events.
type translator struct {
	root       xproto.Window
	panel      xproto.Window
	trayOpcode xproto.Atom
	rootProps  map[xproto.Atom]panel.Event
	winProps   map[xproto.Atom]func(platform.WindowID) panel.Event
}

func (b *Backend) newTranslator() (*translator, error) {
	t := &translator{
		root:      b.Root,
		panel:     b.Panel.win.Id,
		rootProps: make(map[xproto.Atom]panel.Event, len(rootProperties)),
		winProps:  make(map[xproto.Atom]func(platform.WindowID) panel.Event, len(windowProperties)),
	}
	for name, ev := range rootProperties {
		a, err := b.atom(name)
		if err != nil {
			return nil, err
		}
		t.rootProps[a] = ev
	}
	for name, mk := range windowProperties {
		a, err := b.atom(name)
		if err != nil {
			return nil, err
		}
		t.winProps[a] = mk
	}
	a, err := b.atom("_NET_SYSTEM_TRAY_OPCODE")
	if err != nil {
		return nil, err
	}
	t.trayOpcode = a
	return t, nil
}

// translate returns nil for events the panel does not care about.
func (t *translator) translate(ev xgb.Event) panel.Event {
	switch ev := ev.(type) {
	case xproto.ExposeEvent:
		if ev.Window == t.panel && ev.Count == 0 {
			return panel.Exposed{}
		}
	case xproto.ButtonPressEvent:
		if ev.Event == t.panel {
			return panel.ButtonPressed{X: int(ev.EventX), Y: int(ev.EventY), Button: int(ev.Detail)}
		}
	case xproto.PropertyNotifyEvent:
		if ev.Window == t.root {
			return t.rootProps[ev.Atom]
		}
		if mk, ok := t.winProps[ev.Atom]; ok {
			return mk(platform.WindowID(ev.Window))
		}
	case xproto.FocusInEvent:
		return panel.FocusChanged{Window: platform.WindowID(ev.Event)}
	case xproto.ClientMessageEvent:
		if ev.Type == t.trayOpcode && ev.Format == 32 && ev.Data.Data32[1] == trayRequestDock {
			return panel.TrayDockRequested{Window: platform.WindowID(ev.Data.Data32[2])}
		}
	case xproto.ReparentNotifyEvent:
		return panel.TrayIconReparented{Window: platform.WindowID(ev.Window), Parent: platform.WindowID(ev.Parent)}
	case xproto.DestroyNotifyEvent:
		return panel.WindowDestroyed{Window: platform.WindowID(ev.Window)}
	}
	return nil
}

// Listen pumps X events into panel events from a reader goroutine. The
// channel is closed when the connection dies or ctx is done. X protocol
// errors are logged and skipped.
func (b *Backend) Listen(ctx context.Context) (<-chan panel.Event, error) {
	t, err := b.newTranslator()
	if err != nil {
		return nil, err
	}

	out := make(chan panel.Event, 64)
	go func() {
		defer close(out)
		conn := b.XUtil.Conn()
		for {
			ev, xerr := conn.WaitForEvent()
			if ev == nil && xerr == nil {
				b.logger.Debug("X connection closed")
				return
			}
			if xerr != nil {
				b.logger.Warn("X protocol error", "error", xerr)
				continue
			}
			pe := t.translate(ev)
			if pe == nil {
				continue
			}
			select {
			case out <- pe:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
