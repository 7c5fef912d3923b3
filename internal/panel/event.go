package panel

import "github.com/1broseidon/bmpanel/internal/platform"

// Event is a notification from the desktop environment or the panel window.
type Event interface {
	isEvent()
}

// Exposed reports that the panel window needs repainting.
type Exposed struct{}

// ButtonPressed is a pointer click at panel-local coordinates.
type ButtonPressed struct {
	X, Y   int
	Button int
}

// DesktopsChanged reports a change of the desktop count or names.
type DesktopsChanged struct{}

// ActiveDesktopChanged reports a desktop switch.
type ActiveDesktopChanged struct{}

// ClientListChanged reports a change of the managed-window list.
type ClientListChanged struct{}

// ActiveWindowChanged reports a change of the window manager's active window.
type ActiveWindowChanged struct{}

// FocusChanged reports that Window received input focus.
type FocusChanged struct {
	Window platform.WindowID
}

// WindowDesktopChanged reports that Window moved to another desktop.
type WindowDesktopChanged struct {
	Window platform.WindowID
}

// WindowNameChanged reports a new title for Window.
type WindowNameChanged struct {
	Window platform.WindowID
}

// WindowIconifyChanged reports a WM_STATE change of Window.
type WindowIconifyChanged struct {
	Window platform.WindowID
}

// WindowStateChanged reports a _NET_WM_STATE change of Window.
type WindowStateChanged struct {
	Window platform.WindowID
}

// WindowIconChanged reports new icon data for Window.
type WindowIconChanged struct {
	Window platform.WindowID
}

// TrayDockRequested is a system tray dock request.
type TrayDockRequested struct {
	Window platform.WindowID
}

// TrayIconReparented reports that Window now has Parent.
type TrayIconReparented struct {
	Window platform.WindowID
	Parent platform.WindowID
}

// WindowDestroyed reports that Window no longer exists.
type WindowDestroyed struct {
	Window platform.WindowID
}

func (Exposed) isEvent()              {}
func (ButtonPressed) isEvent()        {}
func (DesktopsChanged) isEvent()      {}
func (ActiveDesktopChanged) isEvent() {}
func (ClientListChanged) isEvent()    {}
func (ActiveWindowChanged) isEvent()  {}
func (FocusChanged) isEvent()         {}
func (WindowDesktopChanged) isEvent() {}
func (WindowNameChanged) isEvent()    {}
func (WindowIconifyChanged) isEvent() {}
func (WindowStateChanged) isEvent()   {}
func (WindowIconChanged) isEvent()    {}
func (TrayDockRequested) isEvent()    {}
func (TrayIconReparented) isEvent()   {}
func (WindowDestroyed) isEvent()      {}

// Handle applies ev to the panel state and returns what must be redrawn.
func (p *Panel) Handle(ev Event) Scope {
	switch ev := ev.(type) {
	case Exposed:
		return ScopePanel
	case ButtonPressed:
		return p.HandleClick(ev.X, ev.Y, ev.Button)
	case DesktopsChanged:
		return p.RebuildDesktops()
	case ActiveDesktopChanged:
		active, err := p.env.ActiveDesktop()
		if err != nil {
			p.logger.Debug("active desktop query failed", "error", err)
			return ScopeNone
		}
		return p.SetActiveDesktop(active)
	case ClientListChanged:
		return p.UpdateTasks()
	case ActiveWindowChanged:
		return p.RefreshFocus()
	case FocusChanged:
		return p.FocusWindow(ev.Window)
	case WindowDesktopChanged:
		return p.UpdateTaskDesktop(ev.Window)
	case WindowNameChanged:
		return p.UpdateTaskName(ev.Window)
	case WindowIconifyChanged:
		return p.UpdateTaskIconified(ev.Window)
	case WindowStateChanged:
		return p.UpdateTaskState(ev.Window)
	case WindowIconChanged:
		return p.UpdateTaskIcon(ev.Window)
	case TrayDockRequested:
		return p.AddTrayIcon(ev.Window)
	case TrayIconReparented:
		if ev.Parent == p.Window {
			return ScopeNone
		}
		return p.DelTrayIcon(ev.Window)
	case WindowDestroyed:
		return p.DelTrayIcon(ev.Window)
	}
	return ScopeNone
}
