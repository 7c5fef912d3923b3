package model

import "github.com/1broseidon/bmpanel/internal/platform"

// TrayIcon is an embedded notification-area client.
type TrayIcon struct {
	Window platform.WindowID
	PosX   int
	Width  int
}

// TrayList keeps tray icons in arrival order.
type TrayList struct {
	icons []*TrayIcon
}

// NewTrayList returns an empty list.
func NewTrayList() *TrayList {
	return &TrayList{}
}

// Add appends an icon for id. It returns nil if id is already docked.
func (l *TrayList) Add(id platform.WindowID) *TrayIcon {
	if l.Find(id) != nil {
		return nil
	}
	icon := &TrayIcon{Window: id}
	l.icons = append(l.icons, icon)
	return icon
}

// Remove deletes the icon for id.
func (l *TrayList) Remove(id platform.WindowID) bool {
	for i, icon := range l.icons {
		if icon.Window == id {
			l.icons = append(l.icons[:i], l.icons[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the icon for id, or nil.
func (l *TrayList) Find(id platform.WindowID) *TrayIcon {
	for _, icon := range l.icons {
		if icon.Window == id {
			return icon
		}
	}
	return nil
}

func (l *TrayList) Len() int {
	return len(l.icons)
}

// All returns the icons in arrival order. Callers must not modify the slice.
func (l *TrayList) All() []*TrayIcon {
	return l.icons
}

// Clear removes every icon.
func (l *TrayList) Clear() {
	l.icons = nil
}
