package platform

import "image"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// DesktopSource reports the root-window desktop state.
type DesktopSource interface {
	DesktopCount() (int, error)
	DesktopNames() ([]string, error)
	ActiveDesktop() (int, error)
}

// WindowSource reports the managed-window list and per-window properties.
//
// WindowDesktop returns -1 for windows placed on all desktops.
type WindowSource interface {
	ClientList() ([]WindowID, error)
	ActiveWindow() (WindowID, error)
	WindowDesktop(id WindowID) (int, error)
	SkipTaskbar(id WindowID) (bool, error)
	Iconified(id WindowID) (bool, error)
	VisibleName(id WindowID) (string, error)
	NetName(id WindowID) (string, error)
	LegacyName(id WindowID) (string, error)
	// NetIcon returns the _NET_WM_ICON entry closest to width x height.
	NetIcon(id WindowID, width, height int) (image.Image, error)
	// HintsIcon returns the WM_HINTS icon pixmap combined with its mask.
	HintsIcon(id WindowID) (image.Image, error)
	// Watch subscribes to property, focus and structure changes of a window.
	Watch(id WindowID) error
}

// WindowCommander issues fire-and-forget requests to the window manager.
type WindowCommander interface {
	SwitchDesktop(desktop int) error
	Activate(id WindowID) error
	Raise(id WindowID) error
	Iconify(id WindowID) error
}

// TrayHost embeds notification-area clients into the panel window.
type TrayHost interface {
	Embed(id WindowID) error
	Unembed(id WindowID) error
	PlaceTrayIcon(id WindowID, bounds Rect) error
}

// Environment is everything the panel needs from the desktop environment.
type Environment interface {
	DesktopSource
	WindowSource
	WindowCommander
	TrayHost
}
