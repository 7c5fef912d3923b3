// Package platformtest provides a canned platform.Environment for tests that
// need a panel but do not care about window manager traffic.
package platformtest

import (
	"image"

	"github.com/1broseidon/bmpanel/internal/platform"
)

// Static answers queries from its fields and accepts every request.
// Window properties are empty, so every client becomes a task on desktop 0.
type Static struct {
	Desktops int
	Names    []string
	Active   int
	Clients  []platform.WindowID
	Focus    platform.WindowID
}

func (s *Static) DesktopCount() (int, error)      { return s.Desktops, nil }
func (s *Static) DesktopNames() ([]string, error) { return s.Names, nil }
func (s *Static) ActiveDesktop() (int, error)     { return s.Active, nil }

func (s *Static) ClientList() ([]platform.WindowID, error) {
	return append([]platform.WindowID(nil), s.Clients...), nil
}

func (s *Static) ActiveWindow() (platform.WindowID, error) { return s.Focus, nil }

func (s *Static) WindowDesktop(platform.WindowID) (int, error)  { return 0, nil }
func (s *Static) SkipTaskbar(platform.WindowID) (bool, error)   { return false, nil }
func (s *Static) Iconified(platform.WindowID) (bool, error)     { return false, nil }
func (s *Static) VisibleName(platform.WindowID) (string, error) { return "", nil }
func (s *Static) NetName(platform.WindowID) (string, error)     { return "", nil }
func (s *Static) LegacyName(platform.WindowID) (string, error)  { return "", nil }

func (s *Static) NetIcon(platform.WindowID, int, int) (image.Image, error) { return nil, nil }
func (s *Static) HintsIcon(platform.WindowID) (image.Image, error)         { return nil, nil }

func (s *Static) Watch(platform.WindowID) error    { return nil }
func (s *Static) SwitchDesktop(int) error          { return nil }
func (s *Static) Activate(platform.WindowID) error { return nil }
func (s *Static) Raise(platform.WindowID) error    { return nil }
func (s *Static) Iconify(platform.WindowID) error  { return nil }
func (s *Static) Embed(platform.WindowID) error    { return nil }
func (s *Static) Unembed(platform.WindowID) error  { return nil }

func (s *Static) PlaceTrayIcon(platform.WindowID, platform.Rect) error { return nil }

var _ platform.Environment = (*Static)(nil)
