package panel

import (
	"errors"
	"fmt"
	"image"

	"github.com/1broseidon/bmpanel/internal/platform"
	"github.com/1broseidon/bmpanel/internal/theme"
)

var errNoProperty = errors.New("property not set")

type fakeWindow struct {
	desktop     int
	skip        bool
	iconified   bool
	visibleName string
	netName     string
	legacyName  string
	netIcon     image.Image
	hintsIcon   image.Image
}

// fakeEnv is an in-memory desktop environment that records every request.
type fakeEnv struct {
	desktopCount int
	desktopNames []string
	active       int
	clients      []platform.WindowID
	activeWin    platform.WindowID
	windows      map[platform.WindowID]*fakeWindow
	clientErr    error

	calls   []string
	watched map[platform.WindowID]int
	placed  map[platform.WindowID]platform.Rect
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		windows: make(map[platform.WindowID]*fakeWindow),
		watched: make(map[platform.WindowID]int),
		placed:  make(map[platform.WindowID]platform.Rect),
	}
}

// addWindow registers a managed window and appends it to the client list.
func (e *fakeEnv) addWindow(id platform.WindowID, w *fakeWindow) {
	e.windows[id] = w
	e.clients = append(e.clients, id)
}

func (e *fakeEnv) record(format string, args ...any) {
	e.calls = append(e.calls, fmt.Sprintf(format, args...))
}

func (e *fakeEnv) window(id platform.WindowID) (*fakeWindow, error) {
	w, ok := e.windows[id]
	if !ok {
		return nil, fmt.Errorf("window %d: %w", id, errNoProperty)
	}
	return w, nil
}

func (e *fakeEnv) DesktopCount() (int, error) { return e.desktopCount, nil }

func (e *fakeEnv) DesktopNames() ([]string, error) {
	if e.desktopNames == nil {
		return nil, errNoProperty
	}
	return e.desktopNames, nil
}

func (e *fakeEnv) ActiveDesktop() (int, error) { return e.active, nil }

func (e *fakeEnv) ClientList() ([]platform.WindowID, error) {
	if e.clientErr != nil {
		return nil, e.clientErr
	}
	return append([]platform.WindowID(nil), e.clients...), nil
}

func (e *fakeEnv) ActiveWindow() (platform.WindowID, error) { return e.activeWin, nil }

func (e *fakeEnv) WindowDesktop(id platform.WindowID) (int, error) {
	w, err := e.window(id)
	if err != nil {
		return 0, err
	}
	return w.desktop, nil
}

func (e *fakeEnv) SkipTaskbar(id platform.WindowID) (bool, error) {
	w, err := e.window(id)
	if err != nil {
		return false, err
	}
	return w.skip, nil
}

func (e *fakeEnv) Iconified(id platform.WindowID) (bool, error) {
	w, err := e.window(id)
	if err != nil {
		return false, err
	}
	return w.iconified, nil
}

func (e *fakeEnv) name(id platform.WindowID, pick func(*fakeWindow) string) (string, error) {
	w, err := e.window(id)
	if err != nil {
		return "", err
	}
	if s := pick(w); s != "" {
		return s, nil
	}
	return "", errNoProperty
}

func (e *fakeEnv) VisibleName(id platform.WindowID) (string, error) {
	return e.name(id, func(w *fakeWindow) string { return w.visibleName })
}

func (e *fakeEnv) NetName(id platform.WindowID) (string, error) {
	return e.name(id, func(w *fakeWindow) string { return w.netName })
}

func (e *fakeEnv) LegacyName(id platform.WindowID) (string, error) {
	return e.name(id, func(w *fakeWindow) string { return w.legacyName })
}

func (e *fakeEnv) NetIcon(id platform.WindowID, width, height int) (image.Image, error) {
	w, err := e.window(id)
	if err != nil {
		return nil, err
	}
	if w.netIcon == nil {
		return nil, errNoProperty
	}
	return w.netIcon, nil
}

func (e *fakeEnv) HintsIcon(id platform.WindowID) (image.Image, error) {
	w, err := e.window(id)
	if err != nil {
		return nil, err
	}
	if w.hintsIcon == nil {
		return nil, errNoProperty
	}
	return w.hintsIcon, nil
}

func (e *fakeEnv) Watch(id platform.WindowID) error {
	e.watched[id]++
	return nil
}

func (e *fakeEnv) SwitchDesktop(desktop int) error {
	e.record("switch %d", desktop)
	return nil
}

func (e *fakeEnv) Activate(id platform.WindowID) error {
	e.record("activate %d", id)
	return nil
}

func (e *fakeEnv) Raise(id platform.WindowID) error {
	e.record("raise %d", id)
	return nil
}

func (e *fakeEnv) Iconify(id platform.WindowID) error {
	e.record("iconify %d", id)
	return nil
}

func (e *fakeEnv) Embed(id platform.WindowID) error {
	e.record("embed %d", id)
	return nil
}

func (e *fakeEnv) Unembed(id platform.WindowID) error {
	e.record("unembed %d", id)
	return nil
}

func (e *fakeEnv) PlaceTrayIcon(id platform.WindowID, bounds platform.Rect) error {
	e.placed[id] = bounds
	return nil
}

func newTestPanel(env *fakeEnv, th *theme.Theme, width int) *Panel {
	return New(Config{Window: 999, Width: width, Theme: th, Env: env})
}

// releasingImage counts Destroy calls, like an icon backed by a pixmap.
type releasingImage struct {
	*image.RGBA
	released *int
}

func (r releasingImage) Destroy() {
	*r.released++
}
