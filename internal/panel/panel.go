// Package panel holds the panel state and keeps it in sync with the desktop
// environment. Every handler runs on the event loop goroutine and returns
// the Scope it invalidated.
package panel

import (
	"io"
	"log/slog"

	"github.com/1broseidon/bmpanel/internal/layout"
	"github.com/1broseidon/bmpanel/internal/model"
	"github.com/1broseidon/bmpanel/internal/platform"
	"github.com/1broseidon/bmpanel/internal/theme"
)

// Config holds what a panel needs at construction.
type Config struct {
	// Window is the panel's own window. It never gets a task.
	Window platform.WindowID
	Width  int
	Theme  *theme.Theme
	Env    platform.Environment
	Logger *slog.Logger
}

// Panel is the aggregate root: the theme, the three entity lists and the
// cached layout.
type Panel struct {
	Window   platform.WindowID
	Theme    *theme.Theme
	Desktops *model.DesktopList
	Tasks    *model.TaskList
	Trays    *model.TrayList

	env    platform.Environment
	logger *slog.Logger
	width  int
	layout layout.Result
}

// New returns a panel with empty lists. Call RebuildDesktops, UpdateTasks and
// Relayout to populate it.
func New(cfg Config) *Panel {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Panel{
		Window:   cfg.Window,
		Theme:    cfg.Theme,
		Desktops: model.NewDesktopList(),
		Tasks:    model.NewTaskList(cfg.Theme.Taskbar.DefaultIcon),
		Trays:    model.NewTrayList(),
		env:      cfg.Env,
		logger:   logger,
		width:    cfg.Width,
	}
}

// Width is the panel width in pixels.
func (p *Panel) Width() int {
	return p.width
}

// Layout returns the result of the last layout pass.
func (p *Panel) Layout() layout.Result {
	return p.layout
}

// Relayout recomputes every position and moves tray icons into place.
// It reports whether any element region moved or resized.
func (p *Panel) Relayout() bool {
	prev := p.layout
	p.layout = layout.Compute(layout.Input{
		Theme:    p.Theme,
		Width:    p.width,
		Desktops: p.Desktops,
		Tasks:    p.Tasks,
		Trays:    p.Trays,
	})

	y := (p.Theme.Height - p.Theme.TrayHeight) / 2
	for _, icon := range p.Trays.All() {
		bounds := platform.Rect{X: icon.PosX, Y: y, Width: icon.Width, Height: p.Theme.TrayHeight}
		if err := p.env.PlaceTrayIcon(icon.Window, bounds); err != nil {
			p.logger.Debug("tray icon placement failed", "window", icon.Window, "error", err)
		}
	}
	return !sameRegions(prev, p.layout)
}

func sameRegions(a, b layout.Result) bool {
	if len(a.Regions) != len(b.Regions) {
		return false
	}
	for e, ra := range a.Regions {
		if rb, ok := b.Regions[e]; !ok || ra != rb {
			return false
		}
	}
	return true
}

// Close releases every entity: tray clients are handed back to the root
// window and task icons are freed. It is safe to call more than once.
func (p *Panel) Close() {
	p.FreeTrayIcons()
	p.Tasks.Clear()
	p.Desktops.Clear()
}
