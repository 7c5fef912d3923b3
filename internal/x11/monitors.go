package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/bmpanel/internal/platform"
	"github.com/1broseidon/bmpanel/internal/theme"
)

// ErrNoMonitor is returned when the configured output is not connected.
var ErrNoMonitor = errors.New("monitor not found")

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Rect returns the monitor bounds.
func (m Monitor) Rect() platform.Rect {
	return platform.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

// Workarea returns the usable area of the first desktop, or the whole
// screen when the window manager does not publish _NET_WORKAREA.
func (c *Connection) Workarea() platform.Rect {
	w, h := c.ScreenSize()
	area := platform.Rect{Width: w, Height: h}
	if wa, err := ewmh.WorkareaGet(c.XUtil); err == nil && len(wa) > 0 {
		area = platform.Rect{X: int(wa[0].X), Y: int(wa[0].Y), Width: int(wa[0].Width), Height: int(wa[0].Height)}
	}
	return area
}

// PanelGeometry returns where a panel of the given height goes: the top or
// bottom edge of the work area, restricted to the named RandR output when
// output is not empty.
func (c *Connection) PanelGeometry(output string, height int, placement theme.Placement) (platform.Rect, error) {
	area := c.Workarea()
	if output == "" {
		return panelRect(area, nil, height, placement), nil
	}

	monitors, err := c.GetMonitors()
	if err != nil {
		return platform.Rect{}, err
	}
	mon := findMonitor(monitors, output)
	if mon == nil {
		return platform.Rect{}, fmt.Errorf("%w: %s", ErrNoMonitor, output)
	}
	return panelRect(area, mon, height, placement), nil
}

func findMonitor(monitors []Monitor, name string) *Monitor {
	for i := range monitors {
		if monitors[i].Name == name {
			return &monitors[i]
		}
	}
	return nil
}

// panelRect places the panel inside area, clipped to mon when given.
// A monitor outside the work area uses its full bounds.
func panelRect(area platform.Rect, mon *Monitor, height int, placement theme.Placement) platform.Rect {
	if mon != nil {
		if isect, ok := intersect(area, mon.Rect()); ok {
			area = isect
		} else {
			area = mon.Rect()
		}
	}

	r := platform.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: height}
	if placement == theme.PlaceBottom {
		r.Y = area.Y + area.Height - height
	}
	return r
}

func intersect(a, b platform.Rect) (platform.Rect, bool) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return platform.Rect{}, false
	}
	return platform.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}
