package panel

import (
	"github.com/1broseidon/bmpanel/internal/platform"
	"github.com/1broseidon/bmpanel/internal/theme"
)

// TrayEnabled reports whether the theme still shows a tray. The element is
// removed at startup when another tray owns the selection.
func (p *Panel) TrayEnabled() bool {
	return p.Theme.HasElement(theme.ElementTray)
}

// AddTrayIcon embeds id into the panel in answer to a dock request.
func (p *Panel) AddTrayIcon(id platform.WindowID) Scope {
	if !p.TrayEnabled() {
		p.logger.Debug("dock request ignored, tray disabled", "window", id)
		return ScopeNone
	}
	if p.Trays.Find(id) != nil {
		return ScopeNone
	}
	if err := p.env.Embed(id); err != nil {
		p.logger.Warn("failed to embed tray icon", "window", id, "error", err)
		return ScopeNone
	}
	p.Trays.Add(id)
	p.logger.Debug("tray icon docked", "window", id, "icons", p.Trays.Len())
	return ScopePanel
}

// DelTrayIcon forgets the tray icon of id. The window is already gone or
// owned by someone else, so it is not reparented.
func (p *Panel) DelTrayIcon(id platform.WindowID) Scope {
	if !p.Trays.Remove(id) {
		return ScopeNone
	}
	p.logger.Debug("tray icon removed", "window", id, "icons", p.Trays.Len())
	return ScopePanel
}

// FreeTrayIcons hands every docked client back to the root window.
func (p *Panel) FreeTrayIcons() {
	for _, icon := range p.Trays.All() {
		if err := p.env.Unembed(icon.Window); err != nil {
			p.logger.Debug("failed to unembed tray icon", "window", icon.Window, "error", err)
		}
	}
	p.Trays.Clear()
}
