package panel

import "github.com/1broseidon/bmpanel/internal/layout"

// Pointer buttons the panel reacts to.
const (
	ButtonPrimary   = 1
	ButtonSecondary = 3
)

// HandleClick routes a click at panel-local x to a desktop tab or a task
// button.
func (p *Panel) HandleClick(x, y, button int) Scope {
	switch button {
	case ButtonSecondary:
		return p.iconifyAll()
	case ButtonPrimary:
		return p.primaryClick(x)
	}
	return ScopeNone
}

// iconifyAll minimizes every task on the active desktop.
func (p *Panel) iconifyAll() Scope {
	active := p.Desktops.Active()
	if active < 0 {
		return ScopeNone
	}
	for _, t := range p.Tasks.OnDesktop(active) {
		if err := p.env.Iconify(t.Window); err != nil {
			p.logger.Debug("iconify failed", "window", t.Window, "error", err)
		}
		t.Iconified = true
		t.Focused = false
	}
	return ScopeTaskbar
}

func (p *Panel) primaryClick(x int) Scope {
	for i, d := range p.Desktops.All() {
		if !(layout.Region{X: d.PosX, Width: d.Width}).Contains(x) {
			continue
		}
		// The switch shows up later as an active desktop notification.
		if !d.Focused {
			if err := p.env.SwitchDesktop(i); err != nil {
				p.logger.Debug("desktop switch failed", "desktop", i, "error", err)
			}
		}
		return ScopeNone
	}

	active := p.Desktops.Active()
	if active < 0 {
		return ScopeNone
	}

	changed := false
	for _, t := range p.Tasks.OnDesktop(active) {
		if !(layout.Region{X: t.PosX, Width: t.Width}).Contains(x) {
			if t.Focused {
				t.Focused = false
				changed = true
			}
			continue
		}

		var err error
		switch {
		case t.Iconified:
			err = p.env.Activate(t.Window)
			t.Iconified = false
			t.Focused = true
		case t.Focused:
			err = p.env.Iconify(t.Window)
			t.Iconified = true
			t.Focused = false
		default:
			err = p.env.Raise(t.Window)
			t.Focused = true
		}
		if err != nil {
			p.logger.Debug("task request failed", "window", t.Window, "error", err)
		}
		changed = true
	}

	if changed {
		return ScopeTaskbar
	}
	return ScopeNone
}
