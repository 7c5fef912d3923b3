package panel

import (
	"image"

	"github.com/nfnt/resize"

	"github.com/1broseidon/bmpanel/internal/model"
	"github.com/1broseidon/bmpanel/internal/platform"
)

// UnknownName is shown for windows without any usable title.
const UnknownName = "<unknown>"

// RebuildDesktops discards the desktop list and rebuilds it from the
// environment. Failed queries degrade to no desktops, no names and desktop 0.
func (p *Panel) RebuildDesktops() Scope {
	count, err := p.env.DesktopCount()
	if err != nil {
		p.logger.Debug("desktop count query failed", "error", err)
		count = 0
	}
	names, err := p.env.DesktopNames()
	if err != nil {
		p.logger.Debug("desktop names query failed", "error", err)
		names = nil
	}
	active, err := p.env.ActiveDesktop()
	if err != nil {
		p.logger.Debug("active desktop query failed", "error", err)
		active = 0
	}

	p.Desktops.Rebuild(count, names, active)
	p.logger.Debug("desktops rebuilt", "count", p.Desktops.Len(), "active", p.Desktops.Active())
	return ScopePanel
}

// SetActiveDesktop moves the focus flag to desktop d. An index the list does
// not know means the desktop set changed under us, so the list is rebuilt.
func (p *Panel) SetActiveDesktop(d int) Scope {
	if d < 0 || d >= p.Desktops.Len() {
		return p.RebuildDesktops()
	}
	if !p.Desktops.SetActive(d) {
		return ScopeNone
	}
	return ScopeLayout | ScopeSwitcher | ScopeTaskbar
}

// UpdateTasks reconciles the task list with the managed-window list: tasks
// whose window is gone are removed, new windows get a task unless they skip
// the taskbar, and the focus flag follows the active window.
//
// When the client list cannot be read the task list is left as it is.
func (p *Panel) UpdateTasks() Scope {
	clients, err := p.env.ClientList()
	if err != nil {
		p.logger.Debug("client list query failed", "error", err)
		return ScopeNone
	}
	focus := p.activeWindow()

	present := make(map[platform.WindowID]bool, len(clients))
	for _, id := range clients {
		present[id] = true
	}

	changed := false
	var gone []platform.WindowID
	for _, t := range p.Tasks.All() {
		if !present[t.Window] {
			gone = append(gone, t.Window)
		}
	}
	for _, id := range gone {
		p.Tasks.Remove(id)
		p.logger.Debug("task removed", "window", id)
		changed = true
	}

	for _, id := range clients {
		if id == p.Window || p.Tasks.Find(id) != nil {
			continue
		}
		if p.addTask(id, id == focus) {
			changed = true
		}
	}

	focused := p.setFocus(focus)
	switch {
	case changed:
		return ScopeLayout | ScopeTaskbar
	case focused:
		return ScopeTaskbar
	}
	return ScopeNone
}

func (p *Panel) addTask(id platform.WindowID, focused bool) bool {
	if p.hidden(id) {
		return false
	}

	desktop, err := p.env.WindowDesktop(id)
	if err != nil {
		p.logger.Debug("window desktop query failed", "window", id, "error", err)
		desktop = 0
	}
	iconified, err := p.env.Iconified(id)
	if err != nil {
		p.logger.Debug("window state query failed", "window", id, "error", err)
	}

	t := &model.Task{
		Window:    id,
		Name:      p.resolveName(id),
		Desktop:   desktop,
		Focused:   focused,
		Iconified: iconified,
		Icon:      p.resolveIcon(id),
	}
	if !p.Tasks.Insert(t) {
		return false
	}
	if err := p.env.Watch(id); err != nil {
		p.logger.Debug("window watch failed", "window", id, "error", err)
	}
	p.logger.Debug("task added", "window", id, "name", t.Name, "desktop", desktop)
	return true
}

// hidden reports whether id asks to be left out of the taskbar. A window
// whose state cannot be read is shown.
func (p *Panel) hidden(id platform.WindowID) bool {
	skip, err := p.env.SkipTaskbar(id)
	if err != nil {
		p.logger.Debug("window skip-taskbar query failed", "window", id, "error", err)
		return false
	}
	return skip
}

func (p *Panel) activeWindow() platform.WindowID {
	id, err := p.env.ActiveWindow()
	if err != nil {
		p.logger.Debug("active window query failed", "error", err)
		return 0
	}
	return id
}

// setFocus marks the task of focus as focused and clears every other task.
// It reports whether any flag changed.
func (p *Panel) setFocus(focus platform.WindowID) bool {
	changed := false
	for _, t := range p.Tasks.All() {
		f := t.Window == focus
		if t.Focused != f {
			t.Focused = f
			changed = true
		}
	}
	return changed
}

// RefreshFocus re-reads the active window.
func (p *Panel) RefreshFocus() Scope {
	if p.setFocus(p.activeWindow()) {
		return ScopeTaskbar
	}
	return ScopeNone
}

// FocusWindow handles input focus moving to the window of a task.
func (p *Panel) FocusWindow(id platform.WindowID) Scope {
	if p.Tasks.Find(id) == nil {
		return ScopeNone
	}
	if p.setFocus(id) {
		return ScopeTaskbar
	}
	return ScopeNone
}

// UpdateTaskDesktop moves the task of id to the desktop it now reports.
func (p *Panel) UpdateTaskDesktop(id platform.WindowID) Scope {
	t := p.Tasks.Find(id)
	if t == nil {
		return ScopeNone
	}
	desktop, err := p.env.WindowDesktop(id)
	if err != nil {
		p.logger.Debug("window desktop query failed", "window", id, "error", err)
		return ScopeNone
	}
	if desktop == t.Desktop {
		return ScopeNone
	}
	p.Tasks.Reassign(id, desktop)
	return ScopeLayout | ScopeSwitcher | ScopeTaskbar
}

// UpdateTaskName re-resolves the title of the task of id.
func (p *Panel) UpdateTaskName(id platform.WindowID) Scope {
	t := p.Tasks.Find(id)
	if t == nil {
		return ScopeNone
	}
	name := p.resolveName(id)
	if name == t.Name {
		return ScopeNone
	}
	t.Name = name
	return ScopeTaskbar
}

// UpdateTaskIconified re-reads WM_STATE of the task of id.
func (p *Panel) UpdateTaskIconified(id platform.WindowID) Scope {
	t := p.Tasks.Find(id)
	if t == nil {
		return ScopeNone
	}
	iconified, err := p.env.Iconified(id)
	if err != nil {
		p.logger.Debug("window state query failed", "window", id, "error", err)
		return ScopeNone
	}
	if iconified == t.Iconified {
		return ScopeNone
	}
	t.Iconified = iconified
	return ScopeTaskbar
}

// UpdateTaskState handles a _NET_WM_STATE change: a task that started
// skipping the taskbar is dropped, and a window that stopped skipping it is
// picked up by a reconciliation pass.
func (p *Panel) UpdateTaskState(id platform.WindowID) Scope {
	t := p.Tasks.Find(id)
	hidden := p.hidden(id)
	switch {
	case t != nil && hidden:
		p.Tasks.Remove(id)
		return ScopeLayout | ScopeTaskbar
	case t == nil && !hidden && id != p.Window:
		return p.UpdateTasks()
	}
	return ScopeNone
}

// UpdateTaskIcon re-resolves the icon of the task of id.
func (p *Panel) UpdateTaskIcon(id platform.WindowID) Scope {
	t := p.Tasks.Find(id)
	if t == nil {
		return ScopeNone
	}
	p.Tasks.SetIcon(t, p.resolveIcon(id))
	return ScopeTaskbar
}

// resolveName tries _NET_WM_VISIBLE_NAME, _NET_WM_NAME and WM_NAME in turn.
func (p *Panel) resolveName(id platform.WindowID) string {
	for _, get := range []func(platform.WindowID) (string, error){
		p.env.VisibleName,
		p.env.NetName,
		p.env.LegacyName,
	} {
		if name, err := get(id); err == nil && name != "" {
			return name
		}
	}
	return UnknownName
}

// resolveIcon tries the EWMH icon, then the WM_HINTS pixmap, then falls back
// to the theme default. Window icons are scaled to the theme icon box. With
// an empty icon box tasks carry no icon at all.
func (p *Panel) resolveIcon(id platform.WindowID) image.Image {
	tb := &p.Theme.Taskbar
	if !tb.HasIcons() {
		return nil
	}

	img, err := p.env.NetIcon(id, tb.IconWidth, tb.IconHeight)
	if err == nil && img != nil {
		return fitIcon(img, tb.IconWidth, tb.IconHeight)
	}
	p.logger.Debug("no EWMH icon", "window", id, "error", err)

	img, err = p.env.HintsIcon(id)
	if err == nil && img != nil {
		return fitIcon(img, tb.IconWidth, tb.IconHeight)
	}
	p.logger.Debug("no WM_HINTS icon", "window", id, "error", err)

	return tb.DefaultIcon
}

// fitIcon scales img to w x h. The source is released when a scaled copy
// replaces it.
func fitIcon(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	scaled := resize.Resize(uint(w), uint(h), img, resize.Bilinear)
	if r, ok := img.(model.Releaser); ok {
		r.Destroy()
	}
	return scaled
}
