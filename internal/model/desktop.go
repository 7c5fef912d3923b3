package model

import "strconv"

// Desktop is one virtual desktop as reported by the window manager.
// PosX and Width are written by the layout pass.
type Desktop struct {
	Name    string
	Focused bool
	PosX    int
	Width   int
}

// DesktopList holds desktops ordered by index.
type DesktopList struct {
	desktops []*Desktop
}

// NewDesktopList returns an empty list.
func NewDesktopList() *DesktopList {
	return &DesktopList{}
}

// Rebuild discards every desktop and recreates count entries. Missing or empty
// names fall back to the 1-based desktop number. An active index outside the
// list is clamped to the first desktop so exactly one entry is focused.
func (l *DesktopList) Rebuild(count int, names []string, active int) {
	l.desktops = nil
	if count <= 0 {
		return
	}
	if active < 0 || active >= count {
		active = 0
	}

	l.desktops = make([]*Desktop, 0, count)
	for i := 0; i < count; i++ {
		name := strconv.Itoa(i + 1)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		l.desktops = append(l.desktops, &Desktop{
			Name:    name,
			Focused: i == active,
		})
	}
}

// SetActive re-derives the focused flag of every desktop.
// It reports whether any flag changed.
func (l *DesktopList) SetActive(active int) bool {
	changed := false
	for i, d := range l.desktops {
		focused := i == active
		if d.Focused != focused {
			d.Focused = focused
			changed = true
		}
	}
	return changed
}

// Active returns the index of the focused desktop, or -1.
func (l *DesktopList) Active() int {
	for i, d := range l.desktops {
		if d.Focused {
			return i
		}
	}
	return -1
}

func (l *DesktopList) Len() int {
	return len(l.desktops)
}

// At returns the desktop at index i, or nil when out of range.
func (l *DesktopList) At(i int) *Desktop {
	if i < 0 || i >= len(l.desktops) {
		return nil
	}
	return l.desktops[i]
}

// All returns the desktops in index order. Callers must not modify the slice.
func (l *DesktopList) All() []*Desktop {
	return l.desktops
}

// Clear removes every desktop.
func (l *DesktopList) Clear() {
	l.desktops = nil
}
