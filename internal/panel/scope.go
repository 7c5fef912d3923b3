package panel

import "strings"

// Scope is the set of panel parts an event invalidated. Scopes from one
// batch of events are ORed together and flushed once.
type Scope uint8

const (
	// ScopeLayout asks for a layout pass before painting.
	ScopeLayout Scope = 1 << iota
	// ScopeSwitcher repaints the desktop switcher.
	ScopeSwitcher
	// ScopeTaskbar repaints the taskbar.
	ScopeTaskbar
	// ScopePanel relayouts and repaints everything. It implies every other bit.
	ScopePanel

	ScopeNone Scope = 0
)

// Has reports whether every bit of other is set in s. ScopePanel has
// everything.
func (s Scope) Has(other Scope) bool {
	if s&ScopePanel != 0 {
		return true
	}
	return s&other == other
}

func (s Scope) String() string {
	if s == ScopeNone {
		return "none"
	}
	var parts []string
	for _, b := range []struct {
		bit  Scope
		name string
	}{
		{ScopeLayout, "layout"},
		{ScopeSwitcher, "switcher"},
		{ScopeTaskbar, "taskbar"},
		{ScopePanel, "panel"},
	} {
		if s&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}
