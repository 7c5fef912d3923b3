// Package layout computes horizontal positions for the panel elements and
// for every desktop tab, task button and tray icon.
package layout

import (
	"image"
	"time"

	"github.com/1broseidon/bmpanel/internal/model"
	"github.com/1broseidon/bmpanel/internal/theme"
)

// clockReference is the instant used to measure the clock. Measuring a fixed
// time keeps the clock width, and everything placed after it, stable.
var clockReference = time.Unix(0, 0)

// Region is a horizontal span of the panel.
type Region struct {
	X     int
	Width int
}

// End returns the first x past the region.
func (r Region) End() int {
	return r.X + r.Width
}

// Contains reports whether x lies in [X, X+Width).
func (r Region) Contains(x int) bool {
	return x >= r.X && x < r.End()
}

// Result is the output of a layout pass.
type Result struct {
	Width      int
	Regions    map[theme.Element]Region
	Separators []int // x of each element separator
}

// Region returns the span of element e.
func (r Result) Region(e theme.Element) (Region, bool) {
	reg, ok := r.Regions[e]
	return reg, ok
}

// Input is the state a layout pass reads and annotates.
type Input struct {
	Theme    *theme.Theme
	Width    int
	Desktops *model.DesktopList
	Tasks    *model.TaskList
	Trays    *model.TrayList
}

// Compute measures every element, gives the remaining width to the taskbar,
// and writes PosX/Width into desktops, tasks and tray icons.
func Compute(in Input) Result {
	th := in.Theme
	sep := theme.ImageWidth(th.Separator)

	// Measurement pass.
	fixed := 0
	for _, e := range th.Elements {
		if e != theme.ElementTaskbar {
			fixed += measure(in, e)
		}
	}
	if n := len(th.Elements); n > 1 {
		fixed += (n - 1) * sep
	}
	taskbarWidth := in.Width - fixed
	if taskbarWidth < 0 {
		taskbarWidth = 0
	}

	// Placement pass.
	res := Result{
		Width:   in.Width,
		Regions: make(map[theme.Element]Region, len(th.Elements)),
	}
	ox := 0
	for i, e := range th.Elements {
		var w int
		switch e {
		case theme.ElementClock:
			w = ClockWidth(th)
		case theme.ElementSwitcher:
			w = placeSwitcher(th, ox, in.Desktops)
		case theme.ElementTray:
			w = placeTray(th, ox, in.Trays)
		case theme.ElementTaskbar:
			w = taskbarWidth
			placeTaskbar(th, Region{X: ox, Width: w}, in.Desktops, in.Tasks)
		}
		res.Regions[e] = Region{X: ox, Width: w}
		ox += w
		if i < len(th.Elements)-1 && sep > 0 {
			res.Separators = append(res.Separators, ox)
			ox += sep
		}
	}
	return res
}

func measure(in Input, e theme.Element) int {
	switch e {
	case theme.ElementClock:
		return ClockWidth(in.Theme)
	case theme.ElementSwitcher:
		return SwitcherWidth(in.Theme, in.Desktops)
	case theme.ElementTray:
		if in.Trays == nil {
			return 0
		}
		return in.Trays.Len() * in.Theme.TrayWidth
	}
	return 0
}

// ClockWidth is the natural width of the clock element.
func ClockWidth(th *theme.Theme) int {
	c := &th.Clock
	w := 2*c.SpaceGap + theme.ImageWidth(c.Left) + theme.ImageWidth(c.Right)
	if c.Text.Font != nil {
		tw, _ := c.Text.Font.Extents(c.Caption(clockReference))
		w += tw
	}
	return w + c.Text.Padding
}

// TabImages returns the left and right chrome of desktop tab i out of n.
// The first tab opens with the left corner, the last closes with the right
// corner; a lone tab uses both corners.
func TabImages(sk *theme.Skin, i, n int) (left, right image.Image) {
	left, right = sk.Left, sk.Right
	if i == 0 {
		left = sk.LeftCorner
	}
	if i == n-1 {
		right = sk.RightCorner
	}
	return left, right
}

// TabWidth is the width of desktop tab i.
func TabWidth(th *theme.Theme, desktops *model.DesktopList, i int) int {
	d := desktops.At(i)
	sw := &th.Switcher
	left, right := TabImages(sw.Skin(theme.StateOf(d.Focused)), i, desktops.Len())
	w := theme.ImageWidth(left) + theme.ImageWidth(right) + sw.Text.Padding
	if sw.Text.Font != nil {
		tw, _ := sw.Text.Font.Extents(d.Name)
		w += tw
	}
	return w
}

// SwitcherWidth is the natural width of the switcher element.
func SwitcherWidth(th *theme.Theme, desktops *model.DesktopList) int {
	if desktops == nil || desktops.Len() == 0 {
		return 0
	}
	sw := &th.Switcher
	w := 2 * sw.SpaceGap
	for i := 0; i < desktops.Len(); i++ {
		w += TabWidth(th, desktops, i)
	}
	return w + (desktops.Len()-1)*theme.ImageWidth(sw.Separator)
}

func placeSwitcher(th *theme.Theme, ox int, desktops *model.DesktopList) int {
	if desktops == nil || desktops.Len() == 0 {
		return 0
	}
	sw := &th.Switcher
	sep := theme.ImageWidth(sw.Separator)
	x := ox + sw.SpaceGap
	for i, d := range desktops.All() {
		if i > 0 {
			x += sep
		}
		d.PosX = x
		d.Width = TabWidth(th, desktops, i)
		x += d.Width
	}
	return x + sw.SpaceGap - ox
}

func placeTray(th *theme.Theme, ox int, trays *model.TrayList) int {
	if trays == nil {
		return 0
	}
	x := ox
	for _, icon := range trays.All() {
		icon.PosX = x
		icon.Width = th.TrayWidth
		x += th.TrayWidth
	}
	return x - ox
}

// placeTaskbar splits the taskbar evenly between the tasks shown on the
// active desktop. The last button absorbs the division remainder so the
// buttons and task separators cover the region exactly.
func placeTaskbar(th *theme.Theme, reg Region, desktops *model.DesktopList, tasks *model.TaskList) {
	if tasks == nil {
		return
	}
	for _, t := range tasks.All() {
		t.PosX, t.Width = 0, 0
	}
	if desktops == nil {
		return
	}
	active := desktops.Active()
	if active < 0 {
		return
	}
	shown := tasks.OnDesktop(active)
	n := len(shown)
	if n == 0 {
		return
	}

	sep := theme.ImageWidth(th.Taskbar.Separator)
	avail := reg.Width - (n-1)*sep
	if avail < 0 {
		avail = 0
	}
	base := avail / n

	x := reg.X
	for i, t := range shown {
		t.PosX = x
		if i == n-1 {
			t.Width = max(reg.End()-x, 0)
			break
		}
		t.Width = base
		x += base + sep
	}
}
