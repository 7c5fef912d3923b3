// Package theme describes the panel skin: geometry, element order, images,
// fonts and colours.
package theme

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Element is one of the panel regions.
type Element string

const (
	ElementClock    Element = "clock"
	ElementSwitcher Element = "switcher"
	ElementTray     Element = "tray"
	ElementTaskbar  Element = "taskbar"
)

// ParseElement accepts the long element names and the single-letter codes
// used by older themes (c, s, t, b).
func ParseElement(s string) (Element, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clock", "c":
		return ElementClock, nil
	case "switcher", "s":
		return ElementSwitcher, nil
	case "tray", "t":
		return ElementTray, nil
	case "taskbar", "b":
		return ElementTaskbar, nil
	}
	return "", fmt.Errorf("unknown element %q", s)
}

// Placement is the screen edge the panel docks to.
type Placement string

const (
	PlaceTop    Placement = "top"
	PlaceBottom Placement = "bottom"
)

// State selects the skin variant of a widget.
type State int

const (
	StateIdle State = iota
	StatePressed
	stateCount
)

// StateOf maps a pressed/focused flag to a skin state.
func StateOf(pressed bool) State {
	if pressed {
		return StatePressed
	}
	return StateIdle
}

// Align is the horizontal text alignment within a widget.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Text holds the font and placement of a widget caption.
type Text struct {
	Font    Font
	Align   Align
	OffsetX int
	OffsetY int
	Padding int
}

// Skin is the set of images for one widget state. Missing images are nil
// and measure zero.
type Skin struct {
	LeftCorner  image.Image
	RightCorner image.Image
	Left        image.Image
	Right       image.Image
	Tile        image.Image
	TextColor   color.RGBA
}

// Clock is the clock element skin.
type Clock struct {
	SpaceGap  int
	Left      image.Image
	Tile      image.Image
	Right     image.Image
	Text      Text
	TextColor color.RGBA
	Format    string
}

// Caption formats t with the clock's strftime format.
func (c *Clock) Caption(t time.Time) string {
	return strftime.Format(c.Format, t)
}

// Switcher is the desktop switcher skin.
type Switcher struct {
	SpaceGap  int
	States    [stateCount]Skin
	Separator image.Image
	Text      Text
}

// Skin returns the images for state s.
func (s *Switcher) Skin(st State) *Skin {
	return &s.States[st]
}

// Taskbar is the task list skin.
type Taskbar struct {
	SpaceGap    int
	States      [stateCount]Skin
	Separator   image.Image
	Text        Text
	IconWidth   int
	IconHeight  int
	IconOffsetX int
	IconOffsetY int
	DefaultIcon image.Image
}

// Skin returns the images for state s.
func (t *Taskbar) Skin(st State) *Skin {
	return &t.States[st]
}

// HasIcons reports whether task icons are drawn at all.
func (t *Taskbar) HasIcons() bool {
	return t.IconWidth > 0 && t.IconHeight > 0
}

// Theme is a validated, read-only panel skin.
type Theme struct {
	Name       string
	Dir        string
	Height     int
	Placement  Placement
	Elements   []Element
	Background image.Image
	Separator  image.Image
	TrayWidth  int
	TrayHeight int

	Clock    Clock
	Switcher Switcher
	Taskbar  Taskbar
}

// HasElement reports whether e is part of the element sequence.
func (t *Theme) HasElement(e Element) bool {
	for _, cur := range t.Elements {
		if cur == e {
			return true
		}
	}
	return false
}

// RemoveElement drops e from the element sequence.
func (t *Theme) RemoveElement(e Element) {
	out := t.Elements[:0]
	for _, cur := range t.Elements {
		if cur != e {
			out = append(out, cur)
		}
	}
	t.Elements = out
}

// ImageWidth returns the width of img, or 0 for nil.
func ImageWidth(img image.Image) int {
	if img == nil {
		return 0
	}
	return img.Bounds().Dx()
}

// Validate checks that the theme can be laid out and rendered.
func (t *Theme) Validate() error {
	var errs []error
	if t.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be > 0"))
	}
	if t.Placement != PlaceTop && t.Placement != PlaceBottom {
		errs = append(errs, fmt.Errorf("placement must be %q or %q, got %q", PlaceTop, PlaceBottom, t.Placement))
	}
	if len(t.Elements) == 0 {
		errs = append(errs, fmt.Errorf("elements must not be empty"))
	}
	if t.Background == nil {
		errs = append(errs, fmt.Errorf("background image is required"))
	}

	seen := make(map[Element]bool)
	for _, e := range t.Elements {
		if seen[e] {
			errs = append(errs, fmt.Errorf("element %q listed more than once", e))
		}
		seen[e] = true
	}

	if seen[ElementClock] {
		if t.Clock.Tile == nil {
			errs = append(errs, fmt.Errorf("clock: tile image is required"))
		}
		if t.Clock.Text.Font == nil {
			errs = append(errs, fmt.Errorf("clock: font is required"))
		}
		if t.Clock.Format == "" {
			errs = append(errs, fmt.Errorf("clock: format is required"))
		}
	}
	if seen[ElementSwitcher] {
		for st := StateIdle; st < stateCount; st++ {
			if t.Switcher.States[st].Tile == nil {
				errs = append(errs, fmt.Errorf("switcher: tile image is required for state %d", st))
			}
		}
		if t.Switcher.Text.Font == nil {
			errs = append(errs, fmt.Errorf("switcher: font is required"))
		}
	}
	if seen[ElementTaskbar] {
		for st := StateIdle; st < stateCount; st++ {
			if t.Taskbar.States[st].Tile == nil {
				errs = append(errs, fmt.Errorf("taskbar: tile image is required for state %d", st))
			}
		}
		if t.Taskbar.Text.Font == nil {
			errs = append(errs, fmt.Errorf("taskbar: font is required"))
		}
		if t.Taskbar.IconWidth < 0 || t.Taskbar.IconHeight < 0 {
			errs = append(errs, fmt.Errorf("taskbar: icon size must be >= 0"))
		}
	}
	if seen[ElementTray] && (t.TrayWidth <= 0 || t.TrayHeight <= 0) {
		errs = append(errs, fmt.Errorf("tray: icon size must be > 0"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid theme %q: %w", t.Name, errors.Join(errs...))
	}
	return nil
}
