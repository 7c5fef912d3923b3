// Package themetest builds in-memory themes with predictable metrics.
package themetest

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/1broseidon/bmpanel/internal/theme"
)

// Mono is a fixed-pitch font: every rune is Advance pixels wide.
type Mono struct {
	Advance int
	Height  int
}

func (m Mono) Extents(text string) (int, int) {
	return utf8.RuneCountInString(text) * m.Advance, m.Height
}

// Image returns an opaque w x h image, or nil when w is 0.
func Image(w, h int) image.Image {
	if w <= 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff})
		}
	}
	return img
}

// New returns a valid theme of the given height with the elements in order.
//
// Widths: element separator 2, switcher corners 3, switcher left/right 1,
// switcher separator 1, switcher gap 2, tab padding 4, clock left/right 2,
// clock gap 1, clock padding 2, taskbar left/right 2, taskbar gap 1,
// icon box 16x16, tray icons 20x20, font 6px per rune.
func New(height int, elements ...theme.Element) *theme.Theme {
	font := Mono{Advance: 6, Height: 10}
	sw := theme.Skin{
		LeftCorner:  Image(3, height),
		RightCorner: Image(3, height),
		Left:        Image(1, height),
		Right:       Image(1, height),
		Tile:        Image(4, height),
	}
	tb := theme.Skin{
		Left:  Image(2, height),
		Right: Image(2, height),
		Tile:  Image(4, height),
	}
	th := &theme.Theme{
		Name:       "test",
		Height:     height,
		Placement:  theme.PlaceBottom,
		Elements:   append([]theme.Element(nil), elements...),
		Background: Image(8, height),
		Separator:  Image(2, height),
		TrayWidth:  20,
		TrayHeight: 20,
		Clock: theme.Clock{
			SpaceGap: 1,
			Left:     Image(2, height),
			Tile:     Image(4, height),
			Right:    Image(2, height),
			Text:     theme.Text{Font: font, Align: theme.AlignCenter, Padding: 2},
			Format:   "%H:%M",
		},
		Switcher: theme.Switcher{
			SpaceGap:  2,
			States:    [2]theme.Skin{sw, sw},
			Separator: Image(1, height),
			Text:      theme.Text{Font: font, Align: theme.AlignCenter, Padding: 4},
		},
		Taskbar: theme.Taskbar{
			SpaceGap:    1,
			States:      [2]theme.Skin{tb, tb},
			Text:        theme.Text{Font: font, Align: theme.AlignLeft},
			IconWidth:   16,
			IconHeight:  16,
			DefaultIcon: Image(16, 16),
		},
	}
	return th
}
