package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/bmpanel/internal/platform"
	"github.com/1broseidon/bmpanel/internal/theme"
)

func TestStrutFor(t *testing.T) {
	top := strutFor(platform.Rect{X: 0, Y: 0, Width: 1920, Height: 24}, 1080, theme.PlaceTop)
	if top != (ewmh.WmStrutPartial{Top: 24, TopStartX: 0, TopEndX: 1919}) {
		t.Fatalf("unexpected top strut %+v", top)
	}

	bottom := strutFor(platform.Rect{X: 1920, Y: 1056, Width: 1280, Height: 24}, 1080, theme.PlaceBottom)
	if bottom != (ewmh.WmStrutPartial{Bottom: 24, BottomStartX: 1920, BottomEndX: 3199}) {
		t.Fatalf("unexpected bottom strut %+v", bottom)
	}
}
