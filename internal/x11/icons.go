package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xgraphics"

	"github.com/1broseidon/bmpanel/internal/platform"
)

// NetIcon returns the _NET_WM_ICON entry closest to width x height.
func (c *Connection) NetIcon(id platform.WindowID, width, height int) (image.Image, error) {
	icons, err := ewmh.WmIconGet(c.XUtil, xwin(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get _NET_WM_ICON: %w", err)
	}
	best := xgraphics.FindBestEwmhIcon(width, height, icons)
	if best == nil {
		return nil, fmt.Errorf("window %d has no usable _NET_WM_ICON", id)
	}
	return xgraphics.NewEwmhIcon(c.XUtil, best), nil
}

// HintsIcon returns the WM_HINTS icon pixmap combined with its mask.
func (c *Connection) HintsIcon(id platform.WindowID) (image.Image, error) {
	hints, err := icccm.WmHintsGet(c.XUtil, xwin(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get WM_HINTS: %w", err)
	}
	if hints.Flags&icccm.HintIconPixmap == 0 || hints.IconPixmap == 0 {
		return nil, fmt.Errorf("window %d has no icon pixmap", id)
	}
	mask := hints.IconMask
	if hints.Flags&icccm.HintIconMask == 0 {
		mask = 0
	}
	img, err := xgraphics.NewIcccmIcon(c.XUtil, hints.IconPixmap, mask)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon pixmap: %w", err)
	}
	return img, nil
}
