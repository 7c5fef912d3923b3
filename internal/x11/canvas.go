package x11

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/BurntSushi/xgbutil/xgraphics"

	"github.com/1broseidon/bmpanel/internal/theme"
)

// Canvas is the panel back buffer: an xgraphics image bound to the panel
// window.
type Canvas struct {
	img *xgraphics.Image
	win *Window
}

// NewCanvas creates a back buffer the size of the panel window.
func NewCanvas(c *Connection, win *Window) (*Canvas, error) {
	img := xgraphics.New(c.XUtil, image.Rect(0, 0, win.Bounds.Width, win.Bounds.Height))
	if err := img.XSurfaceSet(win.win.Id); err != nil {
		img.Destroy()
		return nil, fmt.Errorf("failed to bind canvas to panel window: %w", err)
	}
	return &Canvas{img: img, win: win}, nil
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Draw blends the src rectangle of img at dst.
func (c *Canvas) Draw(img image.Image, src image.Rectangle, dst image.Point) {
	r := image.Rectangle{Min: dst, Max: dst.Add(src.Size())}
	draw.Draw(c.img, r, img, src.Min, draw.Over)
}

// DrawText renders text with a TrueType font, clipped to clip. Other font
// implementations have no glyphs to draw and are skipped.
func (c *Canvas) DrawText(font theme.Font, clr color.Color, dst image.Point, clip image.Rectangle, text string) {
	tt, ok := font.(*theme.TrueType)
	if !ok {
		return
	}
	clip = clip.Intersect(c.img.Bounds())
	if clip.Empty() {
		return
	}
	var region image.Image = c.img.SubImage(clip)
	sub, ok := region.(*xgraphics.Image)
	if !ok {
		return
	}
	sub.Text(dst.X, dst.Y, clr, tt.Size, tt.Face, text)
}

// Present uploads the buffer and paints it on the panel window.
func (c *Canvas) Present() error {
	c.img.XDraw()
	c.img.XPaint(c.win.win.Id)
	return nil
}

// Destroy frees the server-side pixmap.
func (c *Canvas) Destroy() {
	c.img.Destroy()
}
