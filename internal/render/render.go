package render

import (
	"image"
	"image/color"
	"time"

	"github.com/1broseidon/bmpanel/internal/layout"
	"github.com/1broseidon/bmpanel/internal/panel"
	"github.com/1broseidon/bmpanel/internal/theme"
)

// Renderer draws panel elements. It keeps no state of its own besides the
// canvas; positions come from the panel's layout.
type Renderer struct {
	canvas Canvas
	theme  *theme.Theme
	height int
}

// New returns a renderer drawing th onto c.
func New(c Canvas, th *theme.Theme) *Renderer {
	_, h := c.Size()
	if th.Height < h {
		h = th.Height
	}
	return &Renderer{canvas: c, theme: th, height: h}
}

// Panel repaints every element and the separators between them.
func (r *Renderer) Panel(p *panel.Panel, now time.Time) {
	w, _ := r.canvas.Size()
	r.tile(r.theme.Background, 0, w)

	for _, e := range r.theme.Elements {
		switch e {
		case theme.ElementClock:
			r.Clock(p, now)
		case theme.ElementSwitcher:
			r.Switcher(p)
		case theme.ElementTaskbar:
			r.Taskbar(p)
		case theme.ElementTray:
			r.TrayBackground(p)
		}
	}
	for _, x := range p.Layout().Separators {
		r.image(r.theme.Separator, x)
	}
}

// Present shows the composited buffer.
func (r *Renderer) Present() error {
	return r.canvas.Present()
}

// Switcher repaints the desktop tabs.
func (r *Renderer) Switcher(p *panel.Panel) {
	reg, ok := p.Layout().Region(theme.ElementSwitcher)
	if !ok {
		return
	}
	r.tile(r.theme.Background, reg.X, reg.Width)

	sw := &r.theme.Switcher
	sepw := theme.ImageWidth(sw.Separator)
	n := p.Desktops.Len()
	for i, d := range p.Desktops.All() {
		sk := sw.Skin(theme.StateOf(d.Focused))
		left, right := layout.TabImages(sk, i, n)
		r.sequence(left, sk.Tile, right, d.PosX, d.Width)
		r.text(&sw.Text, sk.TextColor, layout.Region{X: d.PosX, Width: d.Width}, d.Name)
		if i < n-1 && sepw > 0 {
			r.image(sw.Separator, d.PosX+d.Width)
		}
	}
}

// Taskbar repaints the task buttons of the active desktop.
func (r *Renderer) Taskbar(p *panel.Panel) {
	reg, ok := p.Layout().Region(theme.ElementTaskbar)
	if !ok {
		return
	}
	r.tile(r.theme.Background, reg.X, reg.Width)

	active := p.Desktops.Active()
	if active < 0 {
		return
	}
	tb := &r.theme.Taskbar
	shown := p.Tasks.OnDesktop(active)
	for i, t := range shown {
		if t.Width <= 0 {
			continue
		}
		sk := tb.Skin(theme.StateOf(t.Focused))
		r.sequence(sk.Left, sk.Tile, sk.Right, t.PosX+tb.SpaceGap, t.Width-2*tb.SpaceGap)

		lw, rw := theme.ImageWidth(sk.Left), theme.ImageWidth(sk.Right)
		box := layout.Region{
			X:     t.PosX + tb.SpaceGap + lw,
			Width: t.Width - 2*tb.SpaceGap - lw - rw,
		}
		if tb.HasIcons() && t.Icon != nil {
			r.icon(t.Icon, box.X+tb.IconOffsetX)
			box.X += tb.IconOffsetX + tb.IconWidth
			box.Width -= tb.IconOffsetX + tb.IconWidth
		}
		r.text(&tb.Text, sk.TextColor, box, t.Name)

		if i < len(shown)-1 && tb.Separator != nil {
			r.image(tb.Separator, t.PosX+t.Width)
		}
	}
}

// TrayBackground clears the tray region. The icons paint themselves.
func (r *Renderer) TrayBackground(p *panel.Panel) {
	if reg, ok := p.Layout().Region(theme.ElementTray); ok {
		r.tile(r.theme.Background, reg.X, reg.Width)
	}
}

// Clock repaints the clock showing now.
func (r *Renderer) Clock(p *panel.Panel, now time.Time) {
	reg, ok := p.Layout().Region(theme.ElementClock)
	if !ok {
		return
	}
	r.tile(r.theme.Background, reg.X, reg.Width)

	c := &r.theme.Clock
	r.sequence(c.Left, c.Tile, c.Right, reg.X+c.SpaceGap, reg.Width-2*c.SpaceGap)
	lw, rw := theme.ImageWidth(c.Left), theme.ImageWidth(c.Right)
	box := layout.Region{
		X:     reg.X + c.SpaceGap + lw,
		Width: reg.Width - 2*c.SpaceGap - lw - rw,
	}
	r.text(&c.Text, c.TextColor, box, c.Caption(now))
}

// image draws img at x over the full panel height.
func (r *Renderer) image(img image.Image, x int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	src := image.Rect(b.Min.X, b.Min.Y, b.Max.X, min(b.Max.Y, b.Min.Y+r.height))
	r.canvas.Draw(img, src, image.Pt(x, 0))
}

// tile repeats img across [x, x+width), clipping the last copy.
func (r *Renderer) tile(img image.Image, x, width int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	tw := b.Dx()
	if tw <= 0 {
		return
	}
	maxY := min(b.Max.Y, b.Min.Y+r.height)
	for width > 0 {
		w := min(tw, width)
		r.canvas.Draw(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, maxY), image.Pt(x, 0))
		x += w
		width -= w
	}
}

// sequence draws left, tiled middle and right chrome filling [x, x+width).
// Nothing is drawn when the chrome does not fit.
func (r *Renderer) sequence(left, tile, right image.Image, x, width int) {
	lw, rw := theme.ImageWidth(left), theme.ImageWidth(right)
	mid := width - lw - rw
	if mid < 0 {
		return
	}
	r.image(left, x)
	r.tile(tile, x+lw, mid)
	r.image(right, x+lw+mid)
}

func (r *Renderer) icon(img image.Image, x int) {
	tb := &r.theme.Taskbar
	b := img.Bounds()
	src := image.Rect(b.Min.X, b.Min.Y, b.Min.X+min(b.Dx(), tb.IconWidth), b.Min.Y+min(b.Dy(), tb.IconHeight))
	y := (r.theme.Height-tb.IconHeight)/2 + tb.IconOffsetY
	r.canvas.Draw(img, src, image.Pt(x, y))
}

// text draws s aligned inside box, vertically centred on the panel and
// clipped to box.
func (r *Renderer) text(t *theme.Text, c color.RGBA, box layout.Region, s string) {
	if t.Font == nil || box.Width <= 0 || s == "" {
		return
	}
	tw, th := t.Font.Extents(s)

	x := box.X
	switch t.Align {
	case theme.AlignCenter:
		x += (box.Width - tw) / 2
	case theme.AlignRight:
		x += box.Width - tw
	}
	x += t.OffsetX
	y := (r.theme.Height-th)/2 + t.OffsetY

	clip := image.Rect(box.X, 0, box.End(), r.height)
	r.canvas.DrawText(t.Font, c, image.Pt(x, y), clip, s)
}
