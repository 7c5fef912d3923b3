// Package render paints the panel onto a Canvas using the positions of the
// last layout pass.
package render

import (
	"image"
	"image/color"

	"github.com/1broseidon/bmpanel/internal/theme"
)

// Canvas is an off-screen buffer of panel width x theme height.
type Canvas interface {
	Size() (width, height int)
	// Draw blends the src rectangle of img with its top-left corner at dst.
	Draw(img image.Image, src image.Rectangle, dst image.Point)
	// DrawText draws text with its top-left corner at dst. Nothing outside
	// clip is touched.
	DrawText(font theme.Font, c color.Color, dst image.Point, clip image.Rectangle, text string)
	// Present copies the buffer to the screen.
	Present() error
}
