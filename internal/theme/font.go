package theme

import (
	"fmt"
	"os"

	"github.com/BurntSushi/freetype-go/freetype/truetype"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

// Font measures rendered text.
type Font interface {
	Extents(text string) (width, height int)
}

// TrueType is a parsed TrueType face at a fixed point size.
type TrueType struct {
	Face *truetype.Font
	Size float64
}

// Extents returns the pixel size of text rendered with f.
func (f *TrueType) Extents(text string) (int, int) {
	return xgraphics.Extents(f.Face, f.Size, text)
}

// ReadTrueType loads a TTF file.
func ReadTrueType(path string, size float64) (Font, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open font: %w", err)
	}
	defer fh.Close()

	face, err := xgraphics.ParseFont(fh)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return &TrueType{Face: face, Size: size}, nil
}
