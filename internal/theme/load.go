package theme

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// FileName is the theme description inside a theme directory.
const FileName = "theme.yaml"

type rawFont struct {
	File string  `yaml:"file"`
	Size float64 `yaml:"size"`
}

type rawText struct {
	Align   string `yaml:"align"`
	OffsetX int    `yaml:"offset_x"`
	OffsetY int    `yaml:"offset_y"`
	Padding int    `yaml:"padding"`
}

type rawSkin struct {
	LeftCorner  string `yaml:"left_corner"`
	RightCorner string `yaml:"right_corner"`
	Left        string `yaml:"left"`
	Right       string `yaml:"right"`
	Tile        string `yaml:"tile"`
	TextColor   string `yaml:"text_color"`
}

type rawClock struct {
	SpaceGap  int     `yaml:"space_gap"`
	Left      string  `yaml:"left"`
	Tile      string  `yaml:"tile"`
	Right     string  `yaml:"right"`
	Font      rawFont `yaml:"font"`
	Text      rawText `yaml:"text"`
	TextColor string  `yaml:"text_color"`
	Format    string  `yaml:"format"`
}

type rawSwitcher struct {
	SpaceGap  int     `yaml:"space_gap"`
	Separator string  `yaml:"separator"`
	Font      rawFont `yaml:"font"`
	Text      rawText `yaml:"text"`
	Idle      rawSkin `yaml:"idle"`
	Pressed   rawSkin `yaml:"pressed"`
}

type rawIcon struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	OffsetX int    `yaml:"offset_x"`
	OffsetY int    `yaml:"offset_y"`
	Default string `yaml:"default"`
}

type rawTaskbar struct {
	SpaceGap  int     `yaml:"space_gap"`
	Separator string  `yaml:"separator"`
	Font      rawFont `yaml:"font"`
	Text      rawText `yaml:"text"`
	Idle      rawSkin `yaml:"idle"`
	Pressed   rawSkin `yaml:"pressed"`
	Icon      rawIcon `yaml:"icon"`
}

type rawTray struct {
	IconWidth  int `yaml:"icon_width"`
	IconHeight int `yaml:"icon_height"`
}

type rawElements []string

// UnmarshalYAML accepts a list of element names or a scalar: either a
// comma-separated list or a run of single-letter codes ("sbtc").
func (e *rawElements) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*e = list
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		for _, part := range strings.Split(s, ",") {
			*e = append(*e, strings.TrimSpace(part))
		}
		return nil
	}
	if strings.Trim(s, "cstb") == "" {
		for _, r := range s {
			*e = append(*e, string(r))
		}
		return nil
	}
	*e = rawElements{s}
	return nil
}

type rawTheme struct {
	Name       string      `yaml:"name"`
	Height     int         `yaml:"height"`
	Placement  string      `yaml:"placement"`
	Elements   rawElements `yaml:"elements"`
	Background string      `yaml:"background"`
	Separator  string      `yaml:"separator"`
	Tray       rawTray     `yaml:"tray"`
	Clock      rawClock    `yaml:"clock"`
	Switcher   rawSwitcher `yaml:"switcher"`
	Taskbar    rawTaskbar  `yaml:"taskbar"`
}

// Loader reads theme directories.
type Loader struct {
	// ReadFont opens a font file at the given point size.
	ReadFont func(path string, size float64) (Font, error)
}

// DefaultLoader reads TrueType fonts.
func DefaultLoader() *Loader {
	return &Loader{ReadFont: ReadTrueType}
}

// Load reads and validates the theme in dir.
func Load(dir string) (*Theme, error) {
	return DefaultLoader().Load(dir)
}

// Load reads and validates the theme in dir.
func (l *Loader) Load(dir string) (*Theme, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}

	var raw rawTheme
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	th, err := l.build(dir, raw)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := th.Validate(); err != nil {
		return nil, err
	}
	return th, nil
}

// assets collects the first error while resolving theme files.
type assets struct {
	dir      string
	readFont func(path string, size float64) (Font, error)
	err      error
}

func (a *assets) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.dir, name)
}

func (a *assets) image(name string) image.Image {
	if name == "" || a.err != nil {
		return nil
	}
	fh, err := os.Open(a.path(name))
	if err != nil {
		a.err = fmt.Errorf("open image: %w", err)
		return nil
	}
	defer fh.Close()

	img, _, err := image.Decode(fh)
	if err != nil {
		a.err = fmt.Errorf("decode image %s: %w", name, err)
		return nil
	}
	return img
}

func (a *assets) font(f rawFont) Font {
	if f.File == "" || a.err != nil {
		return nil
	}
	size := f.Size
	if size <= 0 {
		size = 9
	}
	font, err := a.readFont(a.path(f.File), size)
	if err != nil {
		a.err = err
		return nil
	}
	return font
}

func (a *assets) color(s string) color.RGBA {
	if s == "" || a.err != nil {
		return color.RGBA{A: 0xff}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		a.err = fmt.Errorf("color %q: %w", s, err)
		return color.RGBA{A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (a *assets) text(f rawFont, t rawText) Text {
	align := Align(strings.ToLower(t.Align))
	switch align {
	case AlignLeft, AlignCenter, AlignRight:
	case "":
		align = AlignCenter
	default:
		if a.err == nil {
			a.err = fmt.Errorf("unknown text align %q", t.Align)
		}
	}
	return Text{
		Font:    a.font(f),
		Align:   align,
		OffsetX: t.OffsetX,
		OffsetY: t.OffsetY,
		Padding: t.Padding,
	}
}

func (a *assets) skin(s rawSkin) Skin {
	return Skin{
		LeftCorner:  a.image(s.LeftCorner),
		RightCorner: a.image(s.RightCorner),
		Left:        a.image(s.Left),
		Right:       a.image(s.Right),
		Tile:        a.image(s.Tile),
		TextColor:   a.color(s.TextColor),
	}
}

func (l *Loader) build(dir string, raw rawTheme) (*Theme, error) {
	readFont := l.ReadFont
	if readFont == nil {
		readFont = ReadTrueType
	}
	a := &assets{dir: dir, readFont: readFont}

	name := raw.Name
	if name == "" {
		name = filepath.Base(dir)
	}
	placement := Placement(strings.ToLower(raw.Placement))
	if placement == "" {
		placement = PlaceBottom
	}

	elements := make([]Element, 0, len(raw.Elements))
	for _, s := range raw.Elements {
		e, err := ParseElement(s)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}

	th := &Theme{
		Name:       name,
		Dir:        dir,
		Height:     raw.Height,
		Placement:  placement,
		Elements:   elements,
		Background: a.image(raw.Background),
		Separator:  a.image(raw.Separator),
		TrayWidth:  raw.Tray.IconWidth,
		TrayHeight: raw.Tray.IconHeight,
		Clock: Clock{
			SpaceGap:  raw.Clock.SpaceGap,
			Left:      a.image(raw.Clock.Left),
			Tile:      a.image(raw.Clock.Tile),
			Right:     a.image(raw.Clock.Right),
			Text:      a.text(raw.Clock.Font, raw.Clock.Text),
			TextColor: a.color(raw.Clock.TextColor),
			Format:    raw.Clock.Format,
		},
		Switcher: Switcher{
			SpaceGap:  raw.Switcher.SpaceGap,
			States:    [stateCount]Skin{a.skin(raw.Switcher.Idle), a.skin(raw.Switcher.Pressed)},
			Separator: a.image(raw.Switcher.Separator),
			Text:      a.text(raw.Switcher.Font, raw.Switcher.Text),
		},
		Taskbar: Taskbar{
			SpaceGap:    raw.Taskbar.SpaceGap,
			States:      [stateCount]Skin{a.skin(raw.Taskbar.Idle), a.skin(raw.Taskbar.Pressed)},
			Separator:   a.image(raw.Taskbar.Separator),
			Text:        a.text(raw.Taskbar.Font, raw.Taskbar.Text),
			IconWidth:   raw.Taskbar.Icon.Width,
			IconHeight:  raw.Taskbar.Icon.Height,
			IconOffsetX: raw.Taskbar.Icon.OffsetX,
			IconOffsetY: raw.Taskbar.Icon.OffsetY,
			DefaultIcon: a.image(raw.Taskbar.Icon.Default),
		},
	}
	if a.err != nil {
		return nil, a.err
	}
	return th, nil
}
