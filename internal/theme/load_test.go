package theme

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeFont struct{ path string }

func (fakeFont) Extents(text string) (int, int) { return len(text) * 5, 8 }

func fakeReadFont(path string, size float64) (Font, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return fakeFont{path: path}, nil
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer fh.Close()
	if err := png.Encode(fh, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

const sampleTheme = `
name: sample
height: 24
placement: top
elements: sbtc
background: bg.png
separator: sep.png
tray:
  icon_width: 16
  icon_height: 16
clock:
  space_gap: 1
  tile: tile.png
  font: {file: font.ttf, size: 8}
  text: {align: right, padding: 3}
  text_color: "#ff8000"
  format: "%H:%M"
switcher:
  space_gap: 2
  separator: sep.png
  font: {file: font.ttf}
  idle:
    left_corner: corner.png
    right_corner: corner.png
    tile: tile.png
    text_color: "#ffffff"
  pressed:
    left_corner: corner.png
    right_corner: corner.png
    tile: tile.png
    text_color: "#000000"
taskbar:
  font: {file: font.ttf}
  idle: {tile: tile.png}
  pressed: {tile: tile.png}
  icon: {width: 16, height: 16, default: icon.png}
`

func writeThemeDir(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "bg.png"), 8, 24)
	writePNG(t, filepath.Join(dir, "sep.png"), 2, 24)
	writePNG(t, filepath.Join(dir, "tile.png"), 4, 24)
	writePNG(t, filepath.Join(dir, "corner.png"), 3, 24)
	writePNG(t, filepath.Join(dir, "icon.png"), 16, 16)
	if err := os.WriteFile(filepath.Join(dir, "font.ttf"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return dir
}

func TestLoad_SampleTheme(t *testing.T) {
	dir := writeThemeDir(t, sampleTheme)
	th, err := (&Loader{ReadFont: fakeReadFont}).Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []Element{ElementSwitcher, ElementTaskbar, ElementTray, ElementClock}
	if diff := cmp.Diff(want, th.Elements); diff != "" {
		t.Fatalf("unexpected elements (-want +got):\n%s", diff)
	}
	if th.Placement != PlaceTop || th.Height != 24 {
		t.Fatalf("unexpected geometry: %s %d", th.Placement, th.Height)
	}
	if ImageWidth(th.Switcher.Skin(StatePressed).LeftCorner) != 3 {
		t.Fatalf("expected pressed left corner width 3")
	}
	if th.Clock.TextColor != (color.RGBA{R: 0xff, G: 0x80, A: 0xff}) {
		t.Fatalf("unexpected clock color %+v", th.Clock.TextColor)
	}
	if th.Clock.Text.Align != AlignRight || th.Clock.Text.Padding != 3 {
		t.Fatalf("unexpected clock text %+v", th.Clock.Text)
	}
	if th.Switcher.Text.Align != AlignCenter {
		t.Fatalf("expected default align center, got %q", th.Switcher.Text.Align)
	}
	if th.Taskbar.DefaultIcon == nil || !th.Taskbar.HasIcons() {
		t.Fatalf("expected taskbar icon configuration")
	}
}

func TestLoad_UnknownKeyErrors(t *testing.T) {
	dir := writeThemeDir(t, sampleTheme+"bogus: 1\n")
	_, err := (&Loader{ReadFont: fakeReadFont}).Load(dir)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected error to mention the key, got %v", err)
	}
}

func TestLoad_MissingImageErrors(t *testing.T) {
	dir := writeThemeDir(t, strings.Replace(sampleTheme, "background: bg.png", "background: nope.png", 1))
	if _, err := (&Loader{ReadFont: fakeReadFont}).Load(dir); err == nil {
		t.Fatalf("expected error for missing image")
	}
}

func TestLoad_InvalidThemeFailsValidation(t *testing.T) {
	dir := writeThemeDir(t, strings.Replace(sampleTheme, "height: 24", "height: 0", 1))
	_, err := (&Loader{ReadFont: fakeReadFont}).Load(dir)
	if err == nil || !strings.Contains(err.Error(), "height") {
		t.Fatalf("expected height validation error, got %v", err)
	}
}

func TestRawElements_Forms(t *testing.T) {
	tests := []struct {
		body string
		want []Element
	}{
		{"elements: [clock, taskbar]", []Element{ElementClock, ElementTaskbar}},
		{"elements: clock, switcher", []Element{ElementClock, ElementSwitcher}},
		{"elements: bc", []Element{ElementTaskbar, ElementClock}},
	}
	for _, tc := range tests {
		body := strings.Replace(sampleTheme, "elements: sbtc", tc.body, 1)
		dir := writeThemeDir(t, body)
		th, err := (&Loader{ReadFont: fakeReadFont}).Load(dir)
		if err != nil {
			t.Fatalf("%s: load: %v", tc.body, err)
		}
		if diff := cmp.Diff(tc.want, th.Elements); diff != "" {
			t.Fatalf("%s: unexpected elements (-want +got):\n%s", tc.body, diff)
		}
	}
}

func TestValidate_DuplicateElementAndTraySize(t *testing.T) {
	th := &Theme{
		Name:       "bad",
		Height:     10,
		Placement:  PlaceBottom,
		Elements:   []Element{ElementTray, ElementTray},
		Background: image.NewRGBA(image.Rect(0, 0, 1, 1)),
	}
	err := th.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"more than once", "tray"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestRemoveElement(t *testing.T) {
	th := &Theme{Elements: []Element{ElementSwitcher, ElementTray, ElementClock}}
	th.RemoveElement(ElementTray)
	if th.HasElement(ElementTray) {
		t.Fatalf("expected tray removed")
	}
	if diff := cmp.Diff([]Element{ElementSwitcher, ElementClock}, th.Elements); diff != "" {
		t.Fatalf("unexpected elements (-want +got):\n%s", diff)
	}
}

func TestClockText(t *testing.T) {
	c := Clock{Format: "%H:%M"}
	got := c.Caption(time.Date(2024, 3, 5, 7, 9, 0, 0, time.UTC))
	if got != "07:09" {
		t.Fatalf("expected 07:09, got %q", got)
	}
}

func TestResolve_SearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	for _, dir := range []string{filepath.Join(first, "blue"), filepath.Join(second, "blue"), filepath.Join(second, "red")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte("height: 1\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got, err := Resolve("blue", []string{first, second})
	if err != nil || got != filepath.Join(first, "blue") {
		t.Fatalf("expected first search dir, got %q (%v)", got, err)
	}
	got, err = Resolve("red", []string{first, second})
	if err != nil || got != filepath.Join(second, "red") {
		t.Fatalf("expected second search dir, got %q (%v)", got, err)
	}
	abs := filepath.Join(second, "red")
	if got, err := Resolve(abs, []string{first}); err != nil || got != abs {
		t.Fatalf("expected absolute path, got %q (%v)", got, err)
	}
	if _, err := Resolve("green", []string{first, second}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
