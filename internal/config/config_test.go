package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.ClockInterval != time.Second {
		t.Fatalf("expected 1s clock interval, got %s", cfg.ClockInterval)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), res.Config); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), res.Config); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromPath_AllKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"theme: striped",
		"theme_paths:",
		"  - /opt/themes",
		"monitor: HDMI-1",
		"clock_interval: 30s",
		"logging:",
		"  level: debug",
		"  format: json",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := &Config{
		Theme:         "striped",
		ThemePaths:    []string{"/opt/themes"},
		Monitor:       "HDMI-1",
		ClockInterval: 30 * time.Second,
		Logging:       Logging{Level: "debug", Format: FormatJSON},
	}
	if diff := cmp.Diff(want, res.Config); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "colour: red\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "theme: x\nlogging:\n  level: loud\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "logging.level" {
		t.Fatalf("expected path logging.level, got %q", verr.Path)
	}
	if verr.Source.Line != 3 {
		t.Fatalf("expected line 3, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), "config.yaml:3:") {
		t.Fatalf("expected file position in %q", err.Error())
	}
}

func TestLoadFromPath_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "clock_interval: soon\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "clock_interval" {
		t.Fatalf("expected clock_interval error, got %v", err)
	}
}

func TestLoadFromPath_ClockIntervalTooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "clock_interval: 1ms\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for 1ms clock interval")
	}
}

func TestLoadFromPath_IncludeOverriddenByParent(t *testing.T) {
	dir := t.TempDir()
	incDir := filepath.Join(dir, "conf.d")
	if err := os.Mkdir(incDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(incDir, "10-theme.yaml"), "theme: included\nmonitor: DP-2\n")
	writeFile(t, filepath.Join(incDir, "20-log.yml"), "logging:\n  format: text\n")
	writeFile(t, filepath.Join(incDir, "ignored.txt"), "theme: nope\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: conf.d\ntheme: parent\nlogging:\n  level: warn\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Theme != "parent" {
		t.Fatalf("expected parent theme to win, got %q", res.Config.Theme)
	}
	if res.Config.Monitor != "DP-2" {
		t.Fatalf("expected included monitor, got %q", res.Config.Monitor)
	}
	if got := res.Config.Logging; got != (Logging{Level: "warn", Format: FormatText}) {
		t.Fatalf("expected merged logging, got %+v", got)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 merged files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, b, "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_MissingInclude(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for missing include")
	}
}

func TestValidate_EmptyThemePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThemePaths = []string{"/ok", " "}
	err := cfg.Validate()
	if !errors.Is(err, errEmpty) {
		t.Fatalf("expected empty entry error, got %v", err)
	}
}
