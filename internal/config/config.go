package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Log formats accepted by logging.format.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
)

// Config is the effective bmpanel configuration.
type Config struct {
	// Theme is a theme name resolved against ThemePaths, or a directory path.
	// It may be left empty when the theme is given on the command line.
	Theme      string
	ThemePaths []string
	// Monitor is the RandR output the panel is placed on. Empty means the
	// primary output.
	Monitor       string
	ClockInterval time.Duration
	Logging       Logging
}

type Logging struct {
	Level  string
	Format string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		ClockInterval: time.Second,
		Logging: Logging{
			Level:  "info",
			Format: FormatAuto,
		},
	}
}

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

var errEmpty = errors.New("must not be empty")

func (c *Config) Validate() error {
	for i, dir := range c.ThemePaths {
		if strings.TrimSpace(dir) == "" {
			return &ValidationError{Path: "theme_paths", Err: fmt.Errorf("entry %d: %w", i, errEmpty)}
		}
	}
	if c.ClockInterval < 100*time.Millisecond {
		return &ValidationError{Path: "clock_interval", Err: fmt.Errorf("must be at least 100ms, got %s", c.ClockInterval)}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("unknown level %q", c.Logging.Level)}
	}
	switch c.Logging.Format {
	case FormatAuto, FormatConsole, FormatText, FormatJSON:
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("unknown format %q", c.Logging.Format)}
	}
	return nil
}
