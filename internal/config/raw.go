package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawLogging struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

// RawConfig mirrors the file layout. Nil fields were not set by any file.
type RawConfig struct {
	Include       IncludeList `yaml:"include"`
	Theme         *string     `yaml:"theme"`
	ThemePaths    []string    `yaml:"theme_paths"`
	Monitor       *string     `yaml:"monitor"`
	ClockInterval *string     `yaml:"clock_interval"`
	Logging       *RawLogging `yaml:"logging"`
}

// merge returns r overlaid with other; fields set in other win.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	out.Include = nil
	if other.Theme != nil {
		out.Theme = other.Theme
	}
	if other.ThemePaths != nil {
		out.ThemePaths = append([]string(nil), other.ThemePaths...)
	}
	if other.Monitor != nil {
		out.Monitor = other.Monitor
	}
	if other.ClockInterval != nil {
		out.ClockInterval = other.ClockInterval
	}
	if other.Logging != nil {
		lg := RawLogging{}
		if out.Logging != nil {
			lg = *out.Logging
		}
		if other.Logging.Level != nil {
			lg.Level = other.Logging.Level
		}
		if other.Logging.Format != nil {
			lg.Format = other.Logging.Format
		}
		out.Logging = &lg
	}
	return out
}

// BuildEffectiveConfig applies raw on top of DefaultConfig and validates the
// result.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Theme != nil {
		cfg.Theme = *raw.Theme
	}
	if raw.ThemePaths != nil {
		cfg.ThemePaths = append([]string(nil), raw.ThemePaths...)
	}
	if raw.Monitor != nil {
		cfg.Monitor = *raw.Monitor
	}
	if raw.ClockInterval != nil {
		d, err := time.ParseDuration(*raw.ClockInterval)
		if err != nil {
			return nil, &ValidationError{Path: "clock_interval", Err: err}
		}
		cfg.ClockInterval = d
	}
	if raw.Logging != nil {
		if raw.Logging.Level != nil {
			cfg.Logging.Level = *raw.Logging.Level
		}
		if raw.Logging.Format != nil {
			cfg.Logging.Format = *raw.Logging.Format
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
