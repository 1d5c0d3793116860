package config

import (
	"fmt"
	"maps"
)

// ValidationError reports an invalid value at a YAML path, with the file
// position that set it when known.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw on top of the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.MoveStep != nil {
		cfg.MoveStep = *raw.MoveStep
	}
	if raw.ResizeStep != nil {
		cfg.ResizeStep = *raw.ResizeStep
	}
	if raw.AlmostMaximizeRatio != nil {
		cfg.AlmostMaximizeRatio = *raw.AlmostMaximizeRatio
	}
	if raw.Logging != nil {
		if raw.Logging.Level != nil {
			cfg.Logging.Level = *raw.Logging.Level
		}
		if raw.Logging.Format != nil {
			cfg.Logging.Format = *raw.Logging.Format
		}
	}
	if raw.Palette != nil {
		if raw.Palette.Backend != nil {
			cfg.Palette.Backend = *raw.Palette.Backend
		}
		if raw.Palette.FuzzyMatching != nil {
			cfg.Palette.FuzzyMatching = *raw.Palette.FuzzyMatching
		}
	}
	if raw.X11 != nil {
		if raw.X11.WorkspaceHotKeys != nil {
			cfg.X11.WorkspaceHotKeys = append([]string(nil), raw.X11.WorkspaceHotKeys...)
		}
		if raw.X11.CloseButtonSize != nil {
			cfg.X11.CloseButtonSize = *raw.X11.CloseButtonSize
		}
		if raw.X11.Bindings != nil {
			cfg.X11.Bindings = maps.Clone(raw.X11.Bindings)
		}
	}
	return cfg
}
