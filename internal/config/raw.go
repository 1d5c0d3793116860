package config

import "maps"

// RawConfig mirrors Config with pointer fields so an absent key can be told
// apart from a zero value.
type RawConfig struct {
	MoveStep            *float64          `yaml:"move_step"`
	ResizeStep          *float64          `yaml:"resize_step"`
	AlmostMaximizeRatio *float64          `yaml:"almost_maximize_ratio"`
	Logging             *RawLoggingConfig `yaml:"logging"`
	Palette             *RawPaletteConfig `yaml:"palette"`
	X11                 *RawX11Config     `yaml:"x11"`
}

type RawLoggingConfig struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

type RawPaletteConfig struct {
	Backend       *string `yaml:"backend"`
	FuzzyMatching *bool   `yaml:"fuzzy_matching"`
}

type RawX11Config struct {
	WorkspaceHotKeys []string          `yaml:"workspace_hotkeys"`
	CloseButtonSize  *int              `yaml:"close_button_size"`
	Bindings         map[string]string `yaml:"bindings"`
}

// merge overlays other onto r; set fields in other win.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	if other.MoveStep != nil {
		out.MoveStep = other.MoveStep
	}
	if other.ResizeStep != nil {
		out.ResizeStep = other.ResizeStep
	}
	if other.AlmostMaximizeRatio != nil {
		out.AlmostMaximizeRatio = other.AlmostMaximizeRatio
	}
	if other.Logging != nil {
		merged := RawLoggingConfig{}
		if out.Logging != nil {
			merged = *out.Logging
		}
		if other.Logging.Level != nil {
			merged.Level = other.Logging.Level
		}
		if other.Logging.Format != nil {
			merged.Format = other.Logging.Format
		}
		out.Logging = &merged
	}
	if other.Palette != nil {
		merged := RawPaletteConfig{}
		if out.Palette != nil {
			merged = *out.Palette
		}
		if other.Palette.Backend != nil {
			merged.Backend = other.Palette.Backend
		}
		if other.Palette.FuzzyMatching != nil {
			merged.FuzzyMatching = other.Palette.FuzzyMatching
		}
		out.Palette = &merged
	}
	if other.X11 != nil {
		merged := RawX11Config{}
		if out.X11 != nil {
			merged = *out.X11
		}
		if other.X11.WorkspaceHotKeys != nil {
			merged.WorkspaceHotKeys = append([]string(nil), other.X11.WorkspaceHotKeys...)
		}
		if other.X11.CloseButtonSize != nil {
			merged.CloseButtonSize = other.X11.CloseButtonSize
		}
		if other.X11.Bindings != nil {
			merged.Bindings = maps.Clone(other.X11.Bindings)
		}
		out.X11 = &merged
	}
	return out
}
