package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/logging"
	"github.com/1broseidon/wmgr/internal/platform"
	"github.com/1broseidon/wmgr/internal/tiling"
)

// DefaultWorkspaceHotKeys are the X11 key sequences bound to "switch to
// desktop K" by most desktop environments (KDE ships Control-F1..F4).
var DefaultWorkspaceHotKeys = []string{"Control-F1", "Control-F2", "Control-F3", "Control-F4"}

// DefaultCloseButtonSize is the assumed title bar height on X11 when the
// window manager does not publish frame extents.
const DefaultCloseButtonSize = 24

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of: trace, debug, info, warn, error, disabled.
	Level string `yaml:"level"`
	// Format is "console" or "json".
	Format string `yaml:"format"`
}

// PaletteConfig configures `wmgr palette`.
type PaletteConfig struct {
	// Backend is one of: auto, rofi, fuzzel, dmenu, wofi.
	Backend string `yaml:"backend"`
	// FuzzyMatching enables fuzzy matching in backends that support it.
	FuzzyMatching bool `yaml:"fuzzy_matching"`
}

// X11Config tunes the X11 backend.
type X11Config struct {
	// WorkspaceHotKeys holds the key sequence that switches to desktop K at
	// index K-1, in xgbutil keybind syntax (e.g. "Mod4-Shift-1").
	WorkspaceHotKeys []string `yaml:"workspace_hotkeys"`
	// CloseButtonSize is the fallback title bar height in pixels.
	CloseButtonSize int `yaml:"close_button_size"`
	// Bindings maps a global key sequence to an action name for
	// `wmgr listen`, e.g. "Mod4-Mod1-Left: left_half".
	Bindings map[string]string `yaml:"bindings,omitempty"`
}

// Config is the effective configuration.
type Config struct {
	MoveStep            float64       `yaml:"move_step"`
	ResizeStep          float64       `yaml:"resize_step"`
	AlmostMaximizeRatio float64       `yaml:"almost_maximize_ratio"`
	Logging             LoggingConfig `yaml:"logging"`
	Palette             PaletteConfig `yaml:"palette"`
	X11                 X11Config     `yaml:"x11"`
}

// DefaultConfig returns a config that reproduces the stock behavior.
func DefaultConfig() *Config {
	return &Config{
		MoveStep:            tiling.DefaultMoveStep,
		ResizeStep:          tiling.DefaultResizeStep,
		AlmostMaximizeRatio: tiling.DefaultAlmostMaximizeRatio,
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Palette: PaletteConfig{
			Backend: "auto",
		},
		X11: X11Config{
			WorkspaceHotKeys: append([]string(nil), DefaultWorkspaceHotKeys...),
			CloseButtonSize:  DefaultCloseButtonSize,
		},
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.MoveStep <= 0 {
		return &ValidationError{Path: "move_step", Err: fmt.Errorf("move_step must be > 0")}
	}
	if c.ResizeStep <= 0 {
		return &ValidationError{Path: "resize_step", Err: fmt.Errorf("resize_step must be > 0")}
	}
	if c.AlmostMaximizeRatio <= 0 || c.AlmostMaximizeRatio > 1 {
		return &ValidationError{Path: "almost_maximize_ratio", Err: fmt.Errorf("almost_maximize_ratio must be in (0, 1]")}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Err: err}
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("logging.format must be one of: console, json")}
	}
	switch c.Palette.Backend {
	case "auto", "rofi", "fuzzel", "dmenu", "wofi":
	default:
		return &ValidationError{Path: "palette.backend", Err: fmt.Errorf("palette.backend must be one of: auto, rofi, fuzzel, dmenu, wofi")}
	}
	if len(c.X11.WorkspaceHotKeys) > platform.MaxWorkspaces {
		return &ValidationError{Path: "x11.workspace_hotkeys", Err: fmt.Errorf("at most %d workspace hot-keys are supported, got %d", platform.MaxWorkspaces, len(c.X11.WorkspaceHotKeys))}
	}
	for i, key := range c.X11.WorkspaceHotKeys {
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: "x11.workspace_hotkeys", Err: fmt.Errorf("hot-key for workspace %d is empty", i+1)}
		}
	}
	for keys, name := range c.X11.Bindings {
		path := "x11.bindings." + keys
		if strings.TrimSpace(keys) == "" {
			return &ValidationError{Path: "x11.bindings", Err: fmt.Errorf("binding for %q has an empty key sequence", name)}
		}
		if _, err := action.Parse(name); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
	}
	if c.X11.CloseButtonSize <= 0 {
		return &ValidationError{Path: "x11.close_button_size", Err: fmt.Errorf("close_button_size must be > 0")}
	}
	return nil
}

// Table returns the placement table tuned by c.
func (c *Config) Table() tiling.Table {
	return tiling.Table{
		MoveStep:            c.MoveStep,
		ResizeStep:          c.ResizeStep,
		AlmostMaximizeRatio: c.AlmostMaximizeRatio,
	}
}

// PlatformOptions returns the native backend options.
func (c *Config) PlatformOptions() platform.Options {
	return platform.Options{
		WorkspaceHotKeys: append([]string(nil), c.X11.WorkspaceHotKeys...),
		CloseButtonSize:  c.X11.CloseButtonSize,
	}
}

// LoggerConfig returns the logger settings. Validate must have passed.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Logging.Level); err == nil {
		cfg.Level = level
	}
	cfg.Format = c.Logging.Format
	return cfg
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default config to path, creating parent
// directories. An existing file is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if exists, err := pathExists(path); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := DefaultConfig().Marshal()
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
