package config

import (
	"fmt"
	"sort"
)

// Explain returns the effective value at a YAML path and where it came from.
//
// Supported paths:
//
//	move_step
//	resize_step
//	almost_maximize_ratio
//	logging.level
//	logging.format
//	palette.backend
//	palette.fuzzy_matching
//	x11.workspace_hotkeys
//	x11.close_button_size
//	x11.bindings
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	values := effectiveValues(res.Config)
	value, ok := values[path]
	if !ok {
		return nil, Source{}, fmt.Errorf("unknown config path %q", path)
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

// Paths lists every path Explain accepts, sorted.
func Paths() []string {
	values := effectiveValues(DefaultConfig())
	out := make([]string, 0, len(values))
	for path := range values {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func effectiveValues(c *Config) map[string]any {
	return map[string]any{
		"move_step":              c.MoveStep,
		"resize_step":            c.ResizeStep,
		"almost_maximize_ratio":  c.AlmostMaximizeRatio,
		"logging.level":          c.Logging.Level,
		"logging.format":         c.Logging.Format,
		"palette.backend":        c.Palette.Backend,
		"palette.fuzzy_matching": c.Palette.FuzzyMatching,
		"x11.workspace_hotkeys":  c.X11.WorkspaceHotKeys,
		"x11.close_button_size":  c.X11.CloseButtonSize,
		"x11.bindings":           c.X11.Bindings,
	}
}
