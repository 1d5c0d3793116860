package engine

import (
	"errors"

	"github.com/1broseidon/wmgr/internal/platform"
	"github.com/1broseidon/wmgr/internal/screens"
	"github.com/1broseidon/wmgr/internal/workspace"
)

// Display is a listed display. Name is empty when the backend cannot name
// displays.
type Display struct {
	screens.Screen
	Name   string
	Active bool
}

// Displays lists every display, marking the one holding the focused window.
// No display is marked when there is no focused window.
func (e *Engine) Displays() ([]Display, error) {
	if !e.backend.OnMainThread() {
		return nil, platform.ErrWrongThread
	}
	list, err := e.screens.Screens()
	if err != nil {
		return nil, err
	}

	var names []string
	if namer, ok := e.backend.(platform.DisplayNamer); ok {
		if names, err = namer.DisplayNames(); err != nil {
			e.logger.Debug().Err(err).Msg("display names unavailable")
			names = nil
		}
	}

	activeIndex := -1
	window, err := e.backend.FocusedWindowFrame()
	switch {
	case err == nil:
		if s, err := screens.Locate(list, window.Origin); err == nil {
			activeIndex = s.Index
		}
	case !errors.Is(err, platform.ErrNoFocusedWindow):
		return nil, err
	}

	out := make([]Display, len(list))
	for i, s := range list {
		out[i] = Display{Screen: s, Active: s.Index == activeIndex}
		if i < len(names) {
			out[i].Name = names[i]
		}
	}
	return out, nil
}

// Workspaces lists the workspaces in logical order, marking the active one.
func (e *Engine) Workspaces() ([]workspace.Entry, error) {
	if !e.backend.OnMainThread() {
		return nil, platform.ErrWrongThread
	}
	groups, active, err := workspace.Query(e.backend)
	if err != nil {
		return nil, err
	}
	return groups.Entries(active), nil
}
