// Package engine applies actions to the focused window. Every call re-queries
// the window, the displays and the workspaces; nothing is cached between
// calls.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/navigation"
	"github.com/1broseidon/wmgr/internal/platform"
	"github.com/1broseidon/wmgr/internal/screens"
	"github.com/1broseidon/wmgr/internal/tiling"
	"github.com/1broseidon/wmgr/internal/workspace"
)

// Effect is the single write an Outcome performs.
type Effect int

const (
	// EffectNone leaves everything as it is.
	EffectNone Effect = iota
	// EffectFrame writes the window's origin then its size.
	EffectFrame
	// EffectOrigin moves the window without resizing it.
	EffectOrigin
	// EffectFullscreen writes the fullscreen flag.
	EffectFullscreen
	// EffectWorkspace posts the workspace switch sequence.
	EffectWorkspace
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectFrame:
		return "frame"
	case EffectOrigin:
		return "origin"
	case EffectFullscreen:
		return "fullscreen"
	case EffectWorkspace:
		return "workspace"
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Outcome is what applying an action will do. Only the fields matching
// Effect are meaningful.
type Outcome struct {
	Action     action.Action
	Effect     Effect
	Frame      geometry.Rect
	Fullscreen bool
	Workspace  workspace.Plan
	// Reason explains an EffectNone outcome.
	Reason string
}

func (o Outcome) String() string {
	switch o.Effect {
	case EffectFrame:
		return fmt.Sprintf("%s: frame %s", o.Action, o.Frame)
	case EffectOrigin:
		return fmt.Sprintf("%s: origin %s", o.Action, o.Frame.Origin)
	case EffectFullscreen:
		return fmt.Sprintf("%s: fullscreen %t", o.Action, o.Fullscreen)
	case EffectWorkspace:
		return fmt.Sprintf("%s: workspace %d (%d events)", o.Action, o.Workspace.Workspace, len(o.Workspace.Events))
	}
	if o.Reason != "" {
		return fmt.Sprintf("%s: no change (%s)", o.Action, o.Reason)
	}
	return fmt.Sprintf("%s: no change", o.Action)
}

// Engine turns actions into window writes through a platform backend.
type Engine struct {
	backend  platform.Backend
	screens  *screens.Resolver
	table    tiling.Table
	switcher *workspace.Switcher
	logger   zerolog.Logger
}

// New returns an Engine using table for the placement rules.
func New(backend platform.Backend, table tiling.Table, logger zerolog.Logger) *Engine {
	logger = logger.With().Str("component", "engine").Logger()
	return &Engine{
		backend:  backend,
		screens:  screens.NewResolver(backend),
		table:    table,
		switcher: workspace.NewSwitcher(backend, backend, backend, logger),
		logger:   logger,
	}
}

// Apply computes the outcome of a and performs it with a single write.
func (e *Engine) Apply(a action.Action) (Outcome, error) {
	out, err := e.Plan(a)
	if err != nil {
		return Outcome{}, err
	}
	if err := e.perform(out); err != nil {
		return out, err
	}
	return out, nil
}

// Plan computes the outcome of a from live state without writing anything.
func (e *Engine) Plan(a action.Action) (Outcome, error) {
	if !e.backend.OnMainThread() {
		return Outcome{}, platform.ErrWrongThread
	}
	if !a.Valid() {
		return Outcome{}, fmt.Errorf("invalid action %d", int(a))
	}

	var (
		out Outcome
		err error
	)
	switch a.Kind() {
	case action.KindRestore:
		return Outcome{}, fmt.Errorf("%s: %w", a, platform.ErrNotImplemented)
	case action.KindFullscreen:
		out, err = e.planFullscreen()
	case action.KindDisplay:
		out, err = e.planDisplay(a)
	case action.KindDesktop:
		out, err = e.planDesktop(a)
	default:
		out, err = e.planPlacement(a)
	}
	if err != nil {
		return Outcome{}, err
	}
	out.Action = a

	e.logger.Debug().Stringer("action", a).Stringer("effect", out.Effect).Str("outcome", out.String()).Msg("planned")
	return out, nil
}

func (e *Engine) perform(out Outcome) error {
	switch out.Effect {
	case EffectFrame:
		return e.backend.SetFocusedWindowFrame(out.Frame)
	case EffectOrigin:
		return e.backend.SetFocusedWindowOrigin(out.Frame.Origin)
	case EffectFullscreen:
		return e.backend.SetFocusedWindowFullscreen(out.Fullscreen)
	case EffectWorkspace:
		return e.switcher.Execute(out.Workspace)
	}
	return nil
}

// activeScreen reads the focused window and the display holding its origin.
func (e *Engine) activeScreen() (geometry.Rect, screens.Screen, []screens.Screen, error) {
	window, err := e.backend.FocusedWindowFrame()
	if err != nil {
		return geometry.Rect{}, screens.Screen{}, nil, err
	}
	list, err := e.screens.Screens()
	if err != nil {
		return geometry.Rect{}, screens.Screen{}, nil, err
	}
	active, err := screens.Locate(list, window.Origin)
	if err != nil {
		return geometry.Rect{}, screens.Screen{}, nil, err
	}
	e.logger.Debug().Int("display", active.Index).Stringer("usable", active.Usable).Stringer("window", window).Msg("active display")
	return window, active, list, nil
}

func (e *Engine) planPlacement(a action.Action) (Outcome, error) {
	window, active, _, err := e.activeScreen()
	if err != nil {
		return Outcome{}, err
	}
	p, err := e.table.Place(a, active.Usable, &window)
	if err != nil {
		return Outcome{}, err
	}

	switch p.Kind {
	case tiling.KindFrame:
		return Outcome{Effect: EffectFrame, Frame: p.Frame}, nil
	case tiling.KindOrigin:
		return Outcome{Effect: EffectOrigin, Frame: p.Frame}, nil
	}
	return Outcome{Effect: EffectNone, Frame: window, Reason: "window already at its limit"}, nil
}

func (e *Engine) planDisplay(a action.Action) (Outcome, error) {
	_, active, list, err := e.activeScreen()
	if err != nil {
		return Outcome{}, err
	}
	areas := make([]geometry.Rect, len(list))
	for i, s := range list {
		areas[i] = s.Usable
	}

	dir := navigation.Next
	if a == action.PreviousDisplay {
		dir = navigation.Previous
	}
	target, moved, err := navigation.Step(active.Usable, areas, dir)
	if err != nil {
		return Outcome{}, err
	}
	if !moved {
		return Outcome{Effect: EffectNone, Reason: "only one display"}, nil
	}
	return Outcome{Effect: EffectFrame, Frame: target}, nil
}

func (e *Engine) planDesktop(a action.Action) (Outcome, error) {
	groups, active, err := workspace.Query(e.backend)
	if err != nil {
		return Outcome{}, err
	}

	var (
		id int
		ok bool
	)
	if a == action.NextDesktop {
		id, ok = groups.Next(active)
	} else {
		id, ok = groups.Previous(active)
	}
	if !ok {
		return Outcome{Effect: EffectNone, Reason: "no workspace beyond this one on its display"}, nil
	}

	plan, err := e.switcher.Plan(id)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Effect: EffectWorkspace, Workspace: plan}, nil
}

func (e *Engine) planFullscreen() (Outcome, error) {
	fullscreen, err := e.backend.FocusedWindowFullscreen()
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Effect: EffectFullscreen, Fullscreen: !fullscreen}, nil
}
