package workspace

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
)

// HotKeySlot returns the symbolic hot-key slot that switches to logical
// workspace id. Only workspaces 1 to platform.MaxWorkspaces have a slot.
func HotKeySlot(id int) (int, error) {
	if id < 1 {
		return 0, fmt.Errorf("invalid workspace %d", id)
	}
	if id > platform.MaxWorkspaces {
		return 0, fmt.Errorf("workspace %d: %w", id, platform.ErrTooManyWorkspaces)
	}
	return platform.WorkspaceHotKeySlot + id - 1, nil
}

// DragAnchor is where the pointer grabs the window: horizontally at the
// close control's center, vertically halfway between the window's top edge
// and the top of the close control.
func DragAnchor(window, closeButton geometry.Rect) geometry.Point {
	return geometry.Point{
		X: closeButton.MidX(),
		Y: window.MinY() + math.Abs(window.MinY()-closeButton.MinY())/2,
	}
}

// Events returns the synthetic input that carries a window to another
// workspace: grab the title bar, hold it with a drag, press and release the
// workspace hot-key, then let go.
func Events(anchor geometry.Point, key platform.HotKey) []platform.Event {
	return []platform.Event{
		{Kind: platform.PointerMove, Point: anchor},
		{Kind: platform.PointerDown, Point: anchor},
		{Kind: platform.PointerDrag, Point: anchor},
		{Kind: platform.KeyDown, Key: key},
		{Kind: platform.KeyUp, Key: platform.HotKey{Code: key.Code}},
		{Kind: platform.PointerUp, Point: anchor},
	}
}

// Plan is a fully resolved workspace move. Nothing has been posted yet.
type Plan struct {
	Workspace   int
	Slot        int
	Key         platform.HotKey
	NeedsEnable bool
	Anchor      geometry.Point
	Events      []platform.Event
}

// Switcher moves the focused window to another workspace by synthesizing
// input. The sequence is not atomic: input from the user in the middle of it
// can interfere.
type Switcher struct {
	windows platform.WindowAccessor
	keys    platform.HotKeyTable
	sink    platform.InputSink
	logger  zerolog.Logger
}

// NewSwitcher returns a Switcher posting through sink.
func NewSwitcher(windows platform.WindowAccessor, keys platform.HotKeyTable, sink platform.InputSink, logger zerolog.Logger) *Switcher {
	return &Switcher{windows: windows, keys: keys, sink: sink, logger: logger}
}

// Plan validates id and resolves everything the move needs. It has no side
// effects, so a failure here leaves no input posted.
func (s *Switcher) Plan(id int) (Plan, error) {
	slot, err := HotKeySlot(id)
	if err != nil {
		return Plan{}, err
	}

	key, err := s.keys.SymbolicHotKey(slot)
	if err != nil {
		return Plan{}, fmt.Errorf("hot-key for workspace %d: %w", id, err)
	}
	enabled, err := s.keys.SymbolicHotKeyEnabled(slot)
	if err != nil {
		return Plan{}, fmt.Errorf("hot-key state for workspace %d: %w", id, err)
	}

	window, err := s.windows.FocusedWindowFrame()
	if err != nil {
		return Plan{}, err
	}
	closeButton, err := s.windows.FocusedWindowCloseButton()
	if err != nil {
		return Plan{}, err
	}

	anchor := DragAnchor(window, closeButton)
	return Plan{
		Workspace:   id,
		Slot:        slot,
		Key:         key,
		NeedsEnable: !enabled,
		Anchor:      anchor,
		Events:      Events(anchor, key),
	}, nil
}

// Execute enables the hot-key slot if needed, then posts the events in
// order. A failure mid-sequence is returned as is; nothing is rolled back.
func (s *Switcher) Execute(p Plan) error {
	if p.NeedsEnable {
		if err := s.keys.SetSymbolicHotKeyEnabled(p.Slot, true); err != nil {
			return fmt.Errorf("enable hot-key slot %d: %w", p.Slot, err)
		}
	}

	for i, ev := range p.Events {
		s.logger.Debug().Int("step", i+1).Stringer("event", ev).Msg("post input")
		if err := s.sink.Post(ev); err != nil {
			return fmt.Errorf("post %s (step %d of %d): %w", ev.Kind, i+1, len(p.Events), err)
		}
	}
	return nil
}

// MoveTo plans and executes a move to logical workspace id.
func (s *Switcher) MoveTo(id int) error {
	p, err := s.Plan(id)
	if err != nil {
		return err
	}
	return s.Execute(p)
}
