// Package platformtest provides a scriptable in-memory platform.Backend.
package platformtest

import (
	"fmt"

	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
)

// Backend is a fake window system. Exported fields are the scripted state;
// writes performed by the code under test are recorded on the same struct.
type Backend struct {
	Window      geometry.Rect
	CloseButton geometry.Rect
	Fullscreen  bool
	NoWindow    bool

	// Frames and Usable are unflipped, index 0 is the primary display.
	Frames []geometry.Rect
	Usable []geometry.Rect

	Active     platform.WorkspaceID
	Workspaces [][]platform.WorkspaceID

	HotKeys        map[int]platform.HotKey
	DisabledSlots  map[int]bool
	OffMainThread  bool
	FailOn         map[string]error
	FrameWrites    []geometry.Rect
	OriginWrites   []geometry.Point
	FullscreenSets []bool
	Events         []platform.Event
	EnabledSlots   []int
	Closed         bool
}

var _ platform.Backend = (*Backend)(nil)

// New returns a fake with a single 1000x800 display and a focused window.
func New() *Backend {
	return &Backend{
		Window:      geometry.NewRect(100, 100, 400, 300),
		CloseButton: geometry.NewRect(108, 104, 14, 16),
		Frames:      []geometry.Rect{geometry.NewRect(0, 0, 1000, 800)},
		Usable:      []geometry.Rect{geometry.NewRect(0, 0, 1000, 800)},
		Active:      1,
		Workspaces:  [][]platform.WorkspaceID{{1, 2, 3}},
		HotKeys:     map[int]platform.HotKey{},
	}
}

func (b *Backend) fail(op string) error {
	if err, ok := b.FailOn[op]; ok {
		return err
	}
	return nil
}

func (b *Backend) FocusedWindowFrame() (geometry.Rect, error) {
	if err := b.fail("FocusedWindowFrame"); err != nil {
		return geometry.Rect{}, err
	}
	if b.NoWindow {
		return geometry.Rect{}, platform.ErrNoFocusedWindow
	}
	return b.Window, nil
}

func (b *Backend) SetFocusedWindowFrame(frame geometry.Rect) error {
	if err := b.fail("SetFocusedWindowFrame"); err != nil {
		return err
	}
	if b.NoWindow {
		return platform.ErrNoFocusedWindow
	}
	b.FrameWrites = append(b.FrameWrites, frame)
	b.Window = frame
	return nil
}

func (b *Backend) SetFocusedWindowOrigin(origin geometry.Point) error {
	if err := b.fail("SetFocusedWindowOrigin"); err != nil {
		return err
	}
	if b.NoWindow {
		return platform.ErrNoFocusedWindow
	}
	b.OriginWrites = append(b.OriginWrites, origin)
	b.Window.Origin = origin
	return nil
}

func (b *Backend) FocusedWindowFullscreen() (bool, error) {
	if err := b.fail("FocusedWindowFullscreen"); err != nil {
		return false, err
	}
	if b.NoWindow {
		return false, platform.ErrNoFocusedWindow
	}
	return b.Fullscreen, nil
}

func (b *Backend) SetFocusedWindowFullscreen(fullscreen bool) error {
	if err := b.fail("SetFocusedWindowFullscreen"); err != nil {
		return err
	}
	b.FullscreenSets = append(b.FullscreenSets, fullscreen)
	b.Fullscreen = fullscreen
	return nil
}

func (b *Backend) FocusedWindowCloseButton() (geometry.Rect, error) {
	if err := b.fail("FocusedWindowCloseButton"); err != nil {
		return geometry.Rect{}, err
	}
	if b.NoWindow {
		return geometry.Rect{}, platform.ErrNoFocusedWindow
	}
	return b.CloseButton, nil
}

func (b *Backend) DisplayFrames() ([]geometry.Rect, error) {
	if err := b.fail("DisplayFrames"); err != nil {
		return nil, err
	}
	return append([]geometry.Rect(nil), b.Frames...), nil
}

func (b *Backend) DisplayUsableAreas() ([]geometry.Rect, error) {
	if err := b.fail("DisplayUsableAreas"); err != nil {
		return nil, err
	}
	return append([]geometry.Rect(nil), b.Usable...), nil
}

func (b *Backend) ActiveWorkspace() (platform.WorkspaceID, error) {
	if err := b.fail("ActiveWorkspace"); err != nil {
		return 0, err
	}
	return b.Active, nil
}

func (b *Backend) WorkspaceGroups() ([][]platform.WorkspaceID, error) {
	if err := b.fail("WorkspaceGroups"); err != nil {
		return nil, err
	}
	return b.Workspaces, nil
}

func (b *Backend) Post(ev platform.Event) error {
	if err := b.fail("Post"); err != nil {
		return err
	}
	b.Events = append(b.Events, ev)
	return nil
}

func (b *Backend) SymbolicHotKey(slot int) (platform.HotKey, error) {
	if err := b.fail("SymbolicHotKey"); err != nil {
		return platform.HotKey{}, err
	}
	key, ok := b.HotKeys[slot]
	if !ok {
		return platform.HotKey{}, platform.CallFailed(fmt.Sprintf("symbolic hot-key %d", slot), 1000, nil)
	}
	return key, nil
}

func (b *Backend) SymbolicHotKeyEnabled(slot int) (bool, error) {
	if err := b.fail("SymbolicHotKeyEnabled"); err != nil {
		return false, err
	}
	return !b.DisabledSlots[slot], nil
}

func (b *Backend) SetSymbolicHotKeyEnabled(slot int, enabled bool) error {
	if err := b.fail("SetSymbolicHotKeyEnabled"); err != nil {
		return err
	}
	if enabled {
		b.EnabledSlots = append(b.EnabledSlots, slot)
		delete(b.DisabledSlots, slot)
	}
	return nil
}

func (b *Backend) OnMainThread() bool {
	return !b.OffMainThread
}

func (b *Backend) Close() error {
	b.Closed = true
	return nil
}

// Writes reports how many window writes were recorded.
func (b *Backend) Writes() int {
	return len(b.FrameWrites) + len(b.OriginWrites) + len(b.FullscreenSets)
}
