package platform

import (
	"fmt"

	"github.com/1broseidon/wmgr/internal/geometry"
)

// WorkspaceHotKeySlot is the symbolic hot-key slot that switches to
// workspace 1. Workspace K uses slot WorkspaceHotKeySlot+K-1.
const WorkspaceHotKeySlot = 118

// MaxWorkspaces is the number of consecutive workspace hot-key slots.
const MaxWorkspaces = 16

// WorkspaceID is the platform's opaque identifier for a virtual desktop.
type WorkspaceID uint64

// WindowAccessor reads and writes the geometry of the focused window.
//
// Window frames are in the flipped convention (top-left origin, y down).
type WindowAccessor interface {
	FocusedWindowFrame() (geometry.Rect, error)
	// SetFocusedWindowFrame writes the origin first, then the size.
	SetFocusedWindowFrame(frame geometry.Rect) error
	SetFocusedWindowOrigin(origin geometry.Point) error
	FocusedWindowFullscreen() (bool, error)
	SetFocusedWindowFullscreen(fullscreen bool) error
	// FocusedWindowCloseButton returns the frame of the window's close control.
	FocusedWindowCloseButton() (geometry.Rect, error)
}

// ScreenSource enumerates displays in a stable platform order. Index 0 is the
// primary display. Frames are in the unflipped convention (bottom-left
// origin, y up).
type ScreenSource interface {
	DisplayFrames() ([]geometry.Rect, error)
	DisplayUsableAreas() ([]geometry.Rect, error)
}

// WorkspaceSource reports virtual desktops grouped by display, left to right.
type WorkspaceSource interface {
	ActiveWorkspace() (WorkspaceID, error)
	WorkspaceGroups() ([][]WorkspaceID, error)
}

// InputSink posts synthetic input to the system event queue.
type InputSink interface {
	Post(ev Event) error
}

// HotKeyTable exposes the platform's symbolic hot-key slots.
type HotKeyTable interface {
	SymbolicHotKey(slot int) (HotKey, error)
	SymbolicHotKeyEnabled(slot int) (bool, error)
	SetSymbolicHotKeyEnabled(slot int, enabled bool) error
}

// Backend bundles every collaborator the engine needs from the window system.
type Backend interface {
	WindowAccessor
	ScreenSource
	WorkspaceSource
	InputSink
	HotKeyTable

	// OnMainThread reports whether the caller runs on the thread the window
	// system requires.
	OnMainThread() bool
	Close() error
}

// DisplayNamer is implemented by backends that can name their displays, in
// the same order as ScreenSource.
type DisplayNamer interface {
	DisplayNames() ([]string, error)
}

// Options tunes the native backends. Zero values select the defaults.
type Options struct {
	// WorkspaceHotKeys holds one key sequence per workspace, index K-1 for
	// workspace K. Only the X11 backend reads it; macOS has a system table.
	WorkspaceHotKeys []string
	// CloseButtonSize is the title bar height assumed when the X11 window
	// manager publishes no frame extents.
	CloseButtonSize int
}

// HotKey is a key code plus the modifier flags that trigger it.
type HotKey struct {
	Code uint16
	Mods uint64
}

func (k HotKey) String() string {
	return fmt.Sprintf("key %d mods %#x", k.Code, k.Mods)
}

// EventKind identifies a synthetic input event.
type EventKind int

const (
	PointerMove EventKind = iota
	PointerDown
	PointerDrag
	PointerUp
	KeyDown
	KeyUp
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointer-move"
	case PointerDown:
		return "pointer-down"
	case PointerDrag:
		return "pointer-drag"
	case PointerUp:
		return "pointer-up"
	case KeyDown:
		return "key-down"
	case KeyUp:
		return "key-up"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one synthetic input event. Pointer events use Point (flipped
// coordinates, primary button); key events use Key.
type Event struct {
	Kind  EventKind
	Point geometry.Point
	Key   HotKey
}

// IsPointer reports whether e is a pointer event.
func (e Event) IsPointer() bool {
	return e.Kind <= PointerUp
}

func (e Event) String() string {
	if e.IsPointer() {
		return fmt.Sprintf("%s %s", e.Kind, e.Point)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Key)
}
