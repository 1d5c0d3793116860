//go:build linux

package platform

import (
	"fmt"
	"math"

	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

const defaultCloseButtonSize = 24

// LinuxBackend implements Backend on top of an EWMH-compliant X11 window
// manager. Root window coordinates are already flipped; display frames are
// converted to the unflipped convention so both backends share one contract.
type LinuxBackend struct {
	conn *x11.Connection
	opts Options

	heldMods []xproto.Keycode
}

var _ Backend = (*LinuxBackend)(nil)
var _ DisplayNamer = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, opts Options) *LinuxBackend {
	if opts.CloseButtonSize <= 0 {
		opts.CloseButtonSize = defaultCloseButtonSize
	}
	return &LinuxBackend{conn: conn, opts: opts}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(opts Options) (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, opts), nil
}

// Open returns the native backend for this platform.
func Open(opts Options) (Backend, error) {
	return NewLinuxBackendFromDisplay(opts)
}

// Close closes the underlying X11 connection.
func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return nil
}

// OnMainThread reports whether the caller runs on the process's initial thread.
func (b *LinuxBackend) OnMainThread() bool {
	return IsMainThread()
}

// XUtil exposes the X connection for global key grabs.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the root window key grabs attach to.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func (b *LinuxBackend) activeWindow() (*x11.Connection, xproto.Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, 0, err
	}
	win, err := conn.ActiveWindow()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNoFocusedWindow, err)
	}
	return conn, win, nil
}

// FocusedWindowFrame returns the outer frame of the active window.
func (b *LinuxBackend) FocusedWindowFrame() (geometry.Rect, error) {
	conn, win, err := b.activeWindow()
	if err != nil {
		return geometry.Rect{}, err
	}
	frame, err := conn.FrameGeometry(win)
	if err != nil {
		return geometry.Rect{}, CallFailed("read window frame", 0, err)
	}
	return rectFromArea(frame), nil
}

// SetFocusedWindowFrame moves and resizes the active window in one request.
func (b *LinuxBackend) SetFocusedWindowFrame(frame geometry.Rect) error {
	conn, win, err := b.activeWindow()
	if err != nil {
		return err
	}
	if err := conn.MoveResizeFrame(win, areaFromRect(frame)); err != nil {
		return CallFailed("move/resize window", 0, err)
	}
	return nil
}

// SetFocusedWindowOrigin moves the active window without resizing it.
func (b *LinuxBackend) SetFocusedWindowOrigin(origin geometry.Point) error {
	conn, win, err := b.activeWindow()
	if err != nil {
		return err
	}
	if err := conn.MoveFrame(win, round(origin.X), round(origin.Y)); err != nil {
		return CallFailed("move window", 0, err)
	}
	return nil
}

// FocusedWindowFullscreen reads _NET_WM_STATE_FULLSCREEN on the active window.
func (b *LinuxBackend) FocusedWindowFullscreen() (bool, error) {
	conn, win, err := b.activeWindow()
	if err != nil {
		return false, err
	}
	return conn.IsFullscreen(win)
}

// SetFocusedWindowFullscreen adds or removes _NET_WM_STATE_FULLSCREEN.
func (b *LinuxBackend) SetFocusedWindowFullscreen(fullscreen bool) error {
	conn, win, err := b.activeWindow()
	if err != nil {
		return err
	}
	if err := conn.SetFullscreen(win, fullscreen); err != nil {
		return CallFailed("set fullscreen", 0, err)
	}
	return nil
}

// FocusedWindowCloseButton approximates the close control. X11 exposes no
// decoration widgets, so this is a square half the title bar high at the
// left end of the title bar, a spot every window manager treats as a drag
// handle.
func (b *LinuxBackend) FocusedWindowCloseButton() (geometry.Rect, error) {
	conn, win, err := b.activeWindow()
	if err != nil {
		return geometry.Rect{}, err
	}
	frame, err := conn.FrameGeometry(win)
	if err != nil {
		return geometry.Rect{}, CallFailed("read window frame", 0, err)
	}
	return closeButtonRect(frame, conn.FrameExtents(win), b.opts.CloseButtonSize), nil
}

func closeButtonRect(frame x11.Area, ext x11.Extents, fallback int) geometry.Rect {
	titleBar := float64(ext.Top)
	if titleBar <= 0 {
		titleBar = float64(fallback)
	}
	side := titleBar / 2
	return geometry.NewRect(
		float64(frame.X+ext.Left)+side/2,
		float64(frame.Y)+side/2,
		side,
		side,
	)
}

func (b *LinuxBackend) monitors() ([]x11.Monitor, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, CallFailed("enumerate monitors", 0, err)
	}
	return monitors, nil
}

// DisplayFrames returns every monitor's full frame, unflipped against the
// primary monitor's height.
func (b *LinuxBackend) DisplayFrames() ([]geometry.Rect, error) {
	monitors, err := b.monitors()
	if err != nil {
		return nil, err
	}
	return unflippedAreas(monitors, func(m x11.Monitor) x11.Area { return m.Bounds }), nil
}

// DisplayUsableAreas returns every monitor's work area, unflipped against the
// primary monitor's height.
func (b *LinuxBackend) DisplayUsableAreas() ([]geometry.Rect, error) {
	monitors, err := b.monitors()
	if err != nil {
		return nil, err
	}
	return unflippedAreas(monitors, func(m x11.Monitor) x11.Area { return m.Work }), nil
}

// DisplayNames returns the RandR output names in display order.
func (b *LinuxBackend) DisplayNames() ([]string, error) {
	monitors, err := b.monitors()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(monitors))
	for i, m := range monitors {
		names[i] = m.Name
	}
	return names, nil
}

func unflippedAreas(monitors []x11.Monitor, pick func(x11.Monitor) x11.Area) []geometry.Rect {
	if len(monitors) == 0 {
		return nil
	}
	reference := float64(monitors[0].Bounds.Height)
	rects := make([]geometry.Rect, 0, len(monitors))
	for _, m := range monitors {
		rects = append(rects, rectFromArea(pick(m)).Flipped(reference))
	}
	return rects
}

// ActiveWorkspace returns _NET_CURRENT_DESKTOP.
func (b *LinuxBackend) ActiveWorkspace() (WorkspaceID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	desktop, err := conn.GetCurrentDesktop()
	if err != nil {
		return 0, CallFailed("read current desktop", 0, err)
	}
	return WorkspaceID(desktop), nil
}

// WorkspaceGroups returns a single group: EWMH desktops span every monitor.
func (b *LinuxBackend) WorkspaceGroups() ([][]WorkspaceID, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	count, err := conn.GetDesktopCount()
	if err != nil {
		return nil, CallFailed("read desktop count", 0, err)
	}
	group := make([]WorkspaceID, count)
	for i := range group {
		group[i] = WorkspaceID(i)
	}
	return [][]WorkspaceID{group}, nil
}

// Post injects ev through XTEST. Modifiers pressed by a KeyDown stay held
// until the next KeyUp.
func (b *LinuxBackend) Post(ev Event) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	switch ev.Kind {
	case PointerMove, PointerDrag:
		err = conn.FakeMotion(round(ev.Point.X), round(ev.Point.Y))
	case PointerDown:
		err = conn.FakeButton(true)
	case PointerUp:
		err = conn.FakeButton(false)
	case KeyDown:
		err = b.keyDown(conn, ev.Key)
	case KeyUp:
		err = b.keyUp(conn, ev.Key)
	default:
		err = fmt.Errorf("unknown event kind %d", int(ev.Kind))
	}
	if err != nil {
		return CallFailed("post "+ev.Kind.String(), 0, err)
	}
	return nil
}

func (b *LinuxBackend) keyDown(conn *x11.Connection, key HotKey) error {
	mods, err := conn.ModifierKeycodes(uint16(key.Mods))
	if err != nil {
		return err
	}
	b.heldMods, err = pressChord(conn.FakeKey, mods, xproto.Keycode(key.Code))
	return err
}

// pressChord presses mods in order, then code, and returns the modifiers
// left held for the matching key-up. On failure every modifier already
// pressed is released again and none are reported held.
func pressChord(fake func(xproto.Keycode, bool) error, mods []xproto.Keycode, code xproto.Keycode) ([]xproto.Keycode, error) {
	held := make([]xproto.Keycode, 0, len(mods))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			_ = fake(held[i], false)
		}
	}
	for _, m := range mods {
		if err := fake(m, true); err != nil {
			release()
			return nil, err
		}
		held = append(held, m)
	}
	if err := fake(code, true); err != nil {
		release()
		return nil, err
	}
	return held, nil
}

func (b *LinuxBackend) keyUp(conn *x11.Connection, key HotKey) error {
	if err := conn.FakeKey(xproto.Keycode(key.Code), false); err != nil {
		return err
	}
	for i := len(b.heldMods) - 1; i >= 0; i-- {
		if err := conn.FakeKey(b.heldMods[i], false); err != nil {
			return err
		}
	}
	b.heldMods = nil
	return nil
}

// SymbolicHotKey resolves the configured key sequence for a workspace slot.
func (b *LinuxBackend) SymbolicHotKey(slot int) (HotKey, error) {
	conn, err := b.connection()
	if err != nil {
		return HotKey{}, err
	}
	spec, err := hotKeySpec(b.opts.WorkspaceHotKeys, slot)
	if err != nil {
		return HotKey{}, err
	}
	seq, err := conn.ParseKeySequence(spec)
	if err != nil {
		return HotKey{}, CallFailed(fmt.Sprintf("resolve hot-key slot %d", slot), 0, err)
	}
	return HotKey{Code: uint16(seq.Keycode), Mods: uint64(seq.Mods)}, nil
}

// SymbolicHotKeyEnabled reports whether a key sequence is configured for slot.
func (b *LinuxBackend) SymbolicHotKeyEnabled(slot int) (bool, error) {
	_, err := hotKeySpec(b.opts.WorkspaceHotKeys, slot)
	return err == nil, nil
}

// SetSymbolicHotKeyEnabled is a no-op: configured sequences are always live.
func (b *LinuxBackend) SetSymbolicHotKeyEnabled(slot int, enabled bool) error {
	return nil
}

// hotKeySpec maps a symbolic slot to the configured key sequence string.
func hotKeySpec(hotKeys []string, slot int) (string, error) {
	idx := slot - WorkspaceHotKeySlot
	if idx < 0 || idx >= len(hotKeys) || hotKeys[idx] == "" {
		return "", CallFailed(fmt.Sprintf("hot-key slot %d", slot), 0,
			fmt.Errorf("no key sequence configured for workspace %d", idx+1))
	}
	return hotKeys[idx], nil
}

func rectFromArea(a x11.Area) geometry.Rect {
	return geometry.NewRect(float64(a.X), float64(a.Y), float64(a.Width), float64(a.Height))
}

func areaFromRect(r geometry.Rect) x11.Area {
	return x11.Area{
		X:      round(r.MinX()),
		Y:      round(r.MinY()),
		Width:  round(r.Size.Width),
		Height: round(r.Size.Height),
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
