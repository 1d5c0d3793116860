// Package hotkeys grabs global X11 key sequences and maps them to actions
// for `wmgr listen`.
package hotkeys

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/rs/zerolog"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/platform"
)

// ErrUnsupported is returned for backends without an X connection.
var ErrUnsupported = errors.New("global shortcuts need the X11 backend")

// ErrNoBindings is returned when there is nothing to grab.
var ErrNoBindings = errors.New("no key bindings configured (set x11.bindings)")

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Binding ties a key sequence in xgbutil syntax ("Mod4-Mod1-Left") to an
// action.
type Binding struct {
	Keys   string
	Action action.Action
}

// ParseBindings converts the configured map to bindings sorted by key
// sequence.
func ParseBindings(raw map[string]string) ([]Binding, error) {
	if len(raw) == 0 {
		return nil, ErrNoBindings
	}
	out := make([]Binding, 0, len(raw))
	for keys, name := range raw {
		keys = strings.TrimSpace(keys)
		if keys == "" {
			return nil, fmt.Errorf("binding for %q has an empty key sequence", name)
		}
		a, err := action.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", keys, err)
		}
		out = append(out, Binding{Keys: keys, Action: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out, nil
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger zerolog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler on backend's X connection.
func NewHandler(backend platform.Backend, logger zerolog.Logger) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, ErrUnsupported
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:     xu,
		root:   accessor.RootWindow(),
		logger: logger.With().Str("component", "hotkeys").Logger(),
	}, nil
}

// Bind grabs every binding; run is called with the bound action on each
// key press, on the event loop goroutine.
func (h *Handler) Bind(bindings []Binding, run func(action.Action)) error {
	for _, b := range bindings {
		a := b.Action
		if err := h.RegisterFunc(b.Keys, func() { run(a) }); err != nil {
			return fmt.Errorf("failed to grab %s: %w", b.Keys, err)
		}
		h.logger.Debug().Str("keys", b.Keys).Str("action", a.String()).Msg("key bound")
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// Run processes X events until ctx is done. Callbacks run on the event loop
// goroutine, not on the caller's.
func (h *Handler) Run(ctx context.Context) error {
	before, after, quit := xevent.MainPing(h.xu)
	for {
		select {
		case <-ctx.Done():
			xevent.Quit(h.xu)
			return ctx.Err()
		case <-before:
			<-after
		case <-quit:
			return nil
		}
	}
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for _, mask := range maskSubsets(base) {
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

// maskSubsets returns the OR of every non-empty subset of base.
func maskSubsets(base []uint16) []uint16 {
	out := make([]uint16, 0, 1<<len(base))
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
