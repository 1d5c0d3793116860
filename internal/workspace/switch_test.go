package workspace

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
	"github.com/1broseidon/wmgr/internal/platform/platformtest"
)

func newSwitcher(fake *platformtest.Backend) *Switcher {
	return NewSwitcher(fake, fake, fake, zerolog.Nop())
}

func TestHotKeySlot(t *testing.T) {
	slot, err := HotKeySlot(1)
	require.NoError(t, err)
	assert.Equal(t, 118, slot)

	slot, err = HotKeySlot(3)
	require.NoError(t, err)
	assert.Equal(t, 120, slot)

	slot, err = HotKeySlot(16)
	require.NoError(t, err)
	assert.Equal(t, 133, slot)

	_, err = HotKeySlot(17)
	assert.ErrorIs(t, err, platform.ErrTooManyWorkspaces)

	_, err = HotKeySlot(0)
	assert.Error(t, err)
}

func TestDragAnchor(t *testing.T) {
	window := geometry.NewRect(100, 100, 400, 300)
	closeButton := geometry.NewRect(108, 104, 14, 16)

	assert.Equal(t, geometry.Point{X: 115, Y: 102}, DragAnchor(window, closeButton))
}

func TestEventsOrder(t *testing.T) {
	anchor := geometry.Point{X: 115, Y: 102}
	key := platform.HotKey{Code: 20, Mods: 0x40000}

	events := Events(anchor, key)
	require.Len(t, events, 6)

	kinds := make([]platform.EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	assert.Equal(t, []platform.EventKind{
		platform.PointerMove,
		platform.PointerDown,
		platform.PointerDrag,
		platform.KeyDown,
		platform.KeyUp,
		platform.PointerUp,
	}, kinds)

	for _, ev := range events {
		if ev.IsPointer() {
			assert.Equal(t, anchor, ev.Point)
		}
	}
	assert.Equal(t, key, events[3].Key)
	assert.Equal(t, platform.HotKey{Code: 20}, events[4].Key, "key up carries no modifiers")
}

func TestMoveToPostsSequence(t *testing.T) {
	fake := platformtest.New()
	fake.HotKeys[120] = platform.HotKey{Code: 20, Mods: 0x40000}

	require.NoError(t, newSwitcher(fake).MoveTo(3))

	require.Len(t, fake.Events, 6)
	assert.Equal(t, platform.PointerMove, fake.Events[0].Kind)
	assert.Equal(t, geometry.Point{X: 115, Y: 102}, fake.Events[0].Point)
	assert.Equal(t, platform.HotKey{Code: 20, Mods: 0x40000}, fake.Events[3].Key)
	assert.Empty(t, fake.EnabledSlots, "slot was already enabled")
}

func TestMoveToEnablesDisabledSlot(t *testing.T) {
	fake := platformtest.New()
	fake.HotKeys[118] = platform.HotKey{Code: 18}
	fake.DisabledSlots = map[int]bool{118: true}

	require.NoError(t, newSwitcher(fake).MoveTo(1))

	assert.Equal(t, []int{118}, fake.EnabledSlots)
	assert.Len(t, fake.Events, 6)
}

func TestMoveToTooManyWorkspacesPostsNothing(t *testing.T) {
	fake := platformtest.New()

	err := newSwitcher(fake).MoveTo(17)
	assert.ErrorIs(t, err, platform.ErrTooManyWorkspaces)
	assert.Empty(t, fake.Events)
	assert.Empty(t, fake.EnabledSlots)
}

func TestMoveToMissingHotKeyPostsNothing(t *testing.T) {
	fake := platformtest.New()
	fake.DisabledSlots = map[int]bool{119: true}

	err := newSwitcher(fake).MoveTo(2)
	assert.ErrorIs(t, err, platform.ErrPlatformCall)
	assert.Empty(t, fake.Events)
	assert.Empty(t, fake.EnabledSlots)
}

func TestMoveToNoWindowPostsNothing(t *testing.T) {
	fake := platformtest.New()
	fake.HotKeys[118] = platform.HotKey{Code: 18}
	fake.NoWindow = true

	err := newSwitcher(fake).MoveTo(1)
	assert.ErrorIs(t, err, platform.ErrNoFocusedWindow)
	assert.Empty(t, fake.Events)
}

func TestMoveToPostFailure(t *testing.T) {
	fake := platformtest.New()
	fake.HotKeys[118] = platform.HotKey{Code: 18}
	boom := errors.New("queue full")
	fake.FailOn = map[string]error{"Post": boom}

	err := newSwitcher(fake).MoveTo(1)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step 1 of 6")
}

func TestPlanHasNoSideEffects(t *testing.T) {
	fake := platformtest.New()
	fake.HotKeys[118] = platform.HotKey{Code: 18}
	fake.DisabledSlots = map[int]bool{118: true}

	p, err := newSwitcher(fake).Plan(1)
	require.NoError(t, err)
	assert.True(t, p.NeedsEnable)
	assert.Equal(t, 118, p.Slot)
	assert.Len(t, p.Events, 6)
	assert.Empty(t, fake.Events)
	assert.Empty(t, fake.EnabledSlots)
}
