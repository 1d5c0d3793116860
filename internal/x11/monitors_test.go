package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/stretchr/testify/assert"
)

func TestIntersect(t *testing.T) {
	a := Area{X: 0, Y: 0, Width: 1920, Height: 1080}

	assert.Equal(t, Area{X: 100, Y: 0, Width: 1820, Height: 40},
		intersect(a, Area{X: 100, Y: -10, Width: 5000, Height: 50}))
	assert.Equal(t, Area{}, intersect(a, Area{X: 1920, Y: 0, Width: 100, Height: 100}))
}

func TestShrinkByStruts(t *testing.T) {
	bounds := Area{X: 1920, Y: 0, Width: 2560, Height: 1440}

	work, ok := shrink(bounds, dockStruts{top: 32, left: 48})
	assert.True(t, ok)
	assert.Equal(t, Area{X: 1968, Y: 32, Width: 2512, Height: 1408}, work)

	work, ok = shrink(bounds, dockStruts{})
	assert.False(t, ok)
	assert.Equal(t, bounds, work)
}

func TestUpdateStrutsOnlyCountsOverlap(t *testing.T) {
	rootWidth, rootHeight := 1920+2560, 1440
	left := Area{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Area{X: 1920, Y: 0, Width: 2560, Height: 1440}

	// A bottom panel spanning only the right monitor.
	sp := &ewmh.WmStrutPartial{Bottom: 40, BottomStartX: 1920, BottomEndX: uint(rootWidth - 1)}

	var accLeft, accRight dockStruts
	updateStruts(left, rootWidth, rootHeight, sp, &accLeft)
	updateStruts(right, rootWidth, rootHeight, sp, &accRight)

	assert.Equal(t, dockStruts{}, accLeft)
	assert.Equal(t, dockStruts{bottom: 40}, accRight)
}

func TestModifierKeycodes(t *testing.T) {
	// Two keycodes per modifier: Shift, Lock, Control, Mod1..Mod5.
	codes := []xproto.Keycode{
		50, 62,
		66, 0,
		0, 37,
		64, 108,
		77, 0,
		0, 0,
		133, 134,
		92, 0,
	}

	got, err := modifierKeycodes(0x1|0x4|0x40, 2, codes)
	assert.NoError(t, err)
	assert.Equal(t, []xproto.Keycode{50, 37, 133}, got)

	_, err = modifierKeycodes(0x20, 2, codes)
	assert.Error(t, err)
}
