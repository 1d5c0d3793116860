package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil/keybind"
)

const primaryButton = 1

// KeySequence is a parsed hot-key such as "Control-F1".
type KeySequence struct {
	Mods    uint16
	Keycode xproto.Keycode
}

// ParseKeySequence resolves an xgbutil key string to a keycode and modifier mask.
func (c *Connection) ParseKeySequence(s string) (KeySequence, error) {
	mods, codes, err := keybind.ParseString(c.XUtil, s)
	if err != nil {
		return KeySequence{}, fmt.Errorf("parse key sequence %q: %w", s, err)
	}
	if len(codes) == 0 {
		return KeySequence{}, fmt.Errorf("key sequence %q maps to no keycode", s)
	}
	return KeySequence{Mods: mods, Keycode: codes[0]}, nil
}

// FakeMotion warps the pointer to (x, y) in root coordinates.
func (c *Connection) FakeMotion(x, y int) error {
	return c.fakeInput(xproto.MotionNotify, 0, x, y)
}

// FakeButton presses or releases the primary pointer button.
func (c *Connection) FakeButton(press bool) error {
	kind := byte(xproto.ButtonRelease)
	if press {
		kind = xproto.ButtonPress
	}
	return c.fakeInput(kind, primaryButton, 0, 0)
}

// FakeKey presses or releases a single keycode.
func (c *Connection) FakeKey(code xproto.Keycode, press bool) error {
	kind := byte(xproto.KeyRelease)
	if press {
		kind = xproto.KeyPress
	}
	return c.fakeInput(kind, byte(code), 0, 0)
}

func (c *Connection) fakeInput(kind, detail byte, x, y int) error {
	if err := c.initXTest(); err != nil {
		return err
	}
	err := xtest.FakeInputChecked(
		c.XUtil.Conn(),
		kind,
		detail,
		0,
		c.Root,
		int16(x), int16(y),
		0,
	).Check()
	if err != nil {
		return fmt.Errorf("xtest fake input %d: %w", kind, err)
	}
	return nil
}

// ModifierKeycodes returns one keycode per modifier bit set in mods, in
// Shift, Lock, Control, Mod1..Mod5 order.
func (c *Connection) ModifierKeycodes(mods uint16) ([]xproto.Keycode, error) {
	if mods == 0 {
		return nil, nil
	}
	mapping, err := xproto.GetModifierMapping(c.XUtil.Conn()).Reply()
	if err != nil {
		return nil, fmt.Errorf("get modifier mapping: %w", err)
	}
	return modifierKeycodes(mods, int(mapping.KeycodesPerModifier), mapping.Keycodes)
}

func modifierKeycodes(mods uint16, perModifier int, table []xproto.Keycode) ([]xproto.Keycode, error) {
	var out []xproto.Keycode
	for bit := 0; bit < 8; bit++ {
		if mods&(1<<bit) == 0 {
			continue
		}
		var found xproto.Keycode
		for i := 0; i < perModifier; i++ {
			idx := bit*perModifier + i
			if idx < len(table) && table[idx] != 0 {
				found = table[idx]
				break
			}
		}
		if found == 0 {
			return nil, fmt.Errorf("no keycode bound to modifier bit %d", bit)
		}
		out = append(out, found)
	}
	return out, nil
}
