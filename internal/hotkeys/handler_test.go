package hotkeys

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/platform/platformtest"
)

func TestParseBindings(t *testing.T) {
	got, err := ParseBindings(map[string]string{
		"Mod4-Mod1-Right": "right-half",
		" Mod4-Mod1-Left": "LEFT_HALF",
		"Mod4-Return":     "maximize",
	})
	require.NoError(t, err)

	assert.Equal(t, []Binding{
		{Keys: "Mod4-Mod1-Left", Action: action.LeftHalf},
		{Keys: "Mod4-Mod1-Right", Action: action.RightHalf},
		{Keys: "Mod4-Return", Action: action.Maximize},
	}, got)
}

func TestParseBindingsErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]string
		want string
	}{
		{"empty", nil, "no key bindings"},
		{"unknown action", map[string]string{"Mod4-x": "explode"}, `binding Mod4-x: unknown action "explode"`},
		{"blank keys", map[string]string{"  ": "center"}, "empty key sequence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBindings(tt.raw)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewHandlerNeedsX11(t *testing.T) {
	_, err := NewHandler(platformtest.New(), zerolog.Nop())
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestMaskSubsets(t *testing.T) {
	assert.ElementsMatch(t, []uint16{2, 16, 18}, maskSubsets([]uint16{2, 16}))
	assert.Equal(t, []uint16{2}, maskSubsets([]uint16{2}))
}
