package screens

import (
	"errors"
	"testing"

	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
	"github.com/1broseidon/wmgr/internal/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dualDisplay has a 1920x1080 primary with a 25px menu bar and a 1440p
// display to its right whose top edge sits 360px above the primary's.
func dualDisplay() *platformtest.Backend {
	b := platformtest.New()
	b.Frames = []geometry.Rect{
		geometry.NewRect(0, 0, 1920, 1080),
		geometry.NewRect(1920, 0, 2560, 1440),
	}
	b.Usable = []geometry.Rect{
		geometry.NewRect(0, 70, 1920, 985),
		geometry.NewRect(1920, 0, 2560, 1415),
	}
	return b
}

func TestUsableAreasAreFlipped(t *testing.T) {
	r := NewResolver(dualDisplay())

	areas, err := r.UsableAreas()
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, geometry.NewRect(0, 25, 1920, 985), areas[0])
	assert.Equal(t, geometry.NewRect(1920, -335, 2560, 1415), areas[1])
}

func TestUsableAreasEmpty(t *testing.T) {
	b := platformtest.New()
	b.Frames = nil
	b.Usable = nil

	areas, err := NewResolver(b).UsableAreas()
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestUsableAreasPropagatesErrors(t *testing.T) {
	b := dualDisplay()
	b.FailOn = map[string]error{"DisplayUsableAreas": platform.ErrWrongThread}

	_, err := NewResolver(b).UsableAreas()
	assert.ErrorIs(t, err, platform.ErrWrongThread)
}

func TestUsableAreasLengthMismatch(t *testing.T) {
	b := dualDisplay()
	b.Usable = b.Usable[:1]

	_, err := NewResolver(b).Screens()
	assert.Error(t, err)
}

func TestActive(t *testing.T) {
	r := NewResolver(dualDisplay())

	tests := []struct {
		name   string
		origin geometry.Point
		want   int
	}{
		{name: "primary top-left", origin: geometry.Point{X: 0, Y: 0}, want: 0},
		{name: "primary interior", origin: geometry.Point{X: 800, Y: 500}, want: 0},
		{name: "shared edge belongs to the right display", origin: geometry.Point{X: 1920, Y: 10}, want: 1},
		{name: "secondary above primary top", origin: geometry.Point{X: 2000, Y: -300}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := r.Active(tt.origin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Index)
		})
	}
}

func TestActiveReturnsUsableArea(t *testing.T) {
	s, err := NewResolver(dualDisplay()).Active(geometry.Point{X: 2500, Y: 100})
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(1920, -335, 2560, 1415), s.Usable)
}

func TestActiveOutsideEveryDisplay(t *testing.T) {
	_, err := NewResolver(dualDisplay()).Active(geometry.Point{X: -50, Y: 10})
	assert.True(t, errors.Is(err, platform.ErrNotImplemented))
}

func TestActiveNoDisplay(t *testing.T) {
	b := platformtest.New()
	b.Frames = nil
	b.Usable = nil

	_, err := NewResolver(b).Active(geometry.Point{})
	assert.ErrorIs(t, err, platform.ErrNoDisplay)
}
