package tiling

import (
	"testing"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var usable = geometry.NewRect(0, 0, 1000, 800)

func place(t *testing.T, a action.Action, window *geometry.Rect) Placement {
	t.Helper()
	p, err := DefaultTable().Place(a, usable, window)
	require.NoError(t, err, a.String())
	return p
}

func frameOf(t *testing.T, a action.Action) geometry.Rect {
	t.Helper()
	p := place(t, a, nil)
	require.Equal(t, KindFrame, p.Kind, a.String())
	return p.Frame
}

func TestPlaceExamples(t *testing.T) {
	assert.Equal(t, geometry.NewRect(0, 0, 500, 400), frameOf(t, action.TopLeftQuarter))

	third := frameOf(t, action.CenterThird)
	assert.InDelta(t, 333.33, third.MinX(), 0.01)
	assert.Equal(t, 1000.0/3, third.MinX())
	assert.Equal(t, 1000.0/3, third.Size.Width)
	assert.Equal(t, 0.0, third.MinY())
	assert.Equal(t, 800.0, third.Size.Height)

	w := geometry.NewRect(990, 0, 50, 50)
	p := place(t, action.MoveRight, &w)
	assert.Equal(t, KindOrigin, p.Kind)
	assert.Equal(t, geometry.Point{X: 950, Y: 0}, p.Frame.Origin)
}

func TestPlaceFractionalFrames(t *testing.T) {
	offset := geometry.NewRect(100, 50, 1200, 900)

	tests := []struct {
		action action.Action
		want   geometry.Rect
	}{
		{action.TopHalf, geometry.NewRect(100, 50, 1200, 450)},
		{action.BottomHalf, geometry.NewRect(100, 500, 1200, 450)},
		{action.LeftHalf, geometry.NewRect(100, 50, 600, 900)},
		{action.RightHalf, geometry.NewRect(700, 50, 600, 900)},
		{action.CenterHalf, geometry.NewRect(400, 50, 600, 900)},
		{action.BottomRightQuarter, geometry.NewRect(700, 500, 600, 450)},
		{action.TopCenterSixth, geometry.NewRect(500, 50, 400, 450)},
		{action.BottomRightSixth, geometry.NewRect(900, 500, 400, 450)},
		{action.MiddleThird, geometry.NewRect(100, 350, 1200, 300)},
		{action.BottomThird, geometry.NewRect(100, 650, 1200, 300)},
		{action.ThirdFourth, geometry.NewRect(700, 50, 300, 900)},
		{action.LastFourth, geometry.NewRect(1000, 50, 300, 900)},
		{action.LastThird, geometry.NewRect(900, 50, 400, 900)},
		{action.CenterTwoThirds, geometry.NewRect(300, 50, 800, 900)},
		{action.LastTwoThirds, geometry.NewRect(500, 50, 800, 900)},
		{action.CenterThreeFourths, geometry.NewRect(250, 50, 900, 900)},
		{action.LastThreeFourths, geometry.NewRect(400, 50, 900, 900)},
		{action.BottomThreeFourths, geometry.NewRect(100, 275, 1200, 675)},
		{action.BottomTwoThirds, geometry.NewRect(100, 350, 1200, 600)},
		{action.TopCenterTwoThirds, geometry.NewRect(300, 50, 800, 600)},
		{action.TopSecondFourth, geometry.NewRect(100, 275, 1200, 225)},
		{action.TopLastFourth, geometry.NewRect(100, 725, 1200, 225)},
		{action.Maximize, offset},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			p, err := DefaultTable().Place(tt.action, offset, nil)
			require.NoError(t, err)
			assert.Equal(t, KindFrame, p.Kind)
			assert.Equal(t, tt.want, p.Frame)
		})
	}
}

func TestComplementaryActionsPartitionUsable(t *testing.T) {
	groups := map[string][]action.Action{
		"halves (columns)": {action.LeftHalf, action.RightHalf},
		"halves (rows)":    {action.TopHalf, action.BottomHalf},
		"quarters":         {action.TopLeftQuarter, action.TopRightQuarter, action.BottomLeftQuarter, action.BottomRightQuarter},
		"sixths": {
			action.TopLeftSixth, action.TopCenterSixth, action.TopRightSixth,
			action.BottomLeftSixth, action.BottomCenterSixth, action.BottomRightSixth,
		},
		"thirds (columns)": {action.FirstThird, action.CenterThird, action.LastThird},
		"thirds (rows)":    {action.TopThird, action.MiddleThird, action.BottomThird},
		"fourths (columns)": {
			action.FirstFourth, action.SecondFourth, action.ThirdFourth, action.LastFourth,
		},
		"fourths (rows)": {
			action.TopFirstFourth, action.TopSecondFourth, action.TopThirdFourth, action.TopLastFourth,
		},
	}

	for name, actions := range groups {
		t.Run(name, func(t *testing.T) {
			total := 0.0
			frames := make([]geometry.Rect, 0, len(actions))
			for _, a := range actions {
				f := frameOf(t, a)
				assert.InDelta(t, usable.Area()/float64(len(actions)), f.Area(), 1e-6, a.String())
				assert.GreaterOrEqual(t, f.MinX(), usable.MinX())
				assert.GreaterOrEqual(t, f.MinY(), usable.MinY())
				assert.LessOrEqual(t, f.MaxX(), usable.MaxX()+1e-9)
				assert.LessOrEqual(t, f.MaxY(), usable.MaxY()+1e-9)
				total += f.Area()
				frames = append(frames, f)
			}
			assert.InDelta(t, usable.Area(), total, 1e-6)

			// Pairwise disjoint interiors.
			for i := range frames {
				for j := i + 1; j < len(frames); j++ {
					assert.LessOrEqual(t, overlap(frames[i], frames[j]), 1e-6,
						"%s overlaps %s", actions[i], actions[j])
				}
			}
		})
	}
}

func overlap(a, b geometry.Rect) float64 {
	w := min(a.MaxX(), b.MaxX()) - max(a.MinX(), b.MinX())
	h := min(a.MaxY(), b.MaxY()) - max(a.MinY(), b.MinY())
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

func TestHalvesAreExact(t *testing.T) {
	left := frameOf(t, action.LeftHalf)
	right := frameOf(t, action.RightHalf)
	assert.Equal(t, usable.Size.Width/2, left.Size.Width)
	assert.Equal(t, left.MaxX(), right.MinX())
	assert.Equal(t, usable.MaxX(), right.MaxX())
}

func TestAlmostMaximize(t *testing.T) {
	f := frameOf(t, action.AlmostMaximize)
	assert.InDelta(t, 100, f.MinX(), 1e-9)
	assert.InDelta(t, 80, f.MinY(), 1e-9)
	assert.InDelta(t, 800, f.Size.Width, 1e-9)
	assert.InDelta(t, 640, f.Size.Height, 1e-9)
}

func TestCenterKeepsSize(t *testing.T) {
	w := geometry.NewRect(7, 9, 400, 300)
	p := place(t, action.Center, &w)
	assert.Equal(t, KindOrigin, p.Kind)
	assert.Equal(t, geometry.NewRect(300, 250, 400, 300), p.Frame)
}

func TestMaximizeOneAxis(t *testing.T) {
	w := geometry.NewRect(120, 60, 400, 300)

	p := place(t, action.MaximizeWidth, &w)
	assert.Equal(t, geometry.NewRect(0, 60, 1000, 300), p.Frame)

	p = place(t, action.MaximizeHeight, &w)
	assert.Equal(t, geometry.NewRect(120, 0, 400, 800), p.Frame)
}

func TestMovesClamp(t *testing.T) {
	tests := []struct {
		name   string
		action action.Action
		window geometry.Rect
		want   geometry.Point
	}{
		{"up", action.MoveUp, geometry.NewRect(100, 100, 50, 50), geometry.Point{X: 100, Y: 90}},
		{"up clamped", action.MoveUp, geometry.NewRect(100, 4, 50, 50), geometry.Point{X: 100, Y: 0}},
		{"down", action.MoveDown, geometry.NewRect(100, 100, 50, 50), geometry.Point{X: 100, Y: 110}},
		{"down clamped", action.MoveDown, geometry.NewRect(100, 745, 50, 50), geometry.Point{X: 100, Y: 750}},
		{"left", action.MoveLeft, geometry.NewRect(100, 100, 50, 50), geometry.Point{X: 90, Y: 100}},
		{"left clamped", action.MoveLeft, geometry.NewRect(3, 100, 50, 50), geometry.Point{X: 0, Y: 100}},
		{"right", action.MoveRight, geometry.NewRect(100, 100, 50, 50), geometry.Point{X: 110, Y: 100}},
		{"right clamped", action.MoveRight, geometry.NewRect(990, 0, 50, 50), geometry.Point{X: 950, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := place(t, tt.action, &tt.window)
			assert.Equal(t, KindOrigin, p.Kind)
			assert.Equal(t, tt.want, p.Frame.Origin)
			assert.Equal(t, tt.window.Size, p.Frame.Size)
		})
	}
}

func TestLargerThenSmallerRoundTrip(t *testing.T) {
	start := geometry.NewRect(100, 100, 400, 300)

	larger := place(t, action.MakeLarger, &start)
	require.Equal(t, KindFrame, larger.Kind)
	assert.Equal(t, geometry.NewRect(90, 92.5, 420, 315), larger.Frame)

	smaller := place(t, action.MakeSmaller, &larger.Frame)
	require.Equal(t, KindFrame, smaller.Kind)
	assert.Equal(t, start, smaller.Frame)
}

func TestMakeLargerClampsEachEdge(t *testing.T) {
	// Flush against the right edge: only the left edge can move.
	w := geometry.NewRect(600, 100, 400, 300)
	p := place(t, action.MakeLarger, &w)

	assert.Equal(t, 590.0, p.Frame.MinX())
	assert.Equal(t, usable.MaxX(), p.Frame.MaxX())
	assert.Equal(t, 410.0, p.Frame.Size.Width)
	assert.Equal(t, 92.5, p.Frame.MinY())
	assert.Equal(t, 315.0, p.Frame.Size.Height)

	// Already filling usable: nothing exceeds it.
	full := usable
	p = place(t, action.MakeLarger, &full)
	assert.Equal(t, usable, p.Frame)
}

func TestMakeLargerPastTheRightEdge(t *testing.T) {
	// Origin in a dock strip right of usable: the edges meet instead of crossing.
	w := geometry.NewRect(1030, 100, 40, 40)
	p := place(t, action.MakeLarger, &w)

	require.Equal(t, KindFrame, p.Kind)
	assert.Equal(t, geometry.NewRect(1020, 90, 0, 60), p.Frame)
	assert.GreaterOrEqual(t, p.Frame.Size.Width, 0.0)
	assert.GreaterOrEqual(t, p.Frame.Size.Height, 0.0)
}

func TestMakeLargerZeroWidthWindow(t *testing.T) {
	w := geometry.NewRect(10, 10, 0, 0)
	p := place(t, action.MakeLarger, &w)

	assert.Equal(t, KindUnchanged, p.Kind)
	assert.Equal(t, w, p.Frame)
}

func TestMakeSmallerNeverCollapses(t *testing.T) {
	w := geometry.NewRect(10, 10, 20, 40)
	p := place(t, action.MakeSmaller, &w)
	assert.Equal(t, KindUnchanged, p.Kind)
	assert.Equal(t, w, p.Frame)
}

func TestPlaceErrors(t *testing.T) {
	table := DefaultTable()

	_, err := table.Place(action.Restore, usable, nil)
	assert.ErrorIs(t, err, platform.ErrNotImplemented)

	for _, a := range []action.Action{action.NextDisplay, action.PreviousDesktop, action.ToggleFullscreen} {
		_, err := table.Place(a, usable, nil)
		assert.ErrorIs(t, err, ErrNoRule, a.String())
	}

	_, err = table.Place(action.MoveUp, usable, nil)
	assert.ErrorIs(t, err, ErrNeedsWindow)
}

func TestEveryPlacementActionHasARule(t *testing.T) {
	w := geometry.NewRect(100, 100, 400, 300)
	for _, a := range action.All() {
		if a.Kind() != action.KindPlacement {
			continue
		}
		_, err := DefaultTable().Place(a, usable, &w)
		assert.NoError(t, err, a.String())
	}
}
