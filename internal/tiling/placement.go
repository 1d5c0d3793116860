package tiling

import (
	"errors"
	"fmt"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
)

// Defaults for Table.
const (
	DefaultMoveStep            = 10.0
	DefaultResizeStep          = 20.0
	DefaultAlmostMaximizeRatio = 0.8
)

// ErrNoRule is returned for actions the placement table does not handle
// (display and desktop navigation, fullscreen).
var ErrNoRule = errors.New("action has no placement rule")

// ErrNeedsWindow is returned when a window-relative action gets no window.
var ErrNeedsWindow = errors.New("action needs the current window frame")

// Kind says how a Placement must be applied.
type Kind int

const (
	// KindFrame writes the full frame: origin then size.
	KindFrame Kind = iota
	// KindOrigin moves the window, keeping its size.
	KindOrigin
	// KindUnchanged writes nothing.
	KindUnchanged
)

func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindOrigin:
		return "origin"
	case KindUnchanged:
		return "unchanged"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Placement is the result of a table lookup. Frame is always the window's
// resulting frame; for KindOrigin only Frame.Origin is written.
type Placement struct {
	Kind  Kind
	Frame geometry.Rect
}

// Table holds the tunable constants of the placement rules.
type Table struct {
	MoveStep            float64
	ResizeStep          float64
	AlmostMaximizeRatio float64
}

// DefaultTable returns the stock step sizes.
func DefaultTable() Table {
	return Table{
		MoveStep:            DefaultMoveStep,
		ResizeStep:          DefaultResizeStep,
		AlmostMaximizeRatio: DefaultAlmostMaximizeRatio,
	}
}

// fraction is num/den of a usable-area dimension. Evaluated as v*num/den so
// v/den is exact when num is 1.
type fraction struct {
	num float64
	den float64
}

func (f fraction) of(v float64) float64 {
	return v * f.num / f.den
}

var (
	zero         = fraction{0, 1}
	whole        = fraction{1, 1}
	half         = fraction{1, 2}
	third        = fraction{1, 3}
	twoThirds    = fraction{2, 3}
	fourth       = fraction{1, 4}
	twoFourths   = fraction{2, 4}
	threeFourths = fraction{3, 4}
	sixth        = fraction{1, 6}
	eighth       = fraction{1, 8}
)

// slice places a window at fractions of the usable area:
// origin = usable.origin + (x*w, y*h), size = (width*w, height*h).
type slice struct {
	x, y, width, height fraction
}

func (s slice) apply(usable geometry.Rect) geometry.Rect {
	return geometry.NewRect(
		usable.MinX()+s.x.of(usable.Size.Width),
		usable.MinY()+s.y.of(usable.Size.Height),
		s.width.of(usable.Size.Width),
		s.height.of(usable.Size.Height),
	)
}

var sliceRules = map[action.Action]slice{
	action.TopHalf:    {zero, zero, whole, half},
	action.BottomHalf: {zero, half, whole, half},
	action.LeftHalf:   {zero, zero, half, whole},
	action.RightHalf:  {half, zero, half, whole},
	action.CenterHalf: {fourth, zero, half, whole},

	action.TopLeftQuarter:     {zero, zero, half, half},
	action.TopRightQuarter:    {half, zero, half, half},
	action.BottomLeftQuarter:  {zero, half, half, half},
	action.BottomRightQuarter: {half, half, half, half},

	action.TopLeftSixth:      {zero, zero, third, half},
	action.TopCenterSixth:    {third, zero, third, half},
	action.TopRightSixth:     {twoThirds, zero, third, half},
	action.BottomLeftSixth:   {zero, half, third, half},
	action.BottomCenterSixth: {third, half, third, half},
	action.BottomRightSixth:  {twoThirds, half, third, half},

	action.TopThird:    {zero, zero, whole, third},
	action.MiddleThird: {zero, third, whole, third},
	action.BottomThird: {zero, twoThirds, whole, third},

	action.FirstFourth:  {zero, zero, fourth, whole},
	action.SecondFourth: {fourth, zero, fourth, whole},
	action.ThirdFourth:  {twoFourths, zero, fourth, whole},
	action.LastFourth:   {threeFourths, zero, fourth, whole},

	action.FirstThird:  {zero, zero, third, whole},
	action.CenterThird: {third, zero, third, whole},
	action.LastThird:   {twoThirds, zero, third, whole},

	action.FirstTwoThirds:  {zero, zero, twoThirds, whole},
	action.CenterTwoThirds: {sixth, zero, twoThirds, whole},
	action.LastTwoThirds:   {third, zero, twoThirds, whole},

	action.FirstThreeFourths:  {zero, zero, threeFourths, whole},
	action.CenterThreeFourths: {eighth, zero, threeFourths, whole},
	action.LastThreeFourths:   {fourth, zero, threeFourths, whole},

	action.TopThreeFourths:    {zero, zero, whole, threeFourths},
	action.BottomThreeFourths: {zero, fourth, whole, threeFourths},

	action.TopTwoThirds:       {zero, zero, whole, twoThirds},
	action.BottomTwoThirds:    {zero, third, whole, twoThirds},
	action.TopCenterTwoThirds: {sixth, zero, twoThirds, twoThirds},

	action.TopFirstFourth:  {zero, zero, whole, fourth},
	action.TopSecondFourth: {zero, fourth, whole, fourth},
	action.TopThirdFourth:  {zero, twoFourths, whole, fourth},
	action.TopLastFourth:   {zero, threeFourths, whole, fourth},

	action.Maximize: {zero, zero, whole, whole},
}

// Place computes where a should put the window. usable is the active
// display's usable area and window the current frame, both flipped. window
// may be nil for actions that do not depend on it.
func (t Table) Place(a action.Action, usable geometry.Rect, window *geometry.Rect) (Placement, error) {
	if s, ok := sliceRules[a]; ok {
		return Placement{Kind: KindFrame, Frame: s.apply(usable)}, nil
	}

	switch a {
	case action.AlmostMaximize:
		return Placement{Kind: KindFrame, Frame: t.almostMaximize(usable)}, nil
	case action.Restore:
		return Placement{}, fmt.Errorf("%s: %w", a, platform.ErrNotImplemented)
	case action.NextDisplay, action.PreviousDisplay,
		action.NextDesktop, action.PreviousDesktop, action.ToggleFullscreen:
		return Placement{}, fmt.Errorf("%s: %w", a, ErrNoRule)
	}

	if !a.NeedsWindow() {
		return Placement{}, fmt.Errorf("%s: %w", a, ErrNoRule)
	}
	if window == nil {
		return Placement{}, fmt.Errorf("%s: %w", a, ErrNeedsWindow)
	}
	w := *window

	switch a {
	case action.Center:
		origin := geometry.Point{
			X: usable.MinX() + (usable.Size.Width-w.Size.Width)/2,
			Y: usable.MinY() + (usable.Size.Height-w.Size.Height)/2,
		}
		return Placement{Kind: KindOrigin, Frame: w.WithOrigin(origin)}, nil
	case action.MakeLarger:
		return t.grow(usable, w), nil
	case action.MakeSmaller:
		return t.shrink(w), nil
	case action.MaximizeWidth:
		return Placement{Kind: KindFrame, Frame: geometry.NewRect(usable.MinX(), w.MinY(), usable.Size.Width, w.Size.Height)}, nil
	case action.MaximizeHeight:
		return Placement{Kind: KindFrame, Frame: geometry.NewRect(w.MinX(), usable.MinY(), w.Size.Width, usable.Size.Height)}, nil
	case action.MoveUp, action.MoveDown, action.MoveLeft, action.MoveRight:
		return Placement{Kind: KindOrigin, Frame: w.WithOrigin(t.move(a, usable, w))}, nil
	}

	return Placement{}, fmt.Errorf("%s: %w", a, ErrNoRule)
}

func (t Table) almostMaximize(usable geometry.Rect) geometry.Rect {
	margin := (1 - t.AlmostMaximizeRatio) / 2
	return geometry.NewRect(
		usable.MinX()+usable.Size.Width*margin,
		usable.MinY()+usable.Size.Height*margin,
		usable.Size.Width*t.AlmostMaximizeRatio,
		usable.Size.Height*t.AlmostMaximizeRatio,
	)
}

// resizeDelta returns the width and height change of one resize step; the
// height change keeps the window's aspect ratio.
func (t Table) resizeDelta(w geometry.Rect) (dw, dh float64) {
	dw = t.ResizeStep
	dh = w.Size.Height / w.Size.Width * dw
	return dw, dh
}

// grow enlarges w around its center, clamping every edge to usable on its own.
// A window with no width has no aspect ratio and is left alone. Edges never
// cross, so a window lying partly outside usable keeps a non-negative size.
func (t Table) grow(usable, w geometry.Rect) Placement {
	if w.Size.Width <= 0 {
		return Placement{Kind: KindUnchanged, Frame: w}
	}
	dw, dh := t.resizeDelta(w)

	left := max(w.MinX()-dw/2, usable.MinX())
	right := max(min(w.MaxX()+dw/2, usable.MaxX()), left)
	top := max(w.MinY()-dh/2, usable.MinY())
	bottom := max(min(w.MaxY()+dh/2, usable.MaxY()), top)

	return Placement{Kind: KindFrame, Frame: geometry.NewRect(left, top, right-left, bottom-top)}
}

// shrink reduces w around its center. A window no wider than one step is left
// alone rather than collapsed to a non-positive size.
func (t Table) shrink(w geometry.Rect) Placement {
	if w.Size.Width <= t.ResizeStep {
		return Placement{Kind: KindUnchanged, Frame: w}
	}
	dw, dh := t.resizeDelta(w)
	return Placement{
		Kind: KindFrame,
		Frame: geometry.NewRect(
			w.MinX()+dw/2,
			w.MinY()+dh/2,
			w.Size.Width-dw,
			w.Size.Height-dh,
		),
	}
}

// move nudges the origin by one step, keeping the whole window inside usable.
func (t Table) move(a action.Action, usable, w geometry.Rect) geometry.Point {
	origin := w.Origin
	switch a {
	case action.MoveUp:
		origin.Y = max(w.MinY()-t.MoveStep, usable.MinY())
	case action.MoveDown:
		origin.Y = min(w.MinY()+t.MoveStep, usable.MaxY()-w.Size.Height)
	case action.MoveLeft:
		origin.X = max(w.MinX()-t.MoveStep, usable.MinX())
	case action.MoveRight:
		origin.X = min(w.MinX()+t.MoveStep, usable.MaxX()-w.Size.Width)
	}
	return origin
}
