// Package action defines the closed set of symbolic window commands wmgr
// understands and their command-line names.
package action

import (
	"fmt"
	"strings"
)

// Action selects one window placement or navigation command.
type Action int

const (
	TopHalf Action = iota
	BottomHalf
	LeftHalf
	RightHalf
	CenterHalf

	TopLeftQuarter
	TopRightQuarter
	BottomLeftQuarter
	BottomRightQuarter

	TopLeftSixth
	TopCenterSixth
	TopRightSixth
	BottomLeftSixth
	BottomCenterSixth
	BottomRightSixth

	TopThird
	MiddleThird
	BottomThird

	Center

	FirstFourth
	SecondFourth
	ThirdFourth
	LastFourth

	FirstThird
	CenterThird
	LastThird

	FirstTwoThirds
	CenterTwoThirds
	LastTwoThirds

	FirstThreeFourths
	CenterThreeFourths
	LastThreeFourths

	TopThreeFourths
	BottomThreeFourths

	TopTwoThirds
	BottomTwoThirds
	TopCenterTwoThirds

	TopFirstFourth
	TopSecondFourth
	TopThirdFourth
	TopLastFourth

	MakeLarger
	MakeSmaller

	AlmostMaximize
	Maximize
	MaximizeWidth
	MaximizeHeight

	MoveUp
	MoveDown
	MoveLeft
	MoveRight

	NextDesktop
	PreviousDesktop
	NextDisplay
	PreviousDisplay

	Restore

	ToggleFullscreen

	count
)

var names = [count]string{
	TopHalf:            "top_half",
	BottomHalf:         "bottom_half",
	LeftHalf:           "left_half",
	RightHalf:          "right_half",
	CenterHalf:         "center_half",
	TopLeftQuarter:     "top_left_quarter",
	TopRightQuarter:    "top_right_quarter",
	BottomLeftQuarter:  "bottom_left_quarter",
	BottomRightQuarter: "bottom_right_quarter",
	TopLeftSixth:       "top_left_sixth",
	TopCenterSixth:     "top_center_sixth",
	TopRightSixth:      "top_right_sixth",
	BottomLeftSixth:    "bottom_left_sixth",
	BottomCenterSixth:  "bottom_center_sixth",
	BottomRightSixth:   "bottom_right_sixth",
	TopThird:           "top_third",
	MiddleThird:        "middle_third",
	BottomThird:        "bottom_third",
	Center:             "center",
	FirstFourth:        "first_fourth",
	SecondFourth:       "second_fourth",
	ThirdFourth:        "third_fourth",
	LastFourth:         "last_fourth",
	FirstThird:         "first_third",
	CenterThird:        "center_third",
	LastThird:          "last_third",
	FirstTwoThirds:     "first_two_thirds",
	CenterTwoThirds:    "center_two_thirds",
	LastTwoThirds:      "last_two_thirds",
	FirstThreeFourths:  "first_three_fourths",
	CenterThreeFourths: "center_three_fourths",
	LastThreeFourths:   "last_three_fourths",
	TopThreeFourths:    "top_three_fourths",
	BottomThreeFourths: "bottom_three_fourths",
	TopTwoThirds:       "top_two_thirds",
	BottomTwoThirds:    "bottom_two_thirds",
	TopCenterTwoThirds: "top_center_two_thirds",
	TopFirstFourth:     "top_first_fourth",
	TopSecondFourth:    "top_second_fourth",
	TopThirdFourth:     "top_third_fourth",
	TopLastFourth:      "top_last_fourth",
	MakeLarger:         "make_larger",
	MakeSmaller:        "make_smaller",
	AlmostMaximize:     "almost_maximize",
	Maximize:           "maximize",
	MaximizeWidth:      "maximize_width",
	MaximizeHeight:     "maximize_height",
	MoveUp:             "move_up",
	MoveDown:           "move_down",
	MoveLeft:           "move_left",
	MoveRight:          "move_right",
	NextDesktop:        "next_desktop",
	PreviousDesktop:    "previous_desktop",
	NextDisplay:        "next_display",
	PreviousDisplay:    "previous_display",
	Restore:            "restore",
	ToggleFullscreen:   "toggle_fullscreen",
}

// Kind says which part of the engine handles an action.
type Kind int

const (
	// KindPlacement actions are resolved by the placement table.
	KindPlacement Kind = iota
	// KindDisplay actions cycle the window across displays.
	KindDisplay
	// KindDesktop actions move the window to an adjacent workspace.
	KindDesktop
	// KindFullscreen flips the window's fullscreen flag.
	KindFullscreen
	// KindRestore is not implemented on any backend.
	KindRestore
)

// Family groups actions for listings and menus.
type Family string

const (
	FamilyHalves     Family = "Halves"
	FamilyQuarters   Family = "Quarters"
	FamilySixths     Family = "Sixths"
	FamilyThirds     Family = "Thirds"
	FamilyFourths    Family = "Fourths"
	FamilyLarger     Family = "Two thirds & three fourths"
	FamilySize       Family = "Size"
	FamilyMove       Family = "Move"
	FamilyNavigation Family = "Displays & desktops"
	FamilyOther      Family = "Other"
)

// Families lists the families in display order.
var Families = []Family{
	FamilyHalves, FamilyQuarters, FamilySixths, FamilyThirds, FamilyFourths,
	FamilyLarger, FamilySize, FamilyMove, FamilyNavigation, FamilyOther,
}

// All returns every action in declaration order.
func All() []Action {
	out := make([]Action, 0, int(count))
	for a := Action(0); a < count; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool {
	return a >= 0 && a < count
}

// String returns the snake_case command name.
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return names[a]
}

// Kind returns the engine component responsible for a.
func (a Action) Kind() Kind {
	switch a {
	case NextDisplay, PreviousDisplay:
		return KindDisplay
	case NextDesktop, PreviousDesktop:
		return KindDesktop
	case ToggleFullscreen:
		return KindFullscreen
	case Restore:
		return KindRestore
	default:
		return KindPlacement
	}
}

// NeedsWindow reports whether the placement of a depends on the current
// window geometry rather than only on the usable area.
func (a Action) NeedsWindow() bool {
	switch a {
	case Center, MakeLarger, MakeSmaller, MaximizeWidth, MaximizeHeight,
		MoveUp, MoveDown, MoveLeft, MoveRight:
		return true
	}
	return false
}

// Family returns the listing group of a.
func (a Action) Family() Family {
	switch {
	case a <= CenterHalf:
		return FamilyHalves
	case a <= BottomRightQuarter:
		return FamilyQuarters
	case a <= BottomRightSixth:
		return FamilySixths
	case a <= BottomThird, a >= FirstThird && a <= LastThird:
		return FamilyThirds
	case a == Center:
		return FamilySize
	case a <= LastFourth, a >= TopFirstFourth && a <= TopLastFourth:
		return FamilyFourths
	case a <= TopCenterTwoThirds:
		return FamilyLarger
	case a <= MaximizeHeight:
		return FamilySize
	case a <= MoveRight:
		return FamilyMove
	case a <= PreviousDisplay:
		return FamilyNavigation
	default:
		return FamilyOther
	}
}

// Title returns a human readable label, e.g. "Top left quarter".
func (a Action) Title() string {
	s := strings.ReplaceAll(a.String(), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Parse maps a command name to its Action. Matching is case-insensitive and
// tolerates surrounding whitespace and '-' in place of '_'.
func Parse(name string) (Action, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	for a, n := range names {
		if n == key {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
