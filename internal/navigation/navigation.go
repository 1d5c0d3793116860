// Package navigation cycles the focused window across displays.
package navigation

import (
	"fmt"

	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
)

// Direction is the step taken through the display list.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func (d Direction) String() string {
	if d < 0 {
		return "previous"
	}
	return "next"
}

// Cycle returns (idx + delta) mod n, wrapping negative results to the end.
// n must be positive.
func Cycle(idx, delta, n int) int {
	return ((idx+delta)%n + n) % n
}

// Step returns the display after (or before) current in all, wrapping at
// both ends. current is matched by equality and must come from the same
// query as all. With a single display the same area comes back and moved is
// false.
func Step(current geometry.Rect, all []geometry.Rect, dir Direction) (target geometry.Rect, moved bool, err error) {
	switch len(all) {
	case 0:
		return geometry.Rect{}, false, platform.ErrNoDisplay
	case 1:
		return all[0], false, nil
	}

	idx := -1
	for i, r := range all {
		if r == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return geometry.Rect{}, false, fmt.Errorf("active display %s is not in the display list", current)
	}

	return all[Cycle(idx, int(dir), len(all))], true, nil
}

// NextDisplay is Step(current, all, Next).
func NextDisplay(current geometry.Rect, all []geometry.Rect) (geometry.Rect, bool, error) {
	return Step(current, all, Next)
}

// PreviousDisplay is Step(current, all, Previous).
func PreviousDisplay(current geometry.Rect, all []geometry.Rect) (geometry.Rect, bool, error) {
	return Step(current, all, Previous)
}
