// Package screens lists displays in flipped coordinates and resolves which
// display holds the focused window.
package screens

import (
	"fmt"

	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
)

// Screen is one display in flipped coordinates.
type Screen struct {
	Index  int
	Frame  geometry.Rect
	Usable geometry.Rect
}

// Resolver queries the platform on every call; nothing is cached because
// displays can be attached or detached between calls.
type Resolver struct {
	src platform.ScreenSource
}

// NewResolver returns a Resolver reading from src.
func NewResolver(src platform.ScreenSource) *Resolver {
	return &Resolver{src: src}
}

// Screens returns every display, flipped against the primary display's full
// height, in platform order. An empty result is not an error.
func (r *Resolver) Screens() ([]Screen, error) {
	frames, err := r.src.DisplayFrames()
	if err != nil {
		return nil, fmt.Errorf("list display frames: %w", err)
	}
	usable, err := r.src.DisplayUsableAreas()
	if err != nil {
		return nil, fmt.Errorf("list usable areas: %w", err)
	}
	if len(frames) != len(usable) {
		return nil, fmt.Errorf("display list changed during query: %d frames, %d usable areas", len(frames), len(usable))
	}
	if len(frames) == 0 {
		return nil, nil
	}

	reference := frames[0].Size.Height
	out := make([]Screen, len(frames))
	for i := range frames {
		out[i] = Screen{
			Index:  i,
			Frame:  frames[i].Flipped(reference),
			Usable: usable[i].Flipped(reference),
		}
	}
	return out, nil
}

// UsableAreas returns the flipped usable area of every display.
func (r *Resolver) UsableAreas() ([]geometry.Rect, error) {
	list, err := r.Screens()
	if err != nil {
		return nil, err
	}
	areas := make([]geometry.Rect, len(list))
	for i, s := range list {
		areas[i] = s.Usable
	}
	return areas, nil
}

// Active returns the display whose full frame contains origin (flipped).
// A point on a shared edge belongs to the display to its right or below.
func (r *Resolver) Active(origin geometry.Point) (Screen, error) {
	list, err := r.Screens()
	if err != nil {
		return Screen{}, err
	}
	return Locate(list, origin)
}

// Locate finds the screen containing origin in an already queried list.
func Locate(list []Screen, origin geometry.Point) (Screen, error) {
	if len(list) == 0 {
		return Screen{}, platform.ErrNoDisplay
	}
	for _, s := range list {
		if s.Frame.Contains(origin) {
			return s, nil
		}
	}
	return Screen{}, fmt.Errorf("window origin %s is outside every display: %w", origin, platform.ErrNotImplemented)
}
