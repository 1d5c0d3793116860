// Package geometry holds the float rectangle model shared by every layer of
// wmgr, plus the conversion between the two screen coordinate conventions.
//
// Flipped coordinates have their origin at the top-left of the primary
// display with y growing downward (accessibility and Core Graphics APIs).
// Unflipped coordinates have their origin at the bottom-left of the primary
// display with y growing upward (AppKit). Everything above the platform
// layer works in flipped coordinates.
package geometry

import "fmt"

// Point is a location in screen coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair. Both are expected to be non-negative.
type Size struct {
	Width  float64
	Height float64
}

// Rect describes a rectangular region: a display's usable area or a window frame.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect builds a Rect from its four components.
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		Origin: Point{X: x, Y: y},
		Size:   Size{Width: width, Height: height},
	}
}

func (r Rect) MinX() float64 { return r.Origin.X }
func (r Rect) MinY() float64 { return r.Origin.Y }
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }
func (r Rect) MidX() float64 { return r.Origin.X + r.Size.Width/2 }
func (r Rect) MidY() float64 { return r.Origin.Y + r.Size.Height/2 }

// Area returns width * height.
func (r Rect) Area() float64 {
	return r.Size.Width * r.Size.Height
}

// Contains reports whether p lies inside r using half-open intervals:
// min.x <= x < max.x and min.y <= y < max.y. A point on the right or bottom
// edge therefore belongs to the neighbouring rectangle, never to both.
func (r Rect) Contains(p Point) bool {
	xInRange := p.X >= r.MinX() && p.X < r.MaxX()
	yInRange := p.Y >= r.MinY() && p.Y < r.MaxY()
	return xInRange && yInRange
}

// WithOrigin returns a copy of r moved to origin, keeping its size.
func (r Rect) WithOrigin(origin Point) Rect {
	r.Origin = origin
	return r
}

// Flipped converts r between the flipped and unflipped conventions using
// referenceHeight, the full height of the primary display. Only y changes.
func (r Rect) Flipped(referenceHeight float64) Rect {
	r.Origin.Y = FlipY(referenceHeight, r.Size.Height, r.Origin.Y)
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("{origin:(%g,%g) size:(%g,%g)}", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// FlipY converts the y coordinate of a rectangle of height rectHeight between
// the unflipped and flipped conventions. referenceHeight is always the full
// (not usable) height of the primary display. The conversion is its own
// inverse: FlipY(h, rh, FlipY(h, rh, y)) == y.
func FlipY(referenceHeight, rectHeight, y float64) float64 {
	return referenceHeight - (y + rectHeight)
}
