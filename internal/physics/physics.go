// Package physics provides axis-aligned collision detection and bounds utilities.
package physics

import "math"

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 {
	return r.X + r.Width/2
}

// IsFinite reports whether every component of the rectangle is a finite number.
func (r Rect) IsFinite() bool {
	return isFinite(r.X) && isFinite(r.Y) && isFinite(r.Width) && isFinite(r.Height)
}

// Intersects reports whether two rectangles overlap.
// Ranges are open on both ends, so rectangles that only share an edge do not intersect.
func Intersects(a, b Rect) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
