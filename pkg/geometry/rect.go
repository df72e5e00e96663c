package geometry

import "math"

// Rect is a screen-space rectangle in pixels, Min is the top-left corner
type Rect struct {
	Min Vector2
	Max Vector2
}

// RectFromCorners returns the normalized rectangle spanned by two corners
// (positive width/height regardless of drag direction)
func RectFromCorners(a, b Vector2) Rect {
	return Rect{
		Min: Vector2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vector2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() Vector2 {
	return Vector2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// IsEmpty reports whether the rectangle has no area
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Expand grows the rectangle by d on every side
func (r Rect) Expand(d float64) Rect {
	return Rect{
		Min: Vector2{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Vector2{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Intersect returns the overlap of two rectangles; the result may be empty
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		Min: Vector2{X: math.Max(r.Min.X, other.Min.X), Y: math.Max(r.Min.Y, other.Min.Y)},
		Max: Vector2{X: math.Min(r.Max.X, other.Max.X), Y: math.Min(r.Max.Y, other.Max.Y)},
	}
}

// Contains reports whether p lies inside or on the rectangle
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
