package geometry

import "math"

// Vector2 is a screen-space position or offset in pixels.
// Screen coordinates grow right (X) and down (Y).
type Vector2 struct {
	X, Y float64
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul multiplies the vector by a scalar
func (v Vector2) Mul(scalar float64) Vector2 {
	return Vector2{X: v.X * scalar, Y: v.Y * scalar}
}

// Length returns the magnitude of the vector
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two points
func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Length()
}

// ClosestOnSegment returns the parameter t in [0,1] of the point on segment
// a-b closest to v, and the distance to that point.
func (v Vector2) ClosestOnSegment(a, b Vector2) (t, dist float64) {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return 0, v.Distance(a)
	}
	t = ((v.X-a.X)*ab.X + (v.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return t, v.Distance(a.Add(ab.Mul(t)))
}
