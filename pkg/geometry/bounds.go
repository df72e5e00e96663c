package geometry

import "math"

// AABB is an axis-aligned bounding box
type AABB struct {
	Min Vector3
	Max Vector3
}

// NewAABB creates an empty bounding box that any Extend call will overwrite
func NewAABB() AABB {
	return AABB{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// AABBFromPoints returns the bounding box of the given points
func AABBFromPoints(points ...Vector3) AABB {
	b := NewAABB()
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// IsEmpty reports whether the box contains no point (max < min on any axis)
func (b AABB) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Extend expands the bounding box to include a point
func (b *AABB) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Union expands the bounding box to include another box
func (b *AABB) Union(other AABB) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Pad returns the box grown by d on every side
func (b AABB) Pad(d float64) AABB {
	if b.IsEmpty() || d == 0 {
		return b
	}
	pad := Vector3{X: d, Y: d, Z: d}
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Size returns the dimensions of the bounding box
func (b AABB) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b AABB) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
		Z: (b.Min.Z + b.Max.Z) / 2.0,
	}
}

// Diagonal returns the length of the bounding box diagonal
func (b AABB) Diagonal() float64 {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b AABB) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// Corners returns the eight corner points of the box
func (b AABB) Corners() [8]Vector3 {
	return [8]Vector3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// NearestCornerDistance returns the distance from p to the closest corner of the box
func (b AABB) NearestCornerDistance(p Vector3) float64 {
	best := math.MaxFloat64
	for _, c := range b.Corners() {
		if d := c.Distance(p); d < best {
			best = d
		}
	}
	return best
}
