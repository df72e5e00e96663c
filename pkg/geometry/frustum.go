package geometry

import "github.com/go-gl/mathgl/mgl64"

// Plane is the set of points p with Normal.Dot(p) + D == 0.
// Points with a positive signed distance lie on the inner side.
type Plane struct {
	Normal Vector3
	D      float64
}

// SignedDistance returns the signed distance of p to the plane
func (p Plane) SignedDistance(v Vector3) float64 {
	return p.Normal.Dot(v) + p.D
}

// Frustum plane indices
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is a convex volume bounded by six inward-facing planes
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts the frustum planes of a combined
// projection * view matrix (Gribb/Hartmann). Planes are normalized.
func FrustumFromMatrix(m mgl64.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeFromRow(r3.Add(r0))
	f.Planes[FrustumRight] = planeFromRow(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFromRow(r3.Add(r1))
	f.Planes[FrustumTop] = planeFromRow(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFromRow(r3.Add(r2))
	f.Planes[FrustumFar] = planeFromRow(r3.Sub(r2))
	return f
}

func planeFromRow(r mgl64.Vec4) Plane {
	p := Plane{Normal: Vector3{X: r[0], Y: r[1], Z: r[2]}, D: r[3]}
	if l := p.Normal.Length(); l > 0 {
		p.Normal = p.Normal.Mul(1 / l)
		p.D /= l
	}
	return p
}

// ContainsPoint reports whether v lies inside or on the frustum
func (f Frustum) ContainsPoint(v Vector3) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(v) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether the box overlaps the frustum.
// The test is conservative: a box near a frustum edge may be reported as
// overlapping although it is outside, but a box inside is never rejected.
func (f Frustum) IntersectsAABB(b AABB) bool {
	if b.IsEmpty() {
		return false
	}
	for _, p := range f.Planes {
		// vertex furthest along the plane normal
		v := b.Min
		if p.Normal.X >= 0 {
			v.X = b.Max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = b.Max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = b.Max.Z
		}
		if p.SignedDistance(v) < 0 {
			return false
		}
	}
	return true
}
