package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testFrustum() Frustum {
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Ortho(-1, 1, -1, 1, 0.1, 10)
	return FrustumFromMatrix(proj.Mul4(view))
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum()

	cases := []struct {
		name   string
		point  Vector3
		inside bool
	}{
		{"origin", NewVector3(0, 0, 0), true},
		{"right of box", NewVector3(2, 0, 0), false},
		{"above box", NewVector3(0, 1.5, 0), false},
		{"behind camera", NewVector3(0, 0, 6), false},
		{"beyond far plane", NewVector3(0, 0, -6), false},
		{"corner", NewVector3(0.9, -0.9, 1), true},
	}

	for _, c := range cases {
		if got := f.ContainsPoint(c.point); got != c.inside {
			t.Errorf("%s: ContainsPoint(%v) = %v, want %v", c.name, c.point, got, c.inside)
		}
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	f := testFrustum()

	straddling := AABBFromPoints(NewVector3(0.5, 0, 0), NewVector3(1.5, 0.2, 0))
	if !f.IntersectsAABB(straddling) {
		t.Errorf("box straddling the right plane should intersect")
	}

	outside := AABBFromPoints(NewVector3(1.5, 0, 0), NewVector3(2.5, 0.2, 0))
	if f.IntersectsAABB(outside) {
		t.Errorf("box right of the frustum should not intersect")
	}

	if f.IntersectsAABB(NewAABB()) {
		t.Errorf("empty box should never intersect")
	}
}
