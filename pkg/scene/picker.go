package scene

import (
	"math"

	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/model"
)

// DefaultPickRadius is the screen distance in pixels within which the picker
// reports a node or element under the cursor
const DefaultPickRadius = 6.0

// Hit is the result of a full-scene pick
type Hit struct {
	Point    geometry.Vector3
	Node     int  // node id, when IsNode
	Element  int  // element id, when !IsNode
	IsNode   bool // a node hit, otherwise an element hit
	Distance float64
}

// Picker performs full-scene picks against the drawn structure. It answers
// pick-under-cursor queries by projecting nodes and elements with the current
// camera, unlike the selector which works on the index bounding boxes.
type Picker struct {
	structure *model.Structure
	camera    *camera.Camera
	viewport  camera.Viewport
	radius    float64
}

// NewPicker creates a picker. The camera is read on every query, so a camera
// changed by the controller is picked up without further calls.
func NewPicker(s *model.Structure, cam *camera.Camera) *Picker {
	return &Picker{
		structure: s,
		camera:    cam,
		radius:    DefaultPickRadius,
	}
}

// SetStructure replaces the picked structure
func (p *Picker) SetStructure(s *model.Structure) {
	p.structure = s
}

// SetCamera replaces the camera
func (p *Picker) SetCamera(cam *camera.Camera) {
	p.camera = cam
}

// SetViewport updates the render target size
func (p *Picker) SetViewport(vp camera.Viewport) {
	p.viewport = vp
}

// SetRadius sets the pick radius in pixels
func (p *Picker) SetRadius(px float64) {
	if px > 0 {
		p.radius = px
	}
}

// Pick returns the hit closest to the camera among all nodes and elements
// drawn within the pick radius of pos. Nodes win over elements at equal distance.
func (p *Picker) Pick(pos geometry.Vector2) (Hit, bool) {
	if p.structure == nil || p.camera == nil || !p.viewport.Valid() {
		return Hit{}, false
	}

	best := Hit{Distance: math.MaxFloat64}
	found := false
	consider := func(h Hit) {
		if h.Distance < best.Distance {
			best = h
			found = true
		}
	}

	for _, n := range p.structure.Nodes {
		s, _, ok := p.camera.WorldToScreen(n.Position, p.viewport)
		if !ok || s.Distance(pos) > p.radius {
			continue
		}
		consider(Hit{
			Point:    n.Position,
			Node:     n.ID,
			IsNode:   true,
			Distance: p.camera.Position.Distance(n.Position),
		})
	}

	for _, e := range p.structure.Elements {
		from, to, ok := p.structure.ElementEnds(e.ID)
		if !ok {
			continue
		}
		a, _, okA := p.camera.WorldToScreen(from, p.viewport)
		b, _, okB := p.camera.WorldToScreen(to, p.viewport)
		if !okA || !okB {
			continue
		}
		t, d := pos.ClosestOnSegment(a, b)
		if d > p.radius {
			continue
		}
		point := from.Lerp(to, t)
		consider(Hit{
			Point:    point,
			Element:  e.ID,
			Distance: p.camera.Position.Distance(point),
		})
	}

	return best, found
}

// PickUnderCursor returns the world position of the nearest hit under pos
func (p *Picker) PickUnderCursor(pos geometry.Vector2) (geometry.Vector3, bool) {
	h, ok := p.Pick(pos)
	return h.Point, ok
}

// VisibleBounds returns the bounds of the drawn structure
func (p *Picker) VisibleBounds() (geometry.AABB, bool) {
	if p.structure == nil {
		return geometry.AABB{}, false
	}
	b := p.structure.Bounds()
	return b, !b.IsEmpty()
}
