package scene

import (
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/model"
)

// Build creates the index of a structure. Node boxes are the node position,
// element boxes span both end nodes; both are grown by padding.
// Elements with a missing end node are not pickable.
func Build(s *model.Structure, padding float64) *Index {
	points := make(map[PointID]geometry.AABB, len(s.Nodes))
	for _, n := range s.Nodes {
		points[PointID(n.ID)] = geometry.AABBFromPoints(n.Position).Pad(padding)
	}

	segments := make(map[SegmentID]geometry.AABB, len(s.Elements))
	for _, e := range s.Elements {
		from, to, ok := s.ElementEnds(e.ID)
		if !ok {
			continue
		}
		segments[SegmentID(e.ID)] = geometry.AABBFromPoints(from, to).Pad(padding)
	}

	groups := make(map[GroupID][]SegmentID, len(s.Groups))
	for _, g := range s.Groups {
		members := make([]SegmentID, 0, len(g.Elements))
		for _, e := range g.Elements {
			members = append(members, SegmentID(e))
		}
		groups[GroupID(g.ID)] = members
	}

	return NewIndex(points, segments, groups)
}
