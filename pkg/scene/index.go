// Package scene provides the read-only lookup structures the interaction core
// queries during a pick: bounding volumes of pickable points and segments and
// the segment groups derived from the model.
package scene

import (
	"maps"
	"slices"

	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/idset"
)

// PointID identifies a point-domain entity (a node)
type PointID int

// SegmentID identifies a segment-domain entity (an element)
type SegmentID int

// GroupID identifies a derived group of segments
type GroupID int

// Index holds pickable bounds and group membership. It is built once per model
// and never modified afterwards; ids iterate in ascending order.
type Index struct {
	pointBounds   map[PointID]geometry.AABB
	segmentBounds map[SegmentID]geometry.AABB
	groups        map[GroupID]idset.Set[SegmentID]
	segmentGroups map[SegmentID][]GroupID

	points   []PointID
	segments []SegmentID
	groupIDs []GroupID
}

// NewIndex creates an index. The maps are copied; nil maps are allowed.
func NewIndex(
	points map[PointID]geometry.AABB,
	segments map[SegmentID]geometry.AABB,
	groups map[GroupID][]SegmentID,
) *Index {
	idx := &Index{
		pointBounds:   maps.Clone(points),
		segmentBounds: maps.Clone(segments),
		groups:        make(map[GroupID]idset.Set[SegmentID], len(groups)),
		segmentGroups: make(map[SegmentID][]GroupID),
	}
	if idx.pointBounds == nil {
		idx.pointBounds = map[PointID]geometry.AABB{}
	}
	if idx.segmentBounds == nil {
		idx.segmentBounds = map[SegmentID]geometry.AABB{}
	}

	idx.points = slices.Sorted(maps.Keys(idx.pointBounds))
	idx.segments = slices.Sorted(maps.Keys(idx.segmentBounds))
	idx.groupIDs = slices.Sorted(maps.Keys(groups))

	for _, g := range idx.groupIDs {
		members := idset.Of(groups[g]...)
		idx.groups[g] = members
		for _, s := range members.Sorted() {
			idx.segmentGroups[s] = append(idx.segmentGroups[s], g)
		}
	}
	return idx
}

// Empty returns an index without any pickable entity
func Empty() *Index {
	return NewIndex(nil, nil, nil)
}

// Points returns all point ids in ascending order
func (idx *Index) Points() []PointID {
	return idx.points
}

// Segments returns all segment ids in ascending order
func (idx *Index) Segments() []SegmentID {
	return idx.segments
}

// Groups returns all group ids in ascending order
func (idx *Index) Groups() []GroupID {
	return idx.groupIDs
}

// PointBounds returns the bounding box of a point
func (idx *Index) PointBounds(id PointID) (geometry.AABB, bool) {
	b, ok := idx.pointBounds[id]
	return b, ok
}

// SegmentBounds returns the bounding box of a segment
func (idx *Index) SegmentBounds(id SegmentID) (geometry.AABB, bool) {
	b, ok := idx.segmentBounds[id]
	return b, ok
}

// Members returns the segments of a group in ascending order
func (idx *Index) Members(id GroupID) []SegmentID {
	return idx.groups[id].Sorted()
}

// GroupsOf returns the groups containing a segment in ascending order
func (idx *Index) GroupsOf(id SegmentID) []GroupID {
	return idx.segmentGroups[id]
}

// GroupsTouching returns every group whose membership intersects segments
func (idx *Index) GroupsTouching(segments idset.Set[SegmentID]) idset.Set[GroupID] {
	out := idset.New[GroupID]()
	for s := range segments {
		for _, g := range idx.segmentGroups[s] {
			out.Add(g)
		}
	}
	return out
}

// Bounds returns the union of all point and segment bounds
func (idx *Index) Bounds() geometry.AABB {
	b := geometry.NewAABB()
	for _, pb := range idx.pointBounds {
		b.Union(pb)
	}
	for _, sb := range idx.segmentBounds {
		b.Union(sb)
	}
	return b
}
