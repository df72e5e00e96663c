package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/philipparndt/femscene/pkg/selection"
)

// Distance describes the offset between two selected nodes
type Distance struct {
	From, To int
	Delta    geometry.Vector3 // absolute per-axis distance
	Total    float64
}

// SelectionSummary describes a selection for info panels and reports
type SelectionSummary struct {
	Nodes       []model.Node
	Elements    []ElementInfo
	Groups      []model.Group
	Bounds      geometry.AABB
	TotalLength float64
	Distance    *Distance // set when exactly two nodes are selected
}

// Summarize resolves the selected ids against the structure. Ids that are not
// part of the structure are skipped.
func Summarize(s *model.Structure, st selection.State) *SelectionSummary {
	summary := &SelectionSummary{Bounds: geometry.NewAABB()}

	for _, id := range st.Points.Sorted() {
		n, ok := s.Node(int(id))
		if !ok {
			continue
		}
		summary.Nodes = append(summary.Nodes, n)
		summary.Bounds.Extend(n.Position)
	}

	for _, id := range st.Segments.Sorted() {
		from, to, ok := s.ElementEnds(int(id))
		if !ok {
			continue
		}
		info := ElementInfo{ID: int(id), Start: from, End: to, Length: from.Distance(to)}
		summary.Elements = append(summary.Elements, info)
		summary.TotalLength += info.Length
		summary.Bounds.Extend(from)
		summary.Bounds.Extend(to)
	}

	groups := make(map[int]model.Group, len(s.Groups))
	for _, g := range s.Groups {
		groups[g.ID] = g
	}
	for _, id := range st.Groups.Sorted() {
		if g, ok := groups[int(id)]; ok {
			summary.Groups = append(summary.Groups, g)
		}
	}

	if len(summary.Nodes) == 2 {
		p1, p2 := summary.Nodes[0].Position, summary.Nodes[1].Position
		d := p2.Sub(p1)
		summary.Distance = &Distance{
			From:  summary.Nodes[0].ID,
			To:    summary.Nodes[1].ID,
			Delta: geometry.NewVector3(math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)),
			Total: p1.Distance(p2),
		}
	}

	return summary
}

// IsEmpty reports whether nothing resolved
func (s *SelectionSummary) IsEmpty() bool {
	return len(s.Nodes) == 0 && len(s.Elements) == 0 && len(s.Groups) == 0
}

// String renders the summary as text lines
func (s *SelectionSummary) String() string {
	if s.IsEmpty() {
		return "Nothing selected"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Nodes: %d\n", len(s.Nodes))
	for _, n := range s.Nodes {
		fmt.Fprintf(&b, "  %d %s\n", n.ID, FormatVector(n.Position))
	}
	fmt.Fprintf(&b, "Elements: %d\n", len(s.Elements))
	for _, e := range s.Elements {
		fmt.Fprintf(&b, "  %d length %s\n", e.ID, FormatMeasurement(e.Length, ""))
	}
	if len(s.Elements) > 0 {
		fmt.Fprintf(&b, "Total length: %s\n", FormatMeasurement(s.TotalLength, ""))
	}
	fmt.Fprintf(&b, "Groups: %d\n", len(s.Groups))
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "  %d %s (%d elements)\n", g.ID, g.Name, len(g.Elements))
	}
	if d := s.Distance; d != nil {
		fmt.Fprintf(&b, "Distance %d-%d: %s\n", d.From, d.To, FormatMeasurement(d.Total, ""))
		fmt.Fprintf(&b, "  X: %s\n  Y: %s\n  Z: %s\n",
			FormatMeasurement(d.Delta.X, ""),
			FormatMeasurement(d.Delta.Y, ""),
			FormatMeasurement(d.Delta.Z, ""),
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
