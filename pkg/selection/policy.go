package selection

import (
	"fmt"
	"strings"
)

// Candidates are the entities picked by one gesture before they are combined
// with the current selection
type Candidates struct {
	State
	SingleClick bool // the gesture rectangle was below the click tolerance
}

// PriorityPolicy arbitrates between candidates of different domains
type PriorityPolicy interface {
	Arbitrate(c *Candidates)
}

// PolicyFunc adapts a function to a PriorityPolicy
type PolicyFunc func(c *Candidates)

// Arbitrate calls f(c)
func (f PolicyFunc) Arbitrate(c *Candidates) {
	f(c)
}

// PointPriority prefers a single point over segments on a single click.
// Box drags are left untouched.
type PointPriority struct{}

// Arbitrate drops segments and groups when a click hit exactly one point
// and at least one segment or group
func (PointPriority) Arbitrate(c *Candidates) {
	if !c.SingleClick || c.Points.Len() != 1 {
		return
	}
	if c.Segments.Len() > 0 || c.Groups.Len() > 0 {
		dropSegments(c)
	}
}

// GeometryPointPriority is used by geometry-only views: whenever exactly one
// point is picked, segments and groups are dropped, also for box drags.
type GeometryPointPriority struct{}

// Arbitrate drops segments and groups when exactly one point was picked
func (GeometryPointPriority) Arbitrate(c *Candidates) {
	if c.Points.Len() == 1 {
		dropSegments(c)
	}
}

func dropSegments(c *Candidates) {
	clear(c.Segments)
	clear(c.Groups)
}

// ParsePriority returns the policy named "point" or "geometry"
func ParsePriority(s string) (PriorityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point", "":
		return PointPriority{}, nil
	case "geometry":
		return GeometryPointPriority{}, nil
	}
	return nil, fmt.Errorf("unknown selection priority %q", s)
}
