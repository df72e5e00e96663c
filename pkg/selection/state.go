// Package selection turns click and box gestures on the viewport into a
// selection of points, segments and groups.
package selection

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/philipparndt/femscene/pkg/idset"
	"github.com/philipparndt/femscene/pkg/scene"
)

// Modifier selects how a picked set is combined with the current selection
type Modifier int

const (
	None     Modifier = iota // replace
	Toggle                   // ctrl, see ToggleMode
	Union                    // shift
	Subtract                 // alt
)

func (m Modifier) String() string {
	switch m {
	case None:
		return "none"
	case Toggle:
		return "toggle"
	case Union:
		return "union"
	case Subtract:
		return "subtract"
	}
	return fmt.Sprintf("Modifier(%d)", int(m))
}

// ModifierFromKeys maps held modifier keys to a Modifier.
// With several keys held, subtract wins over toggle and toggle over union.
func ModifierFromKeys(shift, ctrl, alt bool) Modifier {
	switch {
	case alt:
		return Subtract
	case ctrl:
		return Toggle
	case shift:
		return Union
	}
	return None
}

// ToggleMode selects the semantics of the Toggle modifier
type ToggleMode int

const (
	// ToggleUnion adds the picked entities, the same as Union
	ToggleUnion ToggleMode = iota
	// ToggleSymmetricDifference flips the membership of every picked entity
	ToggleSymmetricDifference
)

func (m ToggleMode) String() string {
	switch m {
	case ToggleUnion:
		return "union"
	case ToggleSymmetricDifference:
		return "xor"
	}
	return fmt.Sprintf("ToggleMode(%d)", int(m))
}

// ParseToggleMode parses "union" or "xor"
func ParseToggleMode(s string) (ToggleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "union", "":
		return ToggleUnion, nil
	case "xor", "symmetric-difference":
		return ToggleSymmetricDifference, nil
	}
	return ToggleUnion, fmt.Errorf("unknown toggle mode %q", s)
}

// State is a selection over the three entity domains. The sets are
// independent; group membership of segments is looked up in the index.
type State struct {
	Points   idset.Set[scene.PointID]
	Segments idset.Set[scene.SegmentID]
	Groups   idset.Set[scene.GroupID]
}

// NewState returns an empty selection
func NewState() State {
	return State{
		Points:   idset.New[scene.PointID](),
		Segments: idset.New[scene.SegmentID](),
		Groups:   idset.New[scene.GroupID](),
	}
}

// Clone returns a deep copy
func (s State) Clone() State {
	return State{
		Points:   s.Points.Clone(),
		Segments: s.Segments.Clone(),
		Groups:   s.Groups.Clone(),
	}
}

// IsEmpty reports whether nothing is selected
func (s State) IsEmpty() bool {
	return s.Points.Len() == 0 && s.Segments.Len() == 0 && s.Groups.Len() == 0
}

// Equal reports whether both selections contain the same ids
func (s State) Equal(other State) bool {
	return s.Points.Equal(other.Points) &&
		s.Segments.Equal(other.Segments) &&
		s.Groups.Equal(other.Groups)
}

// Combine applies picked to s according to m
func (s State) Combine(picked State, m Modifier, toggle ToggleMode) State {
	switch m {
	case Union:
		return combine(s, picked, union)
	case Toggle:
		if toggle == ToggleSymmetricDifference {
			return combine(s, picked, symmetricDifference)
		}
		return combine(s, picked, union)
	case Subtract:
		return combine(s, picked, difference)
	}
	return picked.Clone()
}

type setOp int

const (
	union setOp = iota
	difference
	symmetricDifference
)

func apply[T cmp.Ordered](op setOp, a, b idset.Set[T]) idset.Set[T] {
	switch op {
	case difference:
		return idset.Difference(a, b)
	case symmetricDifference:
		return idset.SymmetricDifference(a, b)
	}
	return idset.Union(a, b)
}

func combine(s, picked State, op setOp) State {
	return State{
		Points:   apply(op, s.Points, picked.Points),
		Segments: apply(op, s.Segments, picked.Segments),
		Groups:   apply(op, s.Groups, picked.Groups),
	}
}
