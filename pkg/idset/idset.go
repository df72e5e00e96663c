// Package idset provides a small generic set over ordered ids.
package idset

import (
	"cmp"
	"maps"
	"slices"
)

// Set is an unordered set of ids. The zero value is an empty set ready for reads;
// use New or Of before adding.
type Set[T cmp.Ordered] map[T]struct{}

// New returns an empty set
func New[T cmp.Ordered]() Set[T] {
	return make(Set[T])
}

// Of returns a set containing the given ids
func Of[T cmp.Ordered](ids ...T) Set[T] {
	s := make(Set[T], len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id
func (s Set[T]) Add(id T) {
	s[id] = struct{}{}
}

// Remove deletes id
func (s Set[T]) Remove(id T) {
	delete(s, id)
}

// Has reports whether id is in the set
func (s Set[T]) Has(id T) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids
func (s Set[T]) Len() int {
	return len(s)
}

// Clone returns an independent copy; a nil set clones to an empty set
func (s Set[T]) Clone() Set[T] {
	c := make(Set[T], len(s))
	maps.Copy(c, s)
	return c
}

// Sorted returns the ids in ascending order
func (s Set[T]) Sorted() []T {
	return slices.Sorted(maps.Keys(s))
}

// Equal reports whether both sets hold the same ids
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Union returns s | other
func Union[T cmp.Ordered](s, other Set[T]) Set[T] {
	r := s.Clone()
	maps.Copy(r, other)
	return r
}

// Difference returns s - other
func Difference[T cmp.Ordered](s, other Set[T]) Set[T] {
	r := make(Set[T], len(s))
	for id := range s {
		if !other.Has(id) {
			r[id] = struct{}{}
		}
	}
	return r
}

// SymmetricDifference returns the ids in exactly one of the sets
func SymmetricDifference[T cmp.Ordered](s, other Set[T]) Set[T] {
	r := Difference(s, other)
	for id := range other {
		if !s.Has(id) {
			r[id] = struct{}{}
		}
	}
	return r
}

// Intersects reports whether the sets share at least one id
func Intersects[T cmp.Ordered](s, other Set[T]) bool {
	if len(other) < len(s) {
		s, other = other, s
	}
	for id := range s {
		if other.Has(id) {
			return true
		}
	}
	return false
}
