// Package idset implements the string set used for entity ids throughout
// the engine. Iteration helpers always return sorted slices so callers stay
// deterministic.
package idset

import (
	"maps"
	"slices"
)

// Set is a set of entity ids. The zero value is an empty, read-only set;
// use New or make(Set) before calling Add.
type Set map[string]struct{}

// New returns a set containing ids.
func New(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was absent.
func (s Set) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove deletes id and reports whether it was present.
func (s Set) Remove(id string) bool {
	if _, ok := s[id]; !ok {
		return false
	}
	delete(s, id)
	return true
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids.
func (s Set) Len() int { return len(s) }

// Sorted returns the ids in ascending order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy of s. Cloning a nil set yields an empty set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	maps.Copy(out, s)
	return out
}

// Intersect returns the ids present in both s and o.
func (s Set) Intersect(o Set) Set {
	out := make(Set)
	for id := range s {
		if o.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Equal reports whether s and o contain the same ids.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}
