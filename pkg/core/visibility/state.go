// Package visibility maps toggle state to the set of entities that should
// be rendered.
//
// The selectors in this package are pure: their output depends only on
// their arguments. State mutation happens through the small methods on
// [ToggleState] and [DetailToggleState], which the session sequences inside
// a single transaction per event.
package visibility

import (
	"maps"
	"slices"

	"github.com/matzehuels/mindscape/pkg/core/idset"
)

// ToggleState maps a secondary entity id to the anchors that switched it on.
// A secondary entity is visible iff its anchor set is non-empty.
type ToggleState map[string]idset.Set

// Pair is one (anchor, secondary) toggle.
type Pair struct {
	Anchor    string
	Secondary string
}

// On records that anchor switched secondary on and reports whether the
// pair was new.
func (t ToggleState) On(anchor, secondary string) bool {
	set, ok := t[secondary]
	if !ok {
		set = make(idset.Set)
		t[secondary] = set
	}
	return set.Add(anchor)
}

// Off removes the (anchor, secondary) pair. It reports whether the pair
// existed and whether it was the last anchor keeping secondary visible.
// Empty anchor sets are deleted so the map never holds invisible keys.
func (t ToggleState) Off(anchor, secondary string) (removed, last bool) {
	set, ok := t[secondary]
	if !ok || !set.Remove(anchor) {
		return false, false
	}
	if set.Len() == 0 {
		delete(t, secondary)
		return true, true
	}
	return true, false
}

// Anchors returns the anchors keeping secondary on, sorted.
func (t ToggleState) Anchors(secondary string) []string {
	return t[secondary].Sorted()
}

// Has reports whether anchor has switched secondary on.
func (t ToggleState) Has(anchor, secondary string) bool {
	return t[secondary].Has(anchor)
}

// Pairs returns every toggle ordered by secondary then anchor.
func (t ToggleState) Pairs() []Pair {
	var out []Pair
	for _, sec := range slices.Sorted(maps.Keys(t)) {
		for _, a := range t[sec].Sorted() {
			out = append(out, Pair{Anchor: a, Secondary: sec})
		}
	}
	return out
}

// Clone returns a deep copy.
func (t ToggleState) Clone() ToggleState {
	out := make(ToggleState, len(t))
	for k, v := range t {
		out[k] = v.Clone()
	}
	return out
}

// DetailToggleState holds the secondary ids whose tertiary detail views
// were switched on.
type DetailToggleState = idset.Set
