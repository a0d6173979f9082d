package visibility

import (
	"github.com/matzehuels/mindscape/pkg/core/idset"
)

// VisibleSecondaries returns every secondary id with a non-empty anchor set.
func VisibleSecondaries(toggles ToggleState) idset.Set {
	out := make(idset.Set, len(toggles))
	for sec, anchors := range toggles {
		if anchors.Len() > 0 {
			out.Add(sec)
		}
	}
	return out
}

// VisibleTertiaries returns the tertiaries of every secondary that is both
// detail-toggled and visible. tertiariesOf lists the tertiary ids nested
// under a secondary.
func VisibleTertiaries(details DetailToggleState, visible idset.Set, tertiariesOf func(secondary string) []string) idset.Set {
	out := make(idset.Set)
	for sec := range details {
		if !visible.Has(sec) {
			continue
		}
		for _, t := range tertiariesOf(sec) {
			out.Add(t)
		}
	}
	return out
}

// RenderSet lists the entities to render: every anchor unconditionally,
// followed by the visible secondaries and tertiaries in sorted order.
// Duplicates are dropped, keeping the first occurrence.
func RenderSet(anchors []string, secondaries, tertiaries idset.Set) []string {
	seen := make(idset.Set, len(anchors)+secondaries.Len()+tertiaries.Len())
	out := make([]string, 0, len(anchors)+secondaries.Len()+tertiaries.Len())
	add := func(id string) {
		if seen.Add(id) {
			out = append(out, id)
		}
	}
	for _, id := range anchors {
		add(id)
	}
	for _, id := range secondaries.Sorted() {
		add(id)
	}
	for _, id := range tertiaries.Sorted() {
		add(id)
	}
	return out
}

// EligibilityFunc reports whether id may be rendered given the ids that are
// currently considered visible.
type EligibilityFunc func(id string, visible idset.Set) bool

// FilterEligible drops candidates that fail eligible. Because an entity's
// eligibility depends on its parents being visible, filtering repeats until
// the set is stable. Candidate order is preserved.
func FilterEligible(candidates []string, eligible EligibilityFunc) []string {
	visible := idset.New(candidates...)
	for {
		changed := false
		for _, id := range candidates {
			if visible.Has(id) && !eligible(id, visible) {
				visible.Remove(id)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	out := make([]string, 0, visible.Len())
	for _, id := range candidates {
		if visible.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
