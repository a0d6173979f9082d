package topology

import (
	"github.com/matzehuels/mindscape/pkg/core/idset"
)

// Link is a directed relationship between two entities.
type Link struct {
	Source string
	Target string
	Kind   Kind
}

// Change is a link that appeared or disappeared since the previous event.
type Change struct {
	Link
	Added bool
}

// Trigger returns the recalculation trigger this change fires.
func (c Change) Trigger() Trigger {
	if c.Added {
		return TriggerEdgeAdded
	}
	return TriggerEdgeRemoved
}

// Graph is the view of entities and links the manager reasons about.
// Category must report false for ids that are not part of the view.
type Graph interface {
	IDs() []string
	Category(id string) (Category, bool)
	Outgoing(id string) []Link
	Incoming(id string) []Link
}

// Manager applies registry rules to a graph view.
type Manager struct {
	registry *Registry
}

// NewManager returns a manager bound to registry.
func NewManager(registry *Registry) *Manager {
	return &Manager{registry: registry}
}

// Registry returns the rule table the manager consults.
func (m *Manager) Registry() *Registry { return m.registry }

// Eligible reports whether id satisfies every parent requirement of its
// category. visible decides whether a parent currently counts as shown.
// Entities of unknown category are never eligible.
func (m *Manager) Eligible(id string, g Graph, visible func(string) bool) bool {
	cat, ok := g.Category(id)
	if !ok {
		return false
	}
	rule, ok := m.registry.Lookup(cat)
	if !ok {
		return false
	}
	incoming := g.Incoming(id)
	for _, req := range rule.RequiredParents {
		if !m.satisfied(req, incoming, g, visible) {
			return false
		}
	}
	return true
}

func (m *Manager) satisfied(req ParentRequirement, incoming []Link, g Graph, visible func(string) bool) bool {
	matched, shown := 0, 0
	for _, l := range incoming {
		pc, ok := g.Category(l.Source)
		if !ok || !req.Matches(pc, l.Kind) {
			continue
		}
		matched++
		if visible(l.Source) {
			shown++
		}
	}
	if req.Mode == ParentAll {
		return matched > 0 && shown == matched
	}
	return shown > 0
}

// RecalculationSet returns the physics-controlled entities that must accept
// a new layout position after changes.
//
// An endpoint of a changed link qualifies when its category lists the
// matching edge trigger (or TriggerAlways) and it is not overridden by the
// user, unless the category ignores overrides. Categories with
// TriggerParentMoved then qualify one hop below a qualifying entity. Every
// returned id has its user override cleared.
func (m *Manager) RecalculationSet(changes []Change, g Graph, positions *PositionStore) idset.Set {
	out := make(idset.Set)
	if len(changes) == 0 {
		return out
	}

	for _, ch := range changes {
		for _, id := range [2]string{ch.Source, ch.Target} {
			rule, ok := m.rule(g, id)
			if !ok || !(rule.HasTrigger(ch.Trigger()) || rule.HasTrigger(TriggerAlways)) {
				continue
			}
			if m.accepts(rule, id, positions) {
				out.Add(id)
			}
		}
	}
	for _, id := range g.IDs() {
		if rule, ok := m.rule(g, id); ok && rule.HasTrigger(TriggerAlways) && m.accepts(rule, id, positions) {
			out.Add(id)
		}
	}

	for _, id := range out.Sorted() {
		for _, l := range g.Outgoing(id) {
			rule, ok := m.rule(g, l.Target)
			if ok && rule.HasTrigger(TriggerParentMoved) && m.accepts(rule, l.Target, positions) {
				out.Add(l.Target)
			}
		}
	}

	for id := range out {
		positions.ClearOverride(id)
	}
	return out
}

// rule returns the rule of a physics-controlled entity in g.
func (m *Manager) rule(g Graph, id string) (Rule, bool) {
	cat, ok := g.Category(id)
	if !ok {
		return Rule{}, false
	}
	rule, ok := m.registry.Lookup(cat)
	if !ok || !rule.Physics || rule.HasTrigger(TriggerNever) {
		return Rule{}, false
	}
	return rule, true
}

func (m *Manager) accepts(rule Rule, id string, positions *PositionStore) bool {
	return rule.IgnoresOverrides || !positions.Overridden(id)
}

// CascadeDelete returns every entity that must be removed together with id,
// following the cascade rules of each removed entity transitively. The
// result is sorted and excludes id itself.
func (m *Manager) CascadeDelete(id string, g Graph) []string {
	seen := idset.New(id)
	out := make(idset.Set)
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cat, ok := g.Category(cur)
		if !ok {
			continue
		}
		rule, ok := m.registry.Lookup(cat)
		if !ok {
			continue
		}
		for _, l := range g.Outgoing(cur) {
			if seen.Has(l.Target) {
				continue
			}
			tc, ok := g.Category(l.Target)
			if !ok || !cascades(rule, tc, l.Kind) {
				continue
			}
			seen.Add(l.Target)
			out.Add(l.Target)
			queue = append(queue, l.Target)
		}
	}
	return out.Sorted()
}

func cascades(rule Rule, target Category, kind Kind) bool {
	for _, c := range rule.CascadeDelete {
		if c.Category == target && c.Kind == kind {
			return true
		}
	}
	return false
}
