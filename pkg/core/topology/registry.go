package topology

import (
	"errors"
	"fmt"
	"slices"
)

// Category enumerates the entity types of a framework diagram.
type Category string

const (
	CategoryPhase         Category = "phase"
	CategorySubPhase      Category = "sub_phase"
	CategoryComponent     Category = "component"
	CategoryMentalModel   Category = "mental_model"
	CategoryVisualization Category = "visualization"
)

// Role groups categories by how their visibility is controlled.
type Role string

const (
	// RoleAnchor entities are structural, always rendered and never moved.
	RoleAnchor Role = "anchor"
	// RoleSecondary entities are visible while at least one anchor toggles them on.
	RoleSecondary Role = "secondary"
	// RoleTertiary entities are detail views nested under a secondary entity.
	RoleTertiary Role = "tertiary"
)

// Kind is a relationship kind between two entities.
type Kind string

const (
	KindContains   Kind = "contains"
	KindPrecedes   Kind = "precedes"
	KindApplies    Kind = "applies"
	KindVisualizes Kind = "visualizes"
	KindRelates    Kind = "relates"
)

// Trigger names a topology event that can force position recalculation.
type Trigger string

const (
	TriggerEdgeAdded   Trigger = "edge_added"
	TriggerEdgeRemoved Trigger = "edge_removed"
	TriggerParentMoved Trigger = "parent_moved"
	TriggerNever       Trigger = "never"
	TriggerAlways      Trigger = "always"
)

// ParentMode selects how a parent requirement is satisfied.
type ParentMode string

const (
	// ParentAny requires at least one matching visible parent.
	ParentAny ParentMode = "any"
	// ParentAll requires every matching parent to be visible, and at least one to exist.
	ParentAll ParentMode = "all"
)

// Target is an allowed outgoing relationship.
type Target struct {
	Kind     Kind
	Category Category
}

// ParentRequirement declares which incoming relationships make an entity
// eligible for rendering.
type ParentRequirement struct {
	Categories []Category
	Kinds      []Kind
	Mode       ParentMode
}

// Matches reports whether an incoming link of kind from a parent of category
// counts toward this requirement.
func (p ParentRequirement) Matches(category Category, kind Kind) bool {
	return slices.Contains(p.Categories, category) && slices.Contains(p.Kinds, kind)
}

// CascadeRule names dependents that are removed together with their source.
type CascadeRule struct {
	Category Category
	Kind     Kind
}

// Rule is one row of the registry. Rules are read-only once registered;
// callers must not modify the slices they expose.
type Rule struct {
	Category        Category
	Role            Role
	AllowedTargets  []Target
	RequiredParents []ParentRequirement
	CascadeDelete   []CascadeRule
	Physics         bool
	RecalcTriggers  []Trigger

	// IgnoresOverrides lets a trigger reposition the entity even when the
	// user has dragged it.
	IgnoresOverrides bool
}

// HasTrigger reports whether t is one of the rule's recalculation triggers.
func (r Rule) HasTrigger(t Trigger) bool {
	return slices.Contains(r.RecalcTriggers, t)
}

// Registry is the compiled rule table.
//
// A Registry is immutable after construction and safe for concurrent reads.
type Registry struct {
	rules  map[Category]Rule
	order  []Category
	styles map[Kind]EdgeStyle
}

// Errors returned by NewRegistry.
var (
	ErrDuplicateCategory = errors.New("duplicate category rule")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrMovableAnchor     = errors.New("anchor categories cannot be physics-controlled")
	ErrMissingStyle      = errors.New("relationship kind has no style")
)

// NewRegistry builds a registry from rules and a relationship style table.
// Every category referenced by a rule must itself have a rule, and every
// relationship kind used by an allowed target must have a style.
func NewRegistry(rules []Rule, styles map[Kind]EdgeStyle) (*Registry, error) {
	r := &Registry{
		rules:  make(map[Category]Rule, len(rules)),
		styles: make(map[Kind]EdgeStyle, len(styles)),
	}
	for _, rule := range rules {
		if _, dup := r.rules[rule.Category]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, rule.Category)
		}
		if rule.Role == RoleAnchor && rule.Physics {
			return nil, fmt.Errorf("%w: %s", ErrMovableAnchor, rule.Category)
		}
		r.rules[rule.Category] = rule
		r.order = append(r.order, rule.Category)
	}
	for k, s := range styles {
		r.styles[k] = s
	}

	var errs []error
	for _, rule := range rules {
		for _, t := range rule.AllowedTargets {
			if _, ok := r.rules[t.Category]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s targets %s", ErrUnknownCategory, rule.Category, t.Category))
			}
			if _, ok := r.styles[t.Kind]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s", ErrMissingStyle, t.Kind))
			}
		}
		for _, p := range rule.RequiredParents {
			for _, c := range p.Categories {
				if _, ok := r.rules[c]; !ok {
					errs = append(errs, fmt.Errorf("%w: %s requires parent %s", ErrUnknownCategory, rule.Category, c))
				}
			}
		}
		for _, c := range rule.CascadeDelete {
			if _, ok := r.rules[c.Category]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s cascades to %s", ErrUnknownCategory, rule.Category, c.Category))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// Rule returns the rule for c. It panics when c has no rule: callers must
// guard untrusted categories with Lookup or Has first.
func (r *Registry) Rule(c Category) Rule {
	rule, ok := r.rules[c]
	if !ok {
		panic(fmt.Sprintf("topology: no rule for category %q", c))
	}
	return rule
}

// Lookup returns the rule for c and whether it exists.
func (r *Registry) Lookup(c Category) (Rule, bool) {
	rule, ok := r.rules[c]
	return rule, ok
}

// Has reports whether c has a rule.
func (r *Registry) Has(c Category) bool {
	_, ok := r.rules[c]
	return ok
}

// Categories returns the registered categories in registration order.
func (r *Registry) Categories() []Category { return slices.Clone(r.order) }

// Allowed returns the relationship a source category may form with a target
// category. The second result is false when the registry forbids the pair.
func (r *Registry) Allowed(source, target Category) (Target, bool) {
	rule, ok := r.rules[source]
	if !ok {
		return Target{}, false
	}
	for _, t := range rule.AllowedTargets {
		if t.Category == target {
			return t, true
		}
	}
	return Target{}, false
}

// AllowedKind reports whether source may connect to target with exactly kind.
func (r *Registry) AllowedKind(source, target Category, kind Kind) bool {
	rule, ok := r.rules[source]
	if !ok {
		return false
	}
	return slices.Contains(rule.AllowedTargets, Target{Kind: kind, Category: target})
}

// Role returns the role of c, or the empty role for unknown categories.
func (r *Registry) Role(c Category) Role { return r.rules[c].Role }

// Physics reports whether entities of category c are positioned by the layout
// engine. Unknown categories are treated as fixed.
func (r *Registry) Physics(c Category) bool { return r.rules[c].Physics }
