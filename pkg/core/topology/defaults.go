package topology

var anchorCategories = []Category{CategoryPhase, CategorySubPhase, CategoryComponent}

// DefaultRules returns the rule table for the framework diagram: three anchor
// levels, mental models toggled from any anchor, and one visualization level
// nested under mental models.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: CategoryPhase,
			Role:     RoleAnchor,
			AllowedTargets: []Target{
				{Kind: KindContains, Category: CategorySubPhase},
				{Kind: KindPrecedes, Category: CategoryPhase},
				{Kind: KindApplies, Category: CategoryMentalModel},
			},
			RecalcTriggers: []Trigger{TriggerNever},
		},
		{
			Category: CategorySubPhase,
			Role:     RoleAnchor,
			AllowedTargets: []Target{
				{Kind: KindContains, Category: CategoryComponent},
				{Kind: KindApplies, Category: CategoryMentalModel},
			},
			RequiredParents: []ParentRequirement{
				{Categories: []Category{CategoryPhase}, Kinds: []Kind{KindContains}, Mode: ParentAny},
			},
			RecalcTriggers: []Trigger{TriggerNever},
		},
		{
			Category: CategoryComponent,
			Role:     RoleAnchor,
			AllowedTargets: []Target{
				{Kind: KindApplies, Category: CategoryMentalModel},
			},
			RequiredParents: []ParentRequirement{
				{Categories: []Category{CategorySubPhase}, Kinds: []Kind{KindContains}, Mode: ParentAny},
			},
			RecalcTriggers: []Trigger{TriggerNever},
		},
		{
			Category: CategoryMentalModel,
			Role:     RoleSecondary,
			AllowedTargets: []Target{
				{Kind: KindVisualizes, Category: CategoryVisualization},
				{Kind: KindRelates, Category: CategoryMentalModel},
			},
			RequiredParents: []ParentRequirement{
				{Categories: anchorCategories, Kinds: []Kind{KindApplies}, Mode: ParentAny},
			},
			CascadeDelete: []CascadeRule{
				{Category: CategoryVisualization, Kind: KindVisualizes},
			},
			Physics:          true,
			RecalcTriggers:   []Trigger{TriggerEdgeAdded, TriggerEdgeRemoved},
			IgnoresOverrides: true,
		},
		{
			Category: CategoryVisualization,
			Role:     RoleTertiary,
			RequiredParents: []ParentRequirement{
				{Categories: []Category{CategoryMentalModel}, Kinds: []Kind{KindVisualizes}, Mode: ParentAll},
			},
			Physics:          true,
			RecalcTriggers:   []Trigger{TriggerParentMoved},
			IgnoresOverrides: true,
		},
	}
}

// DefaultRegistry builds a fresh registry from DefaultRules and DefaultStyles.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultRules(), DefaultStyles())
	if err != nil {
		// The default table is static; failing here is a build-time bug.
		panic(err)
	}
	return r
}
