package topology

import (
	"errors"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	if got := len(r.Categories()); got != 5 {
		t.Fatalf("categories = %d, want 5", got)
	}
	for _, c := range []Category{CategoryPhase, CategorySubPhase, CategoryComponent} {
		rule := r.Rule(c)
		if rule.Physics {
			t.Errorf("%s should not be physics-controlled", c)
		}
		if rule.Role != RoleAnchor {
			t.Errorf("%s role = %s, want anchor", c, rule.Role)
		}
	}
	if !r.Physics(CategoryMentalModel) || !r.Physics(CategoryVisualization) {
		t.Error("mental models and visualizations must be physics-controlled")
	}
}

func TestRegistryAllowed(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		source, target Category
		wantKind       Kind
		wantOK         bool
	}{
		{CategoryPhase, CategoryMentalModel, KindApplies, true},
		{CategoryComponent, CategoryMentalModel, KindApplies, true},
		{CategoryMentalModel, CategoryVisualization, KindVisualizes, true},
		{CategoryPhase, CategorySubPhase, KindContains, true},
		{CategoryVisualization, CategoryMentalModel, "", false},
		{CategoryMentalModel, CategoryPhase, "", false},
		{"nonsense", CategoryPhase, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.source)+"->"+string(tt.target), func(t *testing.T) {
			target, ok := r.Allowed(tt.source, tt.target)
			if ok != tt.wantOK {
				t.Fatalf("Allowed ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && target.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", target.Kind, tt.wantKind)
			}
		})
	}
}

func TestRegistryRulePanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Rule should panic for an unknown category")
		}
	}()
	DefaultRegistry().Rule("unknown")
}

func TestNewRegistryValidation(t *testing.T) {
	styles := DefaultStyles()

	tests := []struct {
		name  string
		rules []Rule
		want  error
	}{
		{
			name: "Duplicate",
			rules: []Rule{
				{Category: CategoryPhase, Role: RoleAnchor},
				{Category: CategoryPhase, Role: RoleAnchor},
			},
			want: ErrDuplicateCategory,
		},
		{
			name:  "MovableAnchor",
			rules: []Rule{{Category: CategoryPhase, Role: RoleAnchor, Physics: true}},
			want:  ErrMovableAnchor,
		},
		{
			name: "UnknownTarget",
			rules: []Rule{{
				Category:       CategoryPhase,
				Role:           RoleAnchor,
				AllowedTargets: []Target{{Kind: KindApplies, Category: CategoryMentalModel}},
			}},
			want: ErrUnknownCategory,
		},
		{
			name: "MissingStyle",
			rules: []Rule{{
				Category:       CategoryPhase,
				Role:           RoleAnchor,
				AllowedTargets: []Target{{Kind: "teleports", Category: CategoryPhase}},
			}},
			want: ErrMissingStyle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.rules, styles)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewRegistry error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStyle(t *testing.T) {
	r := DefaultRegistry()
	if s := r.Style(KindApplies); s.Stroke != StrokeDashed || !s.Animated {
		t.Errorf("applies style = %+v", s)
	}
	if s := r.Style("unknown"); s.Stroke != StrokeSolid {
		t.Errorf("unknown kind style = %+v, want solid", s)
	}
}
