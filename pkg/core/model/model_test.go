package model

import (
	"testing"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

func TestEntityEqual(t *testing.T) {
	base := Entity{ID: "m", Category: topology.CategoryMentalModel, Label: "M", Physics: true, Position: geom.Pt(1, 2), Attrs: map[string]string{"k": "v"}}

	tests := []struct {
		name   string
		modify func(*Entity)
		want   bool
	}{
		{"identical", func(*Entity) {}, true},
		{"moved", func(e *Entity) { e.Position = geom.Pt(1, 3) }, false},
		{"relabeled", func(e *Entity) { e.Label = "N" }, false},
		{"attr changed", func(e *Entity) { e.Attrs = map[string]string{"k": "w"} }, false},
		{"attrs dropped", func(e *Entity) { e.Attrs = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			other.Attrs = map[string]string{"k": "v"}
			tt.modify(&other)
			if got := base.Equal(&other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilEntity *Entity
	if !nilEntity.Equal(nil) || nilEntity.Equal(&base) {
		t.Errorf("nil handling is wrong")
	}
}

func TestModelLookup(t *testing.T) {
	m := &Model{
		Entities:    []*Entity{{ID: "a"}, {ID: "b"}},
		Connections: []*Connection{{ID: "applies:a->b"}},
	}
	if m.Entity("b") != m.Entities[1] {
		t.Errorf("Entity(b) did not return the stored pointer")
	}
	if m.Entity("zz") != nil {
		t.Errorf("Entity(zz) should be nil")
	}
	if m.Connection("applies:a->b") == nil {
		t.Errorf("Connection lookup failed")
	}
	if got := m.EntityIDs(); len(got) != 2 || got[0] != "a" {
		t.Errorf("EntityIDs() = %v", got)
	}

	var empty *Model
	if empty.Entity("a") != nil || empty.EntityIDs() != nil {
		t.Errorf("nil model lookups should return zero values")
	}
}
