// Package reconcile merges a freshly computed frame into the previous render
// model, keeping object identity for everything that did not change.
//
// Rendering layers compare entries by pointer: an entity or connection whose
// pointer is the same as in the previous model is skipped. Reconcile is
// deterministic and has no side effects on its inputs.
package reconcile

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/mindscape/pkg/core/model"
)

// Frame is the desired next state, by value.
type Frame struct {
	Entities    []model.Entity
	Connections []model.Connection
}

// Outcome classifies what happened to one entry.
type Outcome int

const (
	Reused Outcome = iota
	Replaced
	Added
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Reused:
		return "reused"
	case Replaced:
		return "replaced"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Counts tallies outcomes for one collection.
type Counts struct {
	Reused   int `json:"reused"`
	Replaced int `json:"replaced"`
	Added    int `json:"added"`
	Removed  int `json:"removed"`
}

func (c *Counts) record(o Outcome) {
	switch o {
	case Reused:
		c.Reused++
	case Replaced:
		c.Replaced++
	case Added:
		c.Added++
	case Removed:
		c.Removed++
	}
}

// Changed reports whether anything other than reuse happened.
func (c Counts) Changed() bool { return c.Replaced+c.Added+c.Removed > 0 }

// Stats summarizes one reconciliation.
type Stats struct {
	Entities    Counts `json:"entities"`
	Connections Counts `json:"connections"`
}

// Changed reports whether the new model differs from the previous one.
func (s Stats) Changed() bool { return s.Entities.Changed() || s.Connections.Changed() }

func (s Stats) String() string {
	return fmt.Sprintf("entities %d/%d/%d/%d connections %d/%d/%d/%d (reused/replaced/added/removed)",
		s.Entities.Reused, s.Entities.Replaced, s.Entities.Added, s.Entities.Removed,
		s.Connections.Reused, s.Connections.Replaced, s.Connections.Added, s.Connections.Removed)
}

// Reconcile builds the next model from prev and next. Entries are matched by
// id; equal entries keep the pointer from prev, changed entries get a fresh
// pointer, entries missing from next are dropped. Output order follows next.
// prev may be nil. Duplicate ids in next keep their first occurrence.
// When every entry is reused in the same order, prev itself is returned.
func Reconcile(prev *model.Model, next Frame) (*model.Model, Stats) {
	var stats Stats
	out := &model.Model{
		Entities:    make([]*model.Entity, 0, len(next.Entities)),
		Connections: make([]*model.Connection, 0, len(next.Connections)),
	}

	var prevEntities []*model.Entity
	var prevConns []*model.Connection
	if prev != nil {
		prevEntities, prevConns = prev.Entities, prev.Connections
	}

	oldE := make(map[string]*model.Entity, len(prevEntities))
	for _, e := range prevEntities {
		oldE[e.ID] = e
	}
	seenE := make(map[string]bool, len(next.Entities))
	for i := range next.Entities {
		want := &next.Entities[i]
		if seenE[want.ID] {
			continue
		}
		seenE[want.ID] = true
		e, o := mergeEntity(oldE[want.ID], want)
		stats.Entities.record(o)
		out.Entities = append(out.Entities, e)
	}
	for id := range oldE {
		if !seenE[id] {
			stats.Entities.record(Removed)
		}
	}

	oldC := make(map[string]*model.Connection, len(prevConns))
	for _, c := range prevConns {
		oldC[c.ID] = c
	}
	seenC := make(map[string]bool, len(next.Connections))
	for i := range next.Connections {
		want := next.Connections[i]
		if seenC[want.ID] {
			continue
		}
		seenC[want.ID] = true
		c, o := mergeConnection(oldC[want.ID], want)
		stats.Connections.record(o)
		out.Connections = append(out.Connections, c)
	}
	for id := range oldC {
		if !seenC[id] {
			stats.Connections.record(Removed)
		}
	}
	if prev != nil && !stats.Changed() && sameOrder(prev, out) {
		return prev, stats
	}
	return out, stats
}

func sameOrder(a, b *model.Model) bool {
	return slices.Equal(a.Entities, b.Entities) && slices.Equal(a.Connections, b.Connections)
}

func mergeEntity(old, want *model.Entity) (*model.Entity, Outcome) {
	if old == nil {
		return cloneEntity(want), Added
	}
	if old.Equal(want) {
		return old, Reused
	}
	return cloneEntity(want), Replaced
}

func cloneEntity(e *model.Entity) *model.Entity {
	c := *e
	c.Attrs = maps.Clone(e.Attrs)
	return &c
}

func mergeConnection(old *model.Connection, want model.Connection) (*model.Connection, Outcome) {
	if old == nil {
		return &want, Added
	}
	if *old == want {
		return old, Reused
	}
	return &want, Replaced
}
