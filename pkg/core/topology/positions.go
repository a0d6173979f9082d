package topology

import (
	"errors"
	"maps"
	"slices"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/idset"
)

// Placement is the position lifecycle state of a physics-controlled entity.
type Placement int

const (
	// Unplaced entities have never been simulated.
	Unplaced Placement = iota
	// Simulated entities hold the last position the layout engine committed.
	Simulated
	// Dragged entities hold a position set by the user.
	Dragged
)

// String returns the placement name.
func (p Placement) String() string {
	switch p {
	case Unplaced:
		return "unplaced"
	case Simulated:
		return "simulated"
	case Dragged:
		return "dragged"
	default:
		return "unknown"
	}
}

// ErrNotPlaced is returned by PositionStore.Drag for an entity that has not
// been simulated yet.
var ErrNotPlaced = errors.New("entity has not been placed")

type placed struct {
	pos   geom.Point
	state Placement
}

// PositionStore holds the last committed coordinates of physics-controlled
// entities together with their placement state. Entities in the Dragged
// state form the user override set.
//
// PositionStore is not safe for concurrent use; a diagram session has a
// single writer.
type PositionStore struct {
	entries map[string]placed
}

// NewPositionStore returns an empty store.
func NewPositionStore() *PositionStore {
	return &PositionStore{entries: make(map[string]placed)}
}

// Get returns the stored position of id.
func (s *PositionStore) Get(id string) (geom.Point, bool) {
	e, ok := s.entries[id]
	return e.pos, ok
}

// Placement returns the lifecycle state of id.
func (s *PositionStore) Placement(id string) Placement {
	return s.entries[id].state
}

// Place commits a simulated position. A dragged entity returns to the
// Simulated state: new topology always supersedes a manual placement.
func (s *PositionStore) Place(id string, p geom.Point) {
	s.entries[id] = placed{pos: p, state: Simulated}
}

// Drag records a user-set position and adds id to the override set.
// It returns ErrNotPlaced when the entity was never simulated.
func (s *PositionStore) Drag(id string, p geom.Point) error {
	if _, ok := s.entries[id]; !ok {
		return ErrNotPlaced
	}
	s.entries[id] = placed{pos: p, state: Dragged}
	return nil
}

// Overridden reports whether id was last positioned by the user.
func (s *PositionStore) Overridden(id string) bool {
	return s.entries[id].state == Dragged
}

// ClearOverride moves a dragged entity back to the Simulated state, keeping
// its coordinates until the next commit. It reports whether id was dragged.
func (s *PositionStore) ClearOverride(id string) bool {
	e, ok := s.entries[id]
	if !ok || e.state != Dragged {
		return false
	}
	e.state = Simulated
	s.entries[id] = e
	return true
}

// Overrides returns the ids currently in the Dragged state.
func (s *PositionStore) Overrides() idset.Set {
	out := make(idset.Set)
	for id, e := range s.entries {
		if e.state == Dragged {
			out.Add(id)
		}
	}
	return out
}

// Remove forgets id entirely and reports whether it was stored.
func (s *PositionStore) Remove(id string) bool {
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

// IDs returns every stored id in ascending order.
func (s *PositionStore) IDs() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

// Len returns the number of stored entities.
func (s *PositionStore) Len() int { return len(s.entries) }
