package session

import (
	"errors"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/topology"
	mserrors "github.com/matzehuels/mindscape/pkg/errors"
)

// Event kinds as they appear in event scripts and hook callbacks.
const (
	KindToggleMentalModel = "toggle_mental_model"
	KindToggleDetail      = "toggle_detail"
	KindDrag              = "drag"
)

// Event is an inbound UI event.
type Event interface {
	Kind() string
	apply(s *Session) error
}

// ToggleMentalModel switches a secondary entity on or off for one anchor.
type ToggleMentalModel struct {
	AnchorID      string
	MentalModelID string
	On            bool
}

// ToggleDetail switches the detail entities of a secondary on or off.
type ToggleDetail struct {
	MentalModelID string
	On            bool
}

// UserDragged moves a physics-controlled entity to a user-chosen position.
type UserDragged struct {
	EntityID string
	Position geom.Point
}

func (ToggleMentalModel) Kind() string { return KindToggleMentalModel }
func (ToggleDetail) Kind() string      { return KindToggleDetail }
func (UserDragged) Kind() string       { return KindDrag }

// expect returns the category of id, or a coded error when id is unknown or
// does not have role.
func (s *Session) expect(id string, role topology.Role) (topology.Category, error) {
	n, ok := s.graph.Node(id)
	if !ok {
		return "", mserrors.New(mserrors.ErrCodeUnknownEntity, "entity %q is not in the content graph", id)
	}
	if got := s.registry.Role(n.Category); got != role {
		return "", mserrors.New(mserrors.ErrCodeInvalidInput, "entity %q is a %s, not a %s", id, got, role)
	}
	return n.Category, nil
}

func (e ToggleMentalModel) apply(s *Session) error {
	ac, err := s.expect(e.AnchorID, topology.RoleAnchor)
	if err != nil {
		return err
	}
	sc, err := s.expect(e.MentalModelID, topology.RoleSecondary)
	if err != nil {
		return err
	}
	if !s.registry.AllowedKind(ac, sc, topology.KindApplies) {
		return mserrors.New(mserrors.ErrCodeInvalidRelationship,
			"%s %q cannot apply %s %q", ac, e.AnchorID, sc, e.MentalModelID)
	}

	if e.On {
		if !s.toggles.On(e.AnchorID, e.MentalModelID) {
			s.logger.Debug("toggle already on", "anchor", e.AnchorID, "id", e.MentalModelID)
		}
		return nil
	}
	removed, last := s.toggles.Off(e.AnchorID, e.MentalModelID)
	if !removed {
		s.logger.Debug("toggle already off", "anchor", e.AnchorID, "id", e.MentalModelID)
		return nil
	}
	if last {
		s.dropSecondary(e.MentalModelID)
	}
	return nil
}

// dropSecondary clears everything that depends on a secondary that lost its
// last anchor: its detail toggle, its cascade dependents and their
// positions.
func (s *Session) dropSecondary(id string) {
	s.details.Remove(id)
	s.positions.Remove(id)
	deps := s.manager.CascadeDelete(id, s.graph)
	for _, dep := range deps {
		s.details.Remove(dep)
		s.positions.Remove(dep)
	}
	s.logger.Debug("cascade delete", "id", id, "dependents", deps)
}

func (e ToggleDetail) apply(s *Session) error {
	if _, err := s.expect(e.MentalModelID, topology.RoleSecondary); err != nil {
		return err
	}
	if e.On {
		if len(s.graph.TertiariesOf(e.MentalModelID)) == 0 {
			return mserrors.New(mserrors.ErrCodeInvalidInput, "entity %q has no detail entities", e.MentalModelID)
		}
		s.details.Add(e.MentalModelID)
		return nil
	}
	s.details.Remove(e.MentalModelID)
	return nil
}

func (e UserDragged) apply(s *Session) error {
	n, ok := s.graph.Node(e.EntityID)
	if !ok {
		return mserrors.New(mserrors.ErrCodeUnknownEntity, "entity %q is not in the content graph", e.EntityID)
	}
	if !s.registry.Physics(n.Category) {
		return mserrors.New(mserrors.ErrCodeFixedEntity, "entity %q has a fixed position", e.EntityID)
	}
	if !e.Position.IsFinite() {
		return mserrors.New(mserrors.ErrCodeInvalidInput, "drag of %q to a non-finite position", e.EntityID)
	}
	if err := s.positions.Drag(e.EntityID, e.Position); err != nil {
		if errors.Is(err, topology.ErrNotPlaced) {
			return mserrors.Wrap(mserrors.ErrCodeNotPlaced, err, "drag of %q", e.EntityID)
		}
		return mserrors.Wrap(mserrors.ErrCodeInternal, err, "drag of %q", e.EntityID)
	}
	return nil
}
