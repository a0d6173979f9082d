// Package model defines the render model: the positioned entities and styled
// connections handed to the rendering layer after every event.
package model

import (
	"maps"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

// Side is a boundary side of an entity where a connection attaches.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Entity is a renderable node.
type Entity struct {
	ID       string            `json:"id"`
	Category topology.Category `json:"category"`
	Label    string            `json:"label"`
	Physics  bool              `json:"physics"`
	Position geom.Point        `json:"position"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// Equal reports whether e and o describe the same rendered state.
func (e *Entity) Equal(o *Entity) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.ID == o.ID &&
		e.Category == o.Category &&
		e.Label == o.Label &&
		e.Physics == o.Physics &&
		e.Position == o.Position &&
		maps.Equal(e.Attrs, o.Attrs)
}

// Connection is a renderable, styled relationship between two entities.
// Connections are comparable with ==.
type Connection struct {
	ID           string             `json:"id"`
	Source       string             `json:"source"`
	Target       string             `json:"target"`
	Kind         topology.Kind      `json:"kind"`
	Directed     bool               `json:"directed"`
	Style        topology.EdgeStyle `json:"style"`
	SourceHandle Side               `json:"source_handle"`
	TargetHandle Side               `json:"target_handle"`
}

// Model is the rendered frame. Pointers are stable across frames for
// entries whose content did not change.
type Model struct {
	Entities    []*Entity     `json:"entities"`
	Connections []*Connection `json:"connections"`
}

// Entity returns the entity with id, or nil.
func (m *Model) Entity(id string) *Entity {
	if m == nil {
		return nil
	}
	for _, e := range m.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Connection returns the connection with id, or nil.
func (m *Model) Connection(id string) *Connection {
	if m == nil {
		return nil
	}
	for _, c := range m.Connections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// EntityIDs returns the entity ids in model order.
func (m *Model) EntityIDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, len(m.Entities))
	for i, e := range m.Entities {
		ids[i] = e.ID
	}
	return ids
}
