// Package connect builds styled, anchored connections between entities from
// the relationship rules of a topology registry.
package connect

import (
	"fmt"
	"math"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/model"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

// Locator reports the current position of an entity, if it has one.
type Locator func(id string) (geom.Point, bool)

// Endpoint is one end of a connection request.
type Endpoint struct {
	ID       string
	Category topology.Category
}

// Factory creates connections validated against a registry.
type Factory struct {
	registry *topology.Registry
}

// NewFactory returns a factory bound to registry.
func NewFactory(registry *topology.Registry) *Factory {
	return &Factory{registry: registry}
}

// ID returns the deterministic connection id for a relationship.
func ID(kind topology.Kind, source, target string) string {
	return fmt.Sprintf("%s:%s->%s", kind, source, target)
}

// Create returns the connection from source to target. It reports false when
// the registry allows no relationship between the two categories; that is an
// expected outcome which callers log and skip.
//
// locate may be nil, in which case the default handles are used.
func (f *Factory) Create(source, target Endpoint, locate Locator) (model.Connection, bool) {
	allowed, ok := f.registry.Allowed(source.Category, target.Category)
	if !ok {
		return model.Connection{}, false
	}
	style := f.registry.Style(allowed.Kind)
	c := model.Connection{
		ID:       ID(allowed.Kind, source.ID, target.ID),
		Source:   source.ID,
		Target:   target.ID,
		Kind:     allowed.Kind,
		Directed: style.Directed,
		Style:    style,
	}
	c.SourceHandle, c.TargetHandle = model.SideRight, model.SideLeft
	if locate != nil {
		sp, okS := locate(source.ID)
		tp, okT := locate(target.ID)
		if okS && okT {
			c.SourceHandle, c.TargetHandle = Handles(sp, tp)
		}
	}
	return c, true
}

// Handles picks the sides a connection leaves from and enters at, based on
// which axis dominates the offset between the two positions. Y grows
// downward.
func Handles(source, target geom.Point) (model.Side, model.Side) {
	d := target.Sub(source)
	if math.Abs(d.X) >= math.Abs(d.Y) {
		if d.X >= 0 {
			return model.SideRight, model.SideLeft
		}
		return model.SideLeft, model.SideRight
	}
	if d.Y > 0 {
		return model.SideBottom, model.SideTop
	}
	return model.SideTop, model.SideBottom
}
