package session

import (
	"cmp"
	"context"
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/mindscape/pkg/cache"
	"github.com/matzehuels/mindscape/pkg/core/connect"
	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/idset"
	"github.com/matzehuels/mindscape/pkg/core/layout"
	"github.com/matzehuels/mindscape/pkg/core/model"
	"github.com/matzehuels/mindscape/pkg/core/reconcile"
	"github.com/matzehuels/mindscape/pkg/core/topology"
	"github.com/matzehuels/mindscape/pkg/core/visibility"
)

const keyTypeLayout = "layout"

// recompute derives the next render model from the current state.
func (s *Session) recompute(ctx context.Context) (*Result, error) {
	start := time.Now()

	secondaries := visibility.VisibleSecondaries(s.toggles)
	tertiaries := visibility.VisibleTertiaries(s.details, secondaries, s.graph.TertiariesOf)
	candidates := visibility.RenderSet(s.graph.Anchors(), secondaries, tertiaries)

	toggled := s.toggleLinks()
	v := newView(s.graph, toggled)
	rendered := visibility.FilterEligible(candidates, func(id string, visible idset.Set) bool {
		return s.manager.Eligible(id, v, visible.Has)
	})
	if dropped := len(candidates) - len(rendered); dropped > 0 {
		s.logger.Debug("ineligible entities hidden", "count", dropped)
	}
	shown := idset.New(rendered...)
	v.restrict(rendered)

	for _, id := range s.positions.IDs() {
		if !shown.Has(id) {
			s.positions.Remove(id)
		}
	}

	links := s.visibleLinks(toggled, shown)
	recalc := s.manager.RecalculationSet(diffLinks(s.prevLinks, links), v, s.positions)
	commit := make(idset.Set)
	for _, id := range rendered {
		n, _ := s.graph.Node(id)
		if !s.registry.Physics(n.Category) {
			continue
		}
		if recalc.Has(id) || s.positions.Placement(id) == topology.Unplaced {
			commit.Add(id)
		}
	}

	if commit.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := s.simulate(ctx, s.layoutInput(rendered, links))
		if err != nil {
			return nil, err
		}
		for _, id := range commit.Sorted() {
			s.positions.Place(id, out[id])
		}
		s.logger.Debug("committed positions", "ids", commit.Sorted())
	}

	next, stats := reconcile.Reconcile(s.prev, s.frame(rendered, links))
	s.prev = next
	s.prevLinks = make(map[topology.Link]bool, len(links))
	for _, l := range links {
		s.prevLinks[l] = true
	}

	s.hooks.OnReconcile(ctx,
		stats.Entities.Added+stats.Connections.Added,
		stats.Entities.Replaced+stats.Connections.Replaced,
		stats.Entities.Removed+stats.Connections.Removed)
	s.hooks.OnRecompute(ctx, len(rendered), commit.Len(), time.Since(start))
	s.logger.Debug("recomputed", "visible", len(rendered), "stats", stats.String())

	return &Result{Model: next, Stats: stats, Recalculated: commit.Sorted()}, nil
}

// toggleLinks returns one link per (anchor, secondary) toggle, ordered by
// secondary then anchor.
func (s *Session) toggleLinks() []topology.Link {
	pairs := s.toggles.Pairs()
	out := make([]topology.Link, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, topology.Link{Source: p.Anchor, Target: p.Secondary, Kind: topology.KindApplies})
	}
	return out
}

// visibleLinks returns the toggle links and static relationships whose
// endpoints are both shown: toggle links first, then content edges in
// insertion order.
func (s *Session) visibleLinks(toggled []topology.Link, shown idset.Set) []topology.Link {
	var out []topology.Link
	for _, l := range toggled {
		if shown.Has(l.Source) && shown.Has(l.Target) {
			out = append(out, l)
		}
	}
	for _, e := range s.graph.Edges() {
		if e.Kind == topology.KindApplies || !shown.Has(e.From) || !shown.Has(e.To) {
			continue
		}
		out = append(out, topology.Link{Source: e.From, Target: e.To, Kind: e.Kind})
	}
	return out
}

// diffLinks lists the links added and removed between two frames in a
// stable order.
func diffLinks(prev map[topology.Link]bool, next []topology.Link) []topology.Change {
	cur := make(map[topology.Link]bool, len(next))
	var out []topology.Change
	for _, l := range next {
		cur[l] = true
		if !prev[l] {
			out = append(out, topology.Change{Link: l, Added: true})
		}
	}
	for _, l := range slices.SortedFunc(maps.Keys(prev), compareLinks) {
		if !cur[l] {
			out = append(out, topology.Change{Link: l, Added: false})
		}
	}
	return out
}

func compareLinks(a, b topology.Link) int {
	return cmp.Or(
		cmp.Compare(a.Source, b.Source),
		cmp.Compare(a.Target, b.Target),
		cmp.Compare(a.Kind, b.Kind),
	)
}

// layoutInput builds the simulation graph: anchors pinned at their content
// position, physics entities at their last committed position if any.
func (s *Session) layoutInput(rendered []string, links []topology.Link) layout.Input {
	in := layout.Input{
		Nodes: make([]layout.Node, 0, len(rendered)),
		Links: make([]layout.Link, 0, len(links)),
	}
	for _, id := range rendered {
		n, _ := s.graph.Node(id)
		node := layout.Node{ID: id, Category: n.Category}
		if !s.registry.Physics(n.Category) {
			node.Fixed, node.Placed = true, true
			if n.Position != nil {
				node.Position = *n.Position
			}
		} else if p, ok := s.positions.Get(id); ok {
			node.Position, node.Placed = p, true
		}
		in.Nodes = append(in.Nodes, node)
	}
	for _, l := range links {
		in.Links = append(in.Links, layout.Link{Source: l.Source, Target: l.Target})
	}
	return in
}

// simulate runs the layout engine, consulting the cache first. Cache
// failures are logged and never fail the recompute.
func (s *Session) simulate(ctx context.Context, in layout.Input) (map[string]geom.Point, error) {
	start := time.Now()
	inputHash, err := cache.HashJSON(in)
	if err != nil {
		return nil, err
	}
	key := s.keyer.LayoutKey(inputHash, s.configHash)

	if data, hit, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("layout cache read failed", "err", err)
	} else if hit {
		var out map[string]geom.Point
		if err := json.Unmarshal(data, &out); err == nil {
			s.hooks.OnCacheHit(ctx, keyTypeLayout)
			s.hooks.OnSimulate(ctx, len(in.Nodes), time.Since(start), true)
			return out, nil
		}
		s.logger.Warn("discarding corrupt layout cache entry", "key", key)
		_ = s.cache.Delete(ctx, key)
	}
	s.hooks.OnCacheMiss(ctx, keyTypeLayout)

	out := layout.Simulate(in, s.layout)
	s.hooks.OnSimulate(ctx, len(in.Nodes), time.Since(start), false)

	if data, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, key, data, 0); err != nil {
			s.logger.Warn("layout cache write failed", "err", err)
		} else {
			s.hooks.OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}
	return out, nil
}

// frame builds the desired render state for the shown entities.
func (s *Session) frame(rendered []string, links []topology.Link) reconcile.Frame {
	f := reconcile.Frame{
		Entities:    make([]model.Entity, 0, len(rendered)),
		Connections: make([]model.Connection, 0, len(links)),
	}
	for _, id := range rendered {
		n, _ := s.graph.Node(id)
		e := model.Entity{
			ID:       id,
			Category: n.Category,
			Label:    n.DisplayLabel(),
			Physics:  s.registry.Physics(n.Category),
			Attrs:    n.Attrs,
		}
		if p, ok := s.locate(id); ok {
			e.Position = p
		}
		f.Entities = append(f.Entities, e)
	}

	for _, l := range links {
		sc, _ := s.graph.Category(l.Source)
		tc, _ := s.graph.Category(l.Target)
		c, ok := s.factory.Create(
			connect.Endpoint{ID: l.Source, Category: sc},
			connect.Endpoint{ID: l.Target, Category: tc},
			s.locate,
		)
		if !ok {
			s.logger.Warn("relationship not allowed, edge omitted", "source", l.Source, "target", l.Target, "kind", l.Kind)
			continue
		}
		if c.Kind != l.Kind {
			s.logger.Warn("relationship kind mismatch, edge omitted", "source", l.Source, "target", l.Target, "want", l.Kind, "got", c.Kind)
			continue
		}
		f.Connections = append(f.Connections, c)
	}
	return f
}

// locate returns the position of an anchor from content, or of a physics
// entity from the position store.
func (s *Session) locate(id string) (geom.Point, bool) {
	n, ok := s.graph.Node(id)
	if !ok {
		return geom.Point{}, false
	}
	if !s.registry.Physics(n.Category) {
		if n.Position == nil {
			return geom.Point{}, false
		}
		return *n.Position, true
	}
	return s.positions.Get(id)
}
