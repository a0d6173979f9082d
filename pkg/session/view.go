package session

import (
	"github.com/matzehuels/mindscape/pkg/core/content"
	"github.com/matzehuels/mindscape/pkg/core/idset"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

// view is the topology.Graph the manager sees during one recompute. It
// replaces the content graph's "applies" candidates with the links created
// by toggle state and keeps every other static relationship. Its members
// start as the whole content graph and are narrowed with restrict once the
// rendered set is known.
type view struct {
	graph    *content.Graph
	ids      []string
	members  idset.Set
	outgoing map[string][]topology.Link
	incoming map[string][]topology.Link
}

func newView(g *content.Graph, toggled []topology.Link) *view {
	v := &view{
		graph:    g,
		outgoing: make(map[string][]topology.Link),
		incoming: make(map[string][]topology.Link),
	}
	v.restrict(g.IDs())
	for _, e := range g.Edges() {
		if e.Kind == topology.KindApplies {
			continue
		}
		v.add(topology.Link{Source: e.From, Target: e.To, Kind: e.Kind})
	}
	for _, l := range toggled {
		v.add(l)
	}
	return v
}

// restrict limits the view to ids.
func (v *view) restrict(ids []string) {
	v.ids = ids
	v.members = idset.New(ids...)
}

func (v *view) add(l topology.Link) {
	v.outgoing[l.Source] = append(v.outgoing[l.Source], l)
	v.incoming[l.Target] = append(v.incoming[l.Target], l)
}

func (v *view) IDs() []string { return v.ids }

func (v *view) Category(id string) (topology.Category, bool) {
	if !v.members.Has(id) {
		return "", false
	}
	return v.graph.Category(id)
}

func (v *view) Outgoing(id string) []topology.Link { return v.outgoing[id] }

func (v *view) Incoming(id string) []topology.Link { return v.incoming[id] }

var _ topology.Graph = (*view)(nil)
