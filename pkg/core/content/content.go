package content

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the same
	// relationship was already added.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrUnknownCategory is reported by [Graph.Validate] for nodes whose
	// category has no registry rule.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrForbiddenEdge is reported by [Graph.Validate] for relationships the
	// registry does not allow between the two categories.
	ErrForbiddenEdge = errors.New("relationship not allowed")

	// ErrMissingParent is reported by [Graph.Validate] for anchors whose
	// required structural parents are absent.
	ErrMissingParent = errors.New("anchor is missing a required parent")

	// ErrInvalidPosition is reported by [Graph.Validate] for non-finite
	// coordinates.
	ErrInvalidPosition = errors.New("position must be finite")
)

// Node is an entity of the content graph.
type Node struct {
	ID       string
	Category topology.Category
	Label    string
	// Position is the fixed coordinate of an anchor. It is ignored for
	// physics-controlled categories.
	Position *geom.Point
	Attrs    map[string]string
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a static relationship between two nodes.
type Edge struct {
	From string
	To   string
	Kind topology.Kind
}

// Graph is the content graph of one diagram.
//
// The zero value is not usable; use New.
type Graph struct {
	registry *topology.Registry
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]topology.Link
	incoming map[string][]topology.Link
}

// New creates an empty graph whose roles and validation follow registry.
func New(registry *topology.Registry) *Graph {
	return &Graph{
		registry: registry,
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]topology.Link),
		incoming: make(map[string][]topology.Link),
	}
}

// Registry returns the rule table the graph was built against.
func (g *Graph) Registry() *topology.Registry { return g.registry }

// AddNode adds a node. The node's Attrs map is copied.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if n.Position != nil {
		p := *n.Position
		n.Position = &p
	}
	n.Attrs = maps.Clone(n.Attrs)
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds a relationship between two existing nodes. Whether the
// registry allows it is checked by Validate, not here.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSourceNode, e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTargetNode, e.To)
	}
	if slices.Contains(g.edges, e) {
		return fmt.Errorf("%w: %s %s->%s", ErrDuplicateEdge, e.Kind, e.From, e.To)
	}
	g.edges = append(g.edges, e)
	l := topology.Link{Source: e.From, Target: e.To, Kind: e.Kind}
	g.outgoing[e.From] = append(g.outgoing[e.From], l)
	g.incoming[e.To] = append(g.incoming[e.To], l)
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IDs returns every node ID in insertion order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// Category returns the category of id.
func (g *Graph) Category(id string) (topology.Category, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return "", false
	}
	return n.Category, true
}

// Outgoing returns the links leaving id. The slice must not be modified.
func (g *Graph) Outgoing(id string) []topology.Link { return g.outgoing[id] }

// Incoming returns the links entering id. The slice must not be modified.
func (g *Graph) Incoming(id string) []topology.Link { return g.incoming[id] }

// Role returns the registry role of id, or the empty role for unknown ids.
func (g *Graph) Role(id string) topology.Role {
	n, ok := g.nodes[id]
	if !ok {
		return ""
	}
	return g.registry.Role(n.Category)
}

// ByRole returns the IDs of every node with role r in insertion order.
func (g *Graph) ByRole(r topology.Role) []string {
	var out []string
	for _, id := range g.order {
		if g.registry.Role(g.nodes[id].Category) == r {
			out = append(out, id)
		}
	}
	return out
}

// Anchors returns the IDs of every anchor node in insertion order.
func (g *Graph) Anchors() []string { return g.ByRole(topology.RoleAnchor) }

// Candidates returns the secondaries anchor may toggle on: the targets of its
// outgoing "applies" relationships.
func (g *Graph) Candidates(anchor string) []string {
	var out []string
	for _, l := range g.outgoing[anchor] {
		if l.Kind == topology.KindApplies && g.Role(l.Target) == topology.RoleSecondary {
			out = append(out, l.Target)
		}
	}
	return out
}

// TertiariesOf returns the detail entities nested under secondary.
func (g *Graph) TertiariesOf(secondary string) []string {
	var out []string
	for _, l := range g.outgoing[secondary] {
		if g.Role(l.Target) == topology.RoleTertiary {
			out = append(out, l.Target)
		}
	}
	return out
}

// ParentsOf returns the secondaries a tertiary is nested under.
func (g *Graph) ParentsOf(tertiary string) []string {
	var out []string
	for _, l := range g.incoming[tertiary] {
		if g.Role(l.Source) == topology.RoleSecondary {
			out = append(out, l.Source)
		}
	}
	return out
}

// Validate checks every node and edge against the registry and returns all
// problems joined, or nil. Anchors must satisfy their parent requirements
// through static relationships, since they are always rendered.
func (g *Graph) Validate() error {
	var errs []error
	for _, id := range g.order {
		n := g.nodes[id]
		if !g.registry.Has(n.Category) {
			errs = append(errs, fmt.Errorf("%w: node %s has category %q", ErrUnknownCategory, id, n.Category))
		}
		if n.Position != nil && !n.Position.IsFinite() {
			errs = append(errs, fmt.Errorf("%w: node %s", ErrInvalidPosition, id))
		}
	}
	m := topology.NewManager(g.registry)
	all := func(string) bool { return true }
	for _, id := range g.Anchors() {
		if !m.Eligible(id, g, all) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingParent, id))
		}
	}
	for _, e := range g.edges {
		src, dst := g.nodes[e.From], g.nodes[e.To]
		if !g.registry.AllowedKind(src.Category, dst.Category, e.Kind) {
			errs = append(errs, fmt.Errorf("%w: %s %s(%s) -> %s(%s)",
				ErrForbiddenEdge, e.Kind, e.From, src.Category, e.To, dst.Category))
		}
	}
	return errors.Join(errs...)
}
