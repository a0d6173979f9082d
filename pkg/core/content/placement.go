package content

import (
	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/idset"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

// Lanes controls automatic anchor placement.
type Lanes struct {
	// PhaseGap is the horizontal distance between phase columns.
	PhaseGap float64 `toml:"phase_gap" json:"phase_gap" validate:"gt=0"`
	// RowGap is the vertical distance between stacked anchors.
	RowGap float64 `toml:"row_gap" json:"row_gap" validate:"gt=0"`
	// Indent shifts components right of their sub-phase.
	Indent float64 `toml:"indent" json:"indent" validate:"gte=0"`
}

// DefaultLanes returns the placement used when none is configured.
func DefaultLanes() Lanes {
	return Lanes{PhaseGap: 640, RowGap: 180, Indent: 120}
}

// PlaceAnchors assigns a position to every anchor that has none. Phases get
// one column each, ordered by "precedes"; a phase's sub-phases and their
// components stack below it. Anchors reachable from no phase go on a final
// row underneath. Anchors that already have a position keep it. It returns
// the IDs it placed.
func (g *Graph) PlaceAnchors(l Lanes) []string {
	var placed []string
	set := func(n *Node, p geom.Point) {
		if n.Position == nil {
			n.Position = &p
			placed = append(placed, n.ID)
		}
	}

	visited := make(idset.Set)
	maxY := 0.0
	for col, phase := range g.phaseOrder() {
		n := g.nodes[phase]
		x := float64(col) * l.PhaseGap
		set(n, geom.Pt(x, 0))
		visited.Add(phase)
		y := 0.0
		for _, sub := range g.childrenOf(phase, topology.CategorySubPhase) {
			if !visited.Add(sub) {
				continue
			}
			y += l.RowGap
			set(g.nodes[sub], geom.Pt(x, y))
			for _, comp := range g.childrenOf(sub, topology.CategoryComponent) {
				if !visited.Add(comp) {
					continue
				}
				y += l.RowGap
				set(g.nodes[comp], geom.Pt(x+l.Indent, y))
			}
		}
		maxY = max(maxY, y)
	}

	col := 0
	for _, id := range g.Anchors() {
		if visited.Has(id) {
			continue
		}
		set(g.nodes[id], geom.Pt(float64(col)*l.PhaseGap, maxY+2*l.RowGap))
		col++
	}
	return placed
}

// phaseOrder returns phases topologically sorted by "precedes", breaking
// ties by insertion order. Phases on a cycle are appended in insertion
// order.
func (g *Graph) phaseOrder() []string {
	var phases []string
	indeg := make(map[string]int)
	for _, id := range g.order {
		if g.nodes[id].Category == topology.CategoryPhase {
			phases = append(phases, id)
			indeg[id] += 0
		}
	}
	for _, e := range g.edges {
		if e.Kind == topology.KindPrecedes {
			if _, ok := indeg[e.To]; ok {
				if _, ok := indeg[e.From]; ok {
					indeg[e.To]++
				}
			}
		}
	}

	done := make(idset.Set)
	out := make([]string, 0, len(phases))
	for len(out) < len(phases) {
		progressed := false
		for _, id := range phases {
			if done.Has(id) || indeg[id] > 0 {
				continue
			}
			done.Add(id)
			out = append(out, id)
			progressed = true
			for _, next := range g.childrenOf(id, topology.CategoryPhase) {
				indeg[next]--
			}
			break
		}
		if !progressed {
			for _, id := range phases {
				if done.Add(id) {
					out = append(out, id)
				}
			}
		}
	}
	return out
}

// childrenOf returns targets of id's outgoing links whose category is c.
func (g *Graph) childrenOf(id string, c topology.Category) []string {
	var out []string
	for _, l := range g.outgoing[id] {
		if g.nodes[l.Target].Category == c {
			out = append(out, l.Target)
		}
	}
	return out
}
