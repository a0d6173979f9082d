package layout

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

// alphaMin is the cooling floor reached after the last iteration.
const alphaMin = 0.001

// Node is one entity in the simulation input.
type Node struct {
	ID       string            `json:"id"`
	Category topology.Category `json:"category"`
	Position geom.Point        `json:"position"`
	// Placed marks Position as a last-known coordinate. Unplaced nodes start
	// on a ring around the fixed nodes.
	Placed bool `json:"placed,omitempty"`
	// Fixed nodes are pinned: they push and pull but never move.
	Fixed bool `json:"fixed,omitempty"`
}

// Link is a spring between two nodes.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Input is the graph handed to Simulate.
type Input struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

type body struct {
	id     string
	pos    geom.Point
	vel    geom.Point
	radius float64
	fixed  bool
}

type spring struct{ s, t int }

// Simulate runs the force simulation and returns a coordinate for every
// non-fixed node of in. Links referencing unknown nodes are ignored.
func Simulate(in Input, cfg Config) map[string]geom.Point {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultConfig().Iterations
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xdeadbeef))

	nodes := slices.Clone(in.Nodes)
	slices.SortStableFunc(nodes, func(a, b Node) int { return cmp.Compare(a.ID, b.ID) })
	nodes = slices.CompactFunc(nodes, func(a, b Node) bool { return a.ID == b.ID })

	bodies := make([]*body, len(nodes))
	index := make(map[string]int, len(nodes))
	var anchors []geom.Point
	for i, n := range nodes {
		bodies[i] = &body{id: n.ID, pos: n.Position, radius: cfg.Radius(n.Category), fixed: n.Fixed}
		index[n.ID] = i
		if n.Fixed {
			anchors = append(anchors, n.Position)
		}
	}
	center := geom.Centroid(anchors)
	if len(anchors) == 0 {
		var placed []geom.Point
		for _, n := range nodes {
			if n.Placed {
				placed = append(placed, n.Position)
			}
		}
		center = geom.Centroid(placed)
	}
	for i, n := range nodes {
		if !n.Fixed && !n.Placed {
			bodies[i].pos = ringPosition(center, cfg.InitialRadius, rng)
		}
	}

	springs := buildSprings(in.Links, index)

	alpha := 1.0
	decay := 1 - math.Pow(alphaMin, 1/float64(cfg.Iterations))
	for range cfg.Iterations {
		alpha -= alpha * decay
		applyRepulsion(bodies, cfg.Repulsion*alpha, rng)
		applySprings(bodies, springs, cfg.LinkDistance, cfg.LinkStrength*alpha, rng)
		applyCollision(bodies, cfg.CollisionStrength, rng)
		applyCentering(bodies, center, cfg.CenterStrength*alpha)
		integrate(bodies, cfg.VelocityDecay)
	}

	out := make(map[string]geom.Point, len(bodies))
	for i, b := range bodies {
		if b.fixed {
			continue
		}
		p := b.pos
		if !p.IsFinite() {
			p = nodes[i].Position
		}
		out[b.id] = p
	}
	return out
}

func ringPosition(center geom.Point, radius float64, rng *rand.Rand) geom.Point {
	angle := rng.Float64() * 2 * math.Pi
	r := radius * (0.75 + 0.5*rng.Float64())
	return geom.Pt(center.X+r*math.Cos(angle), center.Y+r*math.Sin(angle))
}

func buildSprings(links []Link, index map[string]int) []spring {
	sorted := slices.Clone(links)
	slices.SortFunc(sorted, func(a, b Link) int {
		return cmp.Or(cmp.Compare(a.Source, b.Source), cmp.Compare(a.Target, b.Target))
	})
	var out []spring
	for _, l := range sorted {
		s, okS := index[l.Source]
		t, okT := index[l.Target]
		if !okS || !okT || s == t {
			continue
		}
		out = append(out, spring{s: s, t: t})
	}
	return out
}

// jiggle returns a tiny random offset used to separate coincident nodes.
func jiggle(rng *rand.Rand) float64 { return (rng.Float64() - 0.5) * 1e-6 }

// shares splits a displacement between two bodies according to which of
// them may move.
func shares(a, b *body) (float64, float64) {
	switch {
	case a.fixed && b.fixed:
		return 0, 0
	case a.fixed:
		return 0, 1
	case b.fixed:
		return 1, 0
	default:
		return 0.5, 0.5
	}
}

func applyRepulsion(bodies []*body, strength float64, rng *rand.Rand) {
	if strength == 0 {
		return
	}
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			wa, wb := shares(a, b)
			if wa == 0 && wb == 0 {
				continue
			}
			d := b.pos.Sub(a.pos)
			if d.X == 0 && d.Y == 0 {
				d = geom.Pt(jiggle(rng), jiggle(rng))
			}
			l2 := max(d.X*d.X+d.Y*d.Y, 1)
			f := d.Scale(strength / l2)
			a.vel = a.vel.Sub(f.Scale(2 * wa))
			b.vel = b.vel.Add(f.Scale(2 * wb))
		}
	}
}

func applySprings(bodies []*body, springs []spring, rest, strength float64, rng *rand.Rand) {
	if strength == 0 {
		return
	}
	for _, sp := range springs {
		s, t := bodies[sp.s], bodies[sp.t]
		ws, wt := shares(s, t)
		if ws == 0 && wt == 0 {
			continue
		}
		d := t.pos.Add(t.vel).Sub(s.pos.Add(s.vel))
		if d.X == 0 && d.Y == 0 {
			d = geom.Pt(jiggle(rng), jiggle(rng))
		}
		l := d.Len()
		f := d.Scale((l - rest) / l * strength)
		t.vel = t.vel.Sub(f.Scale(wt))
		s.vel = s.vel.Add(f.Scale(ws))
	}
}

func applyCollision(bodies []*body, strength float64, rng *rand.Rand) {
	if strength == 0 {
		return
	}
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			wa, wb := shares(a, b)
			if wa == 0 && wb == 0 {
				continue
			}
			r := a.radius + b.radius
			d := b.pos.Add(b.vel).Sub(a.pos.Add(a.vel))
			l2 := d.X*d.X + d.Y*d.Y
			if l2 >= r*r {
				continue
			}
			if l2 == 0 {
				d = geom.Pt(jiggle(rng), jiggle(rng))
				l2 = d.X*d.X + d.Y*d.Y
			}
			l := math.Sqrt(l2)
			push := d.Scale((r - l) / l * strength)
			a.vel = a.vel.Sub(push.Scale(wa))
			b.vel = b.vel.Add(push.Scale(wb))
		}
	}
}

func applyCentering(bodies []*body, center geom.Point, strength float64) {
	if strength == 0 {
		return
	}
	for _, b := range bodies {
		if b.fixed {
			continue
		}
		b.vel = b.vel.Add(center.Sub(b.pos).Scale(strength))
	}
}

func integrate(bodies []*body, velocityDecay float64) {
	for _, b := range bodies {
		if b.fixed {
			b.vel = geom.Point{}
			continue
		}
		b.vel = b.vel.Scale(1 - velocityDecay)
		b.pos = b.pos.Add(b.vel)
	}
}
