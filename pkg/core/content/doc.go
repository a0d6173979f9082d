// Package content holds the validated content graph a diagram session is
// built from: every entity the diagram may show and every static
// relationship between them.
//
// # Overview
//
// The content graph is created once per session and never changes
// structurally afterwards. Visibility is decided elsewhere; this package only
// answers structural questions:
//
//   - which entities are anchors, secondaries or tertiaries ([Graph.Role])
//   - which secondaries an anchor may toggle on ([Graph.Candidates])
//   - which tertiaries belong to a secondary ([Graph.TertiariesOf])
//
// [Graph] implements [topology.Graph], so the topology manager can evaluate
// parent requirements and cascade rules directly against it.
//
// # Basic Usage
//
//	g := content.New(topology.DefaultRegistry())
//	_ = g.AddNode(content.Node{ID: "discover", Category: topology.CategoryPhase})
//	_ = g.AddNode(content.Node{ID: "jtbd", Category: topology.CategoryMentalModel})
//	_ = g.AddEdge(content.Edge{From: "discover", To: "jtbd", Kind: topology.KindApplies})
//	if err := g.Validate(); err != nil { ... }
//	g.PlaceAnchors(content.DefaultLanes())
//
// # Validation
//
// [Graph.Validate] reports every problem at once via [errors.Join]: unknown
// categories, relationships the registry forbids, non-finite anchor
// coordinates and anchors whose required parents are missing. Anchors are
// always rendered, so their parents must exist in the content itself.
//
// # Anchor Placement
//
// Anchors are never moved by the layout engine. Anchors that arrive without
// a coordinate are assigned one by [Graph.PlaceAnchors], which lays phases
// out left to right in "precedes" order and stacks each phase's sub-phases
// and components below it.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Once built and validated it is
// read-only and may be shared.
package content
