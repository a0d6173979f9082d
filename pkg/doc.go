// Package pkg provides the core libraries for Mindscape framework diagrams.
//
// # Overview
//
// Mindscape lays out a knowledge framework as a node-link diagram. Phases,
// sub-phases and components form a fixed backbone; mental models and their
// visualizations are revealed on demand by toggles and placed by a force
// simulation. The pkg directory is organized into three main areas:
//
//  1. [core] - Domain logic (rules, visibility, layout, reconciliation)
//  2. [session] - The engine that sequences events into one recompute
//  3. [pipeline] - Orchestration for batch runs (load → apply → render)
//
// # Architecture
//
// The data flow of one recompute:
//
//	UI events (toggle, detail, drag)
//	         ↓
//	    [core/visibility] package (which entities should render)
//	         ↓
//	    [core/topology] package (eligibility, recalculation set, cascades)
//	         ↓
//	    [core/layout] package (force simulation for the affected entities)
//	         ↓
//	    [core/connect] package (styled connections between visible entities)
//	         ↓
//	    [core/reconcile] package (render model reusing unchanged entries)
//
// # Quick Start
//
//	g, _ := graph.ReadContentFile("framework.yaml", topology.DefaultRegistry())
//	s, _ := session.New(ctx, g)
//
//	res, _ := s.Apply(ctx,
//	    session.ToggleMentalModel{AnchorID: "discover", MentalModelID: "jtbd", On: true},
//	    session.ToggleDetail{MentalModelID: "jtbd", On: true},
//	)
//	for _, e := range res.Model.Entities {
//	    fmt.Println(e.ID, e.Position)
//	}
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/topology] - The rules registry: per category, the allowed
// relationships, required parents, cascade deletes, physics flag and
// recalculation triggers. The Manager answers eligibility and recalculation
// questions from it.
//
// [core/content] - The static content graph and deterministic anchor
// placement.
//
// [core/visibility] - Pure selectors from toggle state to the render set.
//
// [core/layout] - Fixed-iteration force simulation with pinned nodes.
//
// [core/reconcile] - Identity-preserving diff of render models.
//
// ## Infrastructure
//
// [cache] - Layout and render memoization (memory, file, null).
//
// [config] - TOML engine settings with validation.
//
// [observability] - Engine and cache hooks.
//
// [errors] - Coded errors shared by every package.
//
// ## Serialization and Export
//
// [graph] - JSON and YAML formats for content graphs, event scripts and
// render models.
//
// [render/nodelink] - Graphviz export with pinned positions.
//
// [render] - Format conversion (SVG to PDF/PNG).
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/topology/...      # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/core
// [core/topology]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/core/topology
// [core/content]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/core/content
// [core/visibility]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/core/visibility
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/core/layout
// [core/connect]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/core/connect
// [core/reconcile]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/core/reconcile
// [session]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/session
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/errors
// [graph]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/mindscape/pkg/render/nodelink
package pkg
