// Package topology holds the rules that decide what may connect to what in a
// framework diagram, and the decision logic built on top of them.
//
// # Registry
//
// A [Registry] is a read-only table with one [Rule] per entity [Category].
// Each rule declares:
//
//   - AllowedTargets: the (relationship kind, target category) pairs an
//     entity of this category may connect to
//   - RequiredParents: parent relationships that must be visible for the
//     entity to be eligible for rendering
//   - CascadeDelete: dependents removed together with the entity
//   - Physics: whether the layout engine positions the entity
//   - RecalcTriggers: topology events that force a new position
//
// The registry is an explicit value. Construct it once per process with
// [DefaultRegistry] or [NewRegistry] and pass it to every component that needs
// it; there is no package-level instance.
//
// # Manager
//
// [Manager] answers the three questions the engine asks on every event:
// is an entity eligible for visibility, which entities must accept a new
// layout position, and which dependents disappear with a removed entity.
// Positions and manual overrides live in a [PositionStore], which enforces
// the placement state machine:
//
//	Unplaced --simulate--> Simulated --drag--> Dragged
//	Dragged --qualifying topology event--> Simulated
//	Simulated|Dragged --cascade/ineligible--> (removed)
//
// There is no transition from Unplaced straight to Dragged.
package topology
