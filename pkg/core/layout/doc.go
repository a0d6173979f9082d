// Package layout computes 2-D positions for physics-controlled entities
// with a fixed-iteration force simulation.
//
// # Forces
//
// Each iteration applies, in order:
//
//   - pairwise repulsion between every pair of nodes
//   - spring attraction along links toward [Config.LinkDistance]
//   - collision separation using per-category radii
//   - a weak pull toward the centroid of the fixed nodes
//
// Fixed nodes (anchors) take part in every force as sources but never move.
//
// # Determinism
//
// The simulation runs exactly [Config.Iterations] steps with a cooling
// schedule, never to a convergence threshold, so its cost is bounded and
// predictable. All randomness (initial ring placement and the jiggle used to
// separate coincident nodes) comes from a PCG source seeded with
// [Config.Seed]; the same input and seed always produce the same output.
//
// # Statelessness
//
// [Simulate] keeps no state between calls. Callers pass the last known
// positions in and decide which of the returned coordinates to commit.
package layout
