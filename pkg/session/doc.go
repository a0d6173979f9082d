// Package session runs one diagram session: it owns the toggle state, the
// position store and the previous render model, and turns inbound events
// into a new render model.
//
// # Pipeline
//
// Every call to [Session.Apply] first applies its events in order, then runs
// one recompute pass:
//
//  1. visibility: toggle state selects the secondaries and tertiaries to show
//  2. eligibility: the topology manager drops entities whose parents are hidden
//  3. recalculation: changed links decide which entities accept new positions
//  4. layout: the force simulation runs once for the whole visible graph
//  5. connections: the connection factory styles and anchors every link
//  6. reconciliation: unchanged entities and connections keep their pointers
//
// Several events passed to one Apply call share a single recompute pass.
//
// # Errors
//
// Invalid events (unknown ids, forbidden relationships, dragging an entity
// that was never placed) are logged, reported in [Result.Rejected] and
// otherwise ignored. Apply only returns an error when its context is done.
//
// # Concurrency
//
// A Session serializes Apply calls with a mutex. The returned render model
// must be treated as read-only.
package session
