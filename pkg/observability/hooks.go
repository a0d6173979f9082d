// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. A diagram session
// reports event handling, simulation runs, cache lookups and reconciliation
// results through a [Hooks] value handed to it at construction.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Let the caller pass its implementation in explicitly
//
// # Usage
//
//	s, err := session.New(ctx, graph, session.WithHooks(observability.NewLogHooks(logger)))
//
// Embed [NoopHooks] to implement only the callbacks you need:
//
//	type counter struct {
//	    observability.NoopHooks
//	    runs int
//	}
//
//	func (c *counter) OnSimulate(context.Context, int, time.Duration, bool) { c.runs++ }
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from a diagram session.
type EngineHooks interface {
	// OnEvent records one inbound event and whether it was accepted.
	OnEvent(ctx context.Context, kind string, accepted bool)

	// OnRecompute records one recompute pass.
	OnRecompute(ctx context.Context, visible, recalculated int, duration time.Duration)

	// OnSimulate records one layout run. cached reports a memoized result.
	OnSimulate(ctx context.Context, nodeCount int, duration time.Duration, cached bool)

	// OnReconcile records how many render entries changed identity.
	OnReconcile(ctx context.Context, added, replaced, removed int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// Hooks is the full set of callbacks a session reports to.
type Hooks interface {
	EngineHooks
	CacheHooks
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopHooks ignores every event.
type NoopHooks struct{}

func (NoopHooks) OnEvent(context.Context, string, bool)                {}
func (NoopHooks) OnRecompute(context.Context, int, int, time.Duration) {}
func (NoopHooks) OnSimulate(context.Context, int, time.Duration, bool) {}
func (NoopHooks) OnReconcile(context.Context, int, int, int)           {}
func (NoopHooks) OnCacheHit(context.Context, string)                   {}
func (NoopHooks) OnCacheMiss(context.Context, string)                  {}
func (NoopHooks) OnCacheSet(context.Context, string, int)              {}

var _ Hooks = NoopHooks{}

// OrNoop returns h, or NoopHooks when h is nil.
func OrNoop(h Hooks) Hooks {
	if h == nil {
		return NoopHooks{}
	}
	return h
}
