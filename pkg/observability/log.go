package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every hook call to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnEvent(_ context.Context, kind string, accepted bool) {
	h.logger.Debug("event", "kind", kind, "accepted", accepted)
}

func (h *LogHooks) OnRecompute(_ context.Context, visible, recalculated int, d time.Duration) {
	h.logger.Debug("recompute", "visible", visible, "recalculated", recalculated, "took", d)
}

func (h *LogHooks) OnSimulate(_ context.Context, nodes int, d time.Duration, cached bool) {
	h.logger.Debug("simulate", "nodes", nodes, "took", d, "cached", cached)
}

func (h *LogHooks) OnReconcile(_ context.Context, added, replaced, removed int) {
	h.logger.Debug("reconcile", "added", added, "replaced", replaced, "removed", removed)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var _ Hooks = (*LogHooks)(nil)
