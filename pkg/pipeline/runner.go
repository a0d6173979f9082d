package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindscape/pkg/buildinfo"
	"github.com/matzehuels/mindscape/pkg/cache"
	"github.com/matzehuels/mindscape/pkg/config"
	"github.com/matzehuels/mindscape/pkg/core/content"
	"github.com/matzehuels/mindscape/pkg/core/topology"
	"github.com/matzehuels/mindscape/pkg/graph"
	"github.com/matzehuels/mindscape/pkg/observability"
	"github.com/matzehuels/mindscape/pkg/session"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Hooks    observability.Hooks
	Config   *config.Config
	Registry *topology.Registry
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Hooks:    observability.NoopHooks{},
		Config:   config.Default(),
		Registry: topology.DefaultRegistry(),
	}
}

// NewRunnerFromConfig creates a runner whose cache follows cfg.Cache: none
// when disabled, a file cache when a directory is set, otherwise a bounded
// in-memory cache. Cache keys are scoped by build version.
func NewRunnerFromConfig(cfg *config.Config, logger *log.Logger) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var c cache.Cache
	switch {
	case !cfg.Cache.Enabled:
		c = cache.NewNullCache()
	case cfg.Cache.Dir != "":
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		c = fc
	default:
		mc, err := cache.NewMemoryCache(cfg.Cache.MaxEntries, cfg.Cache.MaxBytes)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		c = mc
	}

	r := NewRunner(c, cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":"), logger)
	r.Config = cfg
	return r, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete load → apply → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, events, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Events = len(events)

	r.Logger.Info("loaded content",
		"entities", g.NodeCount(),
		"relationships", g.EdgeCount(),
		"events", len(events),
		"duration", result.Stats.LoadTime)

	// Stage 2: Apply
	applyStart := time.Now()
	s, err := r.Start(ctx, g)
	if err != nil {
		return nil, err
	}
	res, err := s.Apply(ctx, events...)
	if err != nil {
		return nil, fmt.Errorf("apply events: %w", err)
	}
	result.Session = s
	result.Snapshot = graph.NewSnapshot(s.ID(), res)
	result.Stats.ApplyTime = time.Since(applyStart)
	result.Stats.Entities = len(res.Model.Entities)
	result.Stats.Connections = len(res.Model.Connections)
	result.Stats.Rejected = len(res.Rejected)

	r.Logger.Info("applied events",
		"visible", result.Stats.Entities,
		"recalculated", len(res.Recalculated),
		"rejected", result.Stats.Rejected,
		"duration", result.Stats.ApplyTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, result.Snapshot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the content graph and, if opts.Events is set, the event
// script.
func (r *Runner) Load(opts Options) (*content.Graph, []session.Event, error) {
	g, err := graph.ReadContentFile(opts.Content, r.Registry)
	if err != nil {
		return nil, nil, fmt.Errorf("load content %s: %w", opts.Content, err)
	}
	if opts.Events == "" {
		return g, nil, nil
	}
	events, err := graph.ReadEventsFile(opts.Events)
	if err != nil {
		return nil, nil, fmt.Errorf("load events %s: %w", opts.Events, err)
	}
	return g, events, nil
}

// Start opens a session on g configured from the runner.
func (r *Runner) Start(ctx context.Context, g *content.Graph) (*session.Session, error) {
	return session.New(ctx, g,
		session.WithLogger(r.Logger),
		session.WithLayout(r.Config.Layout),
		session.WithLanes(r.Config.Anchors),
		session.WithCache(r.Cache, r.Keyer),
		session.WithHooks(r.Hooks),
	)
}
