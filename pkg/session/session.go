package session

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mindscape/pkg/cache"
	"github.com/matzehuels/mindscape/pkg/core/connect"
	"github.com/matzehuels/mindscape/pkg/core/content"
	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/layout"
	"github.com/matzehuels/mindscape/pkg/core/model"
	"github.com/matzehuels/mindscape/pkg/core/reconcile"
	"github.com/matzehuels/mindscape/pkg/core/topology"
	"github.com/matzehuels/mindscape/pkg/core/visibility"
	mserrors "github.com/matzehuels/mindscape/pkg/errors"
	"github.com/matzehuels/mindscape/pkg/observability"
)

// Session is the state of one diagram.
type Session struct {
	mu sync.Mutex

	id       string
	graph    *content.Graph
	registry *topology.Registry
	manager  *topology.Manager
	factory  *connect.Factory

	toggles   visibility.ToggleState
	details   visibility.DetailToggleState
	positions *topology.PositionStore

	prev      *model.Model
	prevLinks map[topology.Link]bool

	layout     layout.Config
	lanes      content.Lanes
	cache      cache.Cache
	keyer      cache.Keyer
	configHash string
	hooks      observability.Hooks
	logger     *log.Logger
}

// Result is the outcome of one Apply call.
type Result struct {
	// Model is the new render model.
	Model *model.Model
	// Stats counts reused, replaced, added and removed render entries.
	Stats reconcile.Stats
	// Recalculated lists the entities that accepted a new layout position.
	Recalculated []string
	// Rejected holds one coded error per event that was ignored.
	Rejected []error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLayout sets the force simulation settings.
func WithLayout(cfg layout.Config) Option {
	return func(s *Session) { s.layout = cfg }
}

// WithLanes sets the automatic anchor placement.
func WithLanes(l content.Lanes) Option {
	return func(s *Session) { s.lanes = l }
}

// WithCache memoizes simulation results in c. keyer may be nil.
func WithCache(c cache.Cache, keyer cache.Keyer) Option {
	return func(s *Session) {
		if c != nil {
			s.cache = c
		}
		if keyer != nil {
			s.keyer = keyer
		}
	}
}

// WithHooks reports engine activity to h.
func WithHooks(h observability.Hooks) Option {
	return func(s *Session) { s.hooks = observability.OrNoop(h) }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New validates g, places its anchors and renders the initial model, which
// contains the anchors only. g must not be modified afterwards.
func New(ctx context.Context, g *content.Graph, opts ...Option) (*Session, error) {
	s := &Session{
		id:        uuid.NewString(),
		graph:     g,
		registry:  g.Registry(),
		toggles:   make(visibility.ToggleState),
		details:   make(visibility.DetailToggleState),
		positions: topology.NewPositionStore(),
		prevLinks: make(map[topology.Link]bool),
		layout:    layout.DefaultConfig(),
		lanes:     content.DefaultLanes(),
		cache:     cache.NewNullCache(),
		keyer:     cache.NewDefaultKeyer(),
		hooks:     observability.NoopHooks{},
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.manager = topology.NewManager(s.registry)
	s.factory = connect.NewFactory(s.registry)
	s.logger = s.logger.With("session", s.id)

	if err := g.Validate(); err != nil {
		return nil, mserrors.Wrap(mserrors.ErrCodeInvalidContent, err, "content graph")
	}
	if placed := g.PlaceAnchors(s.lanes); len(placed) > 0 {
		s.logger.Debug("placed anchors", "count", len(placed))
	}
	hash, err := cache.HashJSON(s.layout)
	if err != nil {
		return nil, mserrors.Wrap(mserrors.ErrCodeInvalidConfig, err, "layout settings")
	}
	s.configHash = hash

	if _, err := s.recompute(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("session started", "entities", g.NodeCount(), "anchors", len(g.Anchors()))
	return s, nil
}

// Apply applies events in order and recomputes the render model once.
// With no events it re-renders the current state, which reuses every entry
// of the previous model.
func (s *Session) Apply(ctx context.Context, events ...Event) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rejected []error
	for _, ev := range events {
		err := ev.apply(s)
		s.hooks.OnEvent(ctx, ev.Kind(), err == nil)
		if err != nil {
			s.logger.Warn("event rejected", "kind", ev.Kind(), "err", err)
			rejected = append(rejected, err)
		}
	}
	res, err := s.recompute(ctx)
	if err != nil {
		return nil, err
	}
	res.Rejected = rejected
	return res, nil
}

// Render recomputes without applying any event.
func (s *Session) Render(ctx context.Context) (*Result, error) { return s.Apply(ctx) }

// =============================================================================
// Accessors
// =============================================================================

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Graph returns the content graph.
func (s *Session) Graph() *content.Graph { return s.graph }

// Model returns the current render model.
func (s *Session) Model() *model.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prev
}

// Toggles returns a copy of the toggle state.
func (s *Session) Toggles() visibility.ToggleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggles.Clone()
}

// Details returns a copy of the detail toggle state.
func (s *Session) Details() visibility.DetailToggleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details.Clone()
}

// Position returns the stored position of a physics-controlled entity.
func (s *Session) Position(id string) (geom.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positions.Get(id)
}

// Placement returns the position lifecycle state of id.
func (s *Session) Placement(id string) topology.Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positions.Placement(id)
}

// Overridden reports whether id was last positioned by the user.
func (s *Session) Overridden(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positions.Overridden(id)
}
