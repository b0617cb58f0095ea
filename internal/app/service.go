// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	repository "github.com/okian/moviemood/internal/adapters/repository"
	"github.com/okian/moviemood/internal/domain/model"
	"github.com/okian/moviemood/internal/domain/scoring"
	"github.com/okian/moviemood/internal/domain/types"
	"github.com/okian/moviemood/pkg/logger"
	"github.com/okian/moviemood/pkg/metrics"
)

// Service scores the loaded catalog against viewer preferences. The catalog
// and engine are built once in Start and only read afterwards; mu guards
// the lifecycle flags, not the scoring path.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	engine *scoring.Engine

	// Configuration
	catalogPath string
	source      string
	limit       int
	rules       []scoring.Rule

	// State
	started   bool
	startedAt time.Time
	served    atomic.Int64
	failed    atomic.Int64

	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalogPath sets the JSON/YAML catalog file. Empty uses the embedded
// catalog.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithStore uses an already built catalog instead of loading one.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRecommendationLimit caps the number of recommendations per request.
func WithRecommendationLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithRules replaces the built-in rule table.
func WithRules(rules []scoring.Rule) Option {
	return func(s *Service) {
		s.rules = rules
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. Defaults to metrics.Default().
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a Service. Nothing is loaded until Start.
func New(opts ...Option) *Service {
	s := &Service{
		limit:   scoring.DefaultLimit,
		metrics: metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog and builds the rule engine. Calling Start on a
// started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting moviemood service...")

	begin := time.Now()
	if s.store == nil {
		store, err := repository.Open(ctx, s.catalogPath)
		if err != nil {
			return fmt.Errorf("service start: %w", err)
		}
		s.store = store
		s.source = catalogName(s.catalogPath)
	} else if s.source == "" {
		s.source = "preloaded"
	}
	loadTime := time.Since(begin)

	engineOpts := []scoring.Option{scoring.WithLimit(s.limit)}
	if s.rules != nil {
		engineOpts = append(engineOpts, scoring.WithRules(s.rules))
	}
	s.engine = scoring.NewEngine(engineOpts...)

	movies := s.store.Count(ctx)
	s.metrics.SetCatalog(movies, s.engine.RuleCount(), loadTime)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "moviemood service started",
		logger.Int("moviesLoaded", movies),
		logger.Int("rulesInitialized", s.engine.RuleCount()),
		logger.Int("limit", s.engine.Limit()),
		logger.String("catalog", s.source),
		logger.Duration("loadTime", loadTime),
	)

	return nil
}

// Stop marks the service stopped. The catalog is kept so a restart does
// not reload it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "moviemood service stopped",
		logger.Int("requestsServed", int(s.served.Load())),
	)
}

// Recommend scores the whole catalog for p and returns the ranked top
// matches. A panic inside a rule is reported as ErrScoringPanic instead of
// crashing the process.
func (s *Service) Recommend(ctx context.Context, p model.Preferences) (recs []model.Recommendation, err error) {
	engine, store, err := s.components()
	if err != nil {
		return nil, err
	}

	movies := store.All(ctx)
	begin := time.Now()

	defer func() {
		if r := recover(); r != nil {
			recs, err = nil, s.scoringPanicked(ctx, "recommend", r)
		}
	}()

	recs = engine.Recommend(p, movies)

	fired := make([][]string, len(recs))
	for i, r := range recs {
		fired[i] = r.FiredRules
	}
	s.metrics.ObserveRecommendation(len(movies), len(recs), time.Since(begin), fired)
	s.served.Add(1)

	s.logger.Debug(ctx, "recommendations computed",
		logger.String("mood", p.Mood),
		logger.Strings("genres", p.Genres),
		logger.Int("evaluated", len(movies)),
		logger.Int("returned", len(recs)),
	)

	return recs, nil
}

// Evaluate scores a single catalog movie for p, including rules that
// would not have been enough to rank it.
func (s *Service) Evaluate(ctx context.Context, p model.Preferences, movieID string) (ev model.Evaluation, err error) {
	engine, store, err := s.components()
	if err != nil {
		return model.Evaluation{}, err
	}
	m, err := store.Get(ctx, movieID)
	if err != nil {
		return model.Evaluation{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			ev, err = model.Evaluation{}, s.scoringPanicked(ctx, "evaluate", r)
		}
	}()

	return engine.Evaluate(p, m), nil
}

// scoringPanicked records a recovered rule panic and converts it into
// ErrScoringPanic.
func (s *Service) scoringPanicked(ctx context.Context, op string, r any) error {
	s.failed.Add(1)
	s.metrics.RecordScoringError()
	s.logger.Error(ctx, "scoring panicked",
		logger.String("op", op),
		logger.Any("panic", r),
		logger.String("stack", string(debug.Stack())),
	)
	return fmt.Errorf("%w: %v", ErrScoringPanic, r)
}

// Movie returns one catalog record by id.
func (s *Service) Movie(ctx context.Context, id string) (model.Movie, error) {
	_, store, err := s.components()
	if err != nil {
		return model.Movie{}, err
	}
	return store.Get(ctx, id)
}

// Options returns the presentation catalog of legal preference values.
func (s *Service) Options(_ context.Context) types.Options {
	return types.DefaultOptions()
}

// RuleNames returns the engine's rules in evaluation order.
func (s *Service) RuleNames(_ context.Context) []string {
	engine, _, err := s.components()
	if err != nil {
		return scoring.NewEngine(scoring.WithRules(s.rules)).RuleNames()
	}
	return engine.RuleNames()
}

// Health reports readiness together with catalog and rule counts.
func (s *Service) Health(ctx context.Context) types.Health {
	h := types.Health{
		Status:    types.StatusStarting,
		Timestamp: time.Now().UTC(),
	}
	engine, store, err := s.components()
	if err != nil {
		return h
	}
	h.Status = types.StatusHealthy
	h.MoviesLoaded = store.Count(ctx)
	h.RulesCount = engine.RuleCount()
	return h
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":        s.started,
		"limit":          s.limit,
		"requestsServed": s.served.Load(),
		"requestsFailed": s.failed.Load(),
		"catalogSource":  s.source,
	}

	if s.started {
		ctx := context.Background()
		stats["moviesLoaded"] = s.store.Count(ctx)
		stats["rulesCount"] = s.engine.RuleCount()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}

	return stats
}

func (s *Service) components() (*scoring.Engine, repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.engine, s.store, nil
}

func catalogName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
