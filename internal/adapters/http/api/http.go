// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/moviemood/internal/domain/model"
	"github.com/okian/moviemood/internal/domain/types"
	"github.com/okian/moviemood/pkg/logger"
	"github.com/okian/moviemood/pkg/metrics"
)

// defaultMaxBodyBytes caps request bodies; a preferences record is tiny.
const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecommendationDependencies
	EvaluationDependencies
	CatalogDependencies

	Options(ctx context.Context) types.Options
	RuleNames(ctx context.Context) []string
	Health(ctx context.Context) types.Health
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	recommendationsHandler *RecommendationsHandler
	evaluationHandler      *EvaluationHandler
	optionsHandler         *OptionsHandler
	rulesHandler           *RulesHandler
	moviesHandler          *MoviesHandler

	metrics      *metrics.Manager
	gatherer     prometheus.Gatherer
	logger       logger.Logger
	corsOrigins  []string
	maxBodyBytes int64
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMetrics sets the metrics manager used by the request middleware.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithGatherer sets the registry exposed on /metrics. Defaults to
// metrics.GetRegistry().
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORSOrigins sets the origins allowed by the CORS middleware.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		metrics:      metrics.Default(),
		gatherer:     metrics.GetRegistry(),
		corsOrigins:  []string{"*"},
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}

	s.healthHandler = NewHealthHandler(deps, s.gatherer)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.recommendationsHandler = NewRecommendationsHandler(deps, s.logger, s.maxBodyBytes)
	s.evaluationHandler = NewEvaluationHandler(deps, s.maxBodyBytes)
	s.optionsHandler = NewOptionsHandler(deps)
	s.rulesHandler = NewRulesHandler(deps)
	s.moviesHandler = NewMoviesHandler(deps)
	return s
}

// Register attaches all API routes to mux. Unknown /api/ paths get a JSON 404.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("POST /api/recommendations", s.instrument("recommendations", s.recommendationsHandler.HandleRecommend))
	mux.HandleFunc("POST /api/movies/{id}/evaluation", s.instrument("evaluation", s.evaluationHandler.HandleEvaluate))
	mux.HandleFunc("GET /api/movies/{id}", s.instrument("movies", s.moviesHandler.HandleGetMovie))
	mux.HandleFunc("GET /api/options", s.instrument("options", s.optionsHandler.HandleOptions))
	mux.HandleFunc("GET /api/rules", s.instrument("rules", s.rulesHandler.HandleRules))
	mux.HandleFunc("GET /api/health", s.instrument("health", s.healthHandler.HandleHealth))
	mux.HandleFunc("GET /api/stats", s.instrument("stats", s.statsHandler.HandleStats))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/api/", s.instrument("not_found", handleAPINotFound))
}

// Middleware wraps the whole mux: CORS, request ids, panic recovery and
// request logging, outermost first.
func (s *Server) Middleware(next http.Handler) http.Handler {
	h := LoggingMiddleware(s.logger, next)
	h = RecoverMiddleware(s.logger, h)
	h = RequestIDMiddleware(h)
	return CORSMiddleware(s.corsOrigins)(h)
}

func (s *Server) instrument(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return MetricsMiddleware(s.metrics, h, endpoint)
}

func handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Code:    "not_found",
		Message: ErrNotFound.Error(),
		Error:   "API route not found",
	})
}

// recommendationsResponse mirrors the OpenAPI schema for POST /api/recommendations.
type recommendationsResponse struct {
	Success         bool                   `json:"success"`
	Count           int                    `json:"count"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
