package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/okian/moviemood/internal/adapters/http/api"
	"github.com/okian/moviemood/internal/adapters/http/site"
	"github.com/okian/moviemood/internal/adapters/http/swagger"
	service "github.com/okian/moviemood/internal/app"
	"github.com/okian/moviemood/internal/config"
	"github.com/okian/moviemood/pkg/logger"
	"github.com/okian/moviemood/pkg/metrics"
)

// HTTP server timeout constants not covered by config.
const (
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, docs and frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				opts.cfg.Addr = addr
			}
			return runServe(cmd.Context(), opts.cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; overrides addr")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()
	m := metrics.Default()

	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithCatalogPath(cfg.CatalogPath),
		service.WithRecommendationLimit(cfg.RecommendationLimit),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	defer svc.Stop()

	go m.StartSystemCollector(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, m, metrics.GetRegistry(), log),
		ReadTimeout:       cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("staticDir", cfg.StaticDir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info(shutdownCtx, "server stopped")
	return nil
}

// newHandler assembles the full route table: API, docs, metrics and the
// frontend catch-all, wrapped in the API middleware chain.
func newHandler(
	ctx context.Context,
	cfg *config.Config,
	svc *service.Service,
	m *metrics.Manager,
	gatherer prometheus.Gatherer,
	log logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc,
		api.WithMetrics(m),
		api.WithGatherer(gatherer),
		api.WithLogger(log.Named("http")),
		api.WithCORSOrigins(cfg.CORSAllowedOrigins),
	)
	apiServer.Register(ctx, mux)

	site.Register(ctx, mux, cfg.StaticDir)

	return apiServer.Middleware(mux)
}
