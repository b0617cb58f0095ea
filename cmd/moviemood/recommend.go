package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	service "github.com/okian/moviemood/internal/app"
	"github.com/okian/moviemood/internal/domain/model"
	"github.com/okian/moviemood/internal/validation"
	"github.com/okian/moviemood/pkg/logger"
	"github.com/okian/moviemood/pkg/metrics"
)

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var (
		prefsPath string
		limit     int
		movieID   string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Score the catalog for a preferences file and print the top matches",
		Long: `Reads a preferences record (JSON, or YAML for .yaml/.yml files; "-" reads
JSON from stdin), scores every catalog movie and prints the ranked list as
JSON. With --movie, prints the full evaluation of that one movie instead.`,
		Example: `  moviemood recommend --prefs prefs.yaml
  moviemood recommend --prefs prefs.json --limit 3
  moviemood recommend --prefs prefs.json --movie 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit > 0 {
				opts.cfg.RecommendationLimit = limit
			}
			return runRecommend(cmd.Context(), opts, prefsPath, movieID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&prefsPath, "prefs", "p", "", "Preferences file (required)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum recommendations; overrides recommendation_limit")
	cmd.Flags().StringVar(&movieID, "movie", "", "Evaluate a single movie by id")
	_ = cmd.MarkFlagRequired("prefs")

	return cmd
}

func runRecommend(ctx context.Context, opts *rootOptions, prefsPath, movieID string, in io.Reader, out io.Writer) error {
	prefs, err := readPreferences(prefsPath, in)
	if err != nil {
		return err
	}

	svc, err := startService(ctx, opts)
	if err != nil {
		return err
	}
	defer svc.Stop()

	if movieID != "" {
		ev, err := svc.Evaluate(ctx, prefs, movieID)
		if err != nil {
			return fmt.Errorf("evaluating movie: %w", err)
		}
		return writeJSON(out, ev)
	}

	recs, err := svc.Recommend(ctx, prefs)
	if err != nil {
		return fmt.Errorf("generating recommendations: %w", err)
	}
	if recs == nil {
		recs = []model.Recommendation{}
	}
	return writeJSON(out, recs)
}

// readPreferences decodes and validates a preferences record.
func readPreferences(path string, stdin io.Reader) (model.Preferences, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.Preferences{}, fmt.Errorf("reading preferences: %w", err)
	}

	var p model.Preferences
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return model.Preferences{}, fmt.Errorf("decoding preferences: %w", err)
	}

	if err := validation.ValidateStruct(p); err != nil {
		return model.Preferences{}, fmt.Errorf("invalid preferences: %w", err)
	}
	return p, nil
}

// startService builds a service for one-shot commands. Its metrics go to
// a private registry since nothing scrapes them.
func startService(ctx context.Context, opts *rootOptions) (*service.Service, error) {
	svc := service.New(
		service.WithLogger(logger.Get()),
		service.WithMetrics(metrics.NewManager(
			metrics.WithPrometheusRegistry(prometheus.NewRegistry()),
			metrics.WithMetricsEnabled(false),
		)),
		service.WithCatalogPath(opts.cfg.CatalogPath),
		service.WithRecommendationLimit(opts.cfg.RecommendationLimit),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting service: %w", err)
	}
	return svc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
