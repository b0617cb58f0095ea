package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/okian/moviemood/internal/domain/types"
	"github.com/okian/moviemood/pkg/logger"
)

const (
	workerChannelMultiplier = 2
	percentageMultiplier    = 100
	directoryPermission     = 0o750
	outputFilePermission    = 0o600
)

// Run executes a complete probe: health check, option discovery, request
// generation, concurrent submission and verification. It returns the stats
// even when verification fails so callers can report them.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	log := logger.Get().Named("probe")
	stats := &Stats{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}

	log.Info(ctx, "starting moviemood probe",
		logger.String("runID", stats.RunID),
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
	)

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config.BaseURL, log); err != nil {
		return stats, err
	}

	var opts types.Options
	if _, err := client.getJSON(ctx, config.BaseURL+"/api/options", &opts); err != nil {
		return stats, fmt.Errorf("option discovery failed: %w", err)
	}

	requests := generateRequests(config.Requests, opts)
	stats.Generated = len(requests)

	results := submitRequests(ctx, client, config, requests, stats, log)

	if config.OutputFile != "" {
		if err := saveResults(config.OutputFile, results); err != nil {
			log.Warn(ctx, "failed to save results", logger.Error(err))
		} else {
			log.Info(ctx, "results saved to file", logger.String("filename", config.OutputFile))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("probe interrupted: %w", err)
	}
	if stats.Failed > 0 || stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d failed, %d violations out of %d",
			ErrVerification, stats.Failed, stats.Violations, stats.Sent)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is up with a loaded catalog.
func checkServiceHealth(ctx context.Context, client *httpClient, baseURL string, log logger.Logger) error {
	log.Info(ctx, "checking service health")

	var h types.Health
	if _, err := client.getJSON(ctx, baseURL+"/api/health", &h); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if h.Status != types.StatusHealthy || h.MoviesLoaded == 0 {
		return fmt.Errorf("%w: status %q with %d movies", ErrUnhealthy, h.Status, h.MoviesLoaded)
	}

	log.Info(ctx, "service is healthy",
		logger.Int("moviesLoaded", h.MoviesLoaded),
		logger.Int("rulesCount", h.RulesCount),
	)
	return nil
}

// submitRequests posts every request through a bounded worker pool and
// verifies each answer. Results keep the order of requests.
func submitRequests(
	ctx context.Context,
	client *httpClient,
	config *Config,
	requests []Request,
	stats *Stats,
	log logger.Logger,
) []Result {
	url := config.BaseURL + "/api/recommendations"
	results := make([]Result, len(requests))

	var sent, succeeded, empty, failed, violations, returned atomic.Int64
	var topMu sync.Mutex

	indexes := make(chan int, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for range config.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if ctx.Err() != nil {
					return
				}
				req := requests[i]
				start := time.Now()

				var body recommendationsResponse
				status, err := client.postJSON(ctx, url, req.ID, req.Preferences, &body)
				res := Result{Request: req, Status: status, Latency: time.Since(start)}
				sent.Add(1)

				switch {
				case err != nil:
					failed.Add(1)
					res.Error = err.Error()
				default:
					res.Recommendations = body.Recommendations
					if verr := verifyResponse(body, config.Limit); verr != nil {
						violations.Add(1)
						res.Error = verr.Error()
						err = verr
					} else {
						succeeded.Add(1)
						returned.Add(int64(len(body.Recommendations)))
						if len(body.Recommendations) == 0 {
							empty.Add(1)
						} else {
							topMu.Lock()
							stats.TopScore = max(stats.TopScore, body.Recommendations[0].Score)
							topMu.Unlock()
						}
					}
				}

				if err != nil && config.Verbose {
					log.Warn(ctx, "request failed",
						logger.String("requestID", req.ID),
						logger.Int("status", status),
						logger.Error(err),
					)
				}
				results[i] = res
			}
		}()
	}

	go func() {
		defer close(indexes)
		for i := range requests {
			select {
			case <-ctx.Done():
				return
			case indexes <- i:
			}
		}
	}()

	wg.Wait()

	stats.Sent = int(sent.Load())
	stats.Succeeded = int(succeeded.Load())
	stats.Empty = int(empty.Load())
	stats.Failed = int(failed.Load())
	stats.Violations = int(violations.Load())
	stats.Recommendations = int(returned.Load())

	done := results[:0]
	for _, r := range results {
		if r.Request.ID != "" {
			done = append(done, r)
		}
	}
	return done
}

// saveResults writes results as an indented JSON array.
func saveResults(filename string, results []Result) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(filename, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, requestsPerSecond float64
	if stats.Sent > 0 {
		successRate = float64(stats.Succeeded) / float64(stats.Sent) * percentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Sent) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.String("runID", stats.RunID),
		logger.Int("generated", stats.Generated),
		logger.Int("sent", stats.Sent),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("empty", stats.Empty),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", stats.Violations),
		logger.Int("recommendations", stats.Recommendations),
		logger.Float64("topScore", stats.TopScore),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
	)
}
