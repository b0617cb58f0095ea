package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/okian/moviemood/internal/probe"
)

// defaultWorkerMultiplier scales runtime.NumCPU() for probe workers.
const defaultWorkerMultiplier = 2

func newProbeCmd(opts *rootOptions) *cobra.Command {
	cfg := &probe.Config{}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Send randomized requests to a running server and verify every ranking",
		Example: `  moviemood probe
  moviemood probe --url http://localhost:3001 --requests 1000 --workers 16
  moviemood probe --output results.json --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Limit <= 0 {
				cfg.Limit = opts.cfg.RecommendationLimit
			}
			stats, err := probe.Run(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("probe failed: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d/%d requests verified in %s\n",
				stats.Succeeded, stats.Sent, stats.Duration)
			return err
		},
	}

	cmd.Flags().StringVar(&cfg.BaseURL, "url", probe.DefaultBaseURL, "Base URL of the service")
	cmd.Flags().IntVar(&cfg.Requests, "requests", probe.DefaultRequests, "Number of recommendation requests to send")
	cmd.Flags().IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", probe.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().IntVar(&cfg.Limit, "limit", 0, "Largest list the server may return; defaults to recommendation_limit")
	cmd.Flags().StringVar(&cfg.OutputFile, "output", "", "Write requests and answers to this JSON file")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Log every failed request")

	return cmd
}
