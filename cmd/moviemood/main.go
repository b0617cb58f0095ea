// Package main provides the entry point for the moviemood server and CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/moviemood/internal/config"
	"github.com/okian/moviemood/pkg/logger"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions carries the persistent flags and the loaded config to the
// subcommands.
type rootOptions struct {
	catalog  string
	logLevel string
	logOut   io.Writer
	cfg      *config.Config
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	opts := &rootOptions{logOut: logOut}

	rootCmd := &cobra.Command{
		Use:           "moviemood",
		Short:         "Mood-based movie recommendations from a weighted rule engine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.catalog, "catalog", "", "Movie catalog file (JSON or YAML); overrides catalog_path")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error; overrides log_level")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newRecommendCmd(opts),
		newRulesCmd(opts),
		newOptionsCmd(opts),
		newProbeCmd(opts),
	)

	return rootCmd
}

// init loads configuration (defaults -> optional file -> env -> flags) and
// sets up logging on logOut so stdout stays free for command output.
func (o *rootOptions) init(ctx context.Context) error {
	if err := logger.InitWithWriter(o.logOut); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.catalog != "" {
		cfg.CatalogPath = o.catalog
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	o.cfg = cfg
	return nil
}
