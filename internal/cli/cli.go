package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/abs-calendar/internal/api"
	"github.com/pfrederiksen/abs-calendar/internal/config"
	"github.com/pfrederiksen/abs-calendar/internal/logger"
	"github.com/pfrederiksen/abs-calendar/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// newSource builds the release source for a command. Tests replace it.
var newSource = func(cfg config.Config, log *zap.Logger) api.ReleaseSource {
	fetcher := scraper.NewCollyFetcher(scraper.FetcherConfig{
		UserAgent: cfg.Scraper.UserAgent,
		Timeout:   cfg.Scraper.RequestTimeout,
	})
	return scraper.New(fetcher, cfg.Scraper.CalendarURL, log.Named("scraper"))
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "abs-calendar",
		Short: "Publish the ABS future releases calendar as iCalendar or JSON",
		Long: `A tool that scrapes the Australian Bureau of Statistics future releases
calendar and publishes the scheduled releases as an iCalendar feed or JSON.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (yaml, json or toml)")

	cmd.AddCommand(newServeCmd(&cfgFile))
	cmd.AddCommand(newFetchCmd(&cfgFile))

	return cmd
}

// setup loads configuration and builds the logger shared by all commands.
func setup(cfgFile string, verbose bool) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err := logger.New(cfg.Logging.Development, level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, log, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
