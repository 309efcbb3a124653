package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/abs-calendar/internal/calendar"
	"github.com/pfrederiksen/abs-calendar/internal/filter"
)

type fetchOptions struct {
	format  string
	allDay  string
	filters []string
	output  string
	verbose bool
}

func newFetchCmd(cfgFile *string) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Scrape the calendar once and print the releases",
		Example: `  abs-calendar fetch --format icalendar --output abs.ics
  abs-calendar fetch --filter theme=economy --filter theme=people
  abs-calendar fetch --format text --allday false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd.Context(), cmd.OutOrStdout(), *cfgFile, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", string(FormatJSON), "Output format: json, icalendar or text")
	cmd.Flags().StringVar(&opts.allDay, "allday", "", "Timezone for all-day events, or 'false' for exact times (default from config)")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "Keep releases whose field equals value (field=value, repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging and output")

	return cmd
}

func runFetch(ctx context.Context, stdout io.Writer, cfgFile string, opts *fetchOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format := OutputFormat(strings.ToLower(opts.format))
	if !format.Valid() {
		return fmt.Errorf("invalid format: %s (must be 'json', 'icalendar' or 'text')", opts.format)
	}

	spec, err := filter.FromAssignments(opts.filters)
	if err != nil {
		return err
	}

	cfg, log, err := setup(cfgFile, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var allDay *time.Location
	if format != FormatJSON {
		allDay, err = calendar.ParseAllDay(opts.allDay, cfg.Calendar.DefaultTimezone)
		if err != nil {
			return err
		}
	}

	releases, err := newSource(cfg, log).FetchReleases(ctx)
	if err != nil {
		return fmt.Errorf("fetching releases: %w", err)
	}
	log.Debug("fetched releases", zap.Int("count", len(releases)), zap.Stringer("filter", spec))
	releases = spec.Apply(releases)

	w := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	calOpts := calendar.Options{
		ProductID: cfg.Calendar.ProductID,
		Name:      cfg.Calendar.Name,
		AllDay:    allDay,
	}
	if err := WriteOutput(w, releases, format, calOpts, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
