package scraper

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/abs-calendar/internal/metrics"
	"github.com/pfrederiksen/abs-calendar/internal/release"
)

const (
	// CalendarURL is the root page of the ABS future releases calendar
	CalendarURL = "https://www.abs.gov.au/release-calendar/future-releases-calendar"
	UserAgent   = "abs-calendar/1.0 (github.com/pfrederiksen/abs-calendar)"
)

// Scraper handles fetching and parsing the ABS release calendar
type Scraper struct {
	fetcher Fetcher
	url     string
	logger  *zap.Logger
}

// New creates a Scraper rooted at calendarURL
func New(fetcher Fetcher, calendarURL string, logger *zap.Logger) *Scraper {
	if calendarURL == "" {
		calendarURL = CalendarURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		fetcher: fetcher,
		url:     calendarURL,
		logger:  logger,
	}
}

// FetchReleases scrapes every monthly calendar page and returns their records
// concatenated in pager order. Any failure aborts the scrape and no partial
// result is returned.
func (s *Scraper) FetchReleases(ctx context.Context) ([]*release.Record, error) {
	start := time.Now()

	pages, err := s.ResolveMonthlyURLs(ctx, s.url)
	if err != nil {
		s.logger.Error("resolving monthly pages failed", zap.String("url", s.url), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("resolved monthly pages", zap.Int("pages", len(pages)))

	results := make([][]*release.Record, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	for i, pageURL := range pages {
		g.Go(func() error {
			records, err := s.FetchPage(gctx, pageURL)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("scraping monthly pages failed", zap.Error(err))
		return nil, err
	}

	total := 0
	for _, records := range results {
		total += len(records)
	}
	all := make([]*release.Record, 0, total)
	for _, records := range results {
		all = append(all, records...)
	}

	metrics.ObserveScrape(time.Since(start), len(all))
	s.logger.Info("scraped release calendar",
		zap.Int("pages", len(pages)),
		zap.Int("releases", len(all)),
		zap.Duration("duration", time.Since(start)),
	)
	return all, nil
}

// ResolveMonthlyURLs fetches the calendar root and returns the absolute URLs
// of the monthly pages linked from its date pager.
func (s *Scraper) ResolveMonthlyURLs(ctx context.Context, rootURL string) ([]string, error) {
	base, err := url.Parse(rootURL)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar URL: %w", err)
	}

	doc, err := s.fetcher.Fetch(ctx, rootURL)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar index: %w", err)
	}

	urls, err := monthlyURLs(doc, base)
	if err != nil {
		return nil, fmt.Errorf("reading calendar index %s: %w", rootURL, err)
	}
	return urls, nil
}

// FetchPage fetches one monthly page and extracts its records
func (s *Scraper) FetchPage(ctx context.Context, pageURL string) ([]*release.Record, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching monthly page: %w", err)
	}

	records, err := ExtractReleases(doc, base)
	if err != nil {
		return nil, fmt.Errorf("extracting releases from %s: %w", pageURL, err)
	}
	s.logger.Debug("extracted releases", zap.String("url", pageURL), zap.Int("releases", len(records)))
	return records, nil
}
