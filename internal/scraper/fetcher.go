package scraper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/pfrederiksen/abs-calendar/internal/metrics"
)

// Fetcher retrieves a page and parses it into a queryable document
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// FetcherConfig controls the colly collector used by CollyFetcher
type FetcherConfig struct {
	UserAgent string
	// Timeout of zero means requests never time out.
	Timeout time.Duration
}

// CollyFetcher implements Fetcher with a colly collector and goquery
type CollyFetcher struct {
	base *colly.Collector
}

// NewCollyFetcher creates a CollyFetcher
func NewCollyFetcher(cfg FetcherConfig) *CollyFetcher {
	c := colly.NewCollector(
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	// Calendar pages are parsed whole; a truncated body would drop entries.
	c.MaxBodySize = 0
	c.SetRequestTimeout(cfg.Timeout)

	return &CollyFetcher{base: c}
}

// Fetch performs a single GET and parses the body as HTML.
// Transport failures and non-success statuses are returned as errors.
func (f *CollyFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	collector := f.base.Clone()
	collector.AllowURLRevisit = true
	collector.MaxBodySize = 0
	// Aborts the in-flight request when ctx is canceled.
	collector.Context = ctx

	var (
		body     []byte
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("unexpected status code %d: %w", r.StatusCode, err)
			return
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(pageURL)
	}()

	select {
	case <-ctx.Done():
		metrics.ObservePageFetch("canceled")
		return nil, fmt.Errorf("fetching %s: %w", pageURL, ctx.Err())
	case err := <-done:
		if fetchErr != nil {
			metrics.ObservePageFetch("error")
			return nil, fmt.Errorf("fetching %s: %w", pageURL, fetchErr)
		}
		if err != nil {
			metrics.ObservePageFetch("error")
			return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
		}
	}
	metrics.ObservePageFetch("ok")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", pageURL, err)
	}
	return doc, nil
}
