package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// fakeFetcher serves fixed markup keyed by URL, like a mocked upstream.
type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	visits []string
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (*goquery.Document, error) {
	f.mu.Lock()
	f.visits = append(f.visits, pageURL)
	f.mu.Unlock()

	if err, ok := f.errs[pageURL]; ok {
		return nil, err
	}
	html, ok := f.pages[pageURL]
	if !ok {
		return nil, fmt.Errorf("unexpected status code: 404")
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func mustDoc(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		panic(err)
	}
	return doc
}

const (
	testRoot   = "https://www.abs.gov.au/release-calendar/future-releases-calendar"
	testPage2  = "https://www.abs.gov.au/release-calendar/future-releases-calendar?page=1"
	pagerHTML  = `<nav class="date-pager"><a href="/release-calendar/future-releases-calendar">Dec</a><span>|</span><a href="?page=1">Jan</a><a>no href</a></nav>`
	entryCPI   = `<div class="calendar"><div class="event-date"><time datetime="2025-12-17T11:30:00+11:00">17/12/2025</time></div><div class="event-name"> Consumer Price Index, Australia </div><div class="event-description">Monthly CPI indicator</div><div class="reference-period-value">Nov 2025</div><div class="rs-product-link-latest"><a href="/statistics/economy/price-indexes-and-inflation/consumer-price-index-australia/nov-2025">Latest</a></div></div>`
	entryPlain = `<div class="calendar"><time datetime="2026-01-08T11:30:00+11:00"></time><div class="event-name">Labour Account Australia</div><div class="event-description"></div><div class="reference-period-value">Sep 2025</div></div>`
)

func page(parts ...string) string {
	return "<html><body>" + strings.Join(parts, "\n") + "</body></html>"
}
