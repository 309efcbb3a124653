package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/abs-calendar/internal/release"
)

// Selectors for one calendar entry
const (
	EntrySelector           = ".calendar"
	TimeSelector            = "time"
	TitleSelector           = ".event-name"
	DescriptionSelector     = ".event-description"
	ReferencePeriodSelector = ".reference-period-value"
	LatestLinkSelector      = ".rs-product-link-latest a[href]"
)

// ErrMissingElement reports that a required element is absent from the page markup
var ErrMissingElement = errors.New("missing required element")

// ExtractReleases extracts one record per calendar entry, in document order.
// Product links are resolved against base.
func ExtractReleases(doc *goquery.Document, base *url.URL) ([]*release.Record, error) {
	entries := doc.Find(EntrySelector)
	records := make([]*release.Record, 0, entries.Length())

	var err error
	entries.EachWithBreak(func(i int, entry *goquery.Selection) bool {
		rec, entryErr := extractEntry(entry, base)
		if entryErr != nil {
			err = fmt.Errorf("entry %d: %w", i, entryErr)
			return false
		}
		records = append(records, rec)
		return true
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func extractEntry(entry *goquery.Selection, base *url.URL) (*release.Record, error) {
	timeEl := entry.Find(TimeSelector).First()
	datetime, ok := timeEl.Attr("datetime")
	if timeEl.Length() == 0 || !ok {
		return nil, fmt.Errorf("%w: %s[datetime]", ErrMissingElement, TimeSelector)
	}
	at, err := release.ParseTime(datetime)
	if err != nil {
		return nil, fmt.Errorf("parsing release time: %w", err)
	}

	title, err := requiredText(entry, TitleSelector)
	if err != nil {
		return nil, err
	}
	description, err := requiredText(entry, DescriptionSelector)
	if err != nil {
		return nil, err
	}
	referencePeriod, err := requiredText(entry, ReferencePeriodSelector)
	if err != nil {
		return nil, err
	}

	// The product link is the only element an entry may lack.
	var latestURL string
	if link := entry.Find(LatestLinkSelector).First(); link.Length() > 0 {
		href, _ := link.Attr("href")
		latestURL, err = release.LatestReleaseURL(href, base)
		if err != nil {
			return nil, err
		}
	}

	return release.NewRecord(at, title, description, referencePeriod, latestURL), nil
}

func requiredText(entry *goquery.Selection, selector string) (string, error) {
	sel := entry.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingElement, selector)
	}
	return strings.TrimSpace(sel.Text()), nil
}
