package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PagerSelector locates the pagination control on the calendar page
const PagerSelector = ".date-pager"

// monthlyURLs collects every linked page in the date pager, in document order,
// resolved against base. The current page's own link is kept.
func monthlyURLs(doc *goquery.Document, base *url.URL) ([]string, error) {
	pager := doc.Find(PagerSelector).First()
	if pager.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingElement, PagerSelector)
	}

	links := pager.Find("a[href]")
	urls := make([]string, 0, links.Length())
	var err error
	links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		ref, parseErr := url.Parse(strings.TrimSpace(href))
		if parseErr != nil {
			err = fmt.Errorf("parsing pager link %q: %w", href, parseErr)
			return false
		}
		urls = append(urls, base.ResolveReference(ref).String())
		return true
	})
	if err != nil {
		return nil, err
	}

	return urls, nil
}
