// Package scraper provides page fetching and HTML extraction for the ABS release calendar.
//
// The scraper package resolves the monthly calendar pages linked from the
// calendar's date pager, fetches them concurrently, and extracts one release
// record per calendar entry. Pages are merged in pager order. Any transport or
// structural failure aborts the whole scrape; only the "latest release" link
// of an entry may be absent.
package scraper
