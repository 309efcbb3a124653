// Package cli implements the command-line interface for abs-calendar.
//
// The cli package provides the Cobra-based CLI. The serve command runs the
// HTTP service; the fetch command performs one scrape of the ABS future
// releases calendar and writes the releases as JSON, iCalendar or text.
package cli
