package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/abs-calendar/internal/calendar"
	"github.com/pfrederiksen/abs-calendar/internal/release"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText      OutputFormat = "text"
	FormatJSON      OutputFormat = "json"
	FormatICalendar OutputFormat = "icalendar"
)

// Valid reports whether f is a known output format
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatICalendar:
		return true
	}
	return false
}

// WriteOutput writes the releases in the specified format
func WriteOutput(w io.Writer, releases []*release.Record, format OutputFormat, opts calendar.Options, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, releases)
	case FormatICalendar:
		_, err := io.WriteString(w, calendar.Serialize(releases, opts))
		return err
	case FormatText:
		return writeText(w, releases, opts, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs releases as a JSON array
func writeJSON(w io.Writer, releases []*release.Record) error {
	if releases == nil {
		releases = []*release.Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(releases)
}

// writeText outputs releases as human-readable text
func writeText(w io.Writer, releases []*release.Record, opts calendar.Options, verbose bool) error {
	if len(releases) == 0 {
		fmt.Fprintln(w, "No releases found.")
		return nil
	}

	for _, r := range releases {
		fmt.Fprintf(w, "%s  %s\n", formatWhen(r, opts), r.Summary())
		if verbose {
			fmt.Fprintf(w, "     UID: %s\n", r.UID())
			if r.Description != "" {
				fmt.Fprintf(w, "     Description: %s\n", r.Description)
			}
			if r.HasLatest() {
				fmt.Fprintf(w, "     Topic: %s / %s / %s\n", r.Theme, r.ParentTopic, r.Topic)
				fmt.Fprintf(w, "     Latest: %s\n", r.LatestURL)
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d releases\n", len(releases))

	return nil
}

func formatWhen(r *release.Record, opts calendar.Options) string {
	if opts.AllDay != nil {
		return r.Time.In(opts.AllDay).Format("2006-01-02")
	}
	return release.FormatTime(r.Time)
}
