package release

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // all-day conversion needs zone data on minimal images
)

// timeLayouts are tried in order by ParseTime. Values without a zone are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses the machine-readable datetime attribute of a calendar entry.
// The offset in the attribute is preserved on the returned time.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised datetime %q", value)
}

// FormatTime renders t as RFC3339 in its own offset, the inverse of ParseTime
// for zoned values. Fractional seconds are kept, matching the JSON encoding
// of time.Time.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// LocalDate returns midnight UTC of the calendar date t falls on in loc
func LocalDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
