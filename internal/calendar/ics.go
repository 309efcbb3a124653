// Package calendar serializes releases into an iCalendar document.
package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/abs-calendar/internal/release"
)

const (
	// ContentType is the media type of a serialized calendar
	ContentType = "text/calendar;charset=utf-8"

	DefaultProductID = "//github:duyjpr//abs-calendar-scraper-nodejs//EN"
	DefaultName      = "ABS releases"
	DefaultTimezone  = "Australia/Melbourne"
	DefaultFilename  = "abs-calendar.ics"

	// AllDayDisabled turns off all-day conversion when passed as the allday value
	AllDayDisabled = "false"
)

// Options controls calendar serialization
type Options struct {
	ProductID string
	Name      string
	// AllDay selects all-day events dated in this location. Nil emits
	// zero-duration events at the exact release time.
	AllDay *time.Location
	// Now is the DTSTAMP shared by every event. Zero means time.Now().
	Now time.Time
}

// ParseAllDay interprets an allday parameter. An empty value selects
// defaultZone, AllDayDisabled selects exact-time mode (nil location), and any
// other value must be an IANA timezone name.
func ParseAllDay(value, defaultZone string) (*time.Location, error) {
	if value == "" {
		value = defaultZone
	}
	if value == AllDayDisabled {
		return nil, nil
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", value, err)
	}
	return loc, nil
}

// Serialize generates one iCalendar document with an event per release
func Serialize(releases []*release.Record, opts Options) string {
	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(opts.ProductID)
	cal.SetXWRCalName(opts.Name)
	// Proposed standard property, not widely supported
	cal.SetName(opts.Name)

	for _, r := range releases {
		event := cal.AddEvent(r.UID())
		event.SetDtStampTime(now)

		if opts.AllDay != nil {
			// Whole-day event on the release's local date, not its UTC date.
			event.SetAllDayStartAt(release.LocalDate(r.Time, opts.AllDay))
		} else {
			event.SetStartAt(r.Time)
			event.SetEndAt(r.Time)
		}

		event.SetSummary(r.Summary())
		if r.HasLatest() {
			event.SetDescription(r.LatestURL)
		}
	}

	return cal.Serialize()
}
