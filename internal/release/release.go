package release

import (
	"regexp"
	"strings"
	"time"
)

// Record represents one scheduled release scraped from the ABS calendar
type Record struct {
	Time            time.Time `json:"time"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ReferencePeriod string    `json:"referencePeriod"`
	LatestURL       string    `json:"latestUrl,omitempty"`
	Theme           string    `json:"theme,omitempty"`
	ParentTopic     string    `json:"parentTopic,omitempty"`
	Topic           string    `json:"topic,omitempty"`
}

// Field names accepted by Record.Field. They match the JSON field names.
const (
	FieldTime            = "time"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldReferencePeriod = "referencePeriod"
	FieldLatestURL       = "latestUrl"
	FieldTheme           = "theme"
	FieldParentTopic     = "parentTopic"
	FieldTopic           = "topic"
)

// NewRecord creates a Record. When latestURL is non-empty the topic fields
// are derived from it, so they are always set together with the link.
func NewRecord(t time.Time, title, description, referencePeriod, latestURL string) *Record {
	r := &Record{
		Time:            t,
		Title:           title,
		Description:     description,
		ReferencePeriod: referencePeriod,
	}
	if latestURL != "" {
		r.LatestURL = latestURL
		r.Theme, r.ParentTopic, r.Topic = ResolveTopics(latestURL)
	}
	return r
}

// HasLatest reports whether the record links to a latest-release page
func (r *Record) HasLatest() bool {
	return r.LatestURL != ""
}

// Field returns the value of the named field as a string.
// The second result is false for unknown names and for unset optional fields.
func (r *Record) Field(name string) (string, bool) {
	switch name {
	case FieldTime:
		return FormatTime(r.Time), true
	case FieldTitle:
		return r.Title, true
	case FieldDescription:
		return r.Description, true
	case FieldReferencePeriod:
		return r.ReferencePeriod, true
	case FieldLatestURL:
		return r.LatestURL, r.HasLatest()
	case FieldTheme:
		return r.Theme, r.HasLatest()
	case FieldParentTopic:
		return r.ParentTopic, r.HasLatest()
	case FieldTopic:
		return r.Topic, r.HasLatest()
	default:
		return "", false
	}
}

// Summary returns the calendar summary line, "<title> for <referencePeriod>"
func (r *Record) Summary() string {
	return r.Title + " for " + r.ReferencePeriod
}

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// UID creates a deterministic identifier for a release from its title,
// reference period and time. Every run of non-alphanumeric characters
// collapses to a single hyphen.
func UID(title, referencePeriod string, t time.Time) string {
	joined := strings.Join([]string{title, referencePeriod, FormatTime(t)}, " ")
	return nonAlphanumeric.ReplaceAllString(joined, "-")
}

// UID returns the calendar identifier for the record
func (r *Record) UID() string {
	return UID(r.Title, r.ReferencePeriod, r.Time)
}
