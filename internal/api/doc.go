// Package api exposes the HTTP interface for the release calendar service.
//
// GET /v1/calendar serves an iCalendar feed by default; GET /v1/releases and
// GET /v1/releases.{format} serve JSON by default. Both accept format, allday
// and arbitrary filter parameters.
package api
