// Package filter provides release filtering driven by request parameters.
//
// A Spec is an ordered list of field/value-set pairs. A release is kept when
// it matches ANY pair: the union across pairs, not the intersection. Within a
// pair, the field value must equal one of the listed values exactly
// (case-sensitive).
//
// Example usage:
//
//	// topic=A&topic=B&referencePeriod=Dec%202025
//	spec, err := filter.FromRawQuery(r.URL.RawQuery, "format", "allday")
//
//	// Keeps releases whose topic is A or B, plus any for Dec 2025
//	filtered := spec.Apply(releases)
package filter

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/pfrederiksen/abs-calendar/internal/release"
)

// Pair is one field and the set of values it may equal
type Pair struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// Spec represents the filter criteria for one request
type Spec struct {
	Pairs []Pair `json:"pairs,omitempty"`
}

// NewSpec creates an empty Spec that matches all releases.
func NewSpec() *Spec {
	return &Spec{}
}

// Add appends value to the pair for field, creating the pair if it does not
// exist. Pairs keep the order in which fields were first added and values keep
// their insertion order.
func (s *Spec) Add(field, value string) {
	for i := range s.Pairs {
		if s.Pairs[i].Field == field {
			s.Pairs[i].Values = append(s.Pairs[i].Values, value)
			return
		}
	}
	s.Pairs = append(s.Pairs, Pair{Field: field, Values: []string{value}})
}

// FromRawQuery builds a Spec from a raw URL query string, skipping the
// reserved parameter names. Repeated names are coalesced into one pair.
func FromRawQuery(rawQuery string, reserved ...string) (*Spec, error) {
	spec := NewSpec()
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("invalid query parameter %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", key, err)
		}
		if key == "" || slices.Contains(reserved, key) {
			continue
		}
		spec.Add(key, value)
	}
	return spec, nil
}

// FromAssignments builds a Spec from "field=value" strings such as repeated
// --filter flags.
func FromAssignments(assignments []string) (*Spec, error) {
	spec := NewSpec()
	for _, a := range assignments {
		field, value, ok := strings.Cut(a, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q (expected field=value)", a)
		}
		spec.Add(field, value)
	}
	return spec, nil
}

// IsEmpty checks if the filter has any criteria.
// Returns true if the filter would match all releases.
func (s *Spec) IsEmpty() bool {
	return s == nil || len(s.Pairs) == 0
}

// Matches reports whether the release satisfies at least one pair.
// An empty spec matches every release. Unknown fields and unset optional
// fields never match.
func (s *Spec) Matches(r *release.Record) bool {
	if s.IsEmpty() {
		return true
	}

	for _, pair := range s.Pairs {
		value, ok := r.Field(pair.Field)
		if !ok {
			continue
		}
		if slices.Contains(pair.Values, value) {
			return true
		}
	}
	return false
}

// Apply returns the releases that match the filter, in input order.
// If the filter is empty, returns the input list unchanged.
func (s *Spec) Apply(releases []*release.Record) []*release.Record {
	if s.IsEmpty() {
		return releases
	}

	filtered := make([]*release.Record, 0, len(releases))
	for _, r := range releases {
		if s.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// String returns a human-readable description of the filter criteria.
// Returns "No active filters" if the filter is empty.
// Format: "topic: A, B | referencePeriod: Dec 2025"
func (s *Spec) String() string {
	if s.IsEmpty() {
		return "No active filters"
	}

	parts := make([]string, 0, len(s.Pairs))
	for _, pair := range s.Pairs {
		parts = append(parts, fmt.Sprintf("%s: %s", pair.Field, strings.Join(pair.Values, ", ")))
	}
	return strings.Join(parts, " | ")
}
