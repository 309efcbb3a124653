package release

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// LatestReleaseSegment replaces the release-specific slug of a product link
const LatestReleaseSegment = "latest-release"

var finalSegment = regexp.MustCompile(`/[^/]+$`)

// LatestReleaseURL turns a product href into the absolute URL of its
// latest-release page. The final path segment is replaced with
// LatestReleaseSegment and the result is resolved against base.
func LatestReleaseURL(href string, base *url.URL) (string, error) {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(finalSegment.ReplaceAllString(href, "/"+LatestReleaseSegment))
	if err != nil {
		return "", fmt.Errorf("parsing product link %q: %w", href, err)
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}

// ResolveTopics derives the theme, parent topic and topic from a latest-release URL.
//
// Precondition: latestURL has the shape
// .../statistics/<theme>/<parentTopic>/<topic>/latest-release. The segments are
// taken by position from the end and are not validated, so a URL of any other
// shape yields whatever segments sit in those positions. Segments that do not
// exist come back empty.
func ResolveTopics(latestURL string) (theme, parentTopic, topic string) {
	parts := strings.Split(latestURL, "/")
	return fromEnd(parts, 4), fromEnd(parts, 3), fromEnd(parts, 2)
}

func fromEnd(parts []string, n int) string {
	if n > len(parts) {
		return ""
	}
	return parts[len(parts)-n]
}
