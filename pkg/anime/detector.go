package anime

import (
	"regexp"
	"strings"
)

// Ordered detection patterns, first match wins. The capture group is the
// candidate catalog query.
var queryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:anime|show|series) (.+?)(?:\?|$)`),
	regexp.MustCompile(`(?i)about (.+?)(?: anime)?$`),
	regexp.MustCompile(`(?i)details (?:for|on) (.+)`),
}

// DetectQuery scans a user message for an anime lookup phrase and returns
// the trimmed query text. ok is false when no pattern matches (or the
// capture trims to nothing).
func DetectQuery(text string) (query string, ok bool) {
	for _, pattern := range queryPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			q := strings.TrimSpace(m[1])
			return q, q != ""
		}
	}
	return "", false
}
