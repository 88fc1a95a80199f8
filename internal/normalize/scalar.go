package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Domain trims, lowercases, and strips a single leading "www." from a raw
// domain. Only one level is stripped: "www.www.x.com" becomes "www.x.com".
func Domain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	return strings.TrimPrefix(d, "www.")
}

// CompanyName trims a name and collapses internal whitespace runs.
func CompanyName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Email lowercases and trims an email address.
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Number parses a numeric string, returning nil for blank or unparseable
// input. Malformed numbers are treated as absent, never coerced to zero.
func Number(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

var trueRe = regexp.MustCompile(`(?i)^true$`)

// Bool converts TRUE/FALSE flag strings to a boolean. Anything other than a
// case-insensitive "true" is false.
func Bool(raw string) bool {
	return trueRe.MatchString(strings.TrimSpace(raw))
}

// dateLayouts are the accepted ISO-style date formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-style date string. The boolean is false for blank
// or malformed input; malformed dates are excluded from downstream min and
// day-difference computations rather than coerced to a zero time.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
