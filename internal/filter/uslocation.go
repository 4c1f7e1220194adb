package filter

import (
	"regexp"
	"strings"
)

// usMarkers are case-insensitive substrings that indicate a US or Remote-US
// posting. Compared against the lower-cased location string.
var usMarkers = []string{
	"united states",
	"u.s.",
	"remote - us",
	"remote, us",
	"remote (us)",
	"remote-us",
	"us remote",
	"us-remote",
	"anywhere (us)",
	"washington, d.c.",
	"district of columbia",
	"puerto rico",
}

var stateNames = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "florida", "georgia", "hawaii", "idaho",
	"illinois", "indiana", "iowa", "kansas", "kentucky", "louisiana", "maine",
	"maryland", "massachusetts", "michigan", "minnesota", "mississippi",
	"missouri", "montana", "nebraska", "nevada", "new hampshire", "new jersey",
	"new mexico", "new york", "north carolina", "north dakota", "ohio",
	"oklahoma", "oregon", "pennsylvania", "rhode island", "south carolina",
	"south dakota", "tennessee", "texas", "utah", "vermont", "virginia",
	"washington", "west virginia", "wisconsin", "wyoming",
}

// Two-letter state abbreviations (plus US/USA) are matched case-sensitively
// against the raw location so that words like "in", "or" and "me" in foreign
// locations do not trigger a match, and "usa" inside words like "Jerusalem"
// stays inert.
var stateAbbrRegex = regexp.MustCompile(`\b(A[LKZR]|C[AOT]|DE|DC|FL|GA|HI|I[DLNA]|KS|KY|LA|M[EDAINSOT]|N[EVHJMYCD]|O[HKR]|PA|RI|S[CD]|T[NX]|UT|V[TA]|W[AVIY]|USA?)\b`)

// USLocationMatcher reports whether a raw ATS location string indicates a
// US or Remote-US posting.
type USLocationMatcher struct {
	markers []string
}

// NewUSLocationMatcher returns a matcher over the built-in marker set plus
// any extra markers from the config (lower-cased).
func NewUSLocationMatcher(extraMarkers []string) *USLocationMatcher {
	markers := make([]string, 0, len(usMarkers)+len(stateNames)+len(extraMarkers))
	markers = append(markers, usMarkers...)
	markers = append(markers, stateNames...)
	for _, m := range extraMarkers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			markers = append(markers, m)
		}
	}
	return &USLocationMatcher{markers: markers}
}

// Match returns true if the location contains any US marker or a word-bounded
// uppercase state abbreviation. An empty location never matches.
func (m *USLocationMatcher) Match(location string) bool {
	location = strings.TrimSpace(location)
	if location == "" {
		return false
	}

	lower := strings.ToLower(location)
	for _, marker := range m.markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return stateAbbrRegex.MatchString(location)
}
