package filter

import (
	"strings"

	"jobdigest/internal/config"
	"jobdigest/internal/model"
)

// Ensure KeywordAndLocationFilter implements model.PostingFilter.
var _ model.PostingFilter = (*KeywordAndLocationFilter)(nil)

// KeywordAndLocationFilter keeps postings whose title contains at least one
// positive keyword and none of the exclude keywords, and whose location looks
// like a US or Remote-US location. Matching is case-insensitive substring.
// Exclude keywords take precedence over positive keywords. An empty positive
// list is treated as "match all titles".
type KeywordAndLocationFilter struct {
	positive []string
	negative []string
	location *USLocationMatcher
}

// NewKeywordAndLocationFilter builds a filter from the immutable filter
// configuration loaded at startup.
func NewKeywordAndLocationFilter(cfg config.FilterConfig) *KeywordAndLocationFilter {
	return &KeywordAndLocationFilter{
		positive: lowerAll(cfg.TitleKeywords),
		negative: lowerAll(cfg.TitleExcludeKeywords),
		location: NewUSLocationMatcher(cfg.ExtraLocationMarkers),
	}
}

// Match returns true if the posting survives all three checks:
// no exclude keyword in the title, at least one positive keyword in the
// title, and a US-indicating location. Binary keep/reject, no scoring.
func (f *KeywordAndLocationFilter) Match(p model.Posting) bool {
	title := strings.ToLower(p.Title)

	// Exclude keywords win over positive keywords.
	for _, kw := range f.negative {
		if kw != "" && strings.Contains(title, kw) {
			return false
		}
	}

	if len(f.positive) > 0 {
		matched := false
		for _, kw := range f.positive {
			if kw != "" && strings.Contains(title, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return f.location.Match(p.Location)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
