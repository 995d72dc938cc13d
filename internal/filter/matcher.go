package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher drops postings whose title or category hits any excluded
// keyword. This is deliberately substring matching, not semantic
// classification: "Senior Courier Logistics Planner" is dropped because
// it contains "courier", no matter how IT-adjacent "Planner" sounds.
type Matcher struct {
	keywords []string
}

// NewMatcher builds a matcher from the default keyword families plus
// any extra keywords from configuration.
func NewMatcher(extra ...string) *Matcher {
	keywords := make([]string, 0, len(DefaultExcludedKeywords)+len(extra))
	for _, kw := range DefaultExcludedKeywords {
		keywords = append(keywords, fold(kw))
	}
	for _, kw := range extra {
		if kw = fold(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return &Matcher{keywords: keywords}
}

// Match reports whether any of the given texts contains an excluded
// keyword and returns the first keyword that hit.
func (m *Matcher) Match(texts ...string) (string, bool) {
	haystack := fold(strings.Join(texts, " "))
	for _, kw := range m.keywords {
		if strings.Contains(haystack, kw) {
			return kw, true
		}
	}
	return "", false
}

var strokeReplacer = strings.NewReplacer("ł", "l", "Ł", "l")

// fold lowercases and strips diacritics so "magazyn" also catches
// whatever diacritic rendering the source uses. Polish ł has no
// combining-mark decomposition, so it is replaced up front.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, _ := transform.String(t, strokeReplacer.Replace(s))
	return strings.ToLower(folded)
}
