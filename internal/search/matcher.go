package search

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Matcher selects the names that satisfy a query. Implementations must be
// deterministic: the same query over the same names always yields the same
// indices in the same order.
type Matcher interface {
	Match(query string, names []string) []int
}

// NameMatcher matches glob patterns with gobwas/glob and everything else
// with fuzzy subsequence ranking. Matching is case-insensitive.
type NameMatcher struct{}

// NewNameMatcher returns the default matcher.
func NewNameMatcher() NameMatcher {
	return NameMatcher{}
}

// Match returns indices into names. An empty query matches every name in
// input order; glob queries keep input order; fuzzy queries are ordered by
// edit distance with input order breaking ties.
func (NameMatcher) Match(query string, names []string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		all := make([]int, len(names))
		for i := range names {
			all[i] = i
		}
		return all
	}

	if IsGlobQuery(query) {
		if g, err := glob.Compile(strings.ToLower(query)); err == nil {
			return matchGlob(g, names)
		}
	}
	return matchFuzzy(query, names)
}

// IsGlobQuery reports whether query contains glob metacharacters.
func IsGlobQuery(query string) bool {
	return strings.ContainsAny(query, "*?[{")
}

func matchGlob(g glob.Glob, names []string) []int {
	out := make([]int, 0, len(names))
	for i, name := range names {
		if g.Match(strings.ToLower(name)) {
			out = append(out, i)
		}
	}
	return out
}

func matchFuzzy(query string, names []string) []int {
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r.OriginalIndex
	}
	return out
}
