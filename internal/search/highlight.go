package search

import (
	"unicode"
)

// Span is a half-open rune range [Start, End) inside a name.
type Span struct {
	Start int
	End   int
}

// HighlightSpans returns the rune ranges of name that a fuzzy query matched,
// greedily consuming query runes left to right. Glob queries and misses
// return nil.
func HighlightSpans(query, name string) []Span {
	if query == "" || IsGlobQuery(query) {
		return nil
	}
	q := make([]rune, 0, len(query))
	for _, r := range query {
		if !unicode.IsSpace(r) {
			q = append(q, unicode.ToLower(r))
		}
	}
	if len(q) == 0 {
		return nil
	}

	qi := 0
	var spans []Span
	for i, r := range []rune(name) {
		if qi == len(q) {
			break
		}
		if unicode.ToLower(r) != q[qi] {
			continue
		}
		qi++
		if n := len(spans); n > 0 && spans[n-1].End == i {
			spans[n-1].End = i + 1
			continue
		}
		spans = append(spans, Span{Start: i, End: i + 1})
	}
	if qi < len(q) {
		return nil
	}
	return spans
}
