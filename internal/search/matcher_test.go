package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameMatcherEmptyQueryMatchesAll(t *testing.T) {
	got := NewNameMatcher().Match("  ", []string{"a", "b", "c"})
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestNameMatcherGlobKeepsInputOrder(t *testing.T) {
	names := []string{"main.go", "README.md", "loop_test.go", "notes.txt"}
	got := NewNameMatcher().Match("*.GO", names)
	assert.Equal(t, []int{0, 2}, got)
}

func TestNameMatcherFuzzyIsCaseInsensitive(t *testing.T) {
	names := []string{"Makefile", "main.go", "docs"}
	got := NewNameMatcher().Match("mn", names)
	require.NotEmpty(t, got)
	assert.Contains(t, got, 1)
	assert.NotContains(t, got, 2)
}

func TestNameMatcherIsDeterministic(t *testing.T) {
	names := []string{"alpha.txt", "alpaca.txt", "beta.txt", "alp"}
	m := NewNameMatcher()
	first := m.Match("alp", names)
	second := m.Match("alp", names)
	assert.Equal(t, first, second)
	require.NotEmpty(t, first)
	assert.Equal(t, 3, first[0], "closest match should rank first")
}

func TestHighlightSpans(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  []Span
	}{
		{name: "contiguous", query: "mai", text: "main.go", want: []Span{{0, 3}}},
		{name: "gapped", query: "mg", text: "main.go", want: []Span{{0, 1}, {5, 6}}},
		{name: "case folded", query: "RE", text: "readme", want: []Span{{0, 2}}},
		{name: "miss", query: "xyz", text: "main.go", want: nil},
		{name: "glob", query: "*.go", text: "main.go", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightSpans(tt.query, tt.text))
		})
	}
}
