package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is the tab stop used by the detail panel.
const DefaultTabWidth = 4

// ExpandTabs aligns tabs to multiples of width, measuring the columns
// before each tab in terminal cells.
func ExpandTabs(text string, width int) string {
	if width <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + width)
	col := 0
	for _, r := range text {
		if r != '\t' {
			b.WriteRune(r)
			col += runewidth.RuneWidth(r)
			continue
		}
		pad := width - col%width
		b.WriteString(strings.Repeat(" ", pad))
		col += pad
	}
	return b.String()
}
