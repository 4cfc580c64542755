// Package view describes a screen independently of how it is painted. Modes
// produce a View from the application state; the renderer paints it.
package view

import "github.com/kk-code-lab/fluxdir/internal/search"

// RowKind selects the icon and color of a list row.
type RowKind int

const (
	RowFile RowKind = iota
	RowDirectory
	RowSymlink
	RowBookmark
)

// Row is one line of the main list.
type Row struct {
	Text       string
	Kind       RowKind
	Hidden     bool
	Marked     bool // bookmarked
	Detail     string
	Highlights []search.Span
}

// Prompt is the editable input line shown above the list.
type Prompt struct {
	Label       string
	Text        string
	Placeholder string
	Info        string
}

// HelpLine is one key binding in the help overlay.
type HelpLine struct {
	Keys        string
	Description string
}

// View is everything the renderer needs for one frame.
type View struct {
	Mode   string
	Title  string
	Prompt *Prompt

	Rows   []Row
	Cursor int // index into Rows, -1 for none
	Empty  string

	// Detail is shown in the side panel; nil hides the panel.
	Detail []string

	Status string
	Error  string
	Hints  string

	Help []HelpLine
}

// Window returns the index range [start, end) of rows that fit into height
// lines while keeping the cursor visible, roughly centered.
func (v View) Window(height int) (int, int) {
	n := len(v.Rows)
	if height <= 0 || n == 0 {
		return 0, 0
	}
	if n <= height {
		return 0, n
	}
	cursor := v.Cursor
	if cursor < 0 {
		cursor = 0
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start > n-height {
		start = n - height
	}
	return start, start + height
}
