package view

import "testing"

func rows(n int) []Row {
	out := make([]Row, n)
	for i := range out {
		out[i] = Row{Text: "row"}
	}
	return out
}

func TestWindowKeepsCursorVisible(t *testing.T) {
	tests := []struct {
		name       string
		rows       int
		cursor     int
		height     int
		start, end int
	}{
		{"fits", 5, 4, 10, 0, 5},
		{"top", 100, 0, 10, 0, 10},
		{"middle", 100, 50, 10, 45, 55},
		{"bottom", 100, 99, 10, 90, 100},
		{"no cursor", 100, -1, 10, 0, 10},
		{"no room", 100, 50, 0, 0, 0},
		{"empty", 0, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := View{Rows: rows(tt.rows), Cursor: tt.cursor}
			start, end := v.Window(tt.height)
			if start != tt.start || end != tt.end {
				t.Fatalf("Window(%d) = [%d,%d), want [%d,%d)", tt.height, start, end, tt.start, tt.end)
			}
			if tt.cursor >= 0 && end > start && (tt.cursor < start || tt.cursor >= end) {
				t.Fatalf("cursor %d outside window [%d,%d)", tt.cursor, start, end)
			}
		})
	}
}
