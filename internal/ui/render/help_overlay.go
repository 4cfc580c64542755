package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/fluxdir/internal/textutil"
	"github.com/kk-code-lab/fluxdir/internal/ui/view"
)

func formatHelpLine(line view.HelpLine) string {
	if line.Keys == "" {
		return textutil.Sanitize(line.Description)
	}
	key := textutil.Sanitize(line.Keys)
	desc := textutil.Sanitize(line.Description)
	return fmt.Sprintf("  %-16s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(v view.View, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fill(0, w, y, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range v.Help {
		if row >= maxRow {
			break
		}
		style := baseStyle
		if line.Keys == "" {
			style = baseStyle.Bold(true)
		}
		text := r.truncateTextToWidth(formatHelpLine(line), w-4)
		r.drawTextLine(2, row, w-4, text, style)
		row++
	}

	if h > 0 {
		footer := r.truncateTextToWidth(v.Hints, w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
