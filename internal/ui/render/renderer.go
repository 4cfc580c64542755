package render

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/fluxdir/internal/textutil"
	"github.com/kk-code-lab/fluxdir/internal/ui/view"
)

// Renderer paints a view.View onto a tcell screen.
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	panelRatio       int
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:     screen,
		theme:      GetColorTheme(),
		panelRatio: defaultPanelRatio,
	}
}

// SetPanelRatio sets the list panel's share of the width in percent.
func (r *Renderer) SetPanelRatio(ratio int) {
	r.panelRatio = ratio
}

// ListHeight returns how many list rows fit on a screen of height h for v.
// Modes use it to size page jumps.
func ListHeight(h int, v view.View) int {
	rows := h - listStartY(v) - footerHeight
	if rows < 0 {
		return 0
	}
	return rows
}

const footerHeight = 2

func listStartY(v view.View) int {
	if v.Prompt != nil {
		return 2
	}
	return 1
}

// Render draws the entire UI for v.
func (r *Renderer) Render(v view.View) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if len(v.Help) > 0 {
		r.drawHelpOverlay(v, w, h)
		r.screen.Show()
		return
	}

	layout := computeLayout(w, r.panelRatio, v.Detail != nil)

	r.drawHeader(v, w)
	if v.Prompt != nil {
		r.drawPrompt(*v.Prompt, w)
	}
	r.drawList(v, layout.listWidth, h)
	if layout.showDetail {
		r.drawDetail(v, layout, h)
	}
	r.drawStatusLine(v, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar with the mode badge and breadcrumb.
func (r *Renderer) drawHeader(v view.View, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	badgeStyle := tcell.StyleDefault.Background(r.theme.ModeBg).Foreground(r.theme.ModeFg).Bold(true)

	endX := 0
	if v.Mode != "" {
		endX = r.drawTextLine(0, 0, w, " "+strings.ToUpper(v.Mode)+" ", badgeStyle)
	}
	if endX < w {
		r.screen.SetContent(endX, 0, ' ', nil, headerStyle)
		endX++
	}

	segments := formatBreadcrumbSegments(v.Title)
	if len(segments) > 0 && endX < w {
		lastIdx := len(segments) - 1
		last := textutil.Sanitize(segments[lastIdx])
		prefix := ""
		if lastIdx > 0 {
			prefix = textutil.Sanitize(strings.Join(segments[:lastIdx], " › ") + " › ")
		}

		available := w - endX
		lastWidth := r.measureTextWidth(last)
		if lastWidth >= available {
			endX = r.drawTextLine(endX, 0, available, r.truncateLeft(last, available), headerStyle.Bold(true))
		} else {
			prefix = r.truncateLeft(prefix, available-lastWidth)
			endX = r.drawTextLine(endX, 0, available, prefix, headerStyle)
			endX = r.drawTextLine(endX, 0, w-endX, last, headerStyle.Bold(true))
		}
	}

	r.fill(endX, w, 0, headerStyle)
}

func formatBreadcrumbSegments(path string) []string {
	if path == "" {
		return nil
	}

	cleanPath := filepath.Clean(path)
	slashed := filepath.ToSlash(cleanPath)
	if slashed == "/" {
		return []string{"/"}
	}

	var segments []string
	if strings.HasPrefix(slashed, "/") {
		segments = append(segments, "/")
		slashed = strings.TrimPrefix(slashed, "/")
	}
	for _, part := range strings.Split(slashed, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) == 0 {
		return []string{cleanPath}
	}
	return segments
}

func (r *Renderer) drawPrompt(p view.Prompt, w int) {
	style := tcell.StyleDefault.Foreground(r.theme.Foreground)
	cursorStyle := style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)

	x := r.drawTextLine(0, 1, w, textutil.Sanitize(p.Label), style)
	x = r.drawTextLine(x, 1, w-x, textutil.Sanitize(p.Text), style)
	x = r.drawStyledRune(x, 1, w, '█', cursorStyle)
	if p.Text == "" && p.Placeholder != "" && x < w {
		x = r.drawTextLine(x, 1, w-x, " "+p.Placeholder, style.Dim(true))
	}
	if p.Info != "" && x < w {
		x = r.drawTextLine(x, 1, w-x, "  "+textutil.Sanitize(p.Info), style.Dim(true))
	}
	r.fill(x, w, 1, style)
}

// drawList renders the rows of v, scrolled so the cursor stays visible.
func (r *Renderer) drawList(v view.View, panelWidth, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background)
	top := listStartY(v)
	height := ListHeight(h, v)
	bottom := top + height

	if len(v.Rows) == 0 {
		y := top
		if v.Empty != "" && y < bottom {
			x := r.drawTextLine(0, y, panelWidth, " "+v.Empty, baseStyle.Foreground(r.theme.HiddenFg).Dim(true))
			r.fill(x, panelWidth, y, baseStyle)
			y++
		}
		for ; y < bottom; y++ {
			r.fill(0, panelWidth, y, baseStyle)
		}
		return
	}

	start, end := v.Window(height)
	y := top
	for i := start; i < end; i++ {
		r.drawRow(v.Rows[i], i == v.Cursor, y, panelWidth, baseStyle)
		y++
	}
	for ; y < bottom; y++ {
		r.fill(0, panelWidth, y, baseStyle)
	}
}

func (r *Renderer) drawRow(row view.Row, selected bool, y, panelWidth int, baseStyle tcell.Style) {
	var rowStyle tcell.Style
	switch {
	case selected:
		rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	case row.Kind == view.RowSymlink:
		rowStyle = baseStyle.Foreground(r.theme.SymlinkFg)
	case row.Kind == view.RowDirectory:
		rowStyle = baseStyle.Foreground(r.theme.DirectoryFg)
	case row.Kind == view.RowBookmark:
		rowStyle = baseStyle.Foreground(r.theme.BookmarkFg)
	default:
		rowStyle = baseStyle.Foreground(r.theme.FileFg)
	}
	if row.Hidden && !selected {
		rowStyle = rowStyle.Foreground(r.theme.HiddenFg)
	}
	matchStyle := rowStyle.Foreground(r.theme.MatchFg).Bold(true)
	if selected {
		matchStyle = rowStyle.Bold(true).Underline(true)
	}

	r.fill(0, panelWidth, y, rowStyle)

	mark := ' '
	if row.Marked {
		mark = '*'
	}
	icon := ' '
	switch row.Kind {
	case view.RowSymlink:
		icon = '@'
	case view.RowDirectory:
		icon = '/'
	case view.RowBookmark:
		icon = '>'
	}

	markStyle := rowStyle
	if !selected {
		markStyle = rowStyle.Foreground(r.theme.BookmarkFg)
	}
	x := r.drawStyledRune(0, y, panelWidth, mark, markStyle)
	x = r.drawStyledRune(x, y, panelWidth, icon, rowStyle)
	x = r.drawStyledRune(x, y, panelWidth, ' ', rowStyle)

	detail := textutil.Sanitize(row.Detail)
	detailWidth := r.measureTextWidth(detail)
	nameLimit := panelWidth - 1
	if detail != "" && panelWidth-x-detailWidth-2 >= minNameWidth {
		nameLimit = panelWidth - detailWidth - 2
		r.drawTextLine(nameLimit+1, y, detailWidth, detail, rowStyle.Dim(!selected))
	}

	name := textutil.Sanitize(row.Text)
	name = r.truncateTextToWidth(name, nameLimit-x)
	r.drawHighlightedText(x, y, nameLimit, name, row.Highlights, rowStyle, matchStyle)
}

const minNameWidth = 12

func (r *Renderer) drawDetail(v view.View, layout layoutMetrics, h int) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.DetailFg)
	top := 1
	bottom := h - footerHeight
	sepX := layout.detailStart - layout.separatorWidth
	for y := top; y < bottom; y++ {
		r.screen.SetContent(sepX, y, '│', nil, style.Dim(true))
	}

	startX := layout.detailStart + 1
	width := layout.detailWidth - 1
	y := top
	for _, line := range v.Detail {
		if y >= bottom {
			break
		}
		text := r.truncateTextToWidth(textutil.Sanitize(line), width)
		x := r.drawTextLine(startX, y, width, text, style)
		r.fill(x, startX+width, y, style)
		y++
	}
}

// drawStatusLine renders the status or error line and the key hints.
func (r *Renderer) drawStatusLine(v view.View, w, h int) {
	if h < footerHeight {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	errorStyle := tcell.StyleDefault.Background(r.theme.ErrorBg).Foreground(r.theme.ErrorFg)

	statusY := h - 2
	text, style := v.Status, normalStyle
	if v.Error != "" {
		text, style = v.Error, errorStyle
	}
	text = r.truncateLeft(textutil.Sanitize(text), w)
	x := r.drawTextLine(0, statusY, w, text, style)
	r.fill(x, w, statusY, style)

	hints := r.truncateTextToWidth(textutil.Sanitize(v.Hints), w)
	x = r.drawTextLine(0, h-1, w, hints, normalStyle.Dim(true))
	r.fill(x, w, h-1, normalStyle)
}
