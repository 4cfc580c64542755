package mode

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kk-code-lab/fluxdir/internal/config"
	"github.com/kk-code-lab/fluxdir/internal/search"
	"github.com/kk-code-lab/fluxdir/internal/state"
	"github.com/kk-code-lab/fluxdir/internal/ui/input"
	"github.com/kk-code-lab/fluxdir/internal/ui/view"
)

// Search edits the query held in AppState and walks the result list.
type Search struct {
	pageSize int
	hints    string
}

func NewSearch(km config.Keymap) *Search {
	return &Search{
		pageSize: defaultPageSize,
		hints: buildHints(km, config.ModeSearch, []hintSpec{
			{config.ActionDown, "next"},
			{config.ActionUp, "prev"},
			{config.ActionAccept, "accept"},
			{config.ActionCancel, "cancel"},
		}),
	}
}

func (*Search) Kind() Kind { return KindSearch }
func (*Search) sealed()    {}

func (m *Search) HandleKey(k input.Key, s *state.AppState, km config.Keymap) state.Action {
	name := k.Name()
	if action, ok := km.Lookup(config.ModeSearch, name); ok {
		if a, ok := moveAction(action, m.pageSize); ok {
			return a
		}
		switch action {
		case config.ActionAccept, config.ActionSelect:
			return state.AcceptSearchResult{}
		case config.ActionCancel:
			return state.ClearSearch{}
		case config.ActionQuit:
			return state.Quit{}
		}
	}

	query := s.SearchQuery()
	switch {
	case k.IsText():
		return state.UpdateSearchQuery{Query: query + string(k.Text())}
	case name == "Backspace":
		if query == "" {
			return nil
		}
		r := []rune(query)
		return state.UpdateSearchQuery{Query: string(r[:len(r)-1])}
	case name == "Ctrl+W":
		if query == "" {
			return nil
		}
		return state.UpdateSearchQuery{Query: deleteLastWord(query)}
	case name == "Ctrl+U":
		if query == "" {
			return nil
		}
		return state.UpdateSearchQuery{Query: ""}
	}

	// Keys not claimed above fall back to explore's "back" so Left leaves
	// search the same way it leaves a directory.
	if action, ok := km.Lookup(config.ModeExplore, name); ok && action == config.ActionBack {
		return state.GoToParent{}
	}
	return nil
}

func deleteLastWord(query string) string {
	r := []rune(query)
	i := len(r)
	for i > 0 && unicode.IsSpace(r[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(r[i-1]) {
		i--
	}
	return string(r[:i])
}

// Intercept turns leaving the directory into leaving the search.
func (*Search) Intercept(a state.Action, s *state.AppState) state.Action {
	if _, ok := a.(state.GoToParent); ok && s.SearchActive() {
		return state.ClearSearch{}
	}
	return a
}

func (*Search) AfterDispatch(a state.Action, s *state.AppState) []state.Action {
	if _, ok := a.(state.UpdateSearchQuery); ok && s.SearchActive() {
		return []state.Action{state.ExecuteSearch{}}
	}
	return nil
}

func (*Search) Next(_ state.Action, s *state.AppState) (Kind, bool) {
	if !s.SearchActive() {
		return KindExplore, true
	}
	return KindSearch, false
}

func (*Search) OnEnter(*state.AppState) {}
func (*Search) OnExit()                 {}

func (m *Search) Render(s *state.AppState) view.View {
	entries := s.Entries()
	results := s.SearchResults()
	query := s.SearchQuery()

	v := view.View{
		Mode:   KindSearch.String(),
		Title:  s.CurrentDir(),
		Rows:   make([]view.Row, 0, len(results)),
		Cursor: -1,
		Hints:  m.hints,
		Prompt: &view.Prompt{
			Label:       "/",
			Text:        query,
			Placeholder: "fuzzy or glob (*.go)",
			Info:        fmt.Sprintf("%d/%d", len(results), len(entries)),
		},
	}
	for _, idx := range results {
		if idx < 0 || idx >= len(entries) {
			continue
		}
		row := rowFor(entries[idx])
		row.Marked = entries[idx].IsDir && s.IsBookmarked(entries[idx].FullPath)
		row.Highlights = search.HighlightSpans(query, entries[idx].Name)
		v.Rows = append(v.Rows, row)
	}

	if len(v.Rows) > 0 {
		v.Cursor = s.ResultCursor()
		if entry, ok := s.SelectedEntry(); ok {
			v.Status = entry.FullPath
		}
	} else {
		v.Empty = "(no matches)"
		if strings.TrimSpace(query) == "" && len(entries) == 0 {
			v.Empty = "(empty directory)"
		}
	}
	return v
}
