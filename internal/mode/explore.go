package mode

import (
	"strings"

	"github.com/kk-code-lab/fluxdir/internal/config"
	"github.com/kk-code-lab/fluxdir/internal/state"
	"github.com/kk-code-lab/fluxdir/internal/ui/input"
	"github.com/kk-code-lab/fluxdir/internal/ui/view"
)

// Explore is the default mode: browsing the current directory.
type Explore struct {
	pendingG    bool
	pageSize    int
	commandKeys map[string]string
	preview     Previewer
	cache       previewCache
	hints       string
	help        []view.HelpLine
}

// NewExplore builds the explore mode. commandKeys maps key names to custom
// command names; preview may be nil to show metadata only.
func NewExplore(km config.Keymap, commandKeys map[string]string, preview Previewer) *Explore {
	return &Explore{
		pageSize:    defaultPageSize,
		commandKeys: commandKeys,
		preview:     preview,
		hints: buildHints(km, config.ModeExplore, []hintSpec{
			{config.ActionSelect, "open"},
			{config.ActionBack, "back"},
			{config.ActionSearch, "search"},
			{config.ActionBookmarks, "bookmarks"},
			{config.ActionUndo, "undo"},
			{config.ActionHelp, "help"},
			{config.ActionQuit, "quit"},
		}),
		help: exploreHelp(km, commandKeys),
	}
}

func (*Explore) Kind() Kind { return KindExplore }
func (*Explore) sealed()    {}

func (e *Explore) HandleKey(k input.Key, s *state.AppState, km config.Keymap) state.Action {
	name := k.Name()

	if s.HelpVisible() {
		switch name {
		case "?", "Esc", "q":
			return state.ToggleHelp{}
		case "Ctrl+C":
			return state.Quit{}
		}
		return nil
	}

	if e.pendingG {
		e.pendingG = false
		if name == "g" {
			return state.SelectFirst{}
		}
	}

	if cmd, ok := e.commandKeys[name]; ok {
		return state.RunCommand{Name: cmd}
	}
	if action, ok := km.Lookup(config.ModeExplore, name); ok {
		return e.translate(action, s)
	}
	if name == "g" {
		e.pendingG = true
	}
	return nil
}

func (e *Explore) translate(action string, s *state.AppState) state.Action {
	if a, ok := moveAction(action, e.pageSize); ok {
		return a
	}

	switch action {
	case config.ActionSelect:
		if entry, ok := s.SelectedEntry(); ok && !entry.IsDir {
			return state.OpenSelected{}
		}
		return state.EnterDirectory{}
	case config.ActionBack:
		return state.GoToParent{}
	case config.ActionRefresh:
		return state.Refresh{}
	case config.ActionToggleHidden:
		return state.ToggleHiddenFiles{}
	case config.ActionHelp:
		return state.ToggleHelp{}
	case config.ActionSearch:
		return state.StartSearch{}
	case config.ActionBookmark:
		return state.AddBookmark{Path: s.CurrentDir()}
	case config.ActionUnbookmark:
		return state.RemoveBookmark{Path: s.CurrentDir()}
	case config.ActionBookmarks:
		return state.SwitchMode{To: config.ModeBookmarks}
	case config.ActionUndo:
		return state.Undo{}
	case config.ActionRedo:
		return state.Redo{}
	case config.ActionOpen:
		return state.OpenSelected{}
	case config.ActionQuit:
		return state.Quit{}
	case config.ActionSuspend:
		return state.Suspend{}
	}
	return nil
}

func (*Explore) Intercept(a state.Action, _ *state.AppState) state.Action { return a }

// AfterDispatch runs the first search right away so the result list is
// populated before any query is typed.
func (*Explore) AfterDispatch(a state.Action, s *state.AppState) []state.Action {
	if _, ok := a.(state.StartSearch); ok && s.SearchActive() {
		return []state.Action{state.ExecuteSearch{}}
	}
	return nil
}

func (*Explore) Next(a state.Action, s *state.AppState) (Kind, bool) {
	switch a := a.(type) {
	case state.StartSearch:
		return KindSearch, s.SearchActive()
	case state.SwitchMode:
		return ParseKind(a.To)
	}
	return KindExplore, false
}

func (e *Explore) OnEnter(*state.AppState) { e.pendingG = false }
func (e *Explore) OnExit()                 { e.pendingG = false }

func (e *Explore) Render(s *state.AppState) view.View {
	entries := s.Entries()
	v := view.View{
		Mode:   KindExplore.String(),
		Title:  s.CurrentDir(),
		Rows:   make([]view.Row, len(entries)),
		Cursor: -1,
		Hints:  e.hints,
	}
	for i, entry := range entries {
		v.Rows[i] = rowFor(entry)
		v.Rows[i].Marked = entry.IsDir && s.IsBookmarked(entry.FullPath)
	}

	switch {
	case len(entries) > 0:
		v.Cursor = s.SelectedIndex()
	case s.TotalEntryCount() > 0:
		v.Empty = "(only hidden entries)"
	default:
		v.Empty = "(empty directory)"
	}

	if entry, ok := s.SelectedEntry(); ok {
		v.Status = entry.FullPath
		v.Detail = e.cache.detailLines(entry, entry.IsDir && s.IsBookmarked(entry.FullPath), e.preview)
	} else {
		v.Status = s.CurrentDir()
	}
	if s.ShowHidden() {
		v.Status += "  [hidden shown]"
	}

	if s.HelpVisible() {
		v.Help = e.help
		v.Hints = "? / Esc / q: close help"
	}
	return v
}

func exploreHelp(km config.Keymap, commandKeys map[string]string) []view.HelpLine {
	sections := []struct {
		title   string
		entries []hintSpec
	}{
		{"Navigation", []hintSpec{
			{config.ActionUp, "Move up"},
			{config.ActionDown, "Move down"},
			{config.ActionPageUp, "Page up"},
			{config.ActionPageDown, "Page down"},
			{config.ActionTop, "First entry (also gg)"},
			{config.ActionBottom, "Last entry"},
			{config.ActionSelect, "Enter directory / open file"},
			{config.ActionBack, "Parent directory"},
		}},
		{"View", []hintSpec{
			{config.ActionRefresh, "Refresh"},
			{config.ActionToggleHidden, "Toggle hidden files"},
			{config.ActionSearch, "Search (fuzzy, or glob like *.go)"},
			{config.ActionHelp, "Toggle this help"},
		}},
		{"Bookmarks", []hintSpec{
			{config.ActionBookmark, "Bookmark current directory"},
			{config.ActionUnbookmark, "Remove bookmark for current directory"},
			{config.ActionBookmarks, "Open bookmark list"},
		}},
		{"History & Actions", []hintSpec{
			{config.ActionUndo, "Undo (reloads from disk count as steps)"},
			{config.ActionRedo, "Redo"},
			{config.ActionOpen, "Open with editor or opener"},
			{config.ActionSuspend, "Suspend to shell"},
			{config.ActionQuit, "Quit"},
		}},
	}

	var lines []view.HelpLine
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, view.HelpLine{})
		}
		lines = append(lines, view.HelpLine{Description: section.title})
		for _, item := range section.entries {
			keys := keysFor(km, config.ModeExplore, item.action)
			if len(keys) == 0 {
				continue
			}
			lines = append(lines, view.HelpLine{Keys: strings.Join(keys, ", "), Description: item.label})
		}
	}

	if len(commandKeys) > 0 {
		lines = append(lines, view.HelpLine{}, view.HelpLine{Description: "Commands"})
		for _, key := range sortedMapKeys(commandKeys) {
			lines = append(lines, view.HelpLine{Keys: key, Description: commandKeys[key]})
		}
	}
	return lines
}
