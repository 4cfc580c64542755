package mode

import (
	"path/filepath"

	"github.com/kk-code-lab/fluxdir/internal/config"
	"github.com/kk-code-lab/fluxdir/internal/state"
	"github.com/kk-code-lab/fluxdir/internal/ui/input"
	"github.com/kk-code-lab/fluxdir/internal/ui/view"
)

// Bookmarks lists saved directories. The list cursor lives here, not in
// AppState, so moving through the list never enters history.
type Bookmarks struct {
	cursor int
	hints  string
}

func NewBookmarks(km config.Keymap) *Bookmarks {
	return &Bookmarks{
		hints: buildHints(km, config.ModeBookmarks, []hintSpec{
			{config.ActionSelect, "go"},
			{config.ActionUnbookmark, "remove"},
			{config.ActionCancel, "back"},
			{config.ActionQuit, "quit"},
		}),
	}
}

func (*Bookmarks) Kind() Kind { return KindBookmarks }
func (*Bookmarks) sealed()    {}

// Cursor returns the highlighted row.
func (b *Bookmarks) Cursor() int { return b.cursor }

func (b *Bookmarks) HandleKey(k input.Key, s *state.AppState, km config.Keymap) state.Action {
	action, ok := km.Lookup(config.ModeBookmarks, k.Name())
	if !ok {
		return nil
	}
	marks := s.Bookmarks()
	b.clamp(len(marks))

	switch action {
	case config.ActionUp:
		b.move(-1, len(marks))
	case config.ActionDown:
		b.move(1, len(marks))
	case config.ActionPageUp:
		b.move(-defaultPageSize, len(marks))
	case config.ActionPageDown:
		b.move(defaultPageSize, len(marks))
	case config.ActionTop:
		b.cursor = 0
	case config.ActionBottom:
		b.cursor = max(len(marks)-1, 0)
	case config.ActionSelect, config.ActionAccept:
		if len(marks) > 0 {
			return state.LoadDirectory{Path: marks[b.cursor]}
		}
	case config.ActionUnbookmark:
		if len(marks) > 0 {
			return state.RemoveBookmark{Path: marks[b.cursor]}
		}
	case config.ActionCancel, config.ActionBack:
		return state.SwitchMode{To: config.ModeExplore}
	case config.ActionQuit:
		return state.Quit{}
	}
	return nil
}

func (b *Bookmarks) move(delta, n int) {
	b.cursor += delta
	b.clamp(n)
}

func (b *Bookmarks) clamp(n int) {
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (*Bookmarks) Intercept(a state.Action, _ *state.AppState) state.Action { return a }

func (b *Bookmarks) AfterDispatch(a state.Action, s *state.AppState) []state.Action {
	if _, ok := a.(state.RemoveBookmark); ok {
		b.clamp(len(s.Bookmarks()))
	}
	return nil
}

// Next returns to explore once a bookmark has been opened. A failed load
// leaves the directory unchanged, so the list stays open.
func (*Bookmarks) Next(a state.Action, s *state.AppState) (Kind, bool) {
	switch a := a.(type) {
	case state.LoadDirectory:
		return KindExplore, filepath.Clean(a.Path) == s.CurrentDir()
	case state.SwitchMode:
		return ParseKind(a.To)
	}
	return KindBookmarks, false
}

// OnEnter puts the cursor on the current directory when it is bookmarked.
func (b *Bookmarks) OnEnter(s *state.AppState) {
	b.cursor = 0
	for i, path := range s.Bookmarks() {
		if path == s.CurrentDir() {
			b.cursor = i
			break
		}
	}
}

func (b *Bookmarks) OnExit() { b.cursor = 0 }

func (b *Bookmarks) Render(s *state.AppState) view.View {
	marks := s.Bookmarks()
	b.clamp(len(marks))

	v := view.View{
		Mode:   KindBookmarks.String(),
		Title:  s.CurrentDir(),
		Rows:   make([]view.Row, len(marks)),
		Cursor: -1,
		Hints:  b.hints,
		Empty:  "(no bookmarks)",
	}
	for i, path := range marks {
		v.Rows[i] = view.Row{
			Text:   path,
			Kind:   view.RowBookmark,
			Marked: path == s.CurrentDir(),
		}
	}
	if len(marks) > 0 {
		v.Cursor = b.cursor
		v.Status = marks[b.cursor]
	}
	return v
}
