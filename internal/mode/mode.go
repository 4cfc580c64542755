// Package mode holds the interaction modes. Each mode turns keys into
// actions, may rewrite or follow up on the actions it sees, decides when to
// hand over to another mode, and describes the screen for the renderer.
package mode

import (
	"sort"
	"strings"

	"github.com/kk-code-lab/fluxdir/internal/config"
	"github.com/kk-code-lab/fluxdir/internal/state"
	"github.com/kk-code-lab/fluxdir/internal/ui/input"
	"github.com/kk-code-lab/fluxdir/internal/ui/view"
)

// Kind identifies a mode.
type Kind int

const (
	KindExplore Kind = iota
	KindSearch
	KindBookmarks
)

func (k Kind) String() string {
	switch k {
	case KindExplore:
		return config.ModeExplore
	case KindSearch:
		return config.ModeSearch
	case KindBookmarks:
		return config.ModeBookmarks
	default:
		return "unknown"
	}
}

// ParseKind maps a keymap mode name to its Kind.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(name) {
	case config.ModeExplore:
		return KindExplore, true
	case config.ModeSearch:
		return KindSearch, true
	case config.ModeBookmarks:
		return KindBookmarks, true
	}
	return KindExplore, false
}

// Behavior is implemented by the closed set of modes in this package.
//
// The application calls HandleKey for every key press, passes the result
// through Intercept, dispatches it, dispatches whatever AfterDispatch
// returns, and finally asks Next whether another mode should take over.
type Behavior interface {
	Kind() Kind
	HandleKey(k input.Key, s *state.AppState, km config.Keymap) state.Action
	Intercept(a state.Action, s *state.AppState) state.Action
	AfterDispatch(a state.Action, s *state.AppState) []state.Action
	Next(a state.Action, s *state.AppState) (Kind, bool)
	Render(s *state.AppState) view.View
	OnEnter(s *state.AppState)
	OnExit()
	sealed()
}

const defaultPageSize = 10

// keysFor lists the keys bound to action in mode, single characters first.
func keysFor(km config.Keymap, mode, action string) []string {
	var keys []string
	for key, bound := range km[mode] {
		if bound == action {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := len([]rune(keys[i])) == 1, len([]rune(keys[j])) == 1
		if li != lj {
			return li
		}
		return keys[i] < keys[j]
	})
	return keys
}

type hintSpec struct {
	action string
	label  string
}

// buildHints renders "key: label" pairs for the first key of each bound
// action, skipping unbound ones.
func buildHints(km config.Keymap, mode string, items []hintSpec) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		keys := keysFor(km, mode, item.action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keys[0]+": "+item.label)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ")
}

func moveAction(action string, pageSize int) (state.Action, bool) {
	switch action {
	case config.ActionUp:
		return state.MoveSelection{Delta: -1}, true
	case config.ActionDown:
		return state.MoveSelection{Delta: 1}, true
	case config.ActionPageUp:
		return state.MoveSelection{Delta: -pageSize}, true
	case config.ActionPageDown:
		return state.MoveSelection{Delta: pageSize}, true
	case config.ActionTop:
		return state.SelectFirst{}, true
	case config.ActionBottom:
		return state.SelectLast{}, true
	}
	return nil, false
}

func rowFor(e state.FileEntry) view.Row {
	row := view.Row{Text: e.Name, Hidden: e.IsHidden()}
	switch {
	case e.IsSymlink():
		row.Kind = view.RowSymlink
	case e.IsDir:
		row.Kind = view.RowDirectory
	default:
		row.Kind = view.RowFile
		row.Detail = formatSize(e.Size)
	}
	return row
}

func sortedMapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
