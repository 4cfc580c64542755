package config

import (
	"fmt"
	"strings"
)

// Keymap maps a mode name to a table of key name -> action name. Key names
// are single characters ("j", "G") or named keys ("Enter", "Ctrl+R").
type Keymap map[string]map[string]string

// Action names understood by the modes.
const (
	ActionUp           = "up"
	ActionDown         = "down"
	ActionPageUp       = "page_up"
	ActionPageDown     = "page_down"
	ActionTop          = "top"
	ActionBottom       = "bottom"
	ActionSelect       = "select"
	ActionBack         = "back"
	ActionRefresh      = "refresh"
	ActionToggleHidden = "toggle_hidden"
	ActionHelp         = "help"
	ActionSearch       = "search"
	ActionAccept       = "accept"
	ActionCancel       = "cancel"
	ActionBookmark     = "bookmark"
	ActionUnbookmark   = "unbookmark"
	ActionBookmarks    = "bookmarks"
	ActionUndo         = "undo"
	ActionRedo         = "redo"
	ActionOpen         = "open"
	ActionQuit         = "quit"
	ActionSuspend      = "suspend"
)

var knownActions = map[string]struct{}{
	ActionUp: {}, ActionDown: {}, ActionPageUp: {}, ActionPageDown: {},
	ActionTop: {}, ActionBottom: {}, ActionSelect: {}, ActionBack: {},
	ActionRefresh: {}, ActionToggleHidden: {}, ActionHelp: {}, ActionSearch: {},
	ActionAccept: {}, ActionCancel: {}, ActionBookmark: {}, ActionUnbookmark: {},
	ActionBookmarks: {}, ActionUndo: {}, ActionRedo: {}, ActionOpen: {},
	ActionQuit: {}, ActionSuspend: {}, unbindActionName: {},
}

var knownModes = map[string]struct{}{
	ModeExplore:   {},
	ModeSearch:    {},
	ModeBookmarks: {},
}

// KnownActions returns every action name accepted in a keymap.
func KnownActions() []string {
	names := make([]string, 0, len(knownActions))
	for name := range knownActions {
		if name != unbindActionName {
			names = append(names, name)
		}
	}
	return names
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		ModeExplore: {
			"k": ActionUp, "Up": ActionUp,
			"j": ActionDown, "Down": ActionDown,
			"PgUp": ActionPageUp, "Ctrl+B": ActionPageUp,
			"PgDn": ActionPageDown, "Ctrl+F": ActionPageDown,
			"Home": ActionTop, "G": ActionBottom, "End": ActionBottom,
			"l": ActionSelect, "Right": ActionSelect, "Enter": ActionSelect,
			"h": ActionBack, "Left": ActionBack, "Backspace": ActionBack,
			"r": ActionRefresh, "F5": ActionRefresh,
			".": ActionToggleHidden,
			"?": ActionHelp,
			"/": ActionSearch,
			"m": ActionBookmark, "M": ActionUnbookmark, "'": ActionBookmarks,
			"u": ActionUndo, "Ctrl+R": ActionRedo,
			"e": ActionOpen,
			"q": ActionQuit, "Ctrl+C": ActionQuit,
			"Ctrl+Z": ActionSuspend,
		},
		ModeSearch: {
			"Up": ActionUp, "Ctrl+P": ActionUp,
			"Down": ActionDown, "Ctrl+N": ActionDown,
			"Enter":  ActionAccept,
			"Esc":    ActionCancel,
			"Ctrl+C": ActionQuit,
		},
		ModeBookmarks: {
			"k": ActionUp, "Up": ActionUp,
			"j": ActionDown, "Down": ActionDown,
			"l": ActionSelect, "Enter": ActionSelect,
			"d":   ActionUnbookmark,
			"Esc": ActionCancel, "'": ActionCancel, "h": ActionCancel,
			"q": ActionQuit, "Ctrl+C": ActionQuit,
		},
	}
}

// Lookup returns the action name bound to key in mode. Named keys match
// case-insensitively; single characters match exactly. Bindings to "none"
// report no binding.
func (km Keymap) Lookup(mode, key string) (string, bool) {
	table, ok := km[mode]
	if !ok {
		return "", false
	}
	action, ok := table[key]
	if !ok {
		for _, candidate := range sortedKeys(table) {
			if keyNamesEqual(candidate, key) {
				action, ok = table[candidate], true
				break
			}
		}
	}
	if !ok || action == unbindActionName {
		return "", false
	}
	return action, true
}

// Merge returns a copy of km with the tables in override layered on top,
// key by key.
func (km Keymap) Merge(override Keymap) Keymap {
	out := make(Keymap, len(km))
	for mode, table := range km {
		copied := make(map[string]string, len(table))
		for k, v := range table {
			copied[k] = v
		}
		out[mode] = copied
	}
	for mode, table := range override {
		dst, ok := out[mode]
		if !ok {
			dst = make(map[string]string, len(table))
			out[mode] = dst
		}
		for k, v := range table {
			for existing := range dst {
				if existing != k && keyNamesEqual(existing, k) {
					delete(dst, existing)
				}
			}
			dst[k] = v
		}
	}
	return out
}

func (km Keymap) validate() error {
	for mode, table := range km {
		if _, ok := knownModes[mode]; !ok {
			return fmt.Errorf("%w: keymap: unknown mode %q", ErrConfig, mode)
		}
		for _, key := range sortedKeys(table) {
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("%w: keymap.%s: empty key name", ErrConfig, mode)
			}
			if _, ok := knownActions[table[key]]; !ok {
				return fmt.Errorf("%w: keymap.%s: unknown action %q for key %q", ErrConfig, mode, table[key], key)
			}
		}
	}
	return nil
}

func keyNamesEqual(a, b string) bool {
	if a == b {
		return true
	}
	if len([]rune(a)) == 1 || len([]rune(b)) == 1 {
		return false
	}
	return strings.EqualFold(a, b)
}
