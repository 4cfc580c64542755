package mode

import (
	"github.com/kk-code-lab/fluxdir/internal/config"
	"github.com/kk-code-lab/fluxdir/internal/state"
)

// Options configures the modes built by NewSwitcher.
type Options struct {
	// CommandKeys maps key names to custom command names in explore mode.
	CommandKeys map[string]string
	Previewer   Previewer
}

// Switcher owns one instance of every mode and tracks the active one.
type Switcher struct {
	modes  map[Kind]Behavior
	active Kind
}

func NewSwitcher(km config.Keymap, opts Options) *Switcher {
	return &Switcher{
		modes: map[Kind]Behavior{
			KindExplore:   NewExplore(km, opts.CommandKeys, opts.Previewer),
			KindSearch:    NewSearch(km),
			KindBookmarks: NewBookmarks(km),
		},
		active: KindExplore,
	}
}

func (sw *Switcher) Active() Behavior { return sw.modes[sw.active] }
func (sw *Switcher) Kind() Kind       { return sw.active }

// SwitchTo makes k the active mode. Switching to the active mode is a no-op.
func (sw *Switcher) SwitchTo(k Kind, s *state.AppState) {
	if k == sw.active {
		return
	}
	next, ok := sw.modes[k]
	if !ok {
		return
	}
	sw.modes[sw.active].OnExit()
	sw.active = k
	next.OnEnter(s)
}

// Sync keeps the active mode consistent with state that changed outside a
// mode's control, e.g. after undo/redo replaced the search flag.
func (sw *Switcher) Sync(s *state.AppState) {
	switch {
	case s.SearchActive() && sw.active != KindSearch:
		sw.SwitchTo(KindSearch, s)
	case !s.SearchActive() && sw.active == KindSearch:
		sw.SwitchTo(KindExplore, s)
	}
}

// SetPageSize sets how far page up/down moves in the list modes.
func (sw *Switcher) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	sw.modes[KindExplore].(*Explore).pageSize = n
	sw.modes[KindSearch].(*Search).pageSize = n
}
