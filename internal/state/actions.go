package state

import "reflect"

// Action describes a requested state change. The set of variants is closed:
// only types in this package implement it. Variants carry values, never
// references into AppState.
type Action interface {
	isAction()
}

// ===== NAVIGATION ACTIONS =====

// MoveSelection moves the selection by Delta rows, clamped to the list. While
// a search is active it moves through the search results instead.
type MoveSelection struct {
	Delta int
}

type SelectFirst struct{}
type SelectLast struct{}

// EnterDirectory descends into the selected directory.
type EnterDirectory struct{}

// GoToParent loads the parent directory and selects the one we came from.
type GoToParent struct{}

// LoadDirectory replaces the listing with the contents of Path. Relative
// paths resolve against the current directory.
type LoadDirectory struct {
	Path string
}

// Refresh re-reads the current directory, keeping the selection by name.
type Refresh struct{}

// DirectoryLoaded delivers the result of a background listing. It is applied
// only when Epoch and Path still match the current directory load.
type DirectoryLoaded struct {
	Path    string
	Epoch   int
	Entries []FileEntry
	Err     error
}

// ===== VIEW ACTIONS =====

type ToggleHiddenFiles struct{}
type ToggleHelp struct{}

// ===== SEARCH ACTIONS =====

type StartSearch struct{}

// UpdateSearchQuery replaces the query. Results are recomputed by
// ExecuteSearch.
type UpdateSearchQuery struct {
	Query string
}

type ExecuteSearch struct{}

// ClearSearch leaves search and discards its results.
type ClearSearch struct{}

// AcceptSearchResult selects the entry under the result cursor and leaves
// search.
type AcceptSearchResult struct{}

// ===== BOOKMARK ACTIONS =====

type AddBookmark struct {
	Path string
}

type RemoveBookmark struct {
	Path string
}

// ===== APPLICATION ACTIONS =====
// These are handled by the orchestrator; the dispatcher rejects all of them
// except Quit, which it reports as OutcomeQuit.

type Quit struct{}
type Undo struct{}
type Redo struct{}

// OpenSelected opens the selected file with the editor or system opener.
type OpenSelected struct{}

// RunCommand runs the named custom command against the selection.
type RunCommand struct {
	Name string
}

// Suspend hands the terminal back to the shell until the process is
// continued.
type Suspend struct{}

// SwitchMode asks the orchestrator to activate the named mode.
type SwitchMode struct {
	To string
}

func (MoveSelection) isAction()      {}
func (SelectFirst) isAction()        {}
func (SelectLast) isAction()         {}
func (EnterDirectory) isAction()     {}
func (GoToParent) isAction()         {}
func (LoadDirectory) isAction()      {}
func (Refresh) isAction()            {}
func (DirectoryLoaded) isAction()    {}
func (ToggleHiddenFiles) isAction()  {}
func (ToggleHelp) isAction()         {}
func (StartSearch) isAction()        {}
func (UpdateSearchQuery) isAction()  {}
func (ExecuteSearch) isAction()      {}
func (ClearSearch) isAction()        {}
func (AcceptSearchResult) isAction() {}
func (AddBookmark) isAction()        {}
func (RemoveBookmark) isAction()     {}
func (Quit) isAction()               {}
func (Undo) isAction()               {}
func (Redo) isAction()               {}
func (OpenSelected) isAction()       {}
func (RunCommand) isAction()         {}
func (SwitchMode) isAction()         {}
func (Suspend) isAction()            {}

// IsOrchestratorAction reports whether action is routed by the application
// loop instead of the dispatcher.
func IsOrchestratorAction(action Action) bool {
	switch action.(type) {
	case Undo, Redo, OpenSelected, RunCommand, SwitchMode, Suspend:
		return true
	}
	return false
}

// ActionName returns the variant name, e.g. "MoveSelection".
func ActionName(action Action) string {
	if action == nil {
		return ""
	}
	return reflect.TypeOf(action).Name()
}
