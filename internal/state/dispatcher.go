package state

import (
	"errors"
	"fmt"
	"path/filepath"

	fsutil "github.com/kk-code-lab/fluxdir/internal/fs"
	"github.com/kk-code-lab/fluxdir/internal/search"
)

// Outcome tells the caller what a successful dispatch did.
type Outcome int

const (
	// OutcomeApplied means the action succeeded and belongs in history, even
	// when it left the state as it was (a clamped move at the edge, a
	// duplicate bookmark).
	OutcomeApplied Outcome = iota
	// OutcomeIgnored marks an async completion for a load that is no longer
	// current. It is not recorded.
	OutcomeIgnored
	// OutcomeQuit asks the orchestrator to stop the event loop.
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeQuit:
		return "quit"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Dispatcher is the only component that mutates AppState. Its effect is a
// function of (state, action) plus the lister's view of the filesystem.
type Dispatcher struct {
	lister  fsutil.Lister
	matcher search.Matcher
}

// NewDispatcher wires the filesystem and search collaborators.
func NewDispatcher(lister fsutil.Lister, matcher search.Matcher) *Dispatcher {
	if lister == nil {
		lister = fsutil.OSLister{}
	}
	if matcher == nil {
		matcher = search.NewNameMatcher()
	}
	return &Dispatcher{lister: lister, matcher: matcher}
}

// Dispatch applies action to s. The reduction runs on a clone which replaces
// *s only on success, so a failed action leaves s untouched.
func (d *Dispatcher) Dispatch(s *AppState, action Action) (Outcome, error) {
	if s == nil {
		return OutcomeIgnored, fmt.Errorf("%w: nil state", ErrInvalidAction)
	}
	if action == nil {
		return OutcomeIgnored, fmt.Errorf("%w: nil action", ErrInvalidAction)
	}
	if _, ok := action.(Quit); ok {
		return OutcomeQuit, nil
	}

	if loaded, ok := action.(DirectoryLoaded); ok && s.isStale(loaded) {
		return OutcomeIgnored, nil
	}

	next := s.Clone()
	if err := d.reduce(next, action); err != nil {
		return OutcomeIgnored, err
	}
	*s = *next
	return OutcomeApplied, nil
}

func (d *Dispatcher) reduce(s *AppState, action Action) error {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case MoveSelection:
		s.moveBy(a.Delta)
		return nil

	case SelectFirst:
		s.moveTo(0)
		return nil

	case SelectLast:
		s.moveTo(s.rowCount() - 1)
		return nil

	case EnterDirectory:
		entry, ok := s.SelectedEntry()
		if !ok {
			return fmt.Errorf("%w: nothing selected", ErrInvalidAction)
		}
		if !entry.IsDir {
			return fmt.Errorf("%w: %s", ErrNotADirectory, entry.Name)
		}
		return d.load(s, entryPath(s.currentDir, entry))

	case GoToParent:
		parent := filepath.Dir(s.currentDir)
		if parent == s.currentDir {
			return fmt.Errorf("%w: already at the root directory", ErrInvalidAction)
		}
		child := filepath.Base(s.currentDir)
		if err := d.load(s, parent); err != nil {
			return err
		}
		s.selectByName(child)
		return nil

	case LoadDirectory:
		if a.Path == "" {
			return fmt.Errorf("%w: empty path", ErrInvalidAction)
		}
		path := a.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.currentDir, path)
		}
		return d.load(s, filepath.Clean(path))

	case Refresh:
		entries, err := d.lister.ListDirectory(s.currentDir)
		if err != nil {
			return classifyListError(s.currentDir, err)
		}
		s.replaceEntriesKeepingSelection(entries)
		d.rerunSearch(s)
		return nil

	case DirectoryLoaded:
		if s.isStale(a) {
			return nil
		}
		if a.Err != nil {
			return classifyListError(a.Path, a.Err)
		}
		s.replaceEntriesKeepingSelection(a.Entries)
		d.rerunSearch(s)
		return nil

	// ===== VIEW =====

	case ToggleHiddenFiles:
		name := s.selectedName()
		s.showHidden = !s.showHidden
		s.refilter()
		s.selectByName(name)
		d.rerunSearch(s)
		return nil

	case ToggleHelp:
		s.helpVisible = !s.helpVisible
		return nil

	// ===== SEARCH =====

	case StartSearch:
		if s.searchActive {
			return nil
		}
		s.searchEpoch++
		s.searchActive = true
		s.searchQuery = ""
		s.searchResults = nil
		s.resultCursor = 0
		return nil

	case UpdateSearchQuery:
		if !s.searchActive {
			return fmt.Errorf("%w: search is not active", ErrInvalidAction)
		}
		s.searchQuery = a.Query
		return nil

	case ExecuteSearch:
		if !s.searchActive {
			return fmt.Errorf("%w: search is not active", ErrInvalidAction)
		}
		d.runSearch(s)
		return nil

	case ClearSearch:
		s.resetSearch()
		return nil

	case AcceptSearchResult:
		if !s.searchActive {
			return fmt.Errorf("%w: search is not active", ErrInvalidAction)
		}
		if idx, ok := s.resultAtCursor(); ok {
			s.selected = idx
		}
		s.resetSearch()
		return nil

	// ===== BOOKMARKS =====

	case AddBookmark:
		if a.Path == "" {
			return fmt.Errorf("%w: empty bookmark path", ErrInvalidAction)
		}
		s.addBookmark(a.Path)
		return nil

	case RemoveBookmark:
		s.removeBookmark(a.Path)
		return nil

	case Undo, Redo, OpenSelected, RunCommand, SwitchMode, Suspend:
		return fmt.Errorf("%w: %T is handled by the application", ErrInvalidAction, action)
	}

	return fmt.Errorf("%w: unknown action %T", ErrInvalidAction, action)
}

// load replaces the listing with path's contents and starts a new load epoch.
func (d *Dispatcher) load(s *AppState, path string) error {
	entries, err := d.lister.ListDirectory(path)
	if err != nil {
		return classifyListError(path, err)
	}
	s.currentDir = path
	s.setEntries(entries)
	s.resetSearch()
	s.loadEpoch++
	return nil
}

func (d *Dispatcher) runSearch(s *AppState) {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	results := d.matcher.Match(s.searchQuery, names)
	s.searchResults = make([]int, 0, len(results))
	for _, idx := range results {
		if idx >= 0 && idx < len(s.entries) {
			s.searchResults = append(s.searchResults, idx)
		}
	}
	s.resultCursor = 0
	if idx, ok := s.resultAtCursor(); ok {
		s.selected = idx
	}
}

// rerunSearch refreshes results after the visible entries changed under an
// active search.
func (d *Dispatcher) rerunSearch(s *AppState) {
	if s.searchActive && s.searchResults != nil {
		d.runSearch(s)
	}
}

func (s *AppState) replaceEntriesKeepingSelection(entries []FileEntry) {
	name := s.selectedName()
	prev := s.selected
	s.setEntries(entries)
	if !s.selectByName(name) {
		s.selected = prev
		s.clampSelection()
	}
}

func (s *AppState) rowCount() int {
	if s.searchActive {
		return len(s.searchResults)
	}
	return len(s.entries)
}

// isStale reports a completion for a load other than the current one.
func (s *AppState) isStale(a DirectoryLoaded) bool {
	return a.Epoch != s.loadEpoch || filepath.Clean(a.Path) != s.currentDir
}

func (s *AppState) moveBy(delta int) {
	cur := s.selected
	if s.searchActive {
		cur = s.resultCursor
	}
	s.moveTo(clampedAdd(cur, delta, s.rowCount()-1))
}

// clampedAdd returns cur+delta limited to [0, last] without overflowing on
// extreme deltas. cur is already within range.
func clampedAdd(cur, delta, last int) int {
	switch {
	case delta > 0 && delta > last-cur:
		return last
	case delta < 0 && delta < -cur:
		return 0
	}
	return cur + delta
}

// moveTo clamps target into the current rows. Out-of-range targets are
// clamped, never rejected.
func (s *AppState) moveTo(target int) {
	n := s.rowCount()
	if n == 0 {
		return
	}
	if target < 0 {
		target = 0
	}
	if target > n-1 {
		target = n - 1
	}
	if !s.searchActive {
		s.selected = target
		return
	}
	s.resultCursor = target
	if idx, ok := s.resultAtCursor(); ok {
		s.selected = idx
	}
}

func (s *AppState) resultAtCursor() (int, bool) {
	if s.resultCursor < 0 || s.resultCursor >= len(s.searchResults) {
		return 0, false
	}
	return s.searchResults[s.resultCursor], true
}

func entryPath(dir string, e FileEntry) string {
	if e.FullPath != "" {
		return e.FullPath
	}
	return filepath.Join(dir, e.Name)
}

func classifyListError(path string, err error) error {
	if errors.Is(err, fsutil.ErrNotDir) {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}
