package state

import (
	"path/filepath"
	"reflect"

	fsutil "github.com/kk-code-lab/fluxdir/internal/fs"
)

// FileEntry mirrors fs.Entry so UI and mode code can rely on a stable type.
type FileEntry = fsutil.Entry

// Options seeds a new AppState.
type Options struct {
	ShowHidden bool
	Bookmarks  []string
}

// AppState is the single source of truth for navigation and UI data. Its
// fields are unexported: the dispatcher in this package is the only code
// that writes them. Everything else reads through the accessors, which
// return copies.
type AppState struct {
	// Navigation & filesystem
	currentDir string
	allEntries []FileEntry // everything the lister returned, in lister order
	entries    []FileEntry // allEntries minus hidden ones unless showHidden
	loadEpoch  int

	// Selection
	selected int // index into entries; 0 when empty

	// Search
	searchActive  bool
	searchQuery   string
	searchResults []int // indices into entries
	resultCursor  int   // index into searchResults
	searchEpoch   int

	// Flags
	showHidden  bool
	helpVisible bool

	// Bookmarks in insertion order, no duplicate paths
	bookmarks []string
}

// NewAppState builds the initial state for dir from an already-read listing.
func NewAppState(dir string, entries []FileEntry, opts Options) *AppState {
	s := &AppState{
		currentDir: filepath.Clean(dir),
		showHidden: opts.ShowHidden,
	}
	for _, b := range opts.Bookmarks {
		if b != "" {
			s.addBookmark(b)
		}
	}
	s.setEntries(entries)
	return s
}

// Open lists dir with lister and returns the initial state.
func Open(lister fsutil.Lister, dir string, opts Options) (*AppState, error) {
	entries, err := lister.ListDirectory(dir)
	if err != nil {
		return nil, classifyListError(dir, err)
	}
	return NewAppState(dir, entries, opts), nil
}

// ===== ACCESSORS =====

func (s *AppState) CurrentDir() string { return s.currentDir }

// Entries returns a copy of the visible entries.
func (s *AppState) Entries() []FileEntry {
	return cloneSlice(s.entries)
}

// EntryCount returns the number of visible entries.
func (s *AppState) EntryCount() int { return len(s.entries) }

// Entry returns the visible entry at index i.
func (s *AppState) Entry(i int) (FileEntry, bool) {
	if i < 0 || i >= len(s.entries) {
		return FileEntry{}, false
	}
	return s.entries[i], true
}

// TotalEntryCount includes hidden entries.
func (s *AppState) TotalEntryCount() int { return len(s.allEntries) }

func (s *AppState) SelectedIndex() int { return s.selected }

// SelectedEntry returns the entry under the selection.
func (s *AppState) SelectedEntry() (FileEntry, bool) {
	return s.Entry(s.selected)
}

func (s *AppState) LoadEpoch() int     { return s.loadEpoch }
func (s *AppState) ShowHidden() bool   { return s.showHidden }
func (s *AppState) HelpVisible() bool  { return s.helpVisible }
func (s *AppState) SearchActive() bool { return s.searchActive }
func (s *AppState) SearchQuery() string {
	return s.searchQuery
}
func (s *AppState) SearchEpoch() int  { return s.searchEpoch }
func (s *AppState) ResultCursor() int { return s.resultCursor }

// SearchResults returns a copy of the result indices into Entries.
func (s *AppState) SearchResults() []int {
	return cloneSlice(s.searchResults)
}

// Bookmarks returns a copy of the bookmark paths in insertion order.
func (s *AppState) Bookmarks() []string {
	return cloneSlice(s.bookmarks)
}

// IsBookmarked reports whether path is bookmarked.
func (s *AppState) IsBookmarked(path string) bool {
	return s.bookmarkIndex(filepath.Clean(path)) >= 0
}

// Clone returns a deep copy.
func (s *AppState) Clone() *AppState {
	c := *s
	c.allEntries = cloneSlice(s.allEntries)
	c.entries = cloneSlice(s.entries)
	c.searchResults = cloneSlice(s.searchResults)
	c.bookmarks = cloneSlice(s.bookmarks)
	return &c
}

// Equal reports whether both states hold identical data.
func (s *AppState) Equal(other *AppState) bool {
	if s == nil || other == nil {
		return s == other
	}
	return reflect.DeepEqual(*s, *other)
}

// ===== INTERNAL MUTATORS (dispatcher only) =====

// setEntries replaces the listing and recomputes the visible slice. The
// selection is reset to 0.
func (s *AppState) setEntries(entries []FileEntry) {
	s.allEntries = cloneSlice(entries)
	s.refilter()
	s.selected = 0
}

func (s *AppState) refilter() {
	visible := make([]FileEntry, 0, len(s.allEntries))
	for _, e := range s.allEntries {
		if s.showHidden || !e.IsHidden() {
			visible = append(visible, e)
		}
	}
	s.entries = visible
}

func (s *AppState) clampSelection() {
	switch {
	case len(s.entries) == 0:
		s.selected = 0
	case s.selected < 0:
		s.selected = 0
	case s.selected >= len(s.entries):
		s.selected = len(s.entries) - 1
	}
}

// selectByName moves the selection to the visible entry called name and
// reports whether one was found. Otherwise the selection is clamped.
func (s *AppState) selectByName(name string) bool {
	for i, e := range s.entries {
		if e.Name == name {
			s.selected = i
			return true
		}
	}
	s.clampSelection()
	return false
}

func (s *AppState) selectedName() string {
	if e, ok := s.SelectedEntry(); ok {
		return e.Name
	}
	return ""
}

func (s *AppState) resetSearch() {
	if s.searchActive || s.searchQuery != "" || s.searchResults != nil {
		s.searchEpoch++
	}
	s.searchActive = false
	s.searchQuery = ""
	s.searchResults = nil
	s.resultCursor = 0
}

func (s *AppState) bookmarkIndex(path string) int {
	for i, b := range s.bookmarks {
		if b == path {
			return i
		}
	}
	return -1
}

func (s *AppState) addBookmark(path string) bool {
	path = filepath.Clean(path)
	if s.bookmarkIndex(path) >= 0 {
		return false
	}
	s.bookmarks = append(s.bookmarks, path)
	return true
}

func (s *AppState) removeBookmark(path string) bool {
	idx := s.bookmarkIndex(filepath.Clean(path))
	if idx < 0 {
		return false
	}
	s.bookmarks = append(s.bookmarks[:idx:idx], s.bookmarks[idx+1:]...)
	return true
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
