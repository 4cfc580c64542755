package state

import (
	"errors"
	"reflect"
	"testing"
)

func newSearchState(t *testing.T) (*AppState, *Dispatcher) {
	t.Helper()
	lister := newFakeLister()
	lister.addDir("/root", "docs/", "main.go", "main_test.go", "README.md", "go.mod")
	return newTestState(t, lister, "/root")
}

func TestSearchActionsRequireActiveSearch(t *testing.T) {
	s, d := newSearchState(t)
	before := s.Clone()

	for _, action := range []Action{UpdateSearchQuery{Query: "x"}, ExecuteSearch{}, AcceptSearchResult{}} {
		if _, err := d.Dispatch(s, action); !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("%T: expected ErrInvalidAction, got %v", action, err)
		}
	}
	if !s.Equal(before) {
		t.Fatalf("state changed after rejected search actions")
	}
}

func TestExecuteSearchIsIdempotent(t *testing.T) {
	s, d := newSearchState(t)
	mustDispatch(t, d, s, StartSearch{})
	mustDispatch(t, d, s, UpdateSearchQuery{Query: "*.go"})
	mustDispatch(t, d, s, ExecuteSearch{})

	first := s.SearchResults()
	if want := []int{1, 2}; !reflect.DeepEqual(first, want) {
		t.Fatalf("expected results %v, got %v", want, first)
	}
	snapshot := s.Clone()

	if got := mustDispatch(t, d, s, ExecuteSearch{}); got != OutcomeApplied {
		t.Fatalf("expected repeated ExecuteSearch to leave state unchanged, got %v", got)
	}
	if !s.Equal(snapshot) {
		t.Fatalf("second ExecuteSearch changed state")
	}
}

func TestSearchMovesThroughResults(t *testing.T) {
	s, d := newSearchState(t)
	mustDispatch(t, d, s, StartSearch{})
	mustDispatch(t, d, s, UpdateSearchQuery{Query: "*.go"})
	mustDispatch(t, d, s, ExecuteSearch{})

	if s.SelectedIndex() != 1 {
		t.Fatalf("expected selection on first result (1), got %d", s.SelectedIndex())
	}
	mustDispatch(t, d, s, MoveSelection{Delta: 10})
	if s.ResultCursor() != 1 || s.SelectedIndex() != 2 {
		t.Fatalf("expected cursor 1 / selection 2, got %d / %d", s.ResultCursor(), s.SelectedIndex())
	}

	mustDispatch(t, d, s, AcceptSearchResult{})
	if s.SearchActive() {
		t.Fatalf("expected search to end after accept")
	}
	if entry, _ := s.SelectedEntry(); entry.Name != "main_test.go" {
		t.Fatalf("expected main_test.go selected, got %q", entry.Name)
	}
	if s.SearchResults() != nil || s.SearchQuery() != "" {
		t.Fatalf("expected search state cleared, got %q %v", s.SearchQuery(), s.SearchResults())
	}
}

func TestAcceptWithoutResultsKeepsSelection(t *testing.T) {
	s, d := newSearchState(t)
	mustDispatch(t, d, s, MoveSelection{Delta: 3})
	mustDispatch(t, d, s, StartSearch{})
	mustDispatch(t, d, s, UpdateSearchQuery{Query: "zzz"})
	mustDispatch(t, d, s, ExecuteSearch{})

	if len(s.SearchResults()) != 0 {
		t.Fatalf("expected no results, got %v", s.SearchResults())
	}
	mustDispatch(t, d, s, AcceptSearchResult{})
	if s.SelectedIndex() != 3 {
		t.Fatalf("expected selection to stay at 3, got %d", s.SelectedIndex())
	}
}

func TestClearSearchBumpsEpochAndDiscardsResults(t *testing.T) {
	s, d := newSearchState(t)
	mustDispatch(t, d, s, StartSearch{})
	started := s.SearchEpoch()
	mustDispatch(t, d, s, UpdateSearchQuery{Query: "main"})
	mustDispatch(t, d, s, ExecuteSearch{})

	mustDispatch(t, d, s, ClearSearch{})
	if s.SearchActive() || s.SearchQuery() != "" || s.SearchResults() != nil {
		t.Fatalf("expected search cleared")
	}
	if s.SearchEpoch() <= started {
		t.Fatalf("expected search epoch to advance past %d, got %d", started, s.SearchEpoch())
	}

	if got := mustDispatch(t, d, s, ClearSearch{}); got != OutcomeApplied {
		t.Fatalf("expected clearing an inactive search to succeed, got %v", got)
	}
}

func TestStartSearchTwiceKeepsQuery(t *testing.T) {
	s, d := newSearchState(t)
	mustDispatch(t, d, s, StartSearch{})
	mustDispatch(t, d, s, UpdateSearchQuery{Query: "go"})

	if got := mustDispatch(t, d, s, StartSearch{}); got != OutcomeApplied {
		t.Fatalf("expected OutcomeApplied, got %v", got)
	}
	if s.SearchQuery() != "go" {
		t.Fatalf("expected query to survive, got %q", s.SearchQuery())
	}
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	s, d := newSearchState(t)
	mustDispatch(t, d, s, StartSearch{})
	mustDispatch(t, d, s, ExecuteSearch{})

	if want := []int{0, 1, 2, 3, 4}; !reflect.DeepEqual(s.SearchResults(), want) {
		t.Fatalf("expected all rows, got %v", s.SearchResults())
	}
}

func TestToggleHiddenReRunsActiveSearch(t *testing.T) {
	lister := newFakeLister()
	lister.addDir("/root", ".hidden.go", "a.go", "b.txt")
	s, d := newTestState(t, lister, "/root")
	mustDispatch(t, d, s, StartSearch{})
	mustDispatch(t, d, s, UpdateSearchQuery{Query: "*.go"})
	mustDispatch(t, d, s, ExecuteSearch{})
	if want := []int{0}; !reflect.DeepEqual(s.SearchResults(), want) {
		t.Fatalf("expected %v, got %v", want, s.SearchResults())
	}

	mustDispatch(t, d, s, ToggleHiddenFiles{})
	if want := []int{0, 1}; !reflect.DeepEqual(s.SearchResults(), want) {
		t.Fatalf("expected results over the new listing %v, got %v", want, s.SearchResults())
	}
}

func TestEnteringDirectoryEndsSearch(t *testing.T) {
	s, d := newSearchState(t)
	mustDispatch(t, d, s, StartSearch{})
	mustDispatch(t, d, s, UpdateSearchQuery{Query: "docs"})
	mustDispatch(t, d, s, ExecuteSearch{})

	mustDispatch(t, d, s, EnterDirectory{})
	if s.SearchActive() {
		t.Fatalf("expected search to end when the directory changes")
	}
	if s.CurrentDir() != "/root/docs" {
		t.Fatalf("expected /root/docs, got %s", s.CurrentDir())
	}
}
