package state

import (
	"errors"
	"os"
	"testing"
)

func TestDirectoryLoadedAppliesCurrentEpoch(t *testing.T) {
	lister := newFakeLister()
	lister.addDir("/root", "a", "b")
	s, d := newTestState(t, lister, "/root")
	mustDispatch(t, d, s, MoveSelection{Delta: 1})

	fresh := []FileEntry{{Name: "a", FullPath: "/root/a"}, {Name: "a2", FullPath: "/root/a2"}, {Name: "b", FullPath: "/root/b"}}
	got := mustDispatch(t, d, s, DirectoryLoaded{Path: "/root", Epoch: s.LoadEpoch(), Entries: fresh})
	if got != OutcomeApplied {
		t.Fatalf("expected OutcomeApplied, got %v", got)
	}
	if s.EntryCount() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.EntryCount())
	}
	if entry, _ := s.SelectedEntry(); entry.Name != "b" {
		t.Fatalf("expected selection to stay on b, got %q", entry.Name)
	}
}

func TestDirectoryLoadedStaleEpochIsIgnored(t *testing.T) {
	lister := newFakeLister()
	lister.addDir("/root", "sub/")
	lister.addDir("/root/sub", "x")
	s, d := newTestState(t, lister, "/root")
	staleEpoch := s.LoadEpoch()

	mustDispatch(t, d, s, EnterDirectory{})
	before := s.Clone()

	late := DirectoryLoaded{Path: "/root", Epoch: staleEpoch, Entries: []FileEntry{{Name: "ghost"}}}
	if got := mustDispatch(t, d, s, late); got != OutcomeIgnored {
		t.Fatalf("expected stale completion to be ignored, got %v", got)
	}
	wrongPath := DirectoryLoaded{Path: "/elsewhere", Epoch: s.LoadEpoch(), Entries: []FileEntry{{Name: "ghost"}}}
	if got := mustDispatch(t, d, s, wrongPath); got != OutcomeIgnored {
		t.Fatalf("expected completion for another path to be ignored, got %v", got)
	}
	if !s.Equal(before) {
		t.Fatalf("stale completions must not change state")
	}
}

func TestDirectoryLoadedError(t *testing.T) {
	lister := newFakeLister()
	lister.addDir("/root", "a")
	s, d := newTestState(t, lister, "/root")
	before := s.Clone()

	_, err := d.Dispatch(s, DirectoryLoaded{Path: "/root", Epoch: s.LoadEpoch(), Err: os.ErrPermission})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !s.Equal(before) {
		t.Fatalf("failed completion changed state")
	}
}
