package state

import (
	"reflect"
	"testing"
)

func TestToggleHiddenFilesTwiceRestoresState(t *testing.T) {
	lister := newFakeLister()
	lister.addDir("/root", ".git/", ".env", "main.go", "README.md")
	s, d := newTestState(t, lister, "/root")
	mustDispatch(t, d, s, MoveSelection{Delta: 1})

	before := s.Clone()
	if want := []string{"main.go", "README.md"}; !reflect.DeepEqual(entryNames(s), want) {
		t.Fatalf("expected hidden entries filtered, got %v", entryNames(s))
	}

	mustDispatch(t, d, s, ToggleHiddenFiles{})
	if !s.ShowHidden() {
		t.Fatalf("expected ShowHidden after first toggle")
	}
	if want := []string{".git", ".env", "main.go", "README.md"}; !reflect.DeepEqual(entryNames(s), want) {
		t.Fatalf("expected all entries, got %v", entryNames(s))
	}
	if entry, _ := s.SelectedEntry(); entry.Name != "README.md" {
		t.Fatalf("expected selection to follow README.md, got %q", entry.Name)
	}

	mustDispatch(t, d, s, ToggleHiddenFiles{})
	if !s.Equal(before) {
		t.Fatalf("expected second toggle to restore the original state")
	}
	if lister.reads["/root"] != 1 {
		t.Fatalf("toggling must not re-read the filesystem, got %d reads", lister.reads["/root"])
	}
}

func TestToggleHiddenFilesClampsWhenSelectedEntryHides(t *testing.T) {
	lister := newFakeLister()
	lister.addDir("/root", "a", "b", ".zz")
	s, err := Open(lister, "/root", Options{ShowHidden: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	d := NewDispatcher(lister, nil)
	mustDispatch(t, d, s, SelectLast{})

	mustDispatch(t, d, s, ToggleHiddenFiles{})
	if s.SelectedIndex() != 1 {
		t.Fatalf("expected clamped selection 1, got %d", s.SelectedIndex())
	}
}

func TestToggleHelp(t *testing.T) {
	lister := newFakeLister()
	lister.addDir("/root", "a")
	s, d := newTestState(t, lister, "/root")

	mustDispatch(t, d, s, ToggleHelp{})
	if !s.HelpVisible() {
		t.Fatalf("expected help visible")
	}
	mustDispatch(t, d, s, ToggleHelp{})
	if s.HelpVisible() {
		t.Fatalf("expected help hidden")
	}
}
