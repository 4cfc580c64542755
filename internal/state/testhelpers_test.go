package state

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	fsutil "github.com/kk-code-lab/fluxdir/internal/fs"
)

// fakeLister serves listings from memory and counts reads per path.
type fakeLister struct {
	dirs  map[string][]FileEntry
	files map[string]bool
	errs  map[string]error
	reads map[string]int
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		dirs:  make(map[string][]FileEntry),
		files: make(map[string]bool),
		errs:  make(map[string]error),
		reads: make(map[string]int),
	}
}

// addDir registers dir with the given names; names ending in "/" are
// directories.
func (f *fakeLister) addDir(dir string, names ...string) {
	entries := make([]FileEntry, 0, len(names))
	for _, name := range names {
		isDir := len(name) > 0 && name[len(name)-1] == '/'
		if isDir {
			name = name[:len(name)-1]
		}
		full := filepath.Join(dir, name)
		kind := fsutil.KindFile
		if isDir {
			kind = fsutil.KindDirectory
			if _, ok := f.dirs[full]; !ok {
				f.dirs[full] = []FileEntry{}
			}
		} else {
			f.files[full] = true
		}
		entries = append(entries, FileEntry{Name: name, FullPath: full, Kind: kind, IsDir: isDir})
	}
	f.dirs[dir] = entries
}

func (f *fakeLister) ListDirectory(path string) ([]FileEntry, error) {
	f.reads[path]++
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if f.files[path] {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, fsutil.ErrNotDir)
	}
	entries, ok := f.dirs[path]
	if !ok {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, os.ErrNotExist)
	}
	out := make([]FileEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func newTestState(t *testing.T, lister *fakeLister, dir string) (*AppState, *Dispatcher) {
	t.Helper()
	s, err := Open(lister, dir, Options{})
	if err != nil {
		t.Fatalf("Open(%s): %v", dir, err)
	}
	return s, NewDispatcher(lister, nil)
}

func mustDispatch(t *testing.T, d *Dispatcher, s *AppState, action Action) Outcome {
	t.Helper()
	outcome, err := d.Dispatch(s, action)
	if err != nil {
		t.Fatalf("Dispatch(%T): %v", action, err)
	}
	return outcome
}

func entryNames(s *AppState) []string {
	entries := s.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
