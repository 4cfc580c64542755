package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNotDir is returned by listers when the path exists but is not a
// directory.
var ErrNotDir = errors.New("not a directory")

// Lister reads the contents of a directory. Implementations must return
// entries in a stable order so that replaying a load yields the same list
// when the directory has not changed.
type Lister interface {
	ListDirectory(path string) ([]Entry, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(path string) ([]Entry, error)

// ListDirectory calls f(path).
func (f ListerFunc) ListDirectory(path string) ([]Entry, error) {
	return f(path)
}

// OSLister lists directories from the local filesystem.
type OSLister struct{}

// ListDirectory reads path and returns its entries sorted with SortEntries.
// Unreadable individual entries are skipped; an unreadable directory is an
// error, wrapping ErrNotDir when path names a file.
func (OSLister) ListDirectory(path string) ([]Entry, error) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, ErrNotDir)
	}
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}

		rawName := de.Name()
		fullPath := filepath.Join(path, rawName)
		if isProtectedEntry(fullPath, rawName) {
			continue
		}

		entry := Entry{
			Name:     norm.NFC.String(rawName),
			FullPath: fullPath,
			Kind:     KindFile,
			IsDir:    de.IsDir(),
			Size:     info.Size(),
			Modified: info.ModTime(),
			Mode:     info.Mode(),
		}
		if entry.IsDir {
			entry.Kind = KindDirectory
		}
		if info.Mode()&os.ModeSymlink != 0 {
			entry.Kind = KindSymlink
			if target, err := os.Stat(fullPath); err == nil {
				entry.IsDir = target.IsDir()
			}
		}
		entries = append(entries, entry)
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders directories first, then names case-insensitively, with
// the raw name as a tiebreaker so the order is total.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		al, bl := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if al != bl {
			return al < bl
		}
		return a.Name < b.Name
	})
}
