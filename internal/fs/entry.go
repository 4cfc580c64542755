package fs

import (
	"os"
	"time"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// Entry represents a single file or directory on disk. Entries are plain
// values; copying one never aliases listing state.
type Entry struct {
	Name     string
	FullPath string
	Kind     Kind
	// IsDir is true for directories and for symlinks that resolve to one.
	IsDir    bool
	Size     int64
	Modified time.Time
	Mode     os.FileMode
}

// IsSymlink reports whether the entry itself is a symbolic link.
func (e Entry) IsSymlink() bool {
	return e.Kind == KindSymlink
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}
