package mode

import (
	"fmt"
	"time"

	fsutil "github.com/kk-code-lab/fluxdir/internal/fs"
	"github.com/kk-code-lab/fluxdir/internal/state"
	"github.com/kk-code-lab/fluxdir/internal/textutil"
)

// Previewer reads the first lines of a text file. ok is false for binary
// content.
type Previewer func(path string, maxLines int) (lines []string, ok bool, err error)

// FilePreviewer reads previews from disk.
func FilePreviewer() Previewer {
	return fsutil.ReadTextHead
}

const previewLines = 200

type previewCache struct {
	path     string
	modified time.Time
	size     int64
	lines    []string
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

func kindLabel(e state.FileEntry) string {
	switch {
	case e.IsSymlink() && e.IsDir:
		return "symlink to directory"
	case e.IsSymlink():
		return "symlink"
	case e.IsDir:
		return "directory"
	default:
		return "file"
	}
}

// detailLines describes e for the side panel, followed by the head of the
// file when preview is set.
func (c *previewCache) detailLines(e state.FileEntry, bookmarked bool, preview Previewer) []string {
	lines := []string{
		"Name:     " + e.Name,
		"Type:     " + kindLabel(e),
	}
	if !e.IsDir {
		lines = append(lines, "Size:     "+formatSize(e.Size))
	}
	if !e.Modified.IsZero() {
		lines = append(lines, "Modified: "+e.Modified.Format("2006-01-02 15:04"))
	}
	if e.Mode != 0 {
		lines = append(lines, "Mode:     "+e.Mode.String())
	}
	if bookmarked {
		lines = append(lines, "Bookmarked")
	}
	if e.IsDir || preview == nil {
		return lines
	}

	lines = append(lines, "")
	return append(lines, c.load(e, preview)...)
}

func (c *previewCache) load(e state.FileEntry, preview Previewer) []string {
	if c.path == e.FullPath && c.modified.Equal(e.Modified) && c.size == e.Size {
		return c.lines
	}

	var out []string
	head, ok, err := preview(e.FullPath, previewLines)
	switch {
	case err != nil:
		out = []string{"(cannot read: " + err.Error() + ")"}
	case !ok:
		out = []string{"(binary file)"}
	case len(head) == 0:
		out = []string{"(empty file)"}
	default:
		out = make([]string, 0, len(head)+1)
		for _, line := range head {
			if textutil.HasFormattingRunes(line) {
				out = append([]string{"(contains bidi or zero-width characters)"}, out...)
				break
			}
		}
		for _, line := range head {
			out = append(out, textutil.ExpandTabs(line, textutil.DefaultTabWidth))
		}
	}

	c.path, c.modified, c.size, c.lines = e.FullPath, e.Modified, e.Size, out
	return out
}
