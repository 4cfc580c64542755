//go:build windows

package fs

// IsHidden checks the FILE_ATTRIBUTE_HIDDEN bit, falling back to the dot
// prefix convention when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}
