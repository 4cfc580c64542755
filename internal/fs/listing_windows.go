//go:build windows

package fs

// isProtectedEntry reports whether an entry should never appear in listings,
// even when hidden files are shown (compatibility junctions such as
// "Application Data" carry both the system and reparse-point bits).
func isProtectedEntry(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
