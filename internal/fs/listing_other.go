//go:build !windows

package fs

// isProtectedEntry is a no-op on non-Windows platforms.
func isProtectedEntry(_, _ string) bool {
	return false
}
