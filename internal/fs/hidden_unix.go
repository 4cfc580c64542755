//go:build !windows

package fs

import "strings"

// IsHidden reports dotfiles. The path is only consulted on Windows.
func IsHidden(_ string, name string) bool {
	return strings.HasPrefix(name, ".")
}
