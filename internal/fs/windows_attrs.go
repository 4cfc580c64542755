//go:build windows

package fs

import (
	"os"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// getFileAttributes reads Windows file attributes, retrying with the bare name
// when the full path does not resolve.
func getFileAttributes(fullPath, name string) (uint32, error) {
	candidates := make([]string, 0, 2)
	if fullPath != "" {
		candidates = append(candidates, fullPath)
	}
	if name != "" && name != fullPath {
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return 0, os.ErrInvalid
	}

	var lastErr error
	for i, target := range candidates {
		ptr, err := syscall.UTF16PtrFromString(target)
		if err != nil {
			return 0, err
		}
		attrs, err := syscall.GetFileAttributes(ptr)
		if err == nil {
			return attrs, nil
		}
		lastErr = err
		if i == 0 && !os.IsNotExist(err) {
			break
		}
	}
	return 0, lastErr
}
