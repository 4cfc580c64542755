//go:build windows

package shellsetup

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// DetectParentShellName asks Windows for the image path of the parent
// process and reduces it to a shell name ("pwsh", "cmd", "bash").
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}
	image, err := processImage(uint32(ppid))
	if err != nil {
		return ""
	}
	return canonicalShellName(normalizeShellName(image))
}

func processImage(pid uint32) (string, error) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = windows.CloseHandle(handle)
	}()

	buf := make([]uint16, windows.MAX_PATH)
	for len(buf) <= 1<<15 {
		size := uint32(len(buf))
		err = windows.QueryFullProcessImageName(handle, 0, &buf[0], &size)
		if err == nil {
			return windows.UTF16ToString(buf[:size]), nil
		}
		if !errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
			return "", err
		}
		buf = make([]uint16, len(buf)*2)
	}
	return "", windows.ERROR_INSUFFICIENT_BUFFER
}
