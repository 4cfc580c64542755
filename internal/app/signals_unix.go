//go:build !windows

package app

import (
	"os"
	"syscall"
)

// contSignals lists the signals that mean the process was resumed after a
// stop that did not go through suspendToShell (kill -STOP, a parent shell).
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
