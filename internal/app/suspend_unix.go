//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	if err := app.screen.Suspend(); err != nil {
		app.logger.WithError(err).Warn("suspend screen")
		return
	}
	// Stop only this process; signalling the whole group would also stop
	// the shell wrapper that launched fluxdir and break `fg`.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	// The directory may have changed while we were stopped.
	app.scheduleReload(app.store.State().CurrentDir())
	return true
}
