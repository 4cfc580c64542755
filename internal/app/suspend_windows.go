//go:build windows

package app

// Windows consoles have no job control, so Ctrl+Z only logs.
func (app *Application) suspendToShell() {
	app.logger.Debug("suspend is not supported on windows")
}

func (app *Application) resumeAfterStop() bool {
	return false
}
