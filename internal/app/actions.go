package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/fluxdir/internal/config"
	fsutil "github.com/kk-code-lab/fluxdir/internal/fs"
	"github.com/kk-code-lab/fluxdir/internal/mode"
	statepkg "github.com/kk-code-lab/fluxdir/internal/state"
	"github.com/kk-code-lab/fluxdir/internal/ui/input"
)

// ErrNoCommand reports that no editor, opener or custom command is
// available for the request.
var ErrNoCommand = errors.New("no command available")

var commandBuilder = exec.Command

// handleKey runs one key press through the active mode. The previous error
// stays on the status line until this point.
func (app *Application) handleKey(k input.Key) {
	app.lastErr = nil
	app.notice = ""
	s := app.store.State()
	action := app.switcher.Active().HandleKey(k, s, app.keymap)
	if action == nil {
		return
	}
	app.apply(action)
}

// apply is the pipeline every action goes through: mode pre-hook, store
// dispatch, mode follow-ups, then the mode transition.
func (app *Application) apply(action statepkg.Action) {
	m := app.switcher.Active()
	action = m.Intercept(action, app.store.State())
	if action == nil {
		return
	}

	if statepkg.IsOrchestratorAction(action) {
		app.handleAppAction(action)
		app.afterStateChange()
		return
	}

	outcome, err := app.store.Dispatch(action)
	if err != nil {
		app.lastErr = err
		return
	}
	if outcome == statepkg.OutcomeQuit {
		app.shouldQuit = true
		return
	}

	for _, follow := range m.AfterDispatch(action, app.store.State()) {
		if _, err := app.store.Dispatch(follow); err != nil {
			app.lastErr = err
			break
		}
	}
	if next, ok := m.Next(action, app.store.State()); ok {
		app.switcher.SwitchTo(next, app.store.State())
	}
	app.afterStateChange()
}

func (app *Application) handleAppAction(action statepkg.Action) {
	var err error
	switch a := action.(type) {
	case statepkg.Undo:
		reload := app.lastIsReload()
		err = app.store.Undo()
		if err == nil && reload {
			app.notice = "undid a reload from disk"
		}
	case statepkg.Redo:
		err = app.store.Redo()
	case statepkg.SwitchMode:
		next, ok := mode.ParseKind(a.To)
		if !ok {
			err = fmt.Errorf("%w: unknown mode %q", statepkg.ErrInvalidAction, a.To)
			break
		}
		app.switcher.SwitchTo(next, app.store.State())
	case statepkg.OpenSelected:
		err = app.openSelected()
	case statepkg.RunCommand:
		err = app.runCustomCommand(a.Name)
	case statepkg.Suspend:
		app.suspendToShell()
		app.resumeAfterStop()
	}
	if err != nil {
		app.logger.WithError(err).WithField("action", statepkg.ActionName(action)).Warn("action failed")
		app.lastErr = err
	}
}

// applyBackground applies a completion from the runner. Reloads are
// recorded like any other action, so one that lands after an undo drops the
// redo branch; the status line says so.
func (app *Application) applyBackground(action statepkg.Action) {
	hadRedo := app.store.CanRedo()
	app.apply(action)
	if hadRedo && !app.store.CanRedo() {
		app.notice = "directory changed on disk; redo history dropped"
		app.logger.WithField("dir", app.CurrentDir()).Info("reload dropped redo history")
	}
}

func (app *Application) lastIsReload() bool {
	i := app.store.Index()
	if i == 0 {
		return false
	}
	_, ok := app.store.History()[i-1].(statepkg.DirectoryLoaded)
	return ok
}

// afterStateChange keeps the mode, the watcher and background work in line
// with the directory and search flag, which undo/redo can change behind the
// active mode's back.
func (app *Application) afterStateChange() {
	s := app.store.State()
	app.switcher.Sync(s)

	if app.watcher == nil || app.watcher.Dir() == s.CurrentDir() {
		return
	}
	app.runner.Cancel()
	if err := app.watcher.Watch(s.CurrentDir()); err != nil {
		app.logger.WithError(err).WithField("dir", s.CurrentDir()).Warn("cannot watch directory")
	}
}

// scheduleReload lists dir in the background. The result comes back as a
// DirectoryLoaded tagged with the load epoch current at scheduling time.
func (app *Application) scheduleReload(dir string) {
	s := app.store.State()
	if dir != s.CurrentDir() {
		return
	}
	epoch := s.LoadEpoch()
	lister := app.lister
	app.runner.Go(epoch, func(ctx context.Context) statepkg.Action {
		entries, err := lister.ListDirectory(dir)
		if ctx.Err() != nil {
			return nil
		}
		return statepkg.DirectoryLoaded{Path: dir, Epoch: epoch, Entries: entries, Err: err}
	})
}

// openSelected sends text files to the editor and everything else,
// directories included, to the system opener.
func (app *Application) openSelected() error {
	entry, ok := app.store.State().SelectedEntry()
	if !ok {
		return fmt.Errorf("%w: nothing selected", statepkg.ErrInvalidAction)
	}

	if !entry.IsDir && app.editorTemplate != "" {
		text, err := fsutil.LooksLikeText(entry.FullPath)
		if err != nil {
			return fmt.Errorf("%w: %v", statepkg.ErrIO, err)
		}
		if text {
			args, err := config.ExpandTemplate(app.editorTemplate, entry.FullPath)
			if err != nil {
				return err
			}
			return app.runInteractive(args)
		}
	}

	if app.openerTemplate == "" {
		return fmt.Errorf("%w: no editor or opener for %s", ErrNoCommand, entry.Name)
	}
	args, err := config.ExpandTemplate(app.openerTemplate, entry.FullPath)
	if err != nil {
		return err
	}
	return app.runDetached(args)
}

func (app *Application) runCustomCommand(name string) error {
	cmd, ok := app.cfg.CustomCommand(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoCommand, name)
	}
	s := app.store.State()
	target := s.CurrentDir()
	if entry, ok := s.SelectedEntry(); ok {
		target = entry.FullPath
	}
	args, err := config.ExpandTemplate(cmd.Template, target)
	if err != nil {
		return err
	}
	err = app.runInteractive(args)
	// The command may have changed the directory.
	app.scheduleReload(s.CurrentDir())
	return err
}

// runInteractive hands the terminal to args until it exits.
func (app *Application) runInteractive(args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}
	app.logger.WithField("command", args).Debug("run interactive")

	useTTY := runtime.GOOS != "windows"
	var tty *os.File
	if useTTY {
		var err error
		tty, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return app.runInteractiveFallback(args)
		}
		defer func() {
			_ = tty.Close()
		}()
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(args[0], args[1:]...)
	if useTTY {
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	runErr := cmd.Run()
	if err := flushConsoleInput(); err != nil {
		app.logger.WithError(err).Debug("flush console input")
	}

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	return wrapCommandError(args, runErr)
}

func (app *Application) runInteractiveFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return wrapCommandError(args, cmd.Run())
}

// runDetached starts args without giving up the terminal.
func (app *Application) runDetached(args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}
	app.logger.WithField("command", args).Debug("run detached")

	cmd := commandBuilder(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return wrapCommandError(args, err)
	}
	logger := app.logger
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{"command": args[0]}).Warn("opener exited")
		}
	}()
	return nil
}

func wrapCommandError(args []string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", args[0], err)
}
