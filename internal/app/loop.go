package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/fluxdir/internal/ui/input"
	renderui "github.com/kk-code-lab/fluxdir/internal/ui/render"
	"github.com/kk-code-lab/fluxdir/internal/ui/view"
	"github.com/kk-code-lab/fluxdir/internal/watch"
)

// Run processes events until Quit. Only this goroutine touches the store and
// the modes; the tcell poller, the watcher and async tasks talk to it over
// channels.
func (app *Application) Run() error {
	app.render()

	eventChan := make(chan tcell.Event)
	stopPoll := make(chan struct{})
	defer close(stopPoll)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-stopPoll:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var changes <-chan watch.Change
	if app.watcher != nil {
		changes = app.watcher.Changes()
	}

	for !app.shouldQuit {
		renderPending := false
		select {
		case ev := <-eventChan:
			renderPending = app.handleEvent(ev)
		case action := <-app.runner.Results():
			app.applyBackground(action)
			renderPending = true
		case change := <-changes:
			app.scheduleReload(change.Dir)
		case <-sigContCh:
			renderPending = app.resumeAfterStop()
		}
		if renderPending && !app.shouldQuit {
			app.render()
		}
	}
	return nil
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	event := input.Translate(ev)
	switch event.Kind {
	case input.EventKey:
		app.handleKey(event.Key)
		return true
	case input.EventResize:
		app.screen.Sync()
		return true
	case input.EventInterrupt:
		return true
	}
	return false
}

// view describes the screen for the active mode, with the last error and
// any notice on the status line.
func (app *Application) view() view.View {
	v := app.switcher.Active().Render(app.store.State())
	if app.notice != "" {
		v.Status = app.notice
	}
	if app.lastErr != nil {
		v.Error = app.lastErr.Error()
	}
	return v
}

func (app *Application) render() {
	v := app.view()
	if _, h := app.screen.Size(); h > 0 {
		app.switcher.SetPageSize(renderui.ListHeight(h, v))
	}
	app.renderer.Render(v)
}
