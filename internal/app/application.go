package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/fluxdir/internal/async"
	"github.com/kk-code-lab/fluxdir/internal/config"
	fsutil "github.com/kk-code-lab/fluxdir/internal/fs"
	"github.com/kk-code-lab/fluxdir/internal/mode"
	"github.com/kk-code-lab/fluxdir/internal/search"
	statepkg "github.com/kk-code-lab/fluxdir/internal/state"
	"github.com/kk-code-lab/fluxdir/internal/store"
	renderui "github.com/kk-code-lab/fluxdir/internal/ui/render"
	"github.com/kk-code-lab/fluxdir/internal/watch"
)

// Options configures a new Application. Zero values pick the defaults.
type Options struct {
	Config *config.Config
	// StartDir overrides Config.General.StartDir; both empty means the
	// working directory.
	StartDir   string
	ShowHidden bool
	Logger     logrus.FieldLogger
	// Screen is created with tcell.NewScreen when nil.
	Screen tcell.Screen
	Lister fsutil.Lister
	// Watch follows the current directory with fsnotify.
	Watch bool
}

// Application represents the running app. Everything here is owned by the
// goroutine that calls Run.
type Application struct {
	screen   tcell.Screen
	store    *store.AppStore
	switcher *mode.Switcher
	keymap   config.Keymap
	cfg      *config.Config
	renderer *renderui.Renderer
	logger   logrus.FieldLogger
	lister   fsutil.Lister
	runner   *async.Runner
	watcher  *watch.Watcher

	editorTemplate string
	openerTemplate string

	lastErr    error
	notice     string // replaces the status line until the next key
	shouldQuit bool
	closeOnce  sync.Once
}

// New loads the start directory and prepares the screen. The initial
// listing is part of the initial state, not of history.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	lister := opts.Lister
	if lister == nil {
		lister = fsutil.OSLister{}
	}

	dir, err := resolveStartDir(opts.StartDir, cfg.General.StartDir)
	if err != nil {
		return nil, err
	}
	initial, err := statepkg.Open(lister, dir, statepkg.Options{
		ShowHidden: opts.ShowHidden || cfg.UI.ShowHidden,
		Bookmarks:  expandBookmarks(cfg.General.Bookmarks),
	})
	if err != nil {
		return nil, err
	}

	dispatcher := statepkg.NewDispatcher(lister, search.NewNameMatcher())
	st := store.New(initial, dispatcher, store.WithMiddleware(store.LoggingMiddleware(logger)))

	commandKeys := make(map[string]string, len(cfg.Commands.Custom))
	for _, cmd := range cfg.Commands.Custom {
		if cmd.Key != "" {
			commandKeys[cmd.Key] = cmd.Name
		}
	}

	screen := opts.Screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	renderer := renderui.NewRenderer(screen)
	renderer.SetPanelRatio(cfg.UI.PanelRatio)

	editor, _ := detectEditorTemplate(cfg.Commands.Editor)
	opener, _ := detectOpenerTemplate(cfg.Commands.Opener)

	app := &Application{
		screen: screen,
		store:  st,
		switcher: mode.NewSwitcher(cfg.Keymap, mode.Options{
			CommandKeys: commandKeys,
			Previewer:   mode.FilePreviewer(),
		}),
		keymap:         cfg.Keymap,
		cfg:            cfg,
		renderer:       renderer,
		logger:         logger,
		lister:         lister,
		runner:         async.NewRunner(4),
		editorTemplate: editor,
		openerTemplate: opener,
	}

	if opts.Watch {
		app.startWatcher(initial.CurrentDir())
	}

	logger.WithFields(logrus.Fields{
		"dir":    initial.CurrentDir(),
		"editor": editor,
		"opener": opener,
	}).Info("started")
	return app, nil
}

func (app *Application) startWatcher(dir string) {
	w, err := watch.New(app.logger, watch.DefaultDebounce)
	if err != nil {
		app.logger.WithError(err).Warn("directory watching disabled")
		return
	}
	if err := w.Watch(dir); err != nil {
		app.logger.WithError(err).Warn("cannot watch start directory")
	}
	if err := w.Start(); err != nil {
		app.logger.WithError(err).Warn("directory watching disabled")
		w.Stop()
		return
	}
	app.watcher = w
}

// Close stops background work and restores the terminal. It is safe to
// call more than once.
func (app *Application) Close() error {
	app.closeOnce.Do(func() {
		app.runner.Close()
		if app.watcher != nil {
			app.watcher.Stop()
		}
		app.screen.Fini()
	})
	return nil
}

// CurrentDir returns the directory being shown, for --print-dir.
func (app *Application) CurrentDir() string {
	return app.store.State().CurrentDir()
}

func resolveStartDir(flagDir, configDir string) (string, error) {
	dir := flagDir
	if dir == "" {
		dir = configDir
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %v", statepkg.ErrIO, err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(expandUserPath(dir))
	if err != nil {
		return "", fmt.Errorf("%w: %v", statepkg.ErrIO, err)
	}
	return abs, nil
}

func expandBookmarks(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = expandUserPath(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
