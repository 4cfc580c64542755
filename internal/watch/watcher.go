// Package watch reports changes to the directory being browsed.
package watch

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces bursts such as an editor's save-rename dance.
const DefaultDebounce = 150 * time.Millisecond

// Change reports that Dir was modified.
type Change struct {
	Dir string
	At  time.Time
}

// Watcher follows a single directory with fsnotify. Bursts of events are
// debounced into one Change; Changes for a directory that is no longer the
// target are dropped.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    logrus.FieldLogger
	debounce  time.Duration

	changes chan Change
	stop    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	dir     string
	running bool
}

// New creates a watcher. A nil logger discards log output.
func New(logger logrus.FieldLogger, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger.WithField("component", "watch"),
		debounce:  debounce,
		changes:   make(chan Change, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Changes delivers debounced change notifications. At most one is queued;
// a newer change replaces it.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Dir returns the directory being watched.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Watch retargets the watcher to dir. Watching the current target again is
// a no-op.
func (w *Watcher) Watch(dir string) error {
	dir = filepath.Clean(dir)

	w.mu.Lock()
	defer w.mu.Unlock()
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			w.logger.WithError(err).WithField("directory", w.dir).Debug("remove watch")
		}
	}
	w.dir = ""
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	w.logger.WithField("directory", dir).Debug("watching directory")
	return nil
}

// Start runs the event loop in a goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			dir := w.Dir()
			if !relevant(event, dir) {
				continue
			}
			pending = dir
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if pending == "" || pending != w.Dir() {
				continue
			}
			w.publish(Change{Dir: pending, At: time.Now()})
			pending = ""

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("fsnotify watcher error")

		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// publish queues c, replacing a change that is still waiting. The queued
// one may be for a directory the watcher has since left.
func (w *Watcher) publish(c Change) {
	for {
		select {
		case w.changes <- c:
			return
		default:
		}
		select {
		case <-w.changes:
		default:
		}
	}
}

func relevant(event fsnotify.Event, dir string) bool {
	if dir == "" {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == dir || filepath.Dir(name) == dir
}

// Stop ends the event loop and releases the fsnotify handle. It is safe to
// call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.fsWatcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stop)
	<-w.done
	if err := w.fsWatcher.Close(); err != nil {
		w.logger.WithError(err).Warn("closing fsnotify watcher")
	}
}
