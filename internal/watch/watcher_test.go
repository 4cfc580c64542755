package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedWatcher(t *testing.T, dir string, debounce time.Duration) *Watcher {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	w, err := New(logger, debounce)
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	// Give fsnotify a moment to register the watch.
	time.Sleep(50 * time.Millisecond)
	return w
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for change")
		return Change{}
	}
}

func TestWatcherReportsCreate(t *testing.T) {
	dir := t.TempDir()
	w := newStartedWatcher(t, dir, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	c := waitChange(t, w)
	assert.Equal(t, filepath.Clean(dir), c.Dir)
	assert.False(t, c.At.IsZero())
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	w := newStartedWatcher(t, dir, 150*time.Millisecond)

	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, "f"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}

	waitChange(t, w)
	select {
	case c := <-w.Changes():
		t.Fatalf("burst produced a second change: %+v", c)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherRetarget(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	w := newStartedWatcher(t, first, 20*time.Millisecond)

	require.NoError(t, w.Watch(second))
	assert.Equal(t, filepath.Clean(second), w.Dir())
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(first, "ignored.txt"), []byte("x"), 0o644))
	select {
	case c := <-w.Changes():
		t.Fatalf("change from old target: %+v", c)
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(filepath.Join(second, "seen.txt"), []byte("x"), 0o644))
	assert.Equal(t, filepath.Clean(second), waitChange(t, w).Dir)
}

func TestPublishReplacesQueuedChange(t *testing.T) {
	w, err := New(nil, 0)
	require.NoError(t, err)
	defer w.Stop()

	w.publish(Change{Dir: "/old", At: time.Now()})
	w.publish(Change{Dir: "/new", At: time.Now()})

	assert.Equal(t, "/new", waitChange(t, w).Dir)
	select {
	case c := <-w.Changes():
		t.Fatalf("expected a single queued change, got %+v", c)
	default:
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w, err := New(nil, 0)
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.Empty(t, w.Dir())
}

func TestStartTwice(t *testing.T) {
	w, err := New(logrus.New(), 0)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.Error(t, w.Start())
	w.Stop()
	w.Stop()
}

func TestRelevant(t *testing.T) {
	dir := "/data/work"
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"child create", fsnotify.Event{Name: "/data/work/a.txt", Op: fsnotify.Create}, true},
		{"dir itself removed", fsnotify.Event{Name: "/data/work", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "/data/work/a.txt", Op: fsnotify.Chmod}, false},
		{"other dir", fsnotify.Event{Name: "/data/other/a.txt", Op: fsnotify.Write}, false},
		{"grandchild", fsnotify.Event{Name: "/data/work/sub/a.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event, dir))
		})
	}
	assert.False(t, relevant(fsnotify.Event{Name: "/a", Op: fsnotify.Create}, ""))
}
