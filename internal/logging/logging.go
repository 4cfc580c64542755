// Package logging builds the application logger. The terminal belongs to
// the UI, so log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options selects the log sink and verbosity.
type Options struct {
	// File is the log path. Empty means DefaultPath when Debug is set and
	// no logging otherwise.
	File  string
	Debug bool
}

// Logger is a logrus logger plus the file it writes to.
type Logger struct {
	*logrus.Logger
	file *os.File
}

// New opens the configured sink. Close releases it.
func New(opts Options) (*Logger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	l.SetLevel(logrus.InfoLevel)
	if opts.Debug {
		l.SetLevel(logrus.DebugLevel)
	}

	path := opts.File
	if path == "" && opts.Debug {
		path = DefaultPath()
	}
	if path == "" {
		l.SetOutput(io.Discard)
		return &Logger{Logger: l}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f)
	return &Logger{Logger: l, file: f}, nil
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.SetOutput(io.Discard)
	err := l.file.Close()
	l.file = nil
	return err
}

// DefaultPath is $XDG_STATE_HOME/fluxdir/fluxdir.log, falling back to
// ~/.local/state. It returns "" when no home directory is known.
func DefaultPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return ""
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "fluxdir", "fluxdir.log")
}
