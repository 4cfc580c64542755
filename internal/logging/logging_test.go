package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscardByDefault(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Nil(t, l.file)
	l.Info("goes nowhere")
}

func TestWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	l, err := New(Options{File: path})
	require.NoError(t, err)

	l.WithField("dir", "/tmp").Info("loaded")
	l.Debug("hidden at info level")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=loaded")
	assert.Contains(t, string(data), "dir=/tmp")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestDebugUsesDefaultPath(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	l, err := New(Options{Debug: true})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.Debug("verbose")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(state, "fluxdir", "fluxdir.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=verbose")
}

func TestDefaultPathFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".local", "state", "fluxdir", "fluxdir.log"), DefaultPath())
}

func TestCloseIsIdempotent(t *testing.T) {
	l, err := New(Options{File: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}
