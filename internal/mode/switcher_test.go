package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/fluxdir/internal/state"
)

func TestSwitcherSearchRoundTrip(t *testing.T) {
	f := newFixture(t, state.Options{})
	sw := NewSwitcher(f.km, Options{})
	require.Equal(t, KindExplore, sw.Kind())

	f.press(t, sw, key("/"))
	require.Equal(t, KindSearch, sw.Kind())
	assert.Len(t, f.state.SearchResults(), 4)

	for _, r := range "test" {
		f.press(t, sw, key(string(r)))
	}
	assert.Equal(t, "test", f.state.SearchQuery())
	require.Len(t, f.state.SearchResults(), 1)

	f.press(t, sw, key("Enter"))
	assert.Equal(t, KindExplore, sw.Kind())
	entry, ok := f.state.SelectedEntry()
	require.True(t, ok)
	assert.Equal(t, "main_test.go", entry.Name)
}

func TestSwitcherEscapeLeavesSearch(t *testing.T) {
	f := newFixture(t, state.Options{})
	sw := NewSwitcher(f.km, Options{})

	f.press(t, sw, key("/"))
	f.press(t, sw, key("m"))
	epoch := f.state.SearchEpoch()

	assert.Equal(t, state.ClearSearch{}, f.press(t, sw, key("Esc")))
	assert.Equal(t, KindExplore, sw.Kind())
	assert.False(t, f.state.SearchActive())
	assert.Greater(t, f.state.SearchEpoch(), epoch)
	assert.Equal(t, "/work", f.state.CurrentDir())
}

func TestSwitcherLeftClearsSearchInsteadOfLeavingDirectory(t *testing.T) {
	f := newFixture(t, state.Options{})
	sw := NewSwitcher(f.km, Options{})

	f.press(t, sw, key("/"))
	assert.Equal(t, state.ClearSearch{}, f.press(t, sw, key("Left")))
	assert.Equal(t, "/work", f.state.CurrentDir())
	assert.Equal(t, KindExplore, sw.Kind())
}

func TestSwitcherBookmarksFlow(t *testing.T) {
	f := newFixture(t, state.Options{Bookmarks: []string{"/work/docs"}})
	sw := NewSwitcher(f.km, Options{})

	f.press(t, sw, key("'"))
	require.Equal(t, KindBookmarks, sw.Kind())

	f.press(t, sw, key("Enter"))
	assert.Equal(t, KindExplore, sw.Kind())
	assert.Equal(t, "/work/docs", f.state.CurrentDir())
}

func TestSwitcherSync(t *testing.T) {
	f := newFixture(t, state.Options{})
	sw := NewSwitcher(f.km, Options{})

	f.dispatch(t, state.StartSearch{})
	sw.Sync(f.state)
	assert.Equal(t, KindSearch, sw.Kind())

	f.dispatch(t, state.ClearSearch{})
	sw.Sync(f.state)
	assert.Equal(t, KindExplore, sw.Kind())

	sw.SwitchTo(KindBookmarks, f.state)
	sw.Sync(f.state)
	assert.Equal(t, KindBookmarks, sw.Kind())
}
