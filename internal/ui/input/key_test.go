package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyNames(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"plain rune", Rune('j'), "j"},
		{"uppercase rune", Rune('G'), "G"},
		{"shifted rune", Key{Code: tcell.KeyRune, Rune: 'g', Mod: tcell.ModShift}, "G"},
		{"punctuation", Rune('?'), "?"},
		{"space", Rune(' '), "Space"},
		{"enter", Special(tcell.KeyEnter, 0), "Enter"},
		{"escape", Special(tcell.KeyEscape, 0), "Esc"},
		{"ctrl code", Special(tcell.KeyCtrlR, tcell.ModCtrl), "Ctrl+R"},
		{"ctrl code without modifier", Special(tcell.KeyCtrlU, 0), "Ctrl+U"},
		{"ctrl rune", Key{Code: tcell.KeyRune, Rune: 'r', Mod: tcell.ModCtrl}, "Ctrl+R"},
		{"alt rune", Key{Code: tcell.KeyRune, Rune: 'x', Mod: tcell.ModAlt}, "Alt+x"},
		{"backspace", Special(tcell.KeyBackspace, 0), "Backspace"},
		{"backspace2", Special(tcell.KeyBackspace2, 0), "Backspace"},
		{"ctrl backspace", Special(tcell.KeyBackspace, tcell.ModCtrl), "Backspace"},
		{"page up", Special(tcell.KeyPgUp, 0), "PgUp"},
		{"shift up", Special(tcell.KeyUp, tcell.ModShift), "Shift+Up"},
		{"ctrl alt left", Special(tcell.KeyLeft, tcell.ModCtrl|tcell.ModAlt), "Ctrl+Alt+Left"},
		{"function key", Special(tcell.KeyF5, 0), "F5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Name(); got != tt.want {
				t.Fatalf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromEventControlCharacters(t *testing.T) {
	// tcell turns control runes into key codes and adds the Ctrl modifier.
	ev := tcell.NewEventKey(tcell.KeyRune, rune(tcell.KeyCtrlW), tcell.ModNone)
	key := FromEvent(ev)
	if key.Name() != "Ctrl+W" {
		t.Fatalf("expected Ctrl+W, got %q", key.Name())
	}
	if key.IsText() {
		t.Fatalf("control key must not be text")
	}
}

func TestIsText(t *testing.T) {
	if !Rune('a').IsText() {
		t.Fatalf("expected 'a' to be text")
	}
	if !Rune('ż').IsText() {
		t.Fatalf("expected non-ASCII letter to be text")
	}
	if (Key{Code: tcell.KeyRune, Rune: 'a', Mod: tcell.ModCtrl}).IsText() {
		t.Fatalf("Ctrl+a must not be text")
	}
	if Special(tcell.KeyEnter, 0).IsText() {
		t.Fatalf("Enter must not be text")
	}
	if got := (Key{Code: tcell.KeyRune, Rune: 'a', Mod: tcell.ModShift}).Text(); got != 'A' {
		t.Fatalf("expected shifted text 'A', got %q", got)
	}
}

func TestTranslate(t *testing.T) {
	ev := Translate(tcell.NewEventResize(120, 40))
	if ev.Kind != EventResize || ev.Width != 120 || ev.Height != 40 {
		t.Fatalf("unexpected resize translation: %+v", ev)
	}

	ev = Translate(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if ev.Kind != EventKey || ev.Key.Name() != "q" {
		t.Fatalf("unexpected key translation: %+v", ev)
	}

	ev = Translate(tcell.NewEventMouse(0, 0, tcell.Button1, 0))
	if ev.Kind != EventNone {
		t.Fatalf("mouse events should be ignored, got %+v", ev)
	}
}
