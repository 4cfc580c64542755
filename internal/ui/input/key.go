package input

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key is a single key press stripped of the tcell event wrapper.
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// FromEvent copies the key data out of a tcell event.
func FromEvent(ev *tcell.EventKey) Key {
	return Key{Code: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}
}

// Rune builds a plain printable key.
func Rune(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// Special builds a non-rune key such as tcell.KeyEnter.
func Special(code tcell.Key, mod tcell.ModMask) Key {
	return Key{Code: code, Mod: mod}
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Esc",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Backtab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PgUp",
	tcell.KeyPgDn:       "PgDn",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// Name returns the keymap name of the key: a single character for plain
// runes ("j", "G", "?"), otherwise a named key with modifier prefixes in
// the order Ctrl, Alt, Shift ("Enter", "Ctrl+R", "Shift+Up").
func (k Key) Name() string {
	if k.Code == tcell.KeyRune {
		return k.runeName()
	}

	var prefix []string
	base, named := namedKeys[k.Code]
	if !named {
		if letter, ok := ctrlLetter(k.Code); ok {
			return "Ctrl+" + string(letter)
		}
		return ""
	}
	if k.Code == tcell.KeyBackspace || k.Code == tcell.KeyBackspace2 {
		// Terminals disagree on which code Backspace sends and often
		// report Ctrl for the ^H variant.
		return base
	}
	if k.Mod&tcell.ModCtrl != 0 {
		prefix = append(prefix, "Ctrl")
	}
	if k.Mod&tcell.ModAlt != 0 {
		prefix = append(prefix, "Alt")
	}
	if k.Mod&tcell.ModShift != 0 {
		prefix = append(prefix, "Shift")
	}
	if len(prefix) == 0 {
		return base
	}
	return strings.Join(prefix, "+") + "+" + base
}

func (k Key) runeName() string {
	r := k.Rune
	switch {
	case k.Mod&tcell.ModCtrl != 0:
		return "Ctrl+" + string(unicode.ToUpper(r))
	case k.Mod&tcell.ModAlt != 0:
		return "Alt+" + string(r)
	}
	if k.Mod&tcell.ModShift != 0 {
		// Normalize shifted alphabetic runes to reflect user intent (Shift+A => 'A')
		r = unicode.ToUpper(r)
	}
	if r == ' ' {
		return "Space"
	}
	return string(r)
}

// ctrlLetter maps the ASCII control codes tcell reports as KeyCtrlA..KeyCtrlZ
// back to their letter. Codes shared with Enter, Tab and Backspace are
// covered by namedKeys first.
func ctrlLetter(code tcell.Key) (rune, bool) {
	if code >= tcell.KeyCtrlA && code <= tcell.KeyCtrlZ {
		return 'A' + rune(code-tcell.KeyCtrlA), true
	}
	return 0, false
}

// IsText reports whether the key should be inserted into a text field.
func (k Key) IsText() bool {
	if k.Code != tcell.KeyRune {
		return false
	}
	if k.Mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
		return false
	}
	return unicode.IsPrint(k.Rune)
}

// Text returns the rune to insert for a text key, honoring Shift.
func (k Key) Text() rune {
	if k.Mod&tcell.ModShift != 0 {
		return unicode.ToUpper(k.Rune)
	}
	return k.Rune
}
