// ABOUTME: ParseBinding turns configuration spellings like "ctrl+a" or "shift+tab" into Key values.
// ABOUTME: The result is normalized the same way the parser emits keys so it can be compared directly.

package key

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bindingNames maps lowercase key names accepted in configuration files.
var bindingNames = map[string]KeyType{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"backtab":   KeyBackTab,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    KeyInsert,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pgup":      KeyPageUp,
	"pageup":    KeyPageUp,
	"pgdown":    KeyPageDown,
	"pagedown":  KeyPageDown,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"f1":        KeyF1,
	"f2":        KeyF2,
	"f3":        KeyF3,
	"f4":        KeyF4,
	"f5":        KeyF5,
	"f6":        KeyF6,
	"f7":        KeyF7,
	"f8":        KeyF8,
	"f9":        KeyF9,
	"f10":       KeyF10,
	"f11":       KeyF11,
	"f12":       KeyF12,
}

// ParseBinding parses a key spelling such as "ctrl+a", "alt+b", "left",
// "shift+tab" or "ctrl+space". Modifier and key names are case-insensitive.
func ParseBinding(s string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	// A trailing "+" means the plus key itself: "ctrl++".
	if len(parts) > 1 && parts[len(parts)-1] == "" && parts[len(parts)-2] == "" {
		parts = append(parts[:len(parts)-2], "+")
	}

	var k Key
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl", "control":
			k.Ctrl = true
		case "alt", "meta", "option":
			k.Alt = true
		case "shift":
			k.Shift = true
		default:
			return Key{}, fmt.Errorf("parsing binding %q: unknown modifier %q", s, mod)
		}
	}

	name := parts[len(parts)-1]
	if name == "" {
		return Key{}, fmt.Errorf("parsing binding %q: missing key name", s)
	}

	lower := strings.ToLower(name)
	named, isNamed := bindingNames[lower]
	switch {
	case lower == "space":
		k.Type = KeyRune
		k.Rune = ' '
	case isNamed:
		k.Type = named
	case utf8.RuneCountInString(name) == 1:
		r, _ := utf8.DecodeRuneInString(name)
		k.Type = KeyRune
		k.Rune = r
		if k.Ctrl {
			k.Rune = unicode.ToLower(r)
		}
	default:
		return Key{}, fmt.Errorf("parsing binding %q: unknown key %q", s, name)
	}

	if k.Type == KeyTab && k.Shift {
		k = Key{Type: KeyBackTab, Ctrl: k.Ctrl, Alt: k.Alt}
	}
	if k.Type == KeyBackTab {
		k.Shift = false
	}
	return k, nil
}

// MustParseBinding is like ParseBinding but panics on error. It is meant
// for package-level default tables.
func MustParseBinding(s string) Key {
	k, err := ParseBinding(s)
	if err != nil {
		panic(err)
	}
	return k
}
