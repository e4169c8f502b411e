// ABOUTME: Defines the Key event value produced by the input parser.
// ABOUTME: Covers runes, named keys, modifiers, mouse reports, pastes, and cursor position reports.

package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Key represents one decoded terminal input event.
// It is comparable, so it can be used directly as a map key for bindings.
type Key struct {
	Type  KeyType
	Rune  rune // For KeyRune
	Alt   bool
	Ctrl  bool
	Shift bool

	// Text carries the payload of KeyPaste and the raw bytes of KeyUnknown.
	Text string
	// Mouse is set for KeyMouse.
	Mouse Mouse
	// Row and Col are set for KeyCursorPosition (1-based).
	Row int
	Col int
}

// KeyType enumerates the kinds of key events the parser can produce.
type KeyType int

const (
	KeyRune           KeyType = iota // Character, possibly modified
	KeyEnter                         // Enter / Return
	KeyTab                           // Tab
	KeyBackTab                       // Shift+Tab
	KeyBackspace                     // Backspace / DEL (0x7F)
	KeyDelete                        // Delete key
	KeyInsert                        // Insert key
	KeyUp                            // Arrow up
	KeyDown                          // Arrow down
	KeyLeft                          // Arrow left
	KeyRight                         // Arrow right
	KeyHome                          // Home
	KeyEnd                           // End
	KeyPageUp                        // Page Up
	KeyPageDown                      // Page Down
	KeyEscape                        // Escape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMouse          // Mouse report
	KeyPaste          // Bracketed paste payload
	KeyCursorPosition // Cursor position report
	KeyUnknown        // Recognized sequence with no key meaning
)

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyEnter:          "Enter",
	KeyTab:            "Tab",
	KeyBackTab:        "BackTab",
	KeyBackspace:      "Backspace",
	KeyDelete:         "Delete",
	KeyInsert:         "Insert",
	KeyUp:             "Up",
	KeyDown:           "Down",
	KeyLeft:           "Left",
	KeyRight:          "Right",
	KeyHome:           "Home",
	KeyEnd:            "End",
	KeyPageUp:         "PageUp",
	KeyPageDown:       "PageDown",
	KeyEscape:         "Escape",
	KeyF1:             "F1",
	KeyF2:             "F2",
	KeyF3:             "F3",
	KeyF4:             "F4",
	KeyF5:             "F5",
	KeyF6:             "F6",
	KeyF7:             "F7",
	KeyF8:             "F8",
	KeyF9:             "F9",
	KeyF10:            "F10",
	KeyF11:            "F11",
	KeyF12:            "F12",
	KeyMouse:          "Mouse",
	KeyPaste:          "Paste",
	KeyCursorPosition: "CursorPosition",
	KeyUnknown:        "Unknown",
}

// String returns the name of the key type.
func (t KeyType) String() string {
	if t == KeyRune {
		return "Rune"
	}
	if name, ok := keyTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("KeyType(%d)", int(t))
}

// Ctrl returns the Ctrl-modified key for a letter, e.g. Ctrl('c').
func Ctrl(r rune) Key {
	return Key{Type: KeyRune, Rune: unicode.ToLower(r), Ctrl: true}
}

// Alt returns the Alt-modified key for a rune, e.g. Alt('b').
func Alt(r rune) Key {
	return Key{Type: KeyRune, Rune: r, Alt: true}
}

// Rune returns the plain key for r.
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// Paste returns a bracketed-paste event carrying text.
func Paste(text string) Key {
	return Key{Type: KeyPaste, Text: text}
}

// Named returns an unmodified key of type t.
func Named(t KeyType) Key {
	return Key{Type: t}
}

// IsPrintable reports whether k inserts a visible character when typed.
func (k Key) IsPrintable() bool {
	return k.Type == KeyRune && !k.Ctrl && !k.Alt && unicode.IsPrint(k.Rune)
}

// Binding strips the payload fields so the key can be matched against
// a binding table.
func (k Key) Binding() Key {
	return Key{Type: k.Type, Rune: k.Rune, Alt: k.Alt, Ctrl: k.Ctrl, Shift: k.Shift}
}

// String returns a human-readable representation of the Key for debug display.
func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		return k.modifierPrefix() + runeName(k)
	case KeyPaste:
		return fmt.Sprintf("Paste(%q)", k.Text)
	case KeyMouse:
		return k.Mouse.String()
	case KeyCursorPosition:
		return fmt.Sprintf("CursorPosition(%d,%d)", k.Row, k.Col)
	case KeyUnknown:
		if k.Text != "" {
			return fmt.Sprintf("Unknown(%q)", k.Text)
		}
		return "Unknown"
	}
	name, ok := keyTypeNames[k.Type]
	if !ok {
		return "Unknown"
	}
	return k.modifierPrefix() + name
}

func (k Key) modifierPrefix() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("Ctrl+")
	}
	if k.Alt {
		b.WriteString("Alt+")
	}
	if k.Shift {
		b.WriteString("Shift+")
	}
	return b.String()
}

// runeName builds the display name of a rune key without modifiers.
func runeName(k Key) string {
	switch {
	case k.Rune == ' ':
		return "Space"
	case k.Ctrl:
		return string(unicode.ToUpper(k.Rune))
	case !unicode.IsPrint(k.Rune):
		return fmt.Sprintf("%U", k.Rune)
	}
	return string(k.Rune)
}
