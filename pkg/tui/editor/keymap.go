// ABOUTME: Editing actions, their default key bindings, and the Keymap that resolves keys to actions
// ABOUTME: Overrides use the configuration spelling ("ctrl+a") and are validated up front

package editor

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mauromedda/promptkit/pkg/tui/key"
)

// Action is a bindable editing command. Its string form is the name used
// in configuration files.
type Action string

const (
	ActionCursorLeft        Action = "cursorLeft"
	ActionCursorRight       Action = "cursorRight"
	ActionCursorUp          Action = "cursorUp"
	ActionCursorDown        Action = "cursorDown"
	ActionWordLeft          Action = "wordLeft"
	ActionWordRight         Action = "wordRight"
	ActionHome              Action = "home"
	ActionEnd               Action = "end"
	ActionDeleteBack        Action = "deleteBack"
	ActionDeleteForward     Action = "deleteForward"
	ActionDeleteWordBack    Action = "deleteWordBack"
	ActionDeleteWordForward Action = "deleteWordForward"
	ActionKillLine          Action = "killLine"
	ActionKillLineBack      Action = "killLineBack"
	ActionYank              Action = "yank"
	ActionYankPop           Action = "yankPop"
	ActionUndo              Action = "undo"
	ActionRedo              Action = "redo"
	ActionTranspose         Action = "transpose"
	ActionComplete          Action = "complete"
	ActionCompletePrev      Action = "completePrev"
	ActionAccept            Action = "accept"
	ActionAbort             Action = "abort"
	ActionExit              Action = "exit"
	ActionNewline           Action = "newline"
)

// defaultBindings follows Emacs/readline conventions.
var defaultBindings = map[Action][]string{
	ActionCursorLeft:        {"left", "ctrl+b"},
	ActionCursorRight:       {"right", "ctrl+f"},
	ActionCursorUp:          {"up", "ctrl+p"},
	ActionCursorDown:        {"down", "ctrl+n"},
	ActionWordLeft:          {"alt+b", "ctrl+left", "alt+left"},
	ActionWordRight:         {"alt+f", "ctrl+right", "alt+right"},
	ActionHome:              {"home", "ctrl+a"},
	ActionEnd:               {"end", "ctrl+e"},
	ActionDeleteBack:        {"backspace", "ctrl+h"},
	ActionDeleteForward:     {"delete"},
	ActionDeleteWordBack:    {"ctrl+w", "alt+backspace"},
	ActionDeleteWordForward: {"alt+d", "alt+delete"},
	ActionKillLine:          {"ctrl+k"},
	ActionKillLineBack:      {"ctrl+u"},
	ActionYank:              {"ctrl+y"},
	ActionYankPop:           {"alt+y"},
	ActionUndo:              {"ctrl+_", "ctrl+z"},
	ActionRedo:              {"alt+_", "alt+z"},
	ActionTranspose:         {"ctrl+t"},
	ActionComplete:          {"tab"},
	ActionCompletePrev:      {"shift+tab"},
	ActionAccept:            {"enter"},
	ActionAbort:             {"ctrl+c"},
	ActionExit:              {"ctrl+d"},
	ActionNewline:           {"alt+enter"},
}

// Actions returns every known action name, sorted.
func Actions() []Action {
	return slices.Sorted(maps.Keys(defaultBindings))
}

// DefaultBindings returns a copy of the default action -> keys table.
func DefaultBindings() map[Action][]string {
	out := make(map[Action][]string, len(defaultBindings))
	for a, keys := range defaultBindings {
		out[a] = slices.Clone(keys)
	}
	return out
}

// Keymap resolves decoded keys to actions.
type Keymap struct {
	byKey map[key.Key]Action
}

// NewKeymap builds a Keymap from the defaults with overrides applied. An
// override replaces all default keys of its action; an empty list unbinds
// the action. An override key that a default binds to another action is
// taken over; two overrides claiming the same key is an error.
func NewKeymap(overrides map[string][]string) (*Keymap, error) {
	m := &Keymap{byKey: make(map[key.Key]Action, 64)}

	parsed := make(map[Action][]key.Key, len(overrides))
	for name, spellings := range overrides {
		a := Action(name)
		if _, ok := defaultBindings[a]; !ok {
			return nil, fmt.Errorf("keybindings: unknown action %q", name)
		}
		for _, s := range spellings {
			k, err := key.ParseBinding(s)
			if err != nil {
				return nil, fmt.Errorf("keybindings: action %q: %w", name, err)
			}
			parsed[a] = append(parsed[a], k)
		}
		if _, ok := parsed[a]; !ok {
			parsed[a] = nil
		}
	}

	for a, spellings := range defaultBindings {
		if _, overridden := parsed[a]; overridden {
			continue
		}
		for _, s := range spellings {
			m.byKey[key.MustParseBinding(s)] = a
		}
	}

	claimed := make(map[key.Key]Action)
	for _, a := range slices.Sorted(maps.Keys(parsed)) {
		for _, k := range parsed[a] {
			if other, dup := claimed[k]; dup && other != a {
				return nil, fmt.Errorf("keybindings: %s bound to both %q and %q", k, other, a)
			}
			claimed[k] = a
			m.byKey[k] = a
		}
	}
	return m, nil
}

// Lookup returns the action bound to k, ignoring payload fields.
func (m *Keymap) Lookup(k key.Key) (Action, bool) {
	a, ok := m.byKey[k.Binding()]
	return a, ok
}

// KeysFor returns the keys bound to a, in a stable order.
func (m *Keymap) KeysFor(a Action) []key.Key {
	var keys []key.Key
	for k, bound := range m.byKey {
		if bound == a {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(x, y key.Key) int {
		return strings.Compare(x.String(), y.String())
	})
	return keys
}
