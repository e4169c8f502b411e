// ABOUTME: Suggestion values and the Completer capability with static-list and callback variants.
// ABOUTME: Policy turns a Completer's raw output into the ordered candidate list for a document.

package completion

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mauromedda/promptkit/pkg/tui/document"
)

// Suggestion is one completion candidate. Description is display-only.
type Suggestion struct {
	Text        string `yaml:"text"`
	Description string `yaml:"description,omitempty"`
}

// Completer produces suggestions for a document. Implementations receive
// a private copy and must not retain it.
type Completer interface {
	Complete(doc document.Document) []Suggestion
}

type staticCompleter []Suggestion

func (s staticCompleter) Complete(document.Document) []Suggestion {
	return slices.Clone([]Suggestion(s))
}

// Static returns a Completer that always offers the given suggestions.
// Filtering against the typed word is left to Policy.
func Static(suggestions ...Suggestion) Completer {
	return staticCompleter(slices.Clone(suggestions))
}

// StaticStrings is Static for suggestions without descriptions.
func StaticStrings(texts ...string) Completer {
	s := make(staticCompleter, len(texts))
	for i, t := range texts {
		s[i] = Suggestion{Text: t}
	}
	return s
}

// Func adapts a function to the Completer interface.
type Func func(doc document.Document) []Suggestion

// Complete calls f.
func (f Func) Complete(doc document.Document) []Suggestion {
	return f(doc)
}

// Mode selects how candidates are matched against the typed word.
type Mode int

const (
	ModePrefix Mode = iota // Stable prefix filter
	ModeFuzzy              // Fuzzy match, best score first
)

func (m Mode) String() string {
	switch m {
	case ModePrefix:
		return "prefix"
	case ModeFuzzy:
		return "fuzzy"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "prefix" or "fuzzy"; the empty string means prefix.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prefix":
		return ModePrefix, nil
	case "fuzzy":
		return ModeFuzzy, nil
	}
	return ModePrefix, fmt.Errorf("unknown completion mode %q", s)
}

// Policy controls how the Edit Controller derives candidates.
type Policy struct {
	Mode            Mode
	CaseInsensitive bool
	// MaxSuggestions truncates the candidate list; 0 means unlimited.
	MaxSuggestions int
}

// DefaultPolicy is a case-insensitive prefix filter with no limit.
var DefaultPolicy = Policy{Mode: ModePrefix, CaseInsensitive: true}

// Candidates asks c for suggestions and filters them against the word
// before the cursor. The completer sees a clone of doc.
func (p Policy) Candidates(c Completer, doc document.Document) []Suggestion {
	if c == nil {
		return nil
	}
	raw := c.Complete(doc.Clone())
	word := doc.WordBeforeCursor()

	var out []Suggestion
	switch p.Mode {
	case ModeFuzzy:
		out = FilterFuzzy(raw, word)
	default:
		out = Filter(raw, word, p.CaseInsensitive)
	}
	if p.MaxSuggestions > 0 && len(out) > p.MaxSuggestions {
		out = out[:p.MaxSuggestions]
	}
	return out
}
