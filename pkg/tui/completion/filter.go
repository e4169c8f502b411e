// ABOUTME: Prefix and fuzzy filters over suggestion lists.
// ABOUTME: Case-insensitive matching uses Unicode case folding from x/text.

package completion

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mauromedda/promptkit/pkg/tui/fuzzy"
)

// Filter keeps the suggestions whose Text starts with prefix, in their
// original order. Filtering an already filtered list with the same
// arguments returns it unchanged.
func Filter(s []Suggestion, prefix string, caseInsensitive bool) []Suggestion {
	if prefix == "" {
		return append([]Suggestion(nil), s...)
	}

	match := strings.HasPrefix
	if caseInsensitive {
		// A Caser holds state and is not safe for concurrent use.
		fold := cases.Fold()
		p := fold.String(prefix)
		match = func(text, _ string) bool {
			return strings.HasPrefix(fold.String(text), p)
		}
	}

	var out []Suggestion
	for _, sg := range s {
		if match(sg.Text, prefix) {
			out = append(out, sg)
		}
	}
	return out
}

type suggestionSource []Suggestion

func (s suggestionSource) String(i int) string { return s[i].Text }
func (s suggestionSource) Len() int            { return len(s) }

// FilterFuzzy keeps the suggestions fuzzily matching pattern, best match
// first. An empty pattern keeps the input order.
func FilterFuzzy(s []Suggestion, pattern string) []Suggestion {
	idx := fuzzy.Rank(pattern, suggestionSource(s))
	if len(idx) == 0 {
		return nil
	}
	out := make([]Suggestion, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}
