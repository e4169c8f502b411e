// ABOUTME: Thin wrapper over sahilm/fuzzy for ranking completion candidates
// ABOUTME: Ranks return source indexes; Positions gives matched byte offsets for highlighting

package fuzzy

import "github.com/sahilm/fuzzy"

// Source is a list of strings to match against without copying them out
// of the caller's own type.
type Source = fuzzy.Source

// Positions returns the byte offsets in text of the characters pattern
// matched, in ascending order, or nil when text does not match or pattern
// is empty. Renderers use them to highlight the match.
func Positions(pattern, text string) []int {
	if pattern == "" {
		return nil
	}
	matches := fuzzy.Find(pattern, []string{text})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// Rank returns the source indexes matching pattern, best first. Equal
// scores keep source order. An empty pattern returns every index in order.
func Rank(pattern string, data Source) []int {
	if pattern == "" {
		idx := make([]int, data.Len())
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	results := fuzzy.FindFrom(pattern, data)
	idx := make([]int, len(results))
	for i, r := range results {
		idx[i] = r.Index
	}
	return idx
}
