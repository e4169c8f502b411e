// ABOUTME: Tests for the fuzzy matching wrapper
// ABOUTME: Verifies ranking, matched offsets, and empty-pattern behavior

package fuzzy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type words []string

func (w words) String(i int) string { return w[i] }
func (w words) Len() int            { return len(w) }

func TestPositions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		text    string
		wantLen int
	}{
		{name: "prefix", pattern: "he", text: "hello", wantLen: 2},
		{name: "scattered", pattern: "gco", text: "git checkout", wantLen: 3},
		{name: "no match", pattern: "zzz", text: "cat", wantLen: 0},
		{name: "empty pattern", pattern: "", text: "cat", wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Positions(tt.pattern, tt.text)
			if len(got) != tt.wantLen {
				t.Fatalf("Positions(%q, %q) = %v, want %d offsets", tt.pattern, tt.text, got, tt.wantLen)
			}
			for i, off := range got {
				if i > 0 && off <= got[i-1] {
					t.Errorf("offsets not ascending: %v", got)
				}
				if tt.text[off] != tt.pattern[i] {
					t.Errorf("offset %d points at %q, want %q", off, tt.text[off], tt.pattern[i])
				}
			}
		})
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	src := words{"banana", "bar", "baz", "foo"}
	got := Rank("ba", src)
	if len(got) != 3 {
		t.Fatalf("Rank(ba) = %v, want three indexes", got)
	}
	for _, i := range got {
		if i == 3 {
			t.Errorf("Rank(ba) included foo")
		}
	}

	if diff := cmp.Diff([]int{0, 1, 2, 3}, Rank("", src)); diff != "" {
		t.Errorf("Rank(\"\") mismatch (-want +got):\n%s", diff)
	}
	if got := Rank("zzz", src); len(got) != 0 {
		t.Errorf("Rank(zzz) = %v, want none", got)
	}
}
