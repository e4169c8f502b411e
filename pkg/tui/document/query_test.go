// ABOUTME: Tests for Document word and line queries.
// ABOUTME: Covers word predicates, word-wise movement targets, and row/column translation.

package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindStartOfWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		cursor int
		want   int
	}{
		{"cursor at zero", "hello", 0, 0},
		{"empty", "", 0, 0},
		{"second word", "hello world", 11, 6},
		{"mid word", "hello world", 8, 6},
		{"after space", "hello ", 6, 6},
		{"underscore and digits", "a snake_case2", 13, 2},
		{"punctuation stops", "foo-bar", 7, 4},
		{"unicode letters", "über straße", 11, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := mustDoc(t, tt.text, tt.cursor)
			if got := d.FindStartOfWord(); got != tt.want {
				t.Errorf("FindStartOfWord() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindStartOfWordAtZeroIsZero(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "a", " ", "abc def", "日本", "-x"} {
		d := mustDoc(t, text, 0)
		if got := d.FindStartOfWord(); got != 0 {
			t.Errorf("FindStartOfWord() on %q at 0 = %d", text, got)
		}
	}
}

func TestCustomWordPredicate(t *testing.T) {
	t.Parallel()

	pathChars := func(r rune) bool { return IsWordChar(r) || r == '-' || r == '/' || r == '.' }
	d := mustDoc(t, "cat ./some-dir/fi", 17, WithWordPredicate(pathChars))
	if got := d.WordBeforeCursor(); got != "./some-dir/fi" {
		t.Errorf("WordBeforeCursor() = %q", got)
	}
	if d.Clone().FindStartOfWord() != 4 {
		t.Error("Clone dropped the word predicate")
	}
}

func TestWordQueries(t *testing.T) {
	t.Parallel()

	d := mustDoc(t, "foo barbaz  qux", 7)
	if got := d.FindEndOfWord(); got != 10 {
		t.Errorf("FindEndOfWord() = %d, want 10", got)
	}
	if got := d.WordBeforeCursor(); got != "bar" {
		t.Errorf("WordBeforeCursor() = %q", got)
	}
	if got := d.WordAfterCursor(); got != "baz" {
		t.Errorf("WordAfterCursor() = %q", got)
	}

	end := mustDoc(t, "foo bar  ", 9)
	if got := end.FindPreviousWordStart(); got != 4 {
		t.Errorf("FindPreviousWordStart() = %d, want 4", got)
	}
	start := mustDoc(t, "foo  bar baz", 3)
	if got := start.FindNextWordEnd(); got != 8 {
		t.Errorf("FindNextWordEnd() = %d, want 8", got)
	}
}

func TestLineQueries(t *testing.T) {
	t.Parallel()

	d := mustDoc(t, "ab\ncd\n", 4)
	if got := d.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
	if diff := cmp.Diff([]string{"ab", "cd", ""}, d.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if row, col := d.CursorRowCol(); row != 1 || col != 1 {
		t.Errorf("CursorRowCol() = %d,%d, want 1,1", row, col)
	}
	if d.LineStart() != 3 || d.LineEnd() != 5 {
		t.Errorf("LineStart/End = %d/%d, want 3/5", d.LineStart(), d.LineEnd())
	}
	if d.CurrentLine() != "cd" || d.CurrentLineBeforeCursor() != "c" || d.CurrentLineAfterCursor() != "d" {
		t.Errorf("current line = %q %q %q", d.CurrentLine(), d.CurrentLineBeforeCursor(), d.CurrentLineAfterCursor())
	}

	if New().LineCount() != 1 {
		t.Error("empty document should have one line")
	}
}

func TestIndexRowColTranslation(t *testing.T) {
	t.Parallel()

	d := mustDoc(t, "ab\ncd\n", 0)

	for _, tt := range []struct{ index, row, col int }{
		{0, 0, 0}, {2, 0, 2}, {3, 1, 0}, {5, 1, 2}, {6, 2, 0}, {99, 2, 0}, {-5, 0, 0},
	} {
		row, col := d.IndexToRowCol(tt.index)
		if row != tt.row || col != tt.col {
			t.Errorf("IndexToRowCol(%d) = %d,%d, want %d,%d", tt.index, row, col, tt.row, tt.col)
		}
	}

	for _, tt := range []struct{ row, col, index int }{
		{0, 0, 0}, {0, 99, 2}, {1, 1, 4}, {2, 0, 6}, {9, 0, 6}, {-1, 1, 1},
	} {
		if got := d.RowColToIndex(tt.row, tt.col); got != tt.index {
			t.Errorf("RowColToIndex(%d, %d) = %d, want %d", tt.row, tt.col, got, tt.index)
		}
	}
}

func TestMoveLines(t *testing.T) {
	t.Parallel()

	d := mustDoc(t, "abcd\nx\nabcd", 3)
	d.MoveLines(1)
	if d.Cursor() != 6 {
		t.Errorf("MoveLines(1) = %d, want 6", d.Cursor())
	}
	d.MoveLines(1)
	if d.Cursor() != 8 {
		t.Errorf("MoveLines(1) again = %d, want 8", d.Cursor())
	}
	d.MoveLines(-5)
	if d.Cursor() != 1 {
		t.Errorf("MoveLines(-5) = %d, want 1", d.Cursor())
	}
}
