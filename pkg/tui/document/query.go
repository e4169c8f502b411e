// ABOUTME: Read-only word and line queries over a Document.
// ABOUTME: Word scans use the document's word predicate; line queries split on '\n'.

package document

import "strings"

// FindStartOfWord returns the offset where the word ending at the cursor
// begins. It equals the cursor when the rune before it is not a word rune.
func (d Document) FindStartOfWord() int {
	isWord := d.wordPredicate()
	i := d.cursor
	for i > 0 && isWord(d.text[i-1]) {
		i--
	}
	return i
}

// FindEndOfWord returns the offset where the word starting at the cursor
// ends.
func (d Document) FindEndOfWord() int {
	isWord := d.wordPredicate()
	i := d.cursor
	for i < len(d.text) && isWord(d.text[i]) {
		i++
	}
	return i
}

// WordBeforeCursor returns the word characters immediately left of the cursor.
func (d Document) WordBeforeCursor() string {
	return string(d.text[d.FindStartOfWord():d.cursor])
}

// WordAfterCursor returns the word characters immediately right of the cursor.
func (d Document) WordAfterCursor() string {
	return string(d.text[d.cursor:d.FindEndOfWord()])
}

// FindPreviousWordStart skips separators then word characters backwards.
// It is the target of word-left movement and of deleting the previous word.
func (d Document) FindPreviousWordStart() int {
	isWord := d.wordPredicate()
	i := d.cursor
	for i > 0 && !isWord(d.text[i-1]) {
		i--
	}
	for i > 0 && isWord(d.text[i-1]) {
		i--
	}
	return i
}

// FindNextWordEnd skips separators then word characters forwards.
func (d Document) FindNextWordEnd() int {
	isWord := d.wordPredicate()
	i := d.cursor
	for i < len(d.text) && !isWord(d.text[i]) {
		i++
	}
	for i < len(d.text) && isWord(d.text[i]) {
		i++
	}
	return i
}

// LineCount returns the number of lines; an empty document has one.
func (d Document) LineCount() int {
	n := 1
	for _, r := range d.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Lines returns the content split on newlines.
func (d Document) Lines() []string {
	return strings.Split(string(d.text), "\n")
}

// lineStarts returns the rune offset at which each line begins.
func (d Document) lineStarts() []int {
	starts := []int{0}
	for i, r := range d.text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// IndexToRowCol translates a rune offset into a zero-based row and column.
// Offsets outside the text are clamped.
func (d Document) IndexToRowCol(i int) (int, int) {
	i = max(0, min(i, len(d.text)))
	starts := d.lineStarts()
	row := 0
	for row+1 < len(starts) && starts[row+1] <= i {
		row++
	}
	return row, i - starts[row]
}

// RowColToIndex translates a zero-based row and column into a rune offset.
// Both are clamped to existing positions.
func (d Document) RowColToIndex(row, col int) int {
	starts := d.lineStarts()
	row = max(0, min(row, len(starts)-1))
	end := len(d.text)
	if row+1 < len(starts) {
		end = starts[row+1] - 1
	}
	return starts[row] + max(0, min(col, end-starts[row]))
}

// CursorRowCol returns the cursor's zero-based row and column.
func (d Document) CursorRowCol() (int, int) {
	return d.IndexToRowCol(d.cursor)
}

// LineStart returns the offset of the first rune on the cursor's line.
func (d Document) LineStart() int {
	i := d.cursor
	for i > 0 && d.text[i-1] != '\n' {
		i--
	}
	return i
}

// LineEnd returns the offset of the newline ending the cursor's line, or
// the text length on the last line.
func (d Document) LineEnd() int {
	i := d.cursor
	for i < len(d.text) && d.text[i] != '\n' {
		i++
	}
	return i
}

// CurrentLine returns the full line the cursor is on.
func (d Document) CurrentLine() string {
	return string(d.text[d.LineStart():d.LineEnd()])
}

// CurrentLineBeforeCursor returns the part of the cursor's line left of it.
func (d Document) CurrentLineBeforeCursor() string {
	return string(d.text[d.LineStart():d.cursor])
}

// CurrentLineAfterCursor returns the part of the cursor's line right of it.
func (d Document) CurrentLineAfterCursor() string {
	return string(d.text[d.cursor:d.LineEnd()])
}

// MoveLines moves the cursor delta lines up (negative) or down, keeping
// the column where the target line is long enough.
func (d *Document) MoveLines(delta int) {
	row, col := d.CursorRowCol()
	i := d.RowColToIndex(row+delta, col)
	d.cursor = d.boundaryAtOrBefore(i)
}
