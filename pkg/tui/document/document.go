// ABOUTME: Document owns the edited text as runes plus a cursor offset, and its mutating operations.
// ABOUTME: Mutations are scalar-exact; cursor movement snaps to grapheme-cluster boundaries.

package document

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrOutOfRange is returned when an offset lies outside [0, Len()].
	ErrOutOfRange = errors.New("offset out of range")
	// ErrInvalidCount is returned for a negative rune count.
	ErrInvalidCount = errors.New("invalid count")
)

// Document is a text buffer with a cursor. The zero value is an empty
// document using the default word predicate.
//
// Document is a value type. Mutations never write into the existing
// backing array, so copies taken by assignment stay unchanged.
type Document struct {
	text   []rune
	cursor int
	isWord func(rune) bool
}

// Option configures a Document.
type Option func(*Document)

// WithWordPredicate sets the function that classifies word characters.
func WithWordPredicate(fn func(rune) bool) Option {
	return func(d *Document) {
		d.isWord = fn
	}
}

// IsWordChar is the default word predicate: letters, digits and underscore.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// New returns an empty document.
func New(opts ...Option) Document {
	var d Document
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewWithText returns a document holding text with the cursor at cursor.
func NewWithText(text string, cursor int, opts ...Option) (Document, error) {
	d := New(opts...)
	d.text = []rune(text)
	if cursor < 0 || cursor > len(d.text) {
		return Document{}, fmt.Errorf("new document cursor %d (len %d): %w", cursor, len(d.text), ErrOutOfRange)
	}
	d.cursor = cursor
	return d, nil
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	c := d
	if d.text != nil {
		c.text = make([]rune, len(d.text))
		copy(c.text, d.text)
	}
	return c
}

func (d Document) wordPredicate() func(rune) bool {
	if d.isWord != nil {
		return d.isWord
	}
	return IsWordChar
}

// InsertText inserts s at the cursor and advances the cursor past it.
func (d *Document) InsertText(s string) {
	if s == "" {
		return
	}
	ins := []rune(s)
	d.splice(d.cursor, d.cursor, ins)
	d.cursor += len(ins)
}

// splice replaces text[start:end] with ins in a fresh array.
func (d *Document) splice(start, end int, ins []rune) {
	out := make([]rune, 0, len(d.text)-(end-start)+len(ins))
	out = append(out, d.text[:start]...)
	out = append(out, ins...)
	out = append(out, d.text[end:]...)
	d.text = out
}

// DeleteBeforeCursor removes up to n runes ending at the cursor and
// returns them.
func (d *Document) DeleteBeforeCursor(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("delete before cursor %d: %w", n, ErrInvalidCount)
	}
	n = min(n, d.cursor)
	if n == 0 {
		return "", nil
	}
	start := d.cursor - n
	removed := string(d.text[start:d.cursor])
	d.splice(start, d.cursor, nil)
	d.cursor = start
	return removed, nil
}

// DeleteAfterCursor removes up to n runes starting at the cursor and
// returns them. The cursor does not move.
func (d *Document) DeleteAfterCursor(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("delete after cursor %d: %w", n, ErrInvalidCount)
	}
	n = min(n, len(d.text)-d.cursor)
	if n == 0 {
		return "", nil
	}
	end := d.cursor + n
	removed := string(d.text[d.cursor:end])
	d.splice(d.cursor, end, nil)
	return removed, nil
}

// MoveCursor moves the cursor by delta runes, clamped to the text. A
// target inside a grapheme cluster snaps to the cluster edge in the
// direction of travel.
func (d *Document) MoveCursor(delta int) {
	if delta == 0 {
		return
	}
	target := max(0, min(len(d.text), d.cursor+delta))
	if delta > 0 {
		d.cursor = d.boundaryAtOrAfter(target)
	} else {
		d.cursor = d.boundaryAtOrBefore(target)
	}
}

// MoveGraphemes moves the cursor by n whole grapheme clusters.
func (d *Document) MoveGraphemes(n int) {
	for ; n > 0 && d.cursor < len(d.text); n-- {
		d.cursor += d.GraphemeAfter()
	}
	for ; n < 0 && d.cursor > 0; n++ {
		d.cursor -= d.GraphemeBefore()
	}
}

// SetCursor places the cursor at pos exactly.
func (d *Document) SetCursor(pos int) error {
	if pos < 0 || pos > len(d.text) {
		return fmt.Errorf("set cursor %d (len %d): %w", pos, len(d.text), ErrOutOfRange)
	}
	d.cursor = pos
	return nil
}

// ReplaceRange replaces the runes in [start, end) with s and puts the
// cursor right after the inserted text. Nothing changes on error.
func (d *Document) ReplaceRange(start, end int, s string) (int, error) {
	if start < 0 || end < start || end > len(d.text) {
		return d.cursor, fmt.Errorf("replace range [%d,%d) (len %d): %w", start, end, len(d.text), ErrOutOfRange)
	}
	ins := []rune(s)
	d.splice(start, end, ins)
	d.cursor = start + len(ins)
	return d.cursor, nil
}

// SetText replaces the whole content and puts the cursor at the end.
func (d *Document) SetText(s string) {
	d.text = []rune(s)
	d.cursor = len(d.text)
}

// SwapCharsBeforeCursor transposes the two runes before the cursor.
// It is a no-op with fewer than two.
func (d *Document) SwapCharsBeforeCursor() {
	if d.cursor < 2 {
		return
	}
	a, b := d.text[d.cursor-2], d.text[d.cursor-1]
	d.splice(d.cursor-2, d.cursor, []rune{b, a})
}

// Text returns the full content.
func (d Document) Text() string {
	return string(d.text)
}

// Cursor returns the cursor offset in runes.
func (d Document) Cursor() int {
	return d.cursor
}

// Len returns the length in runes.
func (d Document) Len() int {
	return len(d.text)
}

// TextBeforeCursor returns the content left of the cursor.
func (d Document) TextBeforeCursor() string {
	return string(d.text[:d.cursor])
}

// TextAfterCursor returns the content right of the cursor.
func (d Document) TextAfterCursor() string {
	return string(d.text[d.cursor:])
}

// Slice returns the runes in [start, end) as a string.
func (d Document) Slice(start, end int) (string, error) {
	if start < 0 || end < start || end > len(d.text) {
		return "", fmt.Errorf("slice [%d,%d) (len %d): %w", start, end, len(d.text), ErrOutOfRange)
	}
	return string(d.text[start:end]), nil
}

// CharRelativeToCursor returns the rune at cursor+offset, or false when
// that position is outside the text.
func (d Document) CharRelativeToCursor(offset int) (rune, bool) {
	i := d.cursor + offset
	if i < 0 || i >= len(d.text) {
		return utf8.RuneError, false
	}
	return d.text[i], true
}
