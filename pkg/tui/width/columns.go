// ABOUTME: Column-oriented helpers for drawing an edited line: caret notation, slicing and truncation
// ABOUTME: Window scrolls a long line horizontally so the cursor column stays visible

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Printable replaces C0 control characters and DEL with caret notation
// (^A, ^[, ^?) so pasted control bytes never reach the terminal raw.
// Newlines are kept.
func Printable(s string) string {
	if !hasControl(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r < 0x20:
			b.WriteByte('^')
			b.WriteByte(byte(r) + '@')
		case r == 0x7f:
			b.WriteString("^?")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if (s[i] < 0x20 && s[i] != '\n') || s[i] == 0x7f {
			return true
		}
	}
	return false
}

// SliceByColumn returns the grapheme clusters of plain text s whose cells
// fall entirely within columns [start, end). Columns are zero-based.
func SliceByColumn(s string, start, end int) string {
	if start >= end || s == "" {
		return ""
	}
	var b strings.Builder
	col := 0
	state := -1
	rest := s
	var cluster string
	for len(rest) > 0 && col < end {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := graphemeWidth(cluster)
		if col >= start && col+w <= end {
			b.WriteString(cluster)
		}
		col += w
	}
	return b.String()
}

// TruncateToWidth shortens plain text s to at most maxWidth cells, ending
// with an ellipsis when anything was cut.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return SliceByColumn(s, 0, maxWidth-1) + "…"
}

// Window returns the part of line that fits in maxWidth cells while
// keeping cursorCol visible, and the cursor's column within that part.
// The view scrolls in steps of half the width to avoid jitter.
func Window(line string, cursorCol, maxWidth int) (string, int) {
	if maxWidth <= 0 {
		return "", 0
	}
	total := VisibleWidth(line)
	if total < maxWidth && cursorCol < maxWidth {
		return line, cursorCol
	}
	step := max(1, maxWidth/2)
	offset := 0
	for cursorCol-offset >= maxWidth {
		offset += step
	}
	return SliceByColumn(line, offset, offset+maxWidth), cursorCol - offset
}
