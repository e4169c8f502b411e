// ABOUTME: Draws the edited buffer and the completion menu below the prompt
// ABOUTME: Each frame redraws the whole region in place and leaves the terminal cursor on the edit cursor

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/promptkit/pkg/tui/editor"
	"github.com/mauromedda/promptkit/pkg/tui/fuzzy"
	"github.com/mauromedda/promptkit/pkg/tui/width"
)

const (
	maxMenuRows  = 6
	defaultWidth = 80
)

type styles struct {
	prompt      lipgloss.Style
	suggestion  lipgloss.Style
	selected    lipgloss.Style
	description lipgloss.Style
	notice      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		prompt:      r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		suggestion:  r.NewStyle().Foreground(lipgloss.Color("7")),
		selected:    r.NewStyle().Reverse(true),
		description: r.NewStyle().Faint(true),
		notice:      r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// renderer owns the screen region below the prompt line. It is used by a
// single goroutine.
type renderer struct {
	out    io.Writer
	prompt string
	styles styles

	// cursorRow is the row of the terminal cursor relative to the first
	// line of the region after the last frame.
	cursorRow int
}

func newRenderer(out io.Writer, prompt string) *renderer {
	return &renderer{
		out:    out,
		prompt: prompt,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// frame builds the escape sequence that redraws s in a terminal of cols columns.
func (r *renderer) frame(s editor.Snapshot, cols int) string {
	if cols <= 0 {
		cols = defaultWidth
	}

	var b strings.Builder
	r.rewind(&b)

	promptWidth := width.VisibleWidth(r.prompt)
	avail := max(cols-promptWidth-1, 1)
	indent := strings.Repeat(" ", promptWidth)

	lines := strings.Split(s.Text, "\n")
	cursorCol := promptWidth
	for i, line := range lines {
		if i == 0 {
			b.WriteString(r.styles.prompt.Render(r.prompt))
		} else {
			b.WriteString("\r\n")
			b.WriteString(indent)
		}
		shown := width.Printable(line)
		if i == s.Row {
			var col int
			shown, col = width.Window(shown, s.DisplayCol, avail)
			cursorCol = promptWidth + col
		} else {
			shown = width.TruncateToWidth(shown, avail)
		}
		b.WriteString(shown)
	}

	menuRows := r.menu(&b, s, cols)

	lastRow := len(lines) - 1 + menuRows
	if up := lastRow - s.Row; up > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", up)
	}
	b.WriteString("\r")
	if cursorCol > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", cursorCol)
	}
	r.cursorRow = s.Row
	return b.String()
}

// menu writes the visible window of suggestions and returns its height.
func (r *renderer) menu(b *strings.Builder, s editor.Snapshot, cols int) int {
	if s.State != editor.StateCompleting || len(s.Suggestions) == 0 {
		return 0
	}
	start := 0
	if s.Selected >= maxMenuRows {
		start = s.Selected - maxMenuRows + 1
	}
	end := min(start+maxMenuRows, len(s.Suggestions))

	for i := start; i < end; i++ {
		sug := s.Suggestions[i]
		name := width.Printable(sug.Text)
		full := name
		if sug.Description != "" {
			full += "  " + width.Printable(sug.Description)
		}
		line := width.TruncateToWidth(full, cols-1)
		limit := len(name)
		if line != full {
			limit = min(limit, len(line)-len("…"))
		}

		base := r.styles.suggestion
		if i == s.Selected {
			base = r.styles.selected
		}
		b.WriteString("\r\n")
		for _, sp := range matchSpans(line, fuzzy.Positions(s.Typed, name), limit) {
			if sp.match {
				b.WriteString(base.Underline(true).Render(sp.text))
			} else {
				b.WriteString(base.Render(sp.text))
			}
		}
	}
	return end - start
}

// span is a run of menu text that either matched the typed word or not.
type span struct {
	text  string
	match bool
}

// matchSpans splits line into runs by whether each rune starts at one of
// the byte offsets. Offsets at or past limit are ignored.
func matchSpans(line string, offsets []int, limit int) []span {
	var spans []span
	start := 0
	for i := range line {
		if i == 0 {
			continue
		}
		if isMatch(i, offsets, limit) != isMatch(start, offsets, limit) {
			spans = append(spans, span{line[start:i], isMatch(start, offsets, limit)})
			start = i
		}
	}
	if start < len(line) {
		spans = append(spans, span{line[start:], isMatch(start, offsets, limit)})
	}
	return spans
}

func isMatch(i int, offsets []int, limit int) bool {
	return i < limit && slices.Contains(offsets, i)
}

// rewind moves to the start of the region and clears it.
func (r *renderer) rewind(b *strings.Builder) {
	if r.cursorRow > 0 {
		fmt.Fprintf(b, "\x1b[%dA", r.cursorRow)
	}
	b.WriteString("\r\x1b[J")
}

// draw writes a frame for s.
func (r *renderer) draw(s editor.Snapshot, cols int) error {
	_, err := io.WriteString(r.out, r.frame(s, cols))
	return err
}

// commit redraws text as a finished line with no menu, moves below it, and
// starts a fresh region. note is appended dimmed, e.g. "^C".
func (r *renderer) commit(text, note string, cols int) error {
	s := editor.Snapshot{Text: text, Selected: -1}
	lines := strings.Split(text, "\n")
	s.Row = len(lines) - 1
	s.DisplayCol = width.VisibleWidth(width.Printable(lines[s.Row]))

	var b strings.Builder
	b.WriteString(r.frame(s, cols))
	if note != "" {
		b.WriteString(r.styles.notice.Render(note))
	}
	b.WriteString("\r\n")
	r.cursorRow = 0
	_, err := io.WriteString(r.out, b.String())
	return err
}
