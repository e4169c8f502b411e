// ABOUTME: Resolves a suggestion against the word before the cursor and applies it to a Document.
// ABOUTME: Application is a single atomic replace of [WordStart, WordEnd).

package completion

import (
	"fmt"

	"github.com/mauromedda/promptkit/pkg/tui/document"
)

// Result is a suggestion bound to the buffer range it replaces.
type Result struct {
	WordStart  int // inclusive
	WordEnd    int // cursor at resolution time
	Suggestion Suggestion
}

// Resolve binds s to the word that ends at doc's cursor.
func Resolve(doc document.Document, s Suggestion) Result {
	return Result{
		WordStart:  doc.FindStartOfWord(),
		WordEnd:    doc.Cursor(),
		Suggestion: s,
	}
}

// ApplyTo replaces [WordStart, WordEnd) with the suggestion text and
// returns the new cursor. The document is untouched on error.
func (r Result) ApplyTo(doc *document.Document) (int, error) {
	cursor, err := doc.ReplaceRange(r.WordStart, r.WordEnd, r.Suggestion.Text)
	if err != nil {
		return cursor, fmt.Errorf("apply completion %q: %w", r.Suggestion.Text, err)
	}
	return cursor, nil
}

// Apply resolves s against the current state of doc and applies it.
func Apply(doc *document.Document, s Suggestion) (int, error) {
	return Resolve(*doc, s).ApplyTo(doc)
}
