// ABOUTME: Session cycles through candidates, rewriting the buffer on every step.
// ABOUTME: The replaced range stays anchored at the word start seen when cycling began.

package completion

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mauromedda/promptkit/pkg/tui/document"
)

// ErrNoCandidates is returned when a session is started with nothing to offer.
var ErrNoCandidates = errors.New("no completion candidates")

// Session is an in-progress completion. The buffer always holds the
// selected candidate; there is no separate preview.
type Session struct {
	candidates []Suggestion
	selected   int
	wordStart  int
	typed      string
}

// Start applies the first candidate to doc and returns the session.
func Start(doc *document.Document, candidates []Suggestion) (*Session, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	s := &Session{
		candidates: slices.Clone(candidates),
		wordStart:  doc.FindStartOfWord(),
		typed:      doc.WordBeforeCursor(),
	}
	if err := s.apply(doc, s.candidates[0].Text); err != nil {
		return nil, err
	}
	return s, nil
}

// Next selects and applies the following candidate, wrapping around.
func (s *Session) Next(doc *document.Document) error {
	s.selected = (s.selected + 1) % len(s.candidates)
	return s.apply(doc, s.candidates[s.selected].Text)
}

// Prev selects and applies the preceding candidate, wrapping around.
func (s *Session) Prev(doc *document.Document) error {
	s.selected = (s.selected - 1 + len(s.candidates)) % len(s.candidates)
	return s.apply(doc, s.candidates[s.selected].Text)
}

// Revert restores the word that was typed before the session started.
func (s *Session) Revert(doc *document.Document) error {
	return s.apply(doc, s.typed)
}

func (s *Session) apply(doc *document.Document, text string) error {
	if _, err := doc.ReplaceRange(s.wordStart, doc.Cursor(), text); err != nil {
		return fmt.Errorf("completion session: %w", err)
	}
	return nil
}

// Candidates returns a copy of the candidate list.
func (s *Session) Candidates() []Suggestion {
	return slices.Clone(s.candidates)
}

// Selected returns the index of the applied candidate.
func (s *Session) Selected() int {
	return s.selected
}

// Current returns the applied candidate.
func (s *Session) Current() Suggestion {
	return s.candidates[s.selected]
}

// WordStart returns the anchored start of the replaced range.
func (s *Session) WordStart() int {
	return s.wordStart
}

// Typed returns the word the user had typed when the session started.
func (s *Session) Typed() string {
	return s.typed
}
