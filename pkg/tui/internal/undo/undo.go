// ABOUTME: Generic bounded undo/redo history of editor states
// ABOUTME: Undo and Redo exchange the caller's current state with the stored one

package undo

// Stack is a generic undo/redo history. It stores whole states, so S
// should be a value the caller does not mutate after pushing.
type Stack[S any] struct {
	undoStack []S
	redoStack []S
	maxSize   int
}

// New creates an undo Stack with the given maximum depth.
func New[S any](maxSize int) *Stack[S] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Stack[S]{
		undoStack: make([]S, 0, maxSize),
		maxSize:   maxSize,
	}
}

// Push records the state before an edit, clearing redo history.
func (s *Stack[S]) Push(state S) {
	s.undoStack = pushBounded(s.undoStack, state, s.maxSize)
	clear(s.redoStack)
	s.redoStack = s.redoStack[:0]
}

// Undo returns the most recently pushed state and remembers current so
// Redo can return to it. Returns false if there is nothing to undo.
func (s *Stack[S]) Undo(current S) (S, bool) {
	if len(s.undoStack) == 0 {
		var zero S
		return zero, false
	}
	prev := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.redoStack = pushBounded(s.redoStack, current, s.maxSize)
	return prev, true
}

// Redo returns the state most recently left by Undo and remembers current
// for a further Undo.
func (s *Stack[S]) Redo(current S) (S, bool) {
	if len(s.redoStack) == 0 {
		var zero S
		return zero, false
	}
	next := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.undoStack = pushBounded(s.undoStack, current, s.maxSize)
	return next, true
}

// CanUndo returns true if there are states to undo.
func (s *Stack[S]) CanUndo() bool {
	return len(s.undoStack) > 0
}

// CanRedo returns true if there are states to redo.
func (s *Stack[S]) CanRedo() bool {
	return len(s.redoStack) > 0
}

// Reset drops all history.
func (s *Stack[S]) Reset() {
	clear(s.undoStack)
	clear(s.redoStack)
	s.undoStack = s.undoStack[:0]
	s.redoStack = s.redoStack[:0]
}

func pushBounded[S any](stack []S, state S, maxSize int) []S {
	if len(stack) >= maxSize {
		// Evict oldest
		copy(stack, stack[1:])
		stack = stack[:len(stack)-1]
	}
	return append(stack, state)
}
