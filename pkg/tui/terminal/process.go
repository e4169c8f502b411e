// ABOUTME: ProcessTerminal implements Terminal over a pair of files using golang.org/x/term.
// ABOUTME: Raw mode applies to the input file; size is queried on the output file.

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is a real terminal, normally os.Stdin and os.Stdout.
type ProcessTerminal struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	oldState *term.State
	resizeFn func(width, height int)
	stop     func()
}

// NewProcessTerminal returns a ProcessTerminal on os.Stdin and os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return NewFileTerminal(os.Stdin, os.Stdout)
}

// NewFileTerminal returns a ProcessTerminal reading in and writing out,
// e.g. both ends of a pseudo-terminal.
func NewFileTerminal(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{in: in, out: out}
}

// IsTerminal reports whether the input file is a terminal.
func (t *ProcessTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// EnterRawMode switches the input to raw mode, saving the previous state.
// Calling it again while raw is a no-op.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal to its previous state.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Read reads raw input bytes.
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

// Write sends bytes to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// OnResize registers a callback invoked when the terminal is resized.
// Platform-specific signal handling is set up by startResizeListener.
func (t *ProcessTerminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	t.resizeFn = fn
	started := t.stop != nil
	t.mu.Unlock()

	if !started {
		stop := t.startResizeListener()
		t.mu.Lock()
		t.stop = stop
		t.mu.Unlock()
	}
}

// Close stops resize notifications and leaves raw mode.
func (t *ProcessTerminal) Close() error {
	t.mu.Lock()
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
	return t.ExitRawMode()
}

func (t *ProcessTerminal) notifyResize() {
	t.mu.Lock()
	fn := t.resizeFn
	t.mu.Unlock()

	if fn == nil {
		return
	}
	w, h, err := t.Size()
	if err != nil {
		return
	}
	fn(w, h)
}
