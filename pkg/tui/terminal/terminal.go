// ABOUTME: Defines the Terminal interface: raw mode, size queries, key input, and output.
// ABOUTME: Also writes the private modes that make the terminal report pastes and mouse events.

package terminal

import (
	"fmt"
	"io"
)

// Terminal abstracts the terminal a line editor runs on. Read returns raw
// input bytes for a key.Parser; Write sends rendered output.
type Terminal interface {
	io.Reader
	io.Writer
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	OnResize(fn func(width, height int))
}

// InputMode is a set of terminal reporting modes.
type InputMode uint8

const (
	// BracketedPaste wraps pasted text in ESC[200~ ... ESC[201~.
	BracketedPaste InputMode = 1 << iota
	// MouseSGR enables button tracking with SGR (ESC[<...M) encoding.
	MouseSGR
)

const (
	seqPasteOn    = "\x1b[?2004h"
	seqPasteOff   = "\x1b[?2004l"
	seqMouseOn    = "\x1b[?1000h\x1b[?1006h"
	seqMouseOff   = "\x1b[?1006l\x1b[?1000l"
	seqShowCursor = "\x1b[?25h"
	seqRequestCPR = "\x1b[6n"
)

// EnableInputModes turns the given reporting modes on.
func EnableInputModes(w io.Writer, modes InputMode) error {
	var seq string
	if modes&BracketedPaste != 0 {
		seq += seqPasteOn
	}
	if modes&MouseSGR != 0 {
		seq += seqMouseOn
	}
	return writeSeq(w, seq)
}

// DisableInputModes turns the given reporting modes off, in reverse order.
func DisableInputModes(w io.Writer, modes InputMode) error {
	var seq string
	if modes&MouseSGR != 0 {
		seq += seqMouseOff
	}
	if modes&BracketedPaste != 0 {
		seq += seqPasteOff
	}
	return writeSeq(w, seq)
}

// RequestCursorPosition asks the terminal for a cursor position report,
// which arrives on input as a key.KeyCursorPosition event.
func RequestCursorPosition(w io.Writer) error {
	return writeSeq(w, seqRequestCPR)
}

func writeSeq(w io.Writer, seq string) error {
	if seq == "" {
		return nil
	}
	if _, err := io.WriteString(w, seq); err != nil {
		return fmt.Errorf("writing terminal mode: %w", err)
	}
	return nil
}
