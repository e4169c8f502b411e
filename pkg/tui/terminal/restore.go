// ABOUTME: RestoreOnPanic and RecoverGoroutine put the terminal back into a usable state after a panic.
// ABOUTME: They turn off reporting modes, show the cursor, leave raw mode, and log the stack.

package terminal

import (
	"io"
	"os"
	"runtime/debug"

	"github.com/mauromedda/promptkit/internal/log"
)

// Restore undoes everything a line editor session sets up on t. It is
// best-effort and safe to call more than once.
func Restore(t Terminal) {
	_ = DisableInputModes(t, BracketedPaste|MouseSGR)
	_, _ = io.WriteString(t, seqShowCursor)
	_ = t.ExitRawMode()
}

// RestoreOnPanic should be deferred at the top of main (or any
// goroutine that owns the terminal). On panic it restores the terminal,
// logs the panic value and stack trace, then exits with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	Restore(t)
	log.Error("panic: %v\n\n%s", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the terminal is in raw mode. Unlike RestoreOnPanic it
// does NOT call os.Exit, allowing the main goroutine to handle shutdown.
func RecoverGoroutine(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	Restore(t)
	log.Error("goroutine panic: %v\n\n%s", r, debug.Stack())
}
