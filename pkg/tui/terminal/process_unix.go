// ABOUTME: Unix-specific SIGWINCH handling for ProcessTerminal resize events.
// ABOUTME: A goroutine forwards SIGWINCH to the resize callback until stopped.

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// startResizeListener calls the resize callback on every SIGWINCH and
// returns a function that stops listening.
func (t *ProcessTerminal) startResizeListener() func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigCh:
				t.notifyResize()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
