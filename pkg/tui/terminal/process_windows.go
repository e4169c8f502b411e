// ABOUTME: Windows stub for ProcessTerminal resize handling.
// ABOUTME: Windows has no SIGWINCH; callers re-query Size when redrawing.

//go:build windows

package terminal

// startResizeListener is a no-op on Windows.
// TODO: poll GetConsoleScreenBufferInfo or read WINDOW_BUFFER_SIZE_EVENT records.
func (t *ProcessTerminal) startResizeListener() func() {
	return func() {}
}
