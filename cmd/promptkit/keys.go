// ABOUTME: Key dump mode: prints every decoded key event on its own line
// ABOUTME: Useful for checking what a terminal sends; Ctrl+C or Ctrl+D ends it

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/promptkit/internal/config"
	"github.com/mauromedda/promptkit/pkg/tui/editor"
	"github.com/mauromedda/promptkit/pkg/tui/input"
	"github.com/mauromedda/promptkit/pkg/tui/key"
)

// dumpKeys reads keys from in until Ctrl+C, Ctrl+D, EOF, or cancellation and
// writes one line per key to out, naming the bound action if any.
func dumpKeys(ctx context.Context, in io.Reader, out io.Writer, s *config.Settings) error {
	km, err := editor.NewKeymap(s.Keybindings)
	if err != nil {
		return err
	}
	st := newStyles(lipgloss.NewRenderer(out))
	stop := map[key.Key]bool{key.Ctrl('c'): true, key.Ctrl('d'): true}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var writeErr error
	fmt.Fprintf(out, "%s\r\n", st.notice.Render("press keys; Ctrl+C or Ctrl+D to quit"))
	buf := input.NewStdinBuffer(in, func(k key.Key) {
		if writeErr != nil || ctx.Err() != nil {
			return
		}
		line := st.suggestion.Render(k.String())
		if a, ok := km.Lookup(k); ok {
			line += "  " + st.description.Render(string(a))
		}
		if _, err := fmt.Fprintf(out, "%s\r\n", line); err != nil {
			writeErr = err
			cancel()
			return
		}
		if stop[k.Binding()] {
			cancel()
		}
	}, s.InputOptions()...)
	defer buf.Close()

	err = buf.Start(ctx)
	if writeErr != nil {
		return fmt.Errorf("writing key: %w", writeErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// printBindings lists every action with its keys.
func printBindings(out io.Writer, s *config.Settings) error {
	km, err := editor.NewKeymap(s.Keybindings)
	if err != nil {
		return err
	}
	for _, a := range editor.Actions() {
		keys := km.KeysFor(a)
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		if len(names) == 0 {
			names = []string{"(unbound)"}
		}
		if _, err := fmt.Fprintf(out, "%-18s %s\n", a, strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}
