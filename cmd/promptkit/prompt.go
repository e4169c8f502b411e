// ABOUTME: Interactive prompt session: reads keys, drives the Edit Controller, and redraws
// ABOUTME: Input, rendering, and settings reload run as separate goroutines under one errgroup

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/promptkit/internal/config"
	"github.com/mauromedda/promptkit/internal/log"
	"github.com/mauromedda/promptkit/pkg/tui/editor"
	"github.com/mauromedda/promptkit/pkg/tui/input"
	"github.com/mauromedda/promptkit/pkg/tui/key"
	"github.com/mauromedda/promptkit/pkg/tui/terminal"
)

// promptSession wires one terminal to one Controller.
type promptSession struct {
	term     terminal.Terminal
	settings *config.Settings
	// accepted receives each accepted line followed by "\r\n".
	accepted io.Writer
	prompt   string

	// watchRoot, when set, reloads completion settings from that project.
	watchRoot     string
	watchInterval time.Duration
}

// run blocks until the user exits (Ctrl+D on an empty line), the input
// ends, or ctx is cancelled.
func (p *promptSession) run(ctx context.Context) error {
	opts, err := p.settings.EditorOptions()
	if err != nil {
		return err
	}
	ctrl, err := editor.New(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	results := make(chan editor.Result, 64)
	redraw := make(chan struct{}, 1)
	p.term.OnResize(func(int, int) {
		select {
		case redraw <- struct{}{}:
		default:
		}
	})

	g.Go(func() error {
		defer terminal.RecoverGoroutine(p.term)
		defer close(results)
		buf := input.NewStdinBuffer(p.term, func(k key.Key) {
			res := ctrl.HandleKey(k)
			if res.Status == editor.StatusIgnored {
				log.Debug("prompt: ignored %s", k)
				return
			}
			select {
			case results <- res:
			case <-ctx.Done():
			}
		}, p.settings.InputOptions()...)
		defer buf.Close()
		err := buf.Start(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		defer cancel()
		return p.renderLoop(ctx, ctrl, results, redraw)
	})

	if p.watchRoot != "" {
		g.Go(func() error {
			w := config.WatchSettings(p.watchRoot, p.watchInterval,
				func(s *config.Settings) {
					comp, err := s.Completer()
					if err != nil {
						log.Warn("prompt: reloading completion words: %v", err)
						return
					}
					ctrl.SetCompleter(comp, s.Policy())
					log.Info("prompt: settings reloaded")
				},
				func(err error) { log.Warn("prompt: settings not reloaded: %v", err) })
			if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// renderLoop owns all terminal output. It returns when the user exits or
// the input side closes results.
func (p *promptSession) renderLoop(ctx context.Context, ctrl *editor.Controller, results <-chan editor.Result, redraw <-chan struct{}) error {
	r := newRenderer(p.term, p.prompt)
	cols := func() int {
		w, _, err := p.term.Size()
		if err != nil {
			return defaultWidth
		}
		return w
	}

	if err := r.draw(ctrl.Snapshot(), cols()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-redraw:
			if err := r.draw(ctrl.Snapshot(), cols()); err != nil {
				return err
			}
		case res, ok := <-results:
			if !ok {
				return r.commit(ctrl.Snapshot().Text, "", cols())
			}
			done, err := p.handleResult(r, ctrl, res, cols())
			if err != nil || done {
				return err
			}
		}
	}
}

func (p *promptSession) handleResult(r *renderer, ctrl *editor.Controller, res editor.Result, cols int) (bool, error) {
	switch res.Status {
	case editor.StatusAccept:
		if err := r.commit(res.Text, "", cols); err != nil {
			return false, err
		}
		if _, err := fmt.Fprintf(p.accepted, "%s\r\n", res.Text); err != nil {
			return false, fmt.Errorf("writing accepted line: %w", err)
		}
	case editor.StatusAbort:
		if err := r.commit(res.Text, "^C", cols); err != nil {
			return false, err
		}
	case editor.StatusExit:
		return true, r.commit("", "", cols)
	}
	return false, r.draw(ctrl.Snapshot(), cols)
}
