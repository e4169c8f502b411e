// ABOUTME: CLI entry point for promptkit with terminal crash recovery
// ABOUTME: Parses flags, loads settings, and dispatches to the prompt, keys, bindings, or config command

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mauromedda/promptkit/internal/config"
	"github.com/mauromedda/promptkit/internal/log"
	"github.com/mauromedda/promptkit/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("promptkit %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings and dispatches to the selected command.
func run(args cliArgs) error {
	root := args.project
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		root = cwd
	}

	settings, err := loadSettings(root, args)
	if err != nil {
		return err
	}

	switch args.command {
	case cmdConfig:
		data, err := settings.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	case cmdBindings:
		return printBindings(os.Stdout, settings)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := terminal.NewProcessTerminal()
	if !term.IsTerminal() {
		return errors.New("stdin is not a terminal")
	}
	return interactive(ctx, term, func(ctx context.Context) error {
		if args.command == cmdKeys {
			return dumpKeys(ctx, term, term, settings)
		}
		session := &promptSession{
			term:     term,
			settings: settings,
			accepted: term,
			prompt:   args.prompt,
		}
		if !args.noWatch {
			session.watchRoot = root
		}
		return session.run(ctx)
	}, args.mouse || args.command == cmdKeys)
}

// loadSettings merges the settings files with command-line overrides.
func loadSettings(root string, args cliArgs) (*config.Settings, error) {
	settings, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	args.apply(settings)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if err := settings.ApplyLogLevel(); err != nil {
		return nil, err
	}
	log.Debug("settings loaded from %v", config.SettingsFiles(root))
	return settings, nil
}

// interactive runs fn with term in raw mode and reporting modes enabled,
// restoring the terminal afterwards even on panic.
func interactive(ctx context.Context, term *terminal.ProcessTerminal, fn func(context.Context) error, mouse bool) (err error) {
	if err := term.EnterRawMode(); err != nil {
		return err
	}
	defer terminal.RestoreOnPanic(term)
	defer func() {
		terminal.Restore(term)
		if cerr := term.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	modes := terminal.BracketedPaste
	if mouse {
		modes |= terminal.MouseSGR
	}
	if err := terminal.EnableInputModes(term, modes); err != nil {
		return err
	}

	err = fn(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
