// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --words, --words-file, --fuzzy, --mouse, --escape-timeout, --log-level, --version

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mauromedda/promptkit/internal/config"
)

// Subcommands; prompt is the default.
const (
	cmdPrompt   = "prompt"
	cmdKeys     = "keys"
	cmdBindings = "bindings"
	cmdConfig   = "config"
)

type cliArgs struct {
	command       string
	words         string
	wordsFile     string
	fuzzy         bool
	mouse         bool
	escapeTimeout time.Duration
	logLevel      string
	project       string
	prompt        string
	noWatch       bool
	version       bool
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("promptkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: promptkit [flags] [%s|%s|%s|%s]\n\n", cmdPrompt, cmdKeys, cmdBindings, cmdConfig)
		fs.PrintDefaults()
	}

	fs.StringVar(&args.words, "words", "", "Comma-separated completion words (added to configured words)")
	fs.StringVar(&args.wordsFile, "words-file", "", "File with one completion word per line")
	fs.BoolVar(&args.fuzzy, "fuzzy", false, "Use fuzzy instead of prefix completion")
	fs.BoolVar(&args.mouse, "mouse", false, "Enable SGR mouse reporting")
	fs.DurationVar(&args.escapeTimeout, "escape-timeout", 0, "How long a partial escape sequence may wait (e.g. 50ms)")
	fs.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&args.project, "project", "", "Project root for .promptkit/settings.yaml (default: working directory)")
	fs.StringVar(&args.prompt, "prompt", "> ", "Prompt string")
	fs.BoolVar(&args.noWatch, "no-watch", false, "Do not reload settings when they change")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}

	rest := fs.Args()
	switch len(rest) {
	case 0:
		args.command = cmdPrompt
	case 1:
		args.command = rest[0]
	default:
		return args, fmt.Errorf("unexpected arguments: %s", strings.Join(rest[1:], " "))
	}
	switch args.command {
	case cmdPrompt, cmdKeys, cmdBindings, cmdConfig:
	default:
		return args, fmt.Errorf("unknown command %q", args.command)
	}
	return args, nil
}

// apply layers command-line overrides on top of loaded settings.
func (a cliArgs) apply(s *config.Settings) {
	for _, w := range strings.Split(a.words, ",") {
		if w = strings.TrimSpace(w); w != "" {
			s.Completion.Words = append(s.Completion.Words, w)
		}
	}
	if a.wordsFile != "" {
		s.Completion.WordsFile = a.wordsFile
	}
	if a.fuzzy {
		s.Completion.Mode = "fuzzy"
	}
	if a.escapeTimeout != 0 {
		s.EscapeTimeout = a.escapeTimeout
	}
	if a.logLevel != "" {
		s.LogLevel = a.logLevel
	}
}
