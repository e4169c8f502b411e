// ABOUTME: Settings loading with global + project YAML config merge
// ABOUTME: Converts merged settings into completion, editor, parser, and input options

package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/promptkit/internal/log"
	"github.com/mauromedda/promptkit/pkg/tui/completion"
	"github.com/mauromedda/promptkit/pkg/tui/document"
	"github.com/mauromedda/promptkit/pkg/tui/editor"
	"github.com/mauromedda/promptkit/pkg/tui/input"
	"github.com/mauromedda/promptkit/pkg/tui/key"
)

// Settings holds the merged configuration.
type Settings struct {
	Completion    CompletionSettings  `yaml:"completion,omitempty"`
	WordChars     string              `yaml:"word_chars,omitempty"`
	Parser        ParserSettings      `yaml:"parser,omitempty"`
	EscapeTimeout time.Duration       `yaml:"escape_timeout,omitempty"`
	LogLevel      string              `yaml:"log_level,omitempty"`
	Keybindings   map[string][]string `yaml:"keybindings,omitempty"`
}

// CompletionSettings configures Tab completion.
type CompletionSettings struct {
	Mode            string   `yaml:"mode,omitempty"`
	CaseInsensitive *bool    `yaml:"case_insensitive,omitempty"`
	MaxSuggestions  int      `yaml:"max_suggestions,omitempty"`
	Words           []string `yaml:"words,omitempty"`
	// WordsFile names a file with one completion word per line.
	WordsFile string `yaml:"words_file,omitempty"`
}

// ParserSettings bounds the key parser buffers.
type ParserSettings struct {
	MaxPending int `yaml:"max_pending,omitempty"`
	MaxPaste   int `yaml:"max_paste,omitempty"`
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalSettingsFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectSettingsFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist. Unknown fields are rejected.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values; keybindings merge per action.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Completion.Mode != "" {
		result.Completion.Mode = project.Completion.Mode
	}
	if project.Completion.CaseInsensitive != nil {
		result.Completion.CaseInsensitive = project.Completion.CaseInsensitive
	}
	if project.Completion.MaxSuggestions != 0 {
		result.Completion.MaxSuggestions = project.Completion.MaxSuggestions
	}
	if len(project.Completion.Words) > 0 {
		result.Completion.Words = project.Completion.Words
	}
	if project.Completion.WordsFile != "" {
		result.Completion.WordsFile = project.Completion.WordsFile
	}
	if project.WordChars != "" {
		result.WordChars = project.WordChars
	}
	if project.Parser.MaxPending != 0 {
		result.Parser.MaxPending = project.Parser.MaxPending
	}
	if project.Parser.MaxPaste != 0 {
		result.Parser.MaxPaste = project.Parser.MaxPaste
	}
	if project.EscapeTimeout != 0 {
		result.EscapeTimeout = project.EscapeTimeout
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}

	if len(project.Keybindings) > 0 {
		bindings := make(map[string][]string, len(global.Keybindings)+len(project.Keybindings))
		for action, keys := range global.Keybindings {
			bindings[action] = keys
		}
		for action, keys := range project.Keybindings {
			bindings[action] = keys
		}
		result.Keybindings = bindings
	}

	return &result
}

// Validate reports every invalid field at once.
func (s *Settings) Validate() error {
	var errs []error
	if _, err := s.policy(); err != nil {
		errs = append(errs, err)
	}
	if s.Completion.MaxSuggestions < 0 {
		errs = append(errs, fmt.Errorf("completion.max_suggestions: must not be negative, got %d", s.Completion.MaxSuggestions))
	}
	if s.Parser.MaxPending < 0 || s.Parser.MaxPaste < 0 {
		errs = append(errs, errors.New("parser: limits must not be negative"))
	}
	if s.EscapeTimeout < 0 {
		errs = append(errs, fmt.Errorf("escape_timeout: must not be negative, got %s", s.EscapeTimeout))
	}
	if s.LogLevel != "" {
		if _, err := log.ParseLevel(s.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	if _, err := editor.NewKeymap(s.Keybindings); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Settings) policy() (completion.Policy, error) {
	p := completion.DefaultPolicy
	if s.Completion.Mode != "" {
		mode, err := completion.ParseMode(s.Completion.Mode)
		if err != nil {
			return p, fmt.Errorf("completion.mode: %w", err)
		}
		p.Mode = mode
	}
	if s.Completion.CaseInsensitive != nil {
		p.CaseInsensitive = *s.Completion.CaseInsensitive
	}
	p.MaxSuggestions = s.Completion.MaxSuggestions
	return p, nil
}

// Policy returns the completion policy. Settings are assumed validated.
func (s *Settings) Policy() completion.Policy {
	p, _ := s.policy()
	return p
}

// Words returns the inline completion words followed by those read from
// the words file, without duplicates.
func (s *Settings) Words() ([]string, error) {
	seen := make(map[string]bool)
	var words []string
	add := func(w string) {
		w = strings.TrimSpace(w)
		if w == "" || strings.HasPrefix(w, "#") || seen[w] {
			return
		}
		seen[w] = true
		words = append(words, w)
	}

	for _, w := range s.Completion.Words {
		add(w)
	}
	if s.Completion.WordsFile == "" {
		return words, nil
	}

	f, err := os.Open(s.Completion.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("reading words file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading words file: %w", err)
	}
	return words, nil
}

// Completer returns a static completer over Words.
func (s *Settings) Completer() (completion.Completer, error) {
	words, err := s.Words()
	if err != nil {
		return nil, err
	}
	return completion.StaticStrings(words...), nil
}

// WordPredicate returns the word-character test, extended with WordChars.
func (s *Settings) WordPredicate() func(rune) bool {
	if s.WordChars == "" {
		return document.IsWordChar
	}
	extra := s.WordChars
	return func(r rune) bool {
		return document.IsWordChar(r) || strings.ContainsRune(extra, r)
	}
}

// EditorOptions returns the controller options these settings describe.
func (s *Settings) EditorOptions() ([]editor.Option, error) {
	comp, err := s.Completer()
	if err != nil {
		return nil, err
	}
	return []editor.Option{
		editor.WithCompleter(comp),
		editor.WithPolicy(s.Policy()),
		editor.WithWordPredicate(s.WordPredicate()),
		editor.WithKeybindings(s.Keybindings),
	}, nil
}

// ParserOptions returns the key parser limits; zero values keep defaults.
func (s *Settings) ParserOptions() []key.ParserOption {
	var opts []key.ParserOption
	if s.Parser.MaxPending > 0 {
		opts = append(opts, key.WithMaxPending(s.Parser.MaxPending))
	}
	if s.Parser.MaxPaste > 0 {
		opts = append(opts, key.WithMaxPaste(s.Parser.MaxPaste))
	}
	return opts
}

// InputOptions returns the host input loop options.
func (s *Settings) InputOptions() []input.Option {
	return []input.Option{
		input.WithEscapeTimeout(s.EscapeTimeout),
		input.WithParserOptions(s.ParserOptions()...),
	}
}

// ApplyLogLevel sets the process log level when one is configured.
func (s *Settings) ApplyLogLevel() error {
	if s.LogLevel == "" {
		return nil
	}
	l, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	log.SetLevel(l)
	return nil
}

// Marshal renders s as YAML, e.g. for `promptkit config`.
func (s *Settings) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return buf.Bytes(), nil
}
