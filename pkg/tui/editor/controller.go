// ABOUTME: Controller consumes key events and turns them into Document edits and completion steps.
// ABOUTME: A RWMutex serializes edits; Snapshot gives renderers a consistent copy between mutations.

package editor

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mauromedda/promptkit/internal/log"
	"github.com/mauromedda/promptkit/pkg/tui/completion"
	"github.com/mauromedda/promptkit/pkg/tui/document"
	"github.com/mauromedda/promptkit/pkg/tui/internal/killring"
	"github.com/mauromedda/promptkit/pkg/tui/internal/undo"
	"github.com/mauromedda/promptkit/pkg/tui/key"
	"github.com/mauromedda/promptkit/pkg/tui/width"
)

const defaultUndoDepth = 100

// State is the editing session state.
type State int

const (
	StateEditing    State = iota // Default
	StateCompleting              // A candidate has been applied and Tab cycles
)

func (s State) String() string {
	if s == StateCompleting {
		return "completing"
	}
	return "editing"
}

// Status tells the host what a key did.
type Status int

const (
	StatusContinue Status = iota // Keep reading keys
	StatusAccept                 // Line accepted; Result.Text holds it
	StatusAbort                  // Line discarded (Ctrl+C)
	StatusExit                   // End of input requested on an empty line (Ctrl+D)
	StatusIgnored                // Key has no editing meaning
)

var statusNames = [...]string{
	StatusContinue: "continue",
	StatusAccept:   "accept",
	StatusAbort:    "abort",
	StatusExit:     "exit",
	StatusIgnored:  "ignored",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of handling one key.
type Result struct {
	Status Status
	Text   string // Accepted or aborted line
}

// Snapshot is a read-only copy of the editor state for rendering.
type Snapshot struct {
	Text       string
	Cursor     int
	Row        int // Zero-based line of the cursor
	Col        int // Zero-based rune column of the cursor
	DisplayCol int // Terminal cell column of the cursor within its line
	State      State
	// Suggestions and Selected describe the active completion; Selected
	// is -1 while editing. Typed is the word the user typed before
	// completion started, for highlighting matches.
	Suggestions []completion.Suggestion
	Selected    int
	Typed       string
}

// editState is one undo step.
type editState struct {
	text   string
	cursor int
}

// Controller is the Edit Controller. It exclusively owns the write path
// of its Document.
type Controller struct {
	mu sync.RWMutex

	doc       document.Document
	keymap    *Keymap
	completer completion.Completer
	policy    completion.Policy
	session   *completion.Session
	state     State

	ring    *killring.KillRing
	history *undo.Stack[editState]

	// last is the previous command, used to merge kills, chain yank-pop
	// and group typing into a single undo step.
	last     Action
	yankSize int
}

// pseudo-actions for unbound edits, never bound to keys.
const (
	actionSelfInsert Action = "selfInsert"
	actionPaste      Action = "paste"
)

type options struct {
	completer    completion.Completer
	policy       completion.Policy
	bindings     map[string][]string
	wordPred     func(rune) bool
	text         string
	undoDepth    int
	killRingSize int
}

// Option configures a Controller.
type Option func(*options)

// WithCompleter sets the suggestion source for Tab completion.
func WithCompleter(c completion.Completer) Option {
	return func(o *options) { o.completer = c }
}

// WithPolicy sets how candidates are filtered.
func WithPolicy(p completion.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithKeybindings overrides key bindings by action name, using the
// spellings accepted by key.ParseBinding.
func WithKeybindings(b map[string][]string) Option {
	return func(o *options) { o.bindings = b }
}

// WithWordPredicate sets which runes belong to a word.
func WithWordPredicate(fn func(rune) bool) Option {
	return func(o *options) { o.wordPred = fn }
}

// WithText sets the initial content; the cursor starts at the end.
func WithText(s string) Option {
	return func(o *options) { o.text = s }
}

// WithUndoDepth bounds the undo history.
func WithUndoDepth(n int) Option {
	return func(o *options) { o.undoDepth = n }
}

// WithKillRingSize bounds the kill ring.
func WithKillRingSize(n int) Option {
	return func(o *options) { o.killRingSize = n }
}

// New creates a Controller. It fails only on invalid key bindings.
func New(opts ...Option) (*Controller, error) {
	o := options{policy: completion.DefaultPolicy, undoDepth: defaultUndoDepth}
	for _, opt := range opts {
		opt(&o)
	}

	km, err := NewKeymap(o.bindings)
	if err != nil {
		return nil, err
	}

	var docOpts []document.Option
	if o.wordPred != nil {
		docOpts = append(docOpts, document.WithWordPredicate(o.wordPred))
	}
	doc := document.New(docOpts...)
	doc.SetText(o.text)

	return &Controller{
		doc:       doc,
		keymap:    km,
		completer: o.completer,
		policy:    o.policy,
		ring:      killring.New(o.killRingSize),
		history:   undo.New[editState](o.undoDepth),
	}, nil
}

// HandleKey applies one key event.
func (c *Controller) HandleKey(k key.Key) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle(k)
}

// HandleKeys applies keys in order and returns one Result per key.
func (c *Controller) HandleKeys(keys []key.Key) []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	results := make([]Result, len(keys))
	for i, k := range keys {
		results[i] = c.handle(k)
	}
	return results
}

// Snapshot returns a consistent copy of the editor state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row, col := c.doc.CursorRowCol()
	s := Snapshot{
		Text:       c.doc.Text(),
		Cursor:     c.doc.Cursor(),
		Row:        row,
		Col:        col,
		DisplayCol: width.VisibleWidth(width.Printable(c.doc.CurrentLineBeforeCursor())),
		State:      c.state,
		Selected:   -1,
	}
	if c.session != nil {
		s.Suggestions = c.session.Candidates()
		s.Selected = c.session.Selected()
		s.Typed = c.session.Typed()
	}
	return s
}

// Document returns a copy of the current document.
func (c *Controller) Document() document.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.doc.Clone()
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Keymap returns the resolved key bindings.
func (c *Controller) Keymap() *Keymap {
	return c.keymap
}

// SetCompleter swaps the suggestion source and policy, e.g. after the
// configuration is reloaded. An active completion is kept as is.
func (c *Controller) SetCompleter(comp completion.Completer, p completion.Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completer = comp
	c.policy = p
}

// SetText replaces the buffer as one undoable edit, e.g. to recall history.
func (c *Controller) SetText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endCompletion()
	c.saveUndo()
	c.doc.SetText(s)
	c.last = ""
}

// Reset clears the buffer, history and completion state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Controller) reset() {
	c.doc.SetText("")
	c.history.Reset()
	c.session = nil
	c.state = StateEditing
	c.last = ""
}

func (c *Controller) handle(k key.Key) Result {
	switch k.Type {
	case key.KeyMouse, key.KeyCursorPosition, key.KeyUnknown:
		return Result{Status: StatusIgnored}
	case key.KeyPaste:
		c.endCompletion()
		if k.Text != "" {
			c.saveUndo()
			c.doc.InsertText(k.Text)
		}
		c.last = actionPaste
		return Result{Status: StatusContinue}
	}

	action, bound := c.keymap.Lookup(k)

	if c.state == StateCompleting {
		switch {
		case bound && action == ActionComplete:
			c.cycle(1)
			return Result{Status: StatusContinue}
		case bound && action == ActionCompletePrev:
			c.cycle(-1)
			return Result{Status: StatusContinue}
		case !bound && k.Type == key.KeyEscape:
			c.revertCompletion()
			return Result{Status: StatusContinue}
		}
		c.endCompletion()
	}

	if bound {
		log.Debug("editor: %s -> %s", k, action)
		res := c.run(action)
		c.last = action
		return res
	}
	if k.IsPrintable() {
		c.selfInsert(k.Rune)
		return Result{Status: StatusContinue}
	}
	return Result{Status: StatusIgnored}
}

func (c *Controller) current() editState {
	return editState{text: c.doc.Text(), cursor: c.doc.Cursor()}
}

func (c *Controller) saveUndo() {
	c.history.Push(c.current())
}

func (c *Controller) restore(s editState) {
	c.doc.SetText(s.text)
	if err := c.doc.SetCursor(s.cursor); err != nil {
		log.Warn("editor: restoring undo state: %v", err)
	}
}

// warnIf logs errors from edits whose offsets were computed from the
// document itself and therefore cannot fail.
func warnIf(err error) {
	if err != nil {
		log.Warn("editor: %v", err)
	}
}

func (c *Controller) selfInsert(r rune) {
	// Typing is one undo step per word.
	if c.last != actionSelfInsert || r == ' ' {
		c.saveUndo()
	}
	c.doc.InsertText(string(r))
	c.last = actionSelfInsert
}

func (c *Controller) startCompletion(backward bool) {
	candidates := c.policy.Candidates(c.completer, c.doc)
	if len(candidates) == 0 {
		return
	}
	c.saveUndo()
	s, err := completion.Start(&c.doc, candidates)
	if err != nil {
		warnIf(err)
		return
	}
	if backward {
		warnIf(s.Prev(&c.doc))
	}
	c.session = s
	c.state = StateCompleting
}

func (c *Controller) cycle(dir int) {
	if dir > 0 {
		warnIf(c.session.Next(&c.doc))
	} else {
		warnIf(c.session.Prev(&c.doc))
	}
	log.Debug("editor: completion %d/%d %q", c.session.Selected()+1, len(c.session.Candidates()), c.session.Current().Text)
}

func (c *Controller) revertCompletion() {
	warnIf(c.session.Revert(&c.doc))
	c.endCompletion()
}

func (c *Controller) endCompletion() {
	c.session = nil
	c.state = StateEditing
}

// Candidates returns the suggestions Tab would offer right now.
func (c *Controller) Candidates() []completion.Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.policy.Candidates(c.completer, c.doc))
}
