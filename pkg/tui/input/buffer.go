// ABOUTME: StdinBuffer reads raw bytes from an io.Reader, feeds a key.Parser, and dispatches key events.
// ABOUTME: Owns the escape timeout: when bytes stay ambiguous for ~50ms the parser is flushed.

package input

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/mauromedda/promptkit/internal/log"
	"github.com/mauromedda/promptkit/pkg/tui/key"
)

const (
	readBufSize = 256
	// DefaultEscapeTimeout is how long an incomplete sequence may wait for
	// its next byte before it is resolved (e.g. a lone ESC).
	DefaultEscapeTimeout = 50 * time.Millisecond
)

// ErrClosed is returned by Start after Close.
var ErrClosed = errors.New("input: buffer closed")

// StdinBuffer reads from a reader and dispatches parsed key events via onKey.
// Keys are delivered in input order from the goroutine running Start.
//
// One reader goroutine serves the buffer for its whole life, so bytes read
// while no Start is running wait for the next Start instead of being lost.
type StdinBuffer struct {
	reader  io.Reader
	onKey   func(key.Key)
	parser  *key.Parser
	timeout time.Duration

	readOnce  sync.Once
	reads     chan readResult
	closeOnce sync.Once
	closed    chan struct{}
}

// Option configures a StdinBuffer.
type Option func(*StdinBuffer)

// WithEscapeTimeout sets the escape timeout; non-positive values are ignored.
func WithEscapeTimeout(d time.Duration) Option {
	return func(b *StdinBuffer) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithParser makes the buffer resume from an existing parser, e.g. one
// restored from a saved key.State.
func WithParser(p *key.Parser) Option {
	return func(b *StdinBuffer) {
		if p != nil {
			b.parser = p
		}
	}
}

// WithParserOptions configures the parser the buffer creates.
func WithParserOptions(opts ...key.ParserOption) Option {
	return func(b *StdinBuffer) { b.parser = key.NewParser(opts...) }
}

// NewStdinBuffer creates a StdinBuffer that reads from r and calls onKey for each parsed key.
func NewStdinBuffer(r io.Reader, onKey func(key.Key), opts ...Option) *StdinBuffer {
	b := &StdinBuffer{
		reader:  r,
		onKey:   onKey,
		timeout: DefaultEscapeTimeout,
		reads:   make(chan readResult),
		closed:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.parser == nil {
		b.parser = key.NewParser()
	}
	return b
}

// Parser returns the underlying parser. It must not be used while Start runs.
func (b *StdinBuffer) Parser() *key.Parser {
	return b.parser
}

// Start reads from the underlying reader until ctx is cancelled or the reader
// ends. It blocks; call it in a goroutine if non-blocking behavior is needed.
// EOF flushes buffered bytes and returns nil. Cancellation returns ctx.Err()
// and leaves the parser state and any unread input intact so another Start
// resumes them. Start must not run concurrently with itself.
func (b *StdinBuffer) Start(ctx context.Context) error {
	b.readOnce.Do(func() { go b.readLoop() })

	timer := time.NewTimer(b.timeout)
	timer.Stop()
	defer timer.Stop()
	if b.parser.Ambiguous() {
		timer.Reset(b.timeout)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.closed:
			return ErrClosed
		case <-timer.C:
			b.dispatch(b.parser.Flush())
		case result, ok := <-b.reads:
			if !ok {
				b.finish()
				return nil
			}
			if result.err != nil {
				b.finish()
				if errors.Is(result.err, io.EOF) {
					return nil
				}
				return result.err
			}
			timer.Stop()
			b.dispatch(b.parser.Feed(result.data))
			if b.parser.Ambiguous() {
				timer.Reset(b.timeout)
			}
		}
	}
}

// readResult holds the outcome of a single Read call.
type readResult struct {
	data []byte
	err  error
}

// Close releases the reader goroutine once no further Start will be called.
// A Read already blocked in the reader cannot be interrupted; whatever it
// returns is discarded.
func (b *StdinBuffer) Close() {
	b.closeOnce.Do(func() { close(b.closed) })
}

// readLoop continuously reads from the reader and hands each result to the
// running Start. The channel is unbuffered: a result read between two Start
// calls is held here until the next one receives it.
func (b *StdinBuffer) readLoop() {
	defer close(b.reads)
	tmp := make([]byte, readBufSize)
	for {
		n, err := b.reader.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case b.reads <- readResult{data: data}:
			case <-b.closed:
				return
			}
		}
		if err != nil {
			select {
			case b.reads <- readResult{err: err}:
			case <-b.closed:
			}
			return
		}
	}
}

// finish resolves whatever the parser still holds once input has ended.
func (b *StdinBuffer) finish() {
	b.dispatch(b.parser.Flush())
	if n := b.parser.Pending(); n > 0 {
		log.Debug("input: discarding %d bytes of unterminated paste", n)
		b.parser.Reset()
	}
}

func (b *StdinBuffer) dispatch(keys []key.Key) {
	for _, k := range keys {
		b.onKey(k)
	}
}
