// ABOUTME: Parser is a byte-driven state machine turning raw terminal input into Key events.
// ABOUTME: State persists across Feed calls; malformed or oversized sequences flush as literal runes.

package key

import (
	"bytes"
	"unicode/utf8"

	"github.com/mauromedda/promptkit/internal/log"
)

const (
	// DefaultMaxPending bounds the escape-sequence accumulator.
	DefaultMaxPending = 1024
	// DefaultMaxPaste bounds a single KeyPaste payload; longer pastes are
	// delivered as consecutive chunks.
	DefaultMaxPaste = 1 << 20

	esc      = 0x1b
	pasteEnd = "\x1b[201~"
)

// Mode is the decoding mode of a Parser.
type Mode int

const (
	ModeGround Mode = iota // No sequence in progress
	ModeEscape             // ESC seen, possibly followed by a string introducer
	ModeCSI                // ESC [ seen, collecting parameters
	ModeSS3                // ESC O seen
	ModeString             // OSC/DCS/APC/PM/SOS collecting until ST or BEL
	ModePaste              // Inside a bracketed paste
	ModeUTF8               // Collecting UTF-8 continuation bytes
)

var modeNames = [...]string{
	ModeGround: "ground",
	ModeEscape: "escape",
	ModeCSI:    "csi",
	ModeSS3:    "ss3",
	ModeString: "string",
	ModePaste:  "paste",
	ModeUTF8:   "utf8",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Parser decodes a single input stream. It is not safe for concurrent use;
// feed it from one goroutine. The parser has no notion of time: the host
// calls Flush when it decides no more bytes are coming.
type Parser struct {
	mode       Mode
	pending    []byte
	paste      []byte
	maxPending int
	maxPaste   int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithMaxPending sets the escape-sequence accumulator bound.
func WithMaxPending(n int) ParserOption {
	return func(p *Parser) {
		if n >= len(pasteEnd) {
			p.maxPending = n
		}
	}
}

// WithMaxPaste sets the maximum size of a single paste event.
func WithMaxPaste(n int) ParserOption {
	return func(p *Parser) {
		if n > 0 {
			p.maxPaste = n
		}
	}
}

// NewParser creates a Parser in ground mode.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		pending:    make([]byte, 0, 16),
		maxPending: DefaultMaxPending,
		maxPaste:   DefaultMaxPaste,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewParserFromState creates a Parser resuming from a saved State.
func NewParserFromState(st State, opts ...ParserOption) *Parser {
	p := NewParser(opts...)
	p.mode = st.Mode
	p.pending = append(p.pending, st.Pending...)
	p.paste = append(p.paste, st.Paste...)
	return p
}

// State returns a copy of the parser state.
func (p *Parser) State() State {
	return State{
		Mode:    p.mode,
		Pending: bytes.Clone(p.pending),
		Paste:   bytes.Clone(p.paste),
	}
}

// Mode returns the current decoding mode.
func (p *Parser) Mode() Mode {
	return p.mode
}

// Pending returns the number of buffered bytes not yet turned into events.
func (p *Parser) Pending() int {
	return len(p.pending) + len(p.paste)
}

// Ambiguous reports whether Flush would resolve buffered bytes, i.e. the
// host should start its escape timeout.
func (p *Parser) Ambiguous() bool {
	return p.mode != ModeGround && p.mode != ModePaste
}

// Reset discards all buffered bytes and returns to ground mode.
func (p *Parser) Reset() {
	p.mode = ModeGround
	p.pending = p.pending[:0]
	p.paste = nil
}

// Feed decodes data and returns the completed events in input order.
// Incomplete sequences stay buffered for the next call.
func (p *Parser) Feed(data []byte) []Key {
	var out []Key
	for _, b := range data {
		out = p.step(b, out)
	}
	return out
}

// Flush resolves buffered bytes as if no more input will follow. A lone
// ESC becomes KeyEscape, ESC [, ESC O and ESC plus a string introducer
// become Alt keys, longer
// fragments become KeyEscape followed by literal runes, and a partial
// UTF-8 sequence becomes U+FFFD. An open bracketed paste stays pending.
func (p *Parser) Flush() []Key {
	var out []Key
	switch p.mode {
	case ModeGround, ModePaste:
		return nil
	case ModeUTF8:
		out = append(out, Key{Type: KeyRune, Rune: utf8.RuneError})
	default:
		switch len(p.pending) {
		case 1:
			out = append(out, Key{Type: KeyEscape})
		case 2:
			out = append(out, Key{Type: KeyRune, Rune: rune(p.pending[1]), Alt: true})
		default:
			out = append(out, Key{Type: KeyEscape})
			out = appendLiterals(out, p.pending[1:])
		}
	}
	p.toGround()
	return out
}

func (p *Parser) step(b byte, out []Key) []Key {
	switch p.mode {
	case ModeEscape:
		return p.escape(b, out)
	case ModeCSI:
		return p.csi(b, out)
	case ModeSS3:
		return p.ss3(b, out)
	case ModeString:
		return p.stringSeq(b, out)
	case ModePaste:
		return p.pasteByte(b, out)
	case ModeUTF8:
		return p.utf8Byte(b, out)
	}
	return p.ground(b, out)
}

func (p *Parser) ground(b byte, out []Key) []Key {
	switch {
	case b >= 0x20 && b <= 0x7e:
		return append(out, Key{Type: KeyRune, Rune: rune(b)})
	case b == esc:
		p.begin(ModeEscape, b)
		return out
	case b < 0x80:
		return append(out, controlKey(b))
	}
	if utf8SeqLen(b) == 0 {
		log.Debug("key: invalid UTF-8 lead byte 0x%02x", b)
		return append(out, Key{Type: KeyRune, Rune: utf8.RuneError})
	}
	p.begin(ModeUTF8, b)
	return out
}

func (p *Parser) utf8Byte(b byte, out []Key) []Key {
	if b&0xc0 != 0x80 {
		log.Debug("key: truncated UTF-8 sequence % x", p.pending)
		out = append(out, Key{Type: KeyRune, Rune: utf8.RuneError})
		p.toGround()
		return p.ground(b, out)
	}
	p.pending = append(p.pending, b)
	if len(p.pending) < utf8SeqLen(p.pending[0]) {
		return out
	}
	r, _ := utf8.DecodeRune(p.pending)
	p.toGround()
	return append(out, Key{Type: KeyRune, Rune: r})
}

func (p *Parser) escape(b byte, out []Key) []Key {
	if len(p.pending) == 2 {
		return p.stringIntro(b, out)
	}
	switch {
	case b == '[':
		p.enter(ModeCSI, b)
	case b == 'O':
		p.enter(ModeSS3, b)
	case isStringIntroducer(b):
		// Also Alt+] Alt+P Alt+_ Alt+^ Alt+X: decided by the next byte.
		p.pending = append(p.pending, b)
	case b == esc:
		// ESC ESC: the first one stands alone, the second may start a sequence.
		out = append(out, Key{Type: KeyEscape})
	case b >= 0x20 && b <= 0x7e:
		out = append(out, Key{Type: KeyRune, Rune: rune(b), Alt: true})
		p.toGround()
	case b < 0x20 || b == 0x7f:
		k := controlKey(b)
		k.Alt = true
		out = append(out, k)
		p.toGround()
	default:
		out = append(out, Key{Type: KeyEscape})
		p.toGround()
		return p.ground(b, out)
	}
	return out
}

// stringIntro handles the byte after ESC and a string introducer. Only a
// byte that can open a string body starts OSC/DCS/APC/PM/SOS collection;
// anything else means the introducer was an Alt-modified key.
func (p *Parser) stringIntro(b byte, out []Key) []Key {
	intro := p.pending[1]
	if opensStringBody(intro, b) {
		p.enter(ModeString, b)
		return out
	}
	out = append(out, Key{Type: KeyRune, Rune: rune(intro), Alt: true})
	p.toGround()
	return p.ground(b, out)
}

func isStringIntroducer(b byte) bool {
	return b == ']' || b == 'P' || b == '_' || b == '^' || b == 'X'
}

// opensStringBody reports whether b can be the first byte of a string body
// introduced by intro. Terminal replies start with a numeric parameter
// (OSC 11;..., DCS 1$r...), DCS replies may also open with an intermediate
// (DCS !|, DCS >|), and kitty graphics replies are APC G....
func opensStringBody(intro, b byte) bool {
	switch {
	case b >= 0x30 && b <= 0x3f:
		return true
	case intro == 'P':
		return b >= 0x21 && b <= 0x2f
	case intro == '_':
		return b == 'G'
	}
	return false
}

func (p *Parser) ss3(b byte, out []Key) []Key {
	p.pending = append(p.pending, b)
	if k, ok := ss3Keys[b]; ok {
		p.toGround()
		return append(out, k)
	}
	return p.flushLiterals(out, "unknown SS3 sequence")
}

func (p *Parser) csi(b byte, out []Key) []Key {
	// X10 mouse: ESC [ M followed by three raw bytes.
	if len(p.pending) >= 3 && p.pending[2] == 'M' {
		p.pending = append(p.pending, b)
		if len(p.pending) < 6 {
			return out
		}
		k := decodeX10Mouse(p.pending[3:6])
		p.toGround()
		return append(out, k)
	}

	switch {
	case b >= 0x30 && b <= 0x3f, b >= 0x20 && b <= 0x2f:
		p.pending = append(p.pending, b)
		if b >= '0' && b <= '9' && lastParamOverflows(p.pending) {
			return p.flushLiterals(out, "CSI parameter overflow")
		}
		if len(p.pending) > p.maxPending {
			return p.flushLiterals(out, "CSI sequence too long")
		}
		return out
	case b >= 0x40 && b <= 0x7e:
		p.pending = append(p.pending, b)
		if b == 'M' && len(p.pending) == 3 {
			return out
		}
		return p.finishCSI(out)
	}

	out = p.flushLiterals(out, "control byte inside CSI sequence")
	return p.ground(b, out)
}

// finishCSI decodes the accumulated CSI sequence whose final byte was just
// appended.
func (p *Parser) finishCSI(out []Key) []Key {
	seq := p.pending
	body := seq[2 : len(seq)-1]
	final := seq[len(seq)-1]

	var prefix byte
	if len(body) > 0 && body[0] >= '<' && body[0] <= '?' {
		prefix = body[0]
		body = body[1:]
	}

	params, ok := parseParams(body)
	if !ok {
		return p.flushLiterals(out, "malformed CSI parameters")
	}

	if prefix == 0 && final == '~' && len(params) == 1 && params[0][0] == 200 && len(body) == 3 {
		p.mode = ModePaste
		p.pending = p.pending[:0]
		p.paste = p.paste[:0]
		return out
	}

	k, ok := decodeCSI(prefix, params, final)
	if !ok {
		return p.flushLiterals(out, "unrecognized CSI sequence")
	}
	if k.Type == KeyUnknown {
		k.Text = string(seq)
	}
	p.toGround()
	return append(out, k)
}

func (p *Parser) stringSeq(b byte, out []Key) []Key {
	p.pending = append(p.pending, b)
	n := len(p.pending)
	if b == 0x07 || (b == '\\' && p.pending[n-2] == esc) {
		k := Key{Type: KeyUnknown, Text: string(p.pending)}
		p.toGround()
		return append(out, k)
	}
	if n > p.maxPending {
		return p.flushLiterals(out, "unterminated string sequence")
	}
	return out
}

func (p *Parser) pasteByte(b byte, out []Key) []Key {
	p.paste = append(p.paste, b)
	if bytes.HasSuffix(p.paste, []byte(pasteEnd)) {
		text := string(p.paste[:len(p.paste)-len(pasteEnd)])
		p.paste = nil
		p.mode = ModeGround
		return append(out, Key{Type: KeyPaste, Text: text})
	}

	// Keep enough tail to recognize an end marker split across chunks.
	keep := len(pasteEnd) - 1
	if len(p.paste) < p.maxPaste+keep {
		return out
	}
	cut := len(p.paste) - keep
	for cut > 0 && !utf8.RuneStart(p.paste[cut]) {
		cut--
	}
	if cut == 0 {
		cut = len(p.paste) - keep
	}
	chunk := string(p.paste[:cut])
	p.paste = append(p.paste[:0], p.paste[cut:]...)
	return append(out, Key{Type: KeyPaste, Text: chunk})
}

// flushLiterals emits every accumulated byte as its own rune event and
// returns to ground mode.
func (p *Parser) flushLiterals(out []Key, reason string) []Key {
	log.Debug("key: %s %q flushed as literals", reason, p.pending)
	out = appendLiterals(out, p.pending)
	p.toGround()
	return out
}

func appendLiterals(out []Key, bs []byte) []Key {
	for _, b := range bs {
		out = append(out, Key{Type: KeyRune, Rune: rune(b)})
	}
	return out
}

func (p *Parser) begin(m Mode, b byte) {
	p.mode = m
	p.pending = append(p.pending[:0], b)
}

func (p *Parser) enter(m Mode, b byte) {
	p.mode = m
	p.pending = append(p.pending, b)
}

func (p *Parser) toGround() {
	p.mode = ModeGround
	p.pending = p.pending[:0]
}

// utf8SeqLen returns the encoded length announced by a UTF-8 lead byte,
// or 0 if b cannot start a multi-byte sequence.
func utf8SeqLen(b byte) int {
	switch {
	case b >= 0xc2 && b <= 0xdf:
		return 2
	case b >= 0xe0 && b <= 0xef:
		return 3
	case b >= 0xf0 && b <= 0xf4:
		return 4
	}
	return 0
}

// lastParamOverflows reports whether the trailing run of digits in seq
// exceeds maxParam.
func lastParamOverflows(seq []byte) bool {
	v, mul := 0, 1
	for i := len(seq) - 1; i >= 0 && seq[i] >= '0' && seq[i] <= '9'; i-- {
		d := int(seq[i] - '0')
		if d != 0 && mul > maxParam {
			return true
		}
		v += d * mul
		if v > maxParam {
			return true
		}
		if mul <= maxParam {
			mul *= 10
		}
	}
	return false
}
