// ABOUTME: Tests for the streaming Parser: sequence decoding, split invariance, paste, and bounds.
// ABOUTME: Compares event slices with go-cmp so failures show a readable diff.

package key

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var equateEmpty = cmpopts.EquateEmpty()

func feedAll(p *Parser, chunks ...string) []Key {
	var out []Key
	for _, c := range chunks {
		out = append(out, p.Feed([]byte(c))...)
	}
	return out
}

func literals(s string) []Key {
	out := make([]Key, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, Rune(rune(s[i])))
	}
	return out
}

var decodeCases = []struct {
	name  string
	input string
	want  []Key
}{
	{"printable ascii", "ab", []Key{Rune('a'), Rune('b')}},
	{"enter cr", "\r", []Key{Named(KeyEnter)}},
	{"enter lf", "\n", []Key{Named(KeyEnter)}},
	{"tab", "\t", []Key{Named(KeyTab)}},
	{"backspace del", "\x7f", []Key{Named(KeyBackspace)}},
	{"backspace bs", "\x08", []Key{Named(KeyBackspace)}},
	{"ctrl a", "\x01", []Key{Ctrl('a')}},
	{"ctrl c", "\x03", []Key{Ctrl('c')}},
	{"ctrl space", "\x00", []Key{{Type: KeyRune, Rune: ' ', Ctrl: true}}},
	{"ctrl backslash", "\x1c", []Key{Ctrl('\\')}},
	{"utf8 two byte", "é", []Key{Rune('é')}},
	{"utf8 three byte", "日本", []Key{Rune('日'), Rune('本')}},
	{"utf8 four byte", "😀", []Key{Rune('😀')}},
	{"invalid lead byte", "\xff", []Key{Rune(utf8.RuneError)}},
	{"truncated utf8", "\xc3a", []Key{Rune(utf8.RuneError), Rune('a')}},
	{"overlong utf8", "\xe0\x80\x80", []Key{Rune(utf8.RuneError)}},

	{"csi up", "\x1b[A", []Key{Named(KeyUp)}},
	{"csi down", "\x1b[B", []Key{Named(KeyDown)}},
	{"csi right", "\x1b[C", []Key{Named(KeyRight)}},
	{"csi left", "\x1b[D", []Key{Named(KeyLeft)}},
	{"csi home", "\x1b[H", []Key{Named(KeyHome)}},
	{"csi end", "\x1b[F", []Key{Named(KeyEnd)}},
	{"ss3 up", "\x1bOA", []Key{Named(KeyUp)}},
	{"ss3 f1", "\x1bOP", []Key{Named(KeyF1)}},
	{"ss3 keypad enter", "\x1bOM", []Key{Named(KeyEnter)}},
	{"ctrl right", "\x1b[1;5C", []Key{{Type: KeyRight, Ctrl: true}}},
	{"shift up", "\x1b[1;2A", []Key{{Type: KeyUp, Shift: true}}},
	{"alt left", "\x1b[1;3D", []Key{{Type: KeyLeft, Alt: true}}},
	{"meta folds into alt", "\x1b[1;9D", []Key{{Type: KeyLeft, Alt: true}}},
	{"backtab", "\x1b[Z", []Key{Named(KeyBackTab)}},
	{"insert", "\x1b[2~", []Key{Named(KeyInsert)}},
	{"delete", "\x1b[3~", []Key{Named(KeyDelete)}},
	{"shift delete", "\x1b[3;2~", []Key{{Type: KeyDelete, Shift: true}}},
	{"page up", "\x1b[5~", []Key{Named(KeyPageUp)}},
	{"page down", "\x1b[6~", []Key{Named(KeyPageDown)}},
	{"home tilde", "\x1b[1~", []Key{Named(KeyHome)}},
	{"end tilde", "\x1b[4~", []Key{Named(KeyEnd)}},
	{"f5", "\x1b[15~", []Key{Named(KeyF5)}},
	{"f12", "\x1b[24~", []Key{Named(KeyF12)}},

	{"alt letter", "\x1bb", []Key{Alt('b')}},
	{"alt backspace", "\x1b\x7f", []Key{{Type: KeyBackspace, Alt: true}}},
	{"alt enter", "\x1b\r", []Key{{Type: KeyEnter, Alt: true}}},
	{"escape then arrow", "\x1b\x1b[A", []Key{Named(KeyEscape), Named(KeyUp)}},

	{"kitty ctrl a", "\x1b[97;5u", []Key{Ctrl('a')}},
	{"kitty ctrl shifted letter", "\x1b[65;5u", []Key{Ctrl('a')}},
	{"kitty alt enter", "\x1b[13;3u", []Key{{Type: KeyEnter, Alt: true}}},
	{"kitty shift tab", "\x1b[9;2u", []Key{Named(KeyBackTab)}},
	{"kitty plain rune", "\x1b[97u", []Key{Rune('a')}},
	{"kitty release", "\x1b[97;1:3u", []Key{{Type: KeyUnknown, Text: "\x1b[97;1:3u"}}},
	{"modify other keys", "\x1b[27;5;9~", []Key{{Type: KeyTab, Ctrl: true}}},

	{"cursor position", "\x1b[12;40R", []Key{{Type: KeyCursorPosition, Row: 12, Col: 40}}},
	{"f3 csi", "\x1b[R", []Key{Named(KeyF3)}},
	{"f3 csi with default param", "\x1b[1R", []Key{Named(KeyF3)}},
	{"cursor report wins over shift f3", "\x1b[1;2R", []Key{{Type: KeyCursorPosition, Row: 1, Col: 2}}},
	{
		"sgr press",
		"\x1b[<0;10;5M",
		[]Key{{Type: KeyMouse, Mouse: Mouse{Action: MousePress, Button: ButtonLeft, Row: 5, Col: 10}}},
	},
	{
		"sgr release",
		"\x1b[<0;10;5m",
		[]Key{{Type: KeyMouse, Mouse: Mouse{Action: MouseRelease, Button: ButtonLeft, Row: 5, Col: 10}}},
	},
	{
		"sgr wheel",
		"\x1b[<64;3;4M",
		[]Key{{Type: KeyMouse, Mouse: Mouse{Action: MouseScroll, Button: ButtonWheelUp, Row: 4, Col: 3}}},
	},
	{
		"sgr drag",
		"\x1b[<32;7;8M",
		[]Key{{Type: KeyMouse, Mouse: Mouse{Action: MouseDrag, Button: ButtonLeft, Row: 8, Col: 7}}},
	},
	{
		"sgr move",
		"\x1b[<35;7;8M",
		[]Key{{Type: KeyMouse, Mouse: Mouse{Action: MouseMove, Row: 8, Col: 7}}},
	},
	{
		"sgr modifiers",
		"\x1b[<20;1;2M",
		[]Key{{Type: KeyMouse, Mouse: Mouse{Action: MousePress, Button: ButtonLeft, Row: 2, Col: 1, Shift: true, Ctrl: true}}},
	},
	{
		"x10 press",
		"\x1b[M" + string([]byte{32, 42, 37}),
		[]Key{{Type: KeyMouse, Mouse: Mouse{Action: MousePress, Button: ButtonLeft, Row: 5, Col: 10}}},
	},
	{
		"x10 release",
		"\x1b[M" + string([]byte{35, 42, 37}),
		[]Key{{Type: KeyMouse, Mouse: Mouse{Action: MouseRelease, Row: 5, Col: 10}}},
	},

	{"osc bel", "\x1b]11;rgb:0/0/0\x07", []Key{{Type: KeyUnknown, Text: "\x1b]11;rgb:0/0/0\x07"}}},
	{"osc st", "\x1b]0;t\x1b\\", []Key{{Type: KeyUnknown, Text: "\x1b]0;t\x1b\\"}}},
	{"dcs reply", "\x1bP1$r0m\x1b\\", []Key{{Type: KeyUnknown, Text: "\x1bP1$r0m\x1b\\"}}},
	{"dcs version reply", "\x1bP>|xterm(388)\x1b\\", []Key{{Type: KeyUnknown, Text: "\x1bP>|xterm(388)\x1b\\"}}},
	{"kitty graphics reply", "\x1b_Gi=1;OK\x1b\\", []Key{{Type: KeyUnknown, Text: "\x1b_Gi=1;OK\x1b\\"}}},
	{"alt underscore then typing", "\x1b_abc", []Key{Alt('_'), Rune('a'), Rune('b'), Rune('c')}},
	{"alt shift p then typing", "\x1bPx", []Key{Alt('P'), Rune('x')}},
	{"alt caret then enter", "\x1b^\r", []Key{Alt('^'), Named(KeyEnter)}},
	{"alt bracket then escape key", "\x1b]\x1b[A", []Key{Alt(']'), Named(KeyUp)}},
	{"stray paste end", "\x1b[201~", []Key{{Type: KeyUnknown, Text: "\x1b[201~"}}},

	{"unknown csi final", "\x1b[5X", literals("\x1b[5X")},
	{"unknown ss3 final", "\x1bOz", literals("\x1bOz")},
	{"bad modifier", "\x1b[1;99A", literals("\x1b[1;99A")},
	{"parameter overflow", "\x1b[9999999999999Z", literals("\x1b[9999999999999Z")},
	{"control byte inside csi", "\x1b[1\ra", append(literals("\x1b[1"), Named(KeyEnter), Rune('a'))},

	{"paste", "\x1b[200~pasted\x1b[201~", []Key{{Type: KeyPaste, Text: "pasted"}}},
	{"empty paste", "\x1b[200~\x1b[201~", []Key{{Type: KeyPaste}}},
	{
		"paste keeps escapes verbatim",
		"\x1b[200~a\x1b[Ab\r\x1b[201~",
		[]Key{{Type: KeyPaste, Text: "a\x1b[Ab\r"}},
	},
	{
		"paste between keys",
		"x\x1b[200~hi\x1b[201~y",
		[]Key{Rune('x'), {Type: KeyPaste, Text: "hi"}, Rune('y')},
	},
}

func TestParserDecode(t *testing.T) {
	t.Parallel()

	for _, tt := range decodeCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewParser()
			got := p.Feed([]byte(tt.input))
			if diff := cmp.Diff(tt.want, got, equateEmpty); diff != "" {
				t.Errorf("Feed(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if p.Mode() != ModeGround {
				t.Errorf("mode after complete input = %v, want ground", p.Mode())
			}
		})
	}
}

// Any partition of the input must produce the same events as a single feed.
func TestParserSplitInvariance(t *testing.T) {
	t.Parallel()

	for _, tt := range decodeCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for i := 0; i <= len(tt.input); i++ {
				got := feedAll(NewParser(), tt.input[:i], tt.input[i:])
				if diff := cmp.Diff(tt.want, got, equateEmpty); diff != "" {
					t.Fatalf("split at %d of %q mismatch (-want +got):\n%s", i, tt.input, diff)
				}
			}

			p := NewParser()
			var got []Key
			for i := 0; i < len(tt.input); i++ {
				got = append(got, p.Feed([]byte{tt.input[i]})...)
			}
			if diff := cmp.Diff(tt.want, got, equateEmpty); diff != "" {
				t.Errorf("byte-at-a-time %q mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParserSplitSequenceWaits(t *testing.T) {
	t.Parallel()

	p := NewParser()
	if got := p.Feed([]byte("\x1b[")); len(got) != 0 {
		t.Fatalf("partial feed emitted %v", got)
	}
	if !p.Ambiguous() {
		t.Error("Ambiguous() = false after ESC [")
	}
	got := p.Feed([]byte("A"))
	if diff := cmp.Diff([]Key{Named(KeyUp)}, got); diff != "" {
		t.Errorf("completion mismatch (-want +got):\n%s", diff)
	}
}

func TestParserAltStringIntroducerKeepsTyping(t *testing.T) {
	t.Parallel()

	p := NewParser()
	if got := p.Feed([]byte("\x1b_")); len(got) != 0 {
		t.Fatalf("ESC _ emitted %v before the next byte", got)
	}
	if p.Mode() != ModeEscape || !p.Ambiguous() {
		t.Fatalf("mode = %v ambiguous = %v, want escape and true", p.Mode(), p.Ambiguous())
	}

	got := p.Feed([]byte("abc"))
	want := []Key{Alt('_'), Rune('a'), Rune('b'), Rune('c')}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("typing after Alt+_ mismatch (-want +got):\n%s", diff)
	}
	if p.Mode() != ModeGround || p.Pending() != 0 {
		t.Errorf("mode = %v pending = %d, want ground and 0", p.Mode(), p.Pending())
	}
}

func TestParserPasteSplitEndMarker(t *testing.T) {
	t.Parallel()

	p := NewParser()
	got := feedAll(p, "\x1b[200~hel", "lo\x1b[20", "1~")
	want := []Key{{Type: KeyPaste, Text: "hello"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paste mismatch (-want +got):\n%s", diff)
	}
}

func TestParserPasteChunking(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("abcdefghij", 10)
	p := NewParser(WithMaxPaste(8))
	got := p.Feed([]byte("\x1b[200~" + body + "\x1b[201~"))

	if len(got) < 2 {
		t.Fatalf("expected several chunks, got %d events", len(got))
	}
	var joined strings.Builder
	for i, k := range got {
		if k.Type != KeyPaste {
			t.Fatalf("event %d = %v, want paste", i, k)
		}
		if len(k.Text) > 8 {
			t.Errorf("chunk %d has %d bytes, want at most 8", i, len(k.Text))
		}
		joined.WriteString(k.Text)
	}
	if joined.String() != body {
		t.Errorf("joined chunks = %q, want %q", joined.String(), body)
	}
}

func TestParserPasteChunkingKeepsRunes(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("日本語", 20)
	p := NewParser(WithMaxPaste(7))
	got := p.Feed([]byte("\x1b[200~" + body + "\x1b[201~"))

	var joined strings.Builder
	for i, k := range got {
		if !utf8.ValidString(k.Text) {
			t.Errorf("chunk %d splits a rune: %q", i, k.Text)
		}
		joined.WriteString(k.Text)
	}
	if joined.String() != body {
		t.Errorf("joined chunks = %q, want %q", joined.String(), body)
	}
}

func TestParserOpenPasteSurvivesFlush(t *testing.T) {
	t.Parallel()

	p := NewParser()
	p.Feed([]byte("\x1b[200~abc"))
	if got := p.Flush(); len(got) != 0 {
		t.Fatalf("Flush() inside paste emitted %v", got)
	}
	if p.Mode() != ModePaste {
		t.Fatalf("mode = %v, want paste", p.Mode())
	}
	if p.Ambiguous() {
		t.Error("Ambiguous() = true inside paste")
	}
	got := p.Feed([]byte("\x1b[201~"))
	if diff := cmp.Diff([]Key{{Type: KeyPaste, Text: "abc"}}, got); diff != "" {
		t.Errorf("paste mismatch (-want +got):\n%s", diff)
	}
}

func TestParserPendingBound(t *testing.T) {
	t.Parallel()

	input := "\x1b[" + strings.Repeat(";", 2000)
	p := NewParser()
	got := p.Feed([]byte(input))
	if diff := cmp.Diff(literals(input), got); diff != "" {
		t.Errorf("oversized sequence mismatch (-want +got):\n%s", diff)
	}
	if p.Mode() != ModeGround {
		t.Errorf("mode = %v, want ground", p.Mode())
	}
}

func TestParserCustomPendingBound(t *testing.T) {
	t.Parallel()

	input := "\x1b[" + strings.Repeat(";", 20)
	p := NewParser(WithMaxPending(16))
	got := p.Feed([]byte(input))
	if diff := cmp.Diff(literals(input), got); diff != "" {
		t.Errorf("oversized sequence mismatch (-want +got):\n%s", diff)
	}
	if p.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", p.Pending())
	}
}

func TestParserUnterminatedStringBound(t *testing.T) {
	t.Parallel()

	input := "\x1b]0;" + strings.Repeat("x", 1100)
	got := NewParser().Feed([]byte(input))
	if diff := cmp.Diff(literals(input), got); diff != "" {
		t.Errorf("unterminated OSC mismatch (-want +got):\n%s", diff)
	}
}

func TestParserFlush(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"lone escape", "\x1b", []Key{Named(KeyEscape)}},
		{"escape bracket", "\x1b[", []Key{Alt('[')}},
		{"escape O", "\x1bO", []Key{Alt('O')}},
		{"escape underscore", "\x1b_", []Key{Alt('_')}},
		{"escape P", "\x1bP", []Key{Alt('P')}},
		{"partial csi", "\x1b[1;", append([]Key{Named(KeyEscape)}, literals("[1;")...)},
		{"partial utf8", "\xe6\x97", []Key{Rune(utf8.RuneError)}},
		{"double escape", "\x1b\x1b", []Key{Named(KeyEscape), Named(KeyEscape)}},
		{"nothing pending", "a", []Key{Rune('a')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewParser()
			got := p.Feed([]byte(tt.input))
			got = append(got, p.Flush()...)
			if diff := cmp.Diff(tt.want, got, equateEmpty); diff != "" {
				t.Errorf("Feed+Flush(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if p.Mode() != ModeGround {
				t.Errorf("mode after Flush = %v, want ground", p.Mode())
			}
			if again := p.Flush(); len(again) != 0 {
				t.Errorf("second Flush() = %v, want nothing", again)
			}
		})
	}
}

func TestParserStateRoundTrip(t *testing.T) {
	t.Parallel()

	p := NewParser()
	p.Feed([]byte("\x1b[1;"))
	st := p.State()
	if st.Mode != ModeCSI {
		t.Fatalf("state mode = %v, want csi", st.Mode)
	}

	raw, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	var restored State
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if !bytes.Equal(restored.Pending, st.Pending) {
		t.Fatalf("pending after round trip = %q, want %q", restored.Pending, st.Pending)
	}

	q := NewParserFromState(restored)
	got := q.Feed([]byte("5A"))
	if diff := cmp.Diff([]Key{{Type: KeyUp, Ctrl: true}}, got); diff != "" {
		t.Errorf("resumed parser mismatch (-want +got):\n%s", diff)
	}

	// The snapshot is a copy; the original parser is unaffected.
	got = p.Feed([]byte("2B"))
	if diff := cmp.Diff([]Key{{Type: KeyDown, Shift: true}}, got); diff != "" {
		t.Errorf("original parser mismatch (-want +got):\n%s", diff)
	}
}

func TestParserReset(t *testing.T) {
	t.Parallel()

	p := NewParser()
	p.Feed([]byte("\x1b[200~partial"))
	p.Reset()
	if p.Mode() != ModeGround || p.Pending() != 0 {
		t.Fatalf("after Reset: mode=%v pending=%d", p.Mode(), p.Pending())
	}
	got := p.Feed([]byte("z"))
	if diff := cmp.Diff([]Key{Rune('z')}, got); diff != "" {
		t.Errorf("after Reset mismatch (-want +got):\n%s", diff)
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	if ModePaste.String() != "paste" {
		t.Errorf("ModePaste.String() = %q", ModePaste.String())
	}
	if Mode(99).String() != "unknown" {
		t.Errorf("Mode(99).String() = %q", Mode(99).String())
	}
}

func BenchmarkParserFeed(b *testing.B) {
	input := []byte(strings.Repeat("hello \x1b[A\x1b[1;5C日本\x1b[<0;10;5M", 64))
	p := NewParser()
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		p.Feed(input)
	}
}
