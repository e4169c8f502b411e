// ABOUTME: Tests for completers, filters, policies, apply semantics, and cycling sessions.
// ABOUTME: Includes filter idempotence and the "hello world" -> "hello worldwide" scenario.

package completion

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mauromedda/promptkit/pkg/tui/document"
)

func mustDoc(t *testing.T, text string, cursor int) document.Document {
	t.Helper()
	d, err := document.NewWithText(text, cursor)
	if err != nil {
		t.Fatalf("NewWithText(%q, %d): %v", text, cursor, err)
	}
	return d
}

func texts(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, sg := range s {
		out[i] = sg.Text
	}
	return out
}

var commands = []Suggestion{
	{Text: "select", Description: "read rows"},
	{Text: "Set"},
	{Text: "insert"},
	{Text: "SELECT DISTINCT"},
	{Text: "show"},
	{Text: "Straße"},
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		prefix          string
		caseInsensitive bool
		want            []string
	}{
		{"empty prefix keeps all", "", false, []string{"select", "Set", "insert", "SELECT DISTINCT", "show", "Straße"}},
		{"case sensitive", "se", false, []string{"select"}},
		{"case insensitive keeps order", "se", true, []string{"select", "Set", "SELECT DISTINCT"}},
		{"no match", "zz", true, []string{}},
		{"unicode folding", "STRASS", true, []string{"Straße"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Filter(commands, tt.prefix, tt.caseInsensitive)
			if diff := cmp.Diff(tt.want, texts(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	t.Parallel()

	for _, prefix := range []string{"", "s", "S", "se", "sel", "x", "str"} {
		for _, ci := range []bool{false, true} {
			once := Filter(commands, prefix, ci)
			twice := Filter(once, prefix, ci)
			if diff := cmp.Diff(once, twice, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Filter(%q, %v) not idempotent (-once +twice):\n%s", prefix, ci, diff)
			}
		}
	}
}

func TestFilterDoesNotAlias(t *testing.T) {
	t.Parallel()

	in := []Suggestion{{Text: "a"}, {Text: "b"}}
	out := Filter(in, "", false)
	out[0].Text = "changed"
	if in[0].Text != "a" {
		t.Error("Filter result aliases its input")
	}
}

func TestFilterFuzzy(t *testing.T) {
	t.Parallel()

	s := []Suggestion{{Text: "git checkout"}, {Text: "go build"}, {Text: "git commit"}}
	got := texts(FilterFuzzy(s, "gco"))
	if len(got) != 2 {
		t.Fatalf("FilterFuzzy(gco) = %v, want two matches", got)
	}
	for _, g := range got {
		if g == "go build" {
			t.Errorf("FilterFuzzy(gco) matched %q", g)
		}
	}

	if diff := cmp.Diff(texts(s), texts(FilterFuzzy(s, ""))); diff != "" {
		t.Errorf("empty pattern changed order (-want +got):\n%s", diff)
	}
	if got := FilterFuzzy(s, "qqq"); len(got) != 0 {
		t.Errorf("FilterFuzzy(qqq) = %v", got)
	}
}

func TestPolicyCandidates(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, "run se", 6)
	c := Static(commands...)

	got := Policy{Mode: ModePrefix, CaseInsensitive: true, MaxSuggestions: 2}.Candidates(c, doc)
	if diff := cmp.Diff([]string{"select", "Set"}, texts(got)); diff != "" {
		t.Errorf("prefix candidates mismatch (-want +got):\n%s", diff)
	}

	got = Policy{Mode: ModePrefix}.Candidates(c, doc)
	if diff := cmp.Diff([]string{"select"}, texts(got)); diff != "" {
		t.Errorf("case-sensitive candidates mismatch (-want +got):\n%s", diff)
	}

	got = Policy{Mode: ModeFuzzy}.Candidates(StaticStrings("insert", "sel"), mustDoc(t, "sl", 2))
	if diff := cmp.Diff([]string{"sel"}, texts(got)); diff != "" {
		t.Errorf("fuzzy candidates mismatch (-want +got):\n%s", diff)
	}

	if got := DefaultPolicy.Candidates(nil, doc); got != nil {
		t.Errorf("nil completer gave %v", got)
	}
}

func TestFuncCompleterGetsClone(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, "abc", 3)
	c := Func(func(d document.Document) []Suggestion {
		d.InsertText("MUTATED")
		return []Suggestion{{Text: "abcdef"}}
	})

	got := DefaultPolicy.Candidates(c, doc)
	if doc.Text() != "abc" {
		t.Errorf("completer mutated the document: %q", doc.Text())
	}
	if diff := cmp.Diff([]string{"abcdef"}, texts(got)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestStaticCompleterCopies(t *testing.T) {
	t.Parallel()

	in := []Suggestion{{Text: "a"}}
	c := Static(in...)
	in[0].Text = "changed"
	out := c.Complete(document.New())
	out[0].Text = "also changed"
	if again := c.Complete(document.New()); again[0].Text != "a" {
		t.Errorf("static completer state leaked: %q", again[0].Text)
	}
}

func TestApplyScenario(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, "hello world", 11)
	if got := doc.FindStartOfWord(); got != 6 {
		t.Fatalf("FindStartOfWord() = %d, want 6", got)
	}
	cursor, err := Apply(&doc, Suggestion{Text: "worldwide"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if doc.Text() != "hello worldwide" || cursor != 15 || doc.Cursor() != 15 {
		t.Errorf("got %q cursor %d (returned %d)", doc.Text(), doc.Cursor(), cursor)
	}
}

func TestApplyTypedPrefixKeepsText(t *testing.T) {
	t.Parallel()

	for _, cursor := range []int{6, 8, 11} {
		doc := mustDoc(t, "hello world", cursor)
		typed := doc.WordBeforeCursor()
		got, err := Apply(&doc, Suggestion{Text: typed})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if doc.Text() != "hello world" || got != cursor {
			t.Errorf("cursor %d: text %q cursor %d", cursor, doc.Text(), got)
		}
	}
}

func TestApplyToInvalidRangeIsAtomic(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, "abc", 3)
	r := Result{WordStart: 1, WordEnd: 9, Suggestion: Suggestion{Text: "x"}}
	if _, err := r.ApplyTo(&doc); !errors.Is(err, document.ErrOutOfRange) {
		t.Fatalf("ApplyTo err = %v, want ErrOutOfRange", err)
	}
	if doc.Text() != "abc" || doc.Cursor() != 3 {
		t.Errorf("document changed: %q cursor %d", doc.Text(), doc.Cursor())
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, "git com", 7)
	r := Resolve(doc, Suggestion{Text: "commit"})
	want := Result{WordStart: 4, WordEnd: 7, Suggestion: Suggestion{Text: "commit"}}
	if r != want {
		t.Errorf("Resolve = %+v, want %+v", r, want)
	}
}

func TestSessionCycle(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, "ls fo", 5)
	s, err := Start(&doc, []Suggestion{{Text: "foo"}, {Text: "foo-bar"}, {Text: "fox"}})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	steps := []struct {
		move func(*document.Document) error
		want string
		sel  int
	}{
		{s.Next, "ls foo-bar", 1},
		{s.Next, "ls fox", 2},
		{s.Next, "ls foo", 0},
		{s.Prev, "ls fox", 2},
	}
	if doc.Text() != "ls foo" || s.Selected() != 0 {
		t.Fatalf("after Start: %q selected %d", doc.Text(), s.Selected())
	}
	for i, st := range steps {
		if err := st.move(&doc); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if doc.Text() != st.want || s.Selected() != st.sel || doc.Cursor() != len([]rune(st.want)) {
			t.Errorf("step %d: got %q selected %d cursor %d, want %q selected %d",
				i, doc.Text(), s.Selected(), doc.Cursor(), st.want, st.sel)
		}
	}
	if s.WordStart() != 3 || s.Typed() != "fo" || s.Current().Text != "fox" {
		t.Errorf("session accessors: start %d typed %q current %q", s.WordStart(), s.Typed(), s.Current().Text)
	}

	if err := s.Revert(&doc); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if doc.Text() != "ls fo" || doc.Cursor() != 5 {
		t.Errorf("after Revert: %q cursor %d", doc.Text(), doc.Cursor())
	}
}

func TestSessionNoCandidates(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, "x", 1)
	if _, err := Start(&doc, nil); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Start(nil) err = %v", err)
	}
	if doc.Text() != "x" {
		t.Errorf("document changed: %q", doc.Text())
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Mode{"": ModePrefix, "prefix": ModePrefix, "Fuzzy": ModeFuzzy} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("regex"); err == nil {
		t.Error("ParseMode(regex) succeeded")
	}
	if ModeFuzzy.String() != "fuzzy" {
		t.Errorf("ModeFuzzy.String() = %q", ModeFuzzy.String())
	}
}
