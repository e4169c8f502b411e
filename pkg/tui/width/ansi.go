// ABOUTME: Removes ANSI escape sequences so styled prompts can be measured
// ABOUTME: Recognizes CSI, OSC, string sequences, charset designation and two-byte ESC forms

package width

import "strings"

// StripANSI removes all ANSI escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			i = skipANSISequence(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipANSISequence returns the index just past the escape sequence that
// starts at s[i].
func skipANSISequence(s string, i int) int {
	i++ // ESC
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7E {
				return i + 1
			}
		}
		return i
	case ']', '_', 'P', '^':
		bel := s[i] == ']'
		for i++; i < len(s); i++ {
			if bel && s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(', ')':
		return min(i+2, len(s))
	}
	return i + 1
}
