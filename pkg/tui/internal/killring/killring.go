// ABOUTME: Emacs-style kill ring for killed text, yank and yank-pop
// ABOUTME: Consecutive kills can be merged into the newest entry

package killring

const defaultSize = 32

// KillRing is an Emacs-style ring buffer for killed (cut) text.
type KillRing struct {
	entries []string
	pos     int
	size    int
	yankIdx int
}

// New creates a KillRing holding up to size entries; size <= 0 uses the
// default capacity.
func New(size int) *KillRing {
	if size <= 0 {
		size = defaultSize
	}
	return &KillRing{
		entries: make([]string, 0, size),
		size:    size,
	}
}

// Push adds text as the newest entry. Empty text is ignored.
func (kr *KillRing) Push(text string) {
	if text == "" {
		return
	}
	if len(kr.entries) < kr.size {
		kr.entries = append(kr.entries, text)
	} else {
		kr.entries[kr.pos] = text
	}
	kr.pos = (kr.pos + 1) % kr.size
	kr.yankIdx = kr.newest()
}

// Append merges text into the newest entry, before it when prepend is set
// (backward kills). With an empty ring it behaves like Push.
func (kr *KillRing) Append(text string, prepend bool) {
	if text == "" {
		return
	}
	if len(kr.entries) == 0 {
		kr.Push(text)
		return
	}
	i := kr.newest()
	if prepend {
		kr.entries[i] = text + kr.entries[i]
	} else {
		kr.entries[i] += text
	}
	kr.yankIdx = i
}

// Yank returns the most recently killed text, or empty if ring is empty.
func (kr *KillRing) Yank() string {
	if len(kr.entries) == 0 {
		return ""
	}
	kr.yankIdx = kr.newest()
	return kr.entries[kr.yankIdx]
}

// YankPop cycles to the next older entry in the ring.
// Should only be called after Yank.
func (kr *KillRing) YankPop() string {
	if len(kr.entries) == 0 {
		return ""
	}
	kr.yankIdx = (kr.yankIdx - 1 + len(kr.entries)) % len(kr.entries)
	return kr.entries[kr.yankIdx]
}

// Len returns the number of entries in the ring.
func (kr *KillRing) Len() int {
	return len(kr.entries)
}

func (kr *KillRing) newest() int {
	return (kr.pos - 1 + len(kr.entries)) % len(kr.entries)
}
