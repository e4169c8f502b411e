// ABOUTME: Grapheme-cluster boundary helpers backed by uniseg.
// ABOUTME: Offsets are rune indexes into the document text.

package document

import "github.com/rivo/uniseg"

// clusterBounds returns the rune offsets where grapheme clusters start,
// followed by len(text).
func clusterBounds(text []rune) []int {
	bounds := make([]int, 0, len(text)+1)
	if len(text) == 0 {
		return append(bounds, 0)
	}
	g := uniseg.NewGraphemes(string(text))
	pos := 0
	for g.Next() {
		bounds = append(bounds, pos)
		pos += len(g.Runes())
	}
	return append(bounds, pos)
}

// clusterAround returns the bounds [start, end) of the cluster that
// contains rune index i. For i == len(text) both are len(text).
func (d Document) clusterAround(i int) (int, int) {
	if i >= len(d.text) {
		return len(d.text), len(d.text)
	}
	bounds := clusterBounds(d.text)
	for j := 0; j+1 < len(bounds); j++ {
		if i < bounds[j+1] {
			return bounds[j], bounds[j+1]
		}
	}
	return len(d.text), len(d.text)
}

func (d Document) boundaryAtOrAfter(i int) int {
	start, end := d.clusterAround(i)
	if start == i {
		return i
	}
	return end
}

func (d Document) boundaryAtOrBefore(i int) int {
	start, _ := d.clusterAround(i)
	return start
}

// IsClusterBoundary reports whether rune offset i does not split a
// grapheme cluster.
func (d Document) IsClusterBoundary(i int) bool {
	if i <= 0 || i >= len(d.text) {
		return i == 0 || i == len(d.text)
	}
	start, _ := d.clusterAround(i)
	return start == i
}

// GraphemeBefore returns the rune length of the grapheme cluster that
// ends at the cursor, or 0 at the start of the text.
func (d Document) GraphemeBefore() int {
	if d.cursor == 0 {
		return 0
	}
	start, _ := d.clusterAround(d.cursor - 1)
	return d.cursor - start
}

// GraphemeAfter returns the rune length of the grapheme cluster that
// starts at the cursor, or 0 at the end of the text.
func (d Document) GraphemeAfter() int {
	if d.cursor >= len(d.text) {
		return 0
	}
	_, end := d.clusterAround(d.cursor)
	return end - d.cursor
}
