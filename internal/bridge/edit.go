package bridge

import (
	"github.com/rivo/uniseg"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Edit is a single replacement in the flat text: Deleted characters starting
// at Offset were replaced by Inserted. Offset and Deleted count grapheme
// clusters of the old text.
type Edit struct {
	Offset   int
	Deleted  int
	Inserted string
}

// IsZero reports whether the edit changes nothing.
func (e Edit) IsZero() bool {
	return e.Deleted == 0 && e.Inserted == ""
}

// computeEdit returns the smallest single replacement turning before into
// after. The common prefix and suffix come from the diff's leading and
// trailing equalities; everything between them is replaced.
func computeEdit(before, after string) Edit {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	if len(diffs) == 0 {
		return Edit{}
	}

	prefix, suffix := 0, 0
	if diffs[0].Type == diffmatchpatch.DiffEqual {
		prefix = len(diffs[0].Text)
		diffs = diffs[1:]
	}
	if n := len(diffs); n > 0 && diffs[n-1].Type == diffmatchpatch.DiffEqual {
		suffix = len(diffs[n-1].Text)
	}
	if prefix == len(before) && prefix == len(after) {
		return Edit{}
	}

	// Snap both ends to cluster boundaries so a combining mark added next
	// to an unchanged base character replaces the whole cluster.
	for prefix > 0 && !(isBoundary(before, prefix) && isBoundary(after, prefix)) {
		prefix--
	}
	for suffix > 0 && !(isBoundary(before, len(before)-suffix) && isBoundary(after, len(after)-suffix)) {
		suffix--
	}

	return Edit{
		Offset:   uniseg.GraphemeClusterCount(before[:prefix]),
		Deleted:  uniseg.GraphemeClusterCount(before[prefix : len(before)-suffix]),
		Inserted: after[prefix : len(after)-suffix],
	}
}

// isBoundary reports whether byte offset n is a grapheme boundary in s.
func isBoundary(s string, n int) bool {
	if n <= 0 || n >= len(s) {
		return true
	}
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 && pos < n {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		pos += len(cluster)
		rest = next
		state = newState
	}
	return pos == n
}
