package vim

import "github.com/rivo/uniseg"

// Columns in this package are byte offsets into a line, as in vim. Motions
// step over whole grapheme clusters so the cursor never lands inside one.

// clusterStart snaps col to the first byte of the cluster containing it.
// Returns len(s) if col >= len(s).
func clusterStart(s string, col int) int {
	if col <= 0 {
		return 0
	}
	if col >= len(s) {
		return len(s)
	}

	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		if col < pos+len(cluster) {
			return pos
		}
		pos += len(cluster)
		rest = next
		state = newState
	}
	return len(s)
}

// nextCluster returns the byte offset of the cluster after the one at col.
// Returns len(s) when col is on the last cluster.
func nextCluster(s string, col int) int {
	col = clusterStart(s, col)
	if col >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.StepString(s[col:], -1)
	return col + len(cluster)
}

// prevCluster returns the byte offset of the cluster before col.
func prevCluster(s string, col int) int {
	if col <= 0 {
		return 0
	}
	prev := 0
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 && pos < col {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		prev = pos
		pos += len(cluster)
		rest = next
		state = newState
	}
	if pos < col {
		return pos
	}
	return prev
}

// lastCluster returns the byte offset of the last cluster in s, or 0 for an
// empty string. This is the right-most column normal mode allows.
func lastCluster(s string) int {
	if s == "" {
		return 0
	}
	return prevCluster(s, len(s))
}

// clusterIndex returns the grapheme index of the cluster at col.
func clusterIndex(s string, col int) int {
	idx := 0
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		if col < pos+len(cluster) {
			return idx
		}
		idx++
		pos += len(cluster)
		rest = next
		state = newState
	}
	return idx
}

// clusterOffset returns the byte offset of the cluster with grapheme index
// idx, clamped to len(s).
func clusterOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		if n == idx {
			return pos
		}
		n++
		pos += len(cluster)
		rest = next
		state = newState
	}
	return len(s)
}
