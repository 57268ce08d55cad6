package bridge

import "github.com/rivo/uniseg"

// Line is one engine line as seen by the host.
//
// Two units meet here: the engine addresses a line by byte column, the host
// by grapheme cluster. Length and Offset are in grapheme clusters.
type Line struct {
	text   string
	length int
	offset int
}

// NewLine returns an empty line.
func NewLine() *Line {
	return &Line{}
}

// SetText replaces the line's content and recomputes its length.
func (l *Line) SetText(text string) {
	l.text = text
	l.length = uniseg.GraphemeClusterCount(text)
}

// Text returns the line's content.
func (l *Line) Text() string { return l.text }

// Length returns the number of grapheme clusters in the line.
func (l *Line) Length() int { return l.length }

// Offset returns the absolute offset of the line's first character in the
// flat text.
func (l *Line) Offset() int { return l.offset }

// End returns the absolute offset just past the line's last character.
func (l *Line) End() int { return l.offset + l.length }

// LocalOffset converts an engine byte column into a grapheme offset within
// the line. A column inside a cluster maps to that cluster; a column at or
// past the end of the text maps to Length().
func (l *Line) LocalOffset(col int) int {
	if col <= 0 {
		return 0
	}
	if col >= len(l.text) {
		return l.length
	}

	idx := 0
	pos := 0
	state := -1
	rest := l.text
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

// EngineColumn converts a grapheme offset within the line into the engine
// byte column of that cluster's first byte. Offsets past the end map to
// len(Text()).
func (l *Line) EngineColumn(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= l.length {
		return len(l.text)
	}

	idx := 0
	pos := 0
	state := -1
	rest := l.text
	for len(rest) > 0 && idx < offset {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		idx++
		pos += len(cluster)
		rest = next
		state = newState
	}
	return pos
}
