package bridge

import "strings"

// LineSource is the part of the engine the flat text cache reads from.
type LineSource interface {
	LineCount() int
	Line(lnum int) string // 1-based
}

// Document is the host-facing projection of the engine buffer: the lines,
// the flat text built from them and whether the last rebuild changed it.
type Document struct {
	lines   []Line
	flat    string
	changed bool
	edit    Edit
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Update rebuilds the flat text from src and reconciles the line arena.
// It reports whether the flat text differs from the previous one.
//
// Line offsets are recomputed on every call, even when the text is
// unchanged, because they depend on where the lines break.
func (d *Document) Update(src LineSource) bool {
	n := max(src.LineCount(), 0)
	texts := make([]string, n)
	size := 0
	for i := range texts {
		texts[i] = src.Line(i + 1)
		size += len(texts[i]) + 1
	}

	var b strings.Builder
	b.Grow(max(size-1, 0))
	for i, text := range texts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}
	flat := b.String()

	d.resize(n)
	offset := 0
	for i := range d.lines {
		d.lines[i].SetText(texts[i])
		d.lines[i].offset = offset
		offset += d.lines[i].length + 1
	}

	if flat == d.flat {
		d.changed = false
		return false
	}
	d.edit = computeEdit(d.flat, flat)
	d.flat = flat
	d.changed = true
	return true
}

// resize grows or shrinks the line arena to n entries. Dropped entries are
// zeroed so their text can be collected; new entries start empty.
func (d *Document) resize(n int) {
	if n <= len(d.lines) {
		clear(d.lines[n:])
		d.lines = d.lines[:n]
		return
	}
	d.lines = append(d.lines, make([]Line, n-len(d.lines))...)
}

// Reset drops all lines and the flat text.
func (d *Document) Reset() {
	d.resize(0)
	d.lines = nil
	d.flat = ""
	d.changed = false
	d.edit = Edit{}
}

// Text returns the flat text.
func (d *Document) Text() string { return d.flat }

// Changed reports whether the last Update changed the flat text.
func (d *Document) Changed() bool { return d.changed }

// LastEdit returns the replacement that turned the previous flat text into
// the current one. It is only meaningful when Changed is true.
func (d *Document) LastEdit() Edit { return d.edit }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the 0-indexed line i.
func (d *Document) Line(i int) *Line { return &d.lines[i] }

// Len returns the flat text length in grapheme clusters.
func (d *Document) Len() int {
	if len(d.lines) == 0 {
		return 0
	}
	return d.lines[len(d.lines)-1].End()
}
