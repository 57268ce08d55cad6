package bridge

import (
	"errors"
	"fmt"

	"github.com/zjrosen/vimbridge/internal/engine"
)

// ErrEngineState is returned when the engine reports a position outside the
// lines it reported a moment earlier.
var ErrEngineState = errors.New("engine state inconsistent with document")

// Cursor is the host view of the engine cursor.
//
// Selection is 1 in normal mode (a caret over one character), the selected
// length in visual mode, and 0 in modes without a selection concept.
type Cursor struct {
	Position  int
	Selection int
	Mode      engine.Mode
}

// cursorSide records which end of an ordered visual range the live cursor
// occupies.
type cursorSide int

const (
	cursorAtEnd cursorSide = iota
	cursorAtStart
)

// visualRange is a visual selection in document order.
type visualRange struct {
	start, end engine.Pos
	cursor     cursorSide
}

// orderRange puts the anchor and the cursor end of a visual selection in
// document order. The engine reports the anchor first; when the cursor end
// precedes it, the cursor sits on the range start.
func orderRange(anchor, cursor engine.Pos) visualRange {
	if cursor.Before(anchor) {
		return visualRange{start: cursor, end: anchor, cursor: cursorAtStart}
	}
	return visualRange{start: anchor, end: cursor, cursor: cursorAtEnd}
}

// lineAt returns the document line for a 1-based engine line number.
func (d *Document) lineAt(lnum int) (*Line, error) {
	if lnum < 1 || lnum > len(d.lines) {
		return nil, fmt.Errorf("line %d of %d: %w", lnum, len(d.lines), ErrEngineState)
	}
	return &d.lines[lnum-1], nil
}

// absolute converts an engine position into a flat text offset.
func (d *Document) absolute(pos engine.Pos) (int, error) {
	line, err := d.lineAt(pos.Line)
	if err != nil {
		return 0, err
	}
	return line.Offset() + line.LocalOffset(pos.Col), nil
}

// spanBefore sums Length+1 over lines first..last-1 (1-based).
func (d *Document) spanBefore(first, last int) int {
	span := 0
	for lnum := first; lnum < last; lnum++ {
		span += d.lines[lnum-1].Length() + 1
	}
	return span
}

// visualSource is the part of the engine the projector reads in visual mode.
type visualSource interface {
	VisualRange() (start, end engine.Pos)
	VisualType() engine.VisualType
}

// project maps the engine cursor and mode onto a flat position and
// selection length.
//
// Character and block selections are end-inclusive, so their length is the
// offset difference plus one. Line selections run from the first line's
// start to the last line's end and do not count the trailing separator.
func project(d *Document, cur engine.Pos, mode engine.Mode, vs visualSource) (Cursor, error) {
	position, err := d.absolute(cur)
	if err != nil {
		return Cursor{}, err
	}
	c := Cursor{Position: position, Mode: mode}

	switch {
	case mode.Has(engine.ModeNormal) && !mode.Has(engine.ModeVisual):
		c.Selection = 1

	case mode.Has(engine.ModeVisual):
		r := orderRange(vs.VisualRange())
		startLine, err := d.lineAt(r.start.Line)
		if err != nil {
			return Cursor{}, err
		}
		endLine, err := d.lineAt(r.end.Line)
		if err != nil {
			return Cursor{}, err
		}
		span := d.spanBefore(r.start.Line, r.end.Line)

		if vs.VisualType() == engine.VisualLine {
			c.Position = d.Line(cur.Line - 1).Offset()
			if r.cursor == cursorAtEnd {
				c.Position = max(c.Position-span, 0)
			}
			c.Selection = span + endLine.Length()
			break
		}

		span += endLine.LocalOffset(r.end.Col) - startLine.LocalOffset(r.start.Col)
		if r.cursor == cursorAtEnd {
			c.Position = max(c.Position-span, 0)
		}
		c.Selection = span + 1

	default:
		c.Selection = 0
	}

	return c, nil
}
