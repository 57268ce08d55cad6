package vim

import "github.com/zjrosen/vimbridge/internal/engine"

// insertText inserts text without line breaks at the cursor and moves the
// cursor past it.
func (e *Engine) insertText(text string) {
	line := e.line()
	col := min(e.cur.col, len(line))
	e.lines[e.cur.row] = line[:col] + text + line[col:]
	e.cur.col = col + len(text)
	e.want = clusterIndex(e.line(), e.cur.col)
}

// splitLine breaks the current line at the cursor.
func (e *Engine) splitLine() {
	line := e.line()
	col := min(e.cur.col, len(line))
	head, tail := line[:col], line[col:]

	e.lines[e.cur.row] = head
	e.lines = insertAt(e.lines, e.cur.row+1, tail)
	e.cur = position{row: e.cur.row + 1}
	e.want = 0
}

// backspace deletes the cluster before the cursor, joining with the
// previous line at column 0.
func (e *Engine) backspace() {
	if e.cur.col > 0 {
		line := e.line()
		start := prevCluster(line, e.cur.col)
		e.lines[e.cur.row] = line[:start] + line[e.cur.col:]
		e.cur.col = start
		e.want = clusterIndex(e.line(), start)
		return
	}
	if e.cur.row == 0 {
		return
	}
	prev := e.lines[e.cur.row-1]
	e.lines[e.cur.row-1] = prev + e.line()
	e.lines = append(e.lines[:e.cur.row], e.lines[e.cur.row+1:]...)
	e.cur = position{row: e.cur.row - 1, col: len(prev)}
	e.want = clusterIndex(e.line(), e.cur.col)
}

// deleteChar deletes the cluster under the cursor (normal mode "x").
func (e *Engine) deleteChar() {
	line := e.line()
	if line == "" {
		return
	}
	end := nextCluster(line, e.cur.col)
	e.lines[e.cur.row] = line[:e.cur.col] + line[end:]
	e.clampCursor()
}

// deleteLines removes rows first..last inclusive. The buffer always keeps at
// least one line.
func (e *Engine) deleteLines(first, last int) {
	e.lines = append(e.lines[:first], e.lines[last+1:]...)
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.cur = position{row: min(first, len(e.lines)-1)}
	e.want = 0
	e.clampCursor()
}

// deleteSelection removes the visual selection and returns to normal mode.
// Block selections are deleted like character selections.
func (e *Engine) deleteSelection() {
	start, end := e.anchor, e.cur
	if end.row < start.row || (end.row == start.row && end.col < start.col) {
		start, end = end, start
	}

	if e.visualType == engine.VisualLine {
		e.deleteLines(start.row, end.row)
		e.setMode(engine.ModeNormal)
		return
	}

	endLine := e.lines[end.row]
	after := endLine[nextCluster(endLine, end.col):]
	e.lines[start.row] = e.lines[start.row][:start.col] + after
	e.lines = append(e.lines[:start.row+1], e.lines[end.row+1:]...)
	e.cur = start
	e.setMode(engine.ModeNormal)
	e.want = clusterIndex(e.line(), e.cur.col)
}

// openLine inserts an empty line at row and starts insert mode on it.
func (e *Engine) openLine(row int) {
	e.lines = insertAt(e.lines, row, "")
	e.cur = position{row: row}
	e.want = 0
	e.setMode(engine.ModeInsert)
}

// clearBuffer replaces the buffer with a single empty line.
func (e *Engine) clearBuffer() {
	e.lines = []string{""}
	e.cur = position{}
	e.want = 0
}

func insertAt(lines []string, idx int, s string) []string {
	lines = append(lines, "")
	copy(lines[idx+1:], lines[idx:])
	lines[idx] = s
	return lines
}
