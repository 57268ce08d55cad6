package vim

import (
	"strings"

	"github.com/zjrosen/vimbridge/internal/engine"
)

// normalRune handles a key in normal and visual mode.
func (e *Engine) normalRune(r rune) {
	visual := e.mode.Has(engine.ModeVisual)

	if p := e.pending; p != 0 {
		e.pending = 0
		switch {
		case p == 'd' && r == 'd' && !visual:
			e.deleteLines(e.cur.row, e.cur.row)
		case p == 'g' && r == 'g':
			e.cur.row = 0
			e.moveVertical()
		}
		return
	}

	switch r {
	case escape:
		if visual {
			e.setMode(engine.ModeNormal)
		}
	case 'h', del, backspace:
		e.cur.col = prevCluster(e.line(), e.cur.col)
		e.want = clusterIndex(e.line(), e.cur.col)
	case 'l', ' ':
		if next := nextCluster(e.line(), e.cur.col); next <= lastCluster(e.line()) {
			e.cur.col = next
		}
		e.want = clusterIndex(e.line(), e.cur.col)
	case 'j':
		if e.cur.row < len(e.lines)-1 {
			e.cur.row++
			e.moveVertical()
		}
	case 'k':
		if e.cur.row > 0 {
			e.cur.row--
			e.moveVertical()
		}
	case '0':
		e.cur.col = 0
		e.want = 0
	case '$':
		e.cur.col = lastCluster(e.line())
		e.want = clusterIndex(e.line(), e.cur.col)
	case 'G':
		e.cur.row = len(e.lines) - 1
		e.moveVertical()
	case 'g', 'd':
		if r == 'd' && visual {
			e.deleteSelection()
			return
		}
		e.pending = r
	case 'x':
		if visual {
			e.deleteSelection()
			return
		}
		e.deleteChar()
	case 'v':
		e.toggleVisual(engine.VisualChar)
	case 'V':
		e.toggleVisual(engine.VisualLine)
	case ctrlV:
		e.toggleVisual(engine.VisualBlock)
	case 'o':
		if visual {
			e.anchor, e.cur = e.cur, e.anchor
			e.want = clusterIndex(e.line(), e.cur.col)
			return
		}
		e.openLine(e.cur.row + 1)
	case 'O':
		if !visual {
			e.openLine(e.cur.row)
		}
	case 'i':
		if !visual {
			e.setMode(engine.ModeInsert)
		}
	case 'a':
		if !visual {
			e.cur.col = nextCluster(e.line(), e.cur.col)
			e.setMode(engine.ModeInsert)
		}
	case 'A':
		if !visual {
			e.setMode(engine.ModeInsert)
			e.cur.col = len(e.line())
		}
	case 'I':
		if !visual {
			e.cur.col = len(e.line()) - len(strings.TrimLeft(e.line(), " \t"))
			e.setMode(engine.ModeInsert)
		}
	case ':':
		if !visual {
			e.cmdline.Reset()
			e.setMode(engine.ModeCmdLine)
		}
	}
}

// moveVertical places the cursor on the preferred column of the new row.
func (e *Engine) moveVertical() {
	line := e.line()
	e.cur.col = clusterOffset(line, e.want)
	e.clampCursor()
}

func (e *Engine) toggleVisual(t engine.VisualType) {
	if e.mode.Has(engine.ModeVisual) {
		if e.visualType == t {
			e.setMode(engine.ModeNormal)
			return
		}
		e.visualType = t
		return
	}
	e.anchor = e.cur
	e.visualType = t
	e.setMode(engine.ModeVisual)
}

// insertRune handles a key in insert mode.
func (e *Engine) insertRune(r rune) {
	switch r {
	case escape:
		e.cur.col = prevCluster(e.line(), e.cur.col)
		e.setMode(engine.ModeNormal)
		e.want = clusterIndex(e.line(), e.cur.col)
	case '\r', '\n':
		e.splitLine()
	case del, backspace:
		e.backspace()
	default:
		if isControl(r) {
			return
		}
		e.insertText(string(r))
	}
}

// cmdlineRune handles a key while the command line is active.
func (e *Engine) cmdlineRune(r rune) {
	switch r {
	case escape:
		e.cmdline.Reset()
		e.setMode(engine.ModeNormal)
	case '\r', '\n':
		cmd := e.cmdline.String()
		e.cmdline.Reset()
		e.setMode(engine.ModeNormal)
		e.Execute(cmd)
	case del, backspace:
		text := e.cmdline.String()
		if text == "" {
			e.setMode(engine.ModeNormal)
			return
		}
		e.cmdline.Reset()
		e.cmdline.WriteString(text[:prevCluster(text, len(text))])
	default:
		if !isControl(r) {
			e.cmdline.WriteRune(r)
		}
	}
}
