// Package vim provides an in-process modal text engine.
//
// It implements engine.Engine on a slice of lines and covers the subset of vim
// the bridge needs in practice: hjkl/0/$/gg/G motions, insert commands
// (i a A I o O), x and dd, character, line and block visual selections, and a
// command line that runs the ex commands understood by Execute.
package vim

import (
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/vimbridge/internal/engine"
	"github.com/zjrosen/vimbridge/internal/log"
)

// Control characters recognised in typed input.
const (
	ctrlV     = 0x16
	escape    = 0x1b
	backspace = 0x08
	del       = 0x7f
)

// position is a 0-indexed row and byte column.
type position struct {
	row int
	col int
}

func (p position) toPos() engine.Pos {
	return engine.Pos{Line: p.row + 1, Col: p.col}
}

// Engine is an in-process modal text engine.
type Engine struct {
	lines []string
	cur   position
	want  int // preferred grapheme column for j/k

	mode       engine.Mode
	visualType engine.VisualType
	anchor     position
	cmdline    strings.Builder
	pending    rune

	options     map[string]string
	initialized bool
}

// New creates an engine holding a single empty line in normal mode.
func New() *Engine {
	return &Engine{
		lines:   []string{""},
		mode:    engine.ModeNormal,
		options: make(map[string]string),
	}
}

// Init implements engine.Engine.
func (e *Engine) Init() error {
	e.initialized = true
	log.Debug(log.CatEngine, "engine initialized")
	return nil
}

// NewBuffer implements engine.Engine.
func (e *Engine) NewBuffer() error {
	e.lines = []string{""}
	e.cur = position{}
	e.want = 0
	e.mode = engine.ModeNormal
	e.pending = 0
	e.cmdline.Reset()
	return nil
}

// LineCount implements engine.Engine.
func (e *Engine) LineCount() int {
	return len(e.lines)
}

// Line implements engine.Engine. Out of range line numbers return "".
func (e *Engine) Line(lnum int) string {
	if lnum < 1 || lnum > len(e.lines) {
		return ""
	}
	return e.lines[lnum-1]
}

// Lines returns a copy of the buffer.
func (e *Engine) Lines() []string {
	return append([]string(nil), e.lines...)
}

// Cursor implements engine.Engine.
func (e *Engine) Cursor() engine.Pos {
	return e.cur.toPos()
}

// SetCursor implements engine.Engine.
func (e *Engine) SetCursor(pos engine.Pos) {
	row := min(max(pos.Line-1, 0), len(e.lines)-1)
	e.cur = position{row: row, col: clusterStart(e.lines[row], pos.Col)}
	e.clampCursor()
	e.want = clusterIndex(e.lines[row], e.cur.col)
}

// Mode implements engine.Engine.
func (e *Engine) Mode() engine.Mode {
	return e.mode
}

// VisualRange implements engine.Engine. Outside visual mode both endpoints
// are the cursor.
func (e *Engine) VisualRange() (start, end engine.Pos) {
	if !e.mode.Has(engine.ModeVisual) {
		return e.cur.toPos(), e.cur.toPos()
	}
	return e.anchor.toPos(), e.cur.toPos()
}

// VisualType implements engine.Engine.
func (e *Engine) VisualType() engine.VisualType {
	return e.visualType
}

// CommandLine implements engine.Engine.
func (e *Engine) CommandLine() (string, bool) {
	if e.mode != engine.ModeCmdLine {
		return "", false
	}
	return e.cmdline.String(), true
}

// Option returns the value of an option set with ":set".
func (e *Engine) Option(name string) (string, bool) {
	v, ok := e.options[name]
	return v, ok
}

// Key implements engine.Engine.
func (e *Engine) Key(name string) {
	switch strings.ToLower(name) {
	case engine.KeyEsc:
		e.handleRune(escape)
	case engine.KeyEnter:
		e.handleRune('\r')
	case engine.KeyBackspace:
		e.handleRune(del)
	default:
		if r, size := utf8.DecodeRuneInString(name); size == len(name) && size > 0 {
			e.handleRune(r)
			return
		}
		log.Debug(log.CatEngine, "unknown key", "key", name)
	}
}

// Input implements engine.Engine.
func (e *Engine) Input(text string) {
	for len(text) > 0 {
		if e.mode == engine.ModeInsert {
			if n := printableRun(text); n > 0 {
				e.insertText(text[:n])
				text = text[n:]
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(text)
		e.handleRune(r)
		text = text[size:]
	}
}

// printableRun returns the byte length of the leading run of text that
// contains no control characters.
func printableRun(text string) int {
	for i, r := range text {
		if isControl(r) {
			return i
		}
	}
	return len(text)
}

func isControl(r rune) bool {
	return (r < 0x20 && r != '\t') || r == del
}

func (e *Engine) handleRune(r rune) {
	switch {
	case e.mode == engine.ModeCmdLine:
		e.cmdlineRune(r)
	case e.mode == engine.ModeInsert:
		e.insertRune(r)
	default:
		e.normalRune(r)
	}
}

// line returns the current line.
func (e *Engine) line() string {
	return e.lines[e.cur.row]
}

// clampCursor keeps the cursor on a valid position for the current mode.
func (e *Engine) clampCursor() {
	e.cur.row = min(max(e.cur.row, 0), len(e.lines)-1)
	line := e.line()
	limit := lastCluster(line)
	if e.mode == engine.ModeInsert {
		limit = len(line)
	}
	e.cur.col = min(max(e.cur.col, 0), limit)
}

// setMode switches mode and re-clamps the cursor.
func (e *Engine) setMode(mode engine.Mode) {
	if e.mode != mode {
		log.Debug(log.CatEngine, "mode change", "from", e.mode, "to", mode)
	}
	e.mode = mode
	e.clampCursor()
}
