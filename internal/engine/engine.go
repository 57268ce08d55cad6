// Package engine defines the capability set the bridge consumes from a modal
// text engine: a line buffer, cursor and mode state, visual range queries and
// key/text injection.
package engine

// Mode is the engine's state bitmask.
// The bit values follow libvim's State bits so that an adapter over libvim
// can pass them through unchanged.
type Mode uint32

const (
	ModeNormal    Mode = 0x01
	ModeVisual    Mode = 0x02
	ModeOpPending Mode = 0x04
	ModeCmdLine   Mode = 0x08
	ModeInsert    Mode = 0x10
	ModeReplace   Mode = 0x50 // Insert | 0x40
)

// Has reports whether any bit of flag is set in m.
func (m Mode) Has(flag Mode) bool {
	return m&flag != 0
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch {
	case m == 0:
		return "NONE"
	case m.Has(ModeVisual):
		return "VISUAL"
	case m == ModeReplace:
		return "REPLACE"
	case m.Has(ModeInsert):
		return "INSERT"
	case m.Has(ModeCmdLine):
		return "COMMAND"
	case m.Has(ModeOpPending):
		return "OPERATOR"
	case m.Has(ModeNormal):
		return "NORMAL"
	default:
		return "UNKNOWN"
	}
}

// VisualType is the kind of range a visual selection covers.
type VisualType int

const (
	VisualChar VisualType = iota
	VisualLine
	VisualBlock
)

// String returns the string representation of the visual type.
func (t VisualType) String() string {
	switch t {
	case VisualChar:
		return "char"
	case VisualLine:
		return "line"
	case VisualBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Pos is an engine position.
type Pos struct {
	Line int // 1-based line number
	Col  int // 0-based byte index into the line
}

// Before reports whether p comes before q in document order.
func (p Pos) Before(q Pos) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// Key names accepted by Engine.Key.
const (
	KeyEsc       = "<esc>"
	KeyEnter     = "<cr>"
	KeyBackspace = "<bs>"
)

// ClearCommand is the ex command that empties the current buffer.
const ClearCommand = "%d"

// Engine is a modal text engine operating on a single current buffer.
//
// All calls are synchronous and side-effecting. Implementations are not
// required to be safe for concurrent use.
type Engine interface {
	// Init prepares the engine. It is called once per session.
	Init() error

	// NewBuffer creates a buffer and makes it current.
	NewBuffer() error

	// LineCount returns the number of lines in the current buffer (at least 1
	// for a live buffer).
	LineCount() int

	// Line returns the text of the 1-based line lnum, without a line break.
	Line(lnum int) string

	// Cursor returns the cursor position.
	Cursor() Pos

	// SetCursor moves the cursor. The engine clamps it to a valid position
	// for the current mode.
	SetCursor(pos Pos)

	// Mode returns the current mode bitmask.
	Mode() Mode

	// VisualRange returns the visual anchor and the live cursor end. The two
	// endpoints are not ordered.
	VisualRange() (start, end Pos)

	// VisualType returns the kind of the current visual selection.
	VisualType() VisualType

	// CommandLine returns the text being typed on the command line. ok is
	// false when the command line is not active.
	CommandLine() (text string, ok bool)

	// Key injects a named key such as KeyEsc.
	Key(name string)

	// Input types text as if entered key by key.
	Input(text string)

	// Execute runs one or more ex commands separated by newlines.
	Execute(cmd string)
}
