package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimbridge/internal/engine"
)

// projectFake syncs a document from f and projects f's cursor in its mode.
func projectFake(t *testing.T, f *fakeEngine) Cursor {
	t.Helper()
	d := NewDocument()
	d.Update(f)
	c, err := project(d, f.Cursor(), f.Mode(), f)
	require.NoError(t, err)
	return c
}

func TestOrderRange(t *testing.T) {
	r := orderRange(pos(1, 2), pos(2, 0))
	require.Equal(t, visualRange{start: pos(1, 2), end: pos(2, 0), cursor: cursorAtEnd}, r)

	r = orderRange(pos(2, 0), pos(1, 2))
	require.Equal(t, visualRange{start: pos(1, 2), end: pos(2, 0), cursor: cursorAtStart}, r)

	r = orderRange(pos(1, 3), pos(1, 1))
	require.Equal(t, cursorAtStart, r.cursor, "same line, cursor left of anchor")

	r = orderRange(pos(1, 1), pos(1, 1))
	require.Equal(t, cursorAtEnd, r.cursor, "single character range")
}

func TestProject_Normal(t *testing.T) {
	f := newFakeEngine("abc", "de")
	f.cursor = pos(2, 1)

	c := projectFake(t, f)

	require.Equal(t, 5, c.Position)
	require.Equal(t, 1, c.Selection)
	require.Equal(t, engine.ModeNormal, c.Mode)
}

func TestProject_NormalEmptyLine(t *testing.T) {
	f := newFakeEngine("")

	c := projectFake(t, f)

	require.Equal(t, 0, c.Position)
	require.Equal(t, 1, c.Selection, "normal mode never reports an empty selection")
}

func TestProject_InsertAndCmdLine(t *testing.T) {
	for _, mode := range []engine.Mode{engine.ModeInsert, engine.ModeCmdLine, engine.ModeReplace, engine.ModeOpPending} {
		t.Run(mode.String(), func(t *testing.T) {
			f := newFakeEngine("abc", "de")
			f.mode = mode
			f.cursor = pos(1, 3)

			c := projectFake(t, f)

			require.Equal(t, 3, c.Position)
			require.Equal(t, 0, c.Selection)
		})
	}
}

func TestProject_VisualChar(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		anchor   engine.Pos
		cursor   engine.Pos
		position int
		sel      int
	}{
		{"single character", []string{"abc"}, pos(1, 1), pos(1, 1), 1, 1},
		{"forward on one line", []string{"abcdef"}, pos(1, 1), pos(1, 4), 1, 4},
		{"backward on one line", []string{"abcdef"}, pos(1, 4), pos(1, 1), 1, 4},
		{"across lines forward", []string{"abc", "de"}, pos(1, 0), pos(2, 1), 0, 6},
		{"across lines backward", []string{"abc", "de"}, pos(2, 1), pos(1, 0), 0, 6},
		{"across three lines", []string{"ab", "cde", "f"}, pos(1, 1), pos(3, 0), 1, 7},
		{"multibyte columns", []string{"\u00e9\u00e9x"}, pos(1, 2), pos(1, 4), 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeEngine(tt.lines...)
			f.visual(engine.VisualChar, tt.anchor, tt.cursor)

			c := projectFake(t, f)

			require.Equal(t, tt.position, c.Position)
			require.Equal(t, tt.sel, c.Selection)
		})
	}
}

func TestProject_VisualBlockUsesCharacterSpan(t *testing.T) {
	f := newFakeEngine("abc", "def")
	f.visual(engine.VisualBlock, pos(1, 1), pos(2, 2))

	c := projectFake(t, f)

	require.Equal(t, 1, c.Position)
	require.Equal(t, 6, c.Selection)
}

func TestProject_VisualLine(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		anchor   engine.Pos
		cursor   engine.Pos
		position int
		sel      int
	}{
		{"single line", []string{"abc", "de"}, pos(2, 0), pos(2, 1), 4, 2},
		{"single line excludes separator", []string{"hello", "x"}, pos(1, 3), pos(1, 3), 0, 5},
		{"two lines forward", []string{"abc", "de", "f"}, pos(1, 2), pos(2, 0), 0, 6},
		{"two lines backward", []string{"abc", "de", "f"}, pos(2, 0), pos(1, 2), 0, 6},
		{"last two lines backward", []string{"abc", "de", "fgh"}, pos(3, 1), pos(2, 1), 4, 6},
		{"empty line", []string{"abc", "", "x"}, pos(2, 0), pos(2, 0), 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeEngine(tt.lines...)
			f.visual(engine.VisualLine, tt.anchor, tt.cursor)

			c := projectFake(t, f)

			require.Equal(t, tt.position, c.Position)
			require.Equal(t, tt.sel, c.Selection)
		})
	}
}

func TestProject_CursorOutsideDocument(t *testing.T) {
	f := newFakeEngine("abc")
	f.cursor = pos(3, 0)

	d := NewDocument()
	d.Update(f)
	_, err := project(d, f.Cursor(), f.Mode(), f)

	require.ErrorIs(t, err, ErrEngineState)
}

func TestProject_VisualEndpointOutsideDocument(t *testing.T) {
	f := newFakeEngine("abc")
	f.visual(engine.VisualChar, pos(0, 0), pos(1, 1))

	d := NewDocument()
	d.Update(f)
	_, err := project(d, f.Cursor(), f.Mode(), f)

	require.ErrorIs(t, err, ErrEngineState)
}

func TestProject_ColumnPastEndClamps(t *testing.T) {
	f := newFakeEngine("ab", "cd")
	f.mode = engine.ModeInsert
	f.cursor = pos(1, 10)

	c := projectFake(t, f)

	require.Equal(t, 2, c.Position)
}
