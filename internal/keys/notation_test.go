package keys

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimbridge/internal/bridge"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []bridge.KeyEvent
	}{
		{"empty", "", nil},
		{"plain text", "ab", []bridge.KeyEvent{{Rune: 'a'}, {Rune: 'b'}}},
		{"multibyte", "é", []bridge.KeyEvent{{Rune: 'é'}}},
		{"enter", "<CR>", []bridge.KeyEvent{{Rune: '\r'}}},
		{"enter alias", "<Enter>", []bridge.KeyEvent{{Rune: '\r'}}},
		{"ctrl bracket", "<C-[>", []bridge.KeyEvent{{Rune: '[', Ctrl: true}}},
		{"escape", "<Esc>", []bridge.KeyEvent{{Rune: 0x1b, Ctrl: true}}},
		{"ctrl escape", "<C-Esc>", []bridge.KeyEvent{{Rune: 0x1b, Ctrl: true}}},
		{"ctrl v", "<C-v>", []bridge.KeyEvent{{Rune: 0x16, Ctrl: true}}},
		{"ctrl upper", "<C-V>", []bridge.KeyEvent{{Rune: 0x16, Ctrl: true}}},
		{"backspace", "<bs>", []bridge.KeyEvent{{Rune: 0x7f}}},
		{"literal lt", "<lt>", []bridge.KeyEvent{{Rune: '<'}}},
		{"unterminated", "a<b", []bridge.KeyEvent{{Rune: 'a'}, {Rune: '<'}, {Rune: 'b'}}},
		{"empty group", "<>", []bridge.KeyEvent{{Rune: '<'}, {Rune: '>'}}},
		{
			"mixed",
			"ix<Space>y<C-[>",
			[]bridge.KeyEvent{{Rune: 'i'}, {Rune: 'x'}, {Rune: ' '}, {Rune: 'y'}, {Rune: '[', Ctrl: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnknownKey(t *testing.T) {
	for _, in := range []string{"<F13>", "ab<C-ab>", "<C-1>"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrUnknownKey, in)
	}
}

func TestParse_ErrorOffset(t *testing.T) {
	_, err := Parse("abc<nope>")
	require.ErrorContains(t, err, "offset 3")
}

func TestMustParse_Panics(t *testing.T) {
	require.Panics(t, func() { MustParse("<nope>") })
	require.Len(t, MustParse("<Esc>:"), 2)
}
