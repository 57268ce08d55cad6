package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimbridge/internal/bridge"
)

func TestFromTea(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []bridge.KeyEvent
	}{
		{"runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")}, []bridge.KeyEvent{{Rune: 'h'}, {Rune: 'i'}}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []bridge.KeyEvent{{Rune: ' '}}},
		{"escape is ctrl bracket", tea.KeyMsg{Type: tea.KeyEsc}, []bridge.KeyEvent{{Rune: '[', Ctrl: true}}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []bridge.KeyEvent{{Rune: '\r'}}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []bridge.KeyEvent{{Rune: 0x7f}}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []bridge.KeyEvent{{Rune: '\t'}}},
		{"ctrl v", tea.KeyMsg{Type: tea.KeyCtrlV}, []bridge.KeyEvent{{Rune: 0x16, Ctrl: true}}},
		{"arrow has no meaning", tea.KeyMsg{Type: tea.KeyUp}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FromTea(tt.msg))
		})
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c"}},
		{"clear", km.Clear, []string{"ctrl+l"}},
		{"toggle status", km.ToggleStatus, []string{"f2"}},
		{"help", km.Help, []string{"f1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.keys, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, km.Quit), "escape belongs to the engine")
	require.Len(t, km.ShortHelp(), 2)
	require.Len(t, km.FullHelp(), 2)
}
