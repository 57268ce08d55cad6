package keys

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/vimbridge/internal/bridge"
)

// FromTea converts a Bubble Tea key message into session key events.
//
// Terminals send the same byte for Esc and Ctrl+[, so both arrive as a
// Ctrl+[ event and switch the engine to normal mode. Runes are expanded one
// event per rune. Keys with no engine meaning (arrows, function keys)
// return nil.
func FromTea(msg tea.KeyMsg) []bridge.KeyEvent {
	switch msg.Type {
	case tea.KeyRunes:
		events := make([]bridge.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, bridge.KeyEvent{Rune: r})
		}
		return events
	case tea.KeySpace:
		return []bridge.KeyEvent{{Rune: ' '}}
	case tea.KeyEsc:
		return []bridge.KeyEvent{{Rune: '[', Ctrl: true}}
	case tea.KeyBackspace:
		return []bridge.KeyEvent{{Rune: 0x7f}}
	case tea.KeyEnter:
		return []bridge.KeyEvent{{Rune: '\r'}}
	case tea.KeyTab:
		return []bridge.KeyEvent{{Rune: '\t'}}
	}

	// Remaining non-negative types are C0 control codes (Ctrl+A .. Ctrl+_).
	if msg.Type >= 0 && msg.Type < 0x20 {
		return []bridge.KeyEvent{{Rune: rune(msg.Type), Ctrl: true}}
	}
	return nil
}
