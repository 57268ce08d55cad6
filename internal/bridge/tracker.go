package bridge

import "github.com/zjrosen/vimbridge/internal/engine"

// ModeTracker remembers the last observed engine mode.
type ModeTracker struct {
	mode engine.Mode
}

// Update stores mode and reports whether it differs from the last one.
func (t *ModeTracker) Update(mode engine.Mode) bool {
	if mode == t.mode {
		return false
	}
	t.mode = mode
	return true
}

// Mode returns the last observed mode.
func (t *ModeTracker) Mode() engine.Mode { return t.mode }

// Reset forgets the last observed mode.
func (t *ModeTracker) Reset() { t.mode = 0 }

// CommandLineMirror mirrors the engine's command-line text.
//
// An absent command line (not being edited) is distinct from an empty one.
type CommandLineMirror struct {
	text    string
	present bool
}

// Update stores the new command-line state and reports whether it changed.
// Leaving the command line (present to absent) is not reported as a change.
func (m *CommandLineMirror) Update(text string, present bool) bool {
	unchanged := m.present && present && m.text == text
	m.text, m.present = text, present
	if unchanged || !present {
		return false
	}
	return true
}

// Text returns the mirrored text and whether a command line is present.
func (m *CommandLineMirror) Text() (string, bool) {
	return m.text, m.present
}

// Reset clears the mirror to the absent state.
func (m *CommandLineMirror) Reset() {
	m.text, m.present = "", false
}
