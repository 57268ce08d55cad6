// Package host implements the terminal text field that fronts a bridge
// session. It forwards keys to the session, renders the flat text with the
// projected cursor and selection, and reloads the rc script on request.
package host

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/vimbridge/internal/bridge"
	"github.com/zjrosen/vimbridge/internal/keys"
	"github.com/zjrosen/vimbridge/internal/log"
	"github.com/zjrosen/vimbridge/internal/pubsub"
)

// Config configures a Model.
type Config struct {
	Session     *bridge.Session
	KeyMap      keys.KeyMap
	StatusLine  bool
	Placeholder string

	// RCChanges delivers a value whenever the rc script changed on disk.
	// Nil disables hot reload.
	RCChanges <-chan struct{}
}

// rcChangedMsg is sent when the rc script changed on disk.
type rcChangedMsg struct{}

// Model is the Bubble Tea model of the host text field.
type Model struct {
	session     *bridge.Session
	keys        keys.KeyMap
	help        help.Model
	listener    *pubsub.Listener[bridge.Notification]
	rcChanges   <-chan struct{}
	placeholder string

	width, height int
	showStatus    bool
	showHelp      bool

	last    pubsub.Event[bridge.Notification]
	events  int
	lastErr error
}

// New creates a host model for cfg.Session. The subscription lives as long
// as ctx.
func New(ctx context.Context, cfg Config) Model {
	return Model{
		session:     cfg.Session,
		keys:        cfg.KeyMap,
		help:        help.New(),
		listener:    pubsub.NewListener[bridge.Notification](ctx, cfg.Session),
		rcChanges:   cfg.RCChanges,
		placeholder: cfg.Placeholder,
		showStatus:  cfg.StatusLine,
	}
}

// Init starts listening for session notifications and rc changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listener.Listen(), m.waitRC())
}

func (m Model) waitRC() tea.Cmd {
	if m.rcChanges == nil {
		return nil
	}
	ch := m.rcChanges
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return rcChangedMsg{}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pubsub.Event[bridge.Notification]:
		m.last = msg
		m.events++
		log.Debug(log.CatHost, "notification", "type", string(msg.Type), "mode", msg.Payload.ModeCode)
		return m, m.listener.Listen()

	case rcChangedMsg:
		m.lastErr = m.session.Reload()
		if m.lastErr != nil {
			log.ErrorErr(log.CatHost, "reload failed", m.lastErr)
		}
		return m, m.waitRC()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		m.lastErr = m.paste(string(msg.Runes))
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.lastErr = m.session.Sync()
		return m, nil
	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	m.lastErr = nil
	for _, ev := range keys.FromTea(msg) {
		if err := m.session.HandleInput(ev); err != nil {
			log.ErrorErr(log.CatHost, "input failed", err, "key", msg.String())
			m.lastErr = err
			break
		}
	}
	return m, nil
}

// paste splices text into the field at the cursor and pushes the result
// back into the engine.
func (m Model) paste(text string) error {
	text = normalizeNewlines(text)
	if text == "" {
		return nil
	}
	flat, pos := splice(m.session.FlatText(), m.session.CursorPosition(), text)
	if err := m.session.ReverseSyncText(flat); err != nil {
		return err
	}
	return m.session.ReverseSyncCursor(pos)
}

// View renders the text field, status line and help.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(renderField(m.session.FlatText(), m.session.Cursor(), m.placeholder, m.width))

	if m.showStatus {
		cmdline, present := m.session.CommandLine()
		b.WriteString("\n")
		b.WriteString(renderStatus(m.session.Cursor(), cmdline, present, m.width))
	}
	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(truncateLine(errorStyle.Render(m.lastErr.Error()), m.width))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Session returns the session behind the model.
func (m Model) Session() *bridge.Session { return m.session }

// LastEvent returns the most recent session notification and how many
// have been received.
func (m Model) LastEvent() (pubsub.Event[bridge.Notification], int) { return m.last, m.events }

// Err returns the error from the last handled input, if any.
func (m Model) Err() error { return m.lastErr }
