// Package bridge keeps a modal engine's line buffer and a host's flat text
// view of the same document in sync.
//
// Forward sync (Sync) projects the engine's lines, mode, command line and
// cursor into a flat string, an absolute cursor offset and a selection
// length. Reverse sync (ReverseSyncText, ReverseSyncCursor) pushes a host
// edit back into the engine and then re-derives the flat state from it.
//
// A Session is single-threaded: callers must not invoke its methods
// concurrently.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/zjrosen/vimbridge/internal/engine"
	"github.com/zjrosen/vimbridge/internal/hook"
	"github.com/zjrosen/vimbridge/internal/log"
	"github.com/zjrosen/vimbridge/internal/pubsub"
)

// Options applied to every new buffer so that typed text lands on the line
// it was typed on.
const noIndentCommand = "set nocindent nosmartindent noautoindent"

// Key codes intercepted by HandleInput.
const (
	keyEscape      = 0x1b
	keyLeftBracket = 0x5b
)

// keyInsertMode enters insert mode from normal mode.
const keyInsertMode = "i"

// notificationBuffer is the per-subscriber channel capacity.
const notificationBuffer = 16

// Config configures a Session.
type Config struct {
	// RCPath is the startup script sourced by Begin. A missing file is fine.
	RCPath string

	// HookPath is the executable launched on mode and command-line changes.
	// Empty disables the hook.
	HookPath string

	// HookCmdline exports CMDLINE to the hook.
	HookCmdline bool

	// Launcher starts the hook. Defaults to hook.NewExecLauncher().
	Launcher hook.Launcher
}

// KeyEvent is a key press delivered by the host.
type KeyEvent struct {
	Rune rune
	Ctrl bool
}

// Session owns the document projection of one engine buffer.
type Session struct {
	id       string
	eng      engine.Engine
	rcPath   string
	doc      *Document
	cursor   Cursor
	modes    ModeTracker
	cmdline  CommandLineMirror
	notifier Notifier
	events   *pubsub.Broker[Notification]
}

// NewSession creates a session driving eng.
func NewSession(eng engine.Engine, cfg Config) *Session {
	launcher := cfg.Launcher
	if launcher == nil {
		launcher = hook.NewExecLauncher()
	}
	events := pubsub.NewBrokerWithBuffer[Notification](notificationBuffer)

	return &Session{
		id:     uuid.NewString(),
		eng:    eng,
		rcPath: cfg.RCPath,
		doc:    NewDocument(),
		notifier: Notifier{
			launcher:    launcher,
			hookPath:    cfg.HookPath,
			withCmdline: cfg.HookCmdline,
			events:      events,
		},
		events: events,
	}
}

// Begin initializes the engine, creates its buffer, sources the rc script
// and runs the first sync.
func (s *Session) Begin() error {
	if err := s.eng.Init(); err != nil {
		return fmt.Errorf("initializing engine: %w", err)
	}
	if err := s.eng.NewBuffer(); err != nil {
		return fmt.Errorf("creating buffer: %w", err)
	}
	s.LoadRC()
	log.Info(log.CatSync, "session started", "session", s.id, "rc", s.rcPath)
	return s.Sync()
}

// LoadRC sources the rc script if it exists and re-applies the options the
// line model depends on. Read failures are logged and otherwise ignored.
func (s *Session) LoadRC() {
	if s.rcPath != "" {
		data, err := os.ReadFile(s.rcPath)
		switch {
		case err == nil:
			s.eng.Execute(string(data))
			log.Debug(log.CatConfig, "sourced rc", "path", s.rcPath)
		case errors.Is(err, os.ErrNotExist):
			log.Debug(log.CatConfig, "no rc file", "path", s.rcPath)
		default:
			log.Warn(log.CatConfig, "reading rc failed", "path", s.rcPath, "error", err)
		}
	}
	s.eng.Execute(noIndentCommand)
}

// Reload re-sources the rc script, syncs, and tells subscribers. The hook is
// only launched if the reload changed the mode or command line.
func (s *Session) Reload() error {
	s.LoadRC()
	if err := s.Sync(); err != nil {
		return err
	}
	text, _ := s.cmdline.Text()
	s.notifier.publish(pubsub.ReloadEvent, s.id, s.cursor.Mode, text)
	log.Info(log.CatConfig, "rc reloaded", "session", s.id, "rc", s.rcPath)
	return nil
}

// HandleInput forwards a host key press to the engine and syncs.
//
// Ctrl+[ (in either of its two encodings) switches the engine to normal
// mode. A bare escape is swallowed. Everything else is typed as text.
func (s *Session) HandleInput(ev KeyEvent) error {
	switch {
	case ev.Ctrl && (ev.Rune == keyLeftBracket || ev.Rune == keyEscape):
		s.eng.Key(engine.KeyEsc)
	case ev.Rune == keyEscape:
	default:
		s.eng.Input(string(ev.Rune))
	}
	return s.Sync()
}

// Sync projects the engine state into the document. The mode is read first
// because the cursor projection depends on it. The hook fires on mode and
// command-line changes only; text changes are left to the host, which reads
// them from FlatText and TextChanged.
func (s *Session) Sync() error {
	modeChanged := s.modes.Update(s.eng.Mode())
	s.cursor.Mode = s.modes.Mode()

	s.doc.Update(s.eng)

	cmdlineChanged := s.cmdline.Update(s.eng.CommandLine())

	if err := s.syncCursor(); err != nil {
		return err
	}

	if modeChanged || cmdlineChanged {
		kind := pubsub.CmdlineEvent
		if modeChanged {
			kind = pubsub.ModeEvent
		}
		text, _ := s.cmdline.Text()
		s.notifier.Notify(kind, s.id, s.cursor.Mode, text)
	}
	return nil
}

// syncCursor re-runs the cursor projection using the last observed mode.
func (s *Session) syncCursor() error {
	c, err := project(s.doc, s.eng.Cursor(), s.cursor.Mode, s.eng)
	if err != nil {
		return fmt.Errorf("projecting cursor: %w", err)
	}
	s.cursor = c
	return nil
}

// ReverseSyncText replaces the engine buffer with text typed in insert mode,
// then re-derives the flat state. The engine's own line splitting is
// authoritative.
func (s *Session) ReverseSyncText(text string) error {
	s.eng.Execute(engine.ClearCommand)
	s.eng.Key(engine.KeyEsc)
	s.eng.Input(keyInsertMode)
	s.eng.Input(text)
	if s.cursor.Mode.Has(engine.ModeNormal) {
		s.eng.Key(engine.KeyEsc)
	}

	s.doc.Update(s.eng)
	log.Debug(log.CatSync, "reverse synced text", "session", s.id, "lines", s.doc.LineCount())
	return s.syncCursor()
}

// ReverseSyncCursor moves the engine cursor to the flat offset pos. Offsets
// past the end of the document land on the end of the last line.
func (s *Session) ReverseSyncCursor(pos int) error {
	if s.doc.LineCount() == 0 {
		s.doc.Update(s.eng)
	}
	if s.doc.LineCount() == 0 {
		return fmt.Errorf("reverse syncing cursor to %d: %w", pos, ErrEngineState)
	}

	pos = max(pos, 0)
	idx := s.doc.LineCount() - 1
	total := 0
	for i := range s.doc.lines {
		total += s.doc.lines[i].Length() + 1
		if total > pos {
			idx = i
			break
		}
	}

	line := s.doc.Line(idx)
	local := min(pos-line.Offset(), line.Length())
	s.eng.SetCursor(engine.Pos{Line: idx + 1, Col: line.EngineColumn(local)})
	return s.syncCursor()
}

// Clear drops the document and returns the engine to an empty buffer in
// insert mode.
func (s *Session) Clear() {
	s.doc.Reset()
	s.cmdline.Reset()
	s.modes.Reset()
	s.cursor = Cursor{}

	s.eng.Execute(engine.ClearCommand)
	s.eng.Key(engine.KeyEsc)
	s.eng.Key(engine.KeyEsc)
	s.eng.Input(keyInsertMode)
	log.Debug(log.CatSync, "session cleared", "session", s.id)
}

// Subscribe returns a channel of notifications, closed when ctx is done.
func (s *Session) Subscribe(ctx context.Context) <-chan pubsub.Event[Notification] {
	return s.events.Subscribe(ctx)
}

// Close releases the notification broker.
func (s *Session) Close() {
	s.events.Close()
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// FlatText returns the document as one string.
func (s *Session) FlatText() string { return s.doc.Text() }

// CursorPosition returns the absolute cursor offset.
func (s *Session) CursorPosition() int { return s.cursor.Position }

// SelectionLength returns the selection length for the current mode.
func (s *Session) SelectionLength() int { return s.cursor.Selection }

// Cursor returns the projected cursor.
func (s *Session) Cursor() Cursor { return s.cursor }

// TextChanged reports whether the last text sync changed the flat text.
func (s *Session) TextChanged() bool { return s.doc.Changed() }

// LastEdit returns the replacement applied by the last text change.
func (s *Session) LastEdit() Edit { return s.doc.LastEdit() }

// Mode returns the last observed engine mode.
func (s *Session) Mode() engine.Mode { return s.cursor.Mode }

// CommandLine returns the mirrored command line and whether it is present.
func (s *Session) CommandLine() (string, bool) { return s.cmdline.Text() }

// Document returns the document projection.
func (s *Session) Document() *Document { return s.doc }
