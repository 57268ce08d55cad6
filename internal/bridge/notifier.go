package bridge

import (
	"github.com/zjrosen/vimbridge/internal/engine"
	"github.com/zjrosen/vimbridge/internal/hook"
	"github.com/zjrosen/vimbridge/internal/log"
	"github.com/zjrosen/vimbridge/internal/pubsub"
)

// Environment variable names passed to the hook.
const (
	EnvMode    = "MODE"
	EnvCmdline = "CMDLINE"
)

// ModeCode returns the single-character mode code exported to the hook.
func ModeCode(mode engine.Mode) string {
	switch {
	case mode.Has(engine.ModeInsert):
		return "I"
	case mode.Has(engine.ModeNormal):
		return "N"
	case mode.Has(engine.ModeVisual):
		return "V"
	case mode.Has(engine.ModeCmdLine):
		return "C"
	default:
		return "_"
	}
}

// Environment builds the hook environment. CMDLINE is only included when
// withCmdline is set, and is empty when no command line is present.
func Environment(mode engine.Mode, cmdline string, withCmdline bool) map[string]string {
	env := map[string]string{EnvMode: ModeCode(mode)}
	if withCmdline {
		env[EnvCmdline] = cmdline
	}
	return env
}

// Notification is published to session subscribers when the mode or the
// command line changes.
type Notification struct {
	SessionID   string
	Mode        engine.Mode
	ModeCode    string
	CommandLine string
}

// Notifier tells the outside world about mode and command-line changes.
type Notifier struct {
	launcher    hook.Launcher
	hookPath    string
	withCmdline bool
	events      pubsub.Publisher[Notification]
}

// Notify launches the hook and publishes a notification of the given kind.
// It never blocks on the hook and never fails.
func (n *Notifier) Notify(kind pubsub.EventType, sessionID string, mode engine.Mode, cmdline string) {
	env := Environment(mode, cmdline, n.withCmdline)
	log.Debug(log.CatHook, "notify", "session", sessionID, "kind", kind, "mode", env[EnvMode], "cmdline", cmdline)

	if n.launcher != nil && n.hookPath != "" {
		n.launcher.Launch(n.hookPath, env)
	}
	n.publish(kind, sessionID, mode, cmdline)
}

// publish delivers a notification to in-process subscribers only.
func (n *Notifier) publish(kind pubsub.EventType, sessionID string, mode engine.Mode, cmdline string) {
	if n.events != nil {
		n.events.Publish(kind, Notification{
			SessionID:   sessionID,
			Mode:        mode,
			ModeCode:    ModeCode(mode),
			CommandLine: cmdline,
		})
	}
}
