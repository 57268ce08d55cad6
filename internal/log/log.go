// Package log provides structured logging for vimbridge.
// It writes leveled, categorized entries to a file and is only enabled when
// requested via --debug or VIMBRIDGE_DEBUG.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ErrUnknownLevel is returned by ParseLevel for names it does not know.
var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel maps a config value ("debug", "info", "warn", "error") to a
// Level. Matching ignores case; "warning" is accepted for warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelDebug, fmt.Errorf("%q: %w", s, ErrUnknownLevel)
}

// Category groups related log messages.
type Category string

const (
	CatSync    Category = "sync"    // Forward and reverse sync
	CatEngine  Category = "engine"  // Modal engine events
	CatHook    Category = "hook"    // Notification hook launches
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // rc file watcher events
	CatHost    Category = "host"    // Host text field
)

// Logger writes entries at or above minLevel to writer.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	minLevel Level
	now      func() time.Time
}

var (
	loggerMu      sync.RWMutex
	defaultLogger *Logger
)

// Init opens path for appending and routes all logging to it. The returned
// function closes the file and disables logging again.
func Init(path string, minLevel Level) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	setDefault(&Logger{writer: f, minLevel: minLevel, now: time.Now})

	return func() {
		setDefault(nil)
		_ = f.Close()
	}, nil
}

// InitWriter routes log output to w. Used by tests and by the replay
// command, which logs to stderr.
func InitWriter(w io.Writer, minLevel Level) {
	setDefault(&Logger{writer: w, minLevel: minLevel, now: time.Now})
}

// Disable drops all further entries.
func Disable() {
	setDefault(nil)
}

func setDefault(l *Logger) {
	loggerMu.Lock()
	defaultLogger = l
	loggerMu.Unlock()
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	loggerMu.RLock()
	l := defaultLogger
	loggerMu.RUnlock()
	if l == nil || level < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, format(l.now(), level, cat, msg, fields))
}

// format renders one entry:
//
//	2025-12-06T10:45:00 [ERROR] [sync] message key=value cmdline="set ts=8"
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	b.WriteString(ts.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%s", fields[i], quote(fields[i+1]))
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	return b.String()
}

// quote formats v, quoting it when it is empty or would not read back as a
// single token.
func quote(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\r\"=") {
		return strconv.Quote(s)
	}
	return s
}
