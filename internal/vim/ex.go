package vim

import (
	"strings"

	"github.com/zjrosen/vimbridge/internal/engine"
	"github.com/zjrosen/vimbridge/internal/log"
)

// Execute implements engine.Engine.
//
// Supported commands, one per line:
//
//	set opt noopt opt=value   record options
//	%d, %delete, 1,$d         empty the buffer
//	normal[!] keys            type keys from normal mode, then <Esc>
//	startinsert               enter insert mode
//
// Blank lines and lines starting with a double quote are skipped. Unknown
// commands are ignored.
func (e *Engine) Execute(cmd string) {
	for _, line := range strings.Split(cmd, "\n") {
		e.executeLine(line)
	}
}

func (e *Engine) executeLine(line string) {
	line = strings.TrimLeft(strings.TrimSpace(line), ":")
	if line == "" || strings.HasPrefix(line, `"`) {
		return
	}

	name, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	switch name {
	case "set", "se":
		e.setOptions(args)
	case "%d", "%delete", "1,$d", "1,$delete":
		e.clearBuffer()
		e.clampCursor()
	case "normal", "norm", "normal!", "norm!":
		if e.mode != engine.ModeNormal {
			e.handleRune(escape)
		}
		e.Input(args)
		if e.mode != engine.ModeNormal {
			e.handleRune(escape)
		}
	case "startinsert":
		e.setMode(engine.ModeInsert)
	default:
		log.Debug(log.CatEngine, "ignoring ex command", "cmd", line)
	}
}

func (e *Engine) setOptions(args string) {
	for _, field := range strings.Fields(args) {
		if name, value, ok := strings.Cut(field, "="); ok {
			e.options[name] = value
			continue
		}
		if name, ok := strings.CutPrefix(field, "no"); ok {
			e.options[name] = "false"
			continue
		}
		e.options[field] = "true"
	}
}
