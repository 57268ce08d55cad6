package keys

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/vimbridge/internal/bridge"
)

// ErrUnknownKey is returned for a <...> name Parse does not know.
var ErrUnknownKey = errors.New("unknown key")

// named maps lower-cased key names to events. <Esc> is sent the way a
// terminal delivers it, as Ctrl+[, since a bare escape is dropped.
var named = map[string]bridge.KeyEvent{
	"esc":    {Rune: 0x1b, Ctrl: true},
	"cr":     {Rune: '\r'},
	"enter":  {Rune: '\r'},
	"return": {Rune: '\r'},
	"nl":     {Rune: '\n'},
	"bs":     {Rune: 0x7f},
	"tab":    {Rune: '\t'},
	"space":  {Rune: ' '},
	"lt":     {Rune: '<'},
	"bar":    {Rune: '|'},
	"bslash": {Rune: '\\'},
}

// Parse turns vim key notation into key events.
//
//	iabc<CR>de<C-[>   typed text, Enter, Ctrl+[
//	<C-v>             Ctrl+V (rune 0x16)
//	<lt>              a literal "<"
//
// Names are case-insensitive. A "<" that does not start a complete <...>
// group is taken literally.
func Parse(s string) ([]bridge.KeyEvent, error) {
	var events []bridge.KeyEvent
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end > 0 {
				name := s[i+1 : i+1+end]
				ev, err := parseName(name)
				if err != nil {
					return nil, fmt.Errorf("offset %d: %w", i, err)
				}
				events = append(events, ev)
				i += end + 2
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		events = append(events, bridge.KeyEvent{Rune: r})
		i += size
	}
	return events, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) []bridge.KeyEvent {
	events, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return events
}

func parseName(name string) (bridge.KeyEvent, error) {
	lower := strings.ToLower(name)
	if ev, ok := named[lower]; ok {
		return ev, nil
	}

	if rest, ok := strings.CutPrefix(lower, "c-"); ok && rest != "" {
		if ev, ok := ctrl(rest); ok {
			return ev, nil
		}
	}
	return bridge.KeyEvent{}, fmt.Errorf("<%s>: %w", name, ErrUnknownKey)
}

// ctrl resolves the key after "C-". Ctrl+[ keeps its printable rune, as
// terminals report it; other control keys become their control code.
func ctrl(rest string) (bridge.KeyEvent, bool) {
	if ev, ok := named[rest]; ok && ev.Rune == 0x1b {
		return ev, true
	}
	r, size := utf8.DecodeRuneInString(rest)
	if size != len(rest) {
		return bridge.KeyEvent{}, false
	}
	switch {
	case r == '[':
		return bridge.KeyEvent{Rune: '[', Ctrl: true}, true
	case r >= 'a' && r <= 'z':
		return bridge.KeyEvent{Rune: r & 0x1f, Ctrl: true}, true
	case r >= '@' && r <= '_':
		return bridge.KeyEvent{Rune: r & 0x1f, Ctrl: true}, true
	}
	return bridge.KeyEvent{}, false
}
