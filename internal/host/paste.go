package host

import (
	"strings"

	"github.com/rivo/uniseg"
)

// normalizeNewlines turns CRLF and lone CR into LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splice inserts ins into text before cluster pos and returns the result
// with the cluster offset just past the insertion. pos is clamped to the
// text.
func splice(text string, pos int, ins string) (string, int) {
	pos = max(pos, 0)
	at := len(text)
	idx := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if idx == pos {
			at, _ = g.Positions()
			break
		}
		idx++
	}
	if at == len(text) {
		pos = idx
	}
	return text[:at] + ins + text[at:], pos + uniseg.GraphemeClusterCount(ins)
}
