package host

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/vimbridge/internal/bridge"
	"github.com/zjrosen/vimbridge/internal/engine"
)

const ellipsis = "…"

// renderField draws the flat text with the cursor and selection applied.
// pos and sel are in grapheme clusters, as reported by the session. A
// selection of 0 draws a cursor cell at pos; a cursor past the last
// character of a line draws on a blank cell.
func renderField(text string, cur bridge.Cursor, placeholder string, width int) string {
	if text == "" && placeholder != "" {
		return truncateLine(cursorStyle.Render(" ")+placeholderStyle.Render(placeholder), width)
	}

	start, end := cur.Position, cur.Position+max(cur.Selection, 1)
	style := cursorStyle
	if cur.Selection > 1 {
		style = selectionStyle
	}

	var b strings.Builder
	idx := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		marked := idx >= start && idx < end
		switch {
		case cluster == "\n" && marked:
			b.WriteString(style.Render(" "))
			b.WriteString("\n")
		case marked:
			b.WriteString(style.Render(cluster))
		default:
			b.WriteString(cluster)
		}
		idx++
	}
	if start >= idx {
		b.WriteString(cursorStyle.Render(" "))
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = truncateLine(line, width)
	}
	return strings.Join(lines, "\n")
}

// truncateLine cuts a styled line to width cells. Zero width leaves it as is.
func truncateLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	return ansi.Truncate(line, width, ellipsis)
}

// renderStatus draws the mode badge, the cursor offset and selection, and
// the command line when one is open.
func renderStatus(cur bridge.Cursor, cmdline string, cmdPresent bool, width int) string {
	badge := modeStyle.Foreground(modeColor(cur.Mode)).Render(cur.Mode.String())

	info := fmt.Sprintf("%d:%d", cur.Position, cur.Selection)
	if cmdPresent {
		info += "  :" + cmdline
	}
	if width > 0 {
		avail := max(width-lipgloss.Width(badge)-1, 0)
		info = runewidth.Truncate(info, avail, ellipsis)
	}
	return badge + " " + statusStyle.Render(info)
}

func modeColor(mode engine.Mode) lipgloss.AdaptiveColor {
	switch {
	case mode.Has(engine.ModeInsert):
		return modeInsertColor
	case mode.Has(engine.ModeVisual):
		return modeVisualColor
	case mode.Has(engine.ModeCmdLine):
		return modeCmdLineColor
	default:
		return modeNormalColor
	}
}
