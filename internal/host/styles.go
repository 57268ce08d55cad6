package host

import "github.com/charmbracelet/lipgloss"

var (
	textMutedColor       = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"}
	textPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}
	statusErrorColor     = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	selectionBgColor     = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"}

	modeInsertColor  = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	modeNormalColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	modeVisualColor  = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	modeCmdLineColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}

	cursorStyle      = lipgloss.NewStyle().Reverse(true)
	selectionStyle   = lipgloss.NewStyle().Background(selectionBgColor)
	placeholderStyle = lipgloss.NewStyle().Foreground(textPlaceholderColor)
	statusStyle      = lipgloss.NewStyle().Foreground(textMutedColor)
	errorStyle       = lipgloss.NewStyle().Foreground(statusErrorColor)
	modeStyle        = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)
