package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/tui/theme"
)

// Notice levels understood by RenderStatusBar.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// RenderStatusBar renders the bottom status bar. A non-empty notice replaces
// the key hints on the left.
func RenderStatusBar(width int, level, notice, right string) string {
	t := theme.Active

	left := lipgloss.NewStyle().Foreground(t.TextMuted).Render(" [?]help  [q]uit")
	if notice != "" {
		color := t.Blue
		switch level {
		case LevelSuccess:
			color = t.Green
		case LevelWarning:
			color = t.Yellow
		case LevelError:
			color = t.Red
		}
		left = lipgloss.NewStyle().Foreground(color).Bold(true).Render(" " + notice)
	}
	rightStyled := lipgloss.NewStyle().Foreground(t.TextDim).Render(right + " ")

	pad := max(width-lipgloss.Width(left)-lipgloss.Width(rightStyled), 1)
	return lipgloss.NewStyle().Width(width).Render(left + lipgloss.NewStyle().Width(pad).Render("") + rightStyled)
}
