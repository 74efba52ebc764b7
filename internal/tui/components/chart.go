package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/tui/theme"
)

// WeekChart renders vertical bars for a handful of days, oldest first. Bars at
// or above goal use the goal color. Each bar is three cells wide with a
// one-cell gap, and labels are cut to three characters.
func WeekChart(values []int, labels []string, goal int, color lipgloss.Color, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	height = max(height, 2)

	peak := goal
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	heights := make([]int, len(values))
	for i, v := range values {
		heights[i] = v * height / peak
		if v > 0 && heights[i] == 0 {
			heights[i] = 1
		}
	}

	metStyle := lipgloss.NewStyle().Foreground(t.GoalMet)
	barStyle := lipgloss.NewStyle().Foreground(color)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		for i, h := range heights {
			if i > 0 {
				b.WriteString(" ")
			}
			switch {
			case h >= row && goal > 0 && values[i] >= goal:
				b.WriteString(metStyle.Render("███"))
			case h >= row:
				b.WriteString(barStyle.Render("███"))
			default:
				b.WriteString("   ")
			}
		}
		b.WriteString("\n")
	}
	for i := range values {
		if i > 0 {
			b.WriteString(" ")
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		if len(label) > 3 {
			label = label[:3]
		}
		b.WriteString(dim.Render(label + strings.Repeat(" ", 3-len(label))))
	}
	return b.String()
}
