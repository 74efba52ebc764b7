package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/tui/theme"
)

// GoalColor returns the metric color, or the goal color once ratio reaches 1.
func GoalColor(ratio float64, metric lipgloss.Color) lipgloss.Color {
	if ratio >= 1 {
		return theme.Active.GoalMet
	}
	return metric
}

// GoalBar renders "label [bar] pct" for a progress ratio in [0, 1].
func GoalBar(label string, ratio float64, color lipgloss.Color, labelW, barWidth int) string {
	t := theme.Active
	ratio = min(max(ratio, 0), 1)
	color = GoalColor(ratio, color)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(ratio) + " " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", ratio*100))
}

// GlassRow renders one cup per glass logged, up to limit, e.g. "■■■□□".
func GlassRow(glasses, target, limit int) string {
	t := theme.Active
	target = max(target, glasses)
	if target > limit {
		target = limit
	}
	full := min(glasses, target)

	filled := lipgloss.NewStyle().Foreground(t.Water)
	empty := lipgloss.NewStyle().Foreground(t.TextDim)
	out := ""
	for i := 0; i < target; i++ {
		if i < full {
			out += filled.Render("■")
		} else {
			out += empty.Render("□")
		}
	}
	if glasses > limit {
		out += empty.Render(fmt.Sprintf(" +%d", glasses-limit))
	}
	return out
}
