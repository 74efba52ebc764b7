package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/pipeline"
	"github.com/truvida/truvida/internal/tui/components"
	"github.com/truvida/truvida/internal/tui/theme"
)

const chartDays = 7

func (a App) renderHomeTab(cw int) string {
	t := theme.Active
	d := a.data
	s := d.snap

	name := "there"
	if d.user != nil {
		name = d.user.Name
	}
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render(model.Greeting(name, d.now)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s", cli.FormatDayOfWeek(d.date), d.date)))
	b.WriteString("\n")

	b.WriteString(components.MetricRow([]components.Metric{
		{
			Label: "Water",
			Value: cli.FormatML(s.Water.TotalML),
			Sub:   "of " + cli.FormatML(s.WaterGoal),
			Color: components.GoalColor(s.WaterProgress, t.Water),
		},
		{
			Label: "Steps",
			Value: cli.FormatSteps(s.Steps.Steps),
			Sub:   "of " + cli.FormatSteps(s.StepsGoal),
			Color: components.GoalColor(s.StepsProgress, t.Steps),
		},
		{
			Label: "Calories",
			Value: fmt.Sprintf("%d kcal", s.Calories),
			Sub:   s.Activity.Name,
		},
		{
			Label: "Distance",
			Value: model.FormatDistance(s.DistanceKm) + " km",
		},
	}, cw))
	b.WriteString("\n")

	barW := max(cw-30, 10)
	progress := components.GoalBar("Water", s.WaterProgress, t.Water, 6, barW) + "\n" +
		components.GoalBar("Steps", s.StepsProgress, t.Steps, 6, barW)
	b.WriteString(components.ContentCard("Today's Goals", progress, cw))
	b.WriteString("\n")

	week := lastDays(d.history, chartDays)
	labels := make([]string, len(week))
	water := make([]int, len(week))
	steps := make([]int, len(week))
	for i, day := range week {
		labels[i] = cli.FormatDayOfWeek(day.Date)
		water[i] = day.Water
		steps[i] = day.Steps
	}

	streak := a.renderStreaks()
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Steps · last 7 days",
			components.WeekChart(steps, labels, s.StepsGoal, t.Steps, 5), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Streaks", streak, cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 3)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		components.ContentCard("Water · last 7 days",
			components.WeekChart(water, labels, s.WaterGoal, t.Water, 5), widths[0]),
		components.ContentCard("Steps · last 7 days",
			components.WeekChart(steps, labels, s.StepsGoal, t.Steps, 5), widths[1]),
		components.ContentCard("Streaks", streak, widths[2]),
	))
	return b.String()
}

func (a App) renderStreaks() string {
	t := theme.Active
	sum := a.data.summary

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	rows := [][2]string{
		{"Current streak", fmt.Sprintf("%d days", sum.CurrentStreak)},
		{"Longest streak", fmt.Sprintf("%d days", sum.LongestStreak)},
		{"Water goal days", fmt.Sprintf("%d/%d", sum.WaterGoalDays, sum.Days)},
		{"Steps goal days", fmt.Sprintf("%d/%d", sum.StepsGoalDays, sum.Days)},
		{"Avg water", cli.FormatML(int(sum.AvgWater))},
		{"Avg steps", cli.FormatSteps(int(sum.AvgSteps))},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(fmt.Sprintf("%-16s", r[0])) + valueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

// lastDays returns up to n of the newest days from history, oldest first.
func lastDays(history []pipeline.DayStats, n int) []pipeline.DayStats {
	n = min(n, len(history))
	out := make([]pipeline.DayStats, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = history[i]
	}
	return out
}
